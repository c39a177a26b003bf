package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type previewUpdateRequest struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

func (s *Server) UpdatePreview(c *gin.Context) {
	var req previewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		AbortWithError(c, newValidationError("path", "required", "field path is required"))
		return
	}

	doc, err := s.invoiceSvc.UpdatePreview(c.Request.Context(), c.Param("id"), req.Path, req.Value)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// CommitPreview re-renders the edited document and streams the new
// artifact back inline.
func (s *Server) CommitPreview(c *gin.Context) {
	info, err := s.invoiceSvc.CommitPreview(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header(previewSessionHeader, info.ID)
	c.Header("Content-Disposition", `inline; filename="`+info.Artifact.Filename+`"`)
	c.Header("Content-Length", strconv.Itoa(len(info.Artifact.Data)))
	c.Data(http.StatusOK, "application/pdf", info.Artifact.Data)
}

func (s *Server) ClosePreview(c *gin.Context) {
	s.invoiceSvc.ClosePreview(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

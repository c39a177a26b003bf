package server

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type exportRequest struct {
	OrderIDs []string `json:"order_ids"`
}

type exportFile struct {
	Filename string `json:"filename"`
	Data     string `json:"data"`
}

// ExportInvoices runs a batch export. More than three successes come
// back as one zip attachment; smaller batches return a JSON manifest
// of base64 files the UI downloads in sequence.
//
// @Summary      Export Invoices
// @Description  Batch-render invoices for the selected orders
// @Tags         invoices
// @Accept       json
// @Param        request body exportRequest true "Export Request"
// @Router       /exports [post]
func (s *Server) ExportInvoices(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	summary, err := s.invoiceSvc.ExportSelection(c.Request.Context(), req.OrderIDs)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if summary.Archive != nil {
		c.Header("Content-Disposition", `attachment; filename="`+summary.Archive.Filename+`"`)
		c.Header("Content-Length", strconv.Itoa(len(summary.Archive.Data)))
		c.Header("X-Export-Succeeded", strconv.Itoa(summary.Succeeded))
		c.Header("X-Export-Failed", strconv.Itoa(summary.Failed))
		c.Data(http.StatusOK, "application/zip", summary.Archive.Data)
		return
	}

	files := make([]exportFile, 0, len(summary.Files))
	for _, f := range summary.Files {
		files = append(files, exportFile{
			Filename: f.Filename,
			Data:     base64.StdEncoding.EncodeToString(f.Data),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"succeeded":     summary.Succeeded,
		"failed":        summary.Failed,
		"failed_orders": summary.FailedOrders,
		"files":         files,
	})
}

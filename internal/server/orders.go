package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/billora/internal/invoice/domain"
)

// Session id header for inline previews; the UI passes it back to the
// preview endpoints.
const previewSessionHeader = "X-Preview-Session"

// @Summary      List Orders
// @Description  List recent orders with invoice-ready display fields
// @Tags         orders
// @Produce      json
// @Success      200  {object}  map[string][]invoicedomain.OrderRow
// @Router       /orders [get]
func (s *Server) ListOrders(c *gin.Context) {
	rows, err := s.invoiceSvc.ListOrders(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": rows})
}

// @Summary      View Invoice
// @Description  Render the invoice inline and open a preview session
// @Tags         invoices
// @Produce      application/pdf
// @Param        name path string true "Order name"
// @Router       /orders/{name}/invoice [get]
func (s *Server) ViewInvoice(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		AbortWithError(c, newValidationError("name", "required", "order name is required"))
		return
	}

	info, err := s.invoiceSvc.View(c.Request.Context(), name)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header(previewSessionHeader, info.ID)
	c.Header("Content-Disposition", `inline; filename="`+info.Artifact.Filename+`"`)
	c.Header("Content-Length", strconv.Itoa(len(info.Artifact.Data)))
	c.Data(http.StatusOK, "application/pdf", info.Artifact.Data)
}

// @Summary      Download Invoice
// @Description  Render the invoice as an attachment, optionally from an edited document
// @Tags         invoices
// @Accept       json
// @Produce      application/pdf
// @Param        name path string true "Order name"
// @Router       /orders/{name}/invoice/download [post]
func (s *Server) DownloadInvoice(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		AbortWithError(c, newValidationError("name", "required", "order name is required"))
		return
	}

	var override *invoicedomain.Document
	if c.Request.ContentLength > 0 {
		var doc invoicedomain.Document
		if err := c.ShouldBindJSON(&doc); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		override = &doc
	}

	artifact, err := s.invoiceSvc.Download(c.Request.Context(), name, override)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	c.Header("Content-Length", strconv.Itoa(len(artifact.Data)))
	c.Data(http.StatusOK, "application/pdf", artifact.Data)
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	merchantdomain "github.com/smallbiznis/billora/internal/merchant/domain"
)

func (s *Server) GetSettings(c *gin.Context) {
	cfg, err := s.store.GetConfiguration(c.Request.Context(), s.shopID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": cfg})
}

func (s *Server) PutSettings(c *gin.Context) {
	var cfg merchantdomain.Configuration
	if err := c.ShouldBindJSON(&cfg); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.store.PutConfiguration(c.Request.Context(), s.shopID(c), cfg); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

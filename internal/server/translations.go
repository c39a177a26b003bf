package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	merchantdomain "github.com/smallbiznis/billora/internal/merchant/domain"
	"github.com/smallbiznis/billora/internal/translation"
)

// GetTranslations returns one complete label set per supported locale.
// Saved overrides win wholesale; everything else is the preset, so the
// editor always starts from fully populated fields.
func (s *Server) GetTranslations(c *gin.Context) {
	saved, err := s.store.GetTranslations(c.Request.Context(), s.shopID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	merged := make(map[string]translation.LabelSet, len(translation.Locales()))
	for _, locale := range translation.Locales() {
		merged[locale] = translation.Resolve(locale, saved)
	}
	c.JSON(http.StatusOK, gin.H{
		"locales":      translation.Locales(),
		"translations": merged,
	})
}

func (s *Server) PutTranslations(c *gin.Context) {
	var translations merchantdomain.Translations
	if err := c.ShouldBindJSON(&translations); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.store.PutTranslations(c.Request.Context(), s.shopID(c), translations); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

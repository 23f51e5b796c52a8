// internal/handlers/sitemap.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ecocupon/ecocanasta-api/internal/services"
	"github.com/ecocupon/ecocanasta-api/internal/utils"
)

type SitemapHandler struct {
	sitemapService *services.SitemapService
}

func NewSitemapHandler(sitemapService *services.SitemapService) *SitemapHandler {
	return &SitemapHandler{sitemapService: sitemapService}
}

// GET /sitemap.xml
func (h *SitemapHandler) GetSitemap(c *gin.Context) {
	body, err := h.sitemapService.Generate()
	if err != nil {
		logrus.WithError(err).Error("Failed to generate sitemap")
		utils.InternalErrorResponse(c, "")
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

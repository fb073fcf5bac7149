package handlers

import (
	"net/http"

	"auction-house/internal/services"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler exposes the dashboard aggregations
type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// GetCategoryBreakdown returns listings-per-category counts.
func (h *AnalyticsHandler) GetCategoryBreakdown(c *gin.Context) {
	counts, err := h.analytics.ListingsPerCategory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    counts,
	})
}

// GetSummary returns platform-wide totals.
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	summary, err := h.analytics.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}

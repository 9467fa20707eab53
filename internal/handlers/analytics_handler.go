package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"shop-queue/internal/status"
	"shop-queue/services"
)

type AnalyticsHandler struct {
	app       *pocketbase.PocketBase
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(app *pocketbase.PocketBase, analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		app:       app,
		analytics: analytics,
	}
}

// GetSummary - today/week/month dashboard summary for a shop
func (h *AnalyticsHandler) GetSummary(e *core.RequestEvent) error {
	shopID := e.Request.PathValue("shopId")

	summary, err := h.analytics.GetQueueAnalyticsSummary(e.Request.Context(), shopID)
	if err != nil {
		if errors.Is(err, status.ErrShopIDRequired) {
			return apis.NewBadRequestError("Shop ID required", err)
		}
		return apis.NewApiError(http.StatusInternalServerError, "Failed to build analytics summary", err)
	}

	return e.JSON(http.StatusOK, summary)
}

// OptimizeFlow - bottlenecks, recommendations and projected metrics
func (h *AnalyticsHandler) OptimizeFlow(e *core.RequestEvent) error {
	shopID := e.Request.PathValue("shopId")

	result, err := h.analytics.OptimizeQueueFlow(e.Request.Context(), shopID)
	if err != nil {
		if errors.Is(err, status.ErrShopIDRequired) {
			return apis.NewBadRequestError("Shop ID required", err)
		}
		return apis.NewApiError(http.StatusInternalServerError, "Failed to optimize queue flow", err)
	}

	return e.JSON(http.StatusOK, result)
}

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/negotiation_tracker/internal/core/ports/services"
	"github.com/SscSPs/negotiation_tracker/internal/dto"
	"github.com/SscSPs/negotiation_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

type dashboardHandler struct {
	views portssvc.ViewSvc
	now   func() time.Time
}

// RegisterDashboardRoutes registers the dashboard and forecast routes.
func RegisterDashboardRoutes(rg *gin.RouterGroup, views portssvc.ViewSvc) {
	h := &dashboardHandler{views: views, now: time.Now}

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("", h.getDashboard)
		dashboard.GET("/forecast", h.getForecast)
	}
}

// getDashboard godoc
// @Summary Dashboard
// @Description Totals, status breakdown and monthly amounts over the loaded collection.
// @Tags dashboard
// @Produce  json
// @Success 200 {object} dto.DashboardResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.views.Dashboard())
}

// getForecast godoc
// @Summary Revenue forecast
// @Description Aggregates computed by the remote store: forecast amount, wins this month and counts per status.
// @Tags dashboard
// @Produce  json
// @Success 200 {object} dto.ForecastResponse
// @Failure 502 {object} dto.ErrorResponse "Remote store error"
// @Failure 503 {object} dto.ErrorResponse "Remote store unavailable"
// @Security BearerAuth
// @Router /dashboard/forecast [get]
func (h *dashboardHandler) getForecast(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	forecast, err := h.views.Forecast(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to calculate forecast")
		return
	}
	logger.Debug("Forecast calculated", slog.Int64("forecast", forecast.Forecast))
	c.JSON(http.StatusOK, dto.ToForecastResponse(forecast, h.now().UTC()))
}

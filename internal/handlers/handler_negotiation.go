package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/negotiation_tracker/internal/core/ports/services"
	"github.com/SscSPs/negotiation_tracker/internal/dto"
	"github.com/SscSPs/negotiation_tracker/internal/export"
	"github.com/SscSPs/negotiation_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// negotiationHandler serves the negotiation list and the record endpoints.
type negotiationHandler struct {
	store portssvc.NegotiationStoreSvc
	views portssvc.ViewSvc
	now   func() time.Time
}

func newNegotiationHandler(store portssvc.NegotiationStoreSvc, views portssvc.ViewSvc) *negotiationHandler {
	return &negotiationHandler{store: store, views: views, now: time.Now}
}

// RegisterNegotiationRoutes registers routes related to negotiations.
func RegisterNegotiationRoutes(rg *gin.RouterGroup, store portssvc.NegotiationStoreSvc, views portssvc.ViewSvc) {
	h := newNegotiationHandler(store, views)

	negotiations := rg.Group("/negotiations")
	{
		negotiations.GET("", h.listNegotiations)
		negotiations.GET("/export", h.exportNegotiations)
		negotiations.GET("/query", h.queryNegotiations)
		negotiations.GET("/:id", h.getNegotiation)
		negotiations.DELETE("/:id", h.deleteNegotiation)
	}
}

// listNegotiations godoc
// @Summary List negotiations
// @Description Filters the loaded collection. All given filters must match. Status accepts a code, a label or ALL.
// @Tags negotiations
// @Produce  json
// @Param   keyword query string false "Substring of title or description"
// @Param   client  query string false "Substring of client"
// @Param   status  query string false "Status code or label"
// @Success 200 {object} dto.ListNegotiationsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /negotiations [get]
func (h *negotiationHandler) listNegotiations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var filter domain.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		logger.Warn("Failed to bind list filter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	items := h.views.List(filter)
	logger.Debug("Listed negotiations", slog.Int("count", len(items)))
	c.JSON(http.StatusOK, dto.ToListNegotiationResponse(items))
}

// exportNegotiations godoc
// @Summary Export negotiations as CSV
// @Description Downloads the filtered list. Takes the same filters as the list endpoint.
// @Tags negotiations
// @Produce  text/csv
// @Param   keyword query string false "Substring of title or description"
// @Param   client  query string false "Substring of client"
// @Param   status  query string false "Status code or label"
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Security BearerAuth
// @Router /negotiations/export [get]
func (h *negotiationHandler) exportNegotiations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var filter domain.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		logger.Warn("Failed to bind export filter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	items := h.views.List(filter)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(h.now())))
	c.Header("Content-Type", export.ContentType)
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, items); err != nil {
		// Headers are already sent; all that is left is to log.
		logger.Error("Failed to write CSV export", slog.String("error", err.Error()))
		return
	}
	logger.Info("Exported negotiations", slog.Int("count", len(items)))
}

// queryNegotiations godoc
// @Summary Query the remote store
// @Description Runs one remote filter directly against the store. At most one parameter may be given; none returns everything.
// @Tags negotiations
// @Produce  json
// @Param   status  query string false "Status code or label"
// @Param   client  query string false "Substring of client"
// @Param   keyword query string false "Substring of title or description"
// @Success 200 {object} dto.ListNegotiationsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 502 {object} dto.ErrorResponse "Remote store error"
// @Failure 503 {object} dto.ErrorResponse "Remote store unavailable"
// @Security BearerAuth
// @Router /negotiations/query [get]
func (h *negotiationHandler) queryNegotiations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.NegotiationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Failed to bind query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	items, err := h.views.Query(c.Request.Context(), q)
	if err != nil {
		respondError(c, logger, err, "Failed to query negotiations")
		return
	}
	c.JSON(http.StatusOK, dto.ToListNegotiationResponse(items))
}

// getNegotiation godoc
// @Summary Get a negotiation
// @Description Returns one record from the loaded collection.
// @Tags negotiations
// @Produce  json
// @Param   id path string true "Negotiation ID"
// @Success 200 {object} dto.NegotiationResponse
// @Failure 404 {object} dto.ErrorResponse "Negotiation not found"
// @Security BearerAuth
// @Router /negotiations/{id} [get]
func (h *negotiationHandler) getNegotiation(c *gin.Context) {
	id := c.Param("id")
	n, ok := h.store.Get(id)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Negotiation not in collection", slog.String("negotiation_id", id))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToNegotiationResponse(&n))
}

// deleteNegotiation godoc
// @Summary Delete a negotiation
// @Description Deletes the record in the remote store, then from the loaded collection.
// @Tags negotiations
// @Param   id path string true "Negotiation ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Negotiation not found"
// @Failure 502 {object} dto.ErrorResponse "Remote store error"
// @Failure 503 {object} dto.ErrorResponse "Remote store unavailable"
// @Security BearerAuth
// @Router /negotiations/{id} [delete]
func (h *negotiationHandler) deleteNegotiation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("id")
	logger = logger.With(slog.String("negotiation_id", id))

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Failed to delete negotiation")
		return
	}
	logger.Info("Negotiation deleted")
	c.Status(http.StatusNoContent)
}

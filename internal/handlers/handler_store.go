package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/negotiation_tracker/internal/core/ports/services"
	"github.com/SscSPs/negotiation_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

type storeHandler struct {
	store portssvc.NegotiationStoreSvc
}

// RegisterStoreRoutes registers the load state and reload routes.
func RegisterStoreRoutes(rg *gin.RouterGroup, store portssvc.NegotiationStoreSvc) {
	h := &storeHandler{store: store}

	s := rg.Group("/store")
	{
		s.GET("/status", h.getStatus)
		s.POST("/reload", h.reload)
	}
}

// getStatus godoc
// @Summary Store status
// @Description Load state of the in-memory collection. Message is set when the last load failed.
// @Tags store
// @Produce  json
// @Success 200 {object} domain.StoreStatus
// @Security BearerAuth
// @Router /store/status [get]
func (h *storeHandler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Status())
}

// reload godoc
// @Summary Reload from the remote store
// @Description Replaces the collection with the remote contents. On failure the previous records are kept.
// @Tags store
// @Produce  json
// @Success 200 {object} domain.StoreStatus
// @Failure 502 {object} dto.ErrorResponse "Remote store error"
// @Failure 503 {object} dto.ErrorResponse "Remote store unavailable"
// @Security BearerAuth
// @Router /store/reload [post]
func (h *storeHandler) reload(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.store.Load(c.Request.Context()); err != nil {
		respondError(c, logger, err, "Failed to reload negotiations")
		return
	}
	c.JSON(http.StatusOK, h.store.Status())
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/negotiation_tracker/internal/apperrors"
	"github.com/SscSPs/negotiation_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its HTTP status. fallback is the message
// shown for failures whose details should not reach the client.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var (
		verrs     apperrors.ValidationErrors
		remoteErr *apperrors.RemoteError
	)
	switch {
	case errors.As(err, &verrs):
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Fields: verrs.Fields()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrAssistBusy), errors.Is(err, apperrors.ErrSubmitInProgress):
		logger.Warn("Form busy", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrRemoteUnavailable):
		logger.Error("Remote store unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "Remote store unavailable"})
	case errors.As(err, &remoteErr):
		logger.Error("Remote store rejected request", slog.String("error", err.Error()), slog.String("code", remoteErr.Code))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: remoteErr.Message})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
	}
}

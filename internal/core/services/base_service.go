package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// RemoteTimeout bounds every remote store call. Zero means no bound.
	RemoteTimeout time.Duration
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// RemoteContext detaches ctx from the caller's cancellation so an in-flight
// remote call always completes and its response is applied, then applies
// RemoteTimeout. Values such as the request logger are kept.
func (s *BaseService) RemoteContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if s.RemoteTimeout > 0 {
		return context.WithTimeout(ctx, s.RemoteTimeout)
	}
	return ctx, func() {}
}

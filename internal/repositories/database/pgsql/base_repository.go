package pgsql

import (
	"context"
	"errors"
	"net"

	"github.com/SscSPs/negotiation_tracker/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// wrapErr converts a pgx failure into the remote error taxonomy.
// Connectivity problems and timeouts become RemoteUnavailableError; anything the
// server reported, or any other failure, becomes RemoteError.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &apperrors.RemoteError{Op: op, Code: pgErr.Code, Message: pgErr.Message, Err: err}
	}
	if isUnavailable(err) {
		return &apperrors.RemoteUnavailableError{Op: op, Err: err}
	}
	return &apperrors.RemoteError{Op: op, Message: err.Error(), Err: err}
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || pgconn.Timeout(err) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

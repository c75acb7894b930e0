package pgsql

import (
	portsrepo "github.com/SscSPs/negotiation_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type poolCloser struct{ pool *pgxpool.Pool }

func (c poolCloser) Close() error {
	c.pool.Close()
	return nil
}

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		NegotiationRepo: newPgxNegotiationRepository(dbPool),
		Closer:          poolCloser{pool: dbPool},
	}
}

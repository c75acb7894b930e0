package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/negotiation_tracker/internal/core/ports/repositories"
)

func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		NegotiationRepo: NewNegotiationRepository(db),
		Closer:          db,
	}
}

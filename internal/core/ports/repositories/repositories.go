package repositories

import "io"

// RepositoryProvider holds all repository interfaces needed by services.
// Closer releases the underlying connection (pool or database handle).
type RepositoryProvider struct {
	NegotiationRepo NegotiationRepositoryFacade
	Closer          io.Closer
}

package services

import (
	"github.com/SscSPs/negotiation_tracker/internal/ai"
	portsrepo "github.com/SscSPs/negotiation_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/negotiation_tracker/internal/core/ports/services"
	"github.com/SscSPs/negotiation_tracker/internal/platform/config"
	"github.com/SscSPs/negotiation_tracker/internal/platform/metrics"
)

// Dependencies are the collaborators of the services that are not repositories.
type Dependencies struct {
	Assistant ai.Optional
	Metrics   *metrics.Metrics     // Optional
	Forms     *FormSessionRegistry // Created from cfg.FormSessionTTL when nil
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, deps Dependencies) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	storeOpts := []StoreOption{WithRemoteTimeout(cfg.RemoteTimeout)}
	if deps.Metrics != nil {
		storeOpts = append(storeOpts, WithStoreObserver(deps.Metrics))
	}
	container.Store = NewNegotiationStore(repos.NegotiationRepo, storeOpts...)

	container.Views = NewViewService(
		container.Store,
		repos.NegotiationRepo,
		WithViewRemoteTimeout(cfg.RemoteTimeout),
	)

	registry := deps.Forms
	if registry == nil {
		registry = NewFormSessionRegistry(cfg.FormSessionTTL)
	}
	if deps.Metrics != nil {
		registry.OnChange(deps.Metrics.SetOpenForms)
	}
	container.Forms = NewFormService(
		container.Store,
		registry,
		WithAssistant(deps.Assistant),
		WithNegotiationReader(repos.NegotiationRepo),
		WithAssistTimeout(cfg.RemoteTimeout),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.NegotiationStoreSvc = (*negotiationStore)(nil)
	_ portssvc.ViewSvc             = (*viewService)(nil)
	_ portssvc.FormSvc             = (*formService)(nil)
	_ StoreObserver                = (*metrics.Metrics)(nil)
)

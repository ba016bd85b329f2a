package services

import (
	"log/slog"

	"github.com/SscSPs/pos_terminal/internal/core/engine"
	portsrepo "github.com/SscSPs/pos_terminal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_terminal/internal/core/ports/services"
	"github.com/SscSPs/pos_terminal/internal/platform/config"
	"github.com/SscSPs/pos_terminal/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.TerminalMetrics, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	options := []TerminalServiceOption{
		WithTerminalMetrics(m),
		WithEngineOptions(
			engine.WithTaxRate(cfg.TaxRate),
			engine.WithLogger(logger.With("component", "engine", "terminal_id", cfg.TerminalID)),
		),
	}
	if repos.DocumentRepo != nil {
		persister := NewDocumentPersister(repos.DocumentRepo, cfg.TerminalID, cfg.PersistDebounce,
			WithPersisterMetrics(m),
			WithPersisterLogger(logger.With("component", "persister")),
		)
		options = append(options, WithDocumentRepository(repos.DocumentRepo), WithDocumentPersister(persister))
	}
	container.Terminal = NewTerminalService(cfg.TerminalID, options...)

	return container
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/pos_terminal/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_terminal/internal/core/ports/repositories"
	"github.com/SscSPs/pos_terminal/internal/platform/metrics"
)

const (
	// persistTimeout bounds a single background save.
	persistTimeout = 5 * time.Second
	// maxRetryDelay caps the backoff between failed background saves.
	maxRetryDelay = 30 * time.Second
)

// DocumentPersister coalesces terminal snapshots and writes the latest one to the
// repository after a quiet period. Enqueue never blocks on I/O.
type DocumentPersister struct {
	repo       portsrepo.TerminalDocumentWriter
	terminalID string
	debounce   time.Duration
	metrics    *metrics.TerminalMetrics
	logger     *slog.Logger

	mu       sync.Mutex
	pending  *domain.TerminalDocument
	timer    *time.Timer
	failures int

	// saveMu keeps saves in order so an older snapshot never overwrites a newer one.
	saveMu sync.Mutex
}

// PersisterOption is a functional option for configuring the persister
type PersisterOption func(*DocumentPersister)

// WithPersisterMetrics records save durations and failures.
func WithPersisterMetrics(m *metrics.TerminalMetrics) PersisterOption {
	return func(p *DocumentPersister) {
		p.metrics = m
	}
}

// WithPersisterLogger sets the logger used for background saves.
func WithPersisterLogger(logger *slog.Logger) PersisterOption {
	return func(p *DocumentPersister) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewDocumentPersister creates a persister writing to repo under terminalID.
func NewDocumentPersister(repo portsrepo.TerminalDocumentWriter, terminalID string, debounce time.Duration, options ...PersisterOption) *DocumentPersister {
	p := &DocumentPersister{
		repo:       repo,
		terminalID: terminalID,
		debounce:   debounce,
		logger:     slog.Default(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Enqueue records doc as the latest state and (re)starts the debounce timer.
func (p *DocumentPersister) Enqueue(doc domain.TerminalDocument) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = &doc
	if p.timer == nil {
		p.timer = time.AfterFunc(p.debounce, p.fire)
		return
	}
	p.timer.Reset(p.debounce)
}

func (p *DocumentPersister) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	err := p.save(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err == nil {
		p.failures = 0
		return
	}
	p.failures++
	if p.pending != nil {
		delay := p.retryDelay()
		p.logger.Warn("Retrying terminal document save",
			slog.String("terminal_id", p.terminalID),
			slog.Int("attempt", p.failures+1),
			slog.Duration("delay", delay))
		p.timer.Reset(delay)
	}
}

// retryDelay doubles the debounce per consecutive failure up to maxRetryDelay.
// Callers hold mu.
func (p *DocumentPersister) retryDelay() time.Duration {
	delay := p.debounce
	for i := 1; i < p.failures && delay < maxRetryDelay; i++ {
		delay *= 2
	}
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}

// Flush stops the debounce timer and writes any pending snapshot now.
func (p *DocumentPersister) Flush(ctx context.Context) error {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.mu.Unlock()
	return p.save(ctx)
}

// Discard deletes the stored document and drops any pending snapshot. When the
// delete fails the pending snapshot is kept and its save rescheduled.
func (p *DocumentPersister) Discard(ctx context.Context) error {
	p.saveMu.Lock()
	defer p.saveMu.Unlock()

	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.mu.Unlock()

	if err := p.repo.DeleteDocument(ctx, p.terminalID); err != nil {
		p.mu.Lock()
		if p.pending != nil && p.timer != nil {
			p.timer.Reset(p.debounce)
		}
		p.mu.Unlock()
		return fmt.Errorf("failed to delete terminal %s: %w", p.terminalID, err)
	}

	p.mu.Lock()
	p.pending = nil
	p.failures = 0
	p.mu.Unlock()
	p.logger.Info("Discarded terminal document", slog.String("terminal_id", p.terminalID))
	return nil
}

func (p *DocumentPersister) save(ctx context.Context) error {
	p.saveMu.Lock()
	defer p.saveMu.Unlock()

	p.mu.Lock()
	doc := p.pending
	p.pending = nil
	p.mu.Unlock()
	if doc == nil {
		return nil
	}

	start := time.Now()
	err := p.repo.SaveDocument(ctx, p.terminalID, *doc)
	p.metrics.ObservePersist(time.Since(start), err)
	if err != nil {
		p.logger.Error("Failed to persist terminal document",
			slog.String("terminal_id", p.terminalID),
			slog.String("error", err.Error()))
		// keep the snapshot for the next attempt unless a newer one arrived
		p.mu.Lock()
		if p.pending == nil {
			p.pending = doc
		}
		p.mu.Unlock()
		return fmt.Errorf("failed to persist terminal %s: %w", p.terminalID, err)
	}
	p.logger.Debug("Persisted terminal document",
		slog.String("terminal_id", p.terminalID),
		slog.Int("transactions", len(doc.Transactions)))
	return nil
}

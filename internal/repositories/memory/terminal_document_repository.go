package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/pos_terminal/internal/apperrors"
	"github.com/SscSPs/pos_terminal/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_terminal/internal/core/ports/repositories"
)

// TerminalDocumentRepository keeps terminal documents in process memory.
// State is lost on restart.
type TerminalDocumentRepository struct {
	mu   sync.RWMutex
	docs map[string]domain.TerminalDocument
}

// NewTerminalDocumentRepository creates an empty in-memory repository.
func NewTerminalDocumentRepository() *TerminalDocumentRepository {
	return &TerminalDocumentRepository{docs: make(map[string]domain.TerminalDocument)}
}

var _ portsrepo.TerminalDocumentRepositoryFacade = (*TerminalDocumentRepository)(nil)

func (r *TerminalDocumentRepository) SaveDocument(_ context.Context, terminalID string, doc domain.TerminalDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[terminalID] = doc.Clone()
	return nil
}

func (r *TerminalDocumentRepository) LoadDocument(_ context.Context, terminalID string) (*domain.TerminalDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[terminalID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := doc.Clone()
	return &out, nil
}

func (r *TerminalDocumentRepository) DeleteDocument(_ context.Context, terminalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, terminalID)
	return nil
}

// NewRepositoryProvider wires the in-memory repositories.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{DocumentRepo: NewTerminalDocumentRepository()}
}

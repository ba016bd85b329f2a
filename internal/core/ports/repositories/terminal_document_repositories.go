package repositories

import (
	"context"

	"github.com/SscSPs/pos_terminal/internal/core/domain"
)

// TerminalDocumentReader defines read operations for persisted terminal state
type TerminalDocumentReader interface {
	// LoadDocument returns the last saved document of a terminal.
	// It returns apperrors.ErrNotFound when nothing has been saved yet.
	LoadDocument(ctx context.Context, terminalID string) (*domain.TerminalDocument, error)
}

// TerminalDocumentWriter defines write operations for persisted terminal state
type TerminalDocumentWriter interface {
	// SaveDocument replaces the stored document of a terminal.
	SaveDocument(ctx context.Context, terminalID string, doc domain.TerminalDocument) error

	// DeleteDocument removes the stored document. Deleting a missing document is not an error.
	DeleteDocument(ctx context.Context, terminalID string) error
}

// TerminalDocumentRepositoryFacade combines all terminal document repository interfaces
type TerminalDocumentRepositoryFacade interface {
	TerminalDocumentReader
	TerminalDocumentWriter
}

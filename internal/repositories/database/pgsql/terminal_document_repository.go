package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/pos_terminal/internal/apperrors"
	"github.com/SscSPs/pos_terminal/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_terminal/internal/core/ports/repositories"
	"github.com/SscSPs/pos_terminal/internal/models"
	"github.com/SscSPs/pos_terminal/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxTerminalDocumentRepository stores one JSONB document per terminal.
type PgxTerminalDocumentRepository struct {
	BaseRepository
}

func newPgxTerminalDocumentRepository(db DBTX) portsrepo.TerminalDocumentRepositoryFacade {
	return &PgxTerminalDocumentRepository{BaseRepository: BaseRepository{DB: db}}
}

// NewPgxTerminalDocumentRepository creates a new repository for terminal documents.
func NewPgxTerminalDocumentRepository(db DBTX) portsrepo.TerminalDocumentRepositoryFacade {
	return newPgxTerminalDocumentRepository(db)
}

var _ portsrepo.TerminalDocumentRepositoryFacade = (*PgxTerminalDocumentRepository)(nil)

// SaveDocument upserts the document of a terminal.
func (r *PgxTerminalDocumentRepository) SaveDocument(ctx context.Context, terminalID string, doc domain.TerminalDocument) error {
	modelDoc, err := mapping.ToModelTerminalDocument(terminalID, doc)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO terminal_documents (terminal_id, schema_version, document, active_transaction_id, transaction_count, saved_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (terminal_id) DO UPDATE SET
			schema_version = EXCLUDED.schema_version,
			document = EXCLUDED.document,
			active_transaction_id = EXCLUDED.active_transaction_id,
			transaction_count = EXCLUDED.transaction_count,
			saved_at = EXCLUDED.saved_at,
			updated_at = NOW();
	`
	_, err = r.DB.Exec(ctx, query,
		modelDoc.TerminalID,
		modelDoc.SchemaVersion,
		string(modelDoc.Document), // text parameter cast to jsonb by the column type
		modelDoc.ActiveTransactionID,
		modelDoc.TransactionCount,
		modelDoc.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save terminal document %s: %w", terminalID, err)
	}
	return nil
}

// LoadDocument retrieves the document of a terminal.
func (r *PgxTerminalDocumentRepository) LoadDocument(ctx context.Context, terminalID string) (*domain.TerminalDocument, error) {
	query := `
		SELECT terminal_id, schema_version, document, active_transaction_id, transaction_count, saved_at, created_at, updated_at
		FROM terminal_documents
		WHERE terminal_id = $1;
	`
	var modelDoc models.TerminalDocument
	err := r.DB.QueryRow(ctx, query, terminalID).Scan(
		&modelDoc.TerminalID,
		&modelDoc.SchemaVersion,
		&modelDoc.Document,
		&modelDoc.ActiveTransactionID,
		&modelDoc.TransactionCount,
		&modelDoc.SavedAt,
		&modelDoc.CreatedAt,
		&modelDoc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load terminal document %s: %w", terminalID, err)
	}
	return mapping.ToDomainTerminalDocument(modelDoc)
}

// DeleteDocument removes the document of a terminal.
func (r *PgxTerminalDocumentRepository) DeleteDocument(ctx context.Context, terminalID string) error {
	if _, err := r.DB.Exec(ctx, `DELETE FROM terminal_documents WHERE terminal_id = $1;`, terminalID); err != nil {
		return fmt.Errorf("failed to delete terminal document %s: %w", terminalID, err)
	}
	return nil
}

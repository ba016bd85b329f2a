package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/pos_terminal/internal/core/domain"
	"github.com/SscSPs/pos_terminal/internal/models"
)

// ToModelTerminalDocument converts a domain TerminalDocument to its persisted model.
func ToModelTerminalDocument(terminalID string, d domain.TerminalDocument) (models.TerminalDocument, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return models.TerminalDocument{}, fmt.Errorf("failed to encode terminal document %s: %w", terminalID, err)
	}
	return models.TerminalDocument{
		TerminalID:          terminalID,
		SchemaVersion:       models.TerminalDocumentSchemaVersion,
		Document:            raw,
		ActiveTransactionID: d.ActiveTransactionID,
		TransactionCount:    len(d.Transactions),
		SavedAt:             d.SavedAt,
	}, nil
}

// ToDomainTerminalDocument decodes a persisted model back into a domain TerminalDocument.
// Timestamps are revived as time.Time and amounts as decimals by the JSON decoder.
func ToDomainTerminalDocument(m models.TerminalDocument) (*domain.TerminalDocument, error) {
	if m.SchemaVersion > models.TerminalDocumentSchemaVersion {
		return nil, fmt.Errorf("terminal document %s has unsupported schema version %d", m.TerminalID, m.SchemaVersion)
	}
	var d domain.TerminalDocument
	if err := json.Unmarshal(m.Document, &d); err != nil {
		return nil, fmt.Errorf("failed to decode terminal document %s: %w", m.TerminalID, err)
	}
	return &d, nil
}

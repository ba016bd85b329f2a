package models

import "time"

// TerminalDocumentSchemaVersion is bumped whenever the JSON layout of the
// persisted document changes incompatibly.
const TerminalDocumentSchemaVersion = 1

// TerminalDocument is the persisted form of a terminal's state. The document
// column holds the JSON encoding; the other columns are denormalized for queries.
type TerminalDocument struct {
	TerminalID          string    `db:"terminal_id" json:"terminalId"`
	SchemaVersion       int       `db:"schema_version" json:"schemaVersion"`
	Document            []byte    `db:"document" json:"document"`
	ActiveTransactionID string    `db:"active_transaction_id" json:"activeTransactionId"`
	TransactionCount    int       `db:"transaction_count" json:"transactionCount"`
	SavedAt             time.Time `db:"saved_at" json:"savedAt"`
	AuditFields
}

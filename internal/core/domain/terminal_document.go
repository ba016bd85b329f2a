package domain

import "time"

// ViewMode is the product grid layout preferred by the operator.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Preferences are lightweight UI settings persisted with the terminal state.
type Preferences struct {
	ViewMode       ViewMode `json:"viewMode"`
	ScannerEnabled bool     `json:"scannerEnabled"`
}

// DefaultPreferences returns the preferences of a fresh terminal.
func DefaultPreferences() Preferences {
	return Preferences{ViewMode: ViewGrid, ScannerEnabled: true}
}

// TerminalDocument is the single persisted document of a terminal: every open tab,
// the active tab pointer and UI preferences.
type TerminalDocument struct {
	Transactions        []Transaction `json:"transactions"`
	ActiveTransactionID string        `json:"activeTransactionId"`
	Preferences         Preferences   `json:"preferences"`
	SavedAt             time.Time     `json:"savedAt"`
}

// Clone deep-copies the document.
func (d TerminalDocument) Clone() TerminalDocument {
	out := d
	out.Transactions = make([]Transaction, len(d.Transactions))
	for i, tx := range d.Transactions {
		out.Transactions[i] = tx.Clone()
	}
	return out
}

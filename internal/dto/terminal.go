package dto

import (
	"github.com/SscSPs/pos_terminal/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdatePreferencesRequest replaces the persisted UI preferences.
type UpdatePreferencesRequest struct {
	ViewMode       domain.ViewMode `json:"viewMode" binding:"required,oneof=grid list"`
	ScannerEnabled *bool           `json:"scannerEnabled" binding:"required"`
}

// TerminalResponse is the whole terminal state as seen by the register UI.
type TerminalResponse struct {
	ActiveTransactionID string                `json:"activeTransactionId"`
	Transactions        []TransactionResponse `json:"transactions"`
	Preferences         domain.Preferences    `json:"preferences"`
	TaxRate             decimal.Decimal       `json:"taxRate"`
}

// ToTerminalResponse converts a terminal document to TerminalResponse DTO.
func ToTerminalResponse(doc domain.TerminalDocument, taxRate decimal.Decimal) TerminalResponse {
	return TerminalResponse{
		ActiveTransactionID: doc.ActiveTransactionID,
		Transactions:        ToTransactionResponses(doc.Transactions, doc.ActiveTransactionID),
		Preferences:         doc.Preferences,
		TaxRate:             taxRate,
	}
}

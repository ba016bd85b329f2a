package services

import (
	"context"

	"github.com/SscSPs/pos_terminal/internal/core/domain"
	"github.com/SscSPs/pos_terminal/internal/dto"
	"github.com/shopspring/decimal"
)

// TerminalReaderSvc defines read operations over the terminal state
type TerminalReaderSvc interface {
	// GetDocument returns a snapshot of every transaction plus preferences.
	GetDocument(ctx context.Context) domain.TerminalDocument

	// GetTransaction returns a snapshot of one transaction.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// GetActiveTransaction returns a snapshot of the transaction being edited.
	GetActiveTransaction(ctx context.Context) (*domain.Transaction, error)

	// GetSplitSummary reports the split-payment progress of the active transaction.
	GetSplitSummary(ctx context.Context) (domain.SplitSummary, error)

	// TaxRate returns the flat rate applied to every subtotal.
	TaxRate() decimal.Decimal
}

// TerminalLifecycleSvc defines operations on the set of open transactions
type TerminalLifecycleSvc interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
	SetActiveTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
	RenameTransaction(ctx context.Context, transactionID string, req dto.RenameTransactionRequest) (*domain.Transaction, error)
	ParkTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
	VoidTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
	CompleteTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
	SetCustomer(ctx context.Context, transactionID string, req dto.SetCustomerRequest) (*domain.Transaction, error)
	UpdatePreferences(ctx context.Context, req dto.UpdatePreferencesRequest) (domain.Preferences, error)

	// ResetTerminal discards every transaction and the stored document, leaving one fresh sale.
	ResetTerminal(ctx context.Context) (domain.TerminalDocument, error)
}

// TerminalCartSvc defines item, discount and charge operations on the active transaction
type TerminalCartSvc interface {
	AddItem(ctx context.Context, req dto.AddItemRequest) (*domain.Transaction, error)
	RemoveItem(ctx context.Context, itemID string) (*domain.Transaction, error)
	SetItemQuantity(ctx context.Context, itemID string, req dto.SetQuantityRequest) (*domain.Transaction, error)
	SetItemUnitPrice(ctx context.Context, itemID string, req dto.SetUnitPriceRequest) (*domain.Transaction, error)
	SetItemDiscount(ctx context.Context, itemID string, req dto.DiscountRequest) (*domain.Transaction, error)
	SetItemNote(ctx context.Context, itemID string, req dto.SetNoteRequest) (*domain.Transaction, error)
	AddItemModifier(ctx context.Context, itemID string, req dto.AddModifierRequest) (*domain.Transaction, error)
	RemoveItemModifier(ctx context.Context, itemID, modifierID string) (*domain.Transaction, error)
	ClearCart(ctx context.Context) (*domain.Transaction, error)
	ApplyTransactionDiscount(ctx context.Context, req dto.DiscountRequest) (*domain.Transaction, error)
	AddAdditionalCharge(ctx context.Context, req dto.AddChargeRequest) (*domain.Transaction, error)
	RemoveAdditionalCharge(ctx context.Context, chargeID string) (*domain.Transaction, error)
}

// TerminalSplitSvc defines split-payment operations on the active transaction
type TerminalSplitSvc interface {
	EnableSplitPayment(ctx context.Context) (*domain.Transaction, error)
	DisableSplitPayment(ctx context.Context) (*domain.Transaction, error)
	AddSplit(ctx context.Context, req dto.AddSplitRequest) (*domain.Transaction, error)
	AddEqualSplits(ctx context.Context, req dto.EqualSplitRequest) (*domain.Transaction, error)
	UpdateSplit(ctx context.Context, splitID string, req dto.UpdateSplitRequest) (*domain.Transaction, error)
	RemoveSplit(ctx context.Context, splitID string) (*domain.Transaction, error)
	MarkSplitPaid(ctx context.Context, splitID string, req dto.MarkSplitPaidRequest) (*domain.Transaction, error)
	RecalculateSplits(ctx context.Context) (*domain.Transaction, error)
}

// TerminalSvcFacade combines all terminal-related service interfaces
type TerminalSvcFacade interface {
	TerminalReaderSvc
	TerminalLifecycleSvc
	TerminalCartSvc
	TerminalSplitSvc

	// Load restores the terminal from its repository. A missing document leaves the fresh state.
	Load(ctx context.Context) error

	// Flush writes any pending state to the repository immediately.
	Flush(ctx context.Context) error
}

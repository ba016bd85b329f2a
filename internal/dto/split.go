package dto

import (
	"time"

	"github.com/SscSPs/pos_terminal/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddSplitRequest appends a split. Amount is used by equal and amount splits,
// Percentage by percentage splits and ItemIDs by items splits.
type AddSplitRequest struct {
	Name       string           `json:"name" binding:"max=64"`
	SplitType  domain.SplitType `json:"splitType" binding:"required,oneof=equal amount percentage items"`
	Amount     decimal.Decimal  `json:"amount" binding:"gte=0"`
	Percentage *decimal.Decimal `json:"percentage" binding:"omitempty,gte=0,lte=100"`
	ItemIDs    []string         `json:"itemIds" binding:"omitempty,dive,required"`
}

// EqualSplitRequest divides the frozen total into Count equal splits.
type EqualSplitRequest struct {
	Count int `json:"count" binding:"required,min=1,max=50"`
}

// UpdateSplitRequest patches a split; absent fields are left untouched.
type UpdateSplitRequest struct {
	Name          *string           `json:"name" binding:"omitempty,max=64"`
	SplitType     *domain.SplitType `json:"splitType" binding:"omitempty,oneof=equal amount percentage items"`
	Amount        *decimal.Decimal  `json:"amount" binding:"omitempty,gte=0"`
	Percentage    *decimal.Decimal  `json:"percentage" binding:"omitempty,gte=0,lte=100"`
	ItemIDs       *[]string         `json:"itemIds"`
	PaymentMethod *string           `json:"paymentMethod" binding:"omitempty,max=32"`
}

// MarkSplitPaidRequest records how a split was paid.
type MarkSplitPaidRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required,max=32"`
}

// PaymentSplitResponse defines the data returned for a split.
type PaymentSplitResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	SplitType     domain.SplitType `json:"splitType"`
	Amount        decimal.Decimal  `json:"amount"`
	Percentage    *decimal.Decimal `json:"percentage,omitempty"`
	ItemIDs       []string         `json:"itemIds,omitempty"`
	IsPaid        bool             `json:"isPaid"`
	PaymentMethod string           `json:"paymentMethod,omitempty"`
	PaidAt        *time.Time       `json:"paidAt,omitempty"`
}

// SplitPaymentResponse is the split configuration plus its derived summary.
type SplitPaymentResponse struct {
	Enabled         bool                   `json:"enabled"`
	Splits          []PaymentSplitResponse `json:"splits"`
	TotalAmount     decimal.Decimal        `json:"totalAmount"`
	RemainingAmount decimal.Decimal        `json:"remainingAmount"`
	Summary         domain.SplitSummary    `json:"summary"`
}

// ToSplitPaymentResponse converts the split state of tx; nil when splitting is off.
func ToSplitPaymentResponse(tx *domain.Transaction) *SplitPaymentResponse {
	cfg := tx.SplitPayment
	if cfg == nil {
		return nil
	}
	splits := make([]PaymentSplitResponse, len(cfg.Splits))
	for i, s := range cfg.Splits {
		splits[i] = PaymentSplitResponse{
			ID:            s.ID,
			Name:          s.Name,
			SplitType:     s.SplitType,
			Amount:        s.Amount,
			Percentage:    s.Percentage,
			ItemIDs:       s.ItemIDs,
			IsPaid:        s.IsPaid,
			PaymentMethod: s.PaymentMethod,
			PaidAt:        s.PaidAt,
		}
	}
	return &SplitPaymentResponse{
		Enabled:         cfg.Enabled,
		Splits:          splits,
		TotalAmount:     cfg.TotalAmount,
		RemainingAmount: cfg.RemainingAmount,
		Summary:         cfg.Summary(),
	}
}

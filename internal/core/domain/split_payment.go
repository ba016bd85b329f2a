package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitType selects how a split's amount is resolved.
type SplitType string

const (
	SplitEqual      SplitType = "equal"
	SplitAmount     SplitType = "amount"
	SplitPercentage SplitType = "percentage"
	SplitItems      SplitType = "items"
)

// IsValid reports whether the split type is one of the known strategies.
func (t SplitType) IsValid() bool {
	switch t {
	case SplitEqual, SplitAmount, SplitPercentage, SplitItems:
		return true
	}
	return false
}

// IsDerived reports whether the amount is re-derived on recalculation
// rather than supplied by the caller.
func (t SplitType) IsDerived() bool {
	return t == SplitPercentage || t == SplitItems
}

// PaymentSplit is one payer's portion of a transaction total.
type PaymentSplit struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	SplitType     SplitType        `json:"splitType"`
	Amount        decimal.Decimal  `json:"amount"`
	Percentage    *decimal.Decimal `json:"percentage,omitempty"`
	ItemIDs       []string         `json:"itemIds,omitempty"`
	IsPaid        bool             `json:"isPaid"`
	PaymentMethod string           `json:"paymentMethod,omitempty"`
	PaidAt        *time.Time       `json:"paidAt,omitempty"`
}

// SplitPaymentConfig holds bill-splitting state of a transaction.
// TotalAmount is frozen when splitting is enabled.
type SplitPaymentConfig struct {
	Enabled         bool            `json:"enabled"`
	Splits          []PaymentSplit  `json:"splits"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
}

// SplitIndex returns the position of the split with the given id, or -1.
func (c *SplitPaymentConfig) SplitIndex(splitID string) int {
	for i := range c.Splits {
		if c.Splits[i].ID == splitID {
			return i
		}
	}
	return -1
}

// PaidAmount sums the amounts of all paid splits.
func (c *SplitPaymentConfig) PaidAmount() decimal.Decimal {
	paid := decimal.Zero
	for _, s := range c.Splits {
		if s.IsPaid {
			paid = paid.Add(s.Amount)
		}
	}
	return paid
}

// AllocatedAmount sums the amounts of every split, paid or not.
func (c *SplitPaymentConfig) AllocatedAmount() decimal.Decimal {
	sum := decimal.Zero
	for _, s := range c.Splits {
		sum = sum.Add(s.Amount)
	}
	return sum
}

// IsFullyPaid is true when at least one split exists and every split is paid.
func (c *SplitPaymentConfig) IsFullyPaid() bool {
	if len(c.Splits) == 0 {
		return false
	}
	for _, s := range c.Splits {
		if !s.IsPaid {
			return false
		}
	}
	return true
}

// IsOverSplit reports a negative remaining amount.
func (c *SplitPaymentConfig) IsOverSplit() bool {
	return c.RemainingAmount.IsNegative()
}

// Clone deep-copies the config.
func (c SplitPaymentConfig) Clone() SplitPaymentConfig {
	out := c
	out.Splits = make([]PaymentSplit, len(c.Splits))
	for i, s := range c.Splits {
		cp := s
		if s.Percentage != nil {
			p := *s.Percentage
			cp.Percentage = &p
		}
		if s.PaidAt != nil {
			at := *s.PaidAt
			cp.PaidAt = &at
		}
		cp.ItemIDs = append([]string(nil), s.ItemIDs...)
		out.Splits[i] = cp
	}
	return out
}

// SplitSummary is a read-only projection of a transaction's split state.
type SplitSummary struct {
	Enabled         bool            `json:"enabled"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	SplitCount      int             `json:"splitCount"`
	PaidCount       int             `json:"paidCount"`
	IsFullyPaid     bool            `json:"isFullyPaid"`
	IsOverSplit     bool            `json:"isOverSplit"`
}

// Summary projects the split progress. A nil config reports a disabled, empty summary.
func (c *SplitPaymentConfig) Summary() SplitSummary {
	if c == nil {
		return SplitSummary{}
	}
	paidCount := 0
	for _, s := range c.Splits {
		if s.IsPaid {
			paidCount++
		}
	}
	return SplitSummary{
		Enabled:         c.Enabled,
		TotalAmount:     c.TotalAmount,
		AllocatedAmount: c.AllocatedAmount(),
		PaidAmount:      c.PaidAmount(),
		RemainingAmount: c.RemainingAmount,
		SplitCount:      len(c.Splits),
		PaidCount:       paidCount,
		IsFullyPaid:     c.IsFullyPaid(),
		IsOverSplit:     c.IsOverSplit(),
	}
}

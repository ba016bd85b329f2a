package domain

import "github.com/shopspring/decimal"

// TransactionStatus is the lifecycle state of a sale.
type TransactionStatus string

const (
	StatusActive    TransactionStatus = "active"
	StatusParked    TransactionStatus = "parked"
	StatusVoided    TransactionStatus = "voided"
	StatusCompleted TransactionStatus = "completed"
)

// AdditionalCharge is a named non-item amount (delivery fee, service charge) that is
// summed into the subtotal before tax.
type AdditionalCharge struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Transaction is one sale in progress ("tab").
// Subtotal, Tax, Discount and Total are maintained by the engine:
// Total == Subtotal + Tax - Discount after every mutation.
type Transaction struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Status            TransactionStatus   `json:"status"`
	Items             []CartItem          `json:"items"`
	AdditionalCharges []AdditionalCharge  `json:"additionalCharges"`
	Subtotal          decimal.Decimal     `json:"subtotal"`
	Tax               decimal.Decimal     `json:"tax"`
	Discount          decimal.Decimal     `json:"discount"` // absolute amount
	Total             decimal.Decimal     `json:"total"`
	CustomerID        string              `json:"customerId,omitempty"`
	CustomerName      string              `json:"customerName,omitempty"`
	SplitPayment      *SplitPaymentConfig `json:"splitPayment,omitempty"`
	AuditFields
}

// IsEditable reports whether item, discount, charge and split commands may change the transaction.
func (t *Transaction) IsEditable() bool {
	return t.Status == StatusActive
}

// IsClosed reports whether the transaction reached a terminal status.
func (t *Transaction) IsClosed() bool {
	return t.Status == StatusVoided || t.Status == StatusCompleted
}

// ItemIndex returns the position of the item with the given id, or -1.
func (t *Transaction) ItemIndex(itemID string) int {
	for i := range t.Items {
		if t.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// ChargeIndex returns the position of the additional charge with the given id, or -1.
func (t *Transaction) ChargeIndex(chargeID string) int {
	for i := range t.AdditionalCharges {
		if t.AdditionalCharges[i].ID == chargeID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy safe to hand out as a read-only snapshot.
func (t Transaction) Clone() Transaction {
	c := t
	c.Items = make([]CartItem, len(t.Items))
	for i, item := range t.Items {
		c.Items[i] = item.Clone()
	}
	c.AdditionalCharges = append([]AdditionalCharge{}, t.AdditionalCharges...)
	if t.SplitPayment != nil {
		sp := t.SplitPayment.Clone()
		c.SplitPayment = &sp
	}
	return c
}

package engine_test

import (
	"fmt"
	"time"

	"github.com/SscSPs/pos_terminal/internal/core/domain"
	"github.com/SscSPs/pos_terminal/internal/core/engine"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// sequentialIDs yields "id-1", "id-2", ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// steppingClock advances one second per call.
type steppingClock struct {
	now time.Time
}

func (c *steppingClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func newClock() *steppingClock {
	return &steppingClock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func testOptions(taxRate string) []engine.Option {
	return []engine.Option{
		engine.WithTaxRate(d(taxRate)),
		engine.WithIDGenerator(sequentialIDs()),
		engine.WithClock(newClock().Now),
	}
}

func product(id, price string) *domain.Product {
	return &domain.Product{ID: id, Name: id, BasePrice: d(price)}
}

func newActiveTransaction() *domain.Transaction {
	return &domain.Transaction{
		ID:                "tx",
		Name:              "Sale #1",
		Status:            domain.StatusActive,
		Items:             []domain.CartItem{},
		AdditionalCharges: []domain.AdditionalCharge{},
	}
}

// balanced reports whether total == subtotal + tax - discount.
func balanced(tx domain.Transaction) bool {
	return tx.Total.Equal(tx.Subtotal.Add(tx.Tax).Sub(tx.Discount))
}

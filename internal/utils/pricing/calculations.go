package pricing

import (
	"github.com/SscSPs/pos_terminal/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate applies when no tax rate is configured.
var DefaultTaxRate = decimal.RequireFromString("0.08")

var hundred = decimal.NewFromInt(100)

// ItemTotals are the derived monetary values of a single cart line.
type ItemTotals struct {
	Gross          decimal.Decimal // unitPrice*quantity + modifiers
	DiscountAmount decimal.Decimal
	Subtotal       decimal.Decimal
	Total          decimal.Decimal
}

// TransactionTotals are the derived monetary values of a whole transaction.
type TransactionTotals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ItemGross is the undiscounted value of a line: unitPrice × quantity + Σ modifier prices.
func ItemGross(item domain.CartItem) decimal.Decimal {
	gross := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	for _, m := range item.Modifiers {
		gross = gross.Add(m.Price)
	}
	return gross
}

// DiscountAmount converts a discount value into an absolute amount against base.
// Percentage discounts are always taken from the undiscounted base so repeated
// recalculation never compounds them. Anything not marked percentage is treated as fixed.
func DiscountAmount(base, discount decimal.Decimal, discountType domain.DiscountType) decimal.Decimal {
	if discountType == domain.DiscountPercentage {
		return base.Mul(discount).Div(hundred)
	}
	return discount
}

// ComputeItemTotals derives subtotal and total of a cart line.
// No clamping happens here: invalid inputs yield negative values and must be
// rejected before they reach the engine.
func ComputeItemTotals(item domain.CartItem) ItemTotals {
	gross := ItemGross(item)
	discount := DiscountAmount(gross, item.Discount, item.DiscountType)
	subtotal := gross.Sub(discount)
	return ItemTotals{
		Gross:          gross,
		DiscountAmount: discount,
		Subtotal:       subtotal,
		Total:          subtotal.Add(item.Tax),
	}
}

// ChargesTotal sums the additional charges of a transaction.
func ChargesTotal(tx domain.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range tx.AdditionalCharges {
		sum = sum.Add(c.Amount)
	}
	return sum
}

// ComputeTransactionTotals derives subtotal, tax and total from the item subtotals
// currently stored on tx, its additional charges and its absolute discount.
func ComputeTransactionTotals(tx domain.Transaction, taxRate decimal.Decimal) TransactionTotals {
	subtotal := ChargesTotal(tx)
	for _, item := range tx.Items {
		subtotal = subtotal.Add(item.Subtotal)
	}
	tax := subtotal.Mul(taxRate)
	return TransactionTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax).Sub(tx.Discount),
	}
}

// ApplyItemTotals writes the derived values back onto the item.
func ApplyItemTotals(item *domain.CartItem) {
	totals := ComputeItemTotals(*item)
	item.Subtotal = totals.Subtotal
	item.Total = totals.Total
}

// Recalculate recomputes every item and then the transaction in place.
// Running it twice in a row yields identical values.
func Recalculate(tx *domain.Transaction, taxRate decimal.Decimal) {
	for i := range tx.Items {
		ApplyItemTotals(&tx.Items[i])
	}
	totals := ComputeTransactionTotals(*tx, taxRate)
	tx.Subtotal = totals.Subtotal
	tx.Tax = totals.Tax
	tx.Total = totals.Total
}

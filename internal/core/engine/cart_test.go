package engine_test

import (
	"testing"

	"github.com/SscSPs/pos_terminal/internal/core/domain"
	"github.com/SscSPs/pos_terminal/internal/core/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddItemCapturesVariationPrice(t *testing.T) {
	tx := newActiveTransaction()
	cart := engine.NewCart(tx, testOptions("0.08")...)
	p := &domain.Product{
		ID:         "latte",
		BasePrice:  d("4.00"),
		Variations: []domain.ProductVariation{{ID: "oat", Name: "Oat milk", PriceAdjustment: d("0.60")}},
	}

	id := cart.AddItem(p, 2, "oat")

	require.NotEmpty(t, id)
	require.Len(t, tx.Items, 1)
	item := tx.Items[0]
	assert.Equal(t, "oat", item.VariationID)
	assert.True(t, item.UnitPrice.Equal(d("4.60")))
	assert.True(t, item.Subtotal.Equal(d("9.20")))
	assert.Equal(t, domain.DiscountFixed, item.DiscountType)
	assert.Empty(t, item.Modifiers)
	assert.True(t, tx.Subtotal.Equal(d("9.20")))
	assert.False(t, tx.UpdatedAt.IsZero())

	p.BasePrice = d("100")
	cart.Recalculate()
	assert.True(t, tx.Items[0].UnitPrice.Equal(d("4.60")), "unit price is captured at add time")
}

func TestCart_ScenarioDiscountsAndTax(t *testing.T) {
	tx := newActiveTransaction()
	cart := engine.NewCart(tx, testOptions("0.08")...)

	itemID := cart.AddItem(product("A", "10.00"), 2, "")
	assert.True(t, tx.Subtotal.Equal(d("20.00")))

	require.True(t, cart.SetDiscount(itemID, d("10"), domain.DiscountPercentage))
	assert.True(t, tx.Subtotal.Equal(d("18.00")))
	assert.True(t, tx.Tax.Equal(d("1.44")))
	assert.True(t, tx.Total.Equal(d("19.44")))

	require.True(t, cart.ApplyTransactionDiscount(d("4.00"), domain.DiscountFixed))
	assert.True(t, tx.Total.Equal(d("15.44")))
	assert.True(t, balanced(*tx))
}

func TestCart_PercentageTransactionDiscountIsFrozen(t *testing.T) {
	tx := newActiveTransaction()
	cart := engine.NewCart(tx, testOptions("0")...)
	itemID := cart.AddItem(product("A", "50"), 2, "")

	require.True(t, cart.ApplyTransactionDiscount(d("10"), domain.DiscountPercentage))
	assert.True(t, tx.Discount.Equal(d("10")))

	require.True(t, cart.SetQuantity(itemID, 4))
	assert.True(t, tx.Discount.Equal(d("10")), "discount is not re-derived on item changes")
	assert.True(t, tx.Total.Equal(d("190")))
}

func TestCart_InvalidQuantityIsNoOp(t *testing.T) {
	tx := newActiveTransaction()
	cart := engine.NewCart(tx, testOptions("0.08")...)
	itemID := cart.AddItem(product("A", "3"), 1, "")
	before := tx.Clone()

	assert.False(t, cart.SetQuantity(itemID, 0))
	assert.False(t, cart.SetQuantity(itemID, -4))
	assert.Empty(t, cart.AddItem(product("B", "3"), 0, ""))

	assert.Equal(t, before, *tx)
}

func TestCart_UnknownIDsAreNoOps(t *testing.T) {
	tx := newActiveTransaction()
	cart := engine.NewCart(tx, testOptions("0.08")...)
	cart.AddItem(product("A", "3"), 1, "")
	before := tx.Clone()

	assert.False(t, cart.RemoveItem("missing"))
	assert.False(t, cart.SetQuantity("missing", 3))
	assert.False(t, cart.SetUnitPrice("missing", d("1")))
	assert.False(t, cart.SetDiscount("missing", d("1"), domain.DiscountFixed))
	assert.False(t, cart.SetNote("missing", "hi"))
	assert.Empty(t, cart.AddModifier("missing", domain.Modifier{Name: "x", Price: d("1")}))
	assert.False(t, cart.RemoveModifier("missing", "m"))
	assert.False(t, cart.RemoveCharge("missing"))

	assert.Equal(t, before, *tx)
}

func TestCart_ModifiersAndNotes(t *testing.T) {
	tx := newActiveTransaction()
	cart := engine.NewCart(tx, testOptions("0")...)
	itemID := cart.AddItem(product("burger", "9.00"), 1, "")

	modID := cart.AddModifier(itemID, domain.Modifier{Name: "extra cheese", Price: d("1.50")})
	require.NotEmpty(t, modID)
	assert.True(t, tx.Items[0].Subtotal.Equal(d("10.50")))

	assert.Empty(t, cart.AddModifier(itemID, domain.Modifier{ID: modID, Name: "dup", Price: d("9")}))

	totalBefore := tx.Total
	updatedBefore := tx.UpdatedAt
	require.True(t, cart.SetNote(itemID, "no onions"))
	assert.Equal(t, "no onions", tx.Items[0].Note)
	assert.True(t, tx.Total.Equal(totalBefore))
	assert.True(t, tx.UpdatedAt.After(updatedBefore))

	require.True(t, cart.RemoveModifier(itemID, modID))
	assert.True(t, tx.Items[0].Subtotal.Equal(d("9.00")))
}

func TestCart_UnitPriceOverrideRemoveAndClear(t *testing.T) {
	tx := newActiveTransaction()
	cart := engine.NewCart(tx, testOptions("0.10")...)
	first := cart.AddItem(product("A", "10"), 1, "")
	second := cart.AddItem(product("B", "5"), 2, "")

	require.True(t, cart.SetUnitPrice(first, d("8")))
	assert.True(t, tx.Subtotal.Equal(d("18")))

	require.True(t, cart.RemoveItem(second))
	require.Len(t, tx.Items, 1)
	assert.Equal(t, first, tx.Items[0].ID)
	assert.True(t, tx.Total.Equal(d("8.8")))

	require.True(t, cart.ApplyTransactionDiscount(d("4"), domain.DiscountFixed))
	require.True(t, cart.AddCharge("delivery", "Delivery fee", d("5")))

	require.True(t, cart.Clear())
	assert.Empty(t, tx.Items)
	assert.Empty(t, tx.AdditionalCharges)
	assert.True(t, tx.Subtotal.IsZero())
	assert.True(t, tx.Tax.IsZero())
	assert.True(t, tx.Discount.IsZero())
	assert.True(t, tx.Total.IsZero())

	assert.False(t, cart.RemoveCharge("delivery"), "charge went with the clear")
	assert.True(t, tx.Total.IsZero())
}

func TestCart_AdditionalChargesAreIdempotent(t *testing.T) {
	tx := newActiveTransaction()
	cart := engine.NewCart(tx, testOptions("0.08")...)
	cart.AddItem(product("A", "10"), 1, "")

	require.True(t, cart.AddCharge("delivery", "Delivery fee", d("5")))
	assert.False(t, cart.AddCharge("delivery", "Delivery fee", d("5")))
	require.Len(t, tx.AdditionalCharges, 1)
	assert.True(t, tx.Subtotal.Equal(d("15")))
	assert.True(t, tx.Tax.Equal(d("1.2")))

	require.True(t, cart.RemoveCharge("delivery"))
	assert.True(t, tx.Subtotal.Equal(d("10")))
}

func TestCart_IgnoresNonEditableTransactions(t *testing.T) {
	for _, status := range []domain.TransactionStatus{domain.StatusParked, domain.StatusVoided, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			tx := newActiveTransaction()
			tx.Status = status
			cart := engine.NewCart(tx, testOptions("0.08")...)

			assert.Empty(t, cart.AddItem(product("A", "1"), 1, ""))
			assert.False(t, cart.Clear())
			assert.False(t, cart.ApplyTransactionDiscount(d("1"), domain.DiscountFixed))
			assert.Empty(t, tx.Items)
		})
	}
}

func TestCart_InvariantHoldsAcrossMixedSequence(t *testing.T) {
	tx := newActiveTransaction()
	cart := engine.NewCart(tx, testOptions("0.0725")...)

	a := cart.AddItem(product("A", "12.99"), 3, "")
	assert.True(t, balanced(*tx))
	b := cart.AddItem(product("B", "0.45"), 7, "")
	assert.True(t, balanced(*tx))
	cart.SetDiscount(a, d("15"), domain.DiscountPercentage)
	assert.True(t, balanced(*tx))
	cart.AddModifier(b, domain.Modifier{Name: "gift wrap", Price: d("2")})
	assert.True(t, balanced(*tx))
	cart.ApplyTransactionDiscount(d("3.33"), domain.DiscountFixed)
	assert.True(t, balanced(*tx))
	cart.RemoveItem(a)
	assert.True(t, balanced(*tx))

	snapshot := tx.Clone()
	cart.Recalculate()
	assert.True(t, snapshot.Total.Equal(tx.Total))
	assert.True(t, snapshot.Tax.Equal(tx.Tax))
	assert.True(t, snapshot.Subtotal.Equal(tx.Subtotal))
}

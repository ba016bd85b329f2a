package engine

import (
	"log/slog"

	"github.com/SscSPs/pos_terminal/internal/core/domain"
	"github.com/SscSPs/pos_terminal/internal/utils/pricing"
	"github.com/shopspring/decimal"
)

// Cart applies line-item and transaction-level commands to exactly one transaction.
// Every mutating method mutates, recomputes the touched items and then the whole
// transaction, and stamps UpdatedAt before returning. Methods report whether the
// command changed anything; unknown ids, quantities below one and commands against
// a transaction that is not active are ignored.
type Cart struct {
	tx   *domain.Transaction
	opts *Options
}

// NewCart binds a cart engine to tx.
func NewCart(tx *domain.Transaction, opts ...Option) *Cart {
	return newCart(tx, newOptions(opts...))
}

func newCart(tx *domain.Transaction, opts *Options) *Cart {
	return &Cart{tx: tx, opts: opts}
}

// Transaction exposes the bound transaction.
func (c *Cart) Transaction() *domain.Transaction {
	return c.tx
}

func (c *Cart) editable(command string) bool {
	if c.tx == nil {
		return false
	}
	if !c.tx.IsEditable() {
		c.opts.Logger.Debug("Ignoring cart command on non-editable transaction",
			slog.String("command", command),
			slog.String("transaction_id", c.tx.ID),
			slog.String("status", string(c.tx.Status)))
		return false
	}
	return true
}

func (c *Cart) item(command, itemID string) *domain.CartItem {
	idx := c.tx.ItemIndex(itemID)
	if idx < 0 {
		c.opts.Logger.Debug("Ignoring cart command for unknown item",
			slog.String("command", command),
			slog.String("transaction_id", c.tx.ID),
			slog.String("item_id", itemID))
		return nil
	}
	return &c.tx.Items[idx]
}

// commit recomputes all derived values of the transaction, re-derives split amounts
// when bill splitting is enabled, and refreshes UpdatedAt.
func (c *Cart) commit() {
	pricing.Recalculate(c.tx, c.opts.TaxRate)
	if c.tx.SplitPayment != nil {
		resolveSplitAmounts(c.tx)
	}
	c.tx.UpdatedAt = c.opts.Now()
}

// Recalculate recomputes the transaction without changing any input.
func (c *Cart) Recalculate() {
	if c.tx == nil {
		return
	}
	c.commit()
}

// AddItem appends a new line for product. The unit price is captured from the base
// price plus the selected variation's adjustment. Returns the new item id, or ""
// when the command was ignored.
func (c *Cart) AddItem(product *domain.Product, quantity int, variationID string) string {
	if !c.editable("add_item") {
		return ""
	}
	if product == nil {
		c.opts.Logger.Debug("Ignoring add_item without product", slog.String("transaction_id", c.tx.ID))
		return ""
	}
	if quantity < 1 {
		c.opts.Logger.Debug("Ignoring add_item with invalid quantity",
			slog.String("transaction_id", c.tx.ID), slog.Int("quantity", quantity))
		return ""
	}
	if _, ok := product.Variation(variationID); !ok {
		variationID = ""
	}
	item := domain.CartItem{
		ID:           c.opts.NewID(),
		Product:      product,
		VariationID:  variationID,
		Quantity:     quantity,
		UnitPrice:    product.PriceFor(variationID),
		Discount:     decimal.Zero,
		DiscountType: domain.DiscountFixed,
		Modifiers:    []domain.Modifier{},
		Tax:          decimal.Zero,
	}
	c.tx.Items = append(c.tx.Items, item)
	c.commit()
	return item.ID
}

// RemoveItem deletes the line if present.
func (c *Cart) RemoveItem(itemID string) bool {
	if !c.editable("remove_item") {
		return false
	}
	idx := c.tx.ItemIndex(itemID)
	if idx < 0 {
		c.opts.Logger.Debug("Ignoring remove_item for unknown item",
			slog.String("transaction_id", c.tx.ID), slog.String("item_id", itemID))
		return false
	}
	c.tx.Items = append(c.tx.Items[:idx], c.tx.Items[idx+1:]...)
	c.commit()
	return true
}

// SetQuantity replaces the quantity of a line. Quantities below one are ignored.
func (c *Cart) SetQuantity(itemID string, quantity int) bool {
	if !c.editable("set_quantity") {
		return false
	}
	if quantity < 1 {
		c.opts.Logger.Debug("Ignoring set_quantity with invalid quantity",
			slog.String("transaction_id", c.tx.ID), slog.String("item_id", itemID), slog.Int("quantity", quantity))
		return false
	}
	item := c.item("set_quantity", itemID)
	if item == nil {
		return false
	}
	item.Quantity = quantity
	c.commit()
	return true
}

// SetUnitPrice overrides the captured unit price of a line.
func (c *Cart) SetUnitPrice(itemID string, price decimal.Decimal) bool {
	if !c.editable("set_unit_price") {
		return false
	}
	item := c.item("set_unit_price", itemID)
	if item == nil {
		return false
	}
	item.UnitPrice = price
	c.commit()
	return true
}

// SetDiscount replaces both discount fields of a line. Bounds are not checked here.
func (c *Cart) SetDiscount(itemID string, discount decimal.Decimal, discountType domain.DiscountType) bool {
	if !c.editable("set_discount") {
		return false
	}
	item := c.item("set_discount", itemID)
	if item == nil {
		return false
	}
	item.Discount = discount
	item.DiscountType = discountType
	c.commit()
	return true
}

// SetNote writes free-text metadata on a line. Totals are unaffected.
func (c *Cart) SetNote(itemID, note string) bool {
	if !c.editable("set_note") {
		return false
	}
	item := c.item("set_note", itemID)
	if item == nil {
		return false
	}
	item.Note = note
	c.tx.UpdatedAt = c.opts.Now()
	return true
}

// AddModifier attaches a price add-on to a line. A missing modifier id is generated;
// an id already present on the line is ignored. Returns the modifier id or "".
func (c *Cart) AddModifier(itemID string, modifier domain.Modifier) string {
	if !c.editable("add_modifier") {
		return ""
	}
	item := c.item("add_modifier", itemID)
	if item == nil {
		return ""
	}
	if modifier.ID == "" {
		modifier.ID = c.opts.NewID()
	} else if item.ModifierIndex(modifier.ID) >= 0 {
		return ""
	}
	item.Modifiers = append(item.Modifiers, modifier)
	c.commit()
	return modifier.ID
}

// RemoveModifier detaches a modifier from a line.
func (c *Cart) RemoveModifier(itemID, modifierID string) bool {
	if !c.editable("remove_modifier") {
		return false
	}
	item := c.item("remove_modifier", itemID)
	if item == nil {
		return false
	}
	idx := item.ModifierIndex(modifierID)
	if idx < 0 {
		return false
	}
	item.Modifiers = append(item.Modifiers[:idx], item.Modifiers[idx+1:]...)
	c.commit()
	return true
}

// Clear empties the items, charges and transaction discount so every total drops to zero.
func (c *Cart) Clear() bool {
	if !c.editable("clear") {
		return false
	}
	c.tx.Items = []domain.CartItem{}
	c.tx.AdditionalCharges = []domain.AdditionalCharge{}
	c.tx.Discount = decimal.Zero
	c.commit()
	return true
}

// ApplyTransactionDiscount stores an absolute transaction discount. A percentage is
// converted once against the current subtotal; later item changes do not re-derive it.
func (c *Cart) ApplyTransactionDiscount(amount decimal.Decimal, discountType domain.DiscountType) bool {
	if !c.editable("apply_transaction_discount") {
		return false
	}
	c.tx.Discount = pricing.DiscountAmount(c.tx.Subtotal, amount, discountType)
	c.commit()
	return true
}

// AddCharge attaches a named non-item charge. Re-adding an existing id is a no-op.
func (c *Cart) AddCharge(chargeID, name string, amount decimal.Decimal) bool {
	if !c.editable("add_charge") {
		return false
	}
	if chargeID == "" || c.tx.ChargeIndex(chargeID) >= 0 {
		return false
	}
	c.tx.AdditionalCharges = append(c.tx.AdditionalCharges, domain.AdditionalCharge{
		ID:     chargeID,
		Name:   name,
		Amount: amount,
	})
	c.commit()
	return true
}

// RemoveCharge detaches a charge if present.
func (c *Cart) RemoveCharge(chargeID string) bool {
	if !c.editable("remove_charge") {
		return false
	}
	idx := c.tx.ChargeIndex(chargeID)
	if idx < 0 {
		return false
	}
	c.tx.AdditionalCharges = append(c.tx.AdditionalCharges[:idx], c.tx.AdditionalCharges[idx+1:]...)
	c.commit()
	return true
}

package engine

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/pos_terminal/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Observer is notified synchronously with a snapshot after every state transition.
// Observers must not block; persistence hooks are expected to hand off and return.
type Observer func(doc domain.TerminalDocument)

// Terminal owns the open transactions of one point-of-sale terminal and the pointer
// to the active one. There is always at least one transaction. Item, discount,
// charge and split commands target the active transaction; lifecycle commands take
// the transaction id explicitly.
type Terminal struct {
	opts         *Options
	transactions []*domain.Transaction
	activeID     string
	preferences  domain.Preferences
	observers    map[int]Observer
	nextObserver int
}

// NewTerminal returns a terminal holding a single empty active transaction.
func NewTerminal(opts ...Option) *Terminal {
	t := &Terminal{
		opts:        newOptions(opts...),
		preferences: domain.DefaultPreferences(),
		observers:   make(map[int]Observer),
	}
	t.activeID = t.appendTransaction("")
	return t
}

// Subscribe registers an observer and returns a function that removes it.
func (t *Terminal) Subscribe(fn Observer) func() {
	id := t.nextObserver
	t.nextObserver++
	t.observers[id] = fn
	return func() {
		delete(t.observers, id)
	}
}

func (t *Terminal) notify() {
	if len(t.observers) == 0 {
		return
	}
	doc := t.Document()
	for _, fn := range t.observers {
		fn(doc.Clone())
	}
}

// changed notifies observers when ok and passes ok through.
func (t *Terminal) changed(ok bool) bool {
	if ok {
		t.notify()
	}
	return ok
}

func (t *Terminal) find(id string) (int, *domain.Transaction) {
	for i, tx := range t.transactions {
		if tx.ID == id {
			return i, tx
		}
	}
	return -1, nil
}

func (t *Terminal) lookup(command, id string) *domain.Transaction {
	_, tx := t.find(id)
	if tx == nil {
		t.opts.Logger.Debug("Ignoring command for unknown transaction",
			slog.String("command", command), slog.String("transaction_id", id))
	}
	return tx
}

func (t *Terminal) active() *domain.Transaction {
	_, tx := t.find(t.activeID)
	return tx
}

func (t *Terminal) appendTransaction(name string) string {
	if name == "" {
		name = fmt.Sprintf("Sale #%d", len(t.transactions)+1)
	}
	now := t.opts.Now()
	tx := &domain.Transaction{
		ID:                t.opts.NewID(),
		Name:              name,
		Status:            domain.StatusActive,
		Items:             []domain.CartItem{},
		AdditionalCharges: []domain.AdditionalCharge{},
		Subtotal:          decimal.Zero,
		Tax:               decimal.Zero,
		Discount:          decimal.Zero,
		Total:             decimal.Zero,
		AuditFields:       domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	t.transactions = append(t.transactions, tx)
	return tx.ID
}

// Cart returns a cart engine bound to the active transaction. Mutations made through
// it bypass observer notification; prefer the Terminal methods.
func (t *Terminal) Cart() *Cart {
	return newCart(t.active(), t.opts)
}

// Splits returns a split engine bound to the active transaction. Mutations made
// through it bypass observer notification; prefer the Terminal methods.
func (t *Terminal) Splits() *SplitEngine {
	return newSplitEngine(t.active(), t.opts)
}

// --- lifecycle ---

// Create appends a new empty active transaction, makes it the active one and returns
// its id. An empty name defaults to "Sale #N" with N = current count + 1.
func (t *Terminal) Create(name string) string {
	id := t.appendTransaction(name)
	t.activeID = id
	t.notify()
	return id
}

// Delete removes a transaction. Deleting the last one replaces it with a fresh empty
// active transaction; deleting the active one moves activity to the first remaining.
func (t *Terminal) Delete(id string) bool {
	idx, tx := t.find(id)
	if tx == nil {
		t.opts.Logger.Debug("Ignoring delete for unknown transaction", slog.String("transaction_id", id))
		return false
	}
	t.transactions = append(t.transactions[:idx], t.transactions[idx+1:]...)
	switch {
	case len(t.transactions) == 0:
		t.activeID = t.appendTransaction("")
	case t.activeID == id:
		t.activeID = t.transactions[0].ID
	}
	return t.changed(true)
}

// SetActive moves the active pointer. A parked transaction is resumed.
func (t *Terminal) SetActive(id string) bool {
	tx := t.lookup("set_active", id)
	if tx == nil {
		return false
	}
	if tx.Status == domain.StatusParked {
		tx.Status = domain.StatusActive
		tx.UpdatedAt = t.opts.Now()
	}
	t.activeID = id
	return t.changed(true)
}

func (t *Terminal) transition(command, id string, to domain.TransactionStatus) bool {
	tx := t.lookup(command, id)
	if tx == nil || tx.IsClosed() || tx.Status == to {
		return false
	}
	tx.Status = to
	tx.UpdatedAt = t.opts.Now()
	return t.changed(true)
}

// Park holds a transaction for later recall. Totals stay as last computed.
func (t *Terminal) Park(id string) bool {
	return t.transition("park", id, domain.StatusParked)
}

// Void cancels a transaction. Voided transactions accept no further edits.
func (t *Terminal) Void(id string) bool {
	return t.transition("void", id, domain.StatusVoided)
}

// Complete marks a transaction as paid in full. The engine never does this on its own.
func (t *Terminal) Complete(id string) bool {
	return t.transition("complete", id, domain.StatusCompleted)
}

// Rename changes the display label of a transaction.
func (t *Terminal) Rename(id, name string) bool {
	tx := t.lookup("rename", id)
	if tx == nil || name == "" {
		return false
	}
	tx.Name = name
	tx.UpdatedAt = t.opts.Now()
	return t.changed(true)
}

// SetCustomer associates a customer with a transaction; empty values clear it.
// Pricing is unaffected.
func (t *Terminal) SetCustomer(id, customerID, customerName string) bool {
	tx := t.lookup("set_customer", id)
	if tx == nil || tx.IsClosed() {
		return false
	}
	tx.CustomerID = customerID
	tx.CustomerName = customerName
	tx.UpdatedAt = t.opts.Now()
	return t.changed(true)
}

// SetPreferences replaces the persisted UI preferences.
func (t *Terminal) SetPreferences(p domain.Preferences) {
	t.preferences = p
	t.notify()
}

// --- active transaction: items ---

// AddItem adds a product line to the active transaction and returns the item id.
func (t *Terminal) AddItem(product *domain.Product, quantity int, variationID string) string {
	id := t.Cart().AddItem(product, quantity, variationID)
	t.changed(id != "")
	return id
}

// RemoveItem removes a line from the active transaction.
func (t *Terminal) RemoveItem(itemID string) bool {
	return t.changed(t.Cart().RemoveItem(itemID))
}

// SetQuantity changes the quantity of a line of the active transaction.
func (t *Terminal) SetQuantity(itemID string, quantity int) bool {
	return t.changed(t.Cart().SetQuantity(itemID, quantity))
}

// SetUnitPrice overrides the unit price of a line of the active transaction.
func (t *Terminal) SetUnitPrice(itemID string, price decimal.Decimal) bool {
	return t.changed(t.Cart().SetUnitPrice(itemID, price))
}

// SetDiscount replaces the discount of a line of the active transaction.
func (t *Terminal) SetDiscount(itemID string, discount decimal.Decimal, discountType domain.DiscountType) bool {
	return t.changed(t.Cart().SetDiscount(itemID, discount, discountType))
}

// SetNote writes a note on a line of the active transaction.
func (t *Terminal) SetNote(itemID, note string) bool {
	return t.changed(t.Cart().SetNote(itemID, note))
}

// AddModifier attaches a modifier to a line of the active transaction.
func (t *Terminal) AddModifier(itemID string, modifier domain.Modifier) string {
	id := t.Cart().AddModifier(itemID, modifier)
	t.changed(id != "")
	return id
}

// RemoveModifier detaches a modifier from a line of the active transaction.
func (t *Terminal) RemoveModifier(itemID, modifierID string) bool {
	return t.changed(t.Cart().RemoveModifier(itemID, modifierID))
}

// Clear empties the active transaction.
func (t *Terminal) Clear() bool {
	return t.changed(t.Cart().Clear())
}

// --- active transaction: discount and charges ---

// ApplyTransactionDiscount sets the absolute discount of the active transaction.
func (t *Terminal) ApplyTransactionDiscount(amount decimal.Decimal, discountType domain.DiscountType) bool {
	return t.changed(t.Cart().ApplyTransactionDiscount(amount, discountType))
}

// AddAdditionalCharge attaches a named charge to the active transaction; idempotent on chargeID.
func (t *Terminal) AddAdditionalCharge(chargeID, name string, amount decimal.Decimal) bool {
	return t.changed(t.Cart().AddCharge(chargeID, name, amount))
}

// RemoveAdditionalCharge detaches a charge from the active transaction.
func (t *Terminal) RemoveAdditionalCharge(chargeID string) bool {
	return t.changed(t.Cart().RemoveCharge(chargeID))
}

// --- active transaction: split payment ---

// EnableSplit turns on splitting for the active transaction, freezing its total.
func (t *Terminal) EnableSplit() bool {
	return t.changed(t.Splits().Enable())
}

// DisableSplit discards the split configuration of the active transaction.
func (t *Terminal) DisableSplit() bool {
	return t.changed(t.Splits().Disable())
}

// AddSplit appends a split to the active transaction.
func (t *Terminal) AddSplit(def SplitDefinition) string {
	id := t.Splits().AddSplit(def)
	t.changed(id != "")
	return id
}

// AddEqualSplits appends n equal splits to the active transaction.
func (t *Terminal) AddEqualSplits(n int) []string {
	ids := t.Splits().AddEqualSplits(n)
	t.changed(len(ids) > 0)
	return ids
}

// UpdateSplit patches a split of the active transaction.
func (t *Terminal) UpdateSplit(splitID string, patch SplitPatch) bool {
	return t.changed(t.Splits().UpdateSplit(splitID, patch))
}

// RemoveSplit deletes a split of the active transaction.
func (t *Terminal) RemoveSplit(splitID string) bool {
	return t.changed(t.Splits().RemoveSplit(splitID))
}

// MarkSplitPaid records payment of a split of the active transaction.
func (t *Terminal) MarkSplitPaid(splitID, paymentMethod string) bool {
	return t.changed(t.Splits().MarkPaid(splitID, paymentMethod))
}

// RecalculateSplits re-derives percentage and items splits of the active transaction.
func (t *Terminal) RecalculateSplits() bool {
	return t.changed(t.Splits().Recalculate())
}

// --- read projections ---

// ActiveID returns the id of the active transaction.
func (t *Terminal) ActiveID() string {
	return t.activeID
}

// Active returns a snapshot of the active transaction.
func (t *Terminal) Active() domain.Transaction {
	tx := t.active()
	if tx == nil {
		return domain.Transaction{}
	}
	return tx.Clone()
}

// Transaction returns a snapshot of the transaction with the given id.
func (t *Terminal) Transaction(id string) (domain.Transaction, bool) {
	_, tx := t.find(id)
	if tx == nil {
		return domain.Transaction{}, false
	}
	return tx.Clone(), true
}

// Transactions returns snapshots of every transaction in list order.
func (t *Terminal) Transactions() []domain.Transaction {
	out := make([]domain.Transaction, len(t.transactions))
	for i, tx := range t.transactions {
		out[i] = tx.Clone()
	}
	return out
}

// Items returns the lines of the active transaction.
func (t *Terminal) Items() []domain.CartItem {
	return t.Active().Items
}

// Subtotal of the active transaction.
func (t *Terminal) Subtotal() decimal.Decimal {
	return t.Active().Subtotal
}

// Tax of the active transaction.
func (t *Terminal) Tax() decimal.Decimal {
	return t.Active().Tax
}

// Total of the active transaction.
func (t *Terminal) Total() decimal.Decimal {
	return t.Active().Total
}

// SplitSummary projects the split state of the active transaction.
func (t *Terminal) SplitSummary() domain.SplitSummary {
	return SummarizeSplits(t.Active())
}

// Preferences returns the UI preferences.
func (t *Terminal) Preferences() domain.Preferences {
	return t.preferences
}

// TaxRate returns the configured tax rate.
func (t *Terminal) TaxRate() decimal.Decimal {
	return t.opts.TaxRate
}

// Document serializes the whole terminal state.
func (t *Terminal) Document() domain.TerminalDocument {
	return domain.TerminalDocument{
		Transactions:        t.Transactions(),
		ActiveTransactionID: t.activeID,
		Preferences:         t.preferences,
		SavedAt:             t.opts.Now(),
	}
}

// Restore replaces the terminal state with a previously saved document. Totals are
// taken as persisted. An empty document yields a fresh transaction; a dangling active
// id falls back to the first transaction. Observers are not notified.
func (t *Terminal) Restore(doc domain.TerminalDocument) {
	doc = doc.Clone()
	t.transactions = make([]*domain.Transaction, 0, len(doc.Transactions))
	for i := range doc.Transactions {
		tx := doc.Transactions[i]
		if tx.Items == nil {
			tx.Items = []domain.CartItem{}
		}
		if tx.AdditionalCharges == nil {
			tx.AdditionalCharges = []domain.AdditionalCharge{}
		}
		t.transactions = append(t.transactions, &tx)
	}
	t.preferences = doc.Preferences
	if t.preferences.ViewMode == "" {
		t.preferences = domain.DefaultPreferences()
	}
	if len(t.transactions) == 0 {
		t.activeID = t.appendTransaction("")
		return
	}
	t.activeID = doc.ActiveTransactionID
	if _, tx := t.find(t.activeID); tx == nil {
		t.activeID = t.transactions[0].ID
	}
}

package engine

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/pos_terminal/internal/core/domain"
	"github.com/SscSPs/pos_terminal/internal/utils"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SplitDefinition describes a split to append. Amount is authoritative for equal and
// amount splits; percentage and items splits get their amount on recalculation.
type SplitDefinition struct {
	Name       string
	SplitType  domain.SplitType
	Amount     decimal.Decimal
	Percentage *decimal.Decimal
	ItemIDs    []string
}

// SplitPatch is a partial update of a split; nil fields are left untouched.
type SplitPatch struct {
	Name          *string
	SplitType     *domain.SplitType
	Amount        *decimal.Decimal
	Percentage    *decimal.Decimal
	ItemIDs       *[]string
	PaymentMethod *string
}

// SummarizeSplits projects the split state of tx.
func SummarizeSplits(tx domain.Transaction) domain.SplitSummary {
	return tx.SplitPayment.Summary()
}

// refreshRemaining recomputes remainingAmount = totalAmount - Σ paid amounts.
// A negative result signals an over-split; it is reported, never corrected.
func refreshRemaining(cfg *domain.SplitPaymentConfig) {
	cfg.RemainingAmount = cfg.TotalAmount.Sub(cfg.PaidAmount())
}

// resolveSplitAmounts re-derives unpaid percentage and items splits from the
// current transaction and refreshes the remaining amount. Equal and amount splits
// keep their caller-supplied amounts, and a paid split keeps the amount collected.
func resolveSplitAmounts(tx *domain.Transaction) {
	cfg := tx.SplitPayment
	if cfg == nil {
		return
	}
	for i := range cfg.Splits {
		s := &cfg.Splits[i]
		if s.IsPaid {
			continue
		}
		switch s.SplitType {
		case domain.SplitPercentage:
			pct := decimal.Zero
			if s.Percentage != nil {
				pct = *s.Percentage
			}
			s.Amount = tx.Total.Mul(pct).Div(hundred)
		case domain.SplitItems:
			sum := decimal.Zero
			for _, id := range s.ItemIDs {
				if idx := tx.ItemIndex(id); idx >= 0 {
					sum = sum.Add(tx.Items[idx].Subtotal)
				}
			}
			s.Amount = sum
		}
	}
	refreshRemaining(cfg)
}

// SplitEngine manages bill splitting on one transaction.
type SplitEngine struct {
	tx   *domain.Transaction
	opts *Options
}

// NewSplitEngine binds a split engine to tx.
func NewSplitEngine(tx *domain.Transaction, opts ...Option) *SplitEngine {
	return newSplitEngine(tx, newOptions(opts...))
}

func newSplitEngine(tx *domain.Transaction, opts *Options) *SplitEngine {
	return &SplitEngine{tx: tx, opts: opts}
}

func (e *SplitEngine) config(command string) *domain.SplitPaymentConfig {
	if e.tx == nil || !e.tx.IsEditable() {
		return nil
	}
	if e.tx.SplitPayment == nil {
		e.opts.Logger.Debug("Ignoring split command while splitting is disabled",
			slog.String("command", command), slog.String("transaction_id", e.tx.ID))
		return nil
	}
	return e.tx.SplitPayment
}

func (e *SplitEngine) touch() {
	e.tx.UpdatedAt = e.opts.Now()
}

// Enable turns on splitting and freezes the current total as totalAmount.
// Enabling an already enabled transaction is a no-op.
func (e *SplitEngine) Enable() bool {
	if e.tx == nil || !e.tx.IsEditable() || e.tx.SplitPayment != nil {
		return false
	}
	e.tx.SplitPayment = &domain.SplitPaymentConfig{
		Enabled:         true,
		Splits:          []domain.PaymentSplit{},
		TotalAmount:     e.tx.Total,
		RemainingAmount: e.tx.Total,
	}
	e.touch()
	return true
}

// Disable discards all split data.
func (e *SplitEngine) Disable() bool {
	if e.config("disable") == nil {
		return false
	}
	e.tx.SplitPayment = nil
	e.touch()
	return true
}

// AddSplit appends an unpaid split and returns its id, or "" when ignored.
func (e *SplitEngine) AddSplit(def SplitDefinition) string {
	cfg := e.config("add_split")
	if cfg == nil {
		return ""
	}
	split := domain.PaymentSplit{
		ID:        e.opts.NewID(),
		Name:      def.Name,
		SplitType: def.SplitType,
		ItemIDs:   append([]string(nil), def.ItemIDs...),
	}
	if split.Name == "" {
		split.Name = fmt.Sprintf("Split %d", len(cfg.Splits)+1)
	}
	if def.Percentage != nil {
		pct := *def.Percentage
		split.Percentage = &pct
	}
	if !def.SplitType.IsDerived() {
		split.Amount = def.Amount
	}
	cfg.Splits = append(cfg.Splits, split)
	refreshRemaining(cfg)
	e.touch()
	return split.ID
}

// AddEqualSplits appends n equal splits of totalAmount. Each share is rounded to
// currency precision and the last split absorbs the rounding remainder, so the new
// splits always add up to totalAmount exactly.
func (e *SplitEngine) AddEqualSplits(n int) []string {
	cfg := e.config("add_equal_splits")
	if cfg == nil || n < 1 {
		return nil
	}
	share := utils.RoundCurrency(cfg.TotalAmount.Div(decimal.NewFromInt(int64(n))))
	last := cfg.TotalAmount.Sub(share.Mul(decimal.NewFromInt(int64(n - 1))))

	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		amount := share
		if i == n-1 {
			amount = last
		}
		split := domain.PaymentSplit{
			ID:        e.opts.NewID(),
			Name:      fmt.Sprintf("Split %d", len(cfg.Splits)+1),
			SplitType: domain.SplitEqual,
			Amount:    amount,
		}
		cfg.Splits = append(cfg.Splits, split)
		ids = append(ids, split.ID)
	}
	refreshRemaining(cfg)
	e.touch()
	return ids
}

// UpdateSplit applies a partial update to a split.
func (e *SplitEngine) UpdateSplit(splitID string, patch SplitPatch) bool {
	cfg := e.config("update_split")
	if cfg == nil {
		return false
	}
	idx := cfg.SplitIndex(splitID)
	if idx < 0 {
		return false
	}
	s := &cfg.Splits[idx]
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.SplitType != nil {
		s.SplitType = *patch.SplitType
	}
	if patch.Amount != nil {
		s.Amount = *patch.Amount
	}
	if patch.Percentage != nil {
		pct := *patch.Percentage
		s.Percentage = &pct
	}
	if patch.ItemIDs != nil {
		s.ItemIDs = append([]string(nil), (*patch.ItemIDs)...)
	}
	if patch.PaymentMethod != nil {
		s.PaymentMethod = *patch.PaymentMethod
	}
	refreshRemaining(cfg)
	e.touch()
	return true
}

// RemoveSplit deletes a split.
func (e *SplitEngine) RemoveSplit(splitID string) bool {
	cfg := e.config("remove_split")
	if cfg == nil {
		return false
	}
	idx := cfg.SplitIndex(splitID)
	if idx < 0 {
		return false
	}
	cfg.Splits = append(cfg.Splits[:idx], cfg.Splits[idx+1:]...)
	refreshRemaining(cfg)
	e.touch()
	return true
}

// MarkPaid records payment of a split. Marking an already paid split is a no-op.
func (e *SplitEngine) MarkPaid(splitID, paymentMethod string) bool {
	cfg := e.config("mark_paid")
	if cfg == nil {
		return false
	}
	idx := cfg.SplitIndex(splitID)
	if idx < 0 || cfg.Splits[idx].IsPaid {
		return false
	}
	now := e.opts.Now()
	s := &cfg.Splits[idx]
	s.IsPaid = true
	s.PaymentMethod = paymentMethod
	s.PaidAt = &now
	refreshRemaining(cfg)
	e.touch()
	return true
}

// Recalculate re-derives percentage and items split amounts from the current
// transaction and refreshes the remaining amount.
func (e *SplitEngine) Recalculate() bool {
	if e.config("recalculate") == nil {
		return false
	}
	resolveSplitAmounts(e.tx)
	e.touch()
	return true
}

// Summary projects the current split state.
func (e *SplitEngine) Summary() domain.SplitSummary {
	if e.tx == nil {
		return domain.SplitSummary{}
	}
	return SummarizeSplits(*e.tx)
}

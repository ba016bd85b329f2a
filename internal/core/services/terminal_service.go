package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/SscSPs/pos_terminal/internal/apperrors"
	"github.com/SscSPs/pos_terminal/internal/core/domain"
	"github.com/SscSPs/pos_terminal/internal/core/engine"
	portsrepo "github.com/SscSPs/pos_terminal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_terminal/internal/core/ports/services"
	"github.com/SscSPs/pos_terminal/internal/dto"
	"github.com/SscSPs/pos_terminal/internal/platform/metrics"
	"github.com/SscSPs/pos_terminal/internal/utils"
	"github.com/SscSPs/pos_terminal/internal/utils/pricing"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// terminalService implements the TerminalSvcFacade interface. The engine is not
// safe for concurrent use, so every call goes through mu.
type terminalService struct {
	BaseService
	mu         sync.Mutex
	terminal   *engine.Terminal
	repo       portsrepo.TerminalDocumentReader
	persister  *DocumentPersister
	metrics    *metrics.TerminalMetrics
	terminalID string
	engineOpts []engine.Option
}

// TerminalServiceOption is a functional option for configuring the terminal service
type TerminalServiceOption func(*terminalService)

// WithDocumentRepository sets the repository Load restores from.
func WithDocumentRepository(repo portsrepo.TerminalDocumentReader) TerminalServiceOption {
	return func(s *terminalService) {
		s.repo = repo
	}
}

// WithDocumentPersister saves every state change through p.
func WithDocumentPersister(p *DocumentPersister) TerminalServiceOption {
	return func(s *terminalService) {
		s.persister = p
	}
}

// WithTerminalMetrics records command outcomes.
func WithTerminalMetrics(m *metrics.TerminalMetrics) TerminalServiceOption {
	return func(s *terminalService) {
		s.metrics = m
	}
}

// WithEngineOptions configures the underlying terminal engine.
func WithEngineOptions(opts ...engine.Option) TerminalServiceOption {
	return func(s *terminalService) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

// NewTerminalService creates the terminal service for terminalID.
func NewTerminalService(terminalID string, options ...TerminalServiceOption) portssvc.TerminalSvcFacade {
	svc := &terminalService{terminalID: terminalID}
	for _, option := range options {
		option(svc)
	}
	svc.terminal = engine.NewTerminal(svc.engineOpts...)
	if svc.persister != nil {
		svc.terminal.Subscribe(svc.persister.Enqueue)
	}
	svc.refreshGauge()
	return svc
}

// Ensure terminalService implements the TerminalSvcFacade interface
var _ portssvc.TerminalSvcFacade = (*terminalService)(nil)

// --- helpers ---

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, fmt.Sprintf(format, args...))
}

func (s *terminalService) reject(ctx context.Context, command string, err error) error {
	s.metrics.IncCommand(command, metrics.OutcomeRejected)
	s.LogWarn(ctx, "Rejected terminal command",
		slog.String("terminal_id", s.terminalID),
		slog.String("command", command),
		slog.String("error", err.Error()))
	return err
}

func (s *terminalService) record(ctx context.Context, command string, applied bool) {
	outcome := metrics.OutcomeIgnored
	if applied {
		outcome = metrics.OutcomeApplied
		s.refreshGauge()
	}
	s.metrics.IncCommand(command, outcome)
	s.LogDebug(ctx, "Terminal command",
		slog.String("terminal_id", s.terminalID),
		slog.String("command", command),
		slog.String("outcome", outcome))
}

func (s *terminalService) refreshGauge() {
	byStatus := map[string]int{}
	for _, tx := range s.terminal.Transactions() {
		byStatus[string(tx.Status)]++
	}
	s.metrics.SetTransactions(byStatus)
}

func (s *terminalService) activeSnapshot() *domain.Transaction {
	tx := s.terminal.Active()
	return &tx
}

func (s *terminalService) snapshot(transactionID string) (*domain.Transaction, error) {
	tx, ok := s.terminal.Transaction(transactionID)
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return &tx, nil
}

func editable(tx *domain.Transaction) error {
	if !tx.IsEditable() {
		return fmt.Errorf("%w: transaction %s is %s", apperrors.ErrTerminalState, tx.ID, tx.Status)
	}
	return nil
}

func validateDiscount(discount decimal.Decimal, discountType domain.DiscountType, base decimal.Decimal) error {
	if !discountType.IsValid() {
		return validationError("unknown discount type %q", discountType)
	}
	if discount.IsNegative() {
		return validationError("discount must not be negative")
	}
	if discountType == domain.DiscountPercentage && discount.GreaterThan(hundred) {
		return validationError("percentage discount must not exceed 100")
	}
	if discountType == domain.DiscountFixed && discount.GreaterThan(base) {
		return validationError("fixed discount %s exceeds %s", discount.StringFixed(2), base.StringFixed(2))
	}
	return nil
}

// cartCommand runs apply against the editable active transaction after validate accepts it.
func (s *terminalService) cartCommand(ctx context.Context, command string, validate func(tx *domain.Transaction) error, apply func() bool) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.activeSnapshot()
	if err := editable(tx); err != nil {
		return nil, s.reject(ctx, command, err)
	}
	if validate != nil {
		if err := validate(tx); err != nil {
			return nil, s.reject(ctx, command, err)
		}
	}
	s.record(ctx, command, apply())
	return s.activeSnapshot(), nil
}

// itemCommand is cartCommand for an existing line of the active transaction.
func (s *terminalService) itemCommand(ctx context.Context, command, itemID string, validate func(item *domain.CartItem) error, apply func() bool) (*domain.Transaction, error) {
	return s.cartCommand(ctx, command, func(tx *domain.Transaction) error {
		idx := tx.ItemIndex(itemID)
		if idx < 0 {
			return fmt.Errorf("%w: item %s", apperrors.ErrNotFound, itemID)
		}
		if validate != nil {
			return validate(&tx.Items[idx])
		}
		return nil
	}, apply)
}

// splitCommand is cartCommand that additionally requires split payment to be enabled.
func (s *terminalService) splitCommand(ctx context.Context, command string, validate func(tx *domain.Transaction) error, apply func() bool) (*domain.Transaction, error) {
	return s.cartCommand(ctx, command, func(tx *domain.Transaction) error {
		if tx.SplitPayment == nil {
			return validationError("split payment is not enabled on transaction %s", tx.ID)
		}
		if validate != nil {
			return validate(tx)
		}
		return nil
	}, apply)
}

// lifecycleCommand runs apply against an existing transaction chosen by id.
func (s *terminalService) lifecycleCommand(ctx context.Context, command, transactionID string, validate func(tx *domain.Transaction) error, apply func() bool) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.snapshot(transactionID)
	if err != nil {
		return nil, s.reject(ctx, command, err)
	}
	if validate != nil {
		if err := validate(tx); err != nil {
			return nil, s.reject(ctx, command, err)
		}
	}
	s.record(ctx, command, apply())
	return s.snapshot(transactionID)
}

// --- persistence ---

// Load restores the terminal from its repository.
func (s *terminalService) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	doc, err := s.repo.LoadDocument(ctx, s.terminalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "No saved terminal state, starting fresh", slog.String("terminal_id", s.terminalID))
			return nil
		}
		s.LogError(ctx, err, "Failed to load terminal state", slog.String("terminal_id", s.terminalID))
		return fmt.Errorf("failed to load terminal %s: %w", s.terminalID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.terminal.Restore(*doc)
	s.refreshGauge()
	s.LogInfo(ctx, "Restored terminal state",
		slog.String("terminal_id", s.terminalID),
		slog.Int("transactions", len(doc.Transactions)),
		slog.String("active_transaction_id", s.terminal.ActiveID()))
	return nil
}

// Flush writes any pending state immediately.
func (s *terminalService) Flush(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	return s.persister.Flush(ctx)
}

// --- reads ---

func (s *terminalService) GetDocument(ctx context.Context) domain.TerminalDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminal.Document()
}

func (s *terminalService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(transactionID)
}

func (s *terminalService) GetActiveTransaction(ctx context.Context) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeSnapshot(), nil
}

func (s *terminalService) GetSplitSummary(ctx context.Context) (domain.SplitSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminal.SplitSummary(), nil
}

func (s *terminalService) TaxRate() decimal.Decimal {
	return s.terminal.TaxRate()
}

// --- lifecycle ---

func (s *terminalService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.terminal.Create(strings.TrimSpace(req.Name))
	s.record(ctx, "create_transaction", true)
	s.LogInfo(ctx, "Transaction created", slog.String("transaction_id", id))
	return s.snapshot(id)
}

func (s *terminalService) DeleteTransaction(ctx context.Context, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.snapshot(transactionID); err != nil {
		return s.reject(ctx, "delete_transaction", err)
	}
	s.record(ctx, "delete_transaction", s.terminal.Delete(transactionID))
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *terminalService) SetActiveTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.lifecycleCommand(ctx, "set_active", transactionID, nil, func() bool {
		return s.terminal.SetActive(transactionID)
	})
}

func (s *terminalService) RenameTransaction(ctx context.Context, transactionID string, req dto.RenameTransactionRequest) (*domain.Transaction, error) {
	name := strings.TrimSpace(req.Name)
	return s.lifecycleCommand(ctx, "rename", transactionID, func(*domain.Transaction) error {
		if name == "" {
			return validationError("name must not be empty")
		}
		return nil
	}, func() bool {
		return s.terminal.Rename(transactionID, name)
	})
}

func (s *terminalService) ParkTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.lifecycleCommand(ctx, "park", transactionID, func(tx *domain.Transaction) error {
		if tx.IsClosed() {
			return fmt.Errorf("%w: cannot park %s transaction", apperrors.ErrTerminalState, tx.Status)
		}
		return nil
	}, func() bool {
		return s.terminal.Park(transactionID)
	})
}

func (s *terminalService) VoidTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.lifecycleCommand(ctx, "void", transactionID, func(tx *domain.Transaction) error {
		if tx.Status == domain.StatusCompleted {
			return fmt.Errorf("%w: cannot void a completed transaction", apperrors.ErrTerminalState)
		}
		return nil
	}, func() bool {
		return s.terminal.Void(transactionID)
	})
}

func (s *terminalService) CompleteTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.lifecycleCommand(ctx, "complete", transactionID, func(tx *domain.Transaction) error {
		if tx.Status != domain.StatusActive {
			return fmt.Errorf("%w: cannot complete %s transaction", apperrors.ErrTerminalState, tx.Status)
		}
		if len(tx.Items) == 0 && len(tx.AdditionalCharges) == 0 {
			return validationError("cannot complete an empty transaction")
		}
		if tx.SplitPayment != nil && !tx.SplitPayment.IsFullyPaid() {
			return validationError("split payment is not fully paid")
		}
		return nil
	}, func() bool {
		return s.terminal.Complete(transactionID)
	})
}

func (s *terminalService) SetCustomer(ctx context.Context, transactionID string, req dto.SetCustomerRequest) (*domain.Transaction, error) {
	return s.lifecycleCommand(ctx, "set_customer", transactionID, func(tx *domain.Transaction) error {
		if tx.IsClosed() {
			return fmt.Errorf("%w: transaction %s is %s", apperrors.ErrTerminalState, tx.ID, tx.Status)
		}
		return nil
	}, func() bool {
		return s.terminal.SetCustomer(transactionID, strings.TrimSpace(req.CustomerID), strings.TrimSpace(req.CustomerName))
	})
}

func (s *terminalService) UpdatePreferences(ctx context.Context, req dto.UpdatePreferencesRequest) (domain.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.ViewMode != domain.ViewGrid && req.ViewMode != domain.ViewList {
		return domain.Preferences{}, s.reject(ctx, "update_preferences", validationError("unknown view mode %q", req.ViewMode))
	}
	prefs := domain.Preferences{ViewMode: req.ViewMode, ScannerEnabled: true}
	if req.ScannerEnabled != nil {
		prefs.ScannerEnabled = *req.ScannerEnabled
	}
	s.terminal.SetPreferences(prefs)
	s.record(ctx, "update_preferences", true)
	return s.terminal.Preferences(), nil
}

// ResetTerminal deletes the stored document and starts over with one empty sale.
// Preferences survive the reset and are saved with the fresh state.
func (s *terminalService) ResetTerminal(ctx context.Context) (domain.TerminalDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.persister != nil {
		if err := s.persister.Discard(ctx); err != nil {
			s.LogError(ctx, err, "Failed to reset terminal", slog.String("terminal_id", s.terminalID))
			s.metrics.IncCommand("reset_terminal", metrics.OutcomeRejected)
			return domain.TerminalDocument{}, err
		}
	}

	prefs := s.terminal.Preferences()
	s.terminal = engine.NewTerminal(s.engineOpts...)
	if s.persister != nil {
		s.terminal.Subscribe(s.persister.Enqueue)
	}
	s.terminal.SetPreferences(prefs)
	s.record(ctx, "reset_terminal", true)
	s.LogInfo(ctx, "Terminal reset", slog.String("terminal_id", s.terminalID))
	return s.terminal.Document(), nil
}

// --- cart ---

func (s *terminalService) AddItem(ctx context.Context, req dto.AddItemRequest) (*domain.Transaction, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	product := req.Product.ToDomainProduct()
	return s.cartCommand(ctx, "add_item", func(*domain.Transaction) error {
		if product.ID == "" {
			return validationError("product id is required")
		}
		if product.BasePrice.IsNegative() {
			return validationError("product price must not be negative")
		}
		if quantity < 1 {
			return validationError("quantity must be at least 1")
		}
		return nil
	}, func() bool {
		return s.terminal.AddItem(product, quantity, req.VariationID) != ""
	})
}

func (s *terminalService) RemoveItem(ctx context.Context, itemID string) (*domain.Transaction, error) {
	return s.itemCommand(ctx, "remove_item", itemID, nil, func() bool {
		return s.terminal.RemoveItem(itemID)
	})
}

func (s *terminalService) SetItemQuantity(ctx context.Context, itemID string, req dto.SetQuantityRequest) (*domain.Transaction, error) {
	return s.itemCommand(ctx, "set_quantity", itemID, func(*domain.CartItem) error {
		if req.Quantity < 1 {
			return validationError("quantity must be at least 1")
		}
		return nil
	}, func() bool {
		return s.terminal.SetQuantity(itemID, req.Quantity)
	})
}

func (s *terminalService) SetItemUnitPrice(ctx context.Context, itemID string, req dto.SetUnitPriceRequest) (*domain.Transaction, error) {
	return s.itemCommand(ctx, "set_unit_price", itemID, func(*domain.CartItem) error {
		if req.UnitPrice.IsNegative() {
			return validationError("unit price must not be negative")
		}
		return nil
	}, func() bool {
		return s.terminal.SetUnitPrice(itemID, req.UnitPrice)
	})
}

func (s *terminalService) SetItemDiscount(ctx context.Context, itemID string, req dto.DiscountRequest) (*domain.Transaction, error) {
	return s.itemCommand(ctx, "set_item_discount", itemID, func(item *domain.CartItem) error {
		return validateDiscount(req.Discount, req.DiscountType, pricing.ItemGross(*item))
	}, func() bool {
		return s.terminal.SetDiscount(itemID, req.Discount, req.DiscountType)
	})
}

func (s *terminalService) SetItemNote(ctx context.Context, itemID string, req dto.SetNoteRequest) (*domain.Transaction, error) {
	return s.itemCommand(ctx, "set_note", itemID, nil, func() bool {
		return s.terminal.SetNote(itemID, req.Note)
	})
}

func (s *terminalService) AddItemModifier(ctx context.Context, itemID string, req dto.AddModifierRequest) (*domain.Transaction, error) {
	modifier := domain.Modifier{ID: req.ID, Name: strings.TrimSpace(req.Name), Price: req.Price}
	return s.itemCommand(ctx, "add_modifier", itemID, func(*domain.CartItem) error {
		if modifier.Name == "" {
			return validationError("modifier name is required")
		}
		if modifier.Price.IsNegative() {
			return validationError("modifier price must not be negative")
		}
		return nil
	}, func() bool {
		return s.terminal.AddModifier(itemID, modifier) != ""
	})
}

func (s *terminalService) RemoveItemModifier(ctx context.Context, itemID, modifierID string) (*domain.Transaction, error) {
	return s.itemCommand(ctx, "remove_modifier", itemID, func(item *domain.CartItem) error {
		if item.ModifierIndex(modifierID) < 0 {
			return fmt.Errorf("%w: modifier %s", apperrors.ErrNotFound, modifierID)
		}
		return nil
	}, func() bool {
		return s.terminal.RemoveModifier(itemID, modifierID)
	})
}

func (s *terminalService) ClearCart(ctx context.Context) (*domain.Transaction, error) {
	return s.cartCommand(ctx, "clear", nil, s.terminal.Clear)
}

func (s *terminalService) ApplyTransactionDiscount(ctx context.Context, req dto.DiscountRequest) (*domain.Transaction, error) {
	return s.cartCommand(ctx, "apply_transaction_discount", func(tx *domain.Transaction) error {
		return validateDiscount(req.Discount, req.DiscountType, tx.Subtotal)
	}, func() bool {
		return s.terminal.ApplyTransactionDiscount(req.Discount, req.DiscountType)
	})
}

func (s *terminalService) AddAdditionalCharge(ctx context.Context, req dto.AddChargeRequest) (*domain.Transaction, error) {
	chargeID := strings.TrimSpace(req.ChargeID)
	return s.cartCommand(ctx, "add_charge", func(*domain.Transaction) error {
		if chargeID == "" {
			return validationError("charge id is required")
		}
		if req.Amount.IsNegative() {
			return validationError("charge amount must not be negative")
		}
		return nil
	}, func() bool {
		return s.terminal.AddAdditionalCharge(chargeID, strings.TrimSpace(req.Name), req.Amount)
	})
}

func (s *terminalService) RemoveAdditionalCharge(ctx context.Context, chargeID string) (*domain.Transaction, error) {
	return s.cartCommand(ctx, "remove_charge", func(tx *domain.Transaction) error {
		if tx.ChargeIndex(chargeID) < 0 {
			return fmt.Errorf("%w: charge %s", apperrors.ErrNotFound, chargeID)
		}
		return nil
	}, func() bool {
		return s.terminal.RemoveAdditionalCharge(chargeID)
	})
}

// --- split payment ---

func (s *terminalService) EnableSplitPayment(ctx context.Context) (*domain.Transaction, error) {
	return s.cartCommand(ctx, "enable_split", nil, s.terminal.EnableSplit)
}

func (s *terminalService) DisableSplitPayment(ctx context.Context) (*domain.Transaction, error) {
	return s.cartCommand(ctx, "disable_split", nil, s.terminal.DisableSplit)
}

func validateSplitShape(tx *domain.Transaction, splitType domain.SplitType, amount, percentage *decimal.Decimal, itemIDs []string) error {
	if !splitType.IsValid() {
		return validationError("unknown split type %q", splitType)
	}
	if amount != nil && amount.IsNegative() {
		return validationError("split amount must not be negative")
	}
	if percentage != nil && (percentage.IsNegative() || percentage.GreaterThan(hundred)) {
		return validationError("split percentage must be between 0 and 100")
	}
	switch splitType {
	case domain.SplitPercentage:
		if percentage == nil {
			return validationError("percentage split requires a percentage")
		}
	case domain.SplitItems:
		if len(itemIDs) == 0 {
			return validationError("items split requires at least one item")
		}
		for _, id := range itemIDs {
			if tx.ItemIndex(id) < 0 {
				return fmt.Errorf("%w: item %s", apperrors.ErrNotFound, id)
			}
		}
	}
	return nil
}

func (s *terminalService) AddSplit(ctx context.Context, req dto.AddSplitRequest) (*domain.Transaction, error) {
	def := engine.SplitDefinition{
		Name:       strings.TrimSpace(req.Name),
		SplitType:  req.SplitType,
		Amount:     req.Amount,
		Percentage: req.Percentage,
		ItemIDs:    req.ItemIDs,
	}
	return s.splitCommand(ctx, "add_split", func(tx *domain.Transaction) error {
		return validateSplitShape(tx, def.SplitType, &def.Amount, def.Percentage, def.ItemIDs)
	}, func() bool {
		return s.terminal.AddSplit(def) != ""
	})
}

func (s *terminalService) AddEqualSplits(ctx context.Context, req dto.EqualSplitRequest) (*domain.Transaction, error) {
	return s.splitCommand(ctx, "add_equal_splits", func(*domain.Transaction) error {
		if req.Count < 1 {
			return validationError("split count must be at least 1")
		}
		return nil
	}, func() bool {
		return len(s.terminal.AddEqualSplits(req.Count)) > 0
	})
}

func (s *terminalService) UpdateSplit(ctx context.Context, splitID string, req dto.UpdateSplitRequest) (*domain.Transaction, error) {
	patch := engine.SplitPatch{
		Name:          req.Name,
		SplitType:     req.SplitType,
		Amount:        req.Amount,
		Percentage:    req.Percentage,
		ItemIDs:       req.ItemIDs,
		PaymentMethod: req.PaymentMethod,
	}
	return s.splitCommand(ctx, "update_split", func(tx *domain.Transaction) error {
		idx := tx.SplitPayment.SplitIndex(splitID)
		if idx < 0 {
			return fmt.Errorf("%w: split %s", apperrors.ErrNotFound, splitID)
		}
		// validate the split as it will look after the patch
		current := tx.SplitPayment.Splits[idx]
		splitType, percentage, itemIDs := current.SplitType, current.Percentage, current.ItemIDs
		if patch.SplitType != nil {
			splitType = *patch.SplitType
		}
		if patch.Percentage != nil {
			percentage = patch.Percentage
		}
		if patch.ItemIDs != nil {
			itemIDs = *patch.ItemIDs
		}
		return validateSplitShape(tx, splitType, patch.Amount, percentage, itemIDs)
	}, func() bool {
		return s.terminal.UpdateSplit(splitID, patch)
	})
}

func (s *terminalService) RemoveSplit(ctx context.Context, splitID string) (*domain.Transaction, error) {
	return s.splitCommand(ctx, "remove_split", func(tx *domain.Transaction) error {
		if tx.SplitPayment.SplitIndex(splitID) < 0 {
			return fmt.Errorf("%w: split %s", apperrors.ErrNotFound, splitID)
		}
		return nil
	}, func() bool {
		return s.terminal.RemoveSplit(splitID)
	})
}

func (s *terminalService) MarkSplitPaid(ctx context.Context, splitID string, req dto.MarkSplitPaidRequest) (*domain.Transaction, error) {
	method := strings.TrimSpace(req.PaymentMethod)
	tx, err := s.splitCommand(ctx, "mark_split_paid", func(tx *domain.Transaction) error {
		if tx.SplitPayment.SplitIndex(splitID) < 0 {
			return fmt.Errorf("%w: split %s", apperrors.ErrNotFound, splitID)
		}
		if method == "" {
			return validationError("payment method is required")
		}
		return nil
	}, func() bool {
		return s.terminal.MarkSplitPaid(splitID, method)
	})
	if err == nil && tx.SplitPayment != nil && tx.SplitPayment.IsOverSplit() {
		s.LogWarn(ctx, "Split payments exceed the transaction total",
			slog.String("transaction_id", tx.ID),
			slog.String("remaining_amount", utils.FormatCurrency(tx.SplitPayment.RemainingAmount)))
	}
	return tx, err
}

func (s *terminalService) RecalculateSplits(ctx context.Context) (*domain.Transaction, error) {
	return s.splitCommand(ctx, "recalculate_splits", nil, s.terminal.RecalculateSplits)
}

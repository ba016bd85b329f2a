// Package engine holds the in-memory transaction and cart engine of a terminal.
// Every command is a synchronous state transition: derived totals are updated
// before the command returns. The engine does no locking; callers serialize access.
package engine

import (
	"log/slog"
	"time"

	"github.com/SscSPs/pos_terminal/internal/utils/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Options carries the collaborators shared by the cart, split and terminal engines.
type Options struct {
	TaxRate decimal.Decimal
	Now     func() time.Time
	NewID   func() string
	Logger  *slog.Logger
}

// Option configures Options.
type Option func(*Options)

// WithTaxRate overrides the flat tax rate (a fraction, e.g. 0.08).
func WithTaxRate(rate decimal.Decimal) Option {
	return func(o *Options) {
		o.TaxRate = rate
	}
}

// WithClock overrides the time source used for audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Now = now
		}
	}
}

// WithIDGenerator overrides the id generator.
func WithIDGenerator(newID func() string) Option {
	return func(o *Options) {
		if newID != nil {
			o.NewID = newID
		}
	}
}

// WithLogger sets the logger used to report ignored commands.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

func newOptions(opts ...Option) *Options {
	o := &Options{
		TaxRate: pricing.DefaultTaxRate,
		Now:     func() time.Time { return time.Now().UTC() },
		NewID:   uuid.NewString,
		Logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

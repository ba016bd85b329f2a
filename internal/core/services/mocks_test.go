package services_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/pos_terminal/internal/core/domain"
	"github.com/SscSPs/pos_terminal/internal/core/engine"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockDocumentRepository is a mock type for the TerminalDocumentRepositoryFacade interface
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) LoadDocument(ctx context.Context, terminalID string) (*domain.TerminalDocument, error) {
	args := m.Called(ctx, terminalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TerminalDocument), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, terminalID string, doc domain.TerminalDocument) error {
	args := m.Called(ctx, terminalID, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteDocument(ctx context.Context, terminalID string) error {
	args := m.Called(ctx, terminalID)
	return args.Error(0)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// deterministicEngine returns engine options with a fixed clock and sequential ids.
func deterministicEngine(taxRate string) []engine.Option {
	var mu sync.Mutex
	n := 0
	return []engine.Option{
		engine.WithTaxRate(d(taxRate)),
		engine.WithClock(func() time.Time {
			return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		}),
		engine.WithIDGenerator(func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	}
}

package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/pos_terminal/internal/core/domain"
	"github.com/SscSPs/pos_terminal/internal/core/services"
	"github.com/SscSPs/pos_terminal/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func docWithActive(id string) domain.TerminalDocument {
	return domain.TerminalDocument{ActiveTransactionID: id}
}

func TestDocumentPersister_CoalescesBursts(t *testing.T) {
	repo := new(MockDocumentRepository)
	saved := make(chan domain.TerminalDocument, 4)
	repo.On("SaveDocument", mock.Anything, terminalID, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		saved <- args.Get(2).(domain.TerminalDocument)
	})

	p := services.NewDocumentPersister(repo, terminalID, 50*time.Millisecond)
	p.Enqueue(docWithActive("a"))
	p.Enqueue(docWithActive("b"))
	p.Enqueue(docWithActive("c"))

	select {
	case doc := <-saved:
		assert.Equal(t, "c", doc.ActiveTransactionID)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced save did not happen")
	}

	// give a stray second save a chance to show up
	time.Sleep(100 * time.Millisecond)
	repo.AssertNumberOfCalls(t, "SaveDocument", 1)
}

func TestDocumentPersister_FlushWritesImmediately(t *testing.T) {
	repo := new(MockDocumentRepository)
	repo.On("SaveDocument", mock.Anything, terminalID, docWithActive("x")).Return(nil).Once()

	p := services.NewDocumentPersister(repo, terminalID, time.Hour)
	p.Enqueue(docWithActive("x"))

	require.NoError(t, p.Flush(context.Background()))
	require.NoError(t, p.Flush(context.Background()), "nothing pending")
	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "SaveDocument", 1)
}

func TestDocumentPersister_FlushWithNothingPending(t *testing.T) {
	repo := new(MockDocumentRepository)
	p := services.NewDocumentPersister(repo, terminalID, time.Hour)

	require.NoError(t, p.Flush(context.Background()))
	repo.AssertNotCalled(t, "SaveDocument", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentPersister_RetriesFailedSnapshot(t *testing.T) {
	repo := new(MockDocumentRepository)
	repo.On("SaveDocument", mock.Anything, terminalID, docWithActive("x")).Return(errors.New("timeout")).Once()
	repo.On("SaveDocument", mock.Anything, terminalID, docWithActive("x")).Return(nil).Once()

	p := services.NewDocumentPersister(repo, terminalID, time.Hour,
		services.WithPersisterMetrics(metrics.NewTerminalMetrics(prometheus.NewRegistry())))
	p.Enqueue(docWithActive("x"))

	assert.Error(t, p.Flush(context.Background()))
	assert.NoError(t, p.Flush(context.Background()))
	repo.AssertExpectations(t)
}

func TestDocumentPersister_RetriesFailedBackgroundSave(t *testing.T) {
	repo := new(MockDocumentRepository)
	saved := make(chan struct{}, 1)
	repo.On("SaveDocument", mock.Anything, terminalID, docWithActive("x")).Return(errors.New("connection reset")).Once()
	repo.On("SaveDocument", mock.Anything, terminalID, docWithActive("x")).Return(nil).Once().Run(func(mock.Arguments) {
		saved <- struct{}{}
	})

	p := services.NewDocumentPersister(repo, terminalID, 20*time.Millisecond)
	p.Enqueue(docWithActive("x"))

	select {
	case <-saved:
	case <-time.After(2 * time.Second):
		t.Fatal("failed save was not retried without further changes")
	}
	repo.AssertExpectations(t)

	require.NoError(t, p.Flush(context.Background()), "nothing left pending after the retry")
	repo.AssertNumberOfCalls(t, "SaveDocument", 2)
}

func TestDocumentPersister_DiscardKeepsSnapshotWhenDeleteFails(t *testing.T) {
	repo := new(MockDocumentRepository)
	repo.On("DeleteDocument", mock.Anything, terminalID).Return(errors.New("timeout")).Once()
	repo.On("SaveDocument", mock.Anything, terminalID, docWithActive("x")).Return(nil).Once()

	p := services.NewDocumentPersister(repo, terminalID, time.Hour)
	p.Enqueue(docWithActive("x"))

	require.Error(t, p.Discard(context.Background()))
	require.NoError(t, p.Flush(context.Background()))
	repo.AssertExpectations(t)
}

func TestDocumentPersister_DiscardDropsPendingSnapshot(t *testing.T) {
	repo := new(MockDocumentRepository)
	repo.On("DeleteDocument", mock.Anything, terminalID).Return(nil).Once()

	p := services.NewDocumentPersister(repo, terminalID, time.Hour)
	p.Enqueue(docWithActive("x"))

	require.NoError(t, p.Discard(context.Background()))
	require.NoError(t, p.Flush(context.Background()))
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "SaveDocument", mock.Anything, mock.Anything, mock.Anything)
}

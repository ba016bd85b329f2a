package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/pos_terminal/internal/apperrors"
	"github.com/SscSPs/pos_terminal/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_terminal/internal/core/ports/repositories"
	"github.com/SscSPs/pos_terminal/internal/models"
	"github.com/SscSPs/pos_terminal/internal/utils/mapping"
	"github.com/redis/go-redis/v9"
)

const keyNamespace = "pos"

type cmdable interface {
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// NewClient parses a redis:// URL and verifies connectivity.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// TerminalDocumentRepository keeps each terminal document under a single key.
// A zero ttl keeps documents until they are deleted.
type TerminalDocumentRepository struct {
	store cmdable
	ttl   time.Duration
}

// NewTerminalDocumentRepository creates a redis-backed terminal document repository.
func NewTerminalDocumentRepository(client *redis.Client, ttl time.Duration) portsrepo.TerminalDocumentRepositoryFacade {
	return newTerminalDocumentRepository(client, ttl)
}

func newTerminalDocumentRepository(store cmdable, ttl time.Duration) *TerminalDocumentRepository {
	return &TerminalDocumentRepository{store: store, ttl: ttl}
}

var _ portsrepo.TerminalDocumentRepositoryFacade = (*TerminalDocumentRepository)(nil)

// DocumentKey returns the key holding the document of terminalID.
func DocumentKey(terminalID string) string {
	return fmt.Sprintf("%s:terminal:v%d:%s", keyNamespace, models.TerminalDocumentSchemaVersion, terminalID)
}

// SaveDocument replaces the stored document of a terminal.
func (r *TerminalDocumentRepository) SaveDocument(ctx context.Context, terminalID string, doc domain.TerminalDocument) error {
	modelDoc, err := mapping.ToModelTerminalDocument(terminalID, doc)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, DocumentKey(terminalID), modelDoc.Document, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save terminal document %s: %w", terminalID, err)
	}
	return nil
}

// LoadDocument retrieves the document of a terminal.
func (r *TerminalDocumentRepository) LoadDocument(ctx context.Context, terminalID string) (*domain.TerminalDocument, error) {
	raw, err := r.store.Get(ctx, DocumentKey(terminalID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load terminal document %s: %w", terminalID, err)
	}
	return mapping.ToDomainTerminalDocument(models.TerminalDocument{
		TerminalID:    terminalID,
		SchemaVersion: models.TerminalDocumentSchemaVersion,
		Document:      raw,
	})
}

// DeleteDocument removes the document of a terminal.
func (r *TerminalDocumentRepository) DeleteDocument(ctx context.Context, terminalID string) error {
	if err := r.store.Del(ctx, DocumentKey(terminalID)).Err(); err != nil {
		return fmt.Errorf("failed to delete terminal document %s: %w", terminalID, err)
	}
	return nil
}

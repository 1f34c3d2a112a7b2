package contract

import (
	"context"

	"incorporate-run-be/internal/entity"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, msg *entity.ChatMessage) error
	Update(ctx context.Context, msg *entity.ChatMessage) error
	// FindRecent returns the newest limit messages in chronological order.
	FindRecent(ctx context.Context, companyId uuid.UUID, limit int) ([]*entity.ChatMessage, error)
}

type IndexEntryRepository interface {
	EnsureSchema(ctx context.Context) error
	// ReplaceSource swaps every chunk of one source for the given entries.
	ReplaceSource(ctx context.Context, companyId uuid.UUID, sourceType entity.IndexSourceType, sourceId uuid.UUID, entries []*entity.IndexEntry) error
	DeleteBySource(ctx context.Context, companyId uuid.UUID, sourceType entity.IndexSourceType, sourceId uuid.UUID) error
	SearchSimilar(ctx context.Context, companyId uuid.UUID, embedding []float32, limit int) ([]*entity.ScoredIndexEntry, error)
}

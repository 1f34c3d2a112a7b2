package implementation

import (
	"context"
	"fmt"

	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/mapper"
	"incorporate-run-be/internal/model"
	"incorporate-run-be/internal/repository/contract"
	"incorporate-run-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ChatMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMessageMapper
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &ChatMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMessageMapper(),
	}
}

func (r *ChatMessageRepositoryImpl) Create(ctx context.Context, msg *entity.ChatMessage) error {
	m := r.mapper.ToModel(msg)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*msg = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatMessageRepositoryImpl) Update(ctx context.Context, msg *entity.ChatMessage) error {
	m := r.mapper.ToModel(msg)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*msg = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatMessageRepositoryImpl) FindRecent(ctx context.Context, companyId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	models, err := findAll[model.ChatMessage](ctx, r.db,
		specification.ByCompany{CompanyID: companyId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return r.mapper.ToEntities(models), nil
}

type IndexEntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IndexEntryMapper
}

func NewIndexEntryRepository(db *gorm.DB) contract.IndexEntryRepository {
	return &IndexEntryRepositoryImpl{
		db:     db,
		mapper: mapper.NewIndexEntryMapper(),
	}
}

// EnsureSchema creates the vector extension and table. It is idempotent.
func (r *IndexEntryRepositoryImpl) EnsureSchema(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}
	return db.AutoMigrate(&model.IndexEntry{})
}

func (r *IndexEntryRepositoryImpl) ReplaceSource(ctx context.Context, companyId uuid.UUID, sourceType entity.IndexSourceType, sourceId uuid.UUID, entries []*entity.IndexEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := applySpecifications(tx, specification.BySource{
			CompanyID:  companyId,
			SourceType: string(sourceType),
			SourceID:   sourceId,
		}).Delete(&model.IndexEntry{}).Error
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}

		models := make([]*model.IndexEntry, len(entries))
		for i, e := range entries {
			e.CompanyId = companyId
			e.SourceType = sourceType
			e.SourceId = sourceId
			models[i] = r.mapper.ToModel(e)
		}
		if err := tx.Create(&models).Error; err != nil {
			return err
		}
		for i, m := range models {
			entries[i].Id = m.Id
			entries[i].CreatedAt = m.CreatedAt
		}
		return nil
	})
}

func (r *IndexEntryRepositoryImpl) DeleteBySource(ctx context.Context, companyId uuid.UUID, sourceType entity.IndexSourceType, sourceId uuid.UUID) error {
	return applySpecifications(r.db.WithContext(ctx), specification.BySource{
		CompanyID:  companyId,
		SourceType: string(sourceType),
		SourceID:   sourceId,
	}).Delete(&model.IndexEntry{}).Error
}

// SearchSimilar ranks one company's chunks by cosine similarity. pgvector's
// <=> is cosine distance, so similarity is 1 - distance.
func (r *IndexEntryRepositoryImpl) SearchSimilar(ctx context.Context, companyId uuid.UUID, embedding []float32, limit int) ([]*entity.ScoredIndexEntry, error) {
	if limit <= 0 {
		limit = 3
	}

	type result struct {
		model.IndexEntry
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)
	err := r.db.WithContext(ctx).
		Model(&model.IndexEntry{}).
		Select("index_entries.*, 1 - (embedding <=> ?) AS similarity", queryVector).
		Scopes(specification.ByCompany{CompanyID: companyId}.Apply).
		Order(gorm.Expr("embedding <=> ?", queryVector)).
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*entity.ScoredIndexEntry, len(results))
	for i := range results {
		scored[i] = &entity.ScoredIndexEntry{
			Entry:      r.mapper.ToEntity(&results[i].IndexEntry),
			Similarity: results[i].Similarity,
		}
	}
	return scored, nil
}

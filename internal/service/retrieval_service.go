package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"incorporate-run-be/internal/constant"
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/pkg/apperror"
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/internal/repository/unitofwork"
	"incorporate-run-be/pkg/embedding"
	"incorporate-run-be/pkg/utils"

	"github.com/google/uuid"
)

// IRetrievalService owns the per-company vector index. Every read is scoped
// to one company id.
type IRetrievalService interface {
	IndexDocument(ctx context.Context, doc *entity.Document) (string, error)
	IndexChatMessage(ctx context.Context, msg *entity.ChatMessage) (string, error)
	RemoveSource(ctx context.Context, companyId uuid.UUID, sourceType entity.IndexSourceType, sourceId uuid.UUID) error
	Search(ctx context.Context, companyId uuid.UUID, query string, k int) ([]*entity.ScoredIndexEntry, error)
}

type retrievalService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger

	schemaMu    sync.Mutex
	schemaReady bool
}

func NewRetrievalService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IRetrievalService {
	return &retrievalService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            log,
	}
}

func IndexRef(sourceType entity.IndexSourceType, sourceId uuid.UUID) string {
	return fmt.Sprintf("%s:%s", sourceType, sourceId)
}

// ensureSchema creates the vector extension and table on first use. A failed
// attempt is retried on the next call.
func (s *retrievalService) ensureSchema(ctx context.Context) error {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()
	if s.schemaReady {
		return nil
	}
	if err := s.uowFactory.NewUnitOfWork(ctx).IndexEntryRepository().EnsureSchema(ctx); err != nil {
		return err
	}
	s.schemaReady = true
	return nil
}

func (s *retrievalService) embed(ctx context.Context, text, taskType string) ([]float32, error) {
	res, err := s.embeddingProvider.Generate(ctx, text, taskType)
	if err != nil {
		if errors.Is(err, embedding.ErrDisabled) {
			return nil, fmt.Errorf("embedding: %w", apperror.ErrUnavailable)
		}
		return nil, err
	}
	return res.Embedding.Values, nil
}

func (s *retrievalService) IndexDocument(ctx context.Context, doc *entity.Document) (string, error) {
	body := fmt.Sprintf("Document Title: %s\nDocument Type: %s\n\n%s", doc.Title, doc.Type, doc.Content)
	metadata := map[string]string{
		"title": doc.Title,
		"type":  string(doc.Type),
	}
	return s.index(ctx, doc.CompanyId, entity.IndexSourceDocument, doc.Id, doc.Content, body, metadata)
}

func (s *retrievalService) IndexChatMessage(ctx context.Context, msg *entity.ChatMessage) (string, error) {
	metadata := map[string]string{
		"role": string(msg.Role),
	}
	return s.index(ctx, msg.CompanyId, entity.IndexSourceChatMessage, msg.Id, msg.Content, msg.Content, metadata)
}

func (s *retrievalService) index(
	ctx context.Context,
	companyId uuid.UUID,
	sourceType entity.IndexSourceType,
	sourceId uuid.UUID,
	raw, body string,
	metadata map[string]string,
) (string, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return "", err
	}

	repo := s.uowFactory.NewUnitOfWork(ctx).IndexEntryRepository()
	if strings.TrimSpace(raw) == "" {
		return "", repo.DeleteBySource(ctx, companyId, sourceType, sourceId)
	}

	chunks := utils.SplitText(body, constant.IndexChunkSize, constant.IndexChunkOverlap)
	entries := make([]*entity.IndexEntry, 0, len(chunks))
	for i, chunk := range chunks {
		vector, err := s.embed(ctx, chunk, embedding.TaskRetrievalDocument)
		if err != nil {
			return "", err
		}
		entries = append(entries, &entity.IndexEntry{
			Id:         uuid.New(),
			CompanyId:  companyId,
			SourceType: sourceType,
			SourceId:   sourceId,
			ChunkIndex: i,
			Content:    chunk,
			Metadata:   metadata,
			Embedding:  vector,
		})
	}

	if err := repo.ReplaceSource(ctx, companyId, sourceType, sourceId, entries); err != nil {
		return "", err
	}

	s.logger.Debug("RETRIEVAL", "Indexed source", map[string]interface{}{
		"company_id":  companyId.String(),
		"source_type": string(sourceType),
		"source_id":   sourceId.String(),
		"chunks":      len(entries),
	})
	return IndexRef(sourceType, sourceId), nil
}

func (s *retrievalService) RemoveSource(ctx context.Context, companyId uuid.UUID, sourceType entity.IndexSourceType, sourceId uuid.UUID) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	return s.uowFactory.NewUnitOfWork(ctx).IndexEntryRepository().DeleteBySource(ctx, companyId, sourceType, sourceId)
}

// Search never fails on an unconfigured embedder; it just finds nothing.
func (s *retrievalService) Search(ctx context.Context, companyId uuid.UUID, query string, k int) ([]*entity.ScoredIndexEntry, error) {
	if strings.TrimSpace(query) == "" || k <= 0 {
		return []*entity.ScoredIndexEntry{}, nil
	}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	vector, err := s.embed(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		if errors.Is(err, apperror.ErrUnavailable) {
			return []*entity.ScoredIndexEntry{}, nil
		}
		return nil, err
	}

	return s.uowFactory.NewUnitOfWork(ctx).IndexEntryRepository().SearchSimilar(ctx, companyId, vector, k)
}

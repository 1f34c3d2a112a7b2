package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"incorporate-run-be/internal/constant"
	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/pkg/apperror"
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/internal/repository/contract"
	"incorporate-run-be/internal/repository/unitofwork"
	"incorporate-run-be/pkg/llm"

	"github.com/google/uuid"
)

type IChatService interface {
	Send(ctx context.Context, companyId uuid.UUID, req *dto.SendChatMessageRequest) (*dto.ChatExchangeResponse, error)
	History(ctx context.Context, companyId uuid.UUID, limit int) ([]dto.ChatMessageResponse, error)
	Extract(ctx context.Context, req *dto.ExtractEntitiesRequest) (*dto.ExtractedEntities, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	generation IGenerationService
	retrieval  IRetrievalService
	logger     logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	generation IGenerationService,
	retrieval IRetrievalService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		generation: generation,
		retrieval:  retrieval,
		logger:     log,
	}
}

// Send is the retrieval-augmented flow: store and index the question, pull
// the nearest passages for this company only, answer, then store and index
// the reply. An unconfigured model yields the fallback reply, not an error.
func (s *chatService) Send(ctx context.Context, companyId uuid.UUID, req *dto.SendChatMessageRequest) (*dto.ChatExchangeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	company, err := uow.CompanyRepository().FindByID(ctx, companyId)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NotFound("company", companyId.String())
	}

	recent, err := uow.ChatMessageRepository().FindRecent(ctx, companyId, constant.ChatHistoryWindow)
	if err != nil {
		return nil, err
	}

	userMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		CompanyId: companyId,
		Role:      entity.ChatRoleUser,
		Content:   strings.TrimSpace(req.Content),
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMsg); err != nil {
		return nil, err
	}
	s.index(ctx, uow, userMsg)

	// one extra hit because the question itself is now in the index
	hits, err := s.retrieval.Search(ctx, companyId, userMsg.Content, constant.ChatRetrievalTopK+1)
	if err != nil {
		s.logger.Warn("CHAT", "Retrieval failed, answering without passages", map[string]interface{}{
			"company_id": companyId.String(),
			"error":      err.Error(),
		})
		hits = nil
	}
	passages := make([]string, 0, constant.ChatRetrievalTopK)
	for _, hit := range hits {
		if hit.Entry.SourceId == userMsg.Id {
			continue
		}
		if len(passages) == constant.ChatRetrievalTopK {
			break
		}
		passages = append(passages, describePassage(hit.Entry))
	}

	companyContext, err := s.companyContext(ctx, uow, company)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(recent))
	for _, m := range recent {
		history = append(history, llm.Message{Role: string(m.Role), Content: m.Content})
	}

	reply, err := s.generation.Answer(ctx, userMsg.Content, companyContext, passages, history)
	if err != nil {
		if !errors.Is(err, apperror.ErrUnavailable) {
			return nil, err
		}
		reply = constant.ChatFallbackReply
	}

	assistantMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		CompanyId: companyId,
		Role:      entity.ChatRoleAssistant,
		Content:   reply,
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMsg); err != nil {
		return nil, err
	}
	s.index(ctx, uow, assistantMsg)

	return &dto.ChatExchangeResponse{
		UserMessage:      dto.NewChatMessageResponse(userMsg),
		AssistantMessage: dto.NewChatMessageResponse(assistantMsg),
	}, nil
}

// index is best effort; a message that cannot be embedded is still kept.
func (s *chatService) index(ctx context.Context, uow unitofwork.UnitOfWork, msg *entity.ChatMessage) {
	ref, err := s.retrieval.IndexChatMessage(ctx, msg)
	if err != nil {
		level := s.logger.Error
		if errors.Is(err, apperror.ErrUnavailable) {
			level = s.logger.Debug
		}
		level("CHAT", "Chat message not indexed", map[string]interface{}{
			"message_id": msg.Id.String(),
			"error":      err.Error(),
		})
		return
	}
	if ref == "" {
		return
	}
	msg.IndexRef = &ref
	if err := uow.ChatMessageRepository().Update(ctx, msg); err != nil {
		s.logger.Error("CHAT", "Failed to store index reference", map[string]interface{}{
			"message_id": msg.Id.String(),
			"error":      err.Error(),
		})
	}
}

func describePassage(e *entity.IndexEntry) string {
	if e.SourceType == entity.IndexSourceDocument {
		return fmt.Sprintf("(document %q) %s", e.Metadata["title"], e.Content)
	}
	return fmt.Sprintf("(earlier %s message) %s", e.Metadata["role"], e.Content)
}

func (s *chatService) companyContext(ctx context.Context, uow unitofwork.UnitOfWork, company *entity.Company) (string, error) {
	founders, err := uow.FounderRepository().FindAllByCompany(ctx, company.Id)
	if err != nil {
		return "", err
	}
	docs, err := uow.DocumentRepository().FindAllByCompany(ctx, company.Id, contract.DocumentFilter{})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company: %s (%s)\n", company.Name, company.Jurisdiction))
	if company.Description != "" {
		sb.WriteString(fmt.Sprintf("Description: %s\n", company.Description))
	}
	sb.WriteString(fmt.Sprintf("Health score: %d/100\n", company.HealthScore))
	sb.WriteString("Founders:\n")
	for _, f := range founders {
		sb.WriteString(fmt.Sprintf("- %s, %s, %.2f%%, %s\n", f.FullName(), f.Role, f.EquityPercentage, f.Status))
	}
	sb.WriteString("Documents:\n")
	for _, d := range docs {
		sb.WriteString(fmt.Sprintf("- %s [%s] %s\n", d.Title, d.Type, d.Status))
	}
	return sb.String(), nil
}

func (s *chatService) History(ctx context.Context, companyId uuid.UUID, limit int) ([]dto.ChatMessageResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	msgs, err := uow.ChatMessageRepository().FindRecent(ctx, companyId, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewChatMessageResponses(msgs), nil
}

// Extract returns nil when the model could not produce a usable structure;
// the client then falls back to manual entry.
func (s *chatService) Extract(ctx context.Context, req *dto.ExtractEntitiesRequest) (*dto.ExtractedEntities, error) {
	return s.generation.ExtractEntities(ctx, req.Text)
}

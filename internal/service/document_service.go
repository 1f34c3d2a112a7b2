package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/pkg/apperror"
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/internal/repository/contract"
	"incorporate-run-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Create(ctx context.Context, companyId uuid.UUID, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	Generate(ctx context.Context, companyId uuid.UUID, req *dto.GenerateDocumentRequest) (*dto.DocumentResponse, error)
	GetAll(ctx context.Context, companyId uuid.UUID, filter contract.DocumentFilter) ([]dto.DocumentResponse, error)
	Show(ctx context.Context, companyId, id uuid.UUID) (*dto.DocumentResponse, error)
	Update(ctx context.Context, companyId, id uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	Validate(ctx context.Context, companyId, id uuid.UUID) (*dto.ValidationResultResponse, error)
	Delete(ctx context.Context, companyId, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	generation       IGenerationService
	retrieval        IRetrievalService
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	generation IGenerationService,
	retrieval IRetrievalService,
	publisherService IPublisherService,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		generation:       generation,
		retrieval:        retrieval,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *documentService) Create(ctx context.Context, companyId uuid.UUID, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc := &entity.Document{
		Id:        uuid.New(),
		CompanyId: companyId,
		Type:      entity.DocumentType(req.Type),
		Title:     strings.TrimSpace(req.Title),
		Status:    entity.DocumentStatusDrafting,
		Content:   req.Content,
	}
	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, err
	}

	if strings.TrimSpace(doc.Content) != "" {
		if err := s.queueIndex(ctx, doc); err != nil {
			return nil, err
		}
	}

	res := dto.NewDocumentResponse(doc)
	return &res, nil
}

// Generate drafts a document of the requested type from the company profile.
func (s *documentService) Generate(ctx context.Context, companyId uuid.UUID, req *dto.GenerateDocumentRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	company, err := uow.CompanyRepository().FindByID(ctx, companyId)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NotFound("company", companyId.String())
	}
	founders, err := uow.FounderRepository().FindAllByCompany(ctx, companyId)
	if err != nil {
		return nil, err
	}

	docType := entity.DocumentType(req.Type)
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultTitle(docType, company.Name)
	}

	content, err := s.generation.DraftDocument(ctx, company, founders, docType, title)
	if err != nil {
		return nil, err
	}

	return s.Create(ctx, companyId, &dto.CreateDocumentRequest{
		Type:    req.Type,
		Title:   title,
		Content: content,
	})
}

func defaultTitle(docType entity.DocumentType, companyName string) string {
	words := strings.Split(string(docType), "_")
	for i, w := range words {
		switch w {
		case "ip", "nda", "safe":
			words[i] = strings.ToUpper(w)
		default:
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return fmt.Sprintf("%s - %s", strings.Join(words, " "), companyName)
}

func (s *documentService) queueIndex(ctx context.Context, doc *entity.Document) error {
	payload, err := json.Marshal(dto.PublishIndexDocumentMessage{DocumentId: doc.Id, CompanyId: doc.CompanyId})
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, payload)
}

func (s *documentService) GetAll(ctx context.Context, companyId uuid.UUID, filter contract.DocumentFilter) ([]dto.DocumentResponse, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, apperror.NewValidationError(fmt.Sprintf("unknown document type %q", filter.Type))
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperror.NewValidationError(fmt.Sprintf("unknown document status %q", filter.Status))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindAllByCompany(ctx, companyId, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewDocumentResponses(docs), nil
}

func findDocument(ctx context.Context, uow unitofwork.UnitOfWork, companyId, id uuid.UUID) (*entity.Document, error) {
	doc, err := uow.DocumentRepository().FindOwned(ctx, companyId, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NotFound("document", id.String())
	}
	return doc, nil
}

func (s *documentService) Show(ctx context.Context, companyId, id uuid.UUID) (*dto.DocumentResponse, error) {
	doc, err := findDocument(ctx, s.uowFactory.NewUnitOfWork(ctx), companyId, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewDocumentResponse(doc)
	return &res, nil
}

// Update writes title and content only, last writer wins. Status is left to
// the lifecycle operations. A content change re-queues the document for
// indexing, which overwrites its previous chunks.
func (s *documentService) Update(ctx context.Context, companyId, id uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := findDocument(ctx, uow, companyId, id)
	if err != nil {
		return nil, err
	}

	title, content := doc.Title, doc.Content
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
	}
	contentChanged := req.Content != nil && *req.Content != doc.Content
	if contentChanged {
		content = *req.Content
	}

	if err := uow.DocumentRepository().UpdateDetails(ctx, companyId, id, title, content); err != nil {
		return nil, err
	}

	doc, err = findDocument(ctx, uow, companyId, id)
	if err != nil {
		return nil, err
	}

	if contentChanged {
		if err := s.queueIndex(ctx, doc); err != nil {
			return nil, err
		}
	}

	res := dto.NewDocumentResponse(doc)
	return &res, nil
}

// Validate asks the model to review the document. A valid result moves a
// drafting document to validating and nothing further; other statuses are
// left alone. The result is returned even if saving it fails.
func (s *documentService) Validate(ctx context.Context, companyId, id uuid.UUID) (*dto.ValidationResultResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := findDocument(ctx, uow, companyId, id)
	if err != nil {
		return nil, err
	}
	company, err := uow.CompanyRepository().FindByID(ctx, companyId)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NotFound("company", companyId.String())
	}

	result, err := s.generation.ValidateDocument(ctx, company, doc)
	if err != nil {
		return nil, err
	}

	details := map[string]interface{}{"document_id": doc.Id.String()}
	if err := uow.DocumentRepository().SaveValidationIssues(ctx, doc.Id, result.Issues); err != nil {
		details["error"] = err.Error()
		s.logger.Error("DOCUMENT", "Failed to store validation result", details)
	}
	if result.Valid {
		// the document may have been sent for signature while the model was working
		if _, err := uow.DocumentRepository().CompareAndSetStatus(ctx, doc.Id, entity.DocumentStatusDrafting, entity.DocumentStatusValidating); err != nil {
			details["error"] = err.Error()
			s.logger.Error("DOCUMENT", "Failed to advance document status", details)
		}
	}

	res := dto.NewValidationResultResponse(result)
	return &res, nil
}

func (s *documentService) Delete(ctx context.Context, companyId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findDocument(ctx, uow, companyId, id); err != nil {
		return err
	}

	if err := uow.DocumentRepository().Delete(ctx, companyId, id); err != nil {
		return err
	}

	if err := s.retrieval.RemoveSource(ctx, companyId, entity.IndexSourceDocument, id); err != nil {
		s.logger.Warn("DOCUMENT", "Failed to remove document from index", map[string]interface{}{
			"document_id": id.String(),
			"error":       err.Error(),
		})
	}
	return nil
}

package service

import (
	"context"
	"encoding/json"
	"strings"

	"incorporate-run-be/internal/constant"
	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/pkg/apperror"
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/internal/repository/unitofwork"
	"incorporate-run-be/pkg/events"

	"github.com/google/uuid"
)

type IInvestorService interface {
	Add(ctx context.Context, companyId uuid.UUID, req *dto.AddInvestorRequest) (*dto.InvestorResponse, error)
	GetAll(ctx context.Context, companyId uuid.UUID) ([]dto.InvestorResponse, error)
	Show(ctx context.Context, companyId, id uuid.UUID) (*dto.InvestorResponse, error)
	Update(ctx context.Context, companyId, id uuid.UUID, req *dto.UpdateInvestorRequest) (*dto.InvestorResponse, error)
	Delete(ctx context.Context, companyId, id uuid.UUID) error
}

type investorService struct {
	uowFactory       unitofwork.RepositoryFactory
	generation       IGenerationService
	publisherService IPublisherService
	eventPublisher   events.Publisher
	logger           logger.ILogger
}

func NewInvestorService(
	uowFactory unitofwork.RepositoryFactory,
	generation IGenerationService,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IInvestorService {
	return &investorService{
		uowFactory:       uowFactory,
		generation:       generation,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

// Add persists the investor first, then drafts a SAFE for them. A failed
// draft keeps the investor without a SAFE reference.
func (s *investorService) Add(ctx context.Context, companyId uuid.UUID, req *dto.AddInvestorRequest) (*dto.InvestorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	company, err := uow.CompanyRepository().FindByID(ctx, companyId)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NotFound("company", companyId.String())
	}

	investor := &entity.Investor{
		Id:               uuid.New(),
		CompanyId:        companyId,
		Name:             strings.TrimSpace(req.Name),
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		InvestmentAmount: req.InvestmentAmount,
		Status:           entity.InvestorStatusPending,
	}
	if err := uow.InvestorRepository().Create(ctx, investor); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.eventPublisher, s.logger, constant.EventInvestorAdded, map[string]interface{}{
		"company_id":  companyId.String(),
		"investor_id": investor.Id.String(),
		"name":        investor.Name,
		"amount":      investor.InvestmentAmount,
	})

	content, err := s.generation.DraftSafe(ctx, company, investor)
	if err != nil {
		s.logger.Warn("INVESTOR", "SAFE draft failed, investor kept without SAFE", map[string]interface{}{
			"investor_id": investor.Id.String(),
			"error":       err.Error(),
		})
		res := dto.NewInvestorResponse(investor)
		return &res, nil
	}

	doc := &entity.Document{
		Id:        uuid.New(),
		CompanyId: companyId,
		Type:      entity.DocumentTypeSafe,
		Title:     "SAFE - " + investor.Name,
		Status:    entity.DocumentStatusDrafting,
		Content:   content,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, err
	}
	investor.SafeDocumentId = &doc.Id
	if err := uow.InvestorRepository().Update(ctx, investor); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.queueIndex(ctx, doc)

	res := dto.NewInvestorResponse(investor)
	return &res, nil
}

func (s *investorService) queueIndex(ctx context.Context, doc *entity.Document) {
	payload, err := json.Marshal(dto.PublishIndexDocumentMessage{DocumentId: doc.Id, CompanyId: doc.CompanyId})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("INVESTOR", "Failed to queue SAFE for indexing", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
	}
}

func (s *investorService) GetAll(ctx context.Context, companyId uuid.UUID) ([]dto.InvestorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	investors, err := uow.InvestorRepository().FindAllByCompany(ctx, companyId)
	if err != nil {
		return nil, err
	}
	return dto.NewInvestorResponses(investors), nil
}

func (s *investorService) find(ctx context.Context, uow unitofwork.UnitOfWork, companyId, id uuid.UUID) (*entity.Investor, error) {
	investor, err := uow.InvestorRepository().FindOwned(ctx, companyId, id)
	if err != nil {
		return nil, err
	}
	if investor == nil {
		return nil, apperror.NotFound("investor", id.String())
	}
	return investor, nil
}

func (s *investorService) Show(ctx context.Context, companyId, id uuid.UUID) (*dto.InvestorResponse, error) {
	investor, err := s.find(ctx, s.uowFactory.NewUnitOfWork(ctx), companyId, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewInvestorResponse(investor)
	return &res, nil
}

func (s *investorService) Update(ctx context.Context, companyId, id uuid.UUID, req *dto.UpdateInvestorRequest) (*dto.InvestorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	investor, err := s.find(ctx, uow, companyId, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		investor.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		investor.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.InvestmentAmount != nil {
		investor.InvestmentAmount = *req.InvestmentAmount
	}

	if err := uow.InvestorRepository().Update(ctx, investor); err != nil {
		return nil, err
	}
	res := dto.NewInvestorResponse(investor)
	return &res, nil
}

func (s *investorService) Delete(ctx context.Context, companyId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.find(ctx, uow, companyId, id); err != nil {
		return err
	}
	return uow.InvestorRepository().Delete(ctx, companyId, id)
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"incorporate-run-be/internal/constant"
	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/pkg/apperror"
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/internal/repository/unitofwork"
	"incorporate-run-be/pkg/events"

	"github.com/google/uuid"
)

type IFounderService interface {
	Invite(ctx context.Context, companyId uuid.UUID, req *dto.InviteFounderRequest) (*dto.FounderResponse, error)
	GetAll(ctx context.Context, companyId uuid.UUID) ([]dto.FounderResponse, error)
	Show(ctx context.Context, companyId, id uuid.UUID) (*dto.FounderResponse, error)
	Update(ctx context.Context, companyId, id uuid.UUID, req *dto.UpdateFounderRequest) (*dto.FounderResponse, error)
	UpdateStatus(ctx context.Context, companyId, id uuid.UUID, status string) (*dto.FounderResponse, error)
	Delete(ctx context.Context, companyId, id uuid.UUID) error
}

type founderService struct {
	uowFactory     unitofwork.RepositoryFactory
	outbox         IOutboxService
	eventPublisher events.Publisher
	clientURL      string
	logger         logger.ILogger
}

func NewFounderService(
	uowFactory unitofwork.RepositoryFactory,
	outbox IOutboxService,
	eventPublisher events.Publisher,
	clientURL string,
	log logger.ILogger,
) IFounderService {
	return &founderService{
		uowFactory:     uowFactory,
		outbox:         outbox,
		eventPublisher: eventPublisher,
		clientURL:      strings.TrimRight(clientURL, "/"),
		logger:         log,
	}
}

// Invite writes the founder and its invitation intent in one transaction and
// attempts delivery after commit. A failed email leaves the intent for the
// reconciler instead of failing the request.
func (s *founderService) Invite(ctx context.Context, companyId uuid.UUID, req *dto.InviteFounderRequest) (*dto.FounderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	company, err := uow.CompanyRepository().FindByID(ctx, companyId)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NotFound("company", companyId.String())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := uow.FounderRepository().FindByEmail(ctx, companyId, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError(fmt.Sprintf("founder %s already invited", email))
	}

	founder := &entity.Founder{
		Id:               uuid.New(),
		CompanyId:        companyId,
		Email:            email,
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		Role:             req.Role,
		EquityPercentage: req.EquityPercentage,
		Status:           entity.FounderStatusInvited,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.FounderRepository().Create(ctx, founder); err != nil {
		return nil, err
	}

	intent := &entity.NotificationIntent{
		Id:        uuid.New(),
		CompanyId: companyId,
		Kind:      entity.IntentKindFounderInvitation,
		Recipient: founder.Email,
		Payload: map[string]string{
			"founder_name": founder.FullName(),
			"company_name": company.Name,
			"role":         founder.Role,
			"invite_url":   fmt.Sprintf("%s/join/%s", s.clientURL, founder.Id),
		},
		Status:        entity.IntentStatusPending,
		NextAttemptAt: time.Now().UTC(),
		FounderId:     &founder.Id,
	}
	if err := uow.NotificationIntentRepository().Create(ctx, intent); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.outbox.Dispatch(ctx, []uuid.UUID{intent.Id})

	publishEvent(ctx, s.eventPublisher, s.logger, constant.EventFounderInvited, map[string]interface{}{
		"company_id": companyId.String(),
		"founder_id": founder.Id.String(),
		"name":       founder.FullName(),
		"email":      founder.Email,
	})

	res := dto.NewFounderResponse(founder)
	return &res, nil
}

func (s *founderService) GetAll(ctx context.Context, companyId uuid.UUID) ([]dto.FounderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	founders, err := uow.FounderRepository().FindAllByCompany(ctx, companyId)
	if err != nil {
		return nil, err
	}
	return dto.NewFounderResponses(founders), nil
}

func (s *founderService) find(ctx context.Context, uow unitofwork.UnitOfWork, companyId, id uuid.UUID) (*entity.Founder, error) {
	founder, err := uow.FounderRepository().FindOwned(ctx, companyId, id)
	if err != nil {
		return nil, err
	}
	if founder == nil {
		return nil, apperror.NotFound("founder", id.String())
	}
	return founder, nil
}

func (s *founderService) Show(ctx context.Context, companyId, id uuid.UUID) (*dto.FounderResponse, error) {
	founder, err := s.find(ctx, s.uowFactory.NewUnitOfWork(ctx), companyId, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewFounderResponse(founder)
	return &res, nil
}

func (s *founderService) Update(ctx context.Context, companyId, id uuid.UUID, req *dto.UpdateFounderRequest) (*dto.FounderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	founder, err := s.find(ctx, uow, companyId, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		founder.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		founder.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Role != nil {
		founder.Role = *req.Role
	}
	if req.EquityPercentage != nil {
		founder.EquityPercentage = *req.EquityPercentage
	}
	if req.IdVerified != nil {
		founder.IdVerified = *req.IdVerified
	}

	if err := uow.FounderRepository().Update(ctx, founder); err != nil {
		return nil, err
	}
	res := dto.NewFounderResponse(founder)
	return &res, nil
}

func (s *founderService) UpdateStatus(ctx context.Context, companyId, id uuid.UUID, status string) (*dto.FounderResponse, error) {
	next := entity.FounderStatus(status)
	if !next.Valid() {
		return nil, apperror.NewValidationError(fmt.Sprintf("unknown founder status %q", status))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	founder, err := s.find(ctx, uow, companyId, id)
	if err != nil {
		return nil, err
	}

	if !founder.Status.CanTransitionTo(next) {
		return nil, &apperror.TransitionError{Entity: "founder", From: string(founder.Status), To: status}
	}
	founder.Status = next

	if err := uow.FounderRepository().Update(ctx, founder); err != nil {
		return nil, err
	}
	res := dto.NewFounderResponse(founder)
	return &res, nil
}

func (s *founderService) Delete(ctx context.Context, companyId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.find(ctx, uow, companyId, id); err != nil {
		return err
	}
	return uow.FounderRepository().Delete(ctx, companyId, id)
}

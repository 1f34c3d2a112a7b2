package service

import (
	"context"
	"strings"

	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/pkg/apperror"
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/internal/repository/contract"
	"incorporate-run-be/internal/repository/memory"
	"incorporate-run-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ICompanyService interface {
	// ResolveCompanyID maps an owner to their company, through the cache.
	ResolveCompanyID(ctx context.Context, userId uuid.UUID) (uuid.UUID, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	Show(ctx context.Context, companyId uuid.UUID) (*dto.CompanyResponse, error)
	Update(ctx context.Context, companyId uuid.UUID, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
	Onboard(ctx context.Context, userId uuid.UUID, req *dto.ExtractedEntities) (*dto.OnboardResponse, error)
}

type companyService struct {
	uowFactory      unitofwork.RepositoryFactory
	cache           *memory.CompanyCache
	founderService  IFounderService
	investorService IInvestorService
	logger          logger.ILogger
}

func NewCompanyService(
	uowFactory unitofwork.RepositoryFactory,
	cache *memory.CompanyCache,
	founderService IFounderService,
	investorService IInvestorService,
	log logger.ILogger,
) ICompanyService {
	return &companyService{
		uowFactory:      uowFactory,
		cache:           cache,
		founderService:  founderService,
		investorService: investorService,
		logger:          log,
	}
}

func (s *companyService) ResolveCompanyID(ctx context.Context, userId uuid.UUID) (uuid.UUID, error) {
	if id, ok := s.cache.Get(userId); ok {
		return id, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	company, err := uow.CompanyRepository().FindByOwner(ctx, userId)
	if err != nil {
		return uuid.Nil, err
	}
	if company == nil {
		return uuid.Nil, apperror.NotFound("company", "")
	}

	s.cache.Set(userId, company.Id)
	return company.Id, nil
}

func (s *companyService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.CompanyRepository().FindByOwner(ctx, userId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("user already has a company")
	}

	company := &entity.Company{
		Id:           uuid.New(),
		UserId:       userId,
		Name:         strings.TrimSpace(req.Name),
		Jurisdiction: entity.Jurisdiction(req.Jurisdiction),
		Description:  req.Description,
	}
	if err := uow.CompanyRepository().Create(ctx, company); err != nil {
		return nil, err
	}

	s.cache.Invalidate(userId)
	s.logger.Info("COMPANY", "Company created", map[string]interface{}{
		"company_id": company.Id.String(),
		"user_id":    userId.String(),
	})

	res := dto.NewCompanyResponse(company)
	return &res, nil
}

// Show recomputes the health score on every read and persists it when it moved.
func (s *companyService) Show(ctx context.Context, companyId uuid.UUID) (*dto.CompanyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	company, err := uow.CompanyRepository().FindByID(ctx, companyId)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NotFound("company", companyId.String())
	}

	stats, err := collectHealthStats(ctx, uow, companyId)
	if err != nil {
		return nil, err
	}

	if score := entity.ComputeHealthScore(stats); score != company.HealthScore {
		company.HealthScore = score
		if err := uow.CompanyRepository().Update(ctx, company); err != nil {
			return nil, err
		}
	}

	res := dto.NewCompanyResponse(company)
	return &res, nil
}

func collectHealthStats(ctx context.Context, uow unitofwork.UnitOfWork, companyId uuid.UUID) (entity.HealthStats, error) {
	var stats entity.HealthStats

	docs, err := uow.DocumentRepository().FindAllByCompany(ctx, companyId, contract.DocumentFilter{})
	if err != nil {
		return stats, err
	}
	for _, d := range docs {
		stats.DocumentsTotal++
		if d.Status == entity.DocumentStatusActive {
			stats.DocumentsActive++
		}
	}

	tasks, err := uow.TaskRepository().FindAllByCompany(ctx, companyId)
	if err != nil {
		return stats, err
	}
	for _, t := range tasks {
		stats.TasksTotal++
		if t.Status == entity.TaskStatusCompleted {
			stats.TasksCompleted++
		}
	}

	founders, err := uow.FounderRepository().FindAllByCompany(ctx, companyId)
	if err != nil {
		return stats, err
	}
	for _, f := range founders {
		stats.FoundersTotal++
		if f.Status == entity.FounderStatusActive {
			stats.FoundersActive++
		}
	}

	return stats, nil
}

func (s *companyService) Update(ctx context.Context, companyId uuid.UUID, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	company, err := uow.CompanyRepository().FindByID(ctx, companyId)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NotFound("company", companyId.String())
	}

	if req.Name != nil {
		company.Name = strings.TrimSpace(*req.Name)
	}
	if req.Jurisdiction != nil {
		company.Jurisdiction = entity.Jurisdiction(*req.Jurisdiction)
	}
	if req.Description != nil {
		company.Description = *req.Description
	}

	if err := uow.CompanyRepository().Update(ctx, company); err != nil {
		return nil, err
	}

	res := dto.NewCompanyResponse(company)
	return &res, nil
}

// Onboard creates the company, then runs each founder and investor through
// the regular invite/add flows so invitations and SAFE drafts happen as usual.
// The first failure stops the run; rows created before it are kept.
func (s *companyService) Onboard(ctx context.Context, userId uuid.UUID, req *dto.ExtractedEntities) (*dto.OnboardResponse, error) {
	company, err := s.Create(ctx, userId, &dto.CreateCompanyRequest{
		Name:         req.Company.Name,
		Jurisdiction: req.Company.Jurisdiction,
		Description:  req.Company.Description,
	})
	if err != nil {
		return nil, err
	}

	res := &dto.OnboardResponse{
		Company:   *company,
		Founders:  make([]dto.FounderResponse, 0, len(req.Founders)),
		Investors: make([]dto.InvestorResponse, 0, len(req.Investors)),
	}

	for _, f := range req.Founders {
		founder, err := s.founderService.Invite(ctx, company.Id, &dto.InviteFounderRequest{
			Email:            f.Email,
			FirstName:        f.FirstName,
			LastName:         f.LastName,
			Role:             f.Role,
			EquityPercentage: f.EquityPercentage,
		})
		if err != nil {
			return nil, err
		}
		res.Founders = append(res.Founders, *founder)
	}

	for _, i := range req.Investors {
		investor, err := s.investorService.Add(ctx, company.Id, &dto.AddInvestorRequest{
			Name:             i.Name,
			Email:            i.Email,
			InvestmentAmount: i.InvestmentAmount,
		})
		if err != nil {
			return nil, err
		}
		res.Investors = append(res.Investors, *investor)
	}

	s.logger.Info("COMPANY", "Onboarding completed", map[string]interface{}{
		"company_id": company.Id.String(),
		"founders":   len(res.Founders),
		"investors":  len(res.Investors),
	})
	return res, nil
}

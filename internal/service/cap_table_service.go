package service

import (
	"context"
	"strings"

	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/pkg/apperror"
	"incorporate-run-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// ICapTableService manages snapshot rows. Percentages are stored as given and
// never rebalanced.
type ICapTableService interface {
	Create(ctx context.Context, companyId uuid.UUID, req *dto.CreateCapTableEntryRequest) (*dto.CapTableEntryResponse, error)
	GetAll(ctx context.Context, companyId uuid.UUID) ([]dto.CapTableEntryResponse, error)
	Update(ctx context.Context, companyId, id uuid.UUID, req *dto.UpdateCapTableEntryRequest) (*dto.CapTableEntryResponse, error)
	Delete(ctx context.Context, companyId, id uuid.UUID) error
}

type capTableService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCapTableService(uowFactory unitofwork.RepositoryFactory) ICapTableService {
	return &capTableService{
		uowFactory: uowFactory,
	}
}

func (s *capTableService) Create(ctx context.Context, companyId uuid.UUID, req *dto.CreateCapTableEntryRequest) (*dto.CapTableEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry := &entity.CapTableEntry{
		Id:         uuid.New(),
		CompanyId:  companyId,
		HolderId:   req.HolderId,
		HolderType: entity.HolderType(req.HolderType),
		HolderName: strings.TrimSpace(req.HolderName),
		Shares:     req.Shares,
		Percentage: req.Percentage,
	}
	if err := uow.CapTableRepository().Create(ctx, entry); err != nil {
		return nil, err
	}

	res := dto.NewCapTableEntryResponse(entry)
	return &res, nil
}

func (s *capTableService) GetAll(ctx context.Context, companyId uuid.UUID) ([]dto.CapTableEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.CapTableRepository().FindAllByCompany(ctx, companyId)
	if err != nil {
		return nil, err
	}
	return dto.NewCapTableEntryResponses(entries), nil
}

func (s *capTableService) Update(ctx context.Context, companyId, id uuid.UUID, req *dto.UpdateCapTableEntryRequest) (*dto.CapTableEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry, err := uow.CapTableRepository().FindOwned(ctx, companyId, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NotFound("cap table entry", id.String())
	}

	if req.HolderName != nil {
		entry.HolderName = strings.TrimSpace(*req.HolderName)
	}
	if req.Shares != nil {
		entry.Shares = *req.Shares
	}
	if req.Percentage != nil {
		entry.Percentage = *req.Percentage
	}

	if err := uow.CapTableRepository().Update(ctx, entry); err != nil {
		return nil, err
	}
	res := dto.NewCapTableEntryResponse(entry)
	return &res, nil
}

func (s *capTableService) Delete(ctx context.Context, companyId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry, err := uow.CapTableRepository().FindOwned(ctx, companyId, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return apperror.NotFound("cap table entry", id.String())
	}
	return uow.CapTableRepository().Delete(ctx, companyId, id)
}

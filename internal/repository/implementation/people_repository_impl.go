package implementation

import (
	"context"

	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/mapper"
	"incorporate-run-be/internal/model"
	"incorporate-run-be/internal/repository/contract"
	"incorporate-run-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FounderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FounderMapper
}

func NewFounderRepository(db *gorm.DB) contract.FounderRepository {
	return &FounderRepositoryImpl{
		db:     db,
		mapper: mapper.NewFounderMapper(),
	}
}

func (r *FounderRepositoryImpl) Create(ctx context.Context, founder *entity.Founder) error {
	m := r.mapper.ToModel(founder)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*founder = *r.mapper.ToEntity(m)
	return nil
}

func (r *FounderRepositoryImpl) Update(ctx context.Context, founder *entity.Founder) error {
	m := r.mapper.ToModel(founder)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*founder = *r.mapper.ToEntity(m)
	return nil
}

func (r *FounderRepositoryImpl) Delete(ctx context.Context, companyId, id uuid.UUID) error {
	return applySpecifications(r.db.WithContext(ctx), specification.ByCompany{CompanyID: companyId}, specification.ByID{ID: id}).
		Delete(&model.Founder{}).Error
}

func (r *FounderRepositoryImpl) FindOwned(ctx context.Context, companyId, id uuid.UUID) (*entity.Founder, error) {
	m, err := findOne[model.Founder](ctx, r.db, specification.ByCompany{CompanyID: companyId}, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(m), nil
}

func (r *FounderRepositoryImpl) FindByEmail(ctx context.Context, companyId uuid.UUID, email string) (*entity.Founder, error) {
	m, err := findOne[model.Founder](ctx, r.db, specification.ByCompany{CompanyID: companyId}, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(m), nil
}

func (r *FounderRepositoryImpl) FindAllByCompany(ctx context.Context, companyId uuid.UUID) ([]*entity.Founder, error) {
	models, err := findAll[model.Founder](ctx, r.db,
		specification.ByCompany{CompanyID: companyId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

type InvestorRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InvestorMapper
}

func NewInvestorRepository(db *gorm.DB) contract.InvestorRepository {
	return &InvestorRepositoryImpl{
		db:     db,
		mapper: mapper.NewInvestorMapper(),
	}
}

func (r *InvestorRepositoryImpl) Create(ctx context.Context, investor *entity.Investor) error {
	m := r.mapper.ToModel(investor)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*investor = *r.mapper.ToEntity(m)
	return nil
}

func (r *InvestorRepositoryImpl) Update(ctx context.Context, investor *entity.Investor) error {
	m := r.mapper.ToModel(investor)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*investor = *r.mapper.ToEntity(m)
	return nil
}

func (r *InvestorRepositoryImpl) Delete(ctx context.Context, companyId, id uuid.UUID) error {
	return applySpecifications(r.db.WithContext(ctx), specification.ByCompany{CompanyID: companyId}, specification.ByID{ID: id}).
		Delete(&model.Investor{}).Error
}

func (r *InvestorRepositoryImpl) FindOwned(ctx context.Context, companyId, id uuid.UUID) (*entity.Investor, error) {
	m, err := findOne[model.Investor](ctx, r.db, specification.ByCompany{CompanyID: companyId}, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(m), nil
}

func (r *InvestorRepositoryImpl) FindBySafeDocument(ctx context.Context, documentId uuid.UUID) (*entity.Investor, error) {
	m, err := findOne[model.Investor](ctx, r.db, specification.Filter("safe_document_id", documentId))
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(m), nil
}

func (r *InvestorRepositoryImpl) FindAllByCompany(ctx context.Context, companyId uuid.UUID) ([]*entity.Investor, error) {
	models, err := findAll[model.Investor](ctx, r.db,
		specification.ByCompany{CompanyID: companyId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

type TaskRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TaskMapper
}

func NewTaskRepository(db *gorm.DB) contract.TaskRepository {
	return &TaskRepositoryImpl{
		db:     db,
		mapper: mapper.NewTaskMapper(),
	}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entity.Task) error {
	m := r.mapper.ToModel(task)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*task = *r.mapper.ToEntity(m)
	return nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entity.Task) error {
	m := r.mapper.ToModel(task)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*task = *r.mapper.ToEntity(m)
	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, companyId, id uuid.UUID) error {
	return applySpecifications(r.db.WithContext(ctx), specification.ByCompany{CompanyID: companyId}, specification.ByID{ID: id}).
		Delete(&model.Task{}).Error
}

func (r *TaskRepositoryImpl) FindOwned(ctx context.Context, companyId, id uuid.UUID) (*entity.Task, error) {
	m, err := findOne[model.Task](ctx, r.db, specification.ByCompany{CompanyID: companyId}, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(m), nil
}

func (r *TaskRepositoryImpl) FindAllByCompany(ctx context.Context, companyId uuid.UUID) ([]*entity.Task, error) {
	models, err := findAll[model.Task](ctx, r.db,
		specification.ByCompany{CompanyID: companyId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

type CapTableRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CapTableMapper
}

func NewCapTableRepository(db *gorm.DB) contract.CapTableRepository {
	return &CapTableRepositoryImpl{
		db:     db,
		mapper: mapper.NewCapTableMapper(),
	}
}

func (r *CapTableRepositoryImpl) Create(ctx context.Context, entry *entity.CapTableEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *CapTableRepositoryImpl) Update(ctx context.Context, entry *entity.CapTableEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *CapTableRepositoryImpl) Delete(ctx context.Context, companyId, id uuid.UUID) error {
	return applySpecifications(r.db.WithContext(ctx), specification.ByCompany{CompanyID: companyId}, specification.ByID{ID: id}).
		Delete(&model.CapTableEntry{}).Error
}

func (r *CapTableRepositoryImpl) FindOwned(ctx context.Context, companyId, id uuid.UUID) (*entity.CapTableEntry, error) {
	m, err := findOne[model.CapTableEntry](ctx, r.db, specification.ByCompany{CompanyID: companyId}, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(m), nil
}

func (r *CapTableRepositoryImpl) FindAllByCompany(ctx context.Context, companyId uuid.UUID) ([]*entity.CapTableEntry, error) {
	models, err := findAll[model.CapTableEntry](ctx, r.db,
		specification.ByCompany{CompanyID: companyId},
		specification.OrderBy{Field: "shares", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

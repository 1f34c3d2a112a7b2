package contract

import (
	"context"

	"incorporate-run-be/internal/entity"

	"github.com/google/uuid"
)

type FounderRepository interface {
	Create(ctx context.Context, founder *entity.Founder) error
	Update(ctx context.Context, founder *entity.Founder) error
	Delete(ctx context.Context, companyId, id uuid.UUID) error
	FindOwned(ctx context.Context, companyId, id uuid.UUID) (*entity.Founder, error)
	FindByEmail(ctx context.Context, companyId uuid.UUID, email string) (*entity.Founder, error)
	FindAllByCompany(ctx context.Context, companyId uuid.UUID) ([]*entity.Founder, error)
}

type InvestorRepository interface {
	Create(ctx context.Context, investor *entity.Investor) error
	Update(ctx context.Context, investor *entity.Investor) error
	Delete(ctx context.Context, companyId, id uuid.UUID) error
	FindOwned(ctx context.Context, companyId, id uuid.UUID) (*entity.Investor, error)
	FindBySafeDocument(ctx context.Context, documentId uuid.UUID) (*entity.Investor, error)
	FindAllByCompany(ctx context.Context, companyId uuid.UUID) ([]*entity.Investor, error)
}

type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, companyId, id uuid.UUID) error
	FindOwned(ctx context.Context, companyId, id uuid.UUID) (*entity.Task, error)
	FindAllByCompany(ctx context.Context, companyId uuid.UUID) ([]*entity.Task, error)
}

type CapTableRepository interface {
	Create(ctx context.Context, entry *entity.CapTableEntry) error
	Update(ctx context.Context, entry *entity.CapTableEntry) error
	Delete(ctx context.Context, companyId, id uuid.UUID) error
	FindOwned(ctx context.Context, companyId, id uuid.UUID) (*entity.CapTableEntry, error)
	FindAllByCompany(ctx context.Context, companyId uuid.UUID) ([]*entity.CapTableEntry, error)
}

package contract

import (
	"context"

	"incorporate-run-be/internal/entity"

	"github.com/google/uuid"
)

// Finders return (nil, nil) when nothing matches.

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	FindByOwner(ctx context.Context, userId uuid.UUID) (*entity.Company, error)
}

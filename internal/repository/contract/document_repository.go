package contract

import (
	"context"
	"time"

	"incorporate-run-be/internal/entity"

	"github.com/google/uuid"
)

type DocumentFilter struct {
	Type   entity.DocumentType
	Status entity.DocumentStatus
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	// UpdateDetails writes title and content only. Status is never written
	// through it; status moves go through CompareAndSetStatus.
	UpdateDetails(ctx context.Context, companyId, id uuid.UUID, title, content string) error
	SaveValidationIssues(ctx context.Context, id uuid.UUID, issues []entity.ValidationIssue) error
	SetIndexRef(ctx context.Context, id uuid.UUID, ref *string) error
	Delete(ctx context.Context, companyId, id uuid.UUID) error
	// FindByID ignores tenancy; only the magic link flow may use it.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	FindOwned(ctx context.Context, companyId, id uuid.UUID) (*entity.Document, error)
	FindAllByCompany(ctx context.Context, companyId uuid.UUID, filter DocumentFilter) ([]*entity.Document, error)
	// CompareAndSetStatus moves a document from one status to another and
	// reports false if it was no longer in "from".
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to entity.DocumentStatus) (bool, error)
}

type SignatureRepository interface {
	Create(ctx context.Context, sig *entity.DocumentSignature) error
	// MarkSent moves a pending row to sent and reports false for any other
	// status, so a delivery receipt never overwrites a signature.
	MarkSent(ctx context.Context, id uuid.UUID) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.DocumentSignature, error)
	FindByToken(ctx context.Context, token string) (*entity.DocumentSignature, error)
	FindAllByDocument(ctx context.Context, documentId uuid.UUID) ([]*entity.DocumentSignature, error)
	// MarkSigned flips one unsigned row to signed. It reports false when the
	// row was already signed, so a token is consumed at most once.
	MarkSigned(ctx context.Context, id uuid.UUID, signedAt time.Time, ipAddress, userAgent *string) (bool, error)
}

package implementation

import (
	"context"
	"time"

	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/mapper"
	"incorporate-run-be/internal/model"
	"incorporate-run-be/internal/repository/contract"
	"incorporate-run-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) Create(ctx context.Context, doc *entity.Document) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRepositoryImpl) UpdateDetails(ctx context.Context, companyId, id uuid.UUID, title, content string) error {
	return applySpecifications(r.db.WithContext(ctx).Model(&model.Document{}),
		specification.ByCompany{CompanyID: companyId},
		specification.ByID{ID: id},
	).Updates(map[string]interface{}{
		"title":   title,
		"content": content,
	}).Error
}

func (r *DocumentRepositoryImpl) SaveValidationIssues(ctx context.Context, id uuid.UUID, issues []entity.ValidationIssue) error {
	return r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("id = ?", id).
		Update("validation_errors", r.mapper.IssuesToJSON(issues)).Error
}

func (r *DocumentRepositoryImpl) SetIndexRef(ctx context.Context, id uuid.UUID, ref *string) error {
	return r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("id = ?", id).
		Update("index_ref", ref).Error
}

func (r *DocumentRepositoryImpl) Delete(ctx context.Context, companyId, id uuid.UUID) error {
	return applySpecifications(r.db.WithContext(ctx), specification.ByCompany{CompanyID: companyId}, specification.ByID{ID: id}).
		Delete(&model.Document{}).Error
}

func (r *DocumentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	m, err := findOne[model.Document](ctx, r.db, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(m), nil
}

func (r *DocumentRepositoryImpl) FindOwned(ctx context.Context, companyId, id uuid.UUID) (*entity.Document, error) {
	m, err := findOne[model.Document](ctx, r.db, specification.ByCompany{CompanyID: companyId}, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(m), nil
}

func (r *DocumentRepositoryImpl) FindAllByCompany(ctx context.Context, companyId uuid.UUID, filter contract.DocumentFilter) ([]*entity.Document, error) {
	specs := []specification.Specification{specification.ByCompany{CompanyID: companyId}}
	if filter.Type != "" {
		specs = append(specs, specification.Filter("type", string(filter.Type)))
	}
	if filter.Status != "" {
		specs = append(specs, specification.ByStatus{Status: string(filter.Status)})
	}
	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})

	models, err := findAll[model.Document](ctx, r.db, specs...)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentRepositoryImpl) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to entity.DocumentStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

type SignatureRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SignatureMapper
}

func NewSignatureRepository(db *gorm.DB) contract.SignatureRepository {
	return &SignatureRepositoryImpl{
		db:     db,
		mapper: mapper.NewSignatureMapper(),
	}
}

func (r *SignatureRepositoryImpl) Create(ctx context.Context, sig *entity.DocumentSignature) error {
	m := r.mapper.ToModel(sig)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*sig = *r.mapper.ToEntity(m)
	return nil
}

func (r *SignatureRepositoryImpl) MarkSent(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.DocumentSignature{}).
		Where("id = ? AND status = ?", id, string(entity.SignatureStatusPending)).
		Update("status", string(entity.SignatureStatusSent))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *SignatureRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.DocumentSignature, error) {
	m, err := findOne[model.DocumentSignature](ctx, r.db, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(m), nil
}

func (r *SignatureRepositoryImpl) FindByToken(ctx context.Context, token string) (*entity.DocumentSignature, error) {
	m, err := findOne[model.DocumentSignature](ctx, r.db, specification.ByMagicToken{Token: token})
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(m), nil
}

func (r *SignatureRepositoryImpl) FindAllByDocument(ctx context.Context, documentId uuid.UUID) ([]*entity.DocumentSignature, error) {
	models, err := findAll[model.DocumentSignature](ctx, r.db,
		specification.ByDocument{DocumentID: documentId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SignatureRepositoryImpl) MarkSigned(ctx context.Context, id uuid.UUID, signedAt time.Time, ipAddress, userAgent *string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.DocumentSignature{}).
		Where("id = ? AND status <> ?", id, string(entity.SignatureStatusSigned)).
		Updates(map[string]interface{}{
			"status":     string(entity.SignatureStatusSigned),
			"signed_at":  signedAt,
			"ip_address": ipAddress,
			"user_agent": userAgent,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

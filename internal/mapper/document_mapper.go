package mapper

import (
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:               d.Id,
		CompanyId:        d.CompanyId,
		Type:             entity.DocumentType(d.Type),
		Title:            d.Title,
		Status:           entity.DocumentStatus(d.Status),
		Content:          d.Content,
		ValidationErrors: fromJSON[[]entity.ValidationIssue](d.ValidationErrors),
		IndexRef:         d.IndexRef,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func (m *DocumentMapper) IssuesToJSON(issues []entity.ValidationIssue) datatypes.JSON {
	if issues == nil {
		issues = []entity.ValidationIssue{}
	}
	return toJSON(issues)
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:               d.Id,
		CompanyId:        d.CompanyId,
		Type:             string(d.Type),
		Title:            d.Title,
		Status:           string(d.Status),
		Content:          d.Content,
		ValidationErrors: m.IssuesToJSON(d.ValidationErrors),
		IndexRef:         d.IndexRef,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

type SignatureMapper struct{}

func NewSignatureMapper() *SignatureMapper {
	return &SignatureMapper{}
}

func (m *SignatureMapper) ToEntity(s *model.DocumentSignature) *entity.DocumentSignature {
	if s == nil {
		return nil
	}
	return &entity.DocumentSignature{
		Id:          s.Id,
		DocumentId:  s.DocumentId,
		SignerEmail: s.SignerEmail,
		SignerName:  s.SignerName,
		Status:      entity.SignatureStatus(s.Status),
		MagicToken:  s.MagicToken,
		SignedAt:    s.SignedAt,
		IpAddress:   s.IpAddress,
		UserAgent:   s.UserAgent,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (m *SignatureMapper) ToModel(s *entity.DocumentSignature) *model.DocumentSignature {
	if s == nil {
		return nil
	}
	return &model.DocumentSignature{
		Id:          s.Id,
		DocumentId:  s.DocumentId,
		SignerEmail: s.SignerEmail,
		SignerName:  s.SignerName,
		Status:      string(s.Status),
		MagicToken:  s.MagicToken,
		SignedAt:    s.SignedAt,
		IpAddress:   s.IpAddress,
		UserAgent:   s.UserAgent,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (m *SignatureMapper) ToEntities(sigs []*model.DocumentSignature) []*entity.DocumentSignature {
	entities := make([]*entity.DocumentSignature, len(sigs))
	for i, s := range sigs {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

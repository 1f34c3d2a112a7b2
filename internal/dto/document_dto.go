package dto

import (
	"time"

	"incorporate-run-be/internal/entity"

	"github.com/google/uuid"
)


type CreateDocumentRequest struct {
	Type    string `json:"type" validate:"required,oneof=incorporation bylaws founders_agreement ip_assignment board_consent stock_purchase safe nda statuts shareholders_agreement"`
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content"`
}

type GenerateDocumentRequest struct {
	Type  string `json:"type" validate:"required,oneof=incorporation bylaws founders_agreement ip_assignment board_consent stock_purchase safe nda statuts shareholders_agreement"`
	Title string `json:"title" validate:"omitempty,max=255"`
}

type UpdateDocumentRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=255"`
	Content *string `json:"content"`
}

type SignerRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

type SendForSignatureRequest struct {
	Signers []SignerRequest `json:"signers" validate:"required,min=1,dive"`
}

type ValidationIssueResponse struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type DocumentResponse struct {
	Id               uuid.UUID                 `json:"id"`
	Type             string                    `json:"type"`
	Title            string                    `json:"title"`
	Status           string                    `json:"status"`
	Content          string                    `json:"content"`
	ValidationErrors []ValidationIssueResponse `json:"validation_errors"`
	IndexRef         *string                   `json:"index_ref"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

type ValidationResultResponse struct {
	Valid  bool                      `json:"valid"`
	Issues []ValidationIssueResponse `json:"issues"`
}

type SignatureResponse struct {
	Id          uuid.UUID  `json:"id"`
	DocumentId  uuid.UUID  `json:"document_id"`
	SignerEmail string     `json:"signer_email"`
	SignerName  string     `json:"signer_name"`
	Status      string     `json:"status"`
	SignedAt    *time.Time `json:"signed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type SendForSignatureResponse struct {
	Document   DocumentResponse    `json:"document"`
	Signatures []SignatureResponse `json:"signatures"`
}

// PublicSignatureResponse is what an unauthenticated signer sees behind a magic link.
type PublicSignatureResponse struct {
	SignerName  string     `json:"signer_name"`
	SignerEmail string     `json:"signer_email"`
	Status      string     `json:"status"`
	SignedAt    *time.Time `json:"signed_at"`
	Document    struct {
		Id      uuid.UUID `json:"id"`
		Type    string    `json:"type"`
		Title   string    `json:"title"`
		Content string    `json:"content"`
		Status  string    `json:"status"`
	} `json:"document"`
}

type SignResponse struct {
	Signature      SignatureResponse `json:"signature"`
	DocumentStatus string            `json:"document_status"`
}

func newIssues(issues []entity.ValidationIssue) []ValidationIssueResponse {
	res := make([]ValidationIssueResponse, len(issues))
	for i, is := range issues {
		res[i] = ValidationIssueResponse{Severity: is.Severity, Message: is.Message}
	}
	return res
}

func NewDocumentResponse(d *entity.Document) DocumentResponse {
	return DocumentResponse{
		Id:               d.Id,
		Type:             string(d.Type),
		Title:            d.Title,
		Status:           string(d.Status),
		Content:          d.Content,
		ValidationErrors: newIssues(d.ValidationErrors),
		IndexRef:         d.IndexRef,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func NewDocumentResponses(docs []*entity.Document) []DocumentResponse {
	res := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		res[i] = NewDocumentResponse(d)
	}
	return res
}

func NewValidationResultResponse(r *entity.ValidationResult) ValidationResultResponse {
	return ValidationResultResponse{Valid: r.Valid, Issues: newIssues(r.Issues)}
}

func NewSignatureResponse(s *entity.DocumentSignature) SignatureResponse {
	return SignatureResponse{
		Id:          s.Id,
		DocumentId:  s.DocumentId,
		SignerEmail: s.SignerEmail,
		SignerName:  s.SignerName,
		Status:      string(s.Status),
		SignedAt:    s.SignedAt,
		CreatedAt:   s.CreatedAt,
	}
}

func NewSignatureResponses(sigs []*entity.DocumentSignature) []SignatureResponse {
	res := make([]SignatureResponse, len(sigs))
	for i, s := range sigs {
		res[i] = NewSignatureResponse(s)
	}
	return res
}

func NewPublicSignatureResponse(s *entity.DocumentSignature, d *entity.Document) PublicSignatureResponse {
	res := PublicSignatureResponse{
		SignerName:  s.SignerName,
		SignerEmail: s.SignerEmail,
		Status:      string(s.Status),
		SignedAt:    s.SignedAt,
	}
	res.Document.Id = d.Id
	res.Document.Type = string(d.Type)
	res.Document.Title = d.Title
	res.Document.Content = d.Content
	res.Document.Status = string(d.Status)
	return res
}

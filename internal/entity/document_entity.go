package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocumentTypeIncorporation         DocumentType = "incorporation"
	DocumentTypeBylaws                DocumentType = "bylaws"
	DocumentTypeFoundersAgreement     DocumentType = "founders_agreement"
	DocumentTypeIPAssignment          DocumentType = "ip_assignment"
	DocumentTypeBoardConsent          DocumentType = "board_consent"
	DocumentTypeStockPurchase         DocumentType = "stock_purchase"
	DocumentTypeSafe                  DocumentType = "safe"
	DocumentTypeNDA                   DocumentType = "nda"
	DocumentTypeStatuts               DocumentType = "statuts"
	DocumentTypeShareholdersAgreement DocumentType = "shareholders_agreement"
)

var DocumentTypes = []DocumentType{
	DocumentTypeIncorporation,
	DocumentTypeBylaws,
	DocumentTypeFoundersAgreement,
	DocumentTypeIPAssignment,
	DocumentTypeBoardConsent,
	DocumentTypeStockPurchase,
	DocumentTypeSafe,
	DocumentTypeNDA,
	DocumentTypeStatuts,
	DocumentTypeShareholdersAgreement,
}

func (t DocumentType) Valid() bool { return member(DocumentTypes, t) }

type DocumentStatus string

const (
	DocumentStatusDrafting   DocumentStatus = "drafting"
	DocumentStatusValidating DocumentStatus = "validating"
	DocumentStatusSigning    DocumentStatus = "signing"
	DocumentStatusActive     DocumentStatus = "active"
)

var documentStatusOrder = []DocumentStatus{
	DocumentStatusDrafting,
	DocumentStatusValidating,
	DocumentStatusSigning,
	DocumentStatusActive,
}

func (s DocumentStatus) Valid() bool { return member(documentStatusOrder, s) }

// CanTransitionTo allows only the forward edges of
// drafting -> validating -> signing -> active. Validation may be skipped;
// activation may not.
func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	switch s {
	case DocumentStatusDrafting:
		return next == DocumentStatusValidating || next == DocumentStatusSigning
	case DocumentStatusValidating:
		return next == DocumentStatusSigning
	case DocumentStatusSigning:
		return next == DocumentStatusActive
	case DocumentStatusActive:
		return false
	}
	return false
}

type ValidationIssue struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"issues"`
}

type Document struct {
	Id               uuid.UUID
	CompanyId        uuid.UUID
	Type             DocumentType
	Title            string
	Status           DocumentStatus
	Content          string
	ValidationErrors []ValidationIssue
	IndexRef         *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

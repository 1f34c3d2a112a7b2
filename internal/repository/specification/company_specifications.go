package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByCompany is the tenant filter. Every company-scoped read goes through it.
type ByCompany struct {
	CompanyID uuid.UUID
}

func (s ByCompany) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("company_id = ?", s.CompanyID)
}

type ByDocument struct {
	DocumentID uuid.UUID
}

func (s ByDocument) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

type ByMagicToken struct {
	Token string
}

func (s ByMagicToken) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("magic_token = ?", s.Token)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type BySource struct {
	CompanyID  uuid.UUID
	SourceType string
	SourceID   uuid.UUID
}

func (s BySource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("company_id = ? AND source_type = ? AND source_id = ?", s.CompanyID, s.SourceType, s.SourceID)
}

// DueIntents selects undelivered outbox rows whose retry time has come.
type DueIntents struct {
	Now         time.Time
	MaxAttempts int
}

func (s DueIntents) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ? AND next_attempt_at <= ? AND attempts < ?", []string{"pending", "failed"}, s.Now, s.MaxAttempts)
}

type Unread struct{}

func (s Unread) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_read = ?", false)
}

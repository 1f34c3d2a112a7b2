package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Document struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Type             string         `gorm:"type:varchar(64);not null"`
	Title            string         `gorm:"type:varchar(255);not null"`
	Status           string         `gorm:"type:varchar(32);not null;default:'drafting'"`
	Content          string         `gorm:"type:text"`
	ValidationErrors datatypes.JSON `gorm:"type:jsonb"`
	IndexRef         *string        `gorm:"type:varchar(255)"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`

	Signatures []DocumentSignature `gorm:"foreignKey:DocumentId;constraint:OnDelete:CASCADE"`
}

func (Document) TableName() string {
	return "documents"
}

type DocumentSignature struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId  uuid.UUID  `gorm:"type:uuid;not null;index"`
	SignerEmail string     `gorm:"type:varchar(255);not null"`
	SignerName  string     `gorm:"type:varchar(255);not null"`
	Status      string     `gorm:"type:varchar(32);not null;default:'pending'"`
	MagicToken  string     `gorm:"type:varchar(128);uniqueIndex;not null"`
	SignedAt    *time.Time
	IpAddress   *string   `gorm:"type:varchar(64)"`
	UserAgent   *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	Intents []NotificationIntent `gorm:"foreignKey:SignatureId;constraint:OnDelete:CASCADE"`
}

func (DocumentSignature) TableName() string {
	return "document_signatures"
}

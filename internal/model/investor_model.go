package model

import (
	"time"

	"github.com/google/uuid"
)

type Investor struct {
	Id               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyId        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name             string     `gorm:"type:varchar(255);not null"`
	Email            string     `gorm:"type:varchar(255);not null"`
	InvestmentAmount float64    `gorm:"type:numeric(15,2);not null;default:0"`
	Status           string     `gorm:"type:varchar(32);not null;default:'pending'"`
	SafeDocumentId   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime"`

	SafeDocument *Document `gorm:"foreignKey:SafeDocumentId;constraint:OnDelete:SET NULL"`
}

func (Investor) TableName() string {
	return "investors"
}

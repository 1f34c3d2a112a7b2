package model

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Jurisdiction string    `gorm:"type:varchar(32);not null"`
	Description  string    `gorm:"type:text"`
	HealthScore  int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`

	Founders            []Founder            `gorm:"foreignKey:CompanyId;constraint:OnDelete:CASCADE"`
	Investors           []Investor           `gorm:"foreignKey:CompanyId;constraint:OnDelete:CASCADE"`
	Documents           []Document           `gorm:"foreignKey:CompanyId;constraint:OnDelete:CASCADE"`
	Tasks               []Task               `gorm:"foreignKey:CompanyId;constraint:OnDelete:CASCADE"`
	CapTableEntries     []CapTableEntry      `gorm:"foreignKey:CompanyId;constraint:OnDelete:CASCADE"`
	ChatMessages        []ChatMessage        `gorm:"foreignKey:CompanyId;constraint:OnDelete:CASCADE"`
	IndexEntries        []IndexEntry         `gorm:"foreignKey:CompanyId;constraint:OnDelete:CASCADE"`
	NotificationIntents []NotificationIntent `gorm:"foreignKey:CompanyId;constraint:OnDelete:CASCADE"`
}

func (Company) TableName() string {
	return "companies"
}

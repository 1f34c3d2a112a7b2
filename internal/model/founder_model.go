package model

import (
	"time"

	"github.com/google/uuid"
)

type Founder struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyId        uuid.UUID `gorm:"type:uuid;not null;index"`
	Email            string    `gorm:"type:varchar(255);not null;index"`
	FirstName        string    `gorm:"type:varchar(255);not null"`
	LastName         string    `gorm:"type:varchar(255)"`
	Role             string    `gorm:"type:varchar(100)"`
	EquityPercentage float64   `gorm:"type:numeric(7,4);not null;default:0"`
	Status           string    `gorm:"type:varchar(32);not null;default:'invited'"`
	IdVerified       bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Founder) TableName() string {
	return "founders"
}

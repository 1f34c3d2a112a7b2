package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyId   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Description string     `gorm:"type:text;not null"`
	Category    string     `gorm:"type:varchar(100)"`
	AssigneeId  *uuid.UUID `gorm:"type:uuid"`
	Status      string     `gorm:"type:varchar(32);not null;default:'pending'"`
	DueDate     *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Task) TableName() string {
	return "tasks"
}

type CapTableEntry struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyId  uuid.UUID  `gorm:"type:uuid;not null;index"`
	HolderId   *uuid.UUID `gorm:"type:uuid"`
	HolderType string     `gorm:"type:varchar(32);not null"`
	HolderName string     `gorm:"type:varchar(255);not null"`
	Shares     int64      `gorm:"not null;default:0"`
	Percentage float64    `gorm:"type:numeric(7,4);not null;default:0"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`
}

func (CapTableEntry) TableName() string {
	return "cap_table_entries"
}

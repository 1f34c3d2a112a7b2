package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification stores the activity feed history.
type Notification struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID      `gorm:"type:uuid;not null;index:idx_notifications_user_created,priority:1;index:idx_notifications_user_unread,priority:1"`
	CompanyId  *uuid.UUID     `gorm:"type:uuid;index"`
	TypeCode   string         `gorm:"type:varchar(50);not null"`
	EntityType string         `gorm:"type:varchar(50)"`
	EntityId   *uuid.UUID     `gorm:"type:uuid"`
	Title      string         `gorm:"type:varchar(200);not null"`
	Message    string         `gorm:"type:text;not null"`
	Metadata   datatypes.JSON `gorm:"type:jsonb"`
	IsRead     bool           `gorm:"default:false;index:idx_notifications_user_unread,priority:2"`
	ReadAt     *time.Time
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_notifications_user_created,priority:2"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NotificationIntent is the outbox row for a transactional email.
type NotificationIntent struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Kind          string         `gorm:"type:varchar(32);not null"`
	Recipient     string         `gorm:"type:varchar(255);not null"`
	Payload       datatypes.JSON `gorm:"type:jsonb"`
	Status        string         `gorm:"type:varchar(16);not null;default:'pending';index:idx_intents_due,priority:1"`
	Attempts      int            `gorm:"not null;default:0"`
	LastError     *string        `gorm:"type:text"`
	NextAttemptAt time.Time      `gorm:"index:idx_intents_due,priority:2"`
	SignatureId   *uuid.UUID     `gorm:"type:uuid;index"`
	FounderId     *uuid.UUID     `gorm:"type:uuid;index"`
	SentAt        *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`

	Founder *Founder `gorm:"foreignKey:FounderId;constraint:OnDelete:CASCADE"`
}

func (NotificationIntent) TableName() string {
	return "notification_intents"
}

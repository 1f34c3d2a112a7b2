package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app activity feed item for a user.
type Notification struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	CompanyId  *uuid.UUID
	TypeCode   string
	Title      string
	Message    string
	Metadata   map[string]interface{}
	EntityType string
	EntityId   *uuid.UUID
	IsRead     bool
	CreatedAt  time.Time
}

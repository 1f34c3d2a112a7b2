package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	Id        uuid.UUID
	CompanyId uuid.UUID
	Role      ChatRole
	Content   string
	IndexRef  *string
	CreatedAt time.Time
}

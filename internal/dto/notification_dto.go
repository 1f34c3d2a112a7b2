package dto

import (
	"time"

	"incorporate-run-be/internal/entity"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	Id         uuid.UUID              `json:"id"`
	CompanyId  *uuid.UUID             `json:"company_id"`
	TypeCode   string                 `json:"type_code"`
	Title      string                 `json:"title"`
	Message    string                 `json:"message"`
	Metadata   map[string]interface{} `json:"metadata"`
	EntityType string                 `json:"entity_type"`
	EntityId   *uuid.UUID             `json:"entity_id"`
	IsRead     bool                   `json:"is_read"`
	CreatedAt  time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Items []NotificationResponse `json:"items"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

func NewNotificationResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		Id:         n.Id,
		CompanyId:  n.CompanyId,
		TypeCode:   n.TypeCode,
		Title:      n.Title,
		Message:    n.Message,
		Metadata:   n.Metadata,
		EntityType: n.EntityType,
		EntityId:   n.EntityId,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
	}
}

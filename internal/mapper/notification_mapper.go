package mapper

import (
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/model"
)

type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToEntity(n *model.Notification) *entity.Notification {
	if n == nil {
		return nil
	}
	return &entity.Notification{
		Id:         n.Id,
		UserId:     n.UserId,
		CompanyId:  n.CompanyId,
		TypeCode:   n.TypeCode,
		Title:      n.Title,
		Message:    n.Message,
		Metadata:   fromJSON[map[string]interface{}](n.Metadata),
		EntityType: n.EntityType,
		EntityId:   n.EntityId,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
	}
}

func (m *NotificationMapper) ToModel(n *entity.Notification) *model.Notification {
	if n == nil {
		return nil
	}
	return &model.Notification{
		Id:         n.Id,
		UserId:     n.UserId,
		CompanyId:  n.CompanyId,
		TypeCode:   n.TypeCode,
		Title:      n.Title,
		Message:    n.Message,
		Metadata:   toJSON(n.Metadata),
		EntityType: n.EntityType,
		EntityId:   n.EntityId,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
	}
}

func (m *NotificationMapper) ToEntities(items []*model.Notification) []*entity.Notification {
	entities := make([]*entity.Notification, len(items))
	for i, n := range items {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

type NotificationIntentMapper struct{}

func NewNotificationIntentMapper() *NotificationIntentMapper {
	return &NotificationIntentMapper{}
}

func (m *NotificationIntentMapper) ToEntity(n *model.NotificationIntent) *entity.NotificationIntent {
	if n == nil {
		return nil
	}
	return &entity.NotificationIntent{
		Id:            n.Id,
		CompanyId:     n.CompanyId,
		Kind:          entity.IntentKind(n.Kind),
		Recipient:     n.Recipient,
		Payload:       fromJSON[map[string]string](n.Payload),
		Status:        entity.IntentStatus(n.Status),
		Attempts:      n.Attempts,
		LastError:     n.LastError,
		NextAttemptAt: n.NextAttemptAt,
		SignatureId:   n.SignatureId,
		FounderId:     n.FounderId,
		SentAt:        n.SentAt,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}

func (m *NotificationIntentMapper) ToModel(n *entity.NotificationIntent) *model.NotificationIntent {
	if n == nil {
		return nil
	}
	return &model.NotificationIntent{
		Id:            n.Id,
		CompanyId:     n.CompanyId,
		Kind:          string(n.Kind),
		Recipient:     n.Recipient,
		Payload:       toJSON(n.Payload),
		Status:        string(n.Status),
		Attempts:      n.Attempts,
		LastError:     n.LastError,
		NextAttemptAt: n.NextAttemptAt,
		SignatureId:   n.SignatureId,
		FounderId:     n.FounderId,
		SentAt:        n.SentAt,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}

func (m *NotificationIntentMapper) ToEntities(items []*model.NotificationIntent) []*entity.NotificationIntent {
	entities := make([]*entity.NotificationIntent, len(items))
	for i, n := range items {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

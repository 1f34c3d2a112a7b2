package service

import (
	"context"
	"fmt"
	"strings"

	"incorporate-run-be/internal/constant"
	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/pkg/apperror"
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/internal/repository/unitofwork"
	"incorporate-run-be/pkg/events"

	"github.com/google/uuid"
)

// NotificationDelivery pushes a stored notification to connected clients.
// Implemented by the websocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification *entity.Notification)
}

type IActivityService interface {
	Start(ctx context.Context) error
	HandleEvent(ctx context.Context, event events.Event) error
	GetAll(ctx context.Context, userId uuid.UUID, page, limit int) (*dto.NotificationListResponse, error)
	UnreadCount(ctx context.Context, userId uuid.UUID) (*dto.UnreadCountResponse, error)
	MarkAsRead(ctx context.Context, userId, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userId uuid.UUID) error
}

type activityService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber events.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewActivityService(
	uowFactory unitofwork.RepositoryFactory,
	subscriber events.Subscriber,
	delivery NotificationDelivery,
	log logger.ILogger,
) IActivityService {
	return &activityService{
		uowFactory: uowFactory,
		subscriber: subscriber,
		delivery:   delivery,
		logger:     log,
	}
}

// Start attaches the durable activity consumer to every domain event.
func (s *activityService) Start(ctx context.Context) error {
	if err := s.subscriber.Subscribe(ctx, constant.EventsSubject, constant.ActivityDurableName, s.HandleEvent); err != nil {
		s.logger.Error("ACTIVITY", "Failed to start activity subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info("ACTIVITY", "Activity service listening", map[string]interface{}{"subject": constant.EventsSubject})
	return nil
}

// HandleEvent turns one event into a feed entry for the company owner. Events
// without a template or a resolvable company are acknowledged and dropped.
func (s *activityService) HandleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	tpl, ok := constant.ActivityTemplates[typeCode]
	if !ok {
		s.logger.Debug("ACTIVITY", "No template for event", map[string]interface{}{"type": typeCode})
		return nil
	}

	payload := event.Payload()
	companyId, err := uuidFrom(payload, "company_id")
	if err != nil {
		s.logger.Warn("ACTIVITY", "Event without company_id", map[string]interface{}{"type": typeCode})
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	company, err := uow.CompanyRepository().FindByID(ctx, companyId)
	if err != nil {
		return err // redelivered
	}
	if company == nil {
		return nil
	}

	notification := buildNotification(company, typeCode, tpl, payload)
	if err := uow.NotificationRepository().Create(ctx, notification); err != nil {
		s.logger.Error("ACTIVITY", "Failed to store notification", map[string]interface{}{
			"type":  typeCode,
			"error": err.Error(),
		})
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(company.UserId, notification)
	}
	return nil
}

func uuidFrom(payload map[string]interface{}, key string) (uuid.UUID, error) {
	raw, ok := payload[key].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("missing %s", key)
	}
	return uuid.Parse(raw)
}

func buildNotification(company *entity.Company, typeCode string, tpl constant.ActivityTemplate, payload map[string]interface{}) *entity.Notification {
	msg := tpl.Message
	for k, v := range payload {
		msg = strings.ReplaceAll(msg, fmt.Sprintf("{%s}", k), fmt.Sprintf("%v", v))
	}

	metadata := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		metadata[k] = v
	}

	var entityId *uuid.UUID
	if id, err := uuidFrom(payload, tpl.EntityKey); err == nil {
		entityId = &id
		metadata["action_url"] = fmt.Sprintf("/%ss/%s", tpl.EntityType, id)
	}

	return &entity.Notification{
		Id:         uuid.New(),
		UserId:     company.UserId,
		CompanyId:  &company.Id,
		TypeCode:   typeCode,
		Title:      tpl.Title,
		Message:    msg,
		Metadata:   metadata,
		EntityType: tpl.EntityType,
		EntityId:   entityId,
	}
}

func (s *activityService) GetAll(ctx context.Context, userId uuid.UUID, page, limit int) (*dto.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = constant.DefaultNotifPageSize
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	items, total, err := uow.NotificationRepository().FindAllByUser(ctx, userId, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	res := &dto.NotificationListResponse{
		Items: make([]dto.NotificationResponse, 0, len(items)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for _, n := range items {
		res.Items = append(res.Items, dto.NewNotificationResponse(n))
	}
	return res, nil
}

func (s *activityService) UnreadCount(ctx context.Context, userId uuid.UUID) (*dto.UnreadCountResponse, error) {
	count, err := s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().CountUnread(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

func (s *activityService) MarkAsRead(ctx context.Context, userId, id uuid.UUID) error {
	found, err := s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().MarkAsRead(ctx, userId, id)
	if err != nil {
		return err
	}
	if !found {
		return apperror.NotFound("notification", id.String())
	}
	return nil
}

func (s *activityService) MarkAllAsRead(ctx context.Context, userId uuid.UUID) error {
	return s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().MarkAllAsRead(ctx, userId)
}

package implementation

import (
	"context"
	"time"

	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/mapper"
	"incorporate-run-be/internal/model"
	"incorporate-run-be/internal/repository/contract"
	"incorporate-run-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NotificationMapper
}

func NewNotificationRepository(db *gorm.DB) contract.NotificationRepository {
	return &NotificationRepositoryImpl{
		db:     db,
		mapper: mapper.NewNotificationMapper(),
	}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, notification *entity.Notification) error {
	m := r.mapper.ToModel(notification)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*notification = *r.mapper.ToEntity(m)
	return nil
}

func (r *NotificationRepositoryImpl) FindAllByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.Notification, int64, error) {
	var total int64
	err := applySpecifications(r.db.WithContext(ctx).Model(&model.Notification{}),
		specification.OwnedByUser{UserID: userId},
	).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	models, err := findAll[model.Notification](ctx, r.db,
		specification.OwnedByUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, 0, err
	}
	return r.mapper.ToEntities(models), total, nil
}

func (r *NotificationRepositoryImpl) CountUnread(ctx context.Context, userId uuid.UUID) (int64, error) {
	var count int64
	err := applySpecifications(r.db.WithContext(ctx).Model(&model.Notification{}),
		specification.OwnedByUser{UserID: userId},
		specification.Unread{},
	).Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(ctx context.Context, userId, id uuid.UUID) (bool, error) {
	now := time.Now()
	result := applySpecifications(r.db.WithContext(ctx).Model(&model.Notification{}),
		specification.ByID{ID: id},
		specification.OwnedByUser{UserID: userId},
	).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": now,
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(ctx context.Context, userId uuid.UUID) error {
	now := time.Now()
	return applySpecifications(r.db.WithContext(ctx).Model(&model.Notification{}),
		specification.OwnedByUser{UserID: userId},
		specification.Unread{},
	).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": now,
	}).Error
}

type NotificationIntentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NotificationIntentMapper
}

func NewNotificationIntentRepository(db *gorm.DB) contract.NotificationIntentRepository {
	return &NotificationIntentRepositoryImpl{
		db:     db,
		mapper: mapper.NewNotificationIntentMapper(),
	}
}

func (r *NotificationIntentRepositoryImpl) Create(ctx context.Context, intent *entity.NotificationIntent) error {
	m := r.mapper.ToModel(intent)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*intent = *r.mapper.ToEntity(m)
	return nil
}

func (r *NotificationIntentRepositoryImpl) Update(ctx context.Context, intent *entity.NotificationIntent) error {
	m := r.mapper.ToModel(intent)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*intent = *r.mapper.ToEntity(m)
	return nil
}

func (r *NotificationIntentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.NotificationIntent, error) {
	m, err := findOne[model.NotificationIntent](ctx, r.db, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(m), nil
}

func (r *NotificationIntentRepositoryImpl) Claim(ctx context.Context, id uuid.UUID, attempts int, leaseUntil time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.NotificationIntent{}).
		Where("id = ? AND status <> ? AND attempts = ?", id, string(entity.IntentStatusSent), attempts).
		Updates(map[string]interface{}{
			"attempts":        gorm.Expr("attempts + 1"),
			"next_attempt_at": leaseUntil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *NotificationIntentRepositoryImpl) FindDue(ctx context.Context, now time.Time, maxAttempts, limit int) ([]*entity.NotificationIntent, error) {
	models, err := findAll[model.NotificationIntent](ctx, r.db,
		specification.DueIntents{Now: now, MaxAttempts: maxAttempts},
		specification.OrderBy{Field: "next_attempt_at"},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

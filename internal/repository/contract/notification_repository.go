package contract

import (
	"context"
	"time"

	"incorporate-run-be/internal/entity"

	"github.com/google/uuid"
)

type NotificationIntentRepository interface {
	Create(ctx context.Context, intent *entity.NotificationIntent) error
	Update(ctx context.Context, intent *entity.NotificationIntent) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.NotificationIntent, error)
	FindDue(ctx context.Context, now time.Time, maxAttempts, limit int) ([]*entity.NotificationIntent, error)
	// Claim takes an unsent intent for one delivery attempt. It bumps attempts
	// from the expected value and pushes next_attempt_at to leaseUntil, and
	// reports false when another worker got there first.
	Claim(ctx context.Context, id uuid.UUID, attempts int, leaseUntil time.Time) (bool, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindAllByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.Notification, int64, error)
	CountUnread(ctx context.Context, userId uuid.UUID) (int64, error)
	// MarkAsRead reports false when the notification does not belong to the user.
	MarkAsRead(ctx context.Context, userId, id uuid.UUID) (bool, error)
	MarkAllAsRead(ctx context.Context, userId uuid.UUID) error
}

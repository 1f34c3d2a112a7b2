package entity

import (
	"time"

	"github.com/google/uuid"
)

type IntentKind string

const (
	IntentKindFounderInvitation IntentKind = "founder_invitation"
	IntentKindSignatureRequest  IntentKind = "signature_request"
)

type IntentStatus string

const (
	IntentStatusPending IntentStatus = "pending"
	IntentStatusSent    IntentStatus = "sent"
	IntentStatusFailed  IntentStatus = "failed"
)

// NotificationIntent records an email that must go out. It is written in the
// same transaction as the row it belongs to and completed after delivery.
type NotificationIntent struct {
	Id            uuid.UUID
	CompanyId     uuid.UUID
	Kind          IntentKind
	Recipient     string
	Payload       map[string]string
	Status        IntentStatus
	Attempts      int
	LastError     *string
	NextAttemptAt time.Time
	SignatureId   *uuid.UUID
	FounderId     *uuid.UUID
	SentAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NextAttemptAfter doubles the wait per attempt: 1m, 2m, 4m, ...
func NextAttemptAfter(now time.Time, attempts int) time.Time {
	if attempts <= 0 {
		attempts = 1
	}
	if attempts > 10 {
		attempts = 10
	}
	backoffMinutes := 1 << uint(attempts-1)
	return now.Add(time.Duration(backoffMinutes) * time.Minute)
}

package service

import (
	"context"
	"fmt"
	"time"

	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/internal/pkg/mailer"
	"incorporate-run-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	reconcileBatchSize = 50
	// how long a claimed intent stays invisible to other workers if this one
	// dies before recording the outcome
	claimLease = 5 * time.Minute
)

// IOutboxService delivers notification intents. Intents are created by the
// owning service inside its transaction; Dispatch runs after commit and
// Reconcile picks up whatever Dispatch could not finish.
type IOutboxService interface {
	Dispatch(ctx context.Context, intentIds []uuid.UUID)
	Reconcile(ctx context.Context) (int, error)
	Run(ctx context.Context, interval time.Duration)
}

type outboxService struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	maxAttempts  int
	logger       logger.ILogger
	now          func() time.Time
}

func NewOutboxService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	maxAttempts int,
	log logger.ILogger,
) IOutboxService {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &outboxService{
		uowFactory:   uowFactory,
		emailService: emailService,
		maxAttempts:  maxAttempts,
		logger:       log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *outboxService) Dispatch(ctx context.Context, intentIds []uuid.UUID) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	for _, id := range intentIds {
		intent, err := uow.NotificationIntentRepository().FindByID(ctx, id)
		if err != nil || intent == nil {
			s.logger.Error("OUTBOX", "Intent not found for dispatch", map[string]interface{}{"intent_id": id.String()})
			continue
		}
		if intent.Status == entity.IntentStatusSent {
			continue
		}
		s.attempt(ctx, uow, intent)
	}
}

func (s *outboxService) Reconcile(ctx context.Context) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	due, err := uow.NotificationIntentRepository().FindDue(ctx, s.now(), s.maxAttempts, reconcileBatchSize)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, intent := range due {
		if s.attempt(ctx, uow, intent) {
			delivered++
		}
	}

	if len(due) > 0 {
		s.logger.Info("OUTBOX", "Reconcile pass finished", map[string]interface{}{
			"due":       len(due),
			"delivered": delivered,
		})
	}
	return delivered, nil
}

func (s *outboxService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Reconcile(ctx); err != nil {
				s.logger.Error("OUTBOX", "Reconcile failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}

// attempt claims one intent, sends it and records the outcome on the intent
// row. An intent claimed by another worker is skipped.
func (s *outboxService) attempt(ctx context.Context, uow unitofwork.UnitOfWork, intent *entity.NotificationIntent) bool {
	now := s.now()
	claimed, err := uow.NotificationIntentRepository().Claim(ctx, intent.Id, intent.Attempts, now.Add(claimLease))
	if err != nil {
		s.logger.Error("OUTBOX", "Failed to claim intent", map[string]interface{}{
			"intent_id": intent.Id.String(),
			"error":     err.Error(),
		})
		return false
	}
	if !claimed {
		return false
	}
	intent.Attempts++

	sendErr := s.send(intent)
	if sendErr != nil {
		msg := sendErr.Error()
		intent.Status = entity.IntentStatusFailed
		intent.LastError = &msg
		intent.NextAttemptAt = entity.NextAttemptAfter(now, intent.Attempts)
		if err := uow.NotificationIntentRepository().Update(ctx, intent); err != nil {
			s.logger.Error("OUTBOX", "Failed to record delivery failure", map[string]interface{}{
				"intent_id": intent.Id.String(),
				"error":     err.Error(),
			})
		}
		s.logger.Warn("OUTBOX", "Delivery failed", map[string]interface{}{
			"intent_id": intent.Id.String(),
			"kind":      string(intent.Kind),
			"attempts":  intent.Attempts,
			"error":     msg,
		})
		return false
	}

	intent.Status = entity.IntentStatusSent
	intent.LastError = nil
	intent.SentAt = &now
	if err := uow.NotificationIntentRepository().Update(ctx, intent); err != nil {
		s.logger.Error("OUTBOX", "Failed to mark intent sent", map[string]interface{}{
			"intent_id": intent.Id.String(),
			"error":     err.Error(),
		})
		return false
	}

	if intent.SignatureId != nil {
		s.markSignatureSent(ctx, uow, *intent.SignatureId)
	}
	return true
}

// markSignatureSent is a no-op for a signature that was signed before its
// email went out.
func (s *outboxService) markSignatureSent(ctx context.Context, uow unitofwork.UnitOfWork, signatureId uuid.UUID) {
	if _, err := uow.SignatureRepository().MarkSent(ctx, signatureId); err != nil {
		s.logger.Error("OUTBOX", "Failed to mark signature sent", map[string]interface{}{
			"signature_id": signatureId.String(),
			"error":        err.Error(),
		})
	}
}

func (s *outboxService) send(intent *entity.NotificationIntent) error {
	p := intent.Payload
	switch intent.Kind {
	case entity.IntentKindFounderInvitation:
		return s.emailService.SendFounderInvitation(intent.Recipient, mailer.FounderInvitation{
			FounderName: p["founder_name"],
			CompanyName: p["company_name"],
			Role:        p["role"],
			InviteURL:   p["invite_url"],
		})
	case entity.IntentKindSignatureRequest:
		return s.emailService.SendSignatureRequest(intent.Recipient, mailer.SignatureRequest{
			SignerName:    p["signer_name"],
			DocumentTitle: p["document_title"],
			CompanyName:   p["company_name"],
			SignURL:       p["sign_url"],
		})
	default:
		return fmt.Errorf("unknown intent kind %q", intent.Kind)
	}
}

package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"incorporate-run-be/internal/constant"
	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/pkg/apperror"
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/internal/repository/unitofwork"
	"incorporate-run-be/pkg/events"

	"github.com/google/uuid"
)

// SignerMeta is what we record about the request that consumed a token.
type SignerMeta struct {
	IpAddress string
	UserAgent string
}

type ISignatureService interface {
	SendForSignature(ctx context.Context, companyId, documentId uuid.UUID, req *dto.SendForSignatureRequest) (*dto.SendForSignatureResponse, error)
	GetAllByDocument(ctx context.Context, companyId, documentId uuid.UUID) ([]dto.SignatureResponse, error)
	ShowByToken(ctx context.Context, token string) (*dto.PublicSignatureResponse, error)
	SignByToken(ctx context.Context, token string, meta SignerMeta) (*dto.SignResponse, error)
}

type signatureService struct {
	uowFactory     unitofwork.RepositoryFactory
	outbox         IOutboxService
	eventPublisher events.Publisher
	clientURL      string
	logger         logger.ILogger
}

func NewSignatureService(
	uowFactory unitofwork.RepositoryFactory,
	outbox IOutboxService,
	eventPublisher events.Publisher,
	clientURL string,
	log logger.ILogger,
) ISignatureService {
	return &signatureService{
		uowFactory:     uowFactory,
		outbox:         outbox,
		eventPublisher: eventPublisher,
		clientURL:      strings.TrimRight(clientURL, "/"),
		logger:         log,
	}
}

// newMagicToken returns 256 random bits, hex encoded.
func newMagicToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// SendForSignature writes one pending signature and one signature-request
// intent per signer, moves the document to signing, and applies the founder
// and investor side effects, all in one transaction. Emails go out after
// commit; signatures become sent as their intents are delivered.
func (s *signatureService) SendForSignature(ctx context.Context, companyId, documentId uuid.UUID, req *dto.SendForSignatureRequest) (*dto.SendForSignatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := findDocument(ctx, uow, companyId, documentId)
	if err != nil {
		return nil, err
	}
	if doc.Status != entity.DocumentStatusSigning && !doc.Status.CanTransitionTo(entity.DocumentStatusSigning) {
		return nil, &apperror.TransitionError{Entity: "document", From: string(doc.Status), To: string(entity.DocumentStatusSigning)}
	}

	company, err := uow.CompanyRepository().FindByID(ctx, companyId)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NotFound("company", companyId.String())
	}

	signers := dedupeSigners(req.Signers)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// from == to when signers are added to a document already in signing; the
	// compare still fails if it was activated in the meantime
	moved, err := uow.DocumentRepository().CompareAndSetStatus(ctx, doc.Id, doc.Status, entity.DocumentStatusSigning)
	if err != nil {
		return nil, err
	}
	if !moved {
		current, err := findDocument(ctx, uow, companyId, documentId)
		if err != nil {
			return nil, err
		}
		return nil, &apperror.TransitionError{Entity: "document", From: string(current.Status), To: string(entity.DocumentStatusSigning)}
	}
	doc.Status = entity.DocumentStatusSigning

	intentIds := make([]uuid.UUID, 0, len(signers))
	for _, signer := range signers {
		token, err := newMagicToken()
		if err != nil {
			return nil, err
		}

		sig := &entity.DocumentSignature{
			Id:          uuid.New(),
			DocumentId:  doc.Id,
			SignerEmail: signer.Email,
			SignerName:  signer.Name,
			Status:      entity.SignatureStatusPending,
			MagicToken:  token,
		}
		if err := uow.SignatureRepository().Create(ctx, sig); err != nil {
			return nil, err
		}

		intent := &entity.NotificationIntent{
			Id:        uuid.New(),
			CompanyId: companyId,
			Kind:      entity.IntentKindSignatureRequest,
			Recipient: signer.Email,
			Payload: map[string]string{
				"signer_name":    signer.Name,
				"document_title": doc.Title,
				"company_name":   company.Name,
				"sign_url":       fmt.Sprintf("%s/sign/%s", s.clientURL, token),
			},
			Status:        entity.IntentStatusPending,
			NextAttemptAt: time.Now().UTC(),
			SignatureId:   &sig.Id,
		}
		if err := uow.NotificationIntentRepository().Create(ctx, intent); err != nil {
			return nil, err
		}
		intentIds = append(intentIds, intent.Id)

		founder, err := uow.FounderRepository().FindByEmail(ctx, companyId, signer.Email)
		if err != nil {
			return nil, err
		}
		if founder != nil && founder.Status == entity.FounderStatusInvited {
			founder.Status = entity.FounderStatusPendingSignature
			if err := uow.FounderRepository().Update(ctx, founder); err != nil {
				return nil, err
			}
		}
	}

	if doc.Type == entity.DocumentTypeSafe {
		investor, err := uow.InvestorRepository().FindBySafeDocument(ctx, doc.Id)
		if err != nil {
			return nil, err
		}
		if investor != nil && investor.Status.CanTransitionTo(entity.InvestorStatusSent) {
			investor.Status = entity.InvestorStatusSent
			if err := uow.InvestorRepository().Update(ctx, investor); err != nil {
				return nil, err
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.outbox.Dispatch(ctx, intentIds)

	publishEvent(ctx, s.eventPublisher, s.logger, constant.EventDocumentSentForSignature, map[string]interface{}{
		"company_id":  companyId.String(),
		"document_id": doc.Id.String(),
		"title":       doc.Title,
		"signers":     len(signers),
	})

	// Re-read so the response shows statuses after delivery.
	sigs, err := uow.SignatureRepository().FindAllByDocument(ctx, doc.Id)
	if err != nil {
		return nil, err
	}

	return &dto.SendForSignatureResponse{
		Document:   dto.NewDocumentResponse(doc),
		Signatures: dto.NewSignatureResponses(sigs),
	}, nil
}

func dedupeSigners(signers []dto.SignerRequest) []dto.SignerRequest {
	seen := make(map[string]bool, len(signers))
	out := make([]dto.SignerRequest, 0, len(signers))
	for _, signer := range signers {
		email := strings.ToLower(strings.TrimSpace(signer.Email))
		if seen[email] {
			continue
		}
		seen[email] = true
		out = append(out, dto.SignerRequest{Email: email, Name: strings.TrimSpace(signer.Name)})
	}
	return out
}

func (s *signatureService) GetAllByDocument(ctx context.Context, companyId, documentId uuid.UUID) ([]dto.SignatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findDocument(ctx, uow, companyId, documentId); err != nil {
		return nil, err
	}
	sigs, err := uow.SignatureRepository().FindAllByDocument(ctx, documentId)
	if err != nil {
		return nil, err
	}
	return dto.NewSignatureResponses(sigs), nil
}

func (s *signatureService) loadByToken(ctx context.Context, uow unitofwork.UnitOfWork, token string) (*entity.DocumentSignature, *entity.Document, error) {
	sig, err := uow.SignatureRepository().FindByToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if sig == nil {
		return nil, nil, apperror.NotFound("signature", "")
	}
	doc, err := uow.DocumentRepository().FindByID(ctx, sig.DocumentId)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, apperror.NotFound("document", sig.DocumentId.String())
	}
	return sig, doc, nil
}

func (s *signatureService) ShowByToken(ctx context.Context, token string) (*dto.PublicSignatureResponse, error) {
	sig, doc, err := s.loadByToken(ctx, s.uowFactory.NewUnitOfWork(ctx), token)
	if err != nil {
		return nil, err
	}
	res := dto.NewPublicSignatureResponse(sig, doc)
	return &res, nil
}

// SignByToken consumes a magic token. Activation is decided by re-reading the
// whole signature set after the write, so signers may finish in any order and
// concurrently.
func (s *signatureService) SignByToken(ctx context.Context, token string, meta SignerMeta) (*dto.SignResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sig, doc, err := s.loadByToken(ctx, uow, token)
	if err != nil {
		return nil, err
	}
	if sig.Status == entity.SignatureStatusSigned {
		return nil, apperror.ErrAlreadySigned
	}

	signedAt := time.Now().UTC()
	ok, err := uow.SignatureRepository().MarkSigned(ctx, sig.Id, signedAt, optional(meta.IpAddress), optional(meta.UserAgent))
	if err != nil {
		return nil, err
	}
	if !ok {
		// lost a race with another request holding the same token
		return nil, apperror.ErrAlreadySigned
	}

	sig.Status = entity.SignatureStatusSigned
	sig.SignedAt = &signedAt
	sig.IpAddress = optional(meta.IpAddress)
	sig.UserAgent = optional(meta.UserAgent)

	if err := s.activateFounder(ctx, uow, doc.CompanyId, sig.SignerEmail); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.eventPublisher, s.logger, constant.EventSignatureSigned, map[string]interface{}{
		"company_id":   doc.CompanyId.String(),
		"document_id":  doc.Id.String(),
		"title":        doc.Title,
		"signer_name":  sig.SignerName,
		"signer_email": sig.SignerEmail,
	})

	if err := s.reconcileDocument(ctx, uow, doc); err != nil {
		return nil, err
	}

	return &dto.SignResponse{
		Signature:      dto.NewSignatureResponse(sig),
		DocumentStatus: string(doc.Status),
	}, nil
}

// reconcileDocument activates doc when every one of its signatures is signed.
// The status flip is a compare-and-set, so concurrent last signers activate
// the document exactly once.
func (s *signatureService) reconcileDocument(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document) error {
	sigs, err := uow.SignatureRepository().FindAllByDocument(ctx, doc.Id)
	if err != nil {
		return err
	}
	if !entity.AllSigned(sigs) {
		return nil
	}

	activated, err := uow.DocumentRepository().CompareAndSetStatus(ctx, doc.Id, entity.DocumentStatusSigning, entity.DocumentStatusActive)
	if err != nil {
		return err
	}
	if !activated {
		current, err := uow.DocumentRepository().FindByID(ctx, doc.Id)
		if err != nil {
			return err
		}
		if current != nil {
			*doc = *current
		}
		return nil
	}
	doc.Status = entity.DocumentStatusActive

	if doc.Type == entity.DocumentTypeSafe {
		investor, err := uow.InvestorRepository().FindBySafeDocument(ctx, doc.Id)
		if err != nil {
			return err
		}
		if investor != nil && investor.Status.CanTransitionTo(entity.InvestorStatusSigned) {
			investor.Status = entity.InvestorStatusSigned
			if err := uow.InvestorRepository().Update(ctx, investor); err != nil {
				return err
			}
		}
	}

	s.logger.Info("SIGNATURE", "Document activated", map[string]interface{}{
		"document_id": doc.Id.String(),
		"signatures":  len(sigs),
	})
	publishEvent(ctx, s.eventPublisher, s.logger, constant.EventDocumentActivated, map[string]interface{}{
		"company_id":  doc.CompanyId.String(),
		"document_id": doc.Id.String(),
		"title":       doc.Title,
	})
	return nil
}

func (s *signatureService) activateFounder(ctx context.Context, uow unitofwork.UnitOfWork, companyId uuid.UUID, email string) error {
	founder, err := uow.FounderRepository().FindByEmail(ctx, companyId, email)
	if err != nil || founder == nil {
		return err
	}
	if !founder.Status.CanTransitionTo(entity.FounderStatusActive) {
		return nil
	}
	founder.Status = entity.FounderStatusActive
	return uow.FounderRepository().Update(ctx, founder)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

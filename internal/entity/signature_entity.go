package entity

import (
	"time"

	"github.com/google/uuid"
)

type SignatureStatus string

const (
	SignatureStatusPending SignatureStatus = "pending"
	SignatureStatusSent    SignatureStatus = "sent"
	SignatureStatusSigned  SignatureStatus = "signed"
)

var signatureStatusOrder = []SignatureStatus{
	SignatureStatusPending,
	SignatureStatusSent,
	SignatureStatusSigned,
}

func (s SignatureStatus) Valid() bool { return member(signatureStatusOrder, s) }

func (s SignatureStatus) CanTransitionTo(next SignatureStatus) bool {
	return forward(signatureStatusOrder, s, next)
}

type DocumentSignature struct {
	Id          uuid.UUID
	DocumentId  uuid.UUID
	SignerEmail string
	SignerName  string
	Status      SignatureStatus
	MagicToken  string
	SignedAt    *time.Time
	IpAddress   *string
	UserAgent   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AllSigned is the activation rule for a document: a non-empty signature set
// where every row is signed. It is evaluated over the full set on every
// signing so out-of-order and concurrent signers converge.
func AllSigned(signatures []*DocumentSignature) bool {
	if len(signatures) == 0 {
		return false
	}
	for _, s := range signatures {
		if s.Status != SignatureStatusSigned {
			return false
		}
	}
	return true
}

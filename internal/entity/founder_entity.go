package entity

import (
	"time"

	"github.com/google/uuid"
)

type FounderStatus string

const (
	FounderStatusInvited          FounderStatus = "invited"
	FounderStatusPendingSignature FounderStatus = "pending_signature"
	FounderStatusActive           FounderStatus = "active"
)

var founderStatusOrder = []FounderStatus{
	FounderStatusInvited,
	FounderStatusPendingSignature,
	FounderStatusActive,
}

func (s FounderStatus) Valid() bool { return member(founderStatusOrder, s) }

func (s FounderStatus) CanTransitionTo(next FounderStatus) bool {
	return forward(founderStatusOrder, s, next)
}

type Founder struct {
	Id               uuid.UUID
	CompanyId        uuid.UUID
	Email            string
	FirstName        string
	LastName         string
	Role             string
	EquityPercentage float64
	Status           FounderStatus
	IdVerified       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (f *Founder) FullName() string {
	if f.LastName == "" {
		return f.FirstName
	}
	return f.FirstName + " " + f.LastName
}

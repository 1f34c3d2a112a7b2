package entity

import (
	"time"

	"github.com/google/uuid"
)

type InvestorStatus string

const (
	InvestorStatusPending InvestorStatus = "pending"
	InvestorStatusSent    InvestorStatus = "sent"
	InvestorStatusSigned  InvestorStatus = "signed"
)

var investorStatusOrder = []InvestorStatus{
	InvestorStatusPending,
	InvestorStatusSent,
	InvestorStatusSigned,
}

func (s InvestorStatus) Valid() bool { return member(investorStatusOrder, s) }

func (s InvestorStatus) CanTransitionTo(next InvestorStatus) bool {
	return forward(investorStatusOrder, s, next)
}

type Investor struct {
	Id               uuid.UUID
	CompanyId        uuid.UUID
	Name             string
	Email            string
	InvestmentAmount float64
	Status           InvestorStatus
	SafeDocumentId   *uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type HolderType string

const (
	HolderTypeFounder  HolderType = "founder"
	HolderTypeInvestor HolderType = "investor"
	HolderTypeEmployee HolderType = "employee"
	HolderTypePool     HolderType = "pool"
)

func (h HolderType) Valid() bool {
	switch h {
	case HolderTypeFounder, HolderTypeInvestor, HolderTypeEmployee, HolderTypePool:
		return true
	}
	return false
}

// CapTableEntry is a snapshot row; nothing recomputes it.
type CapTableEntry struct {
	Id         uuid.UUID
	CompanyId  uuid.UUID
	HolderId   *uuid.UUID
	HolderType HolderType
	HolderName string
	Shares     int64
	Percentage float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

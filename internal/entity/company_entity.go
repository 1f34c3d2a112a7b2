package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type Jurisdiction string

const (
	JurisdictionDelaware Jurisdiction = "delaware"
	JurisdictionFrance   Jurisdiction = "france"
)

func (j Jurisdiction) Valid() bool {
	switch j {
	case JurisdictionDelaware, JurisdictionFrance:
		return true
	}
	return false
}

type Company struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Name         string
	Jurisdiction Jurisdiction
	Description  string
	HealthScore  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HealthStats is the raw material for a company's health score.
type HealthStats struct {
	DocumentsTotal  int
	DocumentsActive int
	TasksTotal      int
	TasksCompleted  int
	FoundersTotal   int
	FoundersActive  int
}

// ComputeHealthScore weighs signed paperwork 40%, finished tasks 30% and
// onboarded founders 30%. Empty categories contribute nothing.
func ComputeHealthScore(s HealthStats) int {
	ratio := func(done, total int) float64 {
		if total <= 0 {
			return 0
		}
		return float64(done) / float64(total)
	}

	score := 40*ratio(s.DocumentsActive, s.DocumentsTotal) +
		30*ratio(s.TasksCompleted, s.TasksTotal) +
		30*ratio(s.FoundersActive, s.FoundersTotal)

	return int(math.Round(math.Min(score, 100)))
}

package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDocumentStatusNeverRegresses(t *testing.T) {
	order := []DocumentStatus{
		DocumentStatusDrafting,
		DocumentStatusValidating,
		DocumentStatusSigning,
		DocumentStatusActive,
	}

	for i, from := range order {
		for j, to := range order {
			if j <= i {
				assert.False(t, from.CanTransitionTo(to), "%s -> %s must be rejected", from, to)
			}
		}
	}
}

func TestDocumentStatusForwardEdges(t *testing.T) {
	tests := []struct {
		from DocumentStatus
		to   DocumentStatus
		want bool
	}{
		{DocumentStatusDrafting, DocumentStatusValidating, true},
		{DocumentStatusDrafting, DocumentStatusSigning, true},
		{DocumentStatusDrafting, DocumentStatusActive, false},
		{DocumentStatusValidating, DocumentStatusSigning, true},
		{DocumentStatusValidating, DocumentStatusActive, false},
		{DocumentStatusSigning, DocumentStatusActive, true},
		{DocumentStatus("archived"), DocumentStatusActive, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestLinearStatusTransitions(t *testing.T) {
	assert.True(t, FounderStatusInvited.CanTransitionTo(FounderStatusPendingSignature))
	assert.True(t, FounderStatusInvited.CanTransitionTo(FounderStatusActive))
	assert.False(t, FounderStatusActive.CanTransitionTo(FounderStatusInvited))
	assert.False(t, FounderStatusActive.CanTransitionTo(FounderStatusActive))

	assert.True(t, InvestorStatusPending.CanTransitionTo(InvestorStatusSent))
	assert.False(t, InvestorStatusSigned.CanTransitionTo(InvestorStatusSent))

	assert.True(t, SignatureStatusSent.CanTransitionTo(SignatureStatusSigned))
	assert.False(t, SignatureStatusSigned.CanTransitionTo(SignatureStatusSent))

	assert.True(t, TaskStatusPending.CanTransitionTo(TaskStatusCompleted))
	assert.False(t, TaskStatusCompleted.CanTransitionTo(TaskStatusInProgress))

	assert.False(t, TaskStatus("unknown").Valid())
	assert.True(t, DocumentTypeSafe.Valid())
	assert.False(t, DocumentType("will").Valid())
	assert.True(t, JurisdictionFrance.Valid())
	assert.False(t, Jurisdiction("nevada").Valid())
}

func TestAllSigned(t *testing.T) {
	signed := &DocumentSignature{Status: SignatureStatusSigned}
	sent := &DocumentSignature{Status: SignatureStatusSent}

	assert.False(t, AllSigned(nil))
	assert.False(t, AllSigned([]*DocumentSignature{signed, sent}))
	assert.False(t, AllSigned([]*DocumentSignature{sent, signed}))
	assert.True(t, AllSigned([]*DocumentSignature{signed, signed}))
}

func TestComputeHealthScore(t *testing.T) {
	assert.Equal(t, 0, ComputeHealthScore(HealthStats{}))
	assert.Equal(t, 100, ComputeHealthScore(HealthStats{
		DocumentsTotal: 2, DocumentsActive: 2,
		TasksTotal: 4, TasksCompleted: 4,
		FoundersTotal: 1, FoundersActive: 1,
	}))
	assert.Equal(t, 35, ComputeHealthScore(HealthStats{
		DocumentsTotal: 4, DocumentsActive: 2,
		TasksTotal: 2, TasksCompleted: 1,
	}))
}

func TestNextAttemptAfter(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(time.Minute), NextAttemptAfter(now, 0))
	assert.Equal(t, now.Add(time.Minute), NextAttemptAfter(now, 1))
	assert.Equal(t, now.Add(4*time.Minute), NextAttemptAfter(now, 3))
	assert.Equal(t, now.Add(512*time.Minute), NextAttemptAfter(now, 50))
}

func TestFounderFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", (&Founder{FirstName: "Ada", LastName: "Lovelace"}).FullName())
	assert.Equal(t, "Ada", (&Founder{FirstName: "Ada"}).FullName())
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"incorporate-run-be/internal/constant"
	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyCreate_OnePerOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId, companyId := env.createCompany(t, "Acme")

	_, err := env.company.Create(ctx, userId, &dto.CreateCompanyRequest{Name: "Second", Jurisdiction: "france"})
	assert.True(t, apperror.IsConflict(err))

	resolved, err := env.company.ResolveCompanyID(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, companyId, resolved)

	_, err = env.company.ResolveCompanyID(ctx, uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestCompanyShow_RecomputesHealthScore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyId := env.createCompany(t, "Acme")

	res, err := env.company.Show(ctx, companyId)
	require.NoError(t, err)
	assert.Zero(t, res.HealthScore)

	// one of one founder active, one of two tasks done, no documents
	founder := env.inviteFounder(t, companyId, "alice@acme.test", "Alice")
	_, err = env.founder.UpdateStatus(ctx, companyId, founder.Id, "active")
	require.NoError(t, err)
	task, err := env.task.Create(ctx, companyId, &dto.CreateTaskRequest{Description: "File 83(b)"})
	require.NoError(t, err)
	_, err = env.task.Create(ctx, companyId, &dto.CreateTaskRequest{Description: "Open bank account"})
	require.NoError(t, err)
	done := "completed"
	_, err = env.task.Update(ctx, companyId, task.Id, &dto.UpdateTaskRequest{Status: &done})
	require.NoError(t, err)

	res, err = env.company.Show(ctx, companyId)
	require.NoError(t, err)
	assert.Equal(t, 45, res.HealthScore)
}

func TestCompanyUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyId := env.createCompany(t, "Acme")

	name := "  Acme SAS "
	jurisdiction := "france"
	res, err := env.company.Update(ctx, companyId, &dto.UpdateCompanyRequest{Name: &name, Jurisdiction: &jurisdiction})
	require.NoError(t, err)
	assert.Equal(t, "Acme SAS", res.Name)
	assert.Equal(t, "france", res.Jurisdiction)
}

func TestCompanyOnboard_RunsInviteAndSafeFlows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId := uuid.New()

	res, err := env.company.Onboard(ctx, userId, &dto.ExtractedEntities{
		Company: dto.ExtractedCompany{Name: "Acme Robotics", Jurisdiction: "delaware", Description: "Warehouse robots"},
		Founders: []dto.ExtractedFounder{
			{FirstName: "Alice", LastName: "Smith", Email: "alice@acme.test", Role: "CEO", EquityPercentage: 60},
			{FirstName: "Bob", Email: "bob@acme.test", Role: "CTO", EquityPercentage: 40},
		},
		Investors: []dto.ExtractedInvestor{
			{Name: "Seed Fund", Email: "seed@fund.test", InvestmentAmount: 500000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Robotics", res.Company.Name)
	require.Len(t, res.Founders, 2)
	require.Len(t, res.Investors, 1)
	assert.NotNil(t, res.Investors[0].SafeDocumentId)
	assert.Equal(t, 2, env.mailer.count("invitation"))
	assert.Equal(t, 2, env.events.count(constant.EventFounderInvited))
	assert.Equal(t, 1, env.events.count(constant.EventInvestorAdded))

	resolved, err := env.company.ResolveCompanyID(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, res.Company.Id, resolved)
}

func TestCompanyOnboard_StopsAtFirstFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userId := uuid.New()

	_, err := env.company.Onboard(ctx, userId, &dto.ExtractedEntities{
		Company: dto.ExtractedCompany{Name: "Acme", Jurisdiction: "delaware"},
		Founders: []dto.ExtractedFounder{
			{FirstName: "Alice", Email: "alice@acme.test"},
			{FirstName: "Alice", Email: "ALICE@acme.test"},
		},
		Investors: []dto.ExtractedInvestor{{Name: "Seed", Email: "seed@fund.test", InvestmentAmount: 1}},
	})
	assert.True(t, apperror.IsConflict(err))

	companyId, err := env.company.ResolveCompanyID(ctx, userId)
	require.NoError(t, err)
	founders, err := env.founder.GetAll(ctx, companyId)
	require.NoError(t, err)
	assert.Len(t, founders, 1)
	investors, err := env.investor.GetAll(ctx, companyId)
	require.NoError(t, err)
	assert.Empty(t, investors)
}

func TestFounderInvite_WritesIntentAndSendsEmail(t *testing.T) {
	env := newTestEnv(t)
	_, companyId := env.createCompany(t, "Acme")

	founder := env.inviteFounder(t, companyId, " Alice@Acme.TEST ", "Alice")
	assert.Equal(t, "alice@acme.test", founder.Email)
	assert.Equal(t, "invited", founder.Status)

	intents := env.intentsFor("alice@acme.test")
	require.Len(t, intents, 1)
	assert.Equal(t, entity.IntentKindFounderInvitation, intents[0].Kind)
	assert.Equal(t, entity.IntentStatusSent, intents[0].Status)
	require.NotNil(t, intents[0].FounderId)
	assert.Equal(t, founder.Id, *intents[0].FounderId)
	assert.Equal(t, "https://app.test/join/"+founder.Id.String(), intents[0].Payload["invite_url"])
	assert.Equal(t, 1, env.mailer.count("invitation"))
}

func TestFounderInvite_DuplicateEmailConflicts(t *testing.T) {
	env := newTestEnv(t)
	_, companyId := env.createCompany(t, "Acme")
	env.inviteFounder(t, companyId, "alice@acme.test", "Alice")

	_, err := env.founder.Invite(context.Background(), companyId, &dto.InviteFounderRequest{
		Email:     "ALICE@acme.test",
		FirstName: "Alice",
	})
	assert.True(t, apperror.IsConflict(err))
	assert.Len(t, env.intentsFor("alice@acme.test"), 1)

	// another company may invite the same person
	_, otherCompany := env.createCompany(t, "Globex")
	env.inviteFounder(t, otherCompany, "alice@acme.test", "Alice")
}

func TestFounderInvite_EmailFailureKeepsFounder(t *testing.T) {
	env := newTestEnv(t)
	_, companyId := env.createCompany(t, "Acme")
	env.mailer.setFail(errors.New("smtp: 421 try later"))

	founder := env.inviteFounder(t, companyId, "alice@acme.test", "Alice")

	intents := env.intentsFor("alice@acme.test")
	require.Len(t, intents, 1)
	assert.Equal(t, entity.IntentStatusFailed, intents[0].Status)
	assert.True(t, intents[0].NextAttemptAt.After(time.Now().UTC()))

	got, err := env.founder.Show(context.Background(), companyId, founder.Id)
	require.NoError(t, err)
	assert.Equal(t, "invited", got.Status)
}

func TestOutboxReconcile_GivesUpAfterMaxAttempts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyId := env.createCompany(t, "Acme")
	env.mailer.setFail(errors.New("smtp down"))
	env.inviteFounder(t, companyId, "alice@acme.test", "Alice")

	clock := time.Now().UTC()
	env.outbox.(*outboxService).now = func() time.Time { return clock }
	for i := 0; i < 5; i++ {
		clock = clock.Add(time.Hour)
		_, err := env.outbox.Reconcile(ctx)
		require.NoError(t, err)
	}

	intents := env.intentsFor("alice@acme.test")
	require.Len(t, intents, 1)
	assert.Equal(t, 3, intents[0].Attempts)
	assert.Equal(t, entity.IntentStatusFailed, intents[0].Status)
}

func TestFounderUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyId := env.createCompany(t, "Acme")
	founder := env.inviteFounder(t, companyId, "alice@acme.test", "Alice")

	_, err := env.founder.UpdateStatus(ctx, companyId, founder.Id, "retired")
	assert.True(t, apperror.IsValidation(err))

	res, err := env.founder.UpdateStatus(ctx, companyId, founder.Id, "active")
	require.NoError(t, err)
	assert.Equal(t, "active", res.Status)

	_, err = env.founder.UpdateStatus(ctx, companyId, founder.Id, "invited")
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}

func TestFounderUpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyId := env.createCompany(t, "Acme")
	founder := env.inviteFounder(t, companyId, "alice@acme.test", "Alice")

	equity := 33.5
	verified := true
	role := "COO"
	res, err := env.founder.Update(ctx, companyId, founder.Id, &dto.UpdateFounderRequest{
		EquityPercentage: &equity,
		IdVerified:       &verified,
		Role:             &role,
	})
	require.NoError(t, err)
	assert.Equal(t, equity, res.EquityPercentage)
	assert.True(t, res.IdVerified)
	assert.Equal(t, "COO", res.Role)

	_, otherCompany := env.createCompany(t, "Globex")
	assert.True(t, apperror.IsNotFound(env.founder.Delete(ctx, otherCompany, founder.Id)))

	require.NoError(t, env.founder.Delete(ctx, companyId, founder.Id))
	all, err := env.founder.GetAll(ctx, companyId)
	require.NoError(t, err)
	assert.Empty(t, all)
}

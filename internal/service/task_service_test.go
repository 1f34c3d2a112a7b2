package service

import (
	"context"
	"testing"

	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_AssigneeMustBeCompanyFounder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, acme := env.createCompany(t, "Acme")
	_, globex := env.createCompany(t, "Globex")
	alice := env.inviteFounder(t, acme, "alice@acme.test", "Alice")
	outsider := env.inviteFounder(t, globex, "olga@globex.test", "Olga")

	task, err := env.task.Create(ctx, acme, &dto.CreateTaskRequest{Description: " File 83(b) ", Category: "legal", AssigneeId: &alice.Id})
	require.NoError(t, err)
	assert.Equal(t, "File 83(b)", task.Description)
	assert.Equal(t, "pending", task.Status)

	_, err = env.task.Create(ctx, acme, &dto.CreateTaskRequest{Description: "x", AssigneeId: &outsider.Id})
	assert.True(t, apperror.IsValidation(err))

	_, err = env.task.Update(ctx, acme, task.Id, &dto.UpdateTaskRequest{AssigneeId: &outsider.Id})
	assert.True(t, apperror.IsValidation(err))
}

func TestTask_StatusMovesForwardOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyId := env.createCompany(t, "Acme")
	task, err := env.task.Create(ctx, companyId, &dto.CreateTaskRequest{Description: "Open bank account"})
	require.NoError(t, err)

	inProgress, pending, completed := "in_progress", "pending", "completed"
	res, err := env.task.Update(ctx, companyId, task.Id, &dto.UpdateTaskRequest{Status: &inProgress})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", res.Status)

	// same status is a no-op, not a transition
	_, err = env.task.Update(ctx, companyId, task.Id, &dto.UpdateTaskRequest{Status: &inProgress})
	require.NoError(t, err)

	_, err = env.task.Update(ctx, companyId, task.Id, &dto.UpdateTaskRequest{Status: &pending})
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)

	res, err = env.task.Update(ctx, companyId, task.Id, &dto.UpdateTaskRequest{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, "completed", res.Status)
}

func TestTask_CrudIsCompanyScoped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, acme := env.createCompany(t, "Acme")
	_, globex := env.createCompany(t, "Globex")
	task, err := env.task.Create(ctx, acme, &dto.CreateTaskRequest{Description: "Register trademark"})
	require.NoError(t, err)

	_, err = env.task.Show(ctx, globex, task.Id)
	assert.True(t, apperror.IsNotFound(err))

	list, err := env.task.GetAll(ctx, globex)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, env.task.Delete(ctx, acme, task.Id))
	_, err = env.task.Show(ctx, acme, task.Id)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCapTable_StoresPercentagesAsGiven(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyId := env.createCompany(t, "Acme")

	a, err := env.capTable.Create(ctx, companyId, &dto.CreateCapTableEntryRequest{HolderType: "founder", HolderName: "Alice", Shares: 6000000, Percentage: 70})
	require.NoError(t, err)
	_, err = env.capTable.Create(ctx, companyId, &dto.CreateCapTableEntryRequest{HolderType: "founder", HolderName: "Bob", Shares: 4000000, Percentage: 40})
	require.NoError(t, err)

	entries, err := env.capTable.GetAll(ctx, companyId)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.InDelta(t, 110.0, entries[0].Percentage+entries[1].Percentage, 1e-9)

	pct := 60.0
	name := " Alice Smith "
	updated, err := env.capTable.Update(ctx, companyId, a.Id, &dto.UpdateCapTableEntryRequest{Percentage: &pct, HolderName: &name})
	require.NoError(t, err)
	assert.Equal(t, 60.0, updated.Percentage)
	assert.Equal(t, "Alice Smith", updated.HolderName)
	assert.EqualValues(t, 6000000, updated.Shares)

	_, err = env.capTable.Update(ctx, companyId, uuid.New(), &dto.UpdateCapTableEntryRequest{Percentage: &pct})
	assert.True(t, apperror.IsNotFound(err))

	require.NoError(t, env.capTable.Delete(ctx, companyId, a.Id))
	assert.True(t, apperror.IsNotFound(env.capTable.Delete(ctx, companyId, a.Id)))
}

func TestAuth_RegisterLoginMe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, &dto.RegisterRequest{Email: " Founder@Acme.test ", Password: "correct-horse", FullName: "Ada Founder"})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.AccessToken)
	assert.Equal(t, "founder@acme.test", reg.User.Email)

	_, err = env.auth.Register(ctx, &dto.RegisterRequest{Email: "founder@acme.test", Password: "another-pass", FullName: "Dup"})
	assert.True(t, apperror.IsConflict(err))

	login, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "FOUNDER@acme.test", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.Id, login.User.Id)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: "founder@acme.test", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: "nobody@acme.test", Password: "correct-horse"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	me, err := env.auth.Me(ctx, reg.User.Id)
	require.NoError(t, err)
	assert.Equal(t, "Ada Founder", me.FullName)

	_, err = env.auth.Me(ctx, uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

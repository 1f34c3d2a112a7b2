package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"incorporate-run-be/internal/constant"
	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/pkg/apperror"
	"incorporate-run-be/internal/repository/contract"
	"incorporate-run-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvestorAdd_DraftsSafeAndFollowsSigning(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyId := env.createCompany(t, "Acme Robotics")
	env.llm.generate = func(prompt string, opts *llm.Options) (string, error) {
		return "  # SAFE\n\nPurchase amount: $250,000.  ", nil
	}

	inv, err := env.investor.Add(ctx, companyId, &dto.AddInvestorRequest{
		Name:             " Seed Fund LP ",
		Email:            "Partners@SeedFund.test",
		InvestmentAmount: 250000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Seed Fund LP", inv.Name)
	assert.Equal(t, "partners@seedfund.test", inv.Email)
	assert.Equal(t, "pending", inv.Status)
	require.NotNil(t, inv.SafeDocumentId)
	assert.Equal(t, 1, env.events.count(constant.EventInvestorAdded))

	require.Len(t, env.llm.prompts, 1)
	assert.Contains(t, env.llm.prompts[0], "Seed Fund LP")
	assert.Contains(t, env.llm.prompts[0], "250000.00")

	safe, err := env.document.Show(ctx, companyId, *inv.SafeDocumentId)
	require.NoError(t, err)
	assert.Equal(t, "safe", safe.Type)
	assert.Equal(t, "SAFE - Seed Fund LP", safe.Title)
	assert.Equal(t, "drafting", safe.Status)
	assert.Equal(t, "# SAFE\n\nPurchase amount: $250,000.", safe.Content)

	_, err = env.signature.SendForSignature(ctx, companyId, safe.Id, &dto.SendForSignatureRequest{
		Signers: []dto.SignerRequest{{Email: inv.Email, Name: inv.Name}},
	})
	require.NoError(t, err)

	got, err := env.investor.Show(ctx, companyId, inv.Id)
	require.NoError(t, err)
	assert.Equal(t, "sent", got.Status)

	_, err = env.signature.SignByToken(ctx, env.tokens(safe.Id)[inv.Email], SignerMeta{})
	require.NoError(t, err)

	got, err = env.investor.Show(ctx, companyId, inv.Id)
	require.NoError(t, err)
	assert.Equal(t, "signed", got.Status)
}

func TestInvestorAdd_FailedDraftKeepsInvestor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyId := env.createCompany(t, "Acme")
	env.llm.generate = func(prompt string, opts *llm.Options) (string, error) {
		return "", errors.New("upstream 500")
	}

	inv, err := env.investor.Add(ctx, companyId, &dto.AddInvestorRequest{
		Name:             "Angel",
		Email:            "angel@example.test",
		InvestmentAmount: 50000,
	})
	require.NoError(t, err)
	assert.Nil(t, inv.SafeDocumentId)

	all, err := env.investor.GetAll(ctx, companyId)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, inv.Id, all[0].Id)

	docs, err := env.document.GetAll(ctx, companyId, contract.DocumentFilter{Type: entity.DocumentTypeSafe})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestInvestorAdd_UnknownCompany(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.investor.Add(context.Background(), uuid.New(), &dto.AddInvestorRequest{
		Name:             "Angel",
		Email:            "angel@example.test",
		InvestmentAmount: 1,
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestInvestorUpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyId := env.createCompany(t, "Acme")
	inv, err := env.investor.Add(ctx, companyId, &dto.AddInvestorRequest{
		Name:             "Angel",
		Email:            "angel@example.test",
		InvestmentAmount: 10000,
	})
	require.NoError(t, err)

	amount := 20000.0
	email := "ANGEL@new.test"
	updated, err := env.investor.Update(ctx, companyId, inv.Id, &dto.UpdateInvestorRequest{
		Email:            &email,
		InvestmentAmount: &amount,
	})
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(email), updated.Email)
	assert.Equal(t, amount, updated.InvestmentAmount)
	assert.Equal(t, "Angel", updated.Name)

	require.NoError(t, env.investor.Delete(ctx, companyId, inv.Id))
	_, err = env.investor.Show(ctx, companyId, inv.Id)
	assert.True(t, apperror.IsNotFound(err))
}

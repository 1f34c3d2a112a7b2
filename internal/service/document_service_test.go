package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/pkg/apperror"
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/internal/repository/contract"
	"incorporate-run-be/pkg/embedding"
	"incorporate-run-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationReply(body string) func(string, *llm.Options) (string, error) {
	return func(prompt string, opts *llm.Options) (string, error) {
		return body, nil
	}
}

func TestDocumentValidate_OnlyMovesDraftingForward(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyId := env.createCompany(t, "Acme")
	doc := env.createDocument(t, companyId, "Bylaws", "Article I. Offices.")

	var seen *llm.Options
	env.llm.generate = func(prompt string, opts *llm.Options) (string, error) {
		seen = opts
		return "```json\n{\"valid\": true, \"issues\": [{\"severity\": \"warning\", \"message\": \"Add a date\"}]}\n```", nil
	}

	res, err := env.document.Validate(ctx, companyId, doc.Id)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "warning", res.Issues[0].Severity)
	require.NotNil(t, seen)
	assert.NotNil(t, seen.JSONSchema)

	shown, err := env.document.Show(ctx, companyId, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, "validating", shown.Status)
	require.Len(t, shown.ValidationErrors, 1)
	assert.Equal(t, "Add a date", shown.ValidationErrors[0].Message)

	// a second valid result does not advance past validating
	_, err = env.document.Validate(ctx, companyId, doc.Id)
	require.NoError(t, err)
	shown, err = env.document.Show(ctx, companyId, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, "validating", shown.Status)
}

func TestDocumentValidate_InvalidKeepsStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyId := env.createCompany(t, "Acme")
	doc := env.createDocument(t, companyId, "Bylaws", "Incomplete")
	env.llm.generate = validationReply(`{"valid": false, "issues": [{"severity": "error", "message": "Missing board clause"}]}`)

	res, err := env.document.Validate(ctx, companyId, doc.Id)
	require.NoError(t, err)
	assert.False(t, res.Valid)

	shown, err := env.document.Show(ctx, companyId, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, "drafting", shown.Status)
	require.Len(t, shown.ValidationErrors, 1)
	assert.Equal(t, "error", shown.ValidationErrors[0].Severity)
}

func TestDocumentValidate_UnreadableOutputFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyId := env.createCompany(t, "Acme")
	doc := env.createDocument(t, companyId, "Bylaws", "Text")
	env.llm.generate = validationReply("Looks fine to me!")

	_, err := env.document.Validate(ctx, companyId, doc.Id)
	assert.Error(t, err)
}

func TestDocumentValidate_NoModelIsUnavailable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyId := env.createCompany(t, "Acme")
	doc := env.createDocument(t, companyId, "Bylaws", "Text")
	env.llm.generate = func(string, *llm.Options) (string, error) { return "", llm.ErrUnavailable }

	_, err := env.document.Validate(ctx, companyId, doc.Id)
	assert.ErrorIs(t, err, apperror.ErrUnavailable)
}

func TestDocumentValidate_SignedDuringReviewStaysActive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyId := env.createCompany(t, "Acme")
	doc := env.createDocument(t, companyId, "Bylaws", "Article I. Offices.")

	// the document is sent and signed while the model is still reviewing it
	env.llm.generate = func(prompt string, opts *llm.Options) (string, error) {
		_, err := env.signature.SendForSignature(ctx, companyId, doc.Id, &dto.SendForSignatureRequest{
			Signers: []dto.SignerRequest{{Email: "alice@acme.test", Name: "Alice"}},
		})
		if err != nil {
			return "", err
		}
		if _, err := env.signature.SignByToken(ctx, env.tokens(doc.Id)["alice@acme.test"], SignerMeta{}); err != nil {
			return "", err
		}
		return `{"valid": true, "issues": [{"severity": "warning", "message": "Looks complete"}]}`, nil
	}

	res, err := env.document.Validate(ctx, companyId, doc.Id)
	require.NoError(t, err)
	assert.True(t, res.Valid)

	shown, err := env.document.Show(ctx, companyId, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, "active", shown.Status)
	require.Len(t, shown.ValidationErrors, 1)
	assert.Equal(t, "Looks complete", shown.ValidationErrors[0].Message)
}

func TestDocumentUpdate_KeepsLifecycleStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyId := env.createCompany(t, "Acme")
	doc := env.createDocument(t, companyId, "Bylaws", "Article I. Offices.")

	_, err := env.signature.SendForSignature(ctx, companyId, doc.Id, &dto.SendForSignatureRequest{
		Signers: []dto.SignerRequest{{Email: "alice@acme.test", Name: "Alice"}},
	})
	require.NoError(t, err)
	_, err = env.signature.SignByToken(ctx, env.tokens(doc.Id)["alice@acme.test"], SignerMeta{})
	require.NoError(t, err)

	title := "Amended Bylaws"
	res, err := env.document.Update(ctx, companyId, doc.Id, &dto.UpdateDocumentRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Amended Bylaws", res.Title)
	assert.Equal(t, "active", res.Status)
	assert.Equal(t, "Article I. Offices.", res.Content)
}

func TestDocumentGenerate_DefaultTitle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyId := env.createCompany(t, "Acme")
	env.inviteFounder(t, companyId, "alice@acme.test", "Alice")

	res, err := env.document.Generate(ctx, companyId, &dto.GenerateDocumentRequest{Type: "ip_assignment"})
	require.NoError(t, err)
	assert.Equal(t, "IP Assignment - Acme", res.Title)
	assert.Equal(t, "drafting", res.Status)
	assert.Equal(t, "# Draft\n\nGenerated body.", res.Content)

	require.Len(t, env.llm.prompts, 1)
	assert.Contains(t, env.llm.prompts[0], "alice@acme.test")
	assert.Contains(t, env.llm.prompts[0], "IP Assignment - Acme")

	res, err = env.document.Generate(ctx, companyId, &dto.GenerateDocumentRequest{Type: "bylaws", Title: "Custom Bylaws"})
	require.NoError(t, err)
	assert.Equal(t, "Custom Bylaws", res.Title)
}

func TestDocumentGetAll_Filters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyId := env.createCompany(t, "Acme")
	env.createDocument(t, companyId, "FA", "a")
	_, err := env.document.Create(ctx, companyId, &dto.CreateDocumentRequest{Type: "nda", Title: "NDA"})
	require.NoError(t, err)

	all, err := env.document.GetAll(ctx, companyId, contract.DocumentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	ndas, err := env.document.GetAll(ctx, companyId, contract.DocumentFilter{Type: entity.DocumentTypeNDA})
	require.NoError(t, err)
	require.Len(t, ndas, 1)
	assert.Equal(t, "NDA", ndas[0].Title)

	_, err = env.document.GetAll(ctx, companyId, contract.DocumentFilter{Type: "will"})
	assert.True(t, apperror.IsValidation(err))
	_, err = env.document.GetAll(ctx, companyId, contract.DocumentFilter{Status: "archived"})
	assert.True(t, apperror.IsValidation(err))
}

func TestDocumentIndexing_ThroughQueue(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, env.consumer.Consume(ctx))

	_, companyId := env.createCompany(t, "Acme")
	doc := env.createDocument(t, companyId, "Bylaws", "The board shall consist of three directors.")

	assert.Eventually(t, func() bool {
		shown, err := env.document.Show(ctx, companyId, doc.Id)
		return err == nil && shown.IndexRef != nil
	}, 2*time.Second, 10*time.Millisecond)

	hits, err := env.retrieval.Search(ctx, companyId, "how many directors on the board", 3)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, doc.Id, hits[0].Entry.SourceId)

	// deleting the document drops its chunks
	require.NoError(t, env.document.Delete(ctx, companyId, doc.Id))
	hits, err = env.retrieval.Search(ctx, companyId, "how many directors on the board", 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestDocumentUpdate_ContentReindexes(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, env.consumer.Consume(ctx))

	_, companyId := env.createCompany(t, "Acme")
	doc := env.createDocument(t, companyId, "Policy", "Vacation policy grants twenty days.")
	assert.Eventually(t, func() bool {
		hits, err := env.retrieval.Search(ctx, companyId, "vacation days", 1)
		return err == nil && len(hits) == 1
	}, 2*time.Second, 10*time.Millisecond)

	content := "Equity vesting over four years with a one year cliff."
	title := "Vesting"
	res, err := env.document.Update(ctx, companyId, doc.Id, &dto.UpdateDocumentRequest{Title: &title, Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "Vesting", res.Title)

	assert.Eventually(t, func() bool {
		hits, err := env.retrieval.Search(ctx, companyId, "vesting cliff", 5)
		return err == nil && len(hits) == 1 && strings.Contains(hits[0].Entry.Content, "cliff")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDocument_OtherCompanyIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, companyA := env.createCompany(t, "Acme")
	_, companyB := env.createCompany(t, "Globex")
	doc := env.createDocument(t, companyA, "NDA", "x")

	_, err := env.document.Show(ctx, companyB, doc.Id)
	assert.True(t, apperror.IsNotFound(err))
	assert.True(t, apperror.IsNotFound(env.document.Delete(ctx, companyB, doc.Id)))
}

func TestRetrieval_DisabledEmbedder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	retrieval := NewRetrievalService(env.factory, embedding.NewDisabledProvider(), logger.NewNop())

	hits, err := retrieval.Search(ctx, uuid.New(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, hits)

	_, err = retrieval.IndexDocument(ctx, &entity.Document{Id: uuid.New(), CompanyId: uuid.New(), Title: "T", Content: "body"})
	assert.ErrorIs(t, err, apperror.ErrUnavailable)
}

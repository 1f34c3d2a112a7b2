package memory

import (
	"context"
	"testing"
	"time"

	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchSimilarIsTenantScoped(t *testing.T) {
	ctx := context.Background()
	uow := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx)
	repo := uow.IndexEntryRepository()

	companyA, companyB := uuid.New(), uuid.New()
	require.NoError(t, repo.ReplaceSource(ctx, companyA, entity.IndexSourceDocument, uuid.New(), []*entity.IndexEntry{
		{Content: "A bylaws", Embedding: []float32{1, 0}},
	}))
	require.NoError(t, repo.ReplaceSource(ctx, companyB, entity.IndexSourceDocument, uuid.New(), []*entity.IndexEntry{
		{Content: "B bylaws", Embedding: []float32{1, 0}},
		{Content: "B safe", Embedding: []float32{0.9, 0.1}},
	}))

	hits, err := repo.SearchSimilar(ctx, companyA, []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "A bylaws", hits[0].Entry.Content)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-9)
}

func TestReplaceSourceSwapsChunks(t *testing.T) {
	ctx := context.Background()
	uow := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx)
	repo := uow.IndexEntryRepository()
	company, source := uuid.New(), uuid.New()

	require.NoError(t, repo.ReplaceSource(ctx, company, entity.IndexSourceDocument, source, []*entity.IndexEntry{
		{Content: "v1 a", Embedding: []float32{1, 0}},
		{Content: "v1 b", Embedding: []float32{0, 1}},
	}))
	require.NoError(t, repo.ReplaceSource(ctx, company, entity.IndexSourceDocument, source, []*entity.IndexEntry{
		{Content: "v2", Embedding: []float32{1, 0}},
	}))

	hits, err := repo.SearchSimilar(ctx, company, []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "v2", hits[0].Entry.Content)

	require.NoError(t, repo.DeleteBySource(ctx, company, entity.IndexSourceDocument, source))
	hits, err = repo.SearchSimilar(ctx, company, []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestCompanyDeleteCascades(t *testing.T) {
	ctx := context.Background()
	uow := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx)

	company := &entity.Company{UserId: uuid.New(), Name: "Acme", Jurisdiction: entity.JurisdictionDelaware}
	require.NoError(t, uow.CompanyRepository().Create(ctx, company))

	doc := &entity.Document{CompanyId: company.Id, Type: entity.DocumentTypeBylaws, Title: "Bylaws", Status: entity.DocumentStatusDrafting}
	require.NoError(t, uow.DocumentRepository().Create(ctx, doc))
	sig := &entity.DocumentSignature{DocumentId: doc.Id, SignerEmail: "a@acme.test", MagicToken: "tok"}
	require.NoError(t, uow.SignatureRepository().Create(ctx, sig))
	founder := &entity.Founder{CompanyId: company.Id, Email: "a@acme.test", FirstName: "Ada"}
	require.NoError(t, uow.FounderRepository().Create(ctx, founder))

	require.NoError(t, uow.CompanyRepository().Delete(ctx, company.Id))

	gotDoc, err := uow.DocumentRepository().FindByID(ctx, doc.Id)
	require.NoError(t, err)
	assert.Nil(t, gotDoc)
	gotSig, err := uow.SignatureRepository().FindByToken(ctx, "tok")
	require.NoError(t, err)
	assert.Nil(t, gotSig)
	founders, err := uow.FounderRepository().FindAllByCompany(ctx, company.Id)
	require.NoError(t, err)
	assert.Empty(t, founders)
}

func TestOwnedFindersRejectOtherTenants(t *testing.T) {
	ctx := context.Background()
	uow := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx)

	doc := &entity.Document{CompanyId: uuid.New(), Type: entity.DocumentTypeNDA, Title: "NDA"}
	require.NoError(t, uow.DocumentRepository().Create(ctx, doc))

	got, err := uow.DocumentRepository().FindOwned(ctx, uuid.New(), doc.Id)
	require.NoError(t, err)
	assert.Nil(t, got)

	docs, err := uow.DocumentRepository().FindAllByCompany(ctx, doc.CompanyId, contract.DocumentFilter{Type: entity.DocumentTypeSafe})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSignatureTokenIsUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx).SignatureRepository()

	require.NoError(t, repo.Create(ctx, &entity.DocumentSignature{DocumentId: uuid.New(), MagicToken: "same"}))
	assert.Error(t, repo.Create(ctx, &entity.DocumentSignature{DocumentId: uuid.New(), MagicToken: "same"}))
}

func TestCompanyCache(t *testing.T) {
	c := NewCompanyCache(time.Minute)
	user, company := uuid.New(), uuid.New()

	_, ok := c.Get(user)
	assert.False(t, ok)

	c.Set(user, company)
	got, ok := c.Get(user)
	assert.True(t, ok)
	assert.Equal(t, company, got)

	c.Invalidate(user)
	_, ok = c.Get(user)
	assert.False(t, ok)
}

func TestMarkSentLeavesSignedSignatureAlone(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx).SignatureRepository()

	sig := &entity.DocumentSignature{DocumentId: uuid.New(), MagicToken: "tok", Status: entity.SignatureStatusPending}
	require.NoError(t, repo.Create(ctx, sig))

	signed, err := repo.MarkSigned(ctx, sig.Id, time.Now().UTC(), nil, nil)
	require.NoError(t, err)
	assert.True(t, signed)

	moved, err := repo.MarkSent(ctx, sig.Id)
	require.NoError(t, err)
	assert.False(t, moved)

	got, err := repo.FindByID(ctx, sig.Id)
	require.NoError(t, err)
	assert.Equal(t, entity.SignatureStatusSigned, got.Status)
}

func TestIntentClaimIsExclusive(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx).NotificationIntentRepository()

	intent := &entity.NotificationIntent{Kind: entity.IntentKindSignatureRequest, Recipient: "a@acme.test", Status: entity.IntentStatusPending}
	require.NoError(t, repo.Create(ctx, intent))

	lease := time.Now().UTC().Add(5 * time.Minute)
	claimed, err := repo.Claim(ctx, intent.Id, 0, lease)
	require.NoError(t, err)
	assert.True(t, claimed)

	// a worker holding the stale row loses
	claimed, err = repo.Claim(ctx, intent.Id, 0, lease)
	require.NoError(t, err)
	assert.False(t, claimed)

	got, err := repo.FindByID(ctx, intent.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Attempts)
	assert.True(t, got.NextAttemptAt.Equal(lease))

	due, err := repo.FindDue(ctx, time.Now().UTC(), 5, 10)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestDocumentDetailWritesKeepStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx).DocumentRepository()

	doc := &entity.Document{CompanyId: uuid.New(), Type: entity.DocumentTypeBylaws, Title: "Bylaws", Status: entity.DocumentStatusDrafting}
	require.NoError(t, repo.Create(ctx, doc))

	moved, err := repo.CompareAndSetStatus(ctx, doc.Id, entity.DocumentStatusDrafting, entity.DocumentStatusSigning)
	require.NoError(t, err)
	require.True(t, moved)

	require.NoError(t, repo.UpdateDetails(ctx, doc.CompanyId, doc.Id, "Amended", "Text"))
	require.NoError(t, repo.SaveValidationIssues(ctx, doc.Id, []entity.ValidationIssue{{Severity: "warning", Message: "Date"}}))
	require.NoError(t, repo.UpdateDetails(ctx, uuid.New(), doc.Id, "Hijacked", ""))

	got, err := repo.FindByID(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentStatusSigning, got.Status)
	assert.Equal(t, "Amended", got.Title)
	assert.Equal(t, "Text", got.Content)
	require.Len(t, got.ValidationErrors, 1)

	moved, err = repo.CompareAndSetStatus(ctx, doc.Id, entity.DocumentStatusDrafting, entity.DocumentStatusValidating)
	require.NoError(t, err)
	assert.False(t, moved)
}

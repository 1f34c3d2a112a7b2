//go:build integration

package implementation

import (
	"context"
	"os"
	"testing"
	"time"

	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/model"
	"incorporate-run-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Run with: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/repository/implementation/
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	for _, sql := range []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
		`CREATE EXTENSION IF NOT EXISTS vector`,
	} {
		require.NoError(t, db.Exec(sql).Error)
	}
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Company{},
		&model.Founder{},
		&model.Investor{},
		&model.Document{},
		&model.DocumentSignature{},
		&model.NotificationIntent{},
		&model.Task{},
		&model.CapTableEntry{},
		&model.ChatMessage{},
		&model.IndexEntry{},
		&model.Notification{},
	))
	return db
}

// seedCompany creates an owner and a company, removed again when the test ends.
func seedCompany(t *testing.T, db *gorm.DB) *entity.Company {
	t.Helper()
	ctx := context.Background()

	user := &entity.User{Email: uuid.NewString() + "@acme.test", PasswordHash: "x", FullName: "Owner"}
	require.NoError(t, NewUserRepository(db).Create(ctx, user))
	t.Cleanup(func() { db.Delete(&model.User{}, "id = ?", user.Id) })

	company := &entity.Company{UserId: user.Id, Name: "Acme", Jurisdiction: entity.JurisdictionDelaware}
	require.NoError(t, NewCompanyRepository(db).Create(ctx, company))
	return company
}

func seedDocument(t *testing.T, db *gorm.DB, companyId uuid.UUID) *entity.Document {
	t.Helper()
	doc := &entity.Document{
		CompanyId: companyId,
		Type:      entity.DocumentTypeBylaws,
		Title:     "Bylaws",
		Status:    entity.DocumentStatusDrafting,
		Content:   "Article I.",
	}
	require.NoError(t, NewDocumentRepository(db).Create(context.Background(), doc))
	return doc
}

func unitVector(hot int) []float32 {
	v := make([]float32, 768)
	v[hot] = 1
	return v
}

func TestSignatureRepository_MarkSignedOnce(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, db)
	doc := seedDocument(t, db, company.Id)
	repo := NewSignatureRepository(db)

	sig := &entity.DocumentSignature{
		DocumentId:  doc.Id,
		SignerEmail: "alice@acme.test",
		SignerName:  "Alice",
		Status:      entity.SignatureStatusPending,
		MagicToken:  uuid.NewString(),
	}
	require.NoError(t, repo.Create(ctx, sig))

	ip := "10.0.0.1"
	signed, err := repo.MarkSigned(ctx, sig.Id, time.Now().UTC(), &ip, nil)
	require.NoError(t, err)
	assert.True(t, signed)

	signed, err = repo.MarkSigned(ctx, sig.Id, time.Now().UTC(), nil, nil)
	require.NoError(t, err)
	assert.False(t, signed)

	// a late delivery does not undo the signature
	sent, err := repo.MarkSent(ctx, sig.Id)
	require.NoError(t, err)
	assert.False(t, sent)

	got, err := repo.FindByToken(ctx, sig.MagicToken)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.SignatureStatusSigned, got.Status)
	require.NotNil(t, got.IpAddress)
	assert.Equal(t, "10.0.0.1", *got.IpAddress)
}

func TestDocumentRepository_StatusOnlyMovesByCompare(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, db)
	doc := seedDocument(t, db, company.Id)
	repo := NewDocumentRepository(db)

	moved, err := repo.CompareAndSetStatus(ctx, doc.Id, entity.DocumentStatusDrafting, entity.DocumentStatusSigning)
	require.NoError(t, err)
	assert.True(t, moved)

	moved, err = repo.CompareAndSetStatus(ctx, doc.Id, entity.DocumentStatusDrafting, entity.DocumentStatusValidating)
	require.NoError(t, err)
	assert.False(t, moved)

	require.NoError(t, repo.UpdateDetails(ctx, company.Id, doc.Id, "Amended Bylaws", "Article II."))
	require.NoError(t, repo.SaveValidationIssues(ctx, doc.Id, []entity.ValidationIssue{{Severity: "warning", Message: "Add a date"}}))
	require.NoError(t, repo.UpdateDetails(ctx, uuid.New(), doc.Id, "Other tenant", ""))

	got, err := repo.FindOwned(ctx, company.Id, doc.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.DocumentStatusSigning, got.Status)
	assert.Equal(t, "Amended Bylaws", got.Title)
	assert.Equal(t, "Article II.", got.Content)
	require.Len(t, got.ValidationErrors, 1)
	assert.Equal(t, "Add a date", got.ValidationErrors[0].Message)
}

func TestNotificationIntentRepository_ClaimIsExclusive(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, db)
	repo := NewNotificationIntentRepository(db)

	intent := &entity.NotificationIntent{
		CompanyId:     company.Id,
		Kind:          entity.IntentKindSignatureRequest,
		Recipient:     "alice@acme.test",
		Payload:       map[string]string{"document_title": "Bylaws"},
		Status:        entity.IntentStatusPending,
		NextAttemptAt: time.Now().UTC().Add(-time.Minute),
	}
	require.NoError(t, repo.Create(ctx, intent))

	lease := time.Now().UTC().Add(5 * time.Minute)
	claimed, err := repo.Claim(ctx, intent.Id, 0, lease)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.Claim(ctx, intent.Id, 0, lease)
	require.NoError(t, err)
	assert.False(t, claimed)

	got, err := repo.FindByID(ctx, intent.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Attempts)

	due, err := repo.FindDue(ctx, time.Now().UTC(), 5, 50)
	require.NoError(t, err)
	for _, d := range due {
		assert.NotEqual(t, intent.Id, d.Id)
	}
}

func TestIndexEntryRepository_SearchSimilarIsTenantScoped(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	companyA := seedCompany(t, db)
	companyB := seedCompany(t, db)
	repo := NewIndexEntryRepository(db)

	require.NoError(t, repo.ReplaceSource(ctx, companyA.Id, entity.IndexSourceDocument, uuid.New(), []*entity.IndexEntry{
		{Content: "A bylaws", Embedding: unitVector(0)},
	}))
	require.NoError(t, repo.ReplaceSource(ctx, companyB.Id, entity.IndexSourceDocument, uuid.New(), []*entity.IndexEntry{
		{Content: "B bylaws", Embedding: unitVector(0)},
		{Content: "B safe", Embedding: unitVector(1)},
	}))

	hits, err := repo.SearchSimilar(ctx, companyA.Id, unitVector(0), 3)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "A bylaws", hits[0].Entry.Content)
	assert.Equal(t, companyA.Id, hits[0].Entry.CompanyId)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
}

func TestNotificationRepository_FindAllByUserCountsBeforePaging(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, db)
	other := seedCompany(t, db)
	repo := NewNotificationRepository(db)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &entity.Notification{
			UserId: company.UserId, CompanyId: &company.Id, TypeCode: "DOCUMENT_ACTIVATED", Title: "Activated",
		}))
	}
	require.NoError(t, repo.Create(ctx, &entity.Notification{
		UserId: other.UserId, CompanyId: &other.Id, TypeCode: "DOCUMENT_ACTIVATED", Title: "Elsewhere",
	}))

	items, total, err := repo.FindAllByUser(ctx, company.UserId, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, items, 2)
	for _, n := range items {
		assert.Equal(t, company.UserId, n.UserId)
	}
}

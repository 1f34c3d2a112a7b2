package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/repository/contract"

	"github.com/google/uuid"
)

func now() time.Time { return time.Now().UTC() }

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func ptrs[T any](rows []T) []*T {
	out := make([]*T, len(rows))
	for i := range rows {
		row := rows[i]
		out[i] = &row
	}
	return out
}

func one[T any](row T, ok bool) *T {
	if !ok {
		return nil
	}
	return &row
}

type userRepository struct{ s *Store }

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, dup := r.s.users.first(func(u entity.User) bool { return strings.EqualFold(u.Email, user.Email) }); dup {
		return fmt.Errorf("duplicate key value violates unique constraint users_email")
	}
	ensureID(&user.Id)
	user.CreatedAt, user.UpdatedAt = now(), now()
	r.s.users.put(user.Id, *user)
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return one(r.s.users.get(id)), nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return one(r.s.users.first(func(u entity.User) bool { return strings.EqualFold(u.Email, email) })), nil
}

type companyRepository struct{ s *Store }

func (r *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ensureID(&company.Id)
	company.CreatedAt, company.UpdatedAt = now(), now()
	r.s.companies.put(company.Id, *company)
	return nil
}

func (r *companyRepository) Update(ctx context.Context, company *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	company.UpdatedAt = now()
	r.s.companies.put(company.Id, *company)
	return nil
}

func (r *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.deleteCompany(id)
	return nil
}

func (r *companyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return one(r.s.companies.get(id)), nil
}

func (r *companyRepository) FindByOwner(ctx context.Context, userId uuid.UUID) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return one(r.s.companies.first(func(c entity.Company) bool { return c.UserId == userId })), nil
}

type founderRepository struct{ s *Store }

func (r *founderRepository) Create(ctx context.Context, founder *entity.Founder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ensureID(&founder.Id)
	founder.CreatedAt, founder.UpdatedAt = now(), now()
	r.s.founders.put(founder.Id, *founder)
	return nil
}

func (r *founderRepository) Update(ctx context.Context, founder *entity.Founder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	founder.UpdatedAt = now()
	r.s.founders.put(founder.Id, *founder)
	return nil
}

func (r *founderRepository) Delete(ctx context.Context, companyId, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if f, ok := r.s.founders.get(id); ok && f.CompanyId == companyId {
		r.s.deleteFounder(id)
	}
	return nil
}

func (r *founderRepository) FindOwned(ctx context.Context, companyId, id uuid.UUID) (*entity.Founder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	f, ok := r.s.founders.get(id)
	return one(f, ok && f.CompanyId == companyId), nil
}

func (r *founderRepository) FindByEmail(ctx context.Context, companyId uuid.UUID, email string) (*entity.Founder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return one(r.s.founders.first(func(f entity.Founder) bool {
		return f.CompanyId == companyId && strings.EqualFold(f.Email, email)
	})), nil
}

func (r *founderRepository) FindAllByCompany(ctx context.Context, companyId uuid.UUID) ([]*entity.Founder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return ptrs(r.s.founders.filter(func(f entity.Founder) bool { return f.CompanyId == companyId })), nil
}

type investorRepository struct{ s *Store }

func (r *investorRepository) Create(ctx context.Context, investor *entity.Investor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ensureID(&investor.Id)
	investor.CreatedAt, investor.UpdatedAt = now(), now()
	r.s.investors.put(investor.Id, *investor)
	return nil
}

func (r *investorRepository) Update(ctx context.Context, investor *entity.Investor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	investor.UpdatedAt = now()
	r.s.investors.put(investor.Id, *investor)
	return nil
}

func (r *investorRepository) Delete(ctx context.Context, companyId, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if i, ok := r.s.investors.get(id); ok && i.CompanyId == companyId {
		r.s.investors.del(id)
	}
	return nil
}

func (r *investorRepository) FindOwned(ctx context.Context, companyId, id uuid.UUID) (*entity.Investor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i, ok := r.s.investors.get(id)
	return one(i, ok && i.CompanyId == companyId), nil
}

func (r *investorRepository) FindBySafeDocument(ctx context.Context, documentId uuid.UUID) (*entity.Investor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return one(r.s.investors.first(func(i entity.Investor) bool {
		return i.SafeDocumentId != nil && *i.SafeDocumentId == documentId
	})), nil
}

func (r *investorRepository) FindAllByCompany(ctx context.Context, companyId uuid.UUID) ([]*entity.Investor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return ptrs(r.s.investors.filter(func(i entity.Investor) bool { return i.CompanyId == companyId })), nil
}

type documentRepository struct{ s *Store }

func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ensureID(&doc.Id)
	doc.CreatedAt, doc.UpdatedAt = now(), now()
	r.s.documents.put(doc.Id, *doc)
	return nil
}

// patch applies fn to the stored row under the write lock.
func (r *documentRepository) patch(id uuid.UUID, fn func(d *entity.Document) bool) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	doc, ok := r.s.documents.get(id)
	if !ok || !fn(&doc) {
		return
	}
	doc.UpdatedAt = now()
	r.s.documents.put(id, doc)
}

func (r *documentRepository) UpdateDetails(ctx context.Context, companyId, id uuid.UUID, title, content string) error {
	r.patch(id, func(d *entity.Document) bool {
		if d.CompanyId != companyId {
			return false
		}
		d.Title, d.Content = title, content
		return true
	})
	return nil
}

func (r *documentRepository) SaveValidationIssues(ctx context.Context, id uuid.UUID, issues []entity.ValidationIssue) error {
	r.patch(id, func(d *entity.Document) bool {
		d.ValidationErrors = append([]entity.ValidationIssue(nil), issues...)
		return true
	})
	return nil
}

func (r *documentRepository) SetIndexRef(ctx context.Context, id uuid.UUID, ref *string) error {
	r.patch(id, func(d *entity.Document) bool {
		d.IndexRef = ref
		return true
	})
	return nil
}

func (r *documentRepository) Delete(ctx context.Context, companyId, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d, ok := r.s.documents.get(id); ok && d.CompanyId == companyId {
		r.s.deleteDocument(id)
	}
	return nil
}

func (r *documentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return one(r.s.documents.get(id)), nil
}

func (r *documentRepository) FindOwned(ctx context.Context, companyId, id uuid.UUID) (*entity.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.documents.get(id)
	return one(d, ok && d.CompanyId == companyId), nil
}

func (r *documentRepository) FindAllByCompany(ctx context.Context, companyId uuid.UUID, filter contract.DocumentFilter) ([]*entity.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	docs := r.s.documents.filter(func(d entity.Document) bool {
		return d.CompanyId == companyId &&
			(filter.Type == "" || d.Type == filter.Type) &&
			(filter.Status == "" || d.Status == filter.Status)
	})
	for i, j := 0, len(docs)-1; i < j; i, j = i+1, j-1 {
		docs[i], docs[j] = docs[j], docs[i]
	}
	return ptrs(docs), nil
}

func (r *documentRepository) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to entity.DocumentStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	doc, ok := r.s.documents.get(id)
	if !ok || doc.Status != from {
		return false, nil
	}
	doc.Status = to
	doc.UpdatedAt = now()
	r.s.documents.put(doc.Id, doc)
	return true, nil
}

type signatureRepository struct{ s *Store }

func (r *signatureRepository) Create(ctx context.Context, sig *entity.DocumentSignature) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, dup := r.s.signatures.first(func(x entity.DocumentSignature) bool { return x.MagicToken == sig.MagicToken }); dup {
		return fmt.Errorf("duplicate key value violates unique constraint document_signatures_magic_token")
	}
	ensureID(&sig.Id)
	sig.CreatedAt, sig.UpdatedAt = now(), now()
	r.s.signatures.put(sig.Id, *sig)
	return nil
}

func (r *signatureRepository) MarkSent(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sig, ok := r.s.signatures.get(id)
	if !ok || sig.Status != entity.SignatureStatusPending {
		return false, nil
	}
	sig.Status = entity.SignatureStatusSent
	sig.UpdatedAt = now()
	r.s.signatures.put(sig.Id, sig)
	return true, nil
}

func (r *signatureRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DocumentSignature, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return one(r.s.signatures.get(id)), nil
}

func (r *signatureRepository) FindByToken(ctx context.Context, token string) (*entity.DocumentSignature, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return one(r.s.signatures.first(func(x entity.DocumentSignature) bool { return x.MagicToken == token })), nil
}

func (r *signatureRepository) FindAllByDocument(ctx context.Context, documentId uuid.UUID) ([]*entity.DocumentSignature, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return ptrs(r.s.signatures.filter(func(x entity.DocumentSignature) bool { return x.DocumentId == documentId })), nil
}

func (r *signatureRepository) MarkSigned(ctx context.Context, id uuid.UUID, signedAt time.Time, ipAddress, userAgent *string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sig, ok := r.s.signatures.get(id)
	if !ok || sig.Status == entity.SignatureStatusSigned {
		return false, nil
	}
	sig.Status = entity.SignatureStatusSigned
	sig.SignedAt = &signedAt
	sig.IpAddress = ipAddress
	sig.UserAgent = userAgent
	sig.UpdatedAt = now()
	r.s.signatures.put(sig.Id, sig)
	return true, nil
}

type taskRepository struct{ s *Store }

func (r *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ensureID(&task.Id)
	task.CreatedAt, task.UpdatedAt = now(), now()
	r.s.tasks.put(task.Id, *task)
	return nil
}

func (r *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	task.UpdatedAt = now()
	r.s.tasks.put(task.Id, *task)
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, companyId, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tasks.get(id); ok && t.CompanyId == companyId {
		r.s.tasks.del(id)
	}
	return nil
}

func (r *taskRepository) FindOwned(ctx context.Context, companyId, id uuid.UUID) (*entity.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tasks.get(id)
	return one(t, ok && t.CompanyId == companyId), nil
}

func (r *taskRepository) FindAllByCompany(ctx context.Context, companyId uuid.UUID) ([]*entity.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return ptrs(r.s.tasks.filter(func(t entity.Task) bool { return t.CompanyId == companyId })), nil
}

type capTableRepository struct{ s *Store }

func (r *capTableRepository) Create(ctx context.Context, entry *entity.CapTableEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ensureID(&entry.Id)
	entry.CreatedAt, entry.UpdatedAt = now(), now()
	r.s.capTable.put(entry.Id, *entry)
	return nil
}

func (r *capTableRepository) Update(ctx context.Context, entry *entity.CapTableEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entry.UpdatedAt = now()
	r.s.capTable.put(entry.Id, *entry)
	return nil
}

func (r *capTableRepository) Delete(ctx context.Context, companyId, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.capTable.get(id); ok && c.CompanyId == companyId {
		r.s.capTable.del(id)
	}
	return nil
}

func (r *capTableRepository) FindOwned(ctx context.Context, companyId, id uuid.UUID) (*entity.CapTableEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.capTable.get(id)
	return one(c, ok && c.CompanyId == companyId), nil
}

func (r *capTableRepository) FindAllByCompany(ctx context.Context, companyId uuid.UUID) ([]*entity.CapTableEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	entries := r.s.capTable.filter(func(c entity.CapTableEntry) bool { return c.CompanyId == companyId })
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Shares > entries[j].Shares })
	return ptrs(entries), nil
}

type chatMessageRepository struct{ s *Store }

func (r *chatMessageRepository) Create(ctx context.Context, msg *entity.ChatMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ensureID(&msg.Id)
	msg.CreatedAt = now()
	r.s.chatMessages.put(msg.Id, *msg)
	return nil
}

func (r *chatMessageRepository) Update(ctx context.Context, msg *entity.ChatMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.chatMessages.put(msg.Id, *msg)
	return nil
}

func (r *chatMessageRepository) FindRecent(ctx context.Context, companyId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	msgs := r.s.chatMessages.filter(func(m entity.ChatMessage) bool { return m.CompanyId == companyId })
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return ptrs(msgs), nil
}

type indexEntryRepository struct{ s *Store }

func (r *indexEntryRepository) EnsureSchema(ctx context.Context) error { return nil }

func (r *indexEntryRepository) ReplaceSource(ctx context.Context, companyId uuid.UUID, sourceType entity.IndexSourceType, sourceId uuid.UUID, entries []*entity.IndexEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.deleteSource(companyId, sourceType, sourceId)
	for _, e := range entries {
		e.CompanyId = companyId
		e.SourceType = sourceType
		e.SourceId = sourceId
		ensureID(&e.Id)
		e.CreatedAt = now()
		r.s.indexEntries.put(e.Id, *e)
	}
	return nil
}

func (r *indexEntryRepository) DeleteBySource(ctx context.Context, companyId uuid.UUID, sourceType entity.IndexSourceType, sourceId uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.deleteSource(companyId, sourceType, sourceId)
	return nil
}

func (r *indexEntryRepository) deleteSource(companyId uuid.UUID, sourceType entity.IndexSourceType, sourceId uuid.UUID) {
	for _, e := range r.s.indexEntries.filter(func(e entity.IndexEntry) bool {
		return e.CompanyId == companyId && e.SourceType == sourceType && e.SourceId == sourceId
	}) {
		r.s.indexEntries.del(e.Id)
	}
}

func (r *indexEntryRepository) SearchSimilar(ctx context.Context, companyId uuid.UUID, embedding []float32, limit int) ([]*entity.ScoredIndexEntry, error) {
	if limit <= 0 {
		limit = 3
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	candidates := r.s.indexEntries.filter(func(e entity.IndexEntry) bool { return e.CompanyId == companyId })
	scored := make([]*entity.ScoredIndexEntry, 0, len(candidates))
	for i := range candidates {
		e := candidates[i]
		scored = append(scored, &entity.ScoredIndexEntry{Entry: &e, Similarity: cosine(embedding, e.Embedding)})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Similarity > scored[j].Similarity })
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

type intentRepository struct{ s *Store }

func (r *intentRepository) Create(ctx context.Context, intent *entity.NotificationIntent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ensureID(&intent.Id)
	intent.CreatedAt, intent.UpdatedAt = now(), now()
	r.s.intents.put(intent.Id, *intent)
	return nil
}

func (r *intentRepository) Update(ctx context.Context, intent *entity.NotificationIntent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	intent.UpdatedAt = now()
	r.s.intents.put(intent.Id, *intent)
	return nil
}

func (r *intentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.NotificationIntent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return one(r.s.intents.get(id)), nil
}

func (r *intentRepository) Claim(ctx context.Context, id uuid.UUID, attempts int, leaseUntil time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	intent, ok := r.s.intents.get(id)
	if !ok || intent.Status == entity.IntentStatusSent || intent.Attempts != attempts {
		return false, nil
	}
	intent.Attempts++
	intent.NextAttemptAt = leaseUntil
	intent.UpdatedAt = now()
	r.s.intents.put(intent.Id, intent)
	return true, nil
}

func (r *intentRepository) FindDue(ctx context.Context, at time.Time, maxAttempts, limit int) ([]*entity.NotificationIntent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	due := r.s.intents.filter(func(n entity.NotificationIntent) bool {
		return n.Status != entity.IntentStatusSent && !n.NextAttemptAt.After(at) && n.Attempts < maxAttempts
	})
	sort.SliceStable(due, func(i, j int) bool { return due[i].NextAttemptAt.Before(due[j].NextAttemptAt) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return ptrs(due), nil
}

type notificationRepository struct{ s *Store }

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ensureID(&notification.Id)
	notification.CreatedAt = now()
	r.s.notifications.put(notification.Id, *notification)
	return nil
}

func (r *notificationRepository) FindAllByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.Notification, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := r.s.notifications.filter(func(n entity.Notification) bool { return n.UserId == userId })
	total := int64(len(items))
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	if offset >= len(items) {
		return []*entity.Notification{}, total, nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return ptrs(items), total, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userId uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.notifications.filter(func(n entity.Notification) bool {
		return n.UserId == userId && !n.IsRead
	}))), nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, userId, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications.get(id)
	if !ok || n.UserId != userId {
		return false, nil
	}
	n.IsRead = true
	r.s.notifications.put(id, n)
	return true, nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userId uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.notifications.filter(func(n entity.Notification) bool { return n.UserId == userId && !n.IsRead }) {
		n.IsRead = true
		r.s.notifications.put(n.Id, n)
	}
	return nil
}

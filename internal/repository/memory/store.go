package memory

import (
	"sync"

	"incorporate-run-be/internal/entity"

	"github.com/google/uuid"
)

// table keeps rows in insertion order.
type table[T any] struct {
	rows  map[uuid.UUID]T
	order []uuid.UUID
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[uuid.UUID]T)}
}

func (t *table[T]) put(id uuid.UUID, row T) {
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

func (t *table[T]) get(id uuid.UUID) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) del(id uuid.UUID) {
	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

func (t *table[T]) filter(keep func(T) bool) []T {
	out := make([]T, 0)
	for _, id := range t.order {
		if row, ok := t.rows[id]; ok && keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func (t *table[T]) first(keep func(T) bool) (T, bool) {
	for _, id := range t.order {
		if row, ok := t.rows[id]; ok && keep(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// Store is the process-local database behind DB_DRIVER=memory and the tests.
// Rows are held by value so callers never share memory with the store.
type Store struct {
	mu sync.RWMutex

	users         *table[entity.User]
	companies     *table[entity.Company]
	founders      *table[entity.Founder]
	investors     *table[entity.Investor]
	documents     *table[entity.Document]
	signatures    *table[entity.DocumentSignature]
	tasks         *table[entity.Task]
	capTable      *table[entity.CapTableEntry]
	chatMessages  *table[entity.ChatMessage]
	indexEntries  *table[entity.IndexEntry]
	intents       *table[entity.NotificationIntent]
	notifications *table[entity.Notification]
}

func NewStore() *Store {
	return &Store{
		users:         newTable[entity.User](),
		companies:     newTable[entity.Company](),
		founders:      newTable[entity.Founder](),
		investors:     newTable[entity.Investor](),
		documents:     newTable[entity.Document](),
		signatures:    newTable[entity.DocumentSignature](),
		tasks:         newTable[entity.Task](),
		capTable:      newTable[entity.CapTableEntry](),
		chatMessages:  newTable[entity.ChatMessage](),
		indexEntries:  newTable[entity.IndexEntry](),
		intents:       newTable[entity.NotificationIntent](),
		notifications: newTable[entity.Notification](),
	}
}

// deleteCompany mirrors the ON DELETE CASCADE chain of the relational schema.
// Callers hold the write lock.
func (s *Store) deleteCompany(id uuid.UUID) {
	for _, d := range s.documents.filter(func(d entity.Document) bool { return d.CompanyId == id }) {
		s.deleteDocument(d.Id)
	}
	for _, f := range s.founders.filter(func(f entity.Founder) bool { return f.CompanyId == id }) {
		s.deleteFounder(f.Id)
	}
	for _, i := range s.investors.filter(func(i entity.Investor) bool { return i.CompanyId == id }) {
		s.investors.del(i.Id)
	}
	for _, t := range s.tasks.filter(func(t entity.Task) bool { return t.CompanyId == id }) {
		s.tasks.del(t.Id)
	}
	for _, c := range s.capTable.filter(func(c entity.CapTableEntry) bool { return c.CompanyId == id }) {
		s.capTable.del(c.Id)
	}
	for _, m := range s.chatMessages.filter(func(m entity.ChatMessage) bool { return m.CompanyId == id }) {
		s.chatMessages.del(m.Id)
	}
	for _, e := range s.indexEntries.filter(func(e entity.IndexEntry) bool { return e.CompanyId == id }) {
		s.indexEntries.del(e.Id)
	}
	for _, n := range s.intents.filter(func(n entity.NotificationIntent) bool { return n.CompanyId == id }) {
		s.intents.del(n.Id)
	}
	s.companies.del(id)
}

func (s *Store) deleteDocument(id uuid.UUID) {
	for _, sig := range s.signatures.filter(func(sig entity.DocumentSignature) bool { return sig.DocumentId == id }) {
		for _, n := range s.intents.filter(func(n entity.NotificationIntent) bool {
			return n.SignatureId != nil && *n.SignatureId == sig.Id
		}) {
			s.intents.del(n.Id)
		}
		s.signatures.del(sig.Id)
	}
	for _, inv := range s.investors.filter(func(i entity.Investor) bool {
		return i.SafeDocumentId != nil && *i.SafeDocumentId == id
	}) {
		inv.SafeDocumentId = nil
		s.investors.put(inv.Id, inv)
	}
	s.documents.del(id)
}

func (s *Store) deleteFounder(id uuid.UUID) {
	for _, n := range s.intents.filter(func(n entity.NotificationIntent) bool {
		return n.FounderId != nil && *n.FounderId == id
	}) {
		s.intents.del(n.Id)
	}
	s.founders.del(id)
}

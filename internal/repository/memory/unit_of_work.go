package memory

import (
	"context"
	"fmt"

	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/repository/contract"
	"incorporate-run-be/internal/repository/unitofwork"
)

type RepositoryFactory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) *RepositoryFactory {
	return &RepositoryFactory{store: store}
}

func (f *RepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{s: f.store}
}

// Store exposes the backing store for inspection in tests.
func (f *RepositoryFactory) Store() *Store {
	return f.store
}

// Signatures returns every stored signature, magic tokens included.
func (s *Store) Signatures() []entity.DocumentSignature {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signatures.filter(func(entity.DocumentSignature) bool { return true })
}

// Intents returns every outbox row.
func (s *Store) Intents() []entity.NotificationIntent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.intents.filter(func(entity.NotificationIntent) bool { return true })
}

// unitOfWork tracks transaction state like the gorm one does. Writes are
// applied immediately; Rollback does not undo them.
type unitOfWork struct {
	s      *Store
	active bool
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return fmt.Errorf("transaction already started")
	}
	u.active = true
	return nil
}

func (u *unitOfWork) Commit() error {
	if !u.active {
		return fmt.Errorf("no transaction to commit")
	}
	u.active = false
	return nil
}

func (u *unitOfWork) Rollback() error {
	if !u.active {
		return fmt.Errorf("no transaction to rollback")
	}
	u.active = false
	return nil
}

func (u *unitOfWork) UserRepository() contract.UserRepository { return &userRepository{u.s} }
func (u *unitOfWork) CompanyRepository() contract.CompanyRepository {
	return &companyRepository{u.s}
}
func (u *unitOfWork) FounderRepository() contract.FounderRepository {
	return &founderRepository{u.s}
}
func (u *unitOfWork) InvestorRepository() contract.InvestorRepository {
	return &investorRepository{u.s}
}
func (u *unitOfWork) DocumentRepository() contract.DocumentRepository {
	return &documentRepository{u.s}
}
func (u *unitOfWork) SignatureRepository() contract.SignatureRepository {
	return &signatureRepository{u.s}
}
func (u *unitOfWork) TaskRepository() contract.TaskRepository { return &taskRepository{u.s} }
func (u *unitOfWork) CapTableRepository() contract.CapTableRepository {
	return &capTableRepository{u.s}
}
func (u *unitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return &chatMessageRepository{u.s}
}
func (u *unitOfWork) IndexEntryRepository() contract.IndexEntryRepository {
	return &indexEntryRepository{u.s}
}
func (u *unitOfWork) NotificationIntentRepository() contract.NotificationIntentRepository {
	return &intentRepository{u.s}
}
func (u *unitOfWork) NotificationRepository() contract.NotificationRepository {
	return &notificationRepository{u.s}
}

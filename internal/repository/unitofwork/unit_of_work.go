package unitofwork

import (
	"context"

	"incorporate-run-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CompanyRepository() contract.CompanyRepository
	FounderRepository() contract.FounderRepository
	InvestorRepository() contract.InvestorRepository
	DocumentRepository() contract.DocumentRepository
	SignatureRepository() contract.SignatureRepository
	TaskRepository() contract.TaskRepository
	CapTableRepository() contract.CapTableRepository
	ChatMessageRepository() contract.ChatMessageRepository
	IndexEntryRepository() contract.IndexEntryRepository
	NotificationIntentRepository() contract.NotificationIntentRepository
	NotificationRepository() contract.NotificationRepository
}

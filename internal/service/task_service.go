package service

import (
	"context"
	"fmt"
	"strings"

	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/pkg/apperror"
	"incorporate-run-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ITaskService interface {
	Create(ctx context.Context, companyId uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetAll(ctx context.Context, companyId uuid.UUID) ([]dto.TaskResponse, error)
	Show(ctx context.Context, companyId, id uuid.UUID) (*dto.TaskResponse, error)
	Update(ctx context.Context, companyId, id uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	Delete(ctx context.Context, companyId, id uuid.UUID) error
}

type taskService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTaskService(uowFactory unitofwork.RepositoryFactory) ITaskService {
	return &taskService{
		uowFactory: uowFactory,
	}
}

// checkAssignee requires the assignee to be a founder of the same company.
func (s *taskService) checkAssignee(ctx context.Context, uow unitofwork.UnitOfWork, companyId uuid.UUID, assigneeId *uuid.UUID) error {
	if assigneeId == nil {
		return nil
	}
	founder, err := uow.FounderRepository().FindOwned(ctx, companyId, *assigneeId)
	if err != nil {
		return err
	}
	if founder == nil {
		return apperror.NewValidationError("assignee_id must reference a founder of this company")
	}
	return nil
}

func (s *taskService) Create(ctx context.Context, companyId uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.checkAssignee(ctx, uow, companyId, req.AssigneeId); err != nil {
		return nil, err
	}

	task := &entity.Task{
		Id:          uuid.New(),
		CompanyId:   companyId,
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		AssigneeId:  req.AssigneeId,
		Status:      entity.TaskStatusPending,
		DueDate:     req.DueDate,
	}
	if err := uow.TaskRepository().Create(ctx, task); err != nil {
		return nil, err
	}

	res := dto.NewTaskResponse(task)
	return &res, nil
}

func (s *taskService) GetAll(ctx context.Context, companyId uuid.UUID) ([]dto.TaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tasks, err := uow.TaskRepository().FindAllByCompany(ctx, companyId)
	if err != nil {
		return nil, err
	}
	return dto.NewTaskResponses(tasks), nil
}

func (s *taskService) find(ctx context.Context, uow unitofwork.UnitOfWork, companyId, id uuid.UUID) (*entity.Task, error) {
	task, err := uow.TaskRepository().FindOwned(ctx, companyId, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperror.NotFound("task", id.String())
	}
	return task, nil
}

func (s *taskService) Show(ctx context.Context, companyId, id uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.find(ctx, s.uowFactory.NewUnitOfWork(ctx), companyId, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewTaskResponse(task)
	return &res, nil
}

func (s *taskService) Update(ctx context.Context, companyId, id uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	task, err := s.find(ctx, uow, companyId, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		next := entity.TaskStatus(*req.Status)
		if !next.Valid() {
			return nil, apperror.NewValidationError(fmt.Sprintf("unknown task status %q", *req.Status))
		}
		if next != task.Status {
			if !task.Status.CanTransitionTo(next) {
				return nil, &apperror.TransitionError{Entity: "task", From: string(task.Status), To: string(next)}
			}
			task.Status = next
		}
	}
	if req.AssigneeId != nil {
		if err := s.checkAssignee(ctx, uow, companyId, req.AssigneeId); err != nil {
			return nil, err
		}
		task.AssigneeId = req.AssigneeId
	}
	if req.Description != nil {
		task.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		task.Category = *req.Category
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := uow.TaskRepository().Update(ctx, task); err != nil {
		return nil, err
	}
	res := dto.NewTaskResponse(task)
	return &res, nil
}

func (s *taskService) Delete(ctx context.Context, companyId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.find(ctx, uow, companyId, id); err != nil {
		return err
	}
	return uow.TaskRepository().Delete(ctx, companyId, id)
}

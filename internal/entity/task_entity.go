package entity

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

var taskStatusOrder = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
}

func (s TaskStatus) Valid() bool { return member(taskStatusOrder, s) }

func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	return forward(taskStatusOrder, s, next)
}

type Task struct {
	Id          uuid.UUID
	CompanyId   uuid.UUID
	Description string
	Category    string
	AssigneeId  *uuid.UUID
	Status      TaskStatus
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

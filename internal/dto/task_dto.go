package dto

import (
	"time"

	"incorporate-run-be/internal/entity"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Description string     `json:"description" validate:"required"`
	Category    string     `json:"category"`
	AssigneeId  *uuid.UUID `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Description *string    `json:"description" validate:"omitempty,min=1"`
	Category    *string    `json:"category"`
	AssigneeId  *uuid.UUID `json:"assignee_id"`
	Status      *string    `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	DueDate     *time.Time `json:"due_date"`
}

type TaskResponse struct {
	Id          uuid.UUID  `json:"id"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	AssigneeId  *uuid.UUID `json:"assignee_id"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewTaskResponse(t *entity.Task) TaskResponse {
	return TaskResponse{
		Id:          t.Id,
		Description: t.Description,
		Category:    t.Category,
		AssigneeId:  t.AssigneeId,
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func NewTaskResponses(tasks []*entity.Task) []TaskResponse {
	res := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		res[i] = NewTaskResponse(t)
	}
	return res
}

type CreateCapTableEntryRequest struct {
	HolderId   *uuid.UUID `json:"holder_id"`
	HolderType string     `json:"holder_type" validate:"required,oneof=founder investor employee pool"`
	HolderName string     `json:"holder_name" validate:"required"`
	Shares     int64      `json:"shares" validate:"gte=0"`
	Percentage float64    `json:"percentage" validate:"gte=0,lte=100"`
}

type UpdateCapTableEntryRequest struct {
	HolderName *string  `json:"holder_name" validate:"omitempty,min=1"`
	Shares     *int64   `json:"shares" validate:"omitempty,gte=0"`
	Percentage *float64 `json:"percentage" validate:"omitempty,gte=0,lte=100"`
}

type CapTableEntryResponse struct {
	Id         uuid.UUID  `json:"id"`
	HolderId   *uuid.UUID `json:"holder_id"`
	HolderType string     `json:"holder_type"`
	HolderName string     `json:"holder_name"`
	Shares     int64      `json:"shares"`
	Percentage float64    `json:"percentage"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func NewCapTableEntryResponse(e *entity.CapTableEntry) CapTableEntryResponse {
	return CapTableEntryResponse{
		Id:         e.Id,
		HolderId:   e.HolderId,
		HolderType: string(e.HolderType),
		HolderName: e.HolderName,
		Shares:     e.Shares,
		Percentage: e.Percentage,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func NewCapTableEntryResponses(entries []*entity.CapTableEntry) []CapTableEntryResponse {
	res := make([]CapTableEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = NewCapTableEntryResponse(e)
	}
	return res
}

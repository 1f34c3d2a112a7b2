package mapper

import (
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/model"
)

type TaskMapper struct{}

func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

func (m *TaskMapper) ToEntity(t *model.Task) *entity.Task {
	if t == nil {
		return nil
	}
	return &entity.Task{
		Id:          t.Id,
		CompanyId:   t.CompanyId,
		Description: t.Description,
		Category:    t.Category,
		AssigneeId:  t.AssigneeId,
		Status:      entity.TaskStatus(t.Status),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (m *TaskMapper) ToModel(t *entity.Task) *model.Task {
	if t == nil {
		return nil
	}
	return &model.Task{
		Id:          t.Id,
		CompanyId:   t.CompanyId,
		Description: t.Description,
		Category:    t.Category,
		AssigneeId:  t.AssigneeId,
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (m *TaskMapper) ToEntities(tasks []*model.Task) []*entity.Task {
	entities := make([]*entity.Task, len(tasks))
	for i, t := range tasks {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

type CapTableMapper struct{}

func NewCapTableMapper() *CapTableMapper {
	return &CapTableMapper{}
}

func (m *CapTableMapper) ToEntity(c *model.CapTableEntry) *entity.CapTableEntry {
	if c == nil {
		return nil
	}
	return &entity.CapTableEntry{
		Id:         c.Id,
		CompanyId:  c.CompanyId,
		HolderId:   c.HolderId,
		HolderType: entity.HolderType(c.HolderType),
		HolderName: c.HolderName,
		Shares:     c.Shares,
		Percentage: c.Percentage,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (m *CapTableMapper) ToModel(c *entity.CapTableEntry) *model.CapTableEntry {
	if c == nil {
		return nil
	}
	return &model.CapTableEntry{
		Id:         c.Id,
		CompanyId:  c.CompanyId,
		HolderId:   c.HolderId,
		HolderType: string(c.HolderType),
		HolderName: c.HolderName,
		Shares:     c.Shares,
		Percentage: c.Percentage,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (m *CapTableMapper) ToEntities(entries []*model.CapTableEntry) []*entity.CapTableEntry {
	entities := make([]*entity.CapTableEntry, len(entries))
	for i, c := range entries {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

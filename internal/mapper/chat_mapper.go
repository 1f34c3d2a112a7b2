package mapper

import (
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type ChatMessageMapper struct{}

func NewChatMessageMapper() *ChatMessageMapper {
	return &ChatMessageMapper{}
}

func (m *ChatMessageMapper) ToEntity(c *model.ChatMessage) *entity.ChatMessage {
	if c == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:        c.Id,
		CompanyId: c.CompanyId,
		Role:      entity.ChatRole(c.Role),
		Content:   c.Content,
		IndexRef:  c.IndexRef,
		CreatedAt: c.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToModel(c *entity.ChatMessage) *model.ChatMessage {
	if c == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:        c.Id,
		CompanyId: c.CompanyId,
		Role:      string(c.Role),
		Content:   c.Content,
		IndexRef:  c.IndexRef,
		CreatedAt: c.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, c := range msgs {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

type IndexEntryMapper struct{}

func NewIndexEntryMapper() *IndexEntryMapper {
	return &IndexEntryMapper{}
}

func (m *IndexEntryMapper) ToEntity(e *model.IndexEntry) *entity.IndexEntry {
	if e == nil {
		return nil
	}
	return &entity.IndexEntry{
		Id:         e.Id,
		CompanyId:  e.CompanyId,
		SourceType: entity.IndexSourceType(e.SourceType),
		SourceId:   e.SourceId,
		ChunkIndex: e.ChunkIndex,
		Content:    e.Content,
		Metadata:   fromJSON[map[string]string](e.Metadata),
		Embedding:  e.Embedding.Slice(),
		CreatedAt:  e.CreatedAt,
	}
}

func (m *IndexEntryMapper) ToModel(e *entity.IndexEntry) *model.IndexEntry {
	if e == nil {
		return nil
	}
	return &model.IndexEntry{
		Id:         e.Id,
		CompanyId:  e.CompanyId,
		SourceType: string(e.SourceType),
		SourceId:   e.SourceId,
		ChunkIndex: e.ChunkIndex,
		Content:    e.Content,
		Metadata:   toJSON(e.Metadata),
		Embedding:  pgvector.NewVector(e.Embedding),
		CreatedAt:  e.CreatedAt,
	}
}

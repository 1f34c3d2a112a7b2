package dto

import (
	"time"

	"incorporate-run-be/internal/entity"

	"github.com/google/uuid"
)

type SendChatMessageRequest struct {
	Content string `json:"content" validate:"required,max=8000"`
}

type ExtractEntitiesRequest struct {
	Text string `json:"text" validate:"required"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatExchangeResponse struct {
	UserMessage      ChatMessageResponse `json:"user_message"`
	AssistantMessage ChatMessageResponse `json:"assistant_message"`
}

func NewChatMessageResponse(m *entity.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		Id:        m.Id,
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func NewChatMessageResponses(msgs []*entity.ChatMessage) []ChatMessageResponse {
	res := make([]ChatMessageResponse, len(msgs))
	for i, m := range msgs {
		res[i] = NewChatMessageResponse(m)
	}
	return res
}

// PublishIndexDocumentMessage is the payload on the document indexing topic.
type PublishIndexDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
	CompanyId  uuid.UUID `json:"company_id"`
}

type TextToSpeechRequest struct {
	Text string `json:"text" validate:"required,max=4096"`
}

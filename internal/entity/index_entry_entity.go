package entity

import (
	"time"

	"github.com/google/uuid"
)

type IndexSourceType string

const (
	IndexSourceDocument    IndexSourceType = "document"
	IndexSourceChatMessage IndexSourceType = "chat_message"
)

// IndexEntry is one embedded chunk in the retrieval index. CompanyId is the
// tenant partition key.
type IndexEntry struct {
	Id         uuid.UUID
	CompanyId  uuid.UUID
	SourceType IndexSourceType
	SourceId   uuid.UUID
	ChunkIndex int
	Content    string
	Metadata   map[string]string
	Embedding  []float32
	CreatedAt  time.Time
}

type ScoredIndexEntry struct {
	Entry      *IndexEntry
	Similarity float64
}

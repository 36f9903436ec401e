package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatThread is a conversation container identified by the unordered pair
// of its participants: a thread for (X, Y) answers for (Y, X) too.
type ChatThread struct {
	ID        uuid.UUID     `gorm:"type:varchar(36);primarykey" json:"id"`
	ProfileA  uuid.UUID     `gorm:"type:varchar(36);not null;index" json:"profile_a"`
	ProfileB  uuid.UUID     `gorm:"type:varchar(36);not null;index" json:"profile_b"`
	Messages  []ChatMessage `gorm:"foreignKey:ThreadID" json:"messages,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// ChatMessage is an append-only entry in a thread. No edit, no delete.
type ChatMessage struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	ThreadID      uuid.UUID `gorm:"type:varchar(36);not null;index" json:"thread_id"`
	FromProfileID uuid.UUID `gorm:"type:varchar(36);not null" json:"from_profile_id"`
	Body          string    `gorm:"type:text;not null" json:"body"`
	CreatedAt     time.Time `json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// ShortlistEntry is a private directional bookmark: owner saved target.
// The composite unique index makes repeat adds no-ops at the storage level.
type ShortlistEntry struct {
	ID             uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	OwnerProfileID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_shortlist_pair" json:"owner_profile_id"`
	SavedProfileID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_shortlist_pair" json:"saved_profile_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// InterestStatus tracks a directed connection proposal. SENT is the only
// non-terminal state; the recipient moves it to ACCEPTED or REJECTED.
type InterestStatus string

const (
	InterestSent     InterestStatus = "SENT"
	InterestAccepted InterestStatus = "ACCEPTED"
	InterestRejected InterestStatus = "REJECTED"
)

// Interest is a directed proposal from one profile to another. At most one
// SENT interest may exist per ordered (from, to) pair at a time.
type Interest struct {
	ID            uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	FromProfileID uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"from_profile_id"`
	ToProfileID   uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"to_profile_id"`
	Message       string         `gorm:"size:500" json:"message,omitempty"`
	Status        InterestStatus `gorm:"size:16;not null;default:'SENT'" json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Block is a directed suppression: the owner no longer wants to interact
// with the blocked profile. It gates the owner's interests and chat only;
// the blocked side is unaffected.
type Block struct {
	ID               uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	OwnerProfileID   uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_block_pair" json:"owner_profile_id"`
	BlockedProfileID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_block_pair" json:"blocked_profile_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// Report is an append-only complaint about a profile. Admin review stamps
// ReviewedAt/ReviewedBy; there are no further moderation states.
type Report struct {
	ID                uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	ReporterProfileID uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"reporter_profile_id"`
	ReportedProfileID uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"reported_profile_id"`
	Reason            string     `gorm:"size:500;not null" json:"reason"`
	CreatedAt         time.Time  `json:"created_at"`
	ReviewedAt        *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy        string     `gorm:"size:255" json:"reviewed_by,omitempty"`
}

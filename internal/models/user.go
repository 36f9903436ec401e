package models

import (
	"time"

	"github.com/google/uuid"
)

// Role determines what an account may do. It is fixed at creation;
// there is no self-promotion path to ADMIN.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Account is the login identity. Exactly one profile per account.
type Account struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"size:16;not null;default:'USER'" json:"role"`
	ProfileID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"profile_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

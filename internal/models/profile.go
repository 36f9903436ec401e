package models

import (
	"time"

	"github.com/google/uuid"
)

// ProfileStatus is the approval state of a profile. New profiles start
// PENDING; only an admin moves them to APPROVED or REJECTED, and any
// material edit by the owner puts them back to PENDING for re-review.
type ProfileStatus string

const (
	ProfilePending  ProfileStatus = "PENDING"
	ProfileApproved ProfileStatus = "APPROVED"
	ProfileRejected ProfileStatus = "REJECTED"
)

// MaxProfilePhotos caps the ordered photo list per profile.
const MaxProfilePhotos = 5

// Profile is the matchable matrimony listing. Only APPROVED profiles are
// publicly discoverable.
type Profile struct {
	ID     uuid.UUID     `gorm:"type:varchar(36);primarykey" json:"id"`
	Status ProfileStatus `gorm:"size:16;not null;default:'PENDING';index" json:"status"`

	FullName string `gorm:"size:255;not null" json:"full_name"`
	Gender   string `gorm:"size:16;not null" json:"gender"`
	// DOB is stored as YYYY-MM-DD.
	DOB string `gorm:"size:10;not null" json:"dob"`

	Denomination string `gorm:"size:100;index" json:"denomination"`
	MotherTongue string `gorm:"size:100;index" json:"mother_tongue"`

	Country string `gorm:"size:100" json:"country"`
	State   string `gorm:"size:100" json:"state"`
	City    string `gorm:"size:100" json:"city"`

	Education  string `gorm:"size:255" json:"education"`
	Profession string `gorm:"size:255" json:"profession"`

	AboutMe           string `gorm:"type:text" json:"about_me"`
	PartnerPreference string `gorm:"type:text" json:"partner_preference"`

	Photos []ProfilePhoto `gorm:"foreignKey:ProfileID" json:"photos"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfilePhoto references a stored image object. Position keeps the
// user-chosen ordering stable across reads.
type ProfilePhoto struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"profile_id"`
	Position  int       `gorm:"not null" json:"position"`
	Key       string    `gorm:"size:512;not null" json:"key"`
	CreatedAt time.Time `json:"created_at"`
}

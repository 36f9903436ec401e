package types

import "github.com/google/uuid"

// ProfileDraft is the full profile payload supplied at registration.
// Partial edits after registration go through UpdateProfileRequest.
type ProfileDraft struct {
	FullName          string `json:"full_name" binding:"required"`
	Gender            string `json:"gender" binding:"required"`
	DOB               string `json:"dob" binding:"required"`
	Denomination      string `json:"denomination" binding:"required"`
	MotherTongue      string `json:"mother_tongue" binding:"required"`
	Country           string `json:"country" binding:"required"`
	State             string `json:"state"`
	City              string `json:"city"`
	Education         string `json:"education"`
	Profession        string `json:"profession"`
	AboutMe           string `json:"about_me"`
	PartnerPreference string `json:"partner_preference"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string       `json:"email" binding:"required,email"`
	Password string       `json:"password" binding:"required,min=6"`
	Profile  ProfileDraft `json:"profile" binding:"required"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is a partial patch of the caller's own profile.
// Only non-nil fields are applied; Photos replaces the ordered photo key
// list when present.
type UpdateProfileRequest struct {
	FullName          *string   `json:"full_name"`
	Gender            *string   `json:"gender"`
	DOB               *string   `json:"dob"`
	Denomination      *string   `json:"denomination"`
	MotherTongue      *string   `json:"mother_tongue"`
	Country           *string   `json:"country"`
	State             *string   `json:"state"`
	City              *string   `json:"city"`
	Education         *string   `json:"education"`
	Profession        *string   `json:"profession"`
	AboutMe           *string   `json:"about_me"`
	PartnerPreference *string   `json:"partner_preference"`
	Photos            *[]string `json:"photos"`
}

// SearchFilters narrows the public APPROVED-profile listing. Zero values
// mean "no constraint"; at least one constraint is required, matching the
// search page behavior.
type SearchFilters struct {
	Query        string `form:"q"`
	Gender       string `form:"gender"`
	Denomination string `form:"denomination"`
	MotherTongue string `form:"mother_tongue"`
	Country      string `form:"country"`
	State        string `form:"state"`
	City         string `form:"city"`
	MinAge       int    `form:"min_age"`
	MaxAge       int    `form:"max_age"`
}

// IsEmpty reports whether no filter is set at all.
func (f SearchFilters) IsEmpty() bool {
	return f.Query == "" && f.Gender == "" && f.Denomination == "" &&
		f.MotherTongue == "" && f.Country == "" && f.State == "" &&
		f.City == "" && f.MinAge == 0 && f.MaxAge == 0
}

// SendInterestRequest is the body of POST /interests.
type SendInterestRequest struct {
	ToProfileID uuid.UUID `json:"to_profile_id" binding:"required"`
	Message     string    `json:"message"`
}

// SetInterestStatusRequest is the body of PUT /interests/:id/status.
type SetInterestStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACCEPTED REJECTED"`
}

// CreateReportRequest is the body of POST /reports.
type CreateReportRequest struct {
	ReportedProfileID uuid.UUID `json:"reported_profile_id" binding:"required"`
	Reason            string    `json:"reason" binding:"required"`
}

// OpenThreadRequest is the body of POST /chat/threads.
type OpenThreadRequest struct {
	ProfileID uuid.UUID `json:"profile_id" binding:"required"`
}

// SendMessageRequest is the body of POST /chat/threads/:id/messages.
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// SetProfileStatusRequest is the body of PUT /admin/profiles/:id/status.
type SetProfileStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}

// AccountView is an account stripped of credentials for admin listings.
type AccountView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ProfileID uuid.UUID `json:"profile_id"`
	CreatedAt string    `json:"created_at"`
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/holybond/holybond-v2/backend/internal/models"
	"github.com/holybond/holybond-v2/backend/internal/types"
	"gorm.io/gorm"
)

// ProfileService owns the profile lifecycle: creation happens in
// AuthService.Register, admin approval and owner edits happen here. The
// re-review rule lives in UpdateMyProfile: any material (non-photo) edit
// sends an APPROVED or REJECTED profile back to PENDING.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetMyProfile returns the caller's own profile. The admin has no
// matchmaking profile to speak of, so this is member-only.
func (s *ProfileService) GetMyProfile(ctx context.Context, claims *types.TokenClaims) (*models.Profile, error) {
	if claims == nil {
		return nil, ErrAuthRequired
	}
	if !claims.IsUser() {
		return nil, ErrRoleForbidden
	}
	return s.loadProfile(s.db.WithContext(ctx), claims.ProfileID)
}

// UpdateMyProfile applies a partial patch to the caller's profile inside
// one transaction, so the status decision and the write commit together.
//
// Status rule: if at least one non-photo field materially changes, an
// APPROVED or REJECTED profile reverts to PENDING for re-review. A
// photos-only update keeps the current status.
func (s *ProfileService) UpdateMyProfile(ctx context.Context, claims *types.TokenClaims, req *types.UpdateProfileRequest) (*models.Profile, error) {
	if claims == nil {
		return nil, ErrAuthRequired
	}
	if !claims.IsUser() {
		return nil, ErrRoleForbidden
	}
	if req == nil {
		return nil, ErrValidation
	}
	if req.Photos != nil && len(*req.Photos) > models.MaxProfilePhotos {
		return nil, ErrValidation
	}
	if req.DOB != nil {
		if _, err := time.Parse("2006-01-02", *req.DOB); err != nil {
			return nil, ErrValidation
		}
	}

	var updated *models.Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.loadProfile(tx, claims.ProfileID)
		if err != nil {
			return err
		}

		materialChange := applyPatch(profile, req)
		if materialChange && profile.Status != models.ProfilePending {
			profile.Status = models.ProfilePending
		}
		profile.UpdatedAt = time.Now()

		if err := tx.Omit("Photos").Save(profile).Error; err != nil {
			return classifyWriteError(err)
		}

		if req.Photos != nil {
			if err := replacePhotos(tx, profile, *req.Photos); err != nil {
				return err
			}
		}

		updated = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetProfile returns a single profile subject to the visibility rules:
// APPROVED profiles are public, otherwise only the admin and the owner
// may see them.
func (s *ProfileService) GetProfile(ctx context.Context, claims *types.TokenClaims, profileID uuid.UUID) (*models.Profile, error) {
	tx := s.db.WithContext(ctx)
	profile, err := s.loadProfile(tx, profileID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(tx, claims, ActionView, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Search lists APPROVED profiles matching the filters. An empty filter set
// returns nothing rather than the whole directory.
func (s *ProfileService) Search(ctx context.Context, filters types.SearchFilters) ([]models.Profile, error) {
	if filters.IsEmpty() {
		return []models.Profile{}, nil
	}

	query := s.db.WithContext(ctx).
		Model(&models.Profile{}).
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("status = ?", models.ProfileApproved)

	if q := strings.ToLower(strings.TrimSpace(filters.Query)); q != "" {
		pattern := "%" + q + "%"
		query = query.Where(
			"LOWER(full_name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ? OR LOWER(country) LIKE ? OR LOWER(education) LIKE ? OR LOWER(profession) LIKE ? OR LOWER(denomination) LIKE ? OR LOWER(mother_tongue) LIKE ?",
			pattern, pattern, pattern, pattern, pattern, pattern, pattern, pattern,
		)
	}
	if filters.Gender != "" {
		query = query.Where("gender = ?", filters.Gender)
	}
	if filters.Denomination != "" {
		query = query.Where("denomination = ?", filters.Denomination)
	}
	if filters.MotherTongue != "" {
		query = query.Where("mother_tongue = ?", filters.MotherTongue)
	}
	if filters.Country != "" {
		query = query.Where("LOWER(country) LIKE ?", "%"+strings.ToLower(filters.Country)+"%")
	}
	if filters.State != "" {
		query = query.Where("LOWER(state) LIKE ?", "%"+strings.ToLower(filters.State)+"%")
	}
	if filters.City != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(filters.City)+"%")
	}
	// DOB is ISO-formatted, so date cutoffs compare correctly as strings.
	if filters.MinAge > 0 {
		query = query.Where("dob <= ?", dobCutoff(filters.MinAge))
	}
	if filters.MaxAge > 0 {
		query = query.Where("dob > ?", dobCutoff(filters.MaxAge+1))
	}

	var profiles []models.Profile
	if err := query.Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// SetProfileStatus is the admin approval action. Re-applying the current
// status only touches the timestamp.
func (s *ProfileService) SetProfileStatus(ctx context.Context, claims *types.TokenClaims, profileID uuid.UUID, status models.ProfileStatus) (*models.Profile, error) {
	if err := requireAdmin(claims); err != nil {
		return nil, err
	}
	if status != models.ProfileApproved && status != models.ProfileRejected {
		return nil, ErrValidation
	}

	var updated *models.Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.loadProfile(tx, profileID)
		if err != nil {
			return err
		}
		profile.Status = status
		profile.UpdatedAt = time.Now()
		if err := tx.Omit("Photos").Save(profile).Error; err != nil {
			return err
		}
		updated = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListPendingProfiles returns the admin approval queue.
func (s *ProfileService) ListPendingProfiles(ctx context.Context, claims *types.TokenClaims) ([]models.Profile, error) {
	if err := requireAdmin(claims); err != nil {
		return nil, err
	}
	var profiles []models.Profile
	err := s.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("status = ?", models.ProfilePending).
		Order("created_at ASC").
		Find(&profiles).Error
	return profiles, err
}

// ListProfiles returns every profile regardless of status, admin only.
func (s *ProfileService) ListProfiles(ctx context.Context, claims *types.TokenClaims) ([]models.Profile, error) {
	if err := requireAdmin(claims); err != nil {
		return nil, err
	}
	var profiles []models.Profile
	err := s.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at DESC").
		Find(&profiles).Error
	return profiles, err
}

// ListAccounts returns all accounts without credentials, admin only.
func (s *ProfileService) ListAccounts(ctx context.Context, claims *types.TokenClaims) ([]models.Account, error) {
	if err := requireAdmin(claims); err != nil {
		return nil, err
	}
	var accounts []models.Account
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&accounts).Error
	return accounts, err
}

// GetAccountWithProfile returns one account and its profile, admin only.
func (s *ProfileService) GetAccountWithProfile(ctx context.Context, claims *types.TokenClaims, accountID uuid.UUID) (*models.Account, *models.Profile, error) {
	if err := requireAdmin(claims); err != nil {
		return nil, nil, err
	}

	var account models.Account
	if err := s.db.WithContext(ctx).First(&account, "id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	profile, err := s.loadProfile(s.db.WithContext(ctx), account.ProfileID)
	if err != nil {
		return nil, nil, err
	}
	return &account, profile, nil
}

// AdminUpdateProfile lets the admin patch a profile directly. Admin edits
// do not trigger the re-review transition.
func (s *ProfileService) AdminUpdateProfile(ctx context.Context, claims *types.TokenClaims, profileID uuid.UUID, req *types.UpdateProfileRequest) (*models.Profile, error) {
	if err := requireAdmin(claims); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrValidation
	}
	if req.Photos != nil && len(*req.Photos) > models.MaxProfilePhotos {
		return nil, ErrValidation
	}

	var updated *models.Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.loadProfile(tx, profileID)
		if err != nil {
			return err
		}

		applyPatch(profile, req)
		profile.UpdatedAt = time.Now()
		if err := tx.Omit("Photos").Save(profile).Error; err != nil {
			return classifyWriteError(err)
		}

		if req.Photos != nil {
			if err := replacePhotos(tx, profile, *req.Photos); err != nil {
				return err
			}
		}

		updated = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ProfileService) loadProfile(tx *gorm.DB, profileID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := tx.
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&profile, "id = ?", profileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// applyPatch copies set fields onto the profile and reports whether any
// non-photo field actually changed value.
func applyPatch(profile *models.Profile, req *types.UpdateProfileRequest) bool {
	changed := false
	apply := func(dst *string, src *string) {
		if src != nil && *src != *dst {
			*dst = *src
			changed = true
		}
	}

	apply(&profile.FullName, req.FullName)
	apply(&profile.Gender, req.Gender)
	apply(&profile.DOB, req.DOB)
	apply(&profile.Denomination, req.Denomination)
	apply(&profile.MotherTongue, req.MotherTongue)
	apply(&profile.Country, req.Country)
	apply(&profile.State, req.State)
	apply(&profile.City, req.City)
	apply(&profile.Education, req.Education)
	apply(&profile.Profession, req.Profession)
	apply(&profile.AboutMe, req.AboutMe)
	apply(&profile.PartnerPreference, req.PartnerPreference)

	return changed
}

// replacePhotos swaps the ordered photo key list for the profile.
func replacePhotos(tx *gorm.DB, profile *models.Profile, keys []string) error {
	if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.ProfilePhoto{}).Error; err != nil {
		return err
	}

	photos := make([]models.ProfilePhoto, 0, len(keys))
	for i, key := range keys {
		photos = append(photos, models.ProfilePhoto{
			ID:        uuid.New(),
			ProfileID: profile.ID,
			Position:  i,
			Key:       key,
			CreatedAt: time.Now(),
		})
	}
	if len(photos) > 0 {
		if err := tx.Create(&photos).Error; err != nil {
			return classifyWriteError(err)
		}
	}
	profile.Photos = photos
	return nil
}

func requireAdmin(claims *types.TokenClaims) error {
	if claims == nil {
		return ErrAuthRequired
	}
	if !claims.IsAdmin() {
		return ErrRoleForbidden
	}
	return nil
}

// classifyWriteError surfaces quota-class storage failures distinctly so
// callers can tell a rejected oversized write from an internal error.
func classifyWriteError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "too large") || strings.Contains(msg, "quota") || strings.Contains(msg, "full") {
		return ErrStorageExceeded
	}
	return err
}

func dobCutoff(years int) string {
	return time.Now().AddDate(-years, 0, 0).Format("2006-01-02")
}

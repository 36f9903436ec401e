package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/holybond/holybond-v2/backend/internal/models"
	"github.com/holybond/holybond-v2/backend/internal/types"
	"gorm.io/gorm"
)

// ShortlistService manages the private directional bookmark list.
type ShortlistService struct {
	db *gorm.DB
}

func NewShortlistService(db *gorm.DB) *ShortlistService {
	return &ShortlistService{db: db}
}

// Add saves a profile to the caller's shortlist. Re-adding is a no-op.
func (s *ShortlistService) Add(ctx context.Context, claims *types.TokenClaims, savedProfileID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := loadTarget(tx, savedProfileID)
		if err != nil {
			return err
		}
		if err := Authorize(tx, claims, ActionShortlist, target); err != nil {
			return err
		}

		var count int64
		err = tx.Model(&models.ShortlistEntry{}).
			Where("owner_profile_id = ? AND saved_profile_id = ?", claims.ProfileID, savedProfileID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		return tx.Create(&models.ShortlistEntry{
			ID:             uuid.New(),
			OwnerProfileID: claims.ProfileID,
			SavedProfileID: savedProfileID,
			CreatedAt:      time.Now(),
		}).Error
	})
}

// Remove drops a profile from the caller's shortlist. Removing an absent
// entry is a no-op.
func (s *ShortlistService) Remove(ctx context.Context, claims *types.TokenClaims, savedProfileID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := loadTarget(tx, savedProfileID)
		if err != nil {
			return err
		}
		if err := Authorize(tx, claims, ActionShortlist, target); err != nil {
			return err
		}

		return tx.
			Where("owner_profile_id = ? AND saved_profile_id = ?", claims.ProfileID, savedProfileID).
			Delete(&models.ShortlistEntry{}).Error
	})
}

// List returns the profiles the caller has shortlisted.
func (s *ShortlistService) List(ctx context.Context, claims *types.TokenClaims) ([]models.Profile, error) {
	if err := requireUser(claims); err != nil {
		return nil, err
	}

	var profiles []models.Profile
	err := s.db.WithContext(ctx).
		Model(&models.Profile{}).
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Joins("JOIN shortlist_entries ON shortlist_entries.saved_profile_id = profiles.id").
		Where("shortlist_entries.owner_profile_id = ?", claims.ProfileID).
		Order("shortlist_entries.created_at DESC").
		Find(&profiles).Error
	return profiles, err
}

// IsShortlisted reports whether the caller has saved the given profile.
func (s *ShortlistService) IsShortlisted(ctx context.Context, claims *types.TokenClaims, savedProfileID uuid.UUID) (bool, error) {
	if err := requireUser(claims); err != nil {
		return false, err
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.ShortlistEntry{}).
		Where("owner_profile_id = ? AND saved_profile_id = ?", claims.ProfileID, savedProfileID).
		Count(&count).Error
	return count > 0, err
}

func requireUser(claims *types.TokenClaims) error {
	if claims == nil {
		return ErrAuthRequired
	}
	if !claims.IsUser() {
		return ErrRoleForbidden
	}
	return nil
}

func loadTarget(tx *gorm.DB, profileID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := tx.First(&profile, "id = ?", profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

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

// InterestService manages directed connection proposals. Duplicate sends
// while one is outstanding are suppressed, and only the recipient may move
// an interest out of SENT.
type InterestService struct {
	db *gorm.DB
}

func NewInterestService(db *gorm.DB) *InterestService {
	return &InterestService{db: db}
}

// Send creates a SENT interest toward the target. If the caller already has
// an outstanding SENT interest to the same profile the call is a no-op and
// the existing record is returned. Senders who blocked the target must
// unblock first.
func (s *InterestService) Send(ctx context.Context, claims *types.TokenClaims, toProfileID uuid.UUID, message string) (*models.Interest, error) {
	var result *models.Interest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := loadTarget(tx, toProfileID)
		if err != nil {
			return err
		}
		if err := Authorize(tx, claims, ActionInterest, target); err != nil {
			return err
		}

		var existing models.Interest
		err = tx.
			Where("from_profile_id = ? AND to_profile_id = ? AND status = ?",
				claims.ProfileID, toProfileID, models.InterestSent).
			First(&existing).Error
		if err == nil {
			result = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		interest := &models.Interest{
			ID:            uuid.New(),
			FromProfileID: claims.ProfileID,
			ToProfileID:   toProfileID,
			Message:       message,
			Status:        models.InterestSent,
			CreatedAt:     time.Now(),
		}
		if err := tx.Create(interest).Error; err != nil {
			return err
		}
		result = interest
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetStatus moves an interest from SENT to ACCEPTED or REJECTED. Only the
// recipient may do this, and the transition is terminal.
func (s *InterestService) SetStatus(ctx context.Context, claims *types.TokenClaims, interestID uuid.UUID, status models.InterestStatus) (*models.Interest, error) {
	if err := requireUser(claims); err != nil {
		return nil, err
	}
	if status != models.InterestAccepted && status != models.InterestRejected {
		return nil, ErrValidation
	}

	var updated *models.Interest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var interest models.Interest
		if err := tx.First(&interest, "id = ?", interestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if interest.ToProfileID != claims.ProfileID {
			return ErrRoleForbidden
		}
		if interest.Status != models.InterestSent {
			return ErrRoleForbidden
		}

		interest.Status = status
		interest.UpdatedAt = time.Now()
		if err := tx.Save(&interest).Error; err != nil {
			return err
		}
		updated = &interest
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListSent returns the interests the caller has sent, newest first.
func (s *InterestService) ListSent(ctx context.Context, claims *types.TokenClaims) ([]models.Interest, error) {
	if err := requireUser(claims); err != nil {
		return nil, err
	}
	var interests []models.Interest
	err := s.db.WithContext(ctx).
		Where("from_profile_id = ?", claims.ProfileID).
		Order("created_at DESC").
		Find(&interests).Error
	return interests, err
}

// ListReceived returns the interests sent to the caller, newest first.
func (s *InterestService) ListReceived(ctx context.Context, claims *types.TokenClaims) ([]models.Interest, error) {
	if err := requireUser(claims); err != nil {
		return nil, err
	}
	var interests []models.Interest
	err := s.db.WithContext(ctx).
		Where("to_profile_id = ?", claims.ProfileID).
		Order("created_at DESC").
		Find(&interests).Error
	return interests, err
}

package service

import (
	"github.com/google/uuid"
	"github.com/holybond/holybond-v2/backend/internal/models"
	"github.com/holybond/holybond-v2/backend/internal/types"
	"gorm.io/gorm"
)

// Action is an operation a session may attempt against a target profile.
type Action string

const (
	ActionView      Action = "view"
	ActionShortlist Action = "shortlist"
	ActionInterest  Action = "interest"
	ActionBlock     Action = "block"
	ActionReport    Action = "report"
	ActionChat      Action = "chat"
)

// Authorize is the single gate every profile-targeting operation goes
// through. Rules, in order:
//
//   - anonymous callers may only view APPROVED profiles
//   - the admin may view anything but is excluded from matchmaking entirely
//   - owners may view themselves but never act on themselves
//   - members may view only APPROVED profiles; interest and chat are
//     additionally refused while the caller has the target blocked
//
// Blocking is one-directional: the blocked side's actions toward the
// blocker are not gated here.
func Authorize(tx *gorm.DB, claims *types.TokenClaims, action Action, target *models.Profile) error {
	if target == nil {
		return ErrNotFound
	}

	if claims == nil {
		if action != ActionView {
			return ErrAuthRequired
		}
		// Hidden profiles read as absent so existence does not leak.
		if target.Status != models.ProfileApproved {
			return ErrNotFound
		}
		return nil
	}

	if claims.IsAdmin() {
		if action == ActionView {
			return nil
		}
		return ErrRoleForbidden
	}

	if claims.ProfileID == target.ID {
		if action == ActionView {
			return nil
		}
		return ErrSelfActionForbidden
	}

	if action == ActionView {
		if target.Status != models.ProfileApproved {
			return ErrNotFound
		}
		return nil
	}

	if action == ActionInterest || action == ActionChat {
		blocked, err := hasBlock(tx, claims.ProfileID, target.ID)
		if err != nil {
			return err
		}
		if blocked {
			return ErrBlocked
		}
	}

	return nil
}

func hasBlock(tx *gorm.DB, ownerProfileID, blockedProfileID uuid.UUID) (bool, error) {
	var count int64
	err := tx.Model(&models.Block{}).
		Where("owner_profile_id = ? AND blocked_profile_id = ?", ownerProfileID, blockedProfileID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

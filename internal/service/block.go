package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/holybond/holybond-v2/backend/internal/models"
	"github.com/holybond/holybond-v2/backend/internal/types"
	"gorm.io/gorm"
)

// BlockService manages directed blocks. A block suppresses the blocker's
// own interests and chat toward the blocked profile; the blocked side is
// deliberately unaffected.
type BlockService struct {
	db *gorm.DB
}

func NewBlockService(db *gorm.DB) *BlockService {
	return &BlockService{db: db}
}

// Block adds a block from the caller to the target. Re-blocking is a no-op.
func (s *BlockService) Block(ctx context.Context, claims *types.TokenClaims, blockedProfileID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := loadTarget(tx, blockedProfileID)
		if err != nil {
			return err
		}
		if err := Authorize(tx, claims, ActionBlock, target); err != nil {
			return err
		}

		exists, err := hasBlock(tx, claims.ProfileID, blockedProfileID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		return tx.Create(&models.Block{
			ID:               uuid.New(),
			OwnerProfileID:   claims.ProfileID,
			BlockedProfileID: blockedProfileID,
			CreatedAt:        time.Now(),
		}).Error
	})
}

// Unblock removes the caller's block on the target. Removing an absent
// block is a no-op.
func (s *BlockService) Unblock(ctx context.Context, claims *types.TokenClaims, blockedProfileID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := loadTarget(tx, blockedProfileID)
		if err != nil {
			return err
		}
		if err := Authorize(tx, claims, ActionBlock, target); err != nil {
			return err
		}

		return tx.
			Where("owner_profile_id = ? AND blocked_profile_id = ?", claims.ProfileID, blockedProfileID).
			Delete(&models.Block{}).Error
	})
}

// IsBlocked reports whether the caller has the given profile blocked.
func (s *BlockService) IsBlocked(ctx context.Context, claims *types.TokenClaims, profileID uuid.UUID) (bool, error) {
	if err := requireUser(claims); err != nil {
		return false, err
	}
	return hasBlock(s.db.WithContext(ctx), claims.ProfileID, profileID)
}

// List returns the caller's blocks, newest first.
func (s *BlockService) List(ctx context.Context, claims *types.TokenClaims) ([]models.Block, error) {
	if err := requireUser(claims); err != nil {
		return nil, err
	}
	var blocks []models.Block
	err := s.db.WithContext(ctx).
		Where("owner_profile_id = ?", claims.ProfileID).
		Order("created_at DESC").
		Find(&blocks).Error
	return blocks, err
}

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

// ReportService is the append-only complaint log. Members file reports,
// the admin reviews them; there is no dismiss/action distinction.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// Create files a report against the target. Reason must be non-empty.
func (s *ReportService) Create(ctx context.Context, claims *types.TokenClaims, reportedProfileID uuid.UUID, reason string) (*models.Report, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrValidation
	}

	var report *models.Report
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := loadTarget(tx, reportedProfileID)
		if err != nil {
			return err
		}
		if err := Authorize(tx, claims, ActionReport, target); err != nil {
			return err
		}

		report = &models.Report{
			ID:                uuid.New(),
			ReporterProfileID: claims.ProfileID,
			ReportedProfileID: reportedProfileID,
			Reason:            reason,
			CreatedAt:         time.Now(),
		}
		return tx.Create(report).Error
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// List returns every report, admin only, newest first.
func (s *ReportService) List(ctx context.Context, claims *types.TokenClaims) ([]models.Report, error) {
	if err := requireAdmin(claims); err != nil {
		return nil, err
	}
	var reports []models.Report
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&reports).Error
	return reports, err
}

// MarkReviewed stamps the report with the reviewing admin and time.
// Reviewing again just refreshes the stamp.
func (s *ReportService) MarkReviewed(ctx context.Context, claims *types.TokenClaims, reportID uuid.UUID) (*models.Report, error) {
	if err := requireAdmin(claims); err != nil {
		return nil, err
	}

	var updated *models.Report
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := time.Now()
		report.ReviewedAt = &now
		report.ReviewedBy = claims.Email
		if err := tx.Save(&report).Error; err != nil {
			return err
		}
		updated = &report
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

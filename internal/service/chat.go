package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/holybond/holybond-v2/backend/internal/models"
	"github.com/holybond/holybond-v2/backend/internal/types"
	"gorm.io/gorm"
)

// ChatService manages unordered-pair conversation threads with append-only
// message logs.
type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

// GetOrCreateThread returns the thread between the caller and the other
// profile, creating it if absent. Thread identity is the unordered pair:
// a thread opened by either side answers for both.
func (s *ChatService) GetOrCreateThread(ctx context.Context, claims *types.TokenClaims, otherProfileID uuid.UUID) (*models.ChatThread, error) {
	var result *models.ChatThread
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := loadTarget(tx, otherProfileID)
		if err != nil {
			return err
		}
		if err := Authorize(tx, claims, ActionChat, target); err != nil {
			return err
		}

		var existing models.ChatThread
		err = tx.
			Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
			Where("(profile_a = ? AND profile_b = ?) OR (profile_a = ? AND profile_b = ?)",
				claims.ProfileID, otherProfileID, otherProfileID, claims.ProfileID).
			First(&existing).Error
		if err == nil {
			result = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		thread := &models.ChatThread{
			ID:        uuid.New(),
			ProfileA:  claims.ProfileID,
			ProfileB:  otherProfileID,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(thread).Error; err != nil {
			return err
		}
		result = thread
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetThread returns a thread with its messages. Participants only.
func (s *ChatService) GetThread(ctx context.Context, claims *types.TokenClaims, threadID uuid.UUID) (*models.ChatThread, error) {
	if err := requireUser(claims); err != nil {
		return nil, err
	}

	var thread models.ChatThread
	err := s.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&thread, "id = ?", threadID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if thread.ProfileA != claims.ProfileID && thread.ProfileB != claims.ProfileID {
		return nil, ErrRoleForbidden
	}
	return &thread, nil
}

// ListMyThreads returns the caller's threads ordered by latest activity:
// most recent message first, thread creation time for empty threads.
func (s *ChatService) ListMyThreads(ctx context.Context, claims *types.TokenClaims) ([]models.ChatThread, error) {
	if err := requireUser(claims); err != nil {
		return nil, err
	}

	var threads []models.ChatThread
	err := s.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("profile_a = ? OR profile_b = ?", claims.ProfileID, claims.ProfileID).
		Find(&threads).Error
	if err != nil {
		return nil, err
	}

	sort.SliceStable(threads, func(i, j int) bool {
		return threadActivity(threads[i]).After(threadActivity(threads[j]))
	})
	return threads, nil
}

// SendMessage appends a message to the thread. Participants only; the
// server assigns id and timestamp.
func (s *ChatService) SendMessage(ctx context.Context, claims *types.TokenClaims, threadID uuid.UUID, text string) (*models.ChatMessage, error) {
	if err := requireUser(claims); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrValidation
	}

	var message *models.ChatMessage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var thread models.ChatThread
		if err := tx.First(&thread, "id = ?", threadID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if thread.ProfileA != claims.ProfileID && thread.ProfileB != claims.ProfileID {
			return ErrRoleForbidden
		}

		message = &models.ChatMessage{
			ID:            uuid.New(),
			ThreadID:      thread.ID,
			FromProfileID: claims.ProfileID,
			Body:          text,
			CreatedAt:     time.Now(),
		}
		return tx.Create(message).Error
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

func threadActivity(thread models.ChatThread) time.Time {
	if n := len(thread.Messages); n > 0 {
		return thread.Messages[n-1].CreatedAt
	}
	return thread.CreatedAt
}

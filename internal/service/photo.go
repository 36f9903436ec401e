package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/holybond/holybond-v2/backend/config"
	"github.com/holybond/holybond-v2/backend/internal/models"
	"github.com/holybond/holybond-v2/backend/internal/types"
	"gorm.io/gorm"
)

// maxPhotoBytes bounds a single upload. Resizing/compression happens on
// the client; the server only stores what it is given.
const maxPhotoBytes = 5 << 20

// PhotoService stores profile photos in S3 and hands out presigned URLs
// for serving them. The profile's ordered key list itself lives on the
// profile (ProfileService.UpdateMyProfile).
type PhotoService struct {
	db       *gorm.DB
	s3Config *config.S3Config
}

func NewPhotoService(db *gorm.DB, s3Config *config.S3Config) *PhotoService {
	return &PhotoService{db: db, s3Config: s3Config}
}

// Upload stores one photo object for the caller's profile and returns its
// key. The caller attaches the key to the profile via the photos patch;
// uploading does not by itself change the profile, so the photo cap is
// checked here against the stored list to fail early.
func (s *PhotoService) Upload(ctx context.Context, claims *types.TokenClaims, data []byte, contentType string) (string, error) {
	if err := requireUser(claims); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrValidation
	}
	if len(data) > maxPhotoBytes {
		return "", ErrStorageExceeded
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.ProfilePhoto{}).
		Where("profile_id = ?", claims.ProfileID).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	if count >= models.MaxProfilePhotos {
		return "", ErrValidation
	}

	key := fmt.Sprintf("profiles/%s/%s", claims.ProfileID, uuid.New().String())
	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("Failed to upload photo %s: %v", key, err)
		return "", err
	}

	return key, nil
}

// URL returns a presigned GET URL for a stored photo key.
func (s *PhotoService) URL(ctx context.Context, key string) (string, error) {
	return s.s3Config.GeneratePresignedURL(ctx, key, 1*time.Hour)
}

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/tokyo_attractions_backend/internal/media"
	"github.com/njprem/tokyo_attractions_backend/internal/repository/ports"
)

type ReviewImageUpload = media.Upload

// ReviewImageService stores photos attached to reviews and hands back the
// URL to put in the review's image list.
type ReviewImageService struct {
	storage   ports.ObjectStorage
	processor media.Processor
	now       func() time.Time
	newID     func() string
}

func NewReviewImageService(storage ports.ObjectStorage, processor media.Processor) *ReviewImageService {
	if processor == nil {
		processor = media.NewImageProcessor(0, 0, 0)
	}
	return &ReviewImageService{
		storage:   storage,
		processor: processor,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *ReviewImageService) Upload(ctx context.Context, userID string, upload ReviewImageUpload) (string, error) {
	if s.storage == nil {
		return "", ErrStorageUnavailable
	}
	owner := strings.TrimSpace(userID)
	if owner == "" {
		return "", newValidationError(ErrImageValidation, []string{"userId is required"})
	}

	result, err := s.processor.Process(ctx, upload)
	if err != nil {
		if errors.Is(err, media.ErrEmptyImage) || errors.Is(err, media.ErrImageTooLarge) || errors.Is(err, media.ErrUnsupportedFormat) {
			return "", newValidationError(ErrImageValidation, []string{err.Error()})
		}
		return "", err
	}

	objectKey := fmt.Sprintf("reviews/%s/%s_%s%s",
		strings.ReplaceAll(owner, "/", "_"),
		s.now().UTC().Format("20060102T150405Z"),
		s.newID(),
		media.Extension(result.ContentType),
	)
	url, err := s.storage.Upload(ctx, objectKey, result.ContentType, bytes.NewReader(result.Bytes), int64(len(result.Bytes)))
	if err != nil {
		return "", fmt.Errorf("upload review image: %w", err)
	}
	return url, nil
}

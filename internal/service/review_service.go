package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
	"github.com/njprem/tokyo_attractions_backend/internal/repository/ports"
)

const (
	defaultReviewPage      = 1
	defaultReviewPageLimit = 10
	maxReviewPageLimit     = 100
)

type ReviewService struct {
	reviews ports.ReviewRepository
	users   ports.UserRepository
	ratings *RatingService
	tx      ports.TxRunner

	newID func() string
}

func NewReviewService(reviews ports.ReviewRepository, users ports.UserRepository, ratings *RatingService, tx ports.TxRunner) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		users:   users,
		ratings: ratings,
		tx:      tx,
		newID:   uuid.NewString,
	}
}

// CreateReview validates and stores a review, then refreshes the rating of the
// reviewed attraction before returning. The insert and the rating refresh
// share one transaction.
func (s *ReviewService) CreateReview(ctx context.Context, input ReviewInput) (*domain.Review, error) {
	if violations := ValidateReview(input); len(violations) > 0 {
		return nil, newValidationError(ErrReviewValidation, violations)
	}

	userID := strings.TrimSpace(input.UserID)
	attractionID := strings.TrimSpace(input.AttractionID)
	verified := input.Verified != nil && *input.Verified

	var created *domain.Review
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.FindByID(ctx, userID); err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}

		exists, err := s.reviews.ExistsForUser(ctx, userID, attractionID)
		if err != nil {
			return err
		}
		if exists {
			return ErrReviewAlreadyExist
		}

		stored, err := s.reviews.Create(ctx, &domain.Review{
			ID:           s.newID(),
			Rating:       *input.Rating,
			Comment:      strings.TrimSpace(*input.Comment),
			Images:       domain.ImageList(input.Images),
			UserID:       userID,
			AttractionID: attractionID,
			Verified:     verified,
		})
		if err != nil {
			if isUniqueViolation(err) {
				return ErrReviewAlreadyExist
			}
			return err
		}

		if err := s.ratings.Recompute(ctx, attractionID); err != nil {
			return err
		}

		created, err = s.reviews.GetByID(ctx, stored.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	created.ExpandUser()
	created.ExpandAttraction(false)
	return created, nil
}

func (s *ReviewService) ListByAttraction(ctx context.Context, attractionID string) ([]domain.Review, error) {
	reviews, err := s.reviews.ListByAttraction(ctx, strings.TrimSpace(attractionID))
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		reviews[i].ExpandUser()
	}
	return reviews, nil
}

func (s *ReviewService) ListByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	reviews, err := s.reviews.ListByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		reviews[i].ExpandAttraction(true)
	}
	return reviews, nil
}

// ListPage returns one page of all reviews, newest first. Out of range page
// and limit values fall back to the defaults; limit is capped.
func (s *ReviewService) ListPage(ctx context.Context, page, limit int) (*domain.ReviewPage, error) {
	page, limit = normalizeReviewPage(page, limit)

	reviews, err := s.reviews.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	total, err := s.reviews.Count(ctx)
	if err != nil {
		return nil, err
	}

	for i := range reviews {
		reviews[i].ExpandUser()
		reviews[i].ExpandAttraction(true)
	}
	return &domain.ReviewPage{
		Reviews:    reviews,
		Pagination: domain.NewPagination(page, limit, total),
	}, nil
}

// MarkHelpful adds one to the helpful counter of a review. Repeated calls by
// the same actor are all counted.
func (s *ReviewService) MarkHelpful(ctx context.Context, reviewID, actorID string) (*domain.Review, error) {
	reviewID = strings.TrimSpace(reviewID)
	if reviewID == "" {
		return nil, newValidationError(ErrReviewValidation, []string{"Review ID is required"})
	}
	if err := s.reviews.IncrementHelpful(ctx, reviewID); err != nil {
		if isNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("mark review %s helpful for %q: %w", reviewID, actorID, err)
	}
	return s.reload(ctx, reviewID)
}

// Respond sets the owner response of a review, replacing any earlier one.
func (s *ReviewService) Respond(ctx context.Context, reviewID, actorID string, response *string) (*domain.Review, error) {
	reviewID = strings.TrimSpace(reviewID)
	violations := make([]string, 0, 2)
	if reviewID == "" {
		violations = append(violations, "Review ID is required")
	}
	if response == nil || strings.TrimSpace(*response) == "" {
		violations = append(violations, "Response is required")
	}
	if len(violations) > 0 {
		return nil, newValidationError(ErrReviewValidation, violations)
	}

	if err := s.reviews.SetResponse(ctx, reviewID, strings.TrimSpace(*response)); err != nil {
		if isNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("respond to review %s for %q: %w", reviewID, actorID, err)
	}
	return s.reload(ctx, reviewID)
}

func (s *ReviewService) reload(ctx context.Context, reviewID string) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	review.ExpandUser()
	review.ExpandAttraction(false)
	return review, nil
}

func normalizeReviewPage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultReviewPage
	}
	if limit <= 0 {
		limit = defaultReviewPageLimit
	}
	if limit > maxReviewPageLimit {
		limit = maxReviewPageLimit
	}
	return page, limit
}

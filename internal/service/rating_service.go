package service

import (
	"context"
	"fmt"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
	"github.com/njprem/tokyo_attractions_backend/internal/repository/ports"
)

// RatingService keeps attraction.rating and attraction.review_count equal to
// the aggregate of the reviews currently stored for the attraction. Values are
// always recomputed from scratch.
type RatingService struct {
	reviews     ports.ReviewRepository
	attractions ports.AttractionRepository
}

func NewRatingService(reviews ports.ReviewRepository, attractions ports.AttractionRepository) *RatingService {
	return &RatingService{reviews: reviews, attractions: attractions}
}

func (s *RatingService) Recompute(ctx context.Context, attractionID string) error {
	ratings, err := s.reviews.RatingsByAttraction(ctx, attractionID)
	if err != nil {
		return fmt.Errorf("load ratings for %s: %w", attractionID, err)
	}
	rating, count := domain.ComputeRating(ratings)
	if err := s.attractions.UpdateRating(ctx, attractionID, rating, count); err != nil {
		if isNotFound(err) {
			return ErrAttractionNotFound
		}
		return fmt.Errorf("update rating for %s: %w", attractionID, err)
	}
	return nil
}

// RecomputeAll refreshes every attraction, including those left without
// reviews after a bulk replacement.
func (s *RatingService) RecomputeAll(ctx context.Context) error {
	ids, err := s.attractions.ListIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := s.Recompute(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *RatingService) Summary(ctx context.Context, attractionID string) (*domain.RatingSummary, error) {
	if _, err := s.attractions.FindByID(ctx, attractionID); err != nil {
		if isNotFound(err) {
			return nil, ErrAttractionNotFound
		}
		return nil, err
	}
	ratings, err := s.reviews.RatingsByAttraction(ctx, attractionID)
	if err != nil {
		return nil, err
	}
	summary := domain.SummarizeRatings(attractionID, ratings)
	return &summary, nil
}

package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/tokyo_attractions_backend/internal/repository/ports"
)

// SeedService loads the demo catalog and sample reviews.
type SeedService struct {
	attractions ports.AttractionRepository
	reviews     ports.ReviewRepository
	users       ports.UserRepository
	ratings     *RatingService
	tx          ports.TxRunner

	newID func() string
}

func NewSeedService(
	attractions ports.AttractionRepository,
	reviews ports.ReviewRepository,
	users ports.UserRepository,
	ratings *RatingService,
	tx ports.TxRunner,
) *SeedService {
	return &SeedService{
		attractions: attractions,
		reviews:     reviews,
		users:       users,
		ratings:     ratings,
		tx:          tx,
		newID:       uuid.NewString,
	}
}

// SeedCatalog replaces every attraction with the built-in Tokyo catalog.
// Bookings and reviews of the replaced attractions are removed with them.
func (s *SeedService) SeedCatalog(ctx context.Context) (int, error) {
	var count int
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		n, err := s.attractions.ReplaceAll(ctx, catalogSeed())
		if err != nil {
			return err
		}
		count = n
		return s.ratings.RecomputeAll(ctx)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *SeedService) CatalogCount(ctx context.Context) (int, error) {
	return s.attractions.Count(ctx)
}

// SeedSampleReviews upserts the demo users, replaces all reviews with the
// sample set and refreshes every attraction rating. It expects the catalog
// to be seeded.
func (s *SeedService) SeedSampleReviews(ctx context.Context) (int, error) {
	var count int
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, user := range sampleUsers() {
			user := user
			if _, err := s.users.Upsert(ctx, &user); err != nil {
				return err
			}
		}

		reviews := sampleReviews()
		for i := range reviews {
			reviews[i].ID = s.newID()
		}
		n, err := s.reviews.ReplaceAll(ctx, reviews)
		if err != nil {
			return err
		}
		count = n
		return s.ratings.RecomputeAll(ctx)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

package ports

import (
	"context"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
)

type AttractionRepository interface {
	Create(ctx context.Context, attraction *domain.Attraction) (*domain.Attraction, error)
	FindByID(ctx context.Context, id string) (*domain.Attraction, error)
	List(ctx context.Context) ([]domain.Attraction, error)
	ListIDs(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error
	ReplaceAll(ctx context.Context, attractions []domain.Attraction) (int, error)
}

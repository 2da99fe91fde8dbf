package ports

import (
	"context"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	ExistsForUser(ctx context.Context, userID, attractionID string) (bool, error)
	ListByAttraction(ctx context.Context, attractionID string) ([]domain.Review, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Review, error)
	List(ctx context.Context, limit, offset int) ([]domain.Review, error)
	Count(ctx context.Context) (int, error)
	RatingsByAttraction(ctx context.Context, attractionID string) ([]int, error)
	IncrementHelpful(ctx context.Context, id string) error
	SetResponse(ctx context.Context, id, response string) error
	ReplaceAll(ctx context.Context, reviews []domain.Review) (int, error)
}

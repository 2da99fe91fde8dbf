package ports

import (
	"context"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
}

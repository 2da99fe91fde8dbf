package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
	"github.com/njprem/tokyo_attractions_backend/internal/repository/ports"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT id, name, email, avatar FROM app_user WHERE id = $1`

	var user domain.User
	if err := conn(ctx, r.db).GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	const query = `
		INSERT INTO app_user (id, name, email, avatar)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    email = EXCLUDED.email,
		    avatar = EXCLUDED.avatar
		RETURNING id, name, email, avatar
	`

	var stored domain.User
	err := conn(ctx, r.db).QueryRowxContext(ctx, query, user.ID, user.Name, user.Email, nullString(user.Avatar)).StructScan(&stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)

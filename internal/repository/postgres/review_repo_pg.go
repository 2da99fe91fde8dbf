package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
	"github.com/njprem/tokyo_attractions_backend/internal/repository/ports"
)

const reviewSelect = `
		SELECT
			r.id,
			r.rating,
			r.comment,
			r.images,
			r.user_id,
			r.attraction_id,
			r.verified,
			r.helpful,
			r.response,
			r.created_at,
			r.updated_at,
			u.name AS author_name,
			u.avatar AS author_avatar,
			a.name AS attraction_name,
			a.image AS attraction_image
		FROM review r
		LEFT JOIN app_user u ON u.id = r.user_id
		LEFT JOIN attraction a ON a.id = r.attraction_id
`

type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepo(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	const query = `
		INSERT INTO review (id, rating, comment, images, user_id, attraction_id, verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, rating, comment, images, user_id, attraction_id, verified, helpful, response, created_at, updated_at
	`

	var stored domain.Review
	err := conn(ctx, r.db).QueryRowxContext(ctx, query,
		review.ID,
		review.Rating,
		review.Comment,
		review.Images,
		review.UserID,
		review.AttractionID,
		review.Verified,
	).StructScan(&stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	var review domain.Review
	if err := conn(ctx, r.db).GetContext(ctx, &review, reviewSelect+`WHERE r.id = $1`, id); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) ExistsForUser(ctx context.Context, userID, attractionID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM review WHERE user_id = $1 AND attraction_id = $2)`

	var exists bool
	if err := conn(ctx, r.db).GetContext(ctx, &exists, query, userID, attractionID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ReviewRepository) ListByAttraction(ctx context.Context, attractionID string) ([]domain.Review, error) {
	return r.selectReviews(ctx, reviewSelect+`
		WHERE r.attraction_id = $1
		ORDER BY r.created_at DESC, r.id DESC
	`, attractionID)
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	return r.selectReviews(ctx, reviewSelect+`
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC, r.id DESC
	`, userID)
}

func (r *ReviewRepository) List(ctx context.Context, limit, offset int) ([]domain.Review, error) {
	return r.selectReviews(ctx, reviewSelect+`
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
}

func (r *ReviewRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := conn(ctx, r.db).GetContext(ctx, &count, `SELECT COUNT(*) FROM review`); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ReviewRepository) RatingsByAttraction(ctx context.Context, attractionID string) ([]int, error) {
	ratings := make([]int, 0)
	if err := conn(ctx, r.db).SelectContext(ctx, &ratings, `SELECT rating FROM review WHERE attraction_id = $1`, attractionID); err != nil {
		return nil, err
	}
	return ratings, nil
}

// IncrementHelpful bumps the counter in a single statement so concurrent
// marks are never lost.
func (r *ReviewRepository) IncrementHelpful(ctx context.Context, id string) error {
	const query = `
		UPDATE review
		SET helpful = helpful + 1, updated_at = NOW()
		WHERE id = $1
	`
	return r.execOne(ctx, query, id)
}

func (r *ReviewRepository) SetResponse(ctx context.Context, id, response string) error {
	const query = `
		UPDATE review
		SET response = $2, updated_at = NOW()
		WHERE id = $1
	`
	return r.execOne(ctx, query, id, response)
}

// ReplaceAll removes every review and inserts the given set. Callers are
// expected to run it inside a transaction and recompute ratings afterwards.
func (r *ReviewRepository) ReplaceAll(ctx context.Context, reviews []domain.Review) (int, error) {
	db := conn(ctx, r.db)
	if _, err := db.ExecContext(ctx, `DELETE FROM review`); err != nil {
		return 0, err
	}

	const insert = `
		INSERT INTO review (id, rating, comment, images, user_id, attraction_id, verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, review := range reviews {
		if _, err := db.ExecContext(ctx, insert,
			review.ID, review.Rating, review.Comment, review.Images,
			review.UserID, review.AttractionID, review.Verified,
		); err != nil {
			return 0, err
		}
	}
	return len(reviews), nil
}

func (r *ReviewRepository) execOne(ctx context.Context, query string, args ...any) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ReviewRepository) selectReviews(ctx context.Context, query string, args ...any) ([]domain.Review, error) {
	reviews := make([]domain.Review, 0)
	if err := conn(ctx, r.db).SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, err
	}
	return reviews, nil
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)

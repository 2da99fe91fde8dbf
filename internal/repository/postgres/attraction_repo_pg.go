package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
	"github.com/njprem/tokyo_attractions_backend/internal/repository/ports"
)

const attractionColumns = `id, name, description, category, location, price, duration, image,
		       rating, review_count, tags, created_at, updated_at`

type attractionRow struct {
	domain.Attraction
	Tags pq.StringArray `db:"tags"`
}

func (r attractionRow) toDomain() domain.Attraction {
	attraction := r.Attraction
	attraction.Tags = append([]string{}, r.Tags...)
	return attraction
}

type AttractionRepository struct {
	db *sqlx.DB
}

func NewAttractionRepo(db *sqlx.DB) *AttractionRepository {
	return &AttractionRepository{db: db}
}

func (r *AttractionRepository) Create(ctx context.Context, attraction *domain.Attraction) (*domain.Attraction, error) {
	const query = `
		INSERT INTO attraction (id, name, description, category, location, price, duration, image, rating, review_count, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + attractionColumns

	var row attractionRow
	err := conn(ctx, r.db).QueryRowxContext(ctx, query,
		attraction.ID,
		attraction.Name,
		attraction.Description,
		attraction.Category,
		attraction.Location,
		attraction.Price,
		attraction.Duration,
		attraction.Image,
		attraction.Rating,
		attraction.ReviewCount,
		tagsValue(attraction.Tags),
	).StructScan(&row)
	if err != nil {
		return nil, err
	}
	stored := row.toDomain()
	return &stored, nil
}

func (r *AttractionRepository) FindByID(ctx context.Context, id string) (*domain.Attraction, error) {
	query := `SELECT ` + attractionColumns + ` FROM attraction WHERE id = $1`

	var row attractionRow
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	attraction := row.toDomain()
	return &attraction, nil
}

func (r *AttractionRepository) List(ctx context.Context) ([]domain.Attraction, error) {
	query := `SELECT ` + attractionColumns + ` FROM attraction ORDER BY rating DESC, name ASC, id ASC`

	var rows []attractionRow
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	attractions := make([]domain.Attraction, 0, len(rows))
	for _, row := range rows {
		attractions = append(attractions, row.toDomain())
	}
	return attractions, nil
}

func (r *AttractionRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := conn(ctx, r.db).SelectContext(ctx, &ids, `SELECT id FROM attraction ORDER BY id`); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *AttractionRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := conn(ctx, r.db).GetContext(ctx, &count, `SELECT COUNT(*) FROM attraction`); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AttractionRepository) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	const query = `
		UPDATE attraction
		SET rating = $2, review_count = $3, updated_at = NOW()
		WHERE id = $1
	`
	result, err := conn(ctx, r.db).ExecContext(ctx, query, id, rating, reviewCount)
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

// ReplaceAll deletes the whole catalog, which cascades to bookings and
// reviews, and inserts the given attractions. Callers are expected to run it
// inside a transaction.
func (r *AttractionRepository) ReplaceAll(ctx context.Context, attractions []domain.Attraction) (int, error) {
	db := conn(ctx, r.db)
	if _, err := db.ExecContext(ctx, `DELETE FROM attraction`); err != nil {
		return 0, err
	}

	const insert = `
		INSERT INTO attraction (id, name, description, category, location, price, duration, image, rating, review_count, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	for _, a := range attractions {
		if _, err := db.ExecContext(ctx, insert,
			a.ID, a.Name, a.Description, a.Category, a.Location, a.Price,
			a.Duration, a.Image, a.Rating, a.ReviewCount, tagsValue(a.Tags),
		); err != nil {
			return 0, err
		}
	}
	return len(attractions), nil
}

// tagsValue keeps an empty tag list as '{}' rather than NULL.
func tagsValue(tags []string) pq.StringArray {
	return append(pq.StringArray{}, tags...)
}

var _ ports.AttractionRepository = (*AttractionRepository)(nil)

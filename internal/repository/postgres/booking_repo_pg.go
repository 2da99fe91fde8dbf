package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
	"github.com/njprem/tokyo_attractions_backend/internal/repository/ports"
)

const bookingSelect = `
		SELECT
			b.id,
			b.attraction_id,
			b.user_name,
			b.user_email,
			b.visit_date,
			b.visitors,
			b.total_price,
			b.special_requests,
			b.created_at,
			a.id AS "attraction.id",
			a.name AS "attraction.name",
			a.description AS "attraction.description",
			a.category AS "attraction.category",
			a.location AS "attraction.location",
			a.price AS "attraction.price",
			a.duration AS "attraction.duration",
			a.image AS "attraction.image",
			a.rating AS "attraction.rating",
			a.review_count AS "attraction.review_count",
			a.tags AS "attraction.tags",
			a.created_at AS "attraction.created_at",
			a.updated_at AS "attraction.updated_at"
		FROM booking b
		JOIN attraction a ON a.id = b.attraction_id
`

type bookingRow struct {
	domain.Booking
	Attraction attractionRow `db:"attraction"`
}

func (r bookingRow) toDomain() domain.Booking {
	booking := r.Booking
	booking.Attraction = r.Attraction.toDomain()
	return booking
}

type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepo(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	const query = `
		INSERT INTO booking (id, attraction_id, user_name, user_email, visit_date, visitors, total_price, special_requests)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, attraction_id, user_name, user_email, visit_date, visitors, total_price, special_requests, created_at
	`

	var stored domain.Booking
	err := conn(ctx, r.db).QueryRowxContext(ctx, query,
		booking.ID,
		booking.AttractionID,
		booking.UserName,
		booking.UserEmail,
		booking.VisitDate,
		booking.Visitors,
		booking.TotalPrice,
		nullString(booking.SpecialRequests),
	).StructScan(&stored)
	if err != nil {
		return nil, err
	}
	stored.Attraction = booking.Attraction
	return &stored, nil
}

func (r *BookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.selectBookings(ctx, bookingSelect+`
		ORDER BY b.created_at DESC, b.id DESC
	`)
}

func (r *BookingRepository) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	return r.selectBookings(ctx, bookingSelect+`
		WHERE b.user_email = $1
		ORDER BY b.created_at DESC, b.id DESC
	`, email)
}

func (r *BookingRepository) selectBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := conn(ctx, r.db).QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var row bookingRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		bookings = append(bookings, row.toDomain())
	}
	return bookings, rows.Err()
}

var _ ports.BookingRepository = (*BookingRepository)(nil)

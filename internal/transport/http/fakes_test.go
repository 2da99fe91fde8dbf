package http

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
	"github.com/njprem/tokyo_attractions_backend/internal/service"
)

type fakeStore struct {
	mu          sync.Mutex
	attractions map[string]domain.Attraction
	reviews     []domain.Review
	bookings    []domain.Booking
	users       map[string]domain.User
	clock       time.Time
	listErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		attractions: map[string]domain.Attraction{},
		users:       map[string]domain.User{},
		clock:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *fakeStore) addAttraction(id, name string, price, rating float64) {
	s.attractions[id] = domain.Attraction{ID: id, Name: name, Price: price, Rating: rating, Tags: []string{}}
}

func (s *fakeStore) addUser(id, name string) {
	s.users[id] = domain.User{ID: id, Name: name, Email: id + "@example.com"}
}

type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAttractionRepo struct{ s *fakeStore }

func (r fakeAttractionRepo) Create(_ context.Context, a *domain.Attraction) (*domain.Attraction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.CreatedAt = r.s.tick()
	a.UpdatedAt = a.CreatedAt
	r.s.attractions[a.ID] = *a
	out := *a
	return &out, nil
}

func (r fakeAttractionRepo) FindByID(_ context.Context, id string) (*domain.Attraction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.attractions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &a, nil
}

func (r fakeAttractionRepo) List(context.Context) ([]domain.Attraction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.listErr != nil {
		return nil, r.s.listErr
	}
	out := make([]domain.Attraction, 0, len(r.s.attractions))
	for _, a := range r.s.attractions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r fakeAttractionRepo) ListIDs(context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]string, 0, len(r.s.attractions))
	for id := range r.s.attractions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r fakeAttractionRepo) Count(context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.attractions), nil
}

func (r fakeAttractionRepo) UpdateRating(_ context.Context, id string, rating float64, count int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.attractions[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.Rating = rating
	a.ReviewCount = count
	r.s.attractions[id] = a
	return nil
}

func (r fakeAttractionRepo) ReplaceAll(_ context.Context, attractions []domain.Attraction) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.attractions = map[string]domain.Attraction{}
	r.s.reviews = nil
	r.s.bookings = nil
	for _, a := range attractions {
		r.s.attractions[a.ID] = a
	}
	return len(attractions), nil
}

type fakeReviewRepo struct{ s *fakeStore }

func (r fakeReviewRepo) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.reviews {
		if existing.UserID == review.UserID && existing.AttractionID == review.AttractionID {
			return nil, errors.New("duplicate review")
		}
	}
	review.CreatedAt = r.s.tick()
	review.UpdatedAt = review.CreatedAt
	r.s.reviews = append(r.s.reviews, *review)
	out := *review
	return &out, nil
}

func (r fakeReviewRepo) find(id string) int {
	for i, review := range r.s.reviews {
		if review.ID == id {
			return i
		}
	}
	return -1
}

func (r fakeReviewRepo) GetByID(_ context.Context, id string) (*domain.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.find(id)
	if i < 0 {
		return nil, sql.ErrNoRows
	}
	out := r.s.reviews[i]
	return &out, nil
}

func (r fakeReviewRepo) ExistsForUser(_ context.Context, userID, attractionID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, review := range r.s.reviews {
		if review.UserID == userID && review.AttractionID == attractionID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeReviewRepo) filter(keep func(domain.Review) bool) []domain.Review {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Review, 0)
	for i := len(r.s.reviews) - 1; i >= 0; i-- {
		if keep(r.s.reviews[i]) {
			out = append(out, r.s.reviews[i])
		}
	}
	return out
}

func (r fakeReviewRepo) ListByAttraction(_ context.Context, attractionID string) ([]domain.Review, error) {
	return r.filter(func(review domain.Review) bool { return review.AttractionID == attractionID }), nil
}

func (r fakeReviewRepo) ListByUser(_ context.Context, userID string) ([]domain.Review, error) {
	return r.filter(func(review domain.Review) bool { return review.UserID == userID }), nil
}

func (r fakeReviewRepo) List(_ context.Context, limit, offset int) ([]domain.Review, error) {
	all := r.filter(func(domain.Review) bool { return true })
	if offset >= len(all) {
		return []domain.Review{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r fakeReviewRepo) Count(context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.reviews), nil
}

func (r fakeReviewRepo) RatingsByAttraction(_ context.Context, attractionID string) ([]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ratings := make([]int, 0)
	for _, review := range r.s.reviews {
		if review.AttractionID == attractionID {
			ratings = append(ratings, review.Rating)
		}
	}
	return ratings, nil
}

func (r fakeReviewRepo) IncrementHelpful(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.find(id)
	if i < 0 {
		return sql.ErrNoRows
	}
	r.s.reviews[i].Helpful++
	return nil
}

func (r fakeReviewRepo) SetResponse(_ context.Context, id, response string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.find(id)
	if i < 0 {
		return sql.ErrNoRows
	}
	r.s.reviews[i].Response = &response
	return nil
}

func (r fakeReviewRepo) ReplaceAll(_ context.Context, reviews []domain.Review) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.reviews = append([]domain.Review(nil), reviews...)
	return len(reviews), nil
}

type fakeUserRepo struct{ s *fakeStore }

func (r fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}

func (r fakeUserRepo) Upsert(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[user.ID] = *user
	out := *user
	return &out, nil
}

type fakeBookingRepo struct{ s *fakeStore }

func (r fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	booking.CreatedAt = r.s.tick()
	booking.Attraction = r.s.attractions[booking.AttractionID]
	r.s.bookings = append(r.s.bookings, *booking)
	out := *booking
	return &out, nil
}

func (r fakeBookingRepo) List(ctx context.Context) ([]domain.Booking, error) {
	return r.ListByEmail(ctx, "")
}

func (r fakeBookingRepo) ListByEmail(_ context.Context, email string) ([]domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Booking, 0)
	for i := len(r.s.bookings) - 1; i >= 0; i-- {
		if email == "" || r.s.bookings[i].UserEmail == email {
			out = append(out, r.s.bookings[i])
		}
	}
	return out, nil
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newTestServer wires the real services over the fake store behind a router.
func newTestServer(store *fakeStore) *echo.Echo {
	logger := discardLogger()
	attractions := fakeAttractionRepo{store}
	reviews := fakeReviewRepo{store}

	ratingService := service.NewRatingService(reviews, attractions)
	attractionService := service.NewAttractionService(attractions)
	reviewService := service.NewReviewService(reviews, fakeUserRepo{store}, ratingService, fakeTx{})
	bookingService := service.NewBookingService(fakeBookingRepo{store}, attractions, service.BookingServiceConfig{Logger: logger})
	seedService := service.NewSeedService(attractions, reviews, fakeUserRepo{store}, ratingService, fakeTx{})

	e := NewRouter(RouterConfig{AllowOrigins: []string{"*"}, Logger: logger})
	RegisterAttractions(e, attractionService, ratingService, logger)
	RegisterBookings(e, bookingService, logger)
	RegisterReviews(e, reviewService, nil, logger)
	RegisterSeed(e, seedService, logger)
	return e
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
	"github.com/njprem/tokyo_attractions_backend/internal/repository/ports"
)

// memoryStore backs the in-memory repositories used by the service tests.
// memoryTx restores a snapshot of it when the transaction body fails.
type memoryStore struct {
	mu          sync.Mutex
	attractions map[string]domain.Attraction
	users       map[string]domain.User
	reviews     []domain.Review
	bookings    []domain.Booking
	clock       time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		attractions: make(map[string]domain.Attraction),
		users:       make(map[string]domain.User),
		clock:       time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *memoryStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

type memorySnapshot struct {
	attractions map[string]domain.Attraction
	users       map[string]domain.User
	reviews     []domain.Review
	bookings    []domain.Booking
}

func (s *memoryStore) snapshot() memorySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := memorySnapshot{
		attractions: make(map[string]domain.Attraction, len(s.attractions)),
		users:       make(map[string]domain.User, len(s.users)),
		reviews:     append([]domain.Review(nil), s.reviews...),
		bookings:    append([]domain.Booking(nil), s.bookings...),
	}
	for k, v := range s.attractions {
		snap.attractions[k] = v
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	return snap
}

func (s *memoryStore) restore(snap memorySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attractions = snap.attractions
	s.users = snap.users
	s.reviews = snap.reviews
	s.bookings = snap.bookings
}

func (s *memoryStore) addAttraction(a domain.Attraction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attractions[a.ID] = a
}

func (s *memoryStore) addUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *memoryStore) attraction(id string) domain.Attraction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attractions[id]
}

func (s *memoryStore) reviewCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reviews)
}

type memoryTx struct {
	store *memoryStore
	calls int
}

func (t *memoryTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

type memoryAttractionRepo struct {
	store     *memoryStore
	listErr   error
	updateErr error
}

func (r *memoryAttractionRepo) Create(ctx context.Context, attraction *domain.Attraction) (*domain.Attraction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored := *attraction
	stored.CreatedAt = r.store.tick()
	stored.UpdatedAt = stored.CreatedAt
	r.store.attractions[stored.ID] = stored
	return &stored, nil
}

func (r *memoryAttractionRepo) FindByID(ctx context.Context, id string) (*domain.Attraction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.attractions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &a, nil
}

func (r *memoryAttractionRepo) List(ctx context.Context) ([]domain.Attraction, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]domain.Attraction, 0, len(r.store.attractions))
	for _, a := range r.store.attractions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *memoryAttractionRepo) ListIDs(ctx context.Context) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ids := make([]string, 0, len(r.store.attractions))
	for id := range r.store.attractions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *memoryAttractionRepo) Count(ctx context.Context) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return len(r.store.attractions), nil
}

func (r *memoryAttractionRepo) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.attractions[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.Rating = rating
	a.ReviewCount = reviewCount
	r.store.attractions[id] = a
	return nil
}

func (r *memoryAttractionRepo) ReplaceAll(ctx context.Context, attractions []domain.Attraction) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.attractions = make(map[string]domain.Attraction, len(attractions))
	r.store.reviews = nil
	r.store.bookings = nil
	for _, a := range attractions {
		a.CreatedAt = r.store.tick()
		r.store.attractions[a.ID] = a
	}
	return len(attractions), nil
}

type memoryReviewRepo struct {
	store *memoryStore
	// skipExists makes ExistsForUser miss, as a concurrent insert would.
	skipExists bool
}

func (r *memoryReviewRepo) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.reviews {
		if existing.UserID == review.UserID && existing.AttractionID == review.AttractionID {
			return nil, &pgconn.PgError{Code: "23505", ConstraintName: "review_user_attraction_key"}
		}
	}
	if _, ok := r.store.attractions[review.AttractionID]; !ok {
		return nil, &pgconn.PgError{Code: "23503", ConstraintName: "review_attraction_id_fkey"}
	}
	stored := *review
	stored.Helpful = 0
	stored.Response = nil
	stored.CreatedAt = r.store.tick()
	stored.UpdatedAt = stored.CreatedAt
	r.store.reviews = append(r.store.reviews, stored)
	return &stored, nil
}

func (r *memoryReviewRepo) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, review := range r.store.reviews {
		if review.ID == id {
			joined := r.join(review)
			return &joined, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryReviewRepo) ExistsForUser(ctx context.Context, userID, attractionID string) (bool, error) {
	if r.skipExists {
		return false, nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, review := range r.store.reviews {
		if review.UserID == userID && review.AttractionID == attractionID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryReviewRepo) ListByAttraction(ctx context.Context, attractionID string) ([]domain.Review, error) {
	return r.filter(func(review domain.Review) bool { return review.AttractionID == attractionID }), nil
}

func (r *memoryReviewRepo) ListByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	return r.filter(func(review domain.Review) bool { return review.UserID == userID }), nil
}

func (r *memoryReviewRepo) List(ctx context.Context, limit, offset int) ([]domain.Review, error) {
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

func (r *memoryReviewRepo) Count(ctx context.Context) (int, error) {
	return r.store.reviewCount(), nil
}

func (r *memoryReviewRepo) RatingsByAttraction(ctx context.Context, attractionID string) ([]int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ratings := make([]int, 0)
	for _, review := range r.store.reviews {
		if review.AttractionID == attractionID {
			ratings = append(ratings, review.Rating)
		}
	}
	return ratings, nil
}

func (r *memoryReviewRepo) IncrementHelpful(ctx context.Context, id string) error {
	return r.update(id, func(review *domain.Review) { review.Helpful++ })
}

func (r *memoryReviewRepo) SetResponse(ctx context.Context, id, response string) error {
	return r.update(id, func(review *domain.Review) { review.Response = &response })
}

func (r *memoryReviewRepo) ReplaceAll(ctx context.Context, reviews []domain.Review) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.reviews = nil
	for _, review := range reviews {
		if _, ok := r.store.attractions[review.AttractionID]; !ok {
			return 0, errors.New("insert or update on table \"review\" violates foreign key constraint")
		}
		review.CreatedAt = r.store.tick()
		r.store.reviews = append(r.store.reviews, review)
	}
	return len(reviews), nil
}

func (r *memoryReviewRepo) update(id string, fn func(*domain.Review)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.reviews {
		if r.store.reviews[i].ID == id {
			fn(&r.store.reviews[i])
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *memoryReviewRepo) filter(keep func(domain.Review) bool) []domain.Review {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]domain.Review, 0)
	for i := len(r.store.reviews) - 1; i >= 0; i-- {
		if keep(r.store.reviews[i]) {
			out = append(out, r.join(r.store.reviews[i]))
		}
	}
	return out
}

// join fills the display columns the postgres repository selects via LEFT JOIN.
func (r *memoryReviewRepo) join(review domain.Review) domain.Review {
	if user, ok := r.store.users[review.UserID]; ok {
		name := user.Name
		review.AuthorName = &name
		review.AuthorAvatar = user.Avatar
	}
	if attraction, ok := r.store.attractions[review.AttractionID]; ok {
		name, image := attraction.Name, attraction.Image
		review.AttractionName = &name
		review.AttractionImage = &image
	}
	return review
}

type memoryUserRepo struct {
	store *memoryStore
}

func (r *memoryUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}

func (r *memoryUserRepo) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.ID] = *user
	stored := *user
	return &stored, nil
}

type memoryBookingRepo struct {
	store *memoryStore
}

func (r *memoryBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored := *booking
	stored.CreatedAt = r.store.tick()
	r.store.bookings = append(r.store.bookings, stored)
	return &stored, nil
}

func (r *memoryBookingRepo) List(ctx context.Context) ([]domain.Booking, error) {
	return r.filter(func(domain.Booking) bool { return true }), nil
}

func (r *memoryBookingRepo) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	return r.filter(func(b domain.Booking) bool { return b.UserEmail == email }), nil
}

func (r *memoryBookingRepo) filter(keep func(domain.Booking) bool) []domain.Booking {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]domain.Booking, 0)
	for i := len(r.store.bookings) - 1; i >= 0; i-- {
		if keep(r.store.bookings[i]) {
			out = append(out, r.store.bookings[i])
		}
	}
	return out
}

type recordingNotifier struct {
	sent []string
	err  error
}

func (n *recordingNotifier) SendBookingConfirmation(ctx context.Context, booking *domain.Booking) error {
	n.sent = append(n.sent, booking.ID)
	return n.err
}

type recordingStorage struct {
	keys         []string
	contentTypes []string
	sizes        []int64
	err          error
}

func (s *recordingStorage) Upload(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	s.keys = append(s.keys, objectName)
	s.contentTypes = append(s.contentTypes, contentType)
	s.sizes = append(s.sizes, size)
	return "https://cdn.test/" + objectName, nil
}

var (
	_ ports.AttractionRepository = (*memoryAttractionRepo)(nil)
	_ ports.ReviewRepository     = (*memoryReviewRepo)(nil)
	_ ports.UserRepository       = (*memoryUserRepo)(nil)
	_ ports.BookingRepository    = (*memoryBookingRepo)(nil)
	_ ports.TxRunner             = (*memoryTx)(nil)
	_ ports.BookingNotifier      = (*recordingNotifier)(nil)
	_ ports.ObjectStorage        = (*recordingStorage)(nil)
)

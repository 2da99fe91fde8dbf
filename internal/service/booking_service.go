package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
	"github.com/njprem/tokyo_attractions_backend/internal/repository/ports"
)

type BookingInput struct {
	AttractionID    string   `json:"attractionId" validate:"required"`
	UserName        string   `json:"userName" validate:"required,max=200"`
	UserEmail       string   `json:"userEmail" validate:"required,email"`
	VisitDate       string   `json:"visitDate" validate:"required,visitdate"`
	Visitors        int      `json:"visitors" validate:"gt=0"`
	TotalPrice      *float64 `json:"totalPrice" validate:"omitempty,gte=0"`
	SpecialRequests *string  `json:"specialRequests" validate:"omitempty,max=2000"`
}

type BookingServiceConfig struct {
	// RecomputePrice ignores any caller supplied total and always charges
	// the catalog price.
	RecomputePrice bool
	Notifier       ports.BookingNotifier
	Logger         logrus.FieldLogger
}

type BookingService struct {
	bookings    ports.BookingRepository
	attractions ports.AttractionRepository
	notifier    ports.BookingNotifier
	logger      logrus.FieldLogger
	validator   *payloadValidator

	recomputePrice bool
	newID          func() string
}

func NewBookingService(bookings ports.BookingRepository, attractions ports.AttractionRepository, cfg BookingServiceConfig) *BookingService {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &BookingService{
		bookings:       bookings,
		attractions:    attractions,
		notifier:       cfg.Notifier,
		logger:         logger,
		validator:      newPayloadValidator(),
		recomputePrice: cfg.RecomputePrice,
		newID:          uuid.NewString,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, input BookingInput) (*domain.Booking, error) {
	input.AttractionID = strings.TrimSpace(input.AttractionID)
	input.UserName = strings.TrimSpace(input.UserName)
	input.UserEmail = strings.TrimSpace(input.UserEmail)
	if err := s.validator.check(ErrBookingValidation, input); err != nil {
		return nil, err
	}
	visitDate, err := parseVisitDate(input.VisitDate)
	if err != nil {
		return nil, newValidationError(ErrBookingValidation, []string{"visitDate is invalid"})
	}

	attraction, err := s.attractions.FindByID(ctx, input.AttractionID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAttractionNotFound
		}
		return nil, err
	}

	stored, err := s.bookings.Create(ctx, &domain.Booking{
		ID:              s.newID(),
		AttractionID:    attraction.ID,
		UserName:        input.UserName,
		UserEmail:       input.UserEmail,
		VisitDate:       visitDate,
		Visitors:        input.Visitors,
		TotalPrice:      s.totalPrice(attraction, input),
		SpecialRequests: normalizeString(input.SpecialRequests),
		Attraction:      *attraction,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, stored)
	return stored, nil
}

// ListBookings returns the bookings made with email, or every booking when
// email is empty. Newest first.
func (s *BookingService) ListBookings(ctx context.Context, email string) ([]domain.Booking, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return s.bookings.List(ctx)
	}
	return s.bookings.ListByEmail(ctx, email)
}

// totalPrice keeps a non-zero caller supplied total unless price recomputation
// is enforced.
func (s *BookingService) totalPrice(attraction *domain.Attraction, input BookingInput) float64 {
	if s.recomputePrice || input.TotalPrice == nil || *input.TotalPrice == 0 {
		return attraction.PriceFor(input.Visitors)
	}
	return *input.TotalPrice
}

func (s *BookingService) notify(ctx context.Context, booking *domain.Booking) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendBookingConfirmation(ctx, booking); err != nil {
		s.logger.WithError(err).WithField("booking_id", booking.ID).Warn("booking confirmation not sent")
	}
}

func normalizeString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

package ports

import (
	"context"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
)

type BookingNotifier interface {
	SendBookingConfirmation(ctx context.Context, booking *domain.Booking) error
}

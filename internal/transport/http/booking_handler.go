package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
	"github.com/njprem/tokyo_attractions_backend/internal/service"
)

type BookingHandler struct {
	bookings *service.BookingService
	logger   logrus.FieldLogger
}

func RegisterBookings(e *echo.Echo, bookings *service.BookingService, logger logrus.FieldLogger) {
	h := &BookingHandler{bookings: bookings, logger: logger}

	group := e.Group("/api/bookings")
	group.GET("", h.list)
	group.POST("", h.create)
}

// list handles GET /api/bookings?email=
func (h *BookingHandler) list(c echo.Context) error {
	bookings, err := h.bookings.ListBookings(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch bookings")
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return c.JSON(http.StatusOK, bookings)
}

// create handles POST /api/bookings
func (h *BookingHandler) create(c echo.Context) error {
	var input service.BookingInput
	if err := c.Bind(&input); err != nil {
		return invalidBody(c)
	}
	if input.UserEmail != "" {
		setCaller(c, maskEmail(input.UserEmail))
	}

	booking, err := h.bookings.CreateBooking(c.Request().Context(), input)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to create booking")
	}
	return c.JSON(http.StatusCreated, booking)
}

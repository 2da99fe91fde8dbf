package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
	"github.com/njprem/tokyo_attractions_backend/internal/service"
)

type AttractionHandler struct {
	attractions *service.AttractionService
	ratings     *service.RatingService
	logger      logrus.FieldLogger
}

func RegisterAttractions(e *echo.Echo, attractions *service.AttractionService, ratings *service.RatingService, logger logrus.FieldLogger) {
	h := &AttractionHandler{
		attractions: attractions,
		ratings:     ratings,
		logger:      logger,
	}

	group := e.Group("/api/attractions")
	group.GET("", h.list)
	group.POST("", h.create)
	group.GET("/:id", h.get)
	group.GET("/:id/rating-summary", h.ratingSummary)
}

// list handles GET /api/attractions
func (h *AttractionHandler) list(c echo.Context) error {
	attractions, err := h.attractions.List(c.Request().Context())
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch attractions")
	}
	if attractions == nil {
		attractions = []domain.Attraction{}
	}
	return c.JSON(http.StatusOK, attractions)
}

// create handles POST /api/attractions
func (h *AttractionHandler) create(c echo.Context) error {
	var input service.AttractionInput
	if err := c.Bind(&input); err != nil {
		return invalidBody(c)
	}

	attraction, err := h.attractions.Create(c.Request().Context(), input)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to create attraction")
	}
	return c.JSON(http.StatusCreated, attraction)
}

// get handles GET /api/attractions/{id}
func (h *AttractionHandler) get(c echo.Context) error {
	attraction, err := h.attractions.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch attraction")
	}
	return c.JSON(http.StatusOK, attraction)
}

// ratingSummary handles GET /api/attractions/{id}/rating-summary
func (h *AttractionHandler) ratingSummary(c echo.Context) error {
	summary, err := h.ratings.Summary(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch rating summary")
	}
	return c.JSON(http.StatusOK, summary)
}

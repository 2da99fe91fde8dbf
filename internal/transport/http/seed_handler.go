package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/njprem/tokyo_attractions_backend/internal/service"
	"github.com/njprem/tokyo_attractions_backend/internal/util"
)

type SeedHandler struct {
	seeds  *service.SeedService
	logger logrus.FieldLogger
}

// RegisterSeed mounts the demo data routes. They replace existing data and
// should stay disabled outside development.
func RegisterSeed(e *echo.Echo, seeds *service.SeedService, logger logrus.FieldLogger) {
	h := &SeedHandler{seeds: seeds, logger: logger}

	e.POST("/api/seed", h.seedCatalog)
	e.GET("/api/seed", h.catalogStatus)
	e.POST("/api/sample-reviews", h.seedSampleReviews)
}

func (h *SeedHandler) seedCatalog(c echo.Context) error {
	count, err := h.seeds.SeedCatalog(c.Request().Context())
	if err != nil {
		return writeError(c, h.logger, err, "Failed to seed attractions")
	}
	h.logger.WithField("count", count).Info("attraction catalog seeded")
	return c.JSON(http.StatusOK, util.Envelope{
		"message": fmt.Sprintf("Successfully added %d Tokyo attractions", count),
		"count":   count,
	})
}

func (h *SeedHandler) catalogStatus(c echo.Context) error {
	count, err := h.seeds.CatalogCount(c.Request().Context())
	if err != nil {
		return writeError(c, h.logger, err, "Failed to check attractions")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"message": fmt.Sprintf("Database contains %d attractions", count),
		"count":   count,
	})
}

func (h *SeedHandler) seedSampleReviews(c echo.Context) error {
	count, err := h.seeds.SeedSampleReviews(c.Request().Context())
	if err != nil {
		return writeError(c, h.logger, err, "Failed to add sample reviews")
	}
	h.logger.WithField("count", count).Info("sample reviews seeded")
	return c.JSON(http.StatusOK, util.Envelope{
		"message": fmt.Sprintf("Successfully added %d sample reviews", count),
		"count":   count,
	})
}

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const healthTimeout = 3 * time.Second

type Pinger interface {
	PingContext(ctx context.Context) error
}

type AttractionCounter interface {
	Count(ctx context.Context) (int, error)
}

// RegisterHealth mounts GET /health. It reports 503 when the database cannot
// be reached or queried.
func RegisterHealth(e *echo.Echo, db Pinger, attractions AttractionCounter, logger logrus.FieldLogger) {
	e.GET("/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.WithError(err).Warn("health check: database ping failed")
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"ok": false, "database": "unreachable"})
		}
		count, err := attractions.Count(ctx)
		if err != nil {
			logger.WithError(err).Warn("health check: attraction count failed")
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"ok": false, "database": "query failed"})
		}
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "database": "connected", "attractions": count})
	})
}

package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/njprem/tokyo_attractions_backend/internal/service"
	"github.com/njprem/tokyo_attractions_backend/internal/util"
)

const msgValidationFailed = "Validation failed"

// writeError maps a service error onto a JSON response. Anything not known to
// the caller is logged and answered with fallback so store details stay in
// the logs.
func writeError(c echo.Context, logger logrus.FieldLogger, err error, fallback string) error {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		return c.JSON(http.StatusBadRequest, util.ValidationError(msgValidationFailed, validation.Messages))
	case errors.Is(err, service.ErrReviewAlreadyExist):
		return c.JSON(http.StatusConflict, util.Error("You have already reviewed this attraction"))
	case errors.Is(err, service.ErrAttractionNotFound):
		return c.JSON(http.StatusNotFound, util.Error("Attraction not found"))
	case errors.Is(err, service.ErrReviewNotFound):
		return c.JSON(http.StatusNotFound, util.Error("Review not found"))
	case errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, util.Error("User not found"))
	case errors.Is(err, service.ErrInvalidReviewAction):
		return c.JSON(http.StatusBadRequest, util.Error("Invalid action"))
	case errors.Is(err, service.ErrStorageUnavailable):
		return c.JSON(http.StatusServiceUnavailable, util.Error("Image uploads are not available"))
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"method": c.Request().Method,
		"path":   c.Path(),
	}).Error(fallback)
	return c.JSON(http.StatusInternalServerError, util.Error(fallback))
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, util.Error("Invalid request body"))
}

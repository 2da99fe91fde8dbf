package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
	"github.com/njprem/tokyo_attractions_backend/internal/service"
	"github.com/njprem/tokyo_attractions_backend/internal/util"
)

const (
	reviewActionHelpful = "helpful"
	reviewActionRespond = "respond"
)

type ReviewHandler struct {
	reviews *service.ReviewService
	images  *service.ReviewImageService
	logger  logrus.FieldLogger
}

type reviewCreateRequest struct {
	Rating       reviewRating `json:"rating"`
	Comment      *string      `json:"comment"`
	Images       []string     `json:"images"`
	UserID       string       `json:"userId"`
	AttractionID string       `json:"attractionId"`
	Verified     *bool        `json:"verified"`
}

// reviewRating takes any JSON value. Anything but a whole number is left
// unset so the rating rule reports it instead of the body being rejected.
type reviewRating struct {
	value *int
}

func (r *reviewRating) UnmarshalJSON(data []byte) error {
	var value int
	if string(data) != "null" && json.Unmarshal(data, &value) == nil {
		r.value = &value
	}
	return nil
}

type reviewUpdateRequest struct {
	ReviewID string  `json:"reviewId"`
	Action   string  `json:"action"`
	UserID   string  `json:"userId"`
	Response *string `json:"response"`
}

// RegisterReviews mounts the review routes. The image upload route is only
// added when images is non-nil.
func RegisterReviews(e *echo.Echo, reviews *service.ReviewService, images *service.ReviewImageService, logger logrus.FieldLogger) {
	h := &ReviewHandler{
		reviews: reviews,
		images:  images,
		logger:  logger,
	}

	group := e.Group("/api/reviews")
	group.GET("", h.list)
	group.POST("", h.create)
	group.PUT("", h.update)
	if images != nil {
		group.POST("/images", h.uploadImage)
	}
}

// list handles GET /api/reviews?attractionId= | ?userId= | ?page=&limit=
func (h *ReviewHandler) list(c echo.Context) error {
	ctx := c.Request().Context()

	if attractionID := strings.TrimSpace(c.QueryParam("attractionId")); attractionID != "" {
		reviews, err := h.reviews.ListByAttraction(ctx, attractionID)
		if err != nil {
			return writeError(c, h.logger, err, "Failed to fetch reviews")
		}
		return c.JSON(http.StatusOK, nonNilReviews(reviews))
	}

	if userID := strings.TrimSpace(c.QueryParam("userId")); userID != "" {
		setCaller(c, userID)
		reviews, err := h.reviews.ListByUser(ctx, userID)
		if err != nil {
			return writeError(c, h.logger, err, "Failed to fetch reviews")
		}
		return c.JSON(http.StatusOK, nonNilReviews(reviews))
	}

	page := queryInt(c, "page")
	limit := queryInt(c, "limit")
	result, err := h.reviews.ListPage(ctx, page, limit)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch reviews")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"reviews":    nonNilReviews(result.Reviews),
		"pagination": result.Pagination,
	})
}

// create handles POST /api/reviews
func (h *ReviewHandler) create(c echo.Context) error {
	var req reviewCreateRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	setCaller(c, req.UserID)

	review, err := h.reviews.CreateReview(c.Request().Context(), service.ReviewInput{
		Rating:       req.Rating.value,
		Comment:      req.Comment,
		Images:       req.Images,
		UserID:       req.UserID,
		AttractionID: req.AttractionID,
		Verified:     req.Verified,
	})
	if err != nil {
		return writeError(c, h.logger, err, "Failed to create review")
	}
	return c.JSON(http.StatusCreated, review)
}

// update handles PUT /api/reviews, dispatching on the requested action.
func (h *ReviewHandler) update(c echo.Context) error {
	var req reviewUpdateRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	setCaller(c, req.UserID)

	ctx := c.Request().Context()
	var (
		review *domain.Review
		err    error
	)
	switch strings.TrimSpace(req.Action) {
	case reviewActionHelpful:
		review, err = h.reviews.MarkHelpful(ctx, req.ReviewID, req.UserID)
	case reviewActionRespond:
		review, err = h.reviews.Respond(ctx, req.ReviewID, req.UserID, req.Response)
	default:
		err = service.ErrInvalidReviewAction
	}
	if err != nil {
		return writeError(c, h.logger, err, "Failed to update review")
	}
	return c.JSON(http.StatusOK, review)
}

// uploadImage handles POST /api/reviews/images (multipart: image, userId)
func (h *ReviewHandler) uploadImage(c echo.Context) error {
	userID := c.FormValue("userId")
	setCaller(c, userID)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("image upload required"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read upload"))
	}
	defer src.Close()

	url, err := h.images.Upload(c.Request().Context(), userID, service.ReviewImageUpload{
		Reader:      src,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return writeError(c, h.logger, err, "Failed to upload image")
	}
	return c.JSON(http.StatusCreated, util.Data("url", url))
}

// queryInt returns 0 for a missing or malformed value so the service applies
// its default.
func queryInt(c echo.Context, name string) int {
	value, err := strconv.Atoi(strings.TrimSpace(c.QueryParam(name)))
	if err != nil {
		return 0
	}
	return value
}

func nonNilReviews(reviews []domain.Review) []domain.Review {
	if reviews == nil {
		return []domain.Review{}
	}
	return reviews
}

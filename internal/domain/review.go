package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Review struct {
	ID           string    `db:"id" json:"id"`
	Rating       int       `db:"rating" json:"rating"`
	Comment      string    `db:"comment" json:"comment"`
	Images       ImageList `db:"images" json:"images,omitempty"`
	UserID       string    `db:"user_id" json:"userId"`
	AttractionID string    `db:"attraction_id" json:"attractionId"`
	Verified     bool      `db:"verified" json:"verified"`
	Helpful      int       `db:"helpful" json:"helpful"`
	Response     *string   `db:"response" json:"response,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`

	AuthorName      *string `db:"author_name" json:"-"`
	AuthorAvatar    *string `db:"author_avatar" json:"-"`
	AttractionName  *string `db:"attraction_name" json:"-"`
	AttractionImage *string `db:"attraction_image" json:"-"`

	User       *ReviewAuthor     `db:"-" json:"user,omitempty"`
	Attraction *ReviewAttraction `db:"-" json:"attraction,omitempty"`
}

// ReviewAuthor is the display subset of the reviewing user.
type ReviewAuthor struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// ReviewAttraction is the display subset of the reviewed attraction.
type ReviewAttraction struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
}

// ExpandUser fills User from the joined author columns.
func (r *Review) ExpandUser() {
	author := &ReviewAuthor{ID: r.UserID, Avatar: r.AuthorAvatar}
	if r.AuthorName != nil {
		author.Name = *r.AuthorName
	}
	r.User = author
}

// ExpandAttraction fills Attraction from the joined attraction columns. The
// image is only included when withImage is set.
func (r *Review) ExpandAttraction(withImage bool) {
	attraction := &ReviewAttraction{ID: r.AttractionID}
	if r.AttractionName != nil {
		attraction.Name = *r.AttractionName
	}
	if withImage {
		attraction.Image = r.AttractionImage
	}
	r.Attraction = attraction
}

// ImageList is an ordered list of image references stored as a JSON
// document. An empty list is stored as NULL.
type ImageList []string

func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	buf, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

func (l *ImageList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("domain: cannot scan %T into ImageList", src)
	}
	if len(raw) == 0 {
		*l = nil
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("domain: decode image list: %w", err)
	}
	*l = items
	return nil
}

type RatingSummary struct {
	AttractionID  string         `json:"attractionId"`
	AverageRating float64        `json:"averageRating"`
	TotalReviews  int            `json:"totalReviews"`
	RatingCounts  map[string]int `json:"ratingCounts"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type ReviewPage struct {
	Reviews    []Review
	Pagination Pagination
}

// NewPagination derives the page count for a result set.
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

package service

import (
	"strings"
	"unicode/utf8"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
)

const (
	MsgRatingRange      = "Rating must be between 1 and 5"
	MsgCommentTooShort  = "Comment must be at least 10 characters long"
	MsgCommentTooLong   = "Comment must be less than 1000 characters"
	MsgReferencesNeeded = "User ID and Attraction ID are required"

	minCommentLength = 10
	maxCommentLength = 1000
)

// ReviewInput is a review submission as received from a caller. Rating and
// Comment are pointers so a missing field can be told apart from a zero value.
type ReviewInput struct {
	Rating       *int
	Comment      *string
	Images       []string
	UserID       string
	AttractionID string
	Verified     *bool
}

// ValidateReview returns the message of every rule the input violates. An
// empty result means the input is valid.
func ValidateReview(input ReviewInput) []string {
	violations := make([]string, 0, 4)

	if input.Rating == nil || *input.Rating < domain.MinRating || *input.Rating > domain.MaxRating {
		violations = append(violations, MsgRatingRange)
	}

	if input.Comment == nil || utf8.RuneCountInString(strings.TrimSpace(*input.Comment)) < minCommentLength {
		violations = append(violations, MsgCommentTooShort)
	}
	if input.Comment != nil && utf8.RuneCountInString(*input.Comment) > maxCommentLength {
		violations = append(violations, MsgCommentTooLong)
	}

	if strings.TrimSpace(input.UserID) == "" || strings.TrimSpace(input.AttractionID) == "" {
		violations = append(violations, MsgReferencesNeeded)
	}

	return violations
}

package service

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrReviewValidation     = errors.New("review validation failed")
	ErrReviewAlreadyExist   = errors.New("you have already reviewed this attraction")
	ErrReviewNotFound       = errors.New("review not found")
	ErrInvalidReviewAction  = errors.New("invalid action")
	ErrAttractionNotFound   = errors.New("attraction not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrAttractionValidation = errors.New("attraction validation failed")
	ErrBookingValidation    = errors.New("booking validation failed")
	ErrImageValidation      = errors.New("image validation failed")
	ErrStorageUnavailable   = errors.New("object storage not configured")
)

// ValidationError carries every violated rule for a payload. It matches the
// sentinel of the payload kind with errors.Is.
type ValidationError struct {
	Kind     error
	Messages []string
}

func newValidationError(kind error, messages []string) *ValidationError {
	return &ValidationError{Kind: kind, Messages: messages}
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
	"github.com/njprem/tokyo_attractions_backend/internal/repository/ports"
)

type AttractionInput struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required,max=100"`
	Location    string   `json:"location" validate:"required,max=200"`
	Price       float64  `json:"price" validate:"gte=0"`
	Duration    string   `json:"duration" validate:"max=100"`
	Image       string   `json:"image" validate:"omitempty,url"`
	Tags        []string `json:"tags" validate:"omitempty,dive,required"`
}

type AttractionService struct {
	attractions ports.AttractionRepository
	validator   *payloadValidator
	newID       func() string
}

func NewAttractionService(attractions ports.AttractionRepository) *AttractionService {
	return &AttractionService{
		attractions: attractions,
		validator:   newPayloadValidator(),
		newID:       uuid.NewString,
	}
}

// List returns the catalog ordered by rating, best first.
func (s *AttractionService) List(ctx context.Context) ([]domain.Attraction, error) {
	return s.attractions.List(ctx)
}

func (s *AttractionService) Count(ctx context.Context) (int, error) {
	return s.attractions.Count(ctx)
}

func (s *AttractionService) Get(ctx context.Context, id string) (*domain.Attraction, error) {
	attraction, err := s.attractions.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAttractionNotFound
		}
		return nil, err
	}
	return attraction, nil
}

// Create adds an attraction to the catalog. Rating and review count are
// derived from reviews and always start at zero.
func (s *AttractionService) Create(ctx context.Context, input AttractionInput) (*domain.Attraction, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.Category = strings.TrimSpace(input.Category)
	input.Location = strings.TrimSpace(input.Location)
	input.Duration = strings.TrimSpace(input.Duration)
	input.Image = strings.TrimSpace(input.Image)
	if err := s.validator.check(ErrAttractionValidation, input); err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(input.Tags))
	for _, tag := range input.Tags {
		tags = append(tags, strings.TrimSpace(tag))
	}

	return s.attractions.Create(ctx, &domain.Attraction{
		ID:          s.newID(),
		Name:        input.Name,
		Description: input.Description,
		Category:    strings.ToLower(input.Category),
		Location:    input.Location,
		Price:       input.Price,
		Duration:    input.Duration,
		Image:       input.Image,
		Tags:        tags,
	})
}

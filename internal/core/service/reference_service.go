package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mazadio/auction-system/internal/core/domain"
	"github.com/mazadio/auction-system/internal/core/ports"
)

// ReferenceService serves categories and the static lookup collections.
type ReferenceService struct {
	categories ports.CategoryRepository
	refs       ports.ReferenceRepository
	logger     zerolog.Logger
}

func NewReferenceService(categories ports.CategoryRepository, refs ports.ReferenceRepository, logger zerolog.Logger) *ReferenceService {
	return &ReferenceService{categories: categories, refs: refs, logger: logger}
}

// CreateCategory adds a category. Names are unique; duplicates conflict.
func (s *ReferenceService) CreateCategory(ctx context.Context, name, description string, actor *domain.User) (*domain.Category, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrValidation)
	}

	if existing, err := s.categories.FindByName(ctx, name); err == nil && existing != nil {
		return nil, domain.ErrCategoryExists
	} else if err != nil && !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}

	category := &domain.Category{
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info().Str("category_id", category.ID).Str("name", name).Msg("category created")
	return category, nil
}

func (s *ReferenceService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

// DeleteCategory removes a category (admin-only).
func (s *ReferenceService) DeleteCategory(ctx context.Context, id string, actor *domain.User) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}

func (s *ReferenceService) Tribunals(ctx context.Context) ([]*domain.Tribunal, error) {
	return s.refs.Tribunals(ctx)
}

func (s *ReferenceService) Countries(ctx context.Context) ([]*domain.Country, error) {
	return s.refs.Countries(ctx)
}

func (s *ReferenceService) Cities(ctx context.Context, countryID string) ([]*domain.City, error) {
	return s.refs.Cities(ctx, countryID)
}

func (s *ReferenceService) CreditOrganisms(ctx context.Context) ([]*domain.CreditOrganism, error) {
	return s.refs.CreditOrganisms(ctx)
}

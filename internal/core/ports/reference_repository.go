package ports

import (
	"context"

	"github.com/mazadio/auction-system/internal/core/domain"
)

// CategoryRepository persists auction categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

// ReferenceRepository serves the static lookup collections.
type ReferenceRepository interface {
	Tribunals(ctx context.Context) ([]*domain.Tribunal, error)
	Countries(ctx context.Context) ([]*domain.Country, error)
	Cities(ctx context.Context, countryID string) ([]*domain.City, error)
	CreditOrganisms(ctx context.Context) ([]*domain.CreditOrganism, error)
}

package ports

import (
	"context"

	"github.com/mazadio/auction-system/internal/core/domain"
)

// ListUsersFilter carries the admin user-listing parameters. Admin and
// superadmin accounts are always excluded from the result set.
type ListUsersFilter struct {
	Role   string // optional: filter by canonical role
	Search string // optional: partial match on email, first or last name
	Page   int    // 1-based
	Limit  int
}

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}

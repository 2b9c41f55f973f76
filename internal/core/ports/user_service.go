package ports

import (
	"context"

	"github.com/mazadio/auction-system/internal/core/domain"
)

// ProfilePatch is a partial self-service profile update. Email and role are
// deliberately absent: email is immutable, role changes are admin-only.
type ProfilePatch struct {
	FirstName        *string
	LastName         *string
	PhoneNumber      *string
	Address          *string
	CIN              *string
	TribunalID       *string
	CountryID        *string
	CityID           *string
	ForeignCity      *string
	CreditOrganismID *string
	CommerceRegistry *string
	CompanyName      *string
}

// ListUsersResult is the paginated user listing response.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService covers profile self-service and admin moderation.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, patch ProfilePatch, actor *domain.User) (*domain.User, error)
	// List is admin-only and never includes admin accounts.
	List(ctx context.Context, filter ListUsersFilter, viewer *domain.User) (*ListUsersResult, error)
	// SetRole changes a user's role (admin-only). Raw role strings are
	// parsed through the synonym table.
	SetRole(ctx context.Context, userID, rawRole string, actor *domain.User) (*domain.User, error)
	// SetBlocked blocks or unblocks an account (admin-only).
	SetBlocked(ctx context.Context, userID string, blocked bool, actor *domain.User) (*domain.User, error)
	// SetActive activates or deactivates an account (admin-only). Activation
	// also marks the account verified.
	SetActive(ctx context.Context, userID string, active bool, actor *domain.User) (*domain.User, error)
}

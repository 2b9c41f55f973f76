package ports

import (
	"context"

	"github.com/mazadio/auction-system/internal/core/domain"
)

// RegisterInput carries a self-service registration. Role is the raw string
// from the client and may be a legacy synonym; it is parsed, and defaults to
// encherisseur when empty.
type RegisterInput struct {
	Email            string
	Password         string
	FirstName        string
	LastName         string
	Role             string
	PhoneNumber      string
	Address          string
	CIN              string
	TribunalID       string
	CountryID        string
	CityID           string
	ForeignCity      string
	CreditOrganismID string
	CommerceRegistry string
	CompanyName      string
}

// AuthService is the credential service: it hashes passwords, verifies
// logins and issues signed session tokens.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// ChangePassword verifies the current password before setting a new one.
	ChangePassword(ctx context.Context, user *domain.User, current, next string) error
}

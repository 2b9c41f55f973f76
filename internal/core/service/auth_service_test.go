package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mazadio/auction-system/internal/core/domain"
	"github.com/mazadio/auction-system/internal/core/ports"
)

const testSecret = "test-secret"

func newAuthServiceForTest(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, testSecret, time.Hour, zerolog.Nop())
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password string, role domain.Role, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
		IsVerified:   active,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestRegister(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthServiceForTest(repo)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:     "nadia@example.com",
		Password:  "motdepasse1",
		FirstName: "Nadia",
		LastName:  "El Fassi",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.Role != domain.RoleBidder {
		t.Errorf("role = %s, want default encherisseur", user.Role)
	}
	if user.IsActive || user.IsVerified {
		t.Error("new accounts must start inactive and unverified")
	}
	if user.PasswordHash == "motdepasse1" {
		t.Error("password must be hashed")
	}
}

func TestRegisterAcceptsRoleSynonyms(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthServiceForTest(repo)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "court@example.com",
		Password: "motdepasse1",
		Role:     "المحكمة",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleTribunal {
		t.Errorf("role = %s, want tribunal", user.Role)
	}
}

func TestRegisterRejects(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthServiceForTest(repo)
	seedUser(t, repo, "taken@example.com", "motdepasse1", domain.RoleBidder, true)

	tests := []struct {
		name    string
		input   ports.RegisterInput
		wantErr error
	}{
		{"missing email", ports.RegisterInput{Password: "motdepasse1"}, domain.ErrValidation},
		{"short password", ports.RegisterInput{Email: "a@b.c", Password: "court"}, domain.ErrValidation},
		{"unknown role", ports.RegisterInput{Email: "a@b.c", Password: "motdepasse1", Role: "root"}, domain.ErrUnknownRole},
		{"admin self-grant", ports.RegisterInput{Email: "a@b.c", Password: "motdepasse1", Role: "admin"}, domain.ErrForbidden},
		{"superadmin self-grant", ports.RegisterInput{Email: "a@b.c", Password: "motdepasse1", Role: "superadmin"}, domain.ErrForbidden},
		{"duplicate email", ports.RegisterInput{Email: "taken@example.com", Password: "motdepasse1"}, domain.ErrUserExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tt.input); !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthServiceForTest(repo)
	seeded := seedUser(t, repo, "nadia@example.com", "motdepasse1", domain.RoleBidder, true)

	token, user, err := svc.Login(context.Background(), "nadia@example.com", "motdepasse1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != seeded.ID {
		t.Errorf("user = %s, want %s", user.ID, seeded.ID)
	}
	if user.LastLogin == nil {
		t.Error("last login must be stamped")
	}

	// The token must carry the subject and role and verify with the secret.
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["sub"] != seeded.ID {
		t.Errorf("sub = %v, want %s", claims["sub"], seeded.ID)
	}
	if claims["role"] != string(domain.RoleBidder) {
		t.Errorf("role claim = %v", claims["role"])
	}
}

func TestLoginRejects(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthServiceForTest(repo)
	seedUser(t, repo, "active@example.com", "motdepasse1", domain.RoleBidder, true)
	seedUser(t, repo, "inactive@example.com", "motdepasse1", domain.RoleBidder, false)
	blocked := seedUser(t, repo, "blocked@example.com", "motdepasse1", domain.RoleBidder, true)
	blocked.IsBlocked = true
	_ = repo.Update(context.Background(), blocked)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"unknown email", "ghost@example.com", "motdepasse1", domain.ErrInvalidCredentials},
		{"wrong password", "active@example.com", "faux", domain.ErrInvalidCredentials},
		{"inactive account", "inactive@example.com", "motdepasse1", domain.ErrAccountInactive},
		{"blocked account", "blocked@example.com", "motdepasse1", domain.ErrAccountInactive},
		{"empty credentials", "", "", domain.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Login(context.Background(), tt.email, tt.password); !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthServiceForTest(repo)
	user := seedUser(t, repo, "nadia@example.com", "ancienmdp1", domain.RoleBidder, true)

	if err := svc.ChangePassword(context.Background(), user, "faux", "nouveaumdp1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong current password: want ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), user, "ancienmdp1", "court"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("short new password: want ErrValidation, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user, "ancienmdp1", "nouveaumdp1"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nadia@example.com", "nouveaumdp1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

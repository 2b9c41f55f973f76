package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mazadio/auction-system/internal/core/domain"
	"github.com/mazadio/auction-system/internal/core/ports"
)

// BootstrapAccount is one admin account to provision at startup.
type BootstrapAccount struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role
}

// EnsureAdminAccounts provisions the superadmin/admin accounts once at
// process start. Accounts that already exist are left untouched, so running
// it on every boot is a no-op after the first.
func EnsureAdminAccounts(ctx context.Context, repo ports.UserRepository, accounts []BootstrapAccount, logger zerolog.Logger) error {
	for _, acc := range accounts {
		if acc.Email == "" || acc.Password == "" {
			continue
		}

		_, err := repo.FindByEmail(ctx, acc.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("bootstrap: lookup %s: %w", acc.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("bootstrap: hash password: %w", err)
		}

		now := time.Now().UTC()
		user := &domain.User{
			Email:        acc.Email,
			PasswordHash: string(hash),
			FirstName:    acc.FirstName,
			LastName:     acc.LastName,
			Role:         acc.Role,
			IsActive:     true,
			IsVerified:   true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := repo.Create(ctx, user); err != nil {
			return fmt.Errorf("bootstrap: create %s: %w", acc.Email, err)
		}
		logger.Info().Str("email", acc.Email).Str("role", string(acc.Role)).Msg("bootstrap account created")
	}
	return nil
}

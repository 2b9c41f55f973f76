package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mazadio/auction-system/internal/core/domain"
	"github.com/mazadio/auction-system/internal/core/ports"
)

// UserService covers profile self-service and admin moderation.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile applies a partial profile update. Users edit themselves;
// admins may edit anyone. Email and role are not reachable from here.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, patch ports.ProfilePatch, actor *domain.User) (*domain.User, error) {
	if !actor.CanManage(userID) {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	setIf := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setIf(&user.FirstName, patch.FirstName)
	setIf(&user.LastName, patch.LastName)
	setIf(&user.PhoneNumber, patch.PhoneNumber)
	setIf(&user.Address, patch.Address)
	setIf(&user.CIN, patch.CIN)
	setIf(&user.TribunalID, patch.TribunalID)
	setIf(&user.CountryID, patch.CountryID)
	setIf(&user.CityID, patch.CityID)
	setIf(&user.ForeignCity, patch.ForeignCity)
	setIf(&user.CreditOrganismID, patch.CreditOrganismID)
	setIf(&user.CommerceRegistry, patch.CommerceRegistry)
	setIf(&user.CompanyName, patch.CompanyName)
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns the moderated user listing. Admin accounts never appear in it.
func (s *UserService) List(ctx context.Context, filter ports.ListUsersFilter, viewer *domain.User) (*ports.ListUsersResult, error) {
	if !viewer.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ListUsersResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// SetRole changes a user's role. Only superadmins may grant admin roles.
func (s *UserService) SetRole(ctx context.Context, userID, rawRole string, actor *domain.User) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	role, err := domain.ParseRole(rawRole)
	if err != nil {
		return nil, err
	}
	if (role == domain.RoleAdmin || role == domain.RoleSuperadmin) && !actor.IsSuperadmin() {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Str("role", string(role)).Str("actor_id", actor.ID).Msg("user role updated")
	return user, nil
}

// SetBlocked blocks or unblocks an account. Blocked users are denied access
// everywhere regardless of their is_active flag.
func (s *UserService) SetBlocked(ctx context.Context, userID string, blocked bool, actor *domain.User) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.IsBlocked = blocked
	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Bool("blocked", blocked).Str("actor_id", actor.ID).Msg("user block state updated")
	return user, nil
}

// SetActive activates or deactivates an account. Activation implies the
// account passed verification.
func (s *UserService) SetActive(ctx context.Context, userID string, active bool, actor *domain.User) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.IsActive = active
	if active {
		user.IsVerified = true
	}
	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Bool("active", active).Str("actor_id", actor.ID).Msg("user active state updated")
	return user, nil
}

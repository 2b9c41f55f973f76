package ports

import (
	"context"

	"github.com/mazadio/auction-system/internal/core/domain"
)

// ListDepositsFilter carries the admin listing parameters.
type ListDepositsFilter struct {
	Status    string // optional: filter by review status
	UserID    string // optional: scope to one user
	AuctionID string // optional: scope to one auction
	Search    string // optional: matches deposit id, auction title or username
	Page      int    // 1-based
	Limit     int
}

// DepositRepository defines persistence operations for caution deposits.
type DepositRepository interface {
	Create(ctx context.Context, d *domain.Deposit) error
	FindByID(ctx context.Context, id string) (*domain.Deposit, error)
	// Update persists a review decision.
	Update(ctx context.Context, d *domain.Deposit) error
	// List returns a page ordered by submission date desc, plus the total.
	List(ctx context.Context, filter ListDepositsFilter) ([]*domain.Deposit, int64, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Deposit, error)
	ListByAuction(ctx context.Context, auctionID string) ([]*domain.Deposit, error)
	CountByStatus(ctx context.Context) (*domain.DepositStats, error)
}

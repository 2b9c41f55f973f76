package ports

import (
	"context"

	"github.com/mazadio/auction-system/internal/core/domain"
)

// ListAuctionsFilter carries all query parameters for listing auctions.
type ListAuctionsFilter struct {
	CategoryID string  // optional: filter by category
	Status     string  // optional: filter by lifecycle status
	Type       string  // optional: filter by auction type
	MinPrice   float64 // optional: starting_price >= MinPrice (0 = unset)
	MaxPrice   float64 // optional: starting_price <= MaxPrice (0 = unset)
	Location   string  // optional: case-insensitive substring match
	Search     string  // optional: partial match on title or description
	Featured   *bool   // optional: tri-state featured flag
	Page       int     // 1-based
	Limit      int     // max rows per page (capped by service)
}

// AuctionDetail is an auction plus the derived display data every read path
// needs. HighestBid and TotalBids come from the same persisted snapshot.
type AuctionDetail struct {
	domain.Auction
	HighestBid *float64               `json:"highest_bid"`
	TotalBids  int64                  `json:"total_bids"`
	Category   domain.CategorySummary `json:"category"`
}

// AuctionRepository defines persistence operations for auctions.
type AuctionRepository interface {
	Create(ctx context.Context, a *domain.Auction) error
	FindByID(ctx context.Context, id string) (*domain.Auction, error)
	// FindDetail composes the auction with its bid stats and category summary
	// in a single consistent read.
	FindDetail(ctx context.Context, id string) (*AuctionDetail, error)
	// Replace persists the full mutated aggregate, children included.
	Replace(ctx context.Context, a *domain.Auction) error
	// SetStatus updates only the lifecycle status and the updated_at stamp.
	SetStatus(ctx context.Context, id string, status domain.AuctionStatus) error
	Delete(ctx context.Context, id string) error
	// List returns a page of auctions matching filter and the total count,
	// newest first.
	List(ctx context.Context, filter ListAuctionsFilter) ([]*domain.Auction, int64, error)
}

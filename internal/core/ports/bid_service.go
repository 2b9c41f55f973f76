package ports

import (
	"context"

	"github.com/mazadio/auction-system/internal/core/domain"
)

// ListBidsResult is the paginated bid listing response.
type ListBidsResult struct {
	Items      []*domain.Bid
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ListAuctionBidsResult is the paginated listing of an auction's bids,
// enriched with each bidder's public identity.
type ListAuctionBidsResult struct {
	Items      []*BidWithBidder
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// BidService validates and records bids.
type BidService interface {
	// Place accepts a bid when the auction is active, the window is open and
	// the amount clears the computed minimum. Concurrent bids on the same
	// auction are serialized.
	Place(ctx context.Context, auctionID string, amount float64, bidder *domain.User) (*domain.Bid, error)
	// Highest returns the current winning bid, or domain.ErrBidNotFound.
	Highest(ctx context.Context, auctionID string) (*domain.Bid, error)
	ListForAuction(ctx context.Context, auctionID string, page, limit int) (*ListAuctionBidsResult, error)
	ListForBidder(ctx context.Context, bidderID string, page, limit int) (*ListBidsResult, error)
}

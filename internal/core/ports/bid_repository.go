package ports

import (
	"context"

	"github.com/mazadio/auction-system/internal/core/domain"
)

// BidWithBidder enriches a bid with the bidder's public identity.
type BidWithBidder struct {
	domain.Bid
	BidderFirstName string `json:"bidder_first_name,omitempty"`
	BidderLastName  string `json:"bidder_last_name,omitempty"`
	BidderEmail     string `json:"bidder_email,omitempty"`
}

// BidRepository defines persistence operations for bids. Bids are append-only:
// there is no update and the only delete path is the auction cascade.
type BidRepository interface {
	Create(ctx context.Context, b *domain.Bid) error
	// HighestForAuction returns the winning bid: max amount, ties broken by
	// earliest timestamp. Returns domain.ErrBidNotFound when no bid exists.
	HighestForAuction(ctx context.Context, auctionID string) (*domain.Bid, error)
	// ListByAuction returns a page ordered amount desc, timestamp desc, plus
	// the total count.
	ListByAuction(ctx context.Context, auctionID string, page, limit int) ([]*domain.Bid, int64, error)
	// ListByBidder returns a user's bids newest first, plus the total count.
	ListByBidder(ctx context.Context, bidderID string, page, limit int) ([]*domain.Bid, int64, error)
	FindByID(ctx context.Context, id string) (*domain.Bid, error)
	// DeleteByAuction removes every bid of an auction. Only the auction
	// delete cascade calls this.
	DeleteByAuction(ctx context.Context, auctionID string) error
}

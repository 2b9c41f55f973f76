package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mazadio/auction-system/internal/api/metrics"
	"github.com/mazadio/auction-system/internal/core/domain"
	"github.com/mazadio/auction-system/internal/core/ports"
)

// BidLocker abstracts the per-auction mutex (Redis). Acquire returns false
// when another bid currently holds the auction's lock.
type BidLocker interface {
	Acquire(ctx context.Context, auctionID string) (bool, error)
	Release(ctx context.Context, auctionID string) error
}

// lockRetryDelay is how long a contended bid waits before its single retry.
const lockRetryDelay = 50 * time.Millisecond

// BidService implements the bid acceptance engine.
type BidService struct {
	auctions ports.AuctionRepository
	bids     ports.BidRepository
	users    ports.UserRepository
	lock     BidLocker
	now      func() time.Time
	logger   zerolog.Logger
}

func NewBidService(auctions ports.AuctionRepository, bids ports.BidRepository, users ports.UserRepository, lock BidLocker, logger zerolog.Logger) *BidService {
	return &BidService{
		auctions: auctions,
		bids:     bids,
		users:    users,
		lock:     lock,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger,
	}
}

// Place validates and records a bid. The read-highest/validate/insert
// sequence runs under a per-auction lock so two concurrent bids can never
// both validate against the same highest bid; a contended call is retried
// once before giving up.
func (s *BidService) Place(ctx context.Context, auctionID string, amount float64, bidder *domain.User) (*domain.Bid, error) {
	auction, err := s.auctions.FindByID(ctx, auctionID)
	if err != nil {
		if errors.Is(err, domain.ErrAuctionNotFound) {
			metrics.BidsRejectedTotal.WithLabelValues("not_found").Inc()
		}
		return nil, err
	}

	if auction.Status != domain.StatusActive {
		metrics.BidsRejectedTotal.WithLabelValues("invalid_state").Inc()
		return nil, fmt.Errorf("%w: auction is %s", domain.ErrInvalidState, auction.Status)
	}

	now := s.now()
	if !auction.WindowOpen(now) {
		metrics.BidsRejectedTotal.WithLabelValues("out_of_window").Inc()
		return nil, domain.ErrAuctionWindowClosed
	}

	acquired, err := s.acquireWithRetry(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("place bid: lock: %w", err)
	}
	if !acquired {
		metrics.BidsRejectedTotal.WithLabelValues("contention").Inc()
		return nil, domain.ErrBidContention
	}
	defer func() {
		if err := s.lock.Release(ctx, auctionID); err != nil {
			s.logger.Warn().Err(err).Str("auction_id", auctionID).Msg("failed to release bid lock")
		}
	}()

	var highest *domain.Bid
	highest, err = s.bids.HighestForAuction(ctx, auctionID)
	if err != nil && !errors.Is(err, domain.ErrBidNotFound) {
		return nil, fmt.Errorf("place bid: read highest: %w", err)
	}

	minimum := auction.MinimumBid(highest)
	if amount < minimum {
		metrics.BidsRejectedTotal.WithLabelValues("too_low").Inc()
		// The computed minimum rides in the message for UI feedback.
		return nil, fmt.Errorf("%w: bid must be at least %.2f", domain.ErrBidTooLow, minimum)
	}

	bid := &domain.Bid{
		AuctionID: auctionID,
		BidderID:  bidder.ID,
		Amount:    amount,
		Timestamp: now,
	}
	if err := s.bids.Create(ctx, bid); err != nil {
		s.logger.Error().Err(err).Str("auction_id", auctionID).Msg("failed to record bid")
		return nil, err
	}

	metrics.BidsAcceptedTotal.Inc()
	s.logger.Info().
		Str("auction_id", auctionID).
		Str("bidder_id", bidder.ID).
		Float64("amount", amount).
		Msg("bid accepted")

	return bid, nil
}

// Highest returns the winning bid for an auction. Ties on amount (only
// possible with externally migrated data) resolve to the earliest timestamp;
// the repository contract pins that ordering.
func (s *BidService) Highest(ctx context.Context, auctionID string) (*domain.Bid, error) {
	return s.bids.HighestForAuction(ctx, auctionID)
}

// ListForAuction returns a page of an auction's bids, highest amount first,
// with each bidder's public identity attached.
func (s *BidService) ListForAuction(ctx context.Context, auctionID string, page, limit int) (*ports.ListAuctionBidsResult, error) {
	page, limit = normalizePage(page, limit)
	items, total, err := s.bids.ListByAuction(ctx, auctionID, page, limit)
	if err != nil {
		return nil, err
	}

	bidders := make(map[string]*domain.User, len(items))
	enriched := make([]*ports.BidWithBidder, 0, len(items))
	for _, bid := range items {
		bidder, ok := bidders[bid.BidderID]
		if !ok {
			// A missing account leaves the identity fields blank rather than
			// failing the whole listing.
			bidder, _ = s.users.FindByID(ctx, bid.BidderID)
			bidders[bid.BidderID] = bidder
		}
		item := &ports.BidWithBidder{Bid: *bid}
		if bidder != nil {
			item.BidderFirstName = bidder.FirstName
			item.BidderLastName = bidder.LastName
			item.BidderEmail = bidder.Email
		}
		enriched = append(enriched, item)
	}
	return &ports.ListAuctionBidsResult{Items: enriched, Total: total, Page: page, Limit: limit, TotalPages: totalPages(total, limit)}, nil
}

// ListForBidder returns a page of a user's bids, newest first.
func (s *BidService) ListForBidder(ctx context.Context, bidderID string, page, limit int) (*ports.ListBidsResult, error) {
	page, limit = normalizePage(page, limit)
	items, total, err := s.bids.ListByBidder(ctx, bidderID, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.ListBidsResult{Items: items, Total: total, Page: page, Limit: limit, TotalPages: totalPages(total, limit)}, nil
}

func (s *BidService) acquireWithRetry(ctx context.Context, auctionID string) (bool, error) {
	acquired, err := s.lock.Acquire(ctx, auctionID)
	if err != nil || acquired {
		return acquired, err
	}

	metrics.BidLockRetriesTotal.Inc()
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-time.After(lockRetryDelay):
	}
	return s.lock.Acquire(ctx, auctionID)
}

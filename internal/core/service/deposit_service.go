package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/rs/zerolog"

	"github.com/mazadio/auction-system/internal/api/metrics"
	"github.com/mazadio/auction-system/internal/core/domain"
	"github.com/mazadio/auction-system/internal/core/ports"
)

// DepositService implements the caution review workflow.
type DepositService struct {
	deposits ports.DepositRepository
	auctions ports.AuctionRepository
	blobs    ports.BlobStore
	logger   zerolog.Logger
}

func NewDepositService(deposits ports.DepositRepository, auctions ports.AuctionRepository, blobs ports.BlobStore, logger zerolog.Logger) *DepositService {
	return &DepositService{deposits: deposits, auctions: auctions, blobs: blobs, logger: logger}
}

// Submit records a caution in pending status. Multiple deposits by the same
// user for the same auction are allowed; the admin listing surfaces them.
func (s *DepositService) Submit(ctx context.Context, input ports.SubmitDepositInput, submitter *domain.User) (*domain.Deposit, error) {
	auction, err := s.auctions.FindByID(ctx, input.AuctionID)
	if err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: deposit amount must be positive", domain.ErrValidation)
	}
	if input.Method != domain.MethodBank && input.Method != domain.MethodCard && input.Method != domain.MethodWallet {
		return nil, fmt.Errorf("%w: unknown deposit method %q", domain.ErrValidation, input.Method)
	}

	var receipt string
	if input.Receipt != nil {
		key := path.Join("receipts", input.AuctionID, submitter.ID+"-"+input.ReceiptName)
		receipt, err = s.blobs.Save(ctx, key, input.Receipt)
		if err != nil {
			return nil, fmt.Errorf("store receipt: %w", err)
		}
	}

	deposit := &domain.Deposit{
		UserID:       submitter.ID,
		AuctionID:    input.AuctionID,
		Amount:       input.Amount,
		Method:       input.Method,
		ReceiptFile:  receipt,
		Status:       domain.DepositPending,
		AuctionTitle: auction.Title,
		Username:     submitter.FullName(),
		SubmittedAt:  time.Now().UTC(),
	}

	if err := s.deposits.Create(ctx, deposit); err != nil {
		s.logger.Error().Err(err).Str("auction_id", input.AuctionID).Msg("failed to create deposit")
		return nil, err
	}

	s.logger.Info().
		Str("deposit_id", deposit.ID).
		Str("auction_id", input.AuctionID).
		Str("user_id", submitter.ID).
		Msg("deposit submitted")
	return deposit, nil
}

// Review applies an admin decision. Rejection always requires an explanatory
// message. An already-decided deposit may be re-reviewed; the review stamp is
// overwritten each time.
func (s *DepositService) Review(ctx context.Context, depositID string, input ports.ReviewDepositInput, reviewer *domain.User) (*domain.Deposit, error) {
	if !reviewer.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	deposit, err := s.deposits.FindByID(ctx, depositID)
	if err != nil {
		return nil, err
	}

	if !input.Status.IsDecision() {
		return nil, fmt.Errorf("%w: review status must be confirmed or rejected", domain.ErrValidation)
	}
	if input.Status == domain.DepositRejected && input.AdminMessage == "" {
		return nil, fmt.Errorf("%w: an explanatory message is required to reject a deposit", domain.ErrValidation)
	}

	now := time.Now().UTC()
	deposit.Status = input.Status
	deposit.AdminMessage = input.AdminMessage
	deposit.ReviewedAt = &now
	deposit.ReviewedBy = reviewer.ID

	if err := s.deposits.Update(ctx, deposit); err != nil {
		s.logger.Error().Err(err).Str("deposit_id", depositID).Msg("failed to update deposit")
		return nil, err
	}

	metrics.DepositsReviewedTotal.WithLabelValues(string(input.Status)).Inc()
	s.logger.Info().
		Str("deposit_id", depositID).
		Str("status", string(input.Status)).
		Str("reviewer_id", reviewer.ID).
		Msg("deposit reviewed")
	return deposit, nil
}

// ListForAdmin returns the filtered, enriched deposit listing (admin-only).
func (s *DepositService) ListForAdmin(ctx context.Context, filter ports.ListDepositsFilter, viewer *domain.User) (*ports.ListDepositsResult, error) {
	if !viewer.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.deposits.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ListDepositsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// ListForUser returns the caller's own deposits.
func (s *DepositService) ListForUser(ctx context.Context, user *domain.User) ([]*domain.Deposit, error) {
	return s.deposits.ListByUser(ctx, user.ID)
}

// Stats returns the per-status counts for the admin dashboard.
func (s *DepositService) Stats(ctx context.Context, viewer *domain.User) (*domain.DepositStats, error) {
	if !viewer.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.deposits.CountByStatus(ctx)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mazadio/auction-system/internal/api/metrics"
	"github.com/mazadio/auction-system/internal/core/domain"
	"github.com/mazadio/auction-system/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// AuctionService implements the auction lifecycle engine.
type AuctionService struct {
	repo    ports.AuctionRepository
	bids    ports.BidRepository
	blobs   ports.BlobStore
	logger  zerolog.Logger
}

func NewAuctionService(repo ports.AuctionRepository, bids ports.BidRepository, blobs ports.BlobStore, logger zerolog.Logger) *AuctionService {
	return &AuctionService{repo: repo, bids: bids, blobs: blobs, logger: logger}
}

// Create validates and persists a new listing in draft status.
func (s *AuctionService) Create(ctx context.Context, input ports.CreateAuctionInput, creator *domain.User) (*domain.Auction, error) {
	increment := input.IncrementAmount
	if increment == 0 {
		increment = domain.DefaultIncrement
	}
	auctionType := input.Type
	if auctionType == "" {
		auctionType = domain.TypeNormal
	}

	now := time.Now().UTC()
	auction := &domain.Auction{
		Title:           input.Title,
		CategoryID:      input.CategoryID,
		CreatorID:       creator.ID,
		Description:     input.Description,
		StartingPrice:   input.StartingPrice,
		ReservePrice:    input.ReservePrice,
		IncrementAmount: increment,
		Location:        input.Location,
		SellerName:      input.SellerName,
		TermsConditions: input.TermsConditions,
		ProductHistory:  input.ProductHistory,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		Type:            auctionType,
		Status:          domain.StatusDraft,
		Featured:        input.Featured,
		Specifications:  input.Specifications,
		Images:          input.Images,
		Documents:       input.Documents,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := auction.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, auction); err != nil {
		s.logger.Error().Err(err).Msg("failed to create auction")
		return nil, err
	}

	metrics.AuctionsCreatedTotal.WithLabelValues(string(auction.Type)).Inc()
	s.logger.Info().Str("auction_id", auction.ID).Str("creator_id", creator.ID).Msg("auction created")
	return auction, nil
}

// Get returns the detail view with derived bid stats. Private documents are
// silently filtered for viewers who cannot manage the auction.
func (s *AuctionService) Get(ctx context.Context, id string, viewer *domain.User) (*ports.AuctionDetail, error) {
	detail, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Documents = detail.Auction.VisibleDocuments(viewer)
	return detail, nil
}

// List returns a filtered page of listings, newest first.
func (s *AuctionService) List(ctx context.Context, filter ports.ListAuctionsFilter) (*ports.ListAuctionsResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ListAuctionsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// Update applies a partial mutation. Only the creator or an admin may update,
// and only while the auction is still draft or scheduled. Fields absent from
// the payload are untouched; fields sent as null are cleared when optional.
// A specification list, when present, fully replaces the existing set.
func (s *AuctionService) Update(ctx context.Context, id string, patch ports.AuctionPatch, actor *domain.User) (*ports.AuctionDetail, error) {
	auction, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(auction.CreatorID) {
		return nil, domain.ErrForbidden
	}
	if !auction.Status.Mutable() {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrInvalidState, auction.Status)
	}

	if err := applyPatch(auction, patch); err != nil {
		return nil, err
	}

	// Re-validate with the merged result; a patch may move one date only.
	if err := auction.Validate(); err != nil {
		return nil, err
	}

	auction.UpdatedAt = time.Now().UTC()
	if err := s.repo.Replace(ctx, auction); err != nil {
		s.logger.Error().Err(err).Str("auction_id", id).Msg("failed to update auction")
		return nil, err
	}

	s.logger.Info().Str("auction_id", id).Str("actor_id", actor.ID).Msg("auction updated")
	return s.repo.FindDetail(ctx, id)
}

// UpdateStatus applies an explicit lifecycle transition under the ownership
// rule and the transition table. No transition ever happens on a timer here;
// scheduled→active and active→closed are driven by an external scheduler
// calling this endpoint.
func (s *AuctionService) UpdateStatus(ctx context.Context, id string, next domain.AuctionStatus, actor *domain.User) (*domain.Auction, error) {
	auction, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(auction.CreatorID) {
		return nil, domain.ErrForbidden
	}
	if !next.IsKnown() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, next)
	}
	if !auction.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, auction.Status, next)
	}

	if err := s.repo.SetStatus(ctx, id, next); err != nil {
		s.logger.Error().Err(err).Str("auction_id", id).Msg("failed to update auction status")
		return nil, err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(auction.Status), string(next)).Inc()
	s.logger.Info().
		Str("auction_id", id).
		Str("from", string(auction.Status)).
		Str("to", string(next)).
		Msg("auction status updated")

	auction.Status = next
	auction.UpdatedAt = time.Now().UTC()
	return auction, nil
}

// Delete removes a draft or cancelled auction together with its owned
// children. Embedded specifications, images and documents go with the
// document; bids are removed explicitly. Stored files are purged afterwards
// on a best-effort basis and never fail the delete.
func (s *AuctionService) Delete(ctx context.Context, id string, actor *domain.User) error {
	auction, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(auction.CreatorID) {
		return domain.ErrForbidden
	}
	if !auction.Status.Deletable() {
		return fmt.Errorf("%w: only draft or cancelled auctions can be deleted, status is %s", domain.ErrInvalidState, auction.Status)
	}

	if err := s.bids.DeleteByAuction(ctx, id); err != nil {
		return fmt.Errorf("delete auction bids: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.blobs.RemovePrefix(ctx, "auctions/"+id); err != nil {
		s.logger.Warn().Err(err).Str("auction_id", id).Msg("failed to purge auction files")
	}

	s.logger.Info().Str("auction_id", id).Str("actor_id", actor.ID).Msg("auction deleted")
	return nil
}

// applyPatch copies present fields onto the aggregate. Required fields reject
// explicit nulls; optional fields treat them as clears.
func applyPatch(a *domain.Auction, p ports.AuctionPatch) error {
	type required struct {
		key string
		set func()
		ok  bool
	}
	reqs := []required{
		{"title", func() { a.Title = *p.Title }, p.Title != nil},
		{"category_id", func() { a.CategoryID = *p.CategoryID }, p.CategoryID != nil},
		{"starting_price", func() { a.StartingPrice = *p.StartingPrice }, p.StartingPrice != nil},
		{"increment_amount", func() { a.IncrementAmount = *p.IncrementAmount }, p.IncrementAmount != nil},
		{"seller_name", func() { a.SellerName = *p.SellerName }, p.SellerName != nil},
		{"start_date", func() { a.StartDate = *p.StartDate }, p.StartDate != nil},
		{"end_date", func() { a.EndDate = *p.EndDate }, p.EndDate != nil},
		{"auction_type", func() { a.Type = *p.Type }, p.Type != nil},
		{"featured", func() { a.Featured = *p.Featured }, p.Featured != nil},
	}
	for _, r := range reqs {
		if !p.Has(r.key) {
			continue
		}
		if !r.ok {
			return fmt.Errorf("%w: %s cannot be null", domain.ErrValidation, r.key)
		}
		r.set()
	}

	// Optional fields: present-null clears.
	if p.Has("description") {
		a.Description = strOrEmpty(p.Description)
	}
	if p.Has("reserve_price") {
		a.ReservePrice = p.ReservePrice
	}
	if p.Has("location") {
		a.Location = strOrEmpty(p.Location)
	}
	if p.Has("terms_conditions") {
		a.TermsConditions = strOrEmpty(p.TermsConditions)
	}
	if p.Has("product_history") {
		a.ProductHistory = strOrEmpty(p.ProductHistory)
	}
	if p.Has("start_time") {
		a.StartTime = strOrEmpty(p.StartTime)
	}
	if p.Has("end_time") {
		a.EndTime = strOrEmpty(p.EndTime)
	}
	if p.Has("specifications") {
		a.Specifications = p.Specifications
	}
	return nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}

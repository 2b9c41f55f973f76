package ports

import (
	"context"
	"time"

	"github.com/mazadio/auction-system/internal/core/domain"
)

// CreateAuctionInput carries all data needed to create a listing.
type CreateAuctionInput struct {
	Title           string
	CategoryID      string
	Description     string
	StartingPrice   float64
	ReservePrice    *float64
	IncrementAmount float64 // 0 means apply domain.DefaultIncrement
	Location        string
	SellerName      string
	TermsConditions string
	ProductHistory  string
	StartDate       time.Time
	EndDate         time.Time
	StartTime       string // display-only HH:MM
	EndTime         string // display-only HH:MM
	Type            domain.AuctionType
	Featured        bool
	Specifications  []domain.Specification
	Images          []domain.Image
	Documents       []domain.Document
}

// AuctionPatch is a partial update. Every field is a pointer; whether a field
// was present in the payload at all is recorded in Fields, so "not sent" and
// "explicitly cleared" stay distinguishable for the optional ones.
type AuctionPatch struct {
	Title           *string
	CategoryID      *string
	Description     *string
	StartingPrice   *float64
	ReservePrice    *float64
	IncrementAmount *float64
	Location        *string
	SellerName      *string
	TermsConditions *string
	ProductHistory  *string
	StartDate       *time.Time
	EndDate         *time.Time
	StartTime       *string
	EndTime         *string
	Type            *domain.AuctionType
	Featured        *bool
	// Specifications, when present, fully replaces the auction's set.
	Specifications []domain.Specification

	// Fields holds the JSON keys present in the payload.
	Fields map[string]struct{}
}

// Has reports whether the named key appeared in the update payload.
func (p *AuctionPatch) Has(field string) bool {
	_, ok := p.Fields[field]
	return ok
}

// ListAuctionsResult is the paginated listing response.
type ListAuctionsResult struct {
	Items      []*domain.Auction
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AuctionService owns the auction lifecycle: creation, guarded mutation,
// status transitions, and deletion with cascading child cleanup.
type AuctionService interface {
	Create(ctx context.Context, input CreateAuctionInput, creator *domain.User) (*domain.Auction, error)
	Get(ctx context.Context, id string, viewer *domain.User) (*AuctionDetail, error)
	List(ctx context.Context, filter ListAuctionsFilter) (*ListAuctionsResult, error)
	Update(ctx context.Context, id string, patch AuctionPatch, actor *domain.User) (*AuctionDetail, error)
	UpdateStatus(ctx context.Context, id string, next domain.AuctionStatus, actor *domain.User) (*domain.Auction, error)
	Delete(ctx context.Context, id string, actor *domain.User) error
}

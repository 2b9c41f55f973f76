package handler

import (
	"time"

	"github.com/mazadio/auction-system/internal/core/domain"
)

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// --- Request types ---

type specificationRequest struct {
	Property string `json:"property" validate:"required"`
	Value    string `json:"value"`
}

type imageRequest struct {
	URL      string `json:"url" validate:"required"`
	Position int    `json:"position"`
	IsMain   bool   `json:"is_main"`
}

type documentRequest struct {
	Name     string `json:"name" validate:"required"`
	URL      string `json:"url" validate:"required"`
	IsPublic bool   `json:"is_public"`
}

type createAuctionRequest struct {
	Title           string                 `json:"title" validate:"required"`
	CategoryID      string                 `json:"category_id" validate:"required"`
	Description     string                 `json:"description"`
	StartingPrice   float64                `json:"starting_price" validate:"required,gt=0"`
	ReservePrice    *float64               `json:"reserve_price"`
	IncrementAmount float64                `json:"increment_amount"`
	Location        string                 `json:"location"`
	SellerName      string                 `json:"seller_name"`
	TermsConditions string                 `json:"terms_conditions"`
	ProductHistory  string                 `json:"product_history"`
	StartDate       time.Time              `json:"start_date" validate:"required"`
	EndDate         time.Time              `json:"end_date" validate:"required"`
	StartTime       string                 `json:"start_time"`
	EndTime         string                 `json:"end_time"`
	Type            string                 `json:"auction_type"`
	Featured        bool                   `json:"featured"`
	Specifications  []specificationRequest `json:"specifications"`
	Images          []imageRequest         `json:"images"`
	Documents       []documentRequest      `json:"documents"`
}

// updateAuctionRequest mirrors createAuctionRequest with every field optional.
// Which keys were actually sent is recovered separately from the raw payload.
type updateAuctionRequest struct {
	Title           *string                `json:"title"`
	CategoryID      *string                `json:"category_id"`
	Description     *string                `json:"description"`
	StartingPrice   *float64               `json:"starting_price"`
	ReservePrice    *float64               `json:"reserve_price"`
	IncrementAmount *float64               `json:"increment_amount"`
	Location        *string                `json:"location"`
	SellerName      *string                `json:"seller_name"`
	TermsConditions *string                `json:"terms_conditions"`
	ProductHistory  *string                `json:"product_history"`
	StartDate       *time.Time             `json:"start_date"`
	EndDate         *time.Time             `json:"end_date"`
	StartTime       *string                `json:"start_time"`
	EndTime         *string                `json:"end_time"`
	Type            *string                `json:"auction_type"`
	Featured        *bool                  `json:"featured"`
	Specifications  []specificationRequest `json:"specifications"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// --- Response types ---

type auctionDetailResponse struct {
	domain.Auction
	HighestBid *float64               `json:"highest_bid,omitempty"`
	TotalBids  int64                  `json:"total_bids"`
	Category   domain.CategorySummary `json:"category"`
}

type listAuctionsResponse struct {
	Data       []*domain.Auction  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

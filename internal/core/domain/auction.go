package domain

import (
	"fmt"
	"time"
)

// AuctionStatus represents the lifecycle state of an auction.
type AuctionStatus string

const (
	StatusDraft     AuctionStatus = "draft"
	StatusScheduled AuctionStatus = "scheduled"
	StatusActive    AuctionStatus = "active"
	StatusClosed    AuctionStatus = "closed"
	StatusCancelled AuctionStatus = "cancelled"
	StatusSold      AuctionStatus = "sold"
)

// AuctionType distinguishes the commercial flavour of a listing.
type AuctionType string

const (
	TypeNormal   AuctionType = "normal"
	TypeFlash    AuctionType = "flash"
	TypeReserved AuctionType = "reserved"
	TypePrivate  AuctionType = "private"
)

// validTransitions defines the allowed state machine transitions.
// cancelled and sold are terminal. Transitions are always actor-driven;
// nothing in this package moves an auction on a timer.
var validTransitions = map[AuctionStatus][]AuctionStatus{
	StatusDraft:     {StatusScheduled, StatusCancelled},
	StatusScheduled: {StatusActive, StatusCancelled},
	StatusActive:    {StatusClosed, StatusCancelled},
	StatusClosed:    {StatusSold},
	StatusCancelled: {},
	StatusSold:      {},
}

// CanTransitionTo reports whether moving from s to next is a valid transition.
func (s AuctionStatus) CanTransitionTo(next AuctionStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsKnown reports whether s is one of the declared statuses.
func (s AuctionStatus) IsKnown() bool {
	_, ok := validTransitions[s]
	return ok
}

// Mutable reports whether core fields (pricing, dates, type) may still change.
func (s AuctionStatus) Mutable() bool {
	return s == StatusDraft || s == StatusScheduled
}

// Deletable reports whether the auction may be removed entirely.
func (s AuctionStatus) Deletable() bool {
	return s == StatusDraft || s == StatusCancelled
}

// Specification is a name/value attribute of the auctioned item.
// Names are unique within one auction.
type Specification struct {
	Property string `json:"property" bson:"property"`
	Value    string `json:"value" bson:"value"`
}

// Image is a picture attached to an auction. At most one is the main image.
type Image struct {
	URL      string `json:"url" bson:"url"`
	Position int    `json:"position" bson:"position"`
	IsMain   bool   `json:"is_main" bson:"is_main"`
}

// Document is a file attached to an auction. Private documents are only
// visible to the creator and admins.
type Document struct {
	Name     string `json:"name" bson:"name"`
	URL      string `json:"url" bson:"url"`
	IsPublic bool   `json:"is_public" bson:"is_public"`
}

// Auction is the aggregate root of a listing. Specifications, images and
// documents are owned child collections; they live and die with the auction.
type Auction struct {
	ID         string `json:"id" bson:"_id,omitempty"`
	Title      string `json:"title" bson:"title"`
	CategoryID string `json:"category_id" bson:"category_id"`
	CreatorID  string `json:"creator_id" bson:"creator_id"`

	Description     string   `json:"description,omitempty" bson:"description,omitempty"`
	StartingPrice   float64  `json:"starting_price" bson:"starting_price"`
	ReservePrice    *float64 `json:"reserve_price,omitempty" bson:"reserve_price,omitempty"`
	IncrementAmount float64  `json:"increment_amount" bson:"increment_amount"`
	Location        string   `json:"location,omitempty" bson:"location,omitempty"`
	SellerName      string   `json:"seller_name" bson:"seller_name"`
	TermsConditions string   `json:"terms_conditions,omitempty" bson:"terms_conditions,omitempty"`
	ProductHistory  string   `json:"product_history,omitempty" bson:"product_history,omitempty"`

	StartDate time.Time `json:"start_date" bson:"start_date"`
	EndDate   time.Time `json:"end_date" bson:"end_date"`
	// Display-only wall-clock hints in HH:MM, not used by any rule.
	StartTime string `json:"start_time,omitempty" bson:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty" bson:"end_time,omitempty"`

	Type     AuctionType   `json:"auction_type" bson:"auction_type"`
	Status   AuctionStatus `json:"auction_status" bson:"auction_status"`
	Featured bool          `json:"featured" bson:"featured"`

	Specifications []Specification `json:"specifications" bson:"specifications"`
	Images         []Image         `json:"images" bson:"images"`
	Documents      []Document      `json:"documents" bson:"documents"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// DefaultIncrement is applied when a listing is created without an explicit
// increment amount.
const DefaultIncrement = 1.0

// Validate checks the creation-time invariants of a listing.
func (a *Auction) Validate() error {
	if a.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if a.CategoryID == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if a.StartingPrice <= 0 {
		return fmt.Errorf("%w: starting price must be positive", ErrValidation)
	}
	if a.IncrementAmount <= 0 {
		return fmt.Errorf("%w: increment amount must be positive", ErrValidation)
	}
	if !a.EndDate.After(a.StartDate) {
		return fmt.Errorf("%w: end date must be after start date", ErrValidation)
	}
	if err := validateSpecifications(a.Specifications); err != nil {
		return err
	}
	return nil
}

// WindowOpen reports whether now falls inside the bidding window.
func (a *Auction) WindowOpen(now time.Time) bool {
	return !now.Before(a.StartDate) && !now.After(a.EndDate)
}

// MinimumBid computes the lowest acceptable bid amount given the current
// highest bid, or the starting price when no bid exists yet.
func (a *Auction) MinimumBid(highest *Bid) float64 {
	if highest == nil {
		return a.StartingPrice
	}
	return highest.Amount + a.IncrementAmount
}

// VisibleDocuments filters the document list for a viewer. Private documents
// are silently excluded for anyone who cannot manage the auction; anonymous
// viewers only see public ones.
func (a *Auction) VisibleDocuments(viewer *User) []Document {
	if viewer != nil && viewer.CanManage(a.CreatorID) {
		return a.Documents
	}
	docs := make([]Document, 0, len(a.Documents))
	for _, d := range a.Documents {
		if d.IsPublic {
			docs = append(docs, d)
		}
	}
	return docs
}

func validateSpecifications(specs []Specification) error {
	seen := make(map[string]struct{}, len(specs))
	for _, s := range specs {
		if s.Property == "" {
			return fmt.Errorf("%w: specification property is required", ErrValidation)
		}
		if _, dup := seen[s.Property]; dup {
			return fmt.Errorf("%w: duplicate specification %q", ErrValidation, s.Property)
		}
		seen[s.Property] = struct{}{}
	}
	return nil
}

package domain

import (
	"errors"
	"testing"
	"time"
)

func TestCanTransitionTo(t *testing.T) {
	all := []AuctionStatus{StatusDraft, StatusScheduled, StatusActive, StatusClosed, StatusCancelled, StatusSold}

	allowed := map[AuctionStatus]map[AuctionStatus]bool{
		StatusDraft:     {StatusScheduled: true, StatusCancelled: true},
		StatusScheduled: {StatusActive: true, StatusCancelled: true},
		StatusActive:    {StatusClosed: true, StatusCancelled: true},
		StatusClosed:    {StatusSold: true},
		StatusCancelled: {},
		StatusSold:      {},
	}

	// Exhaustive check over every ordered pair: exactly the allowed edges pass.
	for _, from := range all {
		for _, to := range all {
			got := from.CanTransitionTo(to)
			want := allowed[from][to]
			if got != want {
				t.Errorf("%s -> %s: got %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	all := []AuctionStatus{StatusDraft, StatusScheduled, StatusActive, StatusClosed, StatusCancelled, StatusSold}
	for _, to := range all {
		if StatusCancelled.CanTransitionTo(to) {
			t.Errorf("cancelled must be terminal, allows -> %s", to)
		}
		if StatusSold.CanTransitionTo(to) {
			t.Errorf("sold must be terminal, allows -> %s", to)
		}
	}
}

func TestStatusPredicates(t *testing.T) {
	if !StatusDraft.Mutable() || !StatusScheduled.Mutable() {
		t.Error("draft and scheduled must be mutable")
	}
	for _, s := range []AuctionStatus{StatusActive, StatusClosed, StatusCancelled, StatusSold} {
		if s.Mutable() {
			t.Errorf("%s must not be mutable", s)
		}
	}

	if !StatusDraft.Deletable() || !StatusCancelled.Deletable() {
		t.Error("draft and cancelled must be deletable")
	}
	for _, s := range []AuctionStatus{StatusScheduled, StatusActive, StatusClosed, StatusSold} {
		if s.Deletable() {
			t.Errorf("%s must not be deletable", s)
		}
	}

	if AuctionStatus("archived").IsKnown() {
		t.Error("unknown status must not be IsKnown")
	}
}

func validAuction() *Auction {
	return &Auction{
		Title:           "Saisie immobilière lot 14",
		CategoryID:      "cat-1",
		StartingPrice:   1000,
		IncrementAmount: 50,
		StartDate:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC),
	}
}

func TestAuctionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Auction)
		wantErr bool
	}{
		{"valid", func(a *Auction) {}, false},
		{"missing title", func(a *Auction) { a.Title = "" }, true},
		{"missing category", func(a *Auction) { a.CategoryID = "" }, true},
		{"zero price", func(a *Auction) { a.StartingPrice = 0 }, true},
		{"negative price", func(a *Auction) { a.StartingPrice = -5 }, true},
		{"zero increment", func(a *Auction) { a.IncrementAmount = 0 }, true},
		{"end before start", func(a *Auction) { a.EndDate = a.StartDate.Add(-time.Hour) }, true},
		{"end equals start", func(a *Auction) { a.EndDate = a.StartDate }, true},
		{"duplicate spec", func(a *Auction) {
			a.Specifications = []Specification{{Property: "surface", Value: "80m2"}, {Property: "surface", Value: "82m2"}}
		}, true},
		{"unnamed spec", func(a *Auction) {
			a.Specifications = []Specification{{Property: "", Value: "x"}}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAuction()
			tt.mutate(a)
			err := a.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("want ErrValidation, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestWindowOpen(t *testing.T) {
	a := validAuction()

	if a.WindowOpen(a.StartDate.Add(-time.Minute)) {
		t.Error("window must be closed before start date")
	}
	if !a.WindowOpen(a.StartDate) {
		t.Error("window must be open exactly at start date")
	}
	if !a.WindowOpen(a.StartDate.Add(24 * time.Hour)) {
		t.Error("window must be open inside the range")
	}
	if !a.WindowOpen(a.EndDate) {
		t.Error("window must be open exactly at end date")
	}
	if a.WindowOpen(a.EndDate.Add(time.Second)) {
		t.Error("window must be closed after end date")
	}
}

func TestMinimumBid(t *testing.T) {
	a := validAuction()

	if got := a.MinimumBid(nil); got != a.StartingPrice {
		t.Errorf("no bids: minimum = %v, want starting price %v", got, a.StartingPrice)
	}

	highest := &Bid{Amount: 1200}
	if got := a.MinimumBid(highest); got != 1250 {
		t.Errorf("minimum = %v, want 1250", got)
	}
}

func TestVisibleDocuments(t *testing.T) {
	a := validAuction()
	a.CreatorID = "owner-1"
	a.Documents = []Document{
		{Name: "cahier des charges", URL: "/d/1", IsPublic: true},
		{Name: "jugement", URL: "/d/2", IsPublic: false},
	}

	owner := &User{ID: "owner-1", Role: RoleTribunal}
	admin := &User{ID: "a-1", Role: RoleAdmin}
	bidder := &User{ID: "b-1", Role: RoleBidder}

	if got := len(a.VisibleDocuments(owner)); got != 2 {
		t.Errorf("owner sees %d documents, want 2", got)
	}
	if got := len(a.VisibleDocuments(admin)); got != 2 {
		t.Errorf("admin sees %d documents, want 2", got)
	}
	if got := a.VisibleDocuments(bidder); len(got) != 1 || !got[0].IsPublic {
		t.Errorf("bidder must only see public documents, got %v", got)
	}
	if got := a.VisibleDocuments(nil); len(got) != 1 {
		t.Errorf("anonymous viewer sees %d documents, want 1", len(got))
	}
}

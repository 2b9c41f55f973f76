package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mazadio/auction-system/internal/core/domain"
	"github.com/mazadio/auction-system/internal/core/ports"
)

func depositFixture(t *testing.T) (*DepositService, *stubDepositRepo, *stubBlobStore, *domain.Auction) {
	t.Helper()
	auctions := newStubAuctionRepo()
	deposits := newStubDepositRepo()
	blobs := newStubBlobStore()

	auction := &domain.Auction{
		Title:           "Terrain agricole lot 3",
		CategoryID:      "cat-1",
		CreatorID:       "tribunal-1",
		StartingPrice:   100000,
		IncrementAmount: 1000,
		StartDate:       time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
		Status:          domain.StatusScheduled,
	}
	_ = auctions.Create(context.Background(), auction)

	return NewDepositService(deposits, auctions, blobs, zerolog.Nop()), deposits, blobs, auction
}

func TestSubmitDeposit(t *testing.T) {
	svc, _, blobs, auction := depositFixture(t)
	submitter := &domain.User{ID: "bidder-1", FirstName: "Nadia", LastName: "El Fassi", Role: domain.RoleBidder}

	deposit, err := svc.Submit(context.Background(), ports.SubmitDepositInput{
		AuctionID:   auction.ID,
		Amount:      10000,
		Method:      domain.MethodBank,
		ReceiptName: "recu.pdf",
		Receipt:     strings.NewReader("pdf-bytes"),
	}, submitter)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if deposit.Status != domain.DepositPending {
		t.Errorf("status = %s, want pending", deposit.Status)
	}
	if deposit.AuctionTitle != auction.Title {
		t.Errorf("auction title not denormalized: %q", deposit.AuctionTitle)
	}
	if deposit.Username != "Nadia El Fassi" {
		t.Errorf("username not denormalized: %q", deposit.Username)
	}
	if deposit.ReceiptFile == "" {
		t.Error("receipt handle must be recorded")
	}
	if len(blobs.saved) != 1 {
		t.Errorf("receipt must be stored, saved=%d", len(blobs.saved))
	}
}

func TestSubmitDepositValidation(t *testing.T) {
	svc, _, _, auction := depositFixture(t)
	submitter := &domain.User{ID: "bidder-1"}

	_, err := svc.Submit(context.Background(), ports.SubmitDepositInput{AuctionID: "missing", Amount: 100, Method: domain.MethodBank}, submitter)
	if !errors.Is(err, domain.ErrAuctionNotFound) {
		t.Fatalf("want ErrAuctionNotFound, got %v", err)
	}

	_, err = svc.Submit(context.Background(), ports.SubmitDepositInput{AuctionID: auction.ID, Amount: 0, Method: domain.MethodBank}, submitter)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("zero amount: want ErrValidation, got %v", err)
	}

	_, err = svc.Submit(context.Background(), ports.SubmitDepositInput{AuctionID: auction.ID, Amount: 100, Method: "cheque"}, submitter)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown method: want ErrValidation, got %v", err)
	}
}

func TestSubmitAllowsDuplicates(t *testing.T) {
	svc, deposits, _, auction := depositFixture(t)
	submitter := &domain.User{ID: "bidder-1", FirstName: "Nadia", LastName: "El Fassi"}

	input := ports.SubmitDepositInput{AuctionID: auction.ID, Amount: 5000, Method: domain.MethodCard}
	if _, err := svc.Submit(context.Background(), input, submitter); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.Submit(context.Background(), input, submitter); err != nil {
		t.Fatalf("second submit must be allowed: %v", err)
	}
	if len(deposits.byID) != 2 {
		t.Errorf("deposits stored = %d, want 2", len(deposits.byID))
	}
}

func TestReviewDeposit(t *testing.T) {
	svc, _, _, auction := depositFixture(t)
	submitter := &domain.User{ID: "bidder-1", FirstName: "Nadia", LastName: "El Fassi"}
	admin := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}

	deposit, _ := svc.Submit(context.Background(), ports.SubmitDepositInput{AuctionID: auction.ID, Amount: 5000, Method: domain.MethodBank}, submitter)

	reviewed, err := svc.Review(context.Background(), deposit.ID, ports.ReviewDepositInput{Status: domain.DepositConfirmed}, admin)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if reviewed.Status != domain.DepositConfirmed {
		t.Errorf("status = %s, want confirmed", reviewed.Status)
	}
	if reviewed.ReviewedAt == nil || reviewed.ReviewedBy != admin.ID {
		t.Error("review stamp must record reviewer and time")
	}
}

func TestReviewRejectionRequiresMessage(t *testing.T) {
	svc, _, _, auction := depositFixture(t)
	submitter := &domain.User{ID: "bidder-1"}
	admin := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}

	deposit, _ := svc.Submit(context.Background(), ports.SubmitDepositInput{AuctionID: auction.ID, Amount: 5000, Method: domain.MethodBank}, submitter)

	_, err := svc.Review(context.Background(), deposit.ID, ports.ReviewDepositInput{Status: domain.DepositRejected}, admin)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("rejection without message: want ErrValidation, got %v", err)
	}

	rejected, err := svc.Review(context.Background(), deposit.ID, ports.ReviewDepositInput{
		Status:       domain.DepositRejected,
		AdminMessage: "justificatif illisible",
	}, admin)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if rejected.AdminMessage != "justificatif illisible" {
		t.Errorf("admin message = %q", rejected.AdminMessage)
	}
}

func TestReviewGates(t *testing.T) {
	svc, _, _, auction := depositFixture(t)
	submitter := &domain.User{ID: "bidder-1", Role: domain.RoleBidder}
	admin := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}

	deposit, _ := svc.Submit(context.Background(), ports.SubmitDepositInput{AuctionID: auction.ID, Amount: 5000, Method: domain.MethodBank}, submitter)

	// Non-admins cannot review, not even their own deposit.
	if _, err := svc.Review(context.Background(), deposit.ID, ports.ReviewDepositInput{Status: domain.DepositConfirmed}, submitter); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}

	// pending is not a decision.
	if _, err := svc.Review(context.Background(), deposit.ID, ports.ReviewDepositInput{Status: domain.DepositPending}, admin); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestReviewCanOverturnDecision(t *testing.T) {
	svc, _, _, auction := depositFixture(t)
	submitter := &domain.User{ID: "bidder-1"}
	admin := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}

	deposit, _ := svc.Submit(context.Background(), ports.SubmitDepositInput{AuctionID: auction.ID, Amount: 5000, Method: domain.MethodBank}, submitter)

	_, err := svc.Review(context.Background(), deposit.ID, ports.ReviewDepositInput{Status: domain.DepositConfirmed}, admin)
	if err != nil {
		t.Fatalf("first review: %v", err)
	}
	overturned, err := svc.Review(context.Background(), deposit.ID, ports.ReviewDepositInput{
		Status:       domain.DepositRejected,
		AdminMessage: "versement annulé par la banque",
	}, admin)
	if err != nil {
		t.Fatalf("second review must be allowed: %v", err)
	}
	if overturned.Status != domain.DepositRejected {
		t.Errorf("status = %s, want rejected", overturned.Status)
	}
}

func TestDepositListingAndStats(t *testing.T) {
	svc, _, _, auction := depositFixture(t)
	admin := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}
	alice := &domain.User{ID: "bidder-1", FirstName: "Alice", LastName: "B"}
	bob := &domain.User{ID: "bidder-2", FirstName: "Bob", LastName: "C"}

	d1, _ := svc.Submit(context.Background(), ports.SubmitDepositInput{AuctionID: auction.ID, Amount: 5000, Method: domain.MethodBank}, alice)
	_, _ = svc.Submit(context.Background(), ports.SubmitDepositInput{AuctionID: auction.ID, Amount: 6000, Method: domain.MethodCard}, bob)
	_, _ = svc.Review(context.Background(), d1.ID, ports.ReviewDepositInput{Status: domain.DepositConfirmed}, admin)

	// Admin gate on the listing.
	if _, err := svc.ListForAdmin(context.Background(), ports.ListDepositsFilter{}, alice); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}

	result, err := svc.ListForAdmin(context.Background(), ports.ListDepositsFilter{Status: string(domain.DepositPending)}, admin)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 1 {
		t.Errorf("pending deposits = %d, want 1", result.Total)
	}

	// Free-text search on the denormalized username.
	result, _ = svc.ListForAdmin(context.Background(), ports.ListDepositsFilter{Search: "alice"}, admin)
	if result.Total != 1 {
		t.Errorf("search by username matched %d, want 1", result.Total)
	}

	mine, err := svc.ListForUser(context.Background(), alice)
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("own deposits = %d, want 1", len(mine))
	}

	stats, err := svc.Stats(context.Background(), admin)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 2 || stats.Pending != 1 || stats.Confirmed != 1 || stats.Rejected != 0 {
		t.Errorf("stats = %+v", stats)
	}

	if _, err := svc.Stats(context.Background(), bob); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stats gate: want ErrForbidden, got %v", err)
	}
}

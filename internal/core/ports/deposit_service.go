package ports

import (
	"context"
	"io"

	"github.com/mazadio/auction-system/internal/core/domain"
)

// SubmitDepositInput carries a caution submission. Receipt is optional; when
// set it is stored through the blob store before the deposit is persisted.
type SubmitDepositInput struct {
	AuctionID   string
	Amount      float64
	Method      domain.DepositMethod
	ReceiptName string
	Receipt     io.Reader
}

// ReviewDepositInput carries an admin decision. AdminMessage is mandatory
// when the new status is rejected.
type ReviewDepositInput struct {
	Status       domain.DepositStatus
	AdminMessage string
}

// ListDepositsResult is the paginated deposit listing response.
type ListDepositsResult struct {
	Items      []*domain.Deposit
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// DepositService owns the caution review workflow.
type DepositService interface {
	Submit(ctx context.Context, input SubmitDepositInput, submitter *domain.User) (*domain.Deposit, error)
	Review(ctx context.Context, depositID string, input ReviewDepositInput, reviewer *domain.User) (*domain.Deposit, error)
	ListForAdmin(ctx context.Context, filter ListDepositsFilter, viewer *domain.User) (*ListDepositsResult, error)
	ListForUser(ctx context.Context, user *domain.User) ([]*domain.Deposit, error)
	Stats(ctx context.Context, viewer *domain.User) (*domain.DepositStats, error)
}

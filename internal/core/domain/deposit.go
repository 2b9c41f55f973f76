package domain

import "time"

// DepositStatus tracks a caution through admin review.
// pending is initial; confirmed and rejected are decisions.
type DepositStatus string

const (
	DepositPending   DepositStatus = "pending"
	DepositConfirmed DepositStatus = "confirmed"
	DepositRejected  DepositStatus = "rejected"
)

// IsDecision reports whether s is a reviewer outcome.
func (s DepositStatus) IsDecision() bool {
	return s == DepositConfirmed || s == DepositRejected
}

// DepositMethod is the payment channel the caution was made through.
type DepositMethod string

const (
	MethodBank   DepositMethod = "bank"
	MethodCard   DepositMethod = "card"
	MethodWallet DepositMethod = "wallet"
)

// Deposit is a pre-auction good-faith payment proof. Only an admin review
// moves it out of pending; it never transitions on its own.
type Deposit struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	UserID      string        `json:"user_id" bson:"user_id"`
	AuctionID   string        `json:"auction_id" bson:"auction_id"`
	Amount      float64       `json:"amount" bson:"amount"`
	Method      DepositMethod `json:"deposit_method" bson:"deposit_method"`
	ReceiptFile string        `json:"receipt_file,omitempty" bson:"receipt_file,omitempty"`

	Status       DepositStatus `json:"status" bson:"status"`
	AdminMessage string        `json:"admin_message,omitempty" bson:"admin_message,omitempty"`

	// Denormalized for admin listings and free-text search.
	AuctionTitle string `json:"auction_title,omitempty" bson:"auction_title,omitempty"`
	Username     string `json:"username,omitempty" bson:"username,omitempty"`

	SubmittedAt time.Time  `json:"submitted_at" bson:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	ReviewedBy  string     `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
}

// DepositStats holds the aggregate counts shown on the admin dashboard.
type DepositStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Rejected  int64 `json:"rejected"`
}

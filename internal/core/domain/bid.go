package domain

import "time"

// Bid is a monetary offer against an active auction. Bids are immutable once
// accepted; there is no amend or withdraw path.
type Bid struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	AuctionID string    `json:"auction_id" bson:"auction_id"`
	BidderID  string    `json:"bidder_id" bson:"bidder_id"`
	Amount    float64   `json:"amount" bson:"amount"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

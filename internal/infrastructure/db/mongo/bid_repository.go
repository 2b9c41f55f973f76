package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mazadio/auction-system/internal/core/domain"
)

const collectionBids = "bids"

type BidRepository struct {
	col *mongo.Collection
}

func NewBidRepository(db *mongo.Database) *BidRepository {
	return &BidRepository{col: db.Collection(collectionBids)}
}

// Create inserts a new bid document. Bids are append-only.
func (r *BidRepository) Create(ctx context.Context, b *domain.Bid) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	b.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, b)
	return err
}

// HighestForAuction returns the winning bid. Sort order is amount desc then
// timestamp asc, so equal amounts resolve to the earliest bid.
func (r *BidRepository) HighestForAuction(ctx context.Context, auctionID string) (*domain.Bid, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{
		{Key: "amount", Value: -1},
		{Key: "timestamp", Value: 1},
	})

	var b domain.Bid
	err := r.col.FindOne(ctx, bson.M{"auction_id": auctionID}, opts).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBidNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListByAuction returns a page ordered amount desc, timestamp desc.
func (r *BidRepository) ListByAuction(ctx context.Context, auctionID string, page, limit int) ([]*domain.Bid, int64, error) {
	sort := bson.D{{Key: "amount", Value: -1}, {Key: "timestamp", Value: -1}}
	return r.list(ctx, bson.M{"auction_id": auctionID}, sort, page, limit)
}

// ListByBidder returns a page of a user's bids, newest first.
func (r *BidRepository) ListByBidder(ctx context.Context, bidderID string, page, limit int) ([]*domain.Bid, int64, error) {
	sort := bson.D{{Key: "timestamp", Value: -1}}
	return r.list(ctx, bson.M{"bidder_id": bidderID}, sort, page, limit)
}

func (r *BidRepository) FindByID(ctx context.Context, id string) (*domain.Bid, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var b domain.Bid
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBidNotFound
		}
		return nil, err
	}
	return &b, nil
}

// DeleteByAuction removes every bid of an auction (cascade only).
func (r *BidRepository) DeleteByAuction(ctx context.Context, auctionID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"auction_id": auctionID})
	return err
}

func (r *BidRepository) list(ctx context.Context, filter bson.M, sort bson.D, page, limit int) ([]*domain.Bid, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var bids []*domain.Bid
	if err := cursor.All(ctx, &bids); err != nil {
		return nil, 0, err
	}
	return bids, total, nil
}

// EnsureIndexes creates the indexes the highest-bid lookup depends on.
func (r *BidRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "auction_id", Value: 1}, {Key: "amount", Value: -1}, {Key: "timestamp", Value: 1}}},
		{Keys: bson.D{{Key: "bidder_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

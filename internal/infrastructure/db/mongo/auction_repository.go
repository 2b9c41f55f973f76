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
	"github.com/mazadio/auction-system/internal/core/ports"
)

const collectionAuctions = "auctions"

type AuctionRepository struct {
	col *mongo.Collection
}

func NewAuctionRepository(db *mongo.Database) *AuctionRepository {
	return &AuctionRepository{col: db.Collection(collectionAuctions)}
}

// Create inserts a new auction document. The ID is generated here.
func (r *AuctionRepository) Create(ctx context.Context, a *domain.Auction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	a.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *AuctionRepository) FindByID(ctx context.Context, id string) (*domain.Auction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Auction
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAuctionNotFound
		}
		return nil, err
	}
	return &a, nil
}

// auctionDetailDoc is the aggregation output shape for FindDetail.
type auctionDetailDoc struct {
	domain.Auction `bson:",inline"`
	HighestBid     *float64          `bson:"highest_bid"`
	TotalBids      int64             `bson:"total_bids"`
	CategoryDocs   []domain.Category `bson:"category_docs"`
}

// FindDetail composes the auction with its bid stats and category summary in
// a single aggregation, so highest bid and count come from one snapshot of
// the bid set.
func (r *AuctionRepository) FindDetail(ctx context.Context, id string) (*ports.AuctionDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionBids,
			"localField":   "_id",
			"foreignField": "auction_id",
			"as":           "auction_bids",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"highest_bid": bson.M{"$max": "$auction_bids.amount"},
			"total_bids":  bson.M{"$size": "$auction_bids"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionCategories,
			"localField":   "category_id",
			"foreignField": "_id",
			"as":           "category_docs",
		}}},
		{{Key: "$project", Value: bson.M{"auction_bids": 0}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []auctionDetailDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrAuctionNotFound
	}

	doc := docs[0]
	detail := &ports.AuctionDetail{
		Auction:    doc.Auction,
		HighestBid: doc.HighestBid,
		TotalBids:  doc.TotalBids,
	}
	if len(doc.CategoryDocs) > 0 {
		detail.Category = domain.CategorySummary{ID: doc.CategoryDocs[0].ID, Name: doc.CategoryDocs[0].Name}
	} else {
		detail.Category = domain.CategorySummary{ID: doc.CategoryID}
	}
	return detail, nil
}

// Replace persists the full aggregate, embedded children included.
func (r *AuctionRepository) Replace(ctx context.Context, a *domain.Auction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrAuctionNotFound
	}
	return nil
}

// SetStatus updates only the lifecycle status and the updated_at stamp.
func (r *AuctionRepository) SetStatus(ctx context.Context, id string, status domain.AuctionStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"auction_status": string(status),
			"updated_at":     time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrAuctionNotFound
	}
	return nil
}

// Delete removes the auction document. Embedded specifications, images and
// documents are removed with it; bids live in their own collection and are
// deleted by the service cascade.
func (r *AuctionRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrAuctionNotFound
	}
	return nil
}

// List returns a page of auctions matching filter, newest first, plus the
// total count before pagination.
func (r *AuctionRepository) List(ctx context.Context, filter ports.ListAuctionsFilter) ([]*domain.Auction, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.CategoryID != "" {
		query["category_id"] = filter.CategoryID
	}
	if filter.Status != "" {
		query["auction_status"] = filter.Status
	}
	if filter.Type != "" {
		query["auction_type"] = filter.Type
	}
	if filter.MinPrice > 0 || filter.MaxPrice > 0 {
		price := bson.M{}
		if filter.MinPrice > 0 {
			price["$gte"] = filter.MinPrice
		}
		if filter.MaxPrice > 0 {
			price["$lte"] = filter.MaxPrice
		}
		query["starting_price"] = price
	}
	if filter.Location != "" {
		query["location"] = bson.M{"$regex": filter.Location, "$options": "i"}
	}
	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}
	if filter.Search != "" {
		query["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": filter.Search, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": filter.Search, "$options": "i"}},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var auctions []*domain.Auction
	if err := cursor.All(ctx, &auctions); err != nil {
		return nil, 0, err
	}
	return auctions, total, nil
}

// EnsureIndexes creates the indexes backing the list filters.
func (r *AuctionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "creator_id", Value: 1}}},
		{Keys: bson.D{{Key: "auction_status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

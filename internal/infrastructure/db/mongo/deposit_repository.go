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

const collectionDeposits = "deposits"

type DepositRepository struct {
	col *mongo.Collection
}

func NewDepositRepository(db *mongo.Database) *DepositRepository {
	return &DepositRepository{col: db.Collection(collectionDeposits)}
}

func (r *DepositRepository) Create(ctx context.Context, d *domain.Deposit) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	d.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, d)
	return err
}

func (r *DepositRepository) FindByID(ctx context.Context, id string) (*domain.Deposit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.Deposit
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDepositNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Update persists a review decision over the full document.
func (r *DepositRepository) Update(ctx context.Context, d *domain.Deposit) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrDepositNotFound
	}
	return nil
}

// List returns a page ordered by submission date desc. The free-text search
// spans deposit id, auction id, auction title and submitter name; title and
// name are denormalized onto the document at submit time.
func (r *DepositRepository) List(ctx context.Context, filter ports.ListDepositsFilter) ([]*domain.Deposit, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.AuctionID != "" {
		query["auction_id"] = filter.AuctionID
	}
	if filter.Search != "" {
		regex := bson.M{"$regex": filter.Search, "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"_id": regex},
			bson.M{"auction_id": regex},
			bson.M{"auction_title": regex},
			bson.M{"username": regex},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "submitted_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var deposits []*domain.Deposit
	if err := cursor.All(ctx, &deposits); err != nil {
		return nil, 0, err
	}
	return deposits, total, nil
}

func (r *DepositRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Deposit, error) {
	return r.listAll(ctx, bson.M{"user_id": userID})
}

func (r *DepositRepository) ListByAuction(ctx context.Context, auctionID string) ([]*domain.Deposit, error) {
	return r.listAll(ctx, bson.M{"auction_id": auctionID})
}

// CountByStatus aggregates the dashboard counts in one round trip.
func (r *DepositRepository) CountByStatus(ctx context.Context) (*domain.DepositStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	stats := &domain.DepositStats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch domain.DepositStatus(row.Status) {
		case domain.DepositPending:
			stats.Pending = row.Count
		case domain.DepositConfirmed:
			stats.Confirmed = row.Count
		case domain.DepositRejected:
			stats.Rejected = row.Count
		}
	}
	return stats, nil
}

func (r *DepositRepository) listAll(ctx context.Context, filter bson.M) ([]*domain.Deposit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var deposits []*domain.Deposit
	if err := cursor.All(ctx, &deposits); err != nil {
		return nil, err
	}
	return deposits, nil
}

// EnsureIndexes creates the indexes backing the admin filters.
func (r *DepositRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "auction_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "submitted_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

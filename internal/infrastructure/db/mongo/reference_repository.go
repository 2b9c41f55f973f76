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

const (
	collectionCategories      = "categories"
	collectionTribunals       = "tribunals"
	collectionCountries       = "countries"
	collectionCities          = "cities"
	collectionCreditOrganisms = "credit_organisms"
)

// CategoryRepository persists auction categories.
type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{col: db.Collection(collectionCategories)}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrCategoryExists
	}
	return err
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *CategoryRepository) findOne(ctx context.Context, filter bson.M) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Category
	err := r.col.FindOne(ctx, filter).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []*domain.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// EnsureIndexes creates the unique name index.
func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// ReferenceRepository serves the static lookup collections used by the
// registration and auction forms.
type ReferenceRepository struct {
	db *mongo.Database
}

func NewReferenceRepository(db *mongo.Database) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) Tribunals(ctx context.Context) ([]*domain.Tribunal, error) {
	var tribunals []*domain.Tribunal
	if err := r.findAll(ctx, collectionTribunals, bson.M{}, &tribunals); err != nil {
		return nil, err
	}
	return tribunals, nil
}

func (r *ReferenceRepository) Countries(ctx context.Context) ([]*domain.Country, error) {
	var countries []*domain.Country
	if err := r.findAll(ctx, collectionCountries, bson.M{}, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

func (r *ReferenceRepository) Cities(ctx context.Context, countryID string) ([]*domain.City, error) {
	filter := bson.M{}
	if countryID != "" {
		filter["country_id"] = countryID
	}
	var cities []*domain.City
	if err := r.findAll(ctx, collectionCities, filter, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *ReferenceRepository) CreditOrganisms(ctx context.Context) ([]*domain.CreditOrganism, error) {
	var organisms []*domain.CreditOrganism
	if err := r.findAll(ctx, collectionCreditOrganisms, bson.M{}, &organisms); err != nil {
		return nil, err
	}
	return organisms, nil
}

func (r *ReferenceRepository) findAll(ctx context.Context, collection string, filter bson.M, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, out)
}

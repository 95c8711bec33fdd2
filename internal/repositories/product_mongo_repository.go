package repositories

import (
	"context"
	"errors"
	"time"

	"sportshop/internal/apperror"
	"sportshop/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a new instance of MongoProductRepository.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{coll: db.Collection(productsCollection)}
}

func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products, err := findAll[models.Product](ctx, r.coll, bson.M{}, oldestFirst)
	if err != nil {
		return nil, storeErr("failed to get all products", err)
	}
	return products, nil
}

func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	found, err := findOne(ctx, r.coll, bson.M{"_id": id}, &product)
	if err != nil {
		return nil, storeErr("failed to get product", err)
	}
	if !found {
		return nil, nil
	}
	return &product, nil
}

func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	product.CreatedAt, product.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return storeErr("failed to create product", err)
	}
	return nil
}

func (r *MongoProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now().UTC()
	if err := replaceByID(ctx, r.coll, "product", product.ID, product); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return storeErr("failed to update product", err)
	}
	return nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, "product", id)
}

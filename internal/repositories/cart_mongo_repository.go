package repositories

import (
	"context"
	"time"

	"sportshop/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCartRepository keeps one document per user with the lines embedded.
type MongoCartRepository struct {
	coll *mongo.Collection
}

// NewMongoCartRepository creates a new instance of MongoCartRepository.
func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{coll: db.Collection(cartsCollection)}
}

func (r *MongoCartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var c models.Cart
	found, err := findOne(ctx, r.coll, bson.M{"userId": userID}, &c)
	if err != nil {
		return nil, storeErr("failed to get cart", err)
	}
	if !found {
		return nil, nil
	}
	return &c, nil
}

// Save upserts the cart keyed by its owner.
func (r *MongoCartRepository) Save(ctx context.Context, c *models.Cart) error {
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	now := time.Now().UTC()
	if c.ID == "" {
		c.ID = uuid.New().String()
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	_, err := r.coll.ReplaceOne(ctx, bson.M{"userId": c.UserID}, c, options.Replace().SetUpsert(true))
	if err != nil {
		return storeErr("failed to save cart", err)
	}
	return nil
}

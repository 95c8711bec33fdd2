package repositories

import (
	"context"
	"time"

	"sportshop/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoOrderRepository is a MongoDB implementation of OrderRepository.
type MongoOrderRepository struct {
	coll *mongo.Collection
}

// NewMongoOrderRepository creates a new instance of MongoOrderRepository.
func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{coll: db.Collection(ordersCollection)}
}

func (r *MongoOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	orders, err := findAll[models.Order](ctx, r.coll, bson.M{}, newestFirst)
	if err != nil {
		return nil, storeErr("failed to get all orders", err)
	}
	return orders, nil
}

func (r *MongoOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	found, err := findOne(ctx, r.coll, bson.M{"_id": id}, &order)
	if err != nil {
		return nil, storeErr("failed to get order", err)
	}
	if !found {
		return nil, nil
	}
	return &order, nil
}

func (r *MongoOrderRepository) GetByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := findAll[models.Order](ctx, r.coll, bson.M{"userId": userID}, newestFirst)
	if err != nil {
		return nil, storeErr("failed to get orders by user", err)
	}
	return orders, nil
}

func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	order.CreatedAt, order.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return storeErr("failed to create order", err)
	}
	return nil
}

func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return storeErr("failed to update order status", err)
	}
	if res.MatchedCount == 0 {
		return notFound("order", id)
	}
	return nil
}

func (r *MongoOrderRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, "order", id)
}

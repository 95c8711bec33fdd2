package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sportshop/internal/apperror"
	"sportshop/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoUserRepository is a MongoDB implementation of UserRepository.
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a new instance of MongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("email %s already registered: %w", user.Email, apperror.ErrConflict)
		}
		return storeErr("failed to create user", err)
	}
	return nil
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.first(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) first(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	found, err := findOne(ctx, r.coll, filter, &user)
	if err != nil {
		return nil, storeErr("failed to get user", err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

func (r *MongoUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	users, err := findAll[models.User](ctx, r.coll, bson.M{}, oldestFirst)
	if err != nil {
		return nil, storeErr("failed to get all users", err)
	}
	return users, nil
}

func (r *MongoUserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	err := replaceByID(ctx, r.coll, "user", user.ID, user)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperror.ErrNotFound):
		return err
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("email %s already registered: %w", user.Email, apperror.ErrConflict)
	default:
		return storeErr("failed to update user", err)
	}
}

func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, "user", id)
}

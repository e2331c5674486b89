package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"deskhive/pkg/config"
	"deskhive/pkg/model"
)

// AllocationLockRepository provides operations for advisory locks.
type AllocationLockRepository interface {
	Create(ctx context.Context, lock *model.AllocationLock) (*model.AllocationLock, error)
	Delete(ctx context.Context, lockID string) error
}

type mongoAllocationLockRepository struct {
	collection *mongo.Collection
}

func NewAllocationLockRepository(cfg *config.Config) AllocationLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAllocationLockRepository{
		collection: db.Collection("Allocation_locks"),
	}
}

// Create returns a duplicate key error if the lock is already held.
func (r *mongoAllocationLockRepository) Create(ctx context.Context, lock *model.AllocationLock) (*model.AllocationLock, error) {
	lock.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		return nil, err
	}

	return lock, nil
}

// Delete removes an advisory lock.
func (r *mongoAllocationLockRepository) Delete(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}

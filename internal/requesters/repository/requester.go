package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"deskhive/pkg/config"
	"deskhive/pkg/model"
)

const (
	CollectionName = "Requesters"
)

var (
	ErrNotFound  = errors.New("requester not found")
	ErrInvalidID = errors.New("invalid requester ID format")
)

// RequesterRepository is read-only. Requester records are provisioned by
// the identity system; this engine only looks them up for scoring.
type RequesterRepository interface {
	FindByID(ctx context.Context, id string) (*model.Requester, error)
}

type mongoRequesterRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRequesterRepository(cfg *config.Config) RequesterRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRequesterRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoRequesterRepository) FindByID(ctx context.Context, id string) (*model.Requester, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	var requester model.Requester
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&requester)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find requester: %w", err)
	}

	return &requester, nil
}

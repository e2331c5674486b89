package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	workspaceserrors "deskhive/internal/workspaces/errors"
	"deskhive/pkg/config"
	"deskhive/pkg/model"
)

const (
	CollectionName = "Workspaces"
)

type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *model.Workspace) error
	FindByID(ctx context.Context, id string) (*model.Workspace, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Workspace, error)
	Count(ctx context.Context) (int64, error)
	FindCandidates(ctx context.Context, filter model.CandidateFilter) ([]*model.Workspace, error)
	Update(ctx context.Context, id string, workspace *model.Workspace) (*mongo.UpdateResult, error)
	SetAvailability(ctx context.Context, id string, available bool) error
	Delete(ctx context.Context, id string) error
}

type mongoWorkspaceRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoWorkspaceRepository(cfg *config.Config) WorkspaceRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoWorkspaceRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout wraps the context with a timeout unless it is a transaction
// session context, which must not be re-wrapped.
func (r *mongoWorkspaceRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoWorkspaceRepository) Create(ctx context.Context, workspace *model.Workspace) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	workspace.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, workspace)
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		workspace.ID = oid.Hex()
	}
	return nil
}

func (r *mongoWorkspaceRepository) FindByID(ctx context.Context, id string) (*model.Workspace, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", workspaceserrors.ErrInvalidID, id)
	}

	var workspace model.Workspace
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&workspace)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, workspaceserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	return &workspace, nil
}

func (r *mongoWorkspaceRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Workspace, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find workspaces: %w", err)
	}
	defer cursor.Close(ctx)

	var workspaces []*model.Workspace
	if err = cursor.All(ctx, &workspaces); err != nil {
		return nil, fmt.Errorf("failed to decode workspaces: %w", err)
	}

	return workspaces, nil
}

func (r *mongoWorkspaceRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count workspaces: %w", err)
	}

	return count, nil
}

// FindCandidates applies the catalog-side constraints of a suggestion
// request. Results are ordered by capacity descending with _id as the tie
// breaker so rankings stay deterministic across calls.
func (r *mongoWorkspaceRepository) FindCandidates(ctx context.Context, filter model.CandidateFilter) ([]*model.Workspace, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	query := bson.M{
		"capacity": bson.M{"$gte": filter.MinCapacity},
	}
	if filter.OnlyAvailable {
		query["is_available"] = true
	}
	if filter.Floor != nil {
		query["floor"] = *filter.Floor
	}
	if filter.TypeContains != "" {
		query["type"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(filter.TypeContains),
			Options: "i",
		}
	}
	if len(filter.RequiredFacilities) > 0 {
		query["facilities"] = bson.M{"$all": filter.RequiredFacilities}
	}

	opts := options.Find().
		SetSort(bson.D{
			{Key: "capacity", Value: -1},
			{Key: "_id", Value: 1},
		})
	if filter.Limit > 0 {
		opts = opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find candidate workspaces: %w", err)
	}
	defer cursor.Close(ctx)

	var workspaces []*model.Workspace
	if err = cursor.All(ctx, &workspaces); err != nil {
		return nil, fmt.Errorf("failed to decode candidate workspaces: %w", err)
	}

	return workspaces, nil
}

func (r *mongoWorkspaceRepository) Update(ctx context.Context, id string, workspace *model.Workspace) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", workspaceserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":         workspace.Name,
			"type":         workspace.Type,
			"floor":        workspace.Floor,
			"capacity":     workspace.Capacity,
			"facilities":   workspace.Facilities,
			"is_available": workspace.IsAvailable,
			"description":  workspace.Description,
			"x_coord":      workspace.XCoord,
			"y_coord":      workspace.YCoord,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, workspaceserrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoWorkspaceRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", workspaceserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"is_available": available}},
	)
	if err != nil {
		return fmt.Errorf("failed to set workspace availability: %w", err)
	}

	if result.MatchedCount == 0 {
		return workspaceserrors.ErrNotFound
	}

	return nil
}

func (r *mongoWorkspaceRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", workspaceserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	if result.DeletedCount == 0 {
		return workspaceserrors.ErrNotFound
	}

	return nil
}

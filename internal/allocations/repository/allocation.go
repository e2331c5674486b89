package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	allocationserrors "deskhive/internal/allocations/errors"
	"deskhive/pkg/config"
	mongotx "deskhive/pkg/db/mongo"
	"deskhive/pkg/model"
)

const (
	CollectionName = "Allocations"
)

type AllocationRepository interface {
	Create(ctx context.Context, allocation *model.Allocation) error
	FindByID(ctx context.Context, id string) (*model.Allocation, error)
	FindByFilter(ctx context.Context, filter model.AllocationFilter, limit int, offset int64) ([]*model.Allocation, error)
	CountByFilter(ctx context.Context, filter model.AllocationFilter) (int64, error)
	UpdateStatusAndNotes(ctx context.Context, id string, status model.AllocationStatus, notes *string) error
	CancelOwned(ctx context.Context, id string, requesterID string) error
	FindActiveOverlapping(ctx context.Context, workspaceID string, start, end time.Time) ([]*model.Allocation, error)
	FindConflictedWorkspaceIDs(ctx context.Context, workspaceIDs []string, start, end time.Time) (map[string]struct{}, error)
	FindActiveCovering(ctx context.Context, workspaceID string, at time.Time) (*model.Allocation, error)
	CountOpenByWorkspace(ctx context.Context, workspaceID string) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoAllocationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoAllocationRepository(cfg *config.Config) AllocationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAllocationRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless it is a transaction
// session context, which must not be re-wrapped.
func (r *mongoAllocationRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoAllocationRepository) Create(ctx context.Context, allocation *model.Allocation) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	allocation.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, allocation)
	if err != nil {
		return fmt.Errorf("failed to create allocation: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		allocation.ID = oid.Hex()
	}
	return nil
}

func (r *mongoAllocationRepository) FindByID(ctx context.Context, id string) (*model.Allocation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", allocationserrors.ErrInvalidID, id)
	}

	var allocation model.Allocation
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&allocation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, allocationserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find allocation: %w", err)
	}

	return &allocation, nil
}

func (r *mongoAllocationRepository) FindByFilter(ctx context.Context, filter model.AllocationFilter, limit int, offset int64) ([]*model.Allocation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, buildListFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find allocations: %w", err)
	}
	defer cursor.Close(ctx)

	var allocations []*model.Allocation
	if err = cursor.All(ctx, &allocations); err != nil {
		return nil, fmt.Errorf("failed to decode allocations: %w", err)
	}

	return allocations, nil
}

func (r *mongoAllocationRepository) CountByFilter(ctx context.Context, filter model.AllocationFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildListFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count allocations: %w", err)
	}
	return count, nil
}

func buildListFilter(filter model.AllocationFilter) bson.M {
	query := bson.M{}

	if filter.RequesterID != "" {
		query["requester_id"] = filter.RequesterID
	}
	if filter.WorkspaceID != "" {
		query["workspace_id"] = filter.WorkspaceID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.StartDate != nil {
		query["start_time"] = bson.M{"$gte": *filter.StartDate}
	}
	if filter.EndDate != nil {
		query["end_time"] = bson.M{"$lte": *filter.EndDate}
	}

	return query
}

func (r *mongoAllocationRepository) UpdateStatusAndNotes(ctx context.Context, id string, status model.AllocationStatus, notes *string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", allocationserrors.ErrInvalidID, id)
	}

	set := bson.M{}
	if status != "" {
		set["status"] = status
	}
	if notes != nil {
		set["notes"] = *notes
	}
	if len(set) == 0 {
		return nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update allocation: %w", err)
	}

	if result.MatchedCount == 0 {
		return allocationserrors.ErrNotFound
	}

	return nil
}

// CancelOwned flips an Active allocation to Cancelled, but only when the
// caller owns it. A miss on any of the three conditions reports not found
// so ownership is never leaked to the caller.
func (r *mongoAllocationRepository) CancelOwned(ctx context.Context, id string, requesterID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", allocationserrors.ErrInvalidID, id)
	}

	filter := bson.M{
		"_id":          objectID,
		"requester_id": requesterID,
		"status":       model.StatusActive,
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"status": model.StatusCancelled},
	})
	if err != nil {
		return fmt.Errorf("failed to cancel allocation: %w", err)
	}

	if result.MatchedCount == 0 {
		return allocationserrors.ErrNotFound
	}

	return nil
}

// FindActiveOverlapping returns Active allocations whose half-open window
// [start_time, end_time) intersects [start, end).
func (r *mongoAllocationRepository) FindActiveOverlapping(ctx context.Context, workspaceID string, start, end time.Time) ([]*model.Allocation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"workspace_id": workspaceID,
		"status":       model.StatusActive,
		"start_time":   bson.M{"$lt": end},
		"end_time":     bson.M{"$gt": start},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping allocations: %w", err)
	}
	defer cursor.Close(ctx)

	var allocations []*model.Allocation
	if err = cursor.All(ctx, &allocations); err != nil {
		return nil, fmt.Errorf("failed to decode overlapping allocations: %w", err)
	}

	return allocations, nil
}

// FindConflictedWorkspaceIDs reports which of the given workspaces already
// hold an Active allocation overlapping [start, end). One query serves the
// whole candidate set.
func (r *mongoAllocationRepository) FindConflictedWorkspaceIDs(ctx context.Context, workspaceIDs []string, start, end time.Time) (map[string]struct{}, error) {
	if len(workspaceIDs) == 0 {
		return map[string]struct{}{}, nil
	}

	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"workspace_id": bson.M{"$in": workspaceIDs},
		"status":       model.StatusActive,
		"start_time":   bson.M{"$lt": end},
		"end_time":     bson.M{"$gt": start},
	}

	ids, err := r.collection.Distinct(ctx, "workspace_id", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find conflicted workspaces: %w", err)
	}

	conflicted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if s, ok := id.(string); ok {
			conflicted[s] = struct{}{}
		}
	}

	return conflicted, nil
}

func (r *mongoAllocationRepository) FindActiveCovering(ctx context.Context, workspaceID string, at time.Time) (*model.Allocation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"workspace_id": workspaceID,
		"status":       model.StatusActive,
		"start_time":   bson.M{"$lte": at},
		"end_time":     bson.M{"$gt": at},
	}

	var allocation model.Allocation
	err := r.collection.FindOne(ctx, filter).Decode(&allocation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find covering allocation: %w", err)
	}

	return &allocation, nil
}

func (r *mongoAllocationRepository) CountOpenByWorkspace(ctx context.Context, workspaceID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"workspace_id": workspaceID,
		"status":       bson.M{"$in": []model.AllocationStatus{model.StatusActive, model.StatusPending}},
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count open allocations: %w", err)
	}

	return count, nil
}

func (r *mongoAllocationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

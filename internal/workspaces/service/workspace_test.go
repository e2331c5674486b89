package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	workspaceserrors "deskhive/internal/workspaces/errors"
	"deskhive/internal/workspaces/validator"
	"deskhive/pkg/config"
	apperrors "deskhive/pkg/errors"
	"deskhive/pkg/logger"
	"deskhive/pkg/model"
)

const testWorkspaceID = "507f1f77bcf86cd799439011"

// ────────────────────────────────────────────────
// Mocks
// ────────────────────────────────────────────────

type mockWorkspaceRepository struct {
	findByIDFunc        func(ctx context.Context, id string) (*model.Workspace, error)
	findAllFunc         func(ctx context.Context, limit int, offset int64) ([]*model.Workspace, error)
	countFunc           func(ctx context.Context) (int64, error)
	deleteFunc          func(ctx context.Context, id string) error
	setAvailabilityFunc func(ctx context.Context, id string, available bool) error
	createFunc          func(ctx context.Context, workspace *model.Workspace) error
}

func (m *mockWorkspaceRepository) Create(ctx context.Context, workspace *model.Workspace) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, workspace)
	}
	workspace.ID = testWorkspaceID
	return nil
}

func (m *mockWorkspaceRepository) FindByID(ctx context.Context, id string) (*model.Workspace, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.Workspace{ID: id, Name: "Test Space", Type: "desk", Capacity: 4, IsAvailable: true}, nil
}

func (m *mockWorkspaceRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Workspace, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Workspace{}, nil
}

func (m *mockWorkspaceRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockWorkspaceRepository) FindCandidates(ctx context.Context, filter model.CandidateFilter) ([]*model.Workspace, error) {
	return []*model.Workspace{}, nil
}

func (m *mockWorkspaceRepository) Update(ctx context.Context, id string, workspace *model.Workspace) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockWorkspaceRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	if m.setAvailabilityFunc != nil {
		return m.setAvailabilityFunc(ctx, id, available)
	}
	return nil
}

func (m *mockWorkspaceRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockAllocationReader struct {
	coveringFunc func(ctx context.Context, workspaceID string, at time.Time) (*model.Allocation, error)
	openCount    int64
}

func (m *mockAllocationReader) FindActiveCovering(ctx context.Context, workspaceID string, at time.Time) (*model.Allocation, error) {
	if m.coveringFunc != nil {
		return m.coveringFunc(ctx, workspaceID, at)
	}
	return nil, nil
}

func (m *mockAllocationReader) CountOpenByWorkspace(ctx context.Context, workspaceID string) (int64, error) {
	return m.openCount, nil
}

func newTestService(repo *mockWorkspaceRepository, allocations *mockAllocationReader) WorkspaceService {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return NewWorkspaceService(repo, allocations, validator.NewWorkspaceValidator(log), cfg)
}

// ────────────────────────────────────────────────
// GetStatus
// ────────────────────────────────────────────────

func TestGetStatus_Available(t *testing.T) {
	service := newTestService(&mockWorkspaceRepository{}, &mockAllocationReader{})

	status, err := service.GetStatus(context.Background(), testWorkspaceID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Status != model.WorkspaceAvailable {
		t.Errorf("expected Available, got %s", status.Status)
	}
	if status.OccupiedUntil != nil {
		t.Error("available workspace must not report occupied_until")
	}
}

func TestGetStatus_Occupied(t *testing.T) {
	until := time.Now().Add(time.Hour).UTC()
	allocations := &mockAllocationReader{
		coveringFunc: func(ctx context.Context, workspaceID string, at time.Time) (*model.Allocation, error) {
			return &model.Allocation{
				ID:          "alloc",
				WorkspaceID: workspaceID,
				Status:      model.StatusActive,
				StartTime:   time.Now().Add(-time.Hour),
				EndTime:     until,
			}, nil
		},
	}
	service := newTestService(&mockWorkspaceRepository{}, allocations)

	status, err := service.GetStatus(context.Background(), testWorkspaceID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Status != model.WorkspaceOccupied {
		t.Errorf("expected Occupied, got %s", status.Status)
	}
	if status.OccupiedUntil == nil || !status.OccupiedUntil.Equal(until) {
		t.Errorf("expected occupied_until %v, got %v", until, status.OccupiedUntil)
	}
}

func TestGetStatus_UnavailableWhenFlagOffAndIdle(t *testing.T) {
	repo := &mockWorkspaceRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Workspace, error) {
			return &model.Workspace{ID: id, Name: "Closed Space", Type: "desk", Capacity: 4, IsAvailable: false}, nil
		},
	}
	service := newTestService(repo, &mockAllocationReader{})

	status, err := service.GetStatus(context.Background(), testWorkspaceID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Status != model.WorkspaceUnavailable {
		t.Errorf("expected Unavailable, got %s", status.Status)
	}
	if status.OccupiedUntil != nil {
		t.Error("unavailable workspace must not report occupied_until")
	}
}

func TestGetStatus_OccupiedBeatsAvailabilityFlag(t *testing.T) {
	until := time.Now().Add(30 * time.Minute).UTC()
	repo := &mockWorkspaceRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Workspace, error) {
			return &model.Workspace{ID: id, Name: "Booked Space", Type: "desk", Capacity: 4, IsAvailable: false}, nil
		},
	}
	allocations := &mockAllocationReader{
		coveringFunc: func(ctx context.Context, workspaceID string, at time.Time) (*model.Allocation, error) {
			return &model.Allocation{
				ID:          "alloc",
				WorkspaceID: workspaceID,
				Status:      model.StatusActive,
				StartTime:   time.Now().Add(-30 * time.Minute),
				EndTime:     until,
			}, nil
		},
	}
	service := newTestService(repo, allocations)

	status, err := service.GetStatus(context.Background(), testWorkspaceID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Status != model.WorkspaceOccupied {
		t.Errorf("expected Occupied, got %s", status.Status)
	}
	if status.OccupiedUntil == nil || !status.OccupiedUntil.Equal(until) {
		t.Errorf("expected occupied_until %v, got %v", until, status.OccupiedUntil)
	}
}

func TestGetStatus_NotFound(t *testing.T) {
	repo := &mockWorkspaceRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Workspace, error) {
			return nil, workspaceserrors.ErrNotFound
		},
	}
	service := newTestService(repo, &mockAllocationReader{})

	_, err := service.GetStatus(context.Background(), testWorkspaceID)
	if err == nil {
		t.Fatal("expected error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

// ────────────────────────────────────────────────
// Delete guard
// ────────────────────────────────────────────────

func TestDelete_BlockedByOpenAllocations(t *testing.T) {
	service := newTestService(&mockWorkspaceRepository{}, &mockAllocationReader{openCount: 2})

	err := service.Delete(context.Background(), testWorkspaceID)
	if err == nil {
		t.Fatal("expected conflict")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected CONFLICT, got %v", err)
	}
}

func TestDelete_AllowedWhenNoOpenAllocations(t *testing.T) {
	deleted := false
	repo := &mockWorkspaceRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	service := newTestService(repo, &mockAllocationReader{openCount: 0})

	if err := service.Delete(context.Background(), testWorkspaceID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("expected repository delete to be called")
	}
}

// ────────────────────────────────────────────────
// Create / sanitize
// ────────────────────────────────────────────────

func TestCreate_SanitizesFields(t *testing.T) {
	var created *model.Workspace
	repo := &mockWorkspaceRepository{
		createFunc: func(ctx context.Context, workspace *model.Workspace) error {
			created = workspace
			return nil
		},
	}
	service := newTestService(repo, &mockAllocationReader{})

	workspace := &model.Workspace{
		Name:       "  Quiet   Corner  ",
		Type:       " focus  booth ",
		Capacity:   2,
		Facilities: []string{" Monitor ", "monitor", "Whiteboard"},
	}

	if err := service.Create(context.Background(), workspace); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Name != "Quiet Corner" {
		t.Errorf("expected normalized name, got %q", created.Name)
	}
	if created.Type != "focus booth" {
		t.Errorf("expected normalized type, got %q", created.Type)
	}
	if len(created.Facilities) != 2 {
		t.Errorf("expected deduplicated facilities, got %v", created.Facilities)
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	service := newTestService(&mockWorkspaceRepository{}, &mockAllocationReader{})

	err := service.Create(context.Background(), &model.Workspace{Name: "X", Type: "desk", Capacity: 0})
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected VALIDATION_ERROR, got %v", err)
	}
}

// ────────────────────────────────────────────────
// GetAll
// ────────────────────────────────────────────────

func TestGetAll_ConcurrentCountAndFind(t *testing.T) {
	repo := &mockWorkspaceRepository{
		countFunc: func(ctx context.Context) (int64, error) {
			time.Sleep(10 * time.Millisecond)
			return 7, nil
		},
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Workspace, error) {
			time.Sleep(10 * time.Millisecond)
			return []*model.Workspace{{ID: "1"}, {ID: "2"}}, nil
		},
	}
	service := newTestService(repo, &mockAllocationReader{})

	workspaces, total, err := service.GetAll(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 7 {
		t.Errorf("expected total 7, got %d", total)
	}
	if len(workspaces) != 2 {
		t.Errorf("expected 2 workspaces, got %d", len(workspaces))
	}
}

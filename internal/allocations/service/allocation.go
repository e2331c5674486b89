package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	allocationserrors "deskhive/internal/allocations/errors"
	"deskhive/internal/allocations/events"
	"deskhive/internal/allocations/repository"
	"deskhive/internal/allocations/scoring"
	"deskhive/internal/allocations/validator"
	requestersrepo "deskhive/internal/requesters/repository"
	workspacesrepo "deskhive/internal/workspaces/repository"
	"deskhive/pkg/config"
	apperrors "deskhive/pkg/errors"
	"deskhive/pkg/model"
	"deskhive/pkg/sanitizer"
)

type AllocationService interface {
	Suggest(ctx context.Context, req *model.SuggestionRequest) ([]*model.Suggestion, error)
	Confirm(ctx context.Context, confirm *model.AllocationConfirm) (*model.Allocation, error)
	GetByID(ctx context.Context, id string) (*model.Allocation, error)
	GetAll(ctx context.Context, filter model.AllocationFilter, limit int, offset int64) ([]*model.Allocation, int64, error)
	Update(ctx context.Context, id string, updates *model.AllocationUpdate) (*model.Allocation, error)
	Cancel(ctx context.Context, id string, requesterID string) (*model.Allocation, error)
}

type allocationService struct {
	repo       repository.AllocationRepository
	lockRepo   repository.AllocationLockRepository
	workspaces workspacesrepo.WorkspaceRepository
	requesters requestersrepo.RequesterRepository
	classifier scoring.Classifier
	publisher  events.Publisher
	validator  *validator.AllocationValidator
	cfg        *config.Config
}

func NewAllocationService(
	repo repository.AllocationRepository,
	lockRepo repository.AllocationLockRepository,
	workspaces workspacesrepo.WorkspaceRepository,
	requesters requestersrepo.RequesterRepository,
	classifier scoring.Classifier,
	publisher events.Publisher,
	validator *validator.AllocationValidator,
	cfg *config.Config,
) AllocationService {
	return &allocationService{
		repo:       repo,
		lockRepo:   lockRepo,
		workspaces: workspaces,
		requesters: requesters,
		classifier: classifier,
		publisher:  publisher,
		validator:  validator,
		cfg:        cfg,
	}
}

// Confirm commits a booking. An advisory lock on the workspace serializes
// concurrent confirms, and the overlap re-check runs inside the transaction
// so exactly one of two racing requests for an overlapping window wins.
func (s *allocationService) Confirm(ctx context.Context, confirm *model.AllocationConfirm) (*model.Allocation, error) {
	s.sanitizeConfirm(confirm)
	if err := s.validator.ValidateConfirm(confirm); err != nil {
		s.cfg.Log.Warn("Allocation confirm validation failed", "error", err)
		return nil, apperrors.Validation("Allocation validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.workspaces.FindByID(ctx, confirm.WorkspaceID); err != nil {
		return nil, apperrors.NotFoundWithID("Workspace", confirm.WorkspaceID)
	}

	lockID, err := s.acquireWorkspaceLock(ctx, confirm.WorkspaceID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseWorkspaceLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release allocation lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	allocation := &model.Allocation{
		WorkspaceID:        confirm.WorkspaceID,
		RequesterID:        confirm.RequesterID,
		StartTime:          confirm.StartTime,
		EndTime:            confirm.EndTime,
		TeamSize:           confirm.TeamSize,
		PrivacyNeed:        confirm.PrivacyNeed,
		CollaborationNeed:  confirm.CollaborationNeed,
		RequiredFacilities: confirm.RequiredFacilities,
		Notes:              confirm.Notes,
		Status:             model.StatusActive,
		SuitabilityScore:   confirm.SuitabilityScore,
		ConfidenceScore:    confirm.ConfidenceScore,
		Reasoning:          confirm.Reasoning,
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflict(sessCtx, allocation); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, allocation); err != nil {
			return apperrors.Internal("Failed to create allocation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to confirm allocation",
			"workspace_id", confirm.WorkspaceID,
			"requester_id", confirm.RequesterID,
			"error", err,
		)
		return nil, err
	}

	s.publisher.AllocationConfirmed(ctx, allocation)

	s.cfg.Log.Info("Allocation confirmed successfully",
		"id", allocation.ID,
		"workspace_id", allocation.WorkspaceID,
		"requester_id", allocation.RequesterID,
		"start_time", allocation.StartTime,
	)
	return allocation, nil
}

func (s *allocationService) GetByID(ctx context.Context, id string) (*model.Allocation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Allocation ID cannot be empty")
	}

	allocation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, allocationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Allocation", id)
		}
		if errors.Is(err, allocationserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid allocation ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve allocation", err)
	}

	return allocation, nil
}

func (s *allocationService) GetAll(ctx context.Context, filter model.AllocationFilter, limit int, offset int64) ([]*model.Allocation, int64, error) {
	var count int64
	var allocations []*model.Allocation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByFilter(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count allocations", "error", errCount)
			errCount = apperrors.Internal("Failed to count allocations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		allocations, errFind = s.repo.FindByFilter(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list allocations", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve allocations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return allocations, count, nil
}

// Update applies administrative changes. Status moves are checked against
// the transition table; anything outside it is a conflict, not a validation
// error, because the record itself is in the way.
func (s *allocationService) Update(ctx context.Context, id string, updates *model.AllocationUpdate) (*model.Allocation, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Allocation update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	if updates.Status != "" && updates.Status != existing.Status {
		if !existing.Status.CanTransitionTo(updates.Status) {
			return nil, apperrors.Conflict(fmt.Sprintf(
				"Cannot transition allocation from %s to %s", existing.Status, updates.Status,
			))
		}
	}

	if updates.Notes != nil {
		*updates.Notes = sanitizer.NormalizeNotes(*updates.Notes)
	}

	if err := s.repo.UpdateStatusAndNotes(ctx, id, updates.Status, updates.Notes); err != nil {
		if errors.Is(err, allocationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Allocation", id)
		}
		s.cfg.Log.Error("Failed to update allocation", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update allocation", err)
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if updates.Status == model.StatusCancelled && existing.Status != model.StatusCancelled {
		s.publisher.AllocationCancelled(ctx, updated)
	}

	s.cfg.Log.Info("Allocation updated successfully", "id", id)
	return updated, nil
}

// Cancel flips an Active allocation owned by the requester to Cancelled.
// Wrong owner, wrong status and missing record all answer not found so the
// caller learns nothing about allocations that are not theirs.
func (s *allocationService) Cancel(ctx context.Context, id string, requesterID string) (*model.Allocation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Allocation ID cannot be empty")
	}
	if requesterID == "" {
		return nil, apperrors.InvalidInput("Requester ID cannot be empty")
	}

	if err := s.repo.CancelOwned(ctx, id, requesterID); err != nil {
		if errors.Is(err, allocationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Allocation", id)
		}
		if errors.Is(err, allocationserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid allocation ID format")
		}
		s.cfg.Log.Error("Failed to cancel allocation", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to cancel allocation", err)
	}

	cancelled, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publisher.AllocationCancelled(ctx, cancelled)

	s.cfg.Log.Info("Allocation cancelled successfully", "id", id, "requester_id", requesterID)
	return cancelled, nil
}

// --- Helpers ---

func (s *allocationService) sanitizeConfirm(c *model.AllocationConfirm) {
	c.Notes = sanitizer.NormalizeNotes(c.Notes)
	c.RequiredFacilities = sanitizer.NormalizeTags(c.RequiredFacilities)
}

func (s *allocationService) verifyNoConflict(ctx context.Context, allocation *model.Allocation) error {
	existing, err := s.repo.FindActiveOverlapping(ctx, allocation.WorkspaceID, allocation.StartTime, allocation.EndTime)
	if err != nil {
		return apperrors.Internal("Failed to check existing allocations", err)
	}

	if len(existing) > 0 {
		return apperrors.ConflictWindow(allocation.WorkspaceID, allocation.StartTime, allocation.EndTime)
	}
	return nil
}

const (
	lockAcquireAttempts = 4
	lockAcquireDelay    = 25 * time.Millisecond
)

// acquireWorkspaceLock takes the per-workspace advisory lock. Locking the
// workspace rather than the slot serializes every pair of overlapping
// windows, not just identical start times. Lock contention is usually a
// concurrent confirm finishing its transaction, so a held lock is retried
// briefly before the caller is told to try again.
func (s *allocationService) acquireWorkspaceLock(ctx context.Context, workspaceID string) (string, error) {
	lockID := fmt.Sprintf("allocation_lock_%s", workspaceID)

	for attempt := 1; ; attempt++ {
		lock := &model.AllocationLock{
			ID:        lockID,
			ExpiresAt: time.Now().Add(s.cfg.AllocationLockTTL),
		}

		_, err := s.lockRepo.Create(ctx, lock)
		if err == nil {
			return lockID, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Internal("Failed to acquire allocation lock", err)
		}
		if attempt >= lockAcquireAttempts {
			return "", apperrors.Conflict("This workspace is currently being booked by another request. Please try again.")
		}

		s.cfg.Log.Debug("Allocation lock held, retrying", "workspace_id", workspaceID, "attempt", attempt)
		select {
		case <-ctx.Done():
			return "", apperrors.Internal("Failed to acquire allocation lock", ctx.Err())
		case <-time.After(lockAcquireDelay):
		}
	}
}

func (s *allocationService) releaseWorkspaceLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

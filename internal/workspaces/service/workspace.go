package service

import (
	"context"
	"errors"
	"sync"
	"time"

	workspaceserrors "deskhive/internal/workspaces/errors"
	"deskhive/internal/workspaces/repository"
	"deskhive/internal/workspaces/validator"
	"deskhive/pkg/config"
	apperrors "deskhive/pkg/errors"
	"deskhive/pkg/model"
	"deskhive/pkg/sanitizer"
)

// AllocationReader is the slice of the allocation store this service needs:
// live occupancy and a delete guard. The allocations repository satisfies it.
type AllocationReader interface {
	FindActiveCovering(ctx context.Context, workspaceID string, at time.Time) (*model.Allocation, error)
	CountOpenByWorkspace(ctx context.Context, workspaceID string) (int64, error)
}

type WorkspaceService interface {
	Create(ctx context.Context, workspace *model.Workspace) error
	GetByID(ctx context.Context, id string) (*model.Workspace, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Workspace, int64, error)
	Update(ctx context.Context, id string, updates *model.WorkspaceUpdate) error
	Delete(ctx context.Context, id string) error
	SetAvailability(ctx context.Context, id string, available bool) error
	GetStatus(ctx context.Context, id string) (*model.WorkspaceStatus, error)
}

type workspaceService struct {
	repo        repository.WorkspaceRepository
	allocations AllocationReader
	validator   *validator.WorkspaceValidator
	cfg         *config.Config
}

func NewWorkspaceService(
	repo repository.WorkspaceRepository,
	allocations AllocationReader,
	validator *validator.WorkspaceValidator,
	cfg *config.Config,
) WorkspaceService {
	return &workspaceService{
		repo:        repo,
		allocations: allocations,
		validator:   validator,
		cfg:         cfg,
	}
}

func (s *workspaceService) Create(ctx context.Context, workspace *model.Workspace) error {
	s.sanitize(workspace)
	if err := s.validate(workspace); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, workspace); err != nil {
		s.cfg.Log.Error("Failed to create workspace", "error", err)
		return apperrors.Internal("Failed to create workspace", err)
	}

	s.cfg.Log.Info("Workspace created successfully",
		"id", workspace.ID,
		"name", workspace.Name,
		"type", workspace.Type,
		"capacity", workspace.Capacity,
	)
	return nil
}

func (s *workspaceService) GetByID(ctx context.Context, id string) (*model.Workspace, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Workspace ID cannot be empty")
	}

	workspace, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, workspaceserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Workspace", id)
		}
		if errors.Is(err, workspaceserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid workspace ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve workspace", err)
	}

	return workspace, nil
}

func (s *workspaceService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Workspace, int64, error) {
	var count int64
	var workspaces []*model.Workspace
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count workspaces", "error", errCount)
			errCount = apperrors.Internal("Failed to count workspaces", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		workspaces, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list workspaces", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve workspaces", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return workspaces, count, nil
}

func (s *workspaceService) Update(ctx context.Context, id string, updates *model.WorkspaceUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Workspace ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, workspaceserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Workspace", id)
		}
		if errors.Is(err, workspaceserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid workspace ID format")
		}
		return apperrors.Internal("Failed to check workspace existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Workspace update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeWorkspaceUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, workspaceserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Workspace", id)
		}
		s.cfg.Log.Error("Failed to update workspace", "id", id, "error", err)
		return apperrors.Internal("Failed to update workspace", err)
	}

	s.cfg.Log.Info("Workspace updated successfully", "id", id)
	return nil
}

// Delete refuses to remove a workspace that still has open allocations.
// Cancelling or completing those first keeps the interval history coherent.
func (s *workspaceService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Workspace ID cannot be empty")
	}

	open, err := s.allocations.CountOpenByWorkspace(ctx, id)
	if err != nil {
		s.cfg.Log.Error("Failed to check workspace allocations", "id", id, "error", err)
		return apperrors.Internal("Failed to check workspace allocations", err)
	}
	if open > 0 {
		return apperrors.Conflict("Workspace has open allocations and cannot be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, workspaceserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Workspace", id)
		}
		if errors.Is(err, workspaceserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid workspace ID format")
		}
		return apperrors.Internal("Failed to delete workspace", err)
	}

	s.cfg.Log.Info("Workspace deleted successfully", "id", id)
	return nil
}

func (s *workspaceService) SetAvailability(ctx context.Context, id string, available bool) error {
	if id == "" {
		return apperrors.InvalidInput("Workspace ID cannot be empty")
	}

	if err := s.repo.SetAvailability(ctx, id, available); err != nil {
		if errors.Is(err, workspaceserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Workspace", id)
		}
		if errors.Is(err, workspaceserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid workspace ID format")
		}
		s.cfg.Log.Error("Failed to set workspace availability", "id", id, "error", err)
		return apperrors.Internal("Failed to set workspace availability", err)
	}

	s.cfg.Log.Info("Workspace availability updated", "id", id, "available", available)
	return nil
}

// GetStatus resolves the live status. An active allocation covering now
// marks the workspace occupied until that allocation's end time, even
// when the occupancy monitor has flipped the availability flag off. The
// flag only reports Unavailable when nothing is currently running.
func (s *workspaceService) GetStatus(ctx context.Context, id string) (*model.WorkspaceStatus, error) {
	workspace, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := &model.WorkspaceStatus{
		WorkspaceID: workspace.ID,
	}

	current, err := s.allocations.FindActiveCovering(ctx, workspace.ID, time.Now().UTC())
	if err != nil {
		s.cfg.Log.Error("Failed to check workspace occupancy", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to check workspace occupancy", err)
	}

	if current != nil {
		status.Status = model.WorkspaceOccupied
		status.OccupiedUntil = &current.EndTime
		return status, nil
	}

	if !workspace.IsAvailable {
		status.Status = model.WorkspaceUnavailable
		return status, nil
	}

	status.Status = model.WorkspaceAvailable
	return status, nil
}

// --- Helpers ---

func (s *workspaceService) sanitize(w *model.Workspace) {
	w.Name = sanitizer.NormalizeName(w.Name)
	w.Type = sanitizer.TrimAndNormalize(w.Type)
	w.Description = sanitizer.NormalizeNotes(w.Description)
	w.Facilities = sanitizer.NormalizeTags(w.Facilities)
}

func (s *workspaceService) mergeWorkspaceUpdates(existing *model.Workspace, updates *model.WorkspaceUpdate) *model.Workspace {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Type != "" {
		merged.Type = updates.Type
	}
	if updates.Floor != nil {
		merged.Floor = *updates.Floor
	}
	if updates.Capacity != nil {
		merged.Capacity = *updates.Capacity
	}
	if updates.Facilities != nil {
		merged.Facilities = *updates.Facilities
	}
	if updates.IsAvailable != nil {
		merged.IsAvailable = *updates.IsAvailable
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.XCoord != nil {
		merged.XCoord = updates.XCoord
	}
	if updates.YCoord != nil {
		merged.YCoord = updates.YCoord
	}

	return &merged
}

func (s *workspaceService) validate(workspace *model.Workspace) error {
	if err := s.validator.Validate(workspace); err != nil {
		s.cfg.Log.Warn("Workspace validation failed", "error", err)
		return apperrors.Validation("Workspace validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

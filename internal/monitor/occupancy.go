package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "deskhive/pkg/errors"
	"deskhive/pkg/kafka"
	"deskhive/pkg/logger"
	"deskhive/pkg/model"
)

// AvailabilitySetter is the single workspace operation the monitor needs.
type AvailabilitySetter interface {
	SetAvailability(ctx context.Context, id string, available bool) error
}

// OccupancyMonitor mirrors occupancy sensor events onto the workspace
// availability flag: any reported person count marks the workspace
// unavailable, zero frees it again.
type OccupancyMonitor struct {
	workspaces AvailabilitySetter
	log        *logger.Logger
}

func NewOccupancyMonitor(workspaces AvailabilitySetter, log *logger.Logger) *OccupancyMonitor {
	return &OccupancyMonitor{
		workspaces: workspaces,
		log:        log,
	}
}

func (m *OccupancyMonitor) Handle(ctx context.Context, msg kafka.Message) error {
	var event model.OccupancyEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return kafka.Permanent(fmt.Errorf("failed to decode occupancy event: %w", err))
	}

	if event.WorkspaceID == "" {
		return kafka.Permanent(errors.New("occupancy event missing workspace_id"))
	}

	available := event.PersonCount == 0

	if err := m.workspaces.SetAvailability(ctx, event.WorkspaceID, available); err != nil {
		if appErr := apperrors.AsAppError(err); appErr != nil && appErr.Code == apperrors.CodeNotFound {
			m.log.Warn("Occupancy event for unknown workspace, dropping",
				"workspace_id", event.WorkspaceID,
			)
			return nil
		}
		return fmt.Errorf("failed to apply occupancy event: %w", err)
	}

	m.log.Info("Workspace availability updated from occupancy event",
		"workspace_id", event.WorkspaceID,
		"person_count", event.PersonCount,
		"available", available,
		"captured_at", event.CapturedAt,
	)
	return nil
}

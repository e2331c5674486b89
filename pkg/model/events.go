package model

import "time"

type AllocationEventType string

const (
	EventAllocationConfirmed AllocationEventType = "allocation.confirmed"
	EventAllocationCancelled AllocationEventType = "allocation.cancelled"
)

// AllocationEvent is published after a successful commit or cancel.
type AllocationEvent struct {
	Type         AllocationEventType `json:"type"`
	AllocationID string              `json:"allocation_id"`
	WorkspaceID  string              `json:"workspace_id"`
	RequesterID  string              `json:"requester_id"`
	StartTime    time.Time           `json:"start_time"`
	EndTime      time.Time           `json:"end_time"`
	OccurredAt   time.Time           `json:"occurred_at"`
}

// OccupancyEvent is emitted by the external occupancy classifier for a
// monitored workspace. PersonCount > 0 means occupied.
type OccupancyEvent struct {
	WorkspaceID string    `json:"workspace_id"`
	PersonCount int       `json:"person_count"`
	CapturedAt  time.Time `json:"captured_at"`
}

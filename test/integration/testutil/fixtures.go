package testutil

import (
	"time"

	"deskhive/pkg/model"
)

type WorkspaceBuilder struct {
	ws model.Workspace
}

func NewWorkspaceBuilder() *WorkspaceBuilder {
	return &WorkspaceBuilder{
		ws: model.Workspace{
			Name:        "Test Workspace",
			Type:        "meeting room",
			Floor:       2,
			Capacity:    6,
			Facilities:  []string{"projector", "whiteboard"},
			IsAvailable: true,
			CreatedAt:   time.Now(),
		},
	}
}

func (b *WorkspaceBuilder) WithName(name string) *WorkspaceBuilder {
	b.ws.Name = name
	return b
}

func (b *WorkspaceBuilder) WithType(wsType string) *WorkspaceBuilder {
	b.ws.Type = wsType
	return b
}

func (b *WorkspaceBuilder) WithFloor(floor int) *WorkspaceBuilder {
	b.ws.Floor = floor
	return b
}

func (b *WorkspaceBuilder) WithCapacity(capacity int) *WorkspaceBuilder {
	b.ws.Capacity = capacity
	return b
}

func (b *WorkspaceBuilder) WithFacilities(facilities ...string) *WorkspaceBuilder {
	b.ws.Facilities = facilities
	return b
}

func (b *WorkspaceBuilder) Unavailable() *WorkspaceBuilder {
	b.ws.IsAvailable = false
	return b
}

func (b *WorkspaceBuilder) Build() model.Workspace {
	return b.ws
}

func (b *WorkspaceBuilder) BuildPtr() *model.Workspace {
	ws := b.ws
	return &ws
}

func ValidWorkspace() model.Workspace {
	return NewWorkspaceBuilder().Build()
}

func MinimalWorkspace() model.Workspace {
	return model.Workspace{
		Name:        "Minimal Desk",
		Type:        "hot desk",
		Capacity:    1,
		IsAvailable: true,
	}
}

func InvalidCapacityWorkspace() model.Workspace {
	return NewWorkspaceBuilder().WithCapacity(0).Build()
}

// ValidRequesterDoc is suitable for direct insertion into the Requesters
// collection; requesters have no write API in this engine.
func ValidRequesterDoc() map[string]interface{} {
	return map[string]interface{}{
		"name":       "Dana Levi",
		"level":      "senior",
		"department": "platform",
		"created_at": time.Now(),
	}
}

// TomorrowWindow returns a clean future booking window, aligned to the
// hour so the past-start validator never trips near midnight.
func TomorrowWindow(startHour, hours int) (time.Time, time.Time) {
	day := time.Now().AddDate(0, 0, 1)
	start := time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, time.UTC)
	return start, start.Add(time.Duration(hours) * time.Hour)
}

func ConfirmRequest(requesterID, workspaceID string, start, end time.Time, teamSize int) model.AllocationConfirm {
	return model.AllocationConfirm{
		RequesterID: requesterID,
		WorkspaceID: workspaceID,
		StartTime:   start,
		EndTime:     end,
		TeamSize:    teamSize,
	}
}

func SuggestRequest(requesterID string, start, end time.Time, teamSize int) model.SuggestionRequest {
	return model.SuggestionRequest{
		RequesterID: requesterID,
		StartTime:   start,
		EndTime:     end,
		TeamSize:    teamSize,
	}
}

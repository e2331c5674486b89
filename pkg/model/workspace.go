package model

import "time"

type Workspace struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Type        string    `json:"type" bson:"type" validate:"required,min=2,max=50"`
	Floor       int       `json:"floor" bson:"floor"`
	Capacity    int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=500"`
	Facilities  []string  `json:"facilities" bson:"facilities" validate:"omitempty,dive,min=1,max=50"`
	IsAvailable bool      `json:"is_available" bson:"is_available"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	XCoord      *float64  `json:"x_coord,omitempty" bson:"x_coord,omitempty"`
	YCoord      *float64  `json:"y_coord,omitempty" bson:"y_coord,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type WorkspaceUpdate struct {
	Name        string    `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Type        string    `json:"type,omitempty" validate:"omitempty,min=2,max=50"`
	Floor       *int      `json:"floor,omitempty"`
	Capacity    *int      `json:"capacity,omitempty" validate:"omitempty,min=1,max=500"`
	Facilities  *[]string `json:"facilities,omitempty" validate:"omitempty,dive,min=1,max=50"`
	IsAvailable *bool     `json:"is_available,omitempty"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=500"`
	XCoord      *float64  `json:"x_coord,omitempty"`
	YCoord      *float64  `json:"y_coord,omitempty"`
}

// HasFacilities reports whether the workspace facility set is a superset
// of the required set.
func (w *Workspace) HasFacilities(required []string) bool {
	if len(required) == 0 {
		return true
	}
	available := make(map[string]struct{}, len(w.Facilities))
	for _, f := range w.Facilities {
		available[f] = struct{}{}
	}
	for _, f := range required {
		if _, ok := available[f]; !ok {
			return false
		}
	}
	return true
}

// MissingFacilities returns the required facilities the workspace lacks,
// in the order they were requested.
func (w *Workspace) MissingFacilities(required []string) []string {
	available := make(map[string]struct{}, len(w.Facilities))
	for _, f := range w.Facilities {
		available[f] = struct{}{}
	}
	var missing []string
	for _, f := range required {
		if _, ok := available[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// CandidateFilter narrows the workspace catalog to allocation candidates.
// Zero values mean "no constraint" except MinCapacity, which is always applied.
type CandidateFilter struct {
	MinCapacity        int
	Floor              *int
	TypeContains       string
	RequiredFacilities []string
	OnlyAvailable      bool
	Limit              int
}

const (
	WorkspaceAvailable   = "Available"
	WorkspaceOccupied    = "Occupied"
	WorkspaceUnavailable = "Unavailable"
)

// WorkspaceStatus is the live view of a workspace: Occupied when an active
// allocation covers now, Unavailable when the availability flag is off and
// no allocation covers now, Available otherwise.
type WorkspaceStatus struct {
	WorkspaceID   string     `json:"workspace_id"`
	Status        string     `json:"status"`
	OccupiedUntil *time.Time `json:"occupied_until,omitempty"`
}

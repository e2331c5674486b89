package model

import "time"

type NeedLevel string

const (
	NeedLow    NeedLevel = "low"
	NeedMedium NeedLevel = "medium"
	NeedHigh   NeedLevel = "high"
)

type Allocation struct {
	ID                 string           `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	WorkspaceID        string           `json:"workspace_id" bson:"workspace_id" validate:"required,mongodb"`
	RequesterID        string           `json:"requester_id" bson:"requester_id" validate:"required,mongodb"`
	StartTime          time.Time        `json:"start_time" bson:"start_time" validate:"required"`
	EndTime            time.Time        `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	TeamSize           int              `json:"team_size" bson:"team_size" validate:"required,min=1,max=500"`
	PrivacyNeed        NeedLevel        `json:"privacy_need" bson:"privacy_need" validate:"omitempty,oneof=low medium high"`
	CollaborationNeed  NeedLevel        `json:"collaboration_need" bson:"collaboration_need" validate:"omitempty,oneof=low medium high"`
	RequiredFacilities []string         `json:"required_facilities" bson:"required_facilities" validate:"omitempty,dive,min=1,max=50"`
	Notes              string           `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=500"`
	Status             AllocationStatus `json:"status" bson:"status" validate:"required,oneof=Active Pending Completed Cancelled"`
	SuitabilityScore   *float64         `json:"suitability_score,omitempty" bson:"suitability_score,omitempty" validate:"omitempty,min=0,max=100"`
	ConfidenceScore    *float64         `json:"confidence_score,omitempty" bson:"confidence_score,omitempty" validate:"omitempty,min=0,max=1"`
	Reasoning          []string         `json:"reasoning,omitempty" bson:"reasoning,omitempty"`
	CreatedAt          time.Time        `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// AllocationUpdate carries the administrative mutations: a status move
// within the transition table, or new notes.
type AllocationUpdate struct {
	Status AllocationStatus `json:"status,omitempty" validate:"omitempty,oneof=Active Pending Completed Cancelled"`
	Notes  *string          `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// AllocationConfirm is the confirm-booking payload. Scores are optional
// pass-through from a prior suggestion, stored as an audit trail.
type AllocationConfirm struct {
	RequesterID        string    `json:"requester_id" validate:"required,mongodb"`
	WorkspaceID        string    `json:"workspace_id" validate:"required,mongodb"`
	StartTime          time.Time `json:"start_time" validate:"required"`
	EndTime            time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	TeamSize           int       `json:"team_size" validate:"required,min=1,max=500"`
	PrivacyNeed        NeedLevel `json:"privacy_need" validate:"omitempty,oneof=low medium high"`
	CollaborationNeed  NeedLevel `json:"collaboration_need" validate:"omitempty,oneof=low medium high"`
	RequiredFacilities []string  `json:"required_facilities" validate:"omitempty,dive,min=1,max=50"`
	Notes              string    `json:"notes,omitempty" validate:"omitempty,max=500"`
	SuitabilityScore   *float64  `json:"suitability_score,omitempty" validate:"omitempty,min=0,max=100"`
	ConfidenceScore    *float64  `json:"confidence_score,omitempty" validate:"omitempty,min=0,max=1"`
	Reasoning          []string  `json:"reasoning,omitempty"`
}

// SuggestionRequest asks the planner for ranked workspace candidates over
// a time window.
type SuggestionRequest struct {
	RequesterID        string    `json:"requester_id" validate:"required,mongodb"`
	StartTime          time.Time `json:"start_time" validate:"required"`
	EndTime            time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	TeamSize           int       `json:"team_size" validate:"required,min=1,max=500"`
	PrivacyNeed        NeedLevel `json:"privacy_need" validate:"omitempty,oneof=low medium high"`
	CollaborationNeed  NeedLevel `json:"collaboration_need" validate:"omitempty,oneof=low medium high"`
	RequiredFacilities []string  `json:"required_facilities" validate:"omitempty,dive,min=1,max=50"`
	PreferredFloor     *int      `json:"preferred_floor,omitempty"`
	PreferredType      string    `json:"preferred_type,omitempty" validate:"omitempty,max=50"`
	Notes              string    `json:"notes,omitempty" validate:"omitempty,max=500"`
	Limit              int       `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

// AllocationFilter narrows allocation listings.
type AllocationFilter struct {
	RequesterID string
	WorkspaceID string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      AllocationStatus
}

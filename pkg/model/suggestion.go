package model

import "time"

// SuggestionSentinelID marks a suggestion as ephemeral: it is never
// persisted and must not be confused with a committed allocation id.
const SuggestionSentinelID = "suggestion"

// Suggestion is a scored workspace candidate for a requested time window.
// Suggestions live only within a single suggest call.
type Suggestion struct {
	ID               string    `json:"id"`
	WorkspaceID      string    `json:"workspace_id"`
	RequesterID      string    `json:"requester_id"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	TeamSize         int       `json:"team_size"`
	IsSuitable       bool      `json:"is_suitable"`
	SuitabilityScore float64   `json:"suitability_score"`
	ConfidenceScore  float64   `json:"confidence_score"`
	Reasoning        []string  `json:"reasoning"`
	Workspace        Workspace `json:"workspace"`
}

package scoring

import (
	"context"
	"fmt"
	"strings"

	"deskhive/pkg/model"
)

// Prediction is a classifier verdict for one workspace and request pair.
type Prediction struct {
	IsSuitable bool
	Confidence float64
}

// RequestContext carries the request-side features the classifier and the
// rule layer consume.
type RequestContext struct {
	TeamSize           int
	PrivacyNeed        model.NeedLevel
	CollaborationNeed  model.NeedLevel
	RequiredFacilities []string
	TimeOfDay          string
	DurationHours      float64
	DayType            string
	PreferredFloor     *int
	PreferredType      string
}

// Classifier predicts whether a workspace suits a request. Implementations
// may be remote; errors are expected and callers fall back to rules.
type Classifier interface {
	Predict(ctx context.Context, requester *model.Requester, workspace *model.Workspace, rctx RequestContext) (*Prediction, error)
}

// FeatureText flattens the pair into the single text feature the remote
// classifier was trained on.
func FeatureText(requester *model.Requester, workspace *model.Workspace, rctx RequestContext) string {
	level := "N/A"
	department := "N/A"
	if requester != nil {
		if requester.Level != "" {
			level = requester.Level
		}
		if requester.Department != "" {
			department = requester.Department
		}
	}

	return fmt.Sprintf(
		"User level: %s. User department: %s. Workspace type: %s. Capacity: %d. Floor: %d. "+
			"Available facilities: %s. Team size needed: %d. Privacy need: %s. Collaboration need: %s. "+
			"Required facilities: %s. Time: %s. Duration: %g hours. Day type: %s.",
		level,
		department,
		workspace.Type,
		workspace.Capacity,
		workspace.Floor,
		strings.Join(workspace.Facilities, ", "),
		rctx.TeamSize,
		rctx.PrivacyNeed,
		rctx.CollaborationNeed,
		strings.Join(rctx.RequiredFacilities, ", "),
		rctx.TimeOfDay,
		rctx.DurationHours,
		rctx.DayType,
	)
}

// FallbackPrediction is the rule-only verdict used when no classifier is
// configured or a prediction fails: capacity decides, confidence unknown.
func FallbackPrediction(workspace *model.Workspace, teamSize int) *Prediction {
	return &Prediction{
		IsSuitable: workspace.Capacity >= teamSize,
		Confidence: 0.5,
	}
}

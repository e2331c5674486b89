package scoring

import (
	"fmt"
	"math"
	"strings"

	"deskhive/pkg/model"
)

// Result is the full hybrid assessment for one workspace.
type Result struct {
	IsSuitable bool
	Confidence float64
	Score      float64
	Reasoning  []string
}

// Evaluate combines a classifier prediction with the hard-constraint rules
// into a final 10..100 score plus human-readable reasoning. Hard mismatches
// penalize the score rather than excluding the workspace, so callers still
// see every candidate ranked.
func Evaluate(pred *Prediction, workspace *model.Workspace, rctx RequestContext) Result {
	return Result{
		IsSuitable: pred.IsSuitable,
		Confidence: round(pred.Confidence, 4),
		Score:      Score(pred.Confidence, pred.IsSuitable, workspace, rctx),
		Reasoning:  Reasons(pred.IsSuitable, workspace, rctx),
	}
}

// Score starts from scaled model confidence and adjusts for hard constraints
// and preferences. Suitable predictions get a higher base; when the model
// says unsuitable the adjustment is applied inverted so penalties do not
// accidentally raise the score. Clamped to [10, 100].
func Score(confidence float64, isSuitable bool, workspace *model.Workspace, rctx RequestContext) float64 {
	var base float64
	if isSuitable {
		base = confidence*100 + 20
	} else {
		base = (1-confidence)*100 + 10
	}

	adjustment := 0.0
	if workspace.Capacity < rctx.TeamSize {
		adjustment -= 20
	}
	adjustment -= 5 * float64(len(workspace.MissingFacilities(rctx.RequiredFacilities)))

	if rctx.PreferredFloor != nil && workspace.Floor == *rctx.PreferredFloor {
		adjustment += 10
	}
	if rctx.PreferredType != "" && strings.EqualFold(workspace.Type, rctx.PreferredType) {
		adjustment += 10
	}

	var final float64
	if isSuitable {
		final = base + adjustment
	} else {
		final = base - adjustment
	}

	final = math.Max(10, math.Min(100, final))
	return round(final, 2)
}

// Reasons derives the rule-based explanation for a verdict, including notes
// when the model contradicts a hard constraint.
func Reasons(isSuitable bool, workspace *model.Workspace, rctx RequestContext) []string {
	var reasons []string

	if workspace.Capacity < rctx.TeamSize {
		reasons = append(reasons, fmt.Sprintf("Insufficient capacity (%d) for team size (%d).", workspace.Capacity, rctx.TeamSize))
		if isSuitable {
			reasons = append(reasons, "Note: Model suggested suitable despite capacity mismatch.")
		}
	} else if isSuitable {
		reasons = append(reasons, fmt.Sprintf("Capacity (%d) sufficient for team size (%d).", workspace.Capacity, rctx.TeamSize))
	}

	missing := workspace.MissingFacilities(rctx.RequiredFacilities)
	if len(missing) > 0 {
		reasons = append(reasons, fmt.Sprintf("Missing required facilities: %s.", strings.Join(missing, ", ")))
		if isSuitable {
			reasons = append(reasons, "Note: Model suggested suitable despite missing facilities.")
		}
	} else if isSuitable && len(rctx.RequiredFacilities) > 0 {
		reasons = append(reasons, "All required facilities are available.")
	}

	if isSuitable {
		if rctx.PreferredFloor != nil && workspace.Floor == *rctx.PreferredFloor {
			reasons = append(reasons, fmt.Sprintf("Matches preferred floor (%d).", *rctx.PreferredFloor))
		}
		if rctx.PreferredType != "" && strings.EqualFold(workspace.Type, rctx.PreferredType) {
			reasons = append(reasons, fmt.Sprintf("Matches preferred type (%s).", rctx.PreferredType))
		}
		reasons = append(reasons, "Overall assessment: Likely a good fit based on requirements.")
	} else {
		reasons = append(reasons, "Overall assessment: May not be the best fit based on requirements.")
	}

	return reasons
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

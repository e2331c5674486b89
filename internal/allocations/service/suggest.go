package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"deskhive/internal/allocations/scoring"
	requestersrepo "deskhive/internal/requesters/repository"
	apperrors "deskhive/pkg/errors"
	"deskhive/pkg/model"
	"deskhive/pkg/sanitizer"
)

// Suggest plans ranked workspace suggestions for a time window. Candidates
// are filtered on hard availability (catalog constraints plus no Active
// overlap), then scored concurrently. Facility and capacity mismatches
// lower the score but never drop a candidate.
func (s *allocationService) Suggest(ctx context.Context, req *model.SuggestionRequest) ([]*model.Suggestion, error) {
	s.sanitizeSuggestion(req)
	if err := s.validator.ValidateSuggestion(req); err != nil {
		s.cfg.Log.Warn("Suggestion request validation failed", "error", err)
		return nil, apperrors.Validation("Suggestion request validation failed", map[string]any{"error": err.Error()})
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultSuggestionLimit
	}

	requester, err := s.requesters.FindByID(ctx, req.RequesterID)
	if err != nil {
		if errors.Is(err, requestersrepo.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Requester", req.RequesterID)
		}
		if errors.Is(err, requestersrepo.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid requester ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve requester", err)
	}

	candidates, err := s.findFreeCandidates(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		s.cfg.Log.Debug("No candidate workspaces for suggestion request",
			"requester_id", req.RequesterID,
			"team_size", req.TeamSize,
		)
		return []*model.Suggestion{}, nil
	}

	rctx := buildRequestContext(req)
	suggestions := s.scoreCandidates(ctx, requester, candidates, req, rctx)

	// Highest score first; workspace id breaks ties so rankings are stable.
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].SuitabilityScore != suggestions[j].SuitabilityScore {
			return suggestions[i].SuitabilityScore > suggestions[j].SuitabilityScore
		}
		return suggestions[i].WorkspaceID < suggestions[j].WorkspaceID
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	s.cfg.Log.Info("Suggestions generated",
		"requester_id", req.RequesterID,
		"candidates", len(candidates),
		"returned", len(suggestions),
	)
	return suggestions, nil
}

// findFreeCandidates applies the catalog constraints and removes workspaces
// holding an Active allocation overlapping the requested window.
func (s *allocationService) findFreeCandidates(ctx context.Context, req *model.SuggestionRequest) ([]*model.Workspace, error) {
	filter := model.CandidateFilter{
		MinCapacity:   req.TeamSize,
		TypeContains:  req.PreferredType,
		OnlyAvailable: true,
		Limit:         s.cfg.CandidateLimit,
	}
	if req.PreferredFloor != nil && *req.PreferredFloor != 0 {
		filter.Floor = req.PreferredFloor
	}

	candidates, err := s.workspaces.FindCandidates(ctx, filter)
	if err != nil {
		s.cfg.Log.Error("Failed to find candidate workspaces", "error", err)
		return nil, apperrors.Internal("Failed to find candidate workspaces", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	ids := make([]string, len(candidates))
	for i, ws := range candidates {
		ids[i] = ws.ID
	}

	conflicted, err := s.repo.FindConflictedWorkspaceIDs(ctx, ids, req.StartTime, req.EndTime)
	if err != nil {
		s.cfg.Log.Error("Failed to check candidate conflicts", "error", err)
		return nil, apperrors.Internal("Failed to check candidate conflicts", err)
	}

	free := candidates[:0]
	for _, ws := range candidates {
		if _, busy := conflicted[ws.ID]; !busy {
			free = append(free, ws)
		}
	}

	return free, nil
}

// scoreCandidates fans out one scoring call per candidate and collects the
// results by index, so output order matches input order before sorting.
func (s *allocationService) scoreCandidates(
	ctx context.Context,
	requester *model.Requester,
	candidates []*model.Workspace,
	req *model.SuggestionRequest,
	rctx scoring.RequestContext,
) []*model.Suggestion {
	suggestions := make([]*model.Suggestion, len(candidates))

	var wg sync.WaitGroup
	wg.Add(len(candidates))

	for i, ws := range candidates {
		go func(i int, ws *model.Workspace) {
			defer wg.Done()
			result := s.scoreOne(ctx, requester, ws, rctx)
			suggestions[i] = &model.Suggestion{
				ID:               model.SuggestionSentinelID,
				WorkspaceID:      ws.ID,
				RequesterID:      req.RequesterID,
				StartTime:        req.StartTime,
				EndTime:          req.EndTime,
				TeamSize:         req.TeamSize,
				IsSuitable:       result.IsSuitable,
				SuitabilityScore: result.Score,
				ConfidenceScore:  result.Confidence,
				Reasoning:        result.Reasoning,
				Workspace:        *ws,
			}
		}(i, ws)
	}

	wg.Wait()
	return suggestions
}

// scoreOne asks the classifier when one is configured; on error or absence
// the rule-based fallback verdict is scored instead, so suggestions degrade
// rather than fail.
func (s *allocationService) scoreOne(ctx context.Context, requester *model.Requester, ws *model.Workspace, rctx scoring.RequestContext) scoring.Result {
	pred := scoring.FallbackPrediction(ws, rctx.TeamSize)

	if s.classifier != nil {
		scoreCtx, cancel := context.WithTimeout(ctx, s.cfg.ScoringTimeout)
		defer cancel()

		predicted, err := s.classifier.Predict(scoreCtx, requester, ws, rctx)
		if err != nil {
			s.cfg.Log.Warn("Classifier prediction failed, using fallback",
				"workspace_id", ws.ID,
				"error", err,
			)
		} else {
			pred = predicted
		}
	}

	return scoring.Evaluate(pred, ws, rctx)
}

func (s *allocationService) sanitizeSuggestion(req *model.SuggestionRequest) {
	req.PreferredType = sanitizer.TrimAndNormalize(req.PreferredType)
	req.Notes = sanitizer.NormalizeNotes(req.Notes)
	req.RequiredFacilities = sanitizer.NormalizeTags(req.RequiredFacilities)
}

func buildRequestContext(req *model.SuggestionRequest) scoring.RequestContext {
	dayType := "weekday"
	switch req.StartTime.Weekday() {
	case time.Saturday, time.Sunday:
		dayType = "weekend"
	}

	return scoring.RequestContext{
		TeamSize:           req.TeamSize,
		PrivacyNeed:        req.PrivacyNeed,
		CollaborationNeed:  req.CollaborationNeed,
		RequiredFacilities: req.RequiredFacilities,
		TimeOfDay:          req.StartTime.Format("15:04"),
		DurationHours:      req.EndTime.Sub(req.StartTime).Hours(),
		DayType:            dayType,
		PreferredFloor:     req.PreferredFloor,
		PreferredType:      req.PreferredType,
	}
}

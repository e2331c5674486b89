package validator

import (
	"strings"
	"testing"
	"time"

	"deskhive/pkg/logger"
	"deskhive/pkg/model"
)

const (
	workspaceID = "507f1f77bcf86cd799439011"
	requesterID = "507f191e810c19729de860ea"
)

func newTestValidator() *AllocationValidator {
	return NewAllocationValidator(logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	}))
}

func validConfirm() *model.AllocationConfirm {
	start := time.Now().Add(24 * time.Hour)
	return &model.AllocationConfirm{
		RequesterID: requesterID,
		WorkspaceID: workspaceID,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		TeamSize:    4,
	}
}

func TestValidateConfirm_Valid(t *testing.T) {
	v := newTestValidator()
	if err := v.ValidateConfirm(validConfirm()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateConfirm_EndBeforeStart(t *testing.T) {
	v := newTestValidator()
	confirm := validConfirm()
	confirm.EndTime = confirm.StartTime.Add(-time.Hour)

	err := v.ValidateConfirm(confirm)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "EndTime") {
		t.Errorf("expected EndTime violation, got %v", err)
	}
}

func TestValidateConfirm_EqualStartAndEnd(t *testing.T) {
	v := newTestValidator()
	confirm := validConfirm()
	confirm.EndTime = confirm.StartTime

	if err := v.ValidateConfirm(confirm); err == nil {
		t.Error("zero-length window must be rejected")
	}
}

func TestValidateConfirm_PastStart(t *testing.T) {
	v := newTestValidator()
	confirm := validConfirm()
	confirm.StartTime = time.Now().Add(-time.Hour)
	confirm.EndTime = time.Now().Add(time.Hour)

	err := v.ValidateConfirm(confirm)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "start_time cannot be in the past") {
		t.Errorf("expected past start violation, got %v", err)
	}
}

func TestValidateConfirm_BadWorkspaceID(t *testing.T) {
	v := newTestValidator()
	confirm := validConfirm()
	confirm.WorkspaceID = "not-an-object-id"

	err := v.ValidateConfirm(confirm)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "WorkspaceID") {
		t.Errorf("expected WorkspaceID violation, got %v", err)
	}
}

func TestValidateConfirm_TeamSizeBounds(t *testing.T) {
	v := newTestValidator()

	confirm := validConfirm()
	confirm.TeamSize = 0
	if err := v.ValidateConfirm(confirm); err == nil {
		t.Error("team size 0 must be rejected")
	}

	confirm = validConfirm()
	confirm.TeamSize = 501
	if err := v.ValidateConfirm(confirm); err == nil {
		t.Error("team size above 500 must be rejected")
	}
}

func TestValidateConfirm_NeedLevels(t *testing.T) {
	v := newTestValidator()

	confirm := validConfirm()
	confirm.PrivacyNeed = "extreme"
	if err := v.ValidateConfirm(confirm); err == nil {
		t.Error("unknown need level must be rejected")
	}

	confirm = validConfirm()
	confirm.PrivacyNeed = model.NeedHigh
	confirm.CollaborationNeed = model.NeedMedium
	if err := v.ValidateConfirm(confirm); err != nil {
		t.Errorf("valid need levels rejected: %v", err)
	}
}

func TestValidateSuggestion_Valid(t *testing.T) {
	v := newTestValidator()
	start := time.Now().Add(24 * time.Hour)

	req := &model.SuggestionRequest{
		RequesterID: requesterID,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		TeamSize:    4,
	}
	if err := v.ValidateSuggestion(req); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateSuggestion_NegativePreferredFloor(t *testing.T) {
	v := newTestValidator()
	start := time.Now().Add(24 * time.Hour)
	floor := -2

	req := &model.SuggestionRequest{
		RequesterID:    requesterID,
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		TeamSize:       4,
		PreferredFloor: &floor,
	}
	if err := v.ValidateSuggestion(req); err == nil {
		t.Error("negative preferred floor must be rejected")
	}
}

func TestValidateSuggestion_LimitBounds(t *testing.T) {
	v := newTestValidator()
	start := time.Now().Add(24 * time.Hour)

	req := &model.SuggestionRequest{
		RequesterID: requesterID,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		TeamSize:    4,
		Limit:       101,
	}
	if err := v.ValidateSuggestion(req); err == nil {
		t.Error("limit above 100 must be rejected")
	}
}

func TestValidateUpdate(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateUpdate(&model.AllocationUpdate{Status: model.StatusCancelled}); err != nil {
		t.Errorf("valid status rejected: %v", err)
	}

	if err := v.ValidateUpdate(&model.AllocationUpdate{Status: "Paused"}); err == nil {
		t.Error("unknown status must be rejected")
	}

	long := strings.Repeat("x", 501)
	if err := v.ValidateUpdate(&model.AllocationUpdate{Notes: &long}); err == nil {
		t.Error("overlong notes must be rejected")
	}
}

package model

import "testing"

func TestAllocationStatus_Valid(t *testing.T) {
	for _, s := range []AllocationStatus{StatusActive, StatusPending, StatusCompleted, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if AllocationStatus("Running").Valid() {
		t.Error("unknown status should not be valid")
	}
}

func TestAllocationStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    AllocationStatus
		to      AllocationStatus
		allowed bool
	}{
		{StatusActive, StatusCancelled, true},
		{StatusActive, StatusCompleted, true},
		{StatusActive, StatusPending, false},
		{StatusPending, StatusActive, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusCompleted, StatusActive, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusActive, false},
		{StatusCancelled, StatusCompleted, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestAllocationStatus_Terminal(t *testing.T) {
	if StatusActive.Terminal() || StatusPending.Terminal() {
		t.Error("Active and Pending are not terminal")
	}
	if !StatusCompleted.Terminal() || !StatusCancelled.Terminal() {
		t.Error("Completed and Cancelled are terminal")
	}
}

package model

type AllocationStatus string

const (
	StatusActive    AllocationStatus = "Active"
	StatusPending   AllocationStatus = "Pending"
	StatusCompleted AllocationStatus = "Completed"
	StatusCancelled AllocationStatus = "Cancelled"
)

// allowedTransitions is the closed transition table for allocation statuses.
// Completed and Cancelled are terminal. Pending exists for approval
// workflows; this engine only passes it through.
var allowedTransitions = map[AllocationStatus][]AllocationStatus{
	StatusActive:  {StatusCancelled, StatusCompleted},
	StatusPending: {StatusActive, StatusCancelled},
}

func (s AllocationStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s AllocationStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s AllocationStatus) CanTransitionTo(next AllocationStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	apperrors "deskhive/pkg/errors"
	"deskhive/pkg/kafka"
	"deskhive/pkg/logger"
	"deskhive/pkg/model"
)

type mockAvailabilitySetter struct {
	calls []setAvailabilityCall
	err   error
}

type setAvailabilityCall struct {
	id        string
	available bool
}

func (m *mockAvailabilitySetter) SetAvailability(ctx context.Context, id string, available bool) error {
	m.calls = append(m.calls, setAvailabilityCall{id: id, available: available})
	return m.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func occupancyMessage(t *testing.T, event model.OccupancyEvent) kafka.Message {
	t.Helper()
	value, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}
	return kafka.Message{Value: value}
}

func TestHandle_OccupiedMarksUnavailable(t *testing.T) {
	setter := &mockAvailabilitySetter{}
	m := NewOccupancyMonitor(setter, testLogger())

	msg := occupancyMessage(t, model.OccupancyEvent{
		WorkspaceID: "ws-1",
		PersonCount: 3,
		CapturedAt:  time.Now(),
	})

	if err := m.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(setter.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(setter.calls))
	}
	if setter.calls[0].id != "ws-1" || setter.calls[0].available {
		t.Errorf("expected ws-1 marked unavailable, got %+v", setter.calls[0])
	}
}

func TestHandle_EmptyMarksAvailable(t *testing.T) {
	setter := &mockAvailabilitySetter{}
	m := NewOccupancyMonitor(setter, testLogger())

	msg := occupancyMessage(t, model.OccupancyEvent{
		WorkspaceID: "ws-2",
		PersonCount: 0,
	})

	if err := m.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(setter.calls) != 1 || !setter.calls[0].available {
		t.Errorf("expected ws-2 marked available, got %+v", setter.calls)
	}
}

func TestHandle_MalformedPayloadIsPermanent(t *testing.T) {
	setter := &mockAvailabilitySetter{}
	m := NewOccupancyMonitor(setter, testLogger())

	err := m.Handle(context.Background(), kafka.Message{Value: []byte("{not json")})
	if err == nil {
		t.Fatal("expected error")
	}
	if kafka.ShouldRetry(err, 0, 3) {
		t.Error("malformed payload must not be retried")
	}
	if len(setter.calls) != 0 {
		t.Error("no availability change expected for malformed payload")
	}
}

func TestHandle_MissingWorkspaceIDIsPermanent(t *testing.T) {
	setter := &mockAvailabilitySetter{}
	m := NewOccupancyMonitor(setter, testLogger())

	msg := occupancyMessage(t, model.OccupancyEvent{PersonCount: 1})

	err := m.Handle(context.Background(), msg)
	if err == nil {
		t.Fatal("expected error")
	}
	if kafka.ShouldRetry(err, 0, 3) {
		t.Error("missing workspace_id must not be retried")
	}
}

func TestHandle_UnknownWorkspaceDropped(t *testing.T) {
	setter := &mockAvailabilitySetter{err: apperrors.NotFoundWithID("Workspace", "ws-3")}
	m := NewOccupancyMonitor(setter, testLogger())

	msg := occupancyMessage(t, model.OccupancyEvent{WorkspaceID: "ws-3", PersonCount: 1})

	if err := m.Handle(context.Background(), msg); err != nil {
		t.Errorf("unknown workspace should be dropped without error, got %v", err)
	}
}

func TestHandle_TransientErrorIsRetryable(t *testing.T) {
	setter := &mockAvailabilitySetter{err: errors.New("connection reset")}
	m := NewOccupancyMonitor(setter, testLogger())

	msg := occupancyMessage(t, model.OccupancyEvent{WorkspaceID: "ws-4", PersonCount: 1})

	err := m.Handle(context.Background(), msg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !kafka.ShouldRetry(err, 0, 3) {
		t.Error("transient failures must be retryable")
	}
}

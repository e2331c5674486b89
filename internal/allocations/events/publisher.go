package events

import (
	"context"
	"time"

	"deskhive/pkg/kafka"
	"deskhive/pkg/logger"
	"deskhive/pkg/model"
)

// Publisher emits allocation lifecycle events. Publishing is best-effort:
// the booking commit has already happened when an event goes out, so
// failures are logged, never surfaced to the caller.
type Publisher interface {
	AllocationConfirmed(ctx context.Context, allocation *model.Allocation)
	AllocationCancelled(ctx context.Context, allocation *model.Allocation)
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
	source   string
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger, source string) Publisher {
	return &kafkaPublisher{
		producer: producer,
		log:      log,
		source:   source,
	}
}

func (p *kafkaPublisher) AllocationConfirmed(ctx context.Context, allocation *model.Allocation) {
	p.publish(ctx, model.EventAllocationConfirmed, allocation)
}

func (p *kafkaPublisher) AllocationCancelled(ctx context.Context, allocation *model.Allocation) {
	p.publish(ctx, model.EventAllocationCancelled, allocation)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType model.AllocationEventType, allocation *model.Allocation) {
	event := model.AllocationEvent{
		Type:         eventType,
		AllocationID: allocation.ID,
		WorkspaceID:  allocation.WorkspaceID,
		RequesterID:  allocation.RequesterID,
		StartTime:    allocation.StartTime,
		EndTime:      allocation.EndTime,
		OccurredAt:   time.Now().UTC(),
	}

	msg, err := kafka.NewMessage().
		WithKey(allocation.WorkspaceID).
		WithValue(event).
		WithEventType(string(eventType)).
		WithSource(p.source).
		Build()
	if err != nil {
		p.log.Error("Failed to build allocation event", "type", eventType, "allocation_id", allocation.ID, "error", err)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish allocation event", "type", eventType, "allocation_id", allocation.ID, "error", err)
		return
	}

	p.log.Debug("Allocation event published", "type", eventType, "allocation_id", allocation.ID)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher drops events. Used when no broker is configured and in tests.
type NopPublisher struct{}

func (NopPublisher) AllocationConfirmed(context.Context, *model.Allocation) {}
func (NopPublisher) AllocationCancelled(context.Context, *model.Allocation) {}
func (NopPublisher) Close() error                                          { return nil }

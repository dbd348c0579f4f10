package eventstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrConcurrencyConflict = errors.New("concurrency conflict: version mismatch")
	ErrInvalidVersion      = errors.New("invalid version number")
)

// namespace roots the deterministic aggregate ids handed out by AggregateID.
var namespace = uuid.MustParse("6f1c2a0e-93f5-4d7b-8a52-2e0f0b7d9c11")

// Event represents a domain event with full metadata
type Event struct {
	ID            uuid.UUID       `json:"id"`
	Sequence      int64           `json:"sequence"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	EventType     string          `json:"event_type"`
	EventData     json.RawMessage `json:"event_data"`
	Version       int             `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
}

// EventStore is an append-only, process-local event journal.
type EventStore struct {
	mu       sync.RWMutex
	events   []Event
	versions map[uuid.UUID]int
	tracer   trace.Tracer
	now      func() time.Time
}

// NewEventStore creates an empty event store.
func NewEventStore() *EventStore {
	return &EventStore{
		versions: make(map[uuid.UUID]int),
		tracer:   otel.Tracer("dvdlend/eventstore"),
		now:      time.Now,
	}
}

// AggregateID maps a numeric record id of the given aggregate type to a stable uuid.
func AggregateID(aggregateType string, id int64) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(aggregateType+"/"+strconv.FormatInt(id, 10)))
}

// NewEvent marshals data into an Event of the given type.
func NewEvent(eventType string, data interface{}) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s: %w", eventType, err)
	}
	return Event{EventType: eventType, EventData: raw}, nil
}

// AppendEvents atomically appends events with optimistic concurrency control
func (es *EventStore) AppendEvents(ctx context.Context, aggregateID uuid.UUID, aggregateType string, expectedVersion int, events []Event) error {
	_, span := es.tracer.Start(ctx, "eventstore.append",
		trace.WithAttributes(
			attribute.String("aggregate.id", aggregateID.String()),
			attribute.String("aggregate.type", aggregateType),
			attribute.Int("expected.version", expectedVersion),
			attribute.Int("event.count", len(events)),
		),
	)
	defer span.End()

	if expectedVersion < 0 {
		return ErrInvalidVersion
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	currentVersion := es.versions[aggregateID]
	if currentVersion != expectedVersion {
		span.SetAttributes(
			attribute.Int("actual.version", currentVersion),
			attribute.Bool("conflict.detected", true),
		)
		return ErrConcurrencyConflict
	}

	for i, event := range events {
		event.ID = uuid.New()
		event.Sequence = int64(len(es.events)) + 1
		event.AggregateID = aggregateID
		event.AggregateType = aggregateType
		event.Version = expectedVersion + i + 1
		event.CreatedAt = es.now().UTC()
		es.events = append(es.events, event)

		span.AddEvent("event.appended", trace.WithAttributes(
			attribute.Int64("event.sequence", event.Sequence),
			attribute.Int("event.version", event.Version),
			attribute.String("event.type", event.EventType),
		))
	}
	es.versions[aggregateID] = expectedVersion + len(events)

	span.SetAttributes(attribute.Bool("append.success", true))
	return nil
}

// LoadEvents retrieves all events for an aggregate with optional version range.
// A toVersion of zero means no upper bound.
func (es *EventStore) LoadEvents(ctx context.Context, aggregateID uuid.UUID, fromVersion, toVersion int) ([]Event, error) {
	_, span := es.tracer.Start(ctx, "eventstore.load",
		trace.WithAttributes(
			attribute.String("aggregate.id", aggregateID.String()),
			attribute.Int("from.version", fromVersion),
			attribute.Int("to.version", toVersion),
		),
	)
	defer span.End()

	es.mu.RLock()
	defer es.mu.RUnlock()

	var events []Event
	for _, event := range es.events {
		if event.AggregateID != aggregateID || event.Version < fromVersion {
			continue
		}
		if toVersion > 0 && event.Version > toVersion {
			continue
		}
		events = append(events, event)
	}

	span.SetAttributes(attribute.Int("events.loaded", len(events)))
	return events, nil
}

// CurrentVersion returns the latest version for an aggregate
func (es *EventStore) CurrentVersion(ctx context.Context, aggregateID uuid.UUID) int {
	_, span := es.tracer.Start(ctx, "eventstore.get_version",
		trace.WithAttributes(
			attribute.String("aggregate.id", aggregateID.String()),
		),
	)
	defer span.End()

	es.mu.RLock()
	version := es.versions[aggregateID]
	es.mu.RUnlock()

	span.SetAttributes(attribute.Int("current.version", version))
	return version
}

// StreamEvents returns up to batchSize events with a sequence greater than fromSequence.
func (es *EventStore) StreamEvents(ctx context.Context, fromSequence int64, batchSize int) ([]Event, error) {
	_, span := es.tracer.Start(ctx, "eventstore.stream",
		trace.WithAttributes(
			attribute.Int64("from.sequence", fromSequence),
			attribute.Int("batch.size", batchSize),
		),
	)
	defer span.End()

	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}

	es.mu.RLock()
	defer es.mu.RUnlock()

	// Sequences are dense and start at 1, so the slice index is sequence-1.
	start := int(fromSequence)
	if start < 0 {
		start = 0
	}
	if start >= len(es.events) {
		return nil, nil
	}
	if remaining := len(es.events) - start; batchSize > remaining {
		batchSize = remaining
	}

	events := make([]Event, batchSize)
	copy(events, es.events[start:start+batchSize])

	span.SetAttributes(attribute.Int("events.streamed", len(events)))
	return events, nil
}

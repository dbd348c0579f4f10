package eventstore

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestEvent struct {
	Message string `json:"message"`
}

func newTestEvent(t testing.TB, msg string) Event {
	t.Helper()
	event, err := NewEvent("TestEvent", TestEvent{Message: msg})
	require.NoError(t, err)
	return event
}

func TestAppendAndLoad(t *testing.T) {
	ctx := context.Background()
	store := NewEventStore()
	aggregateID := uuid.New()

	require.NoError(t, store.AppendEvents(ctx, aggregateID, "test_aggregate", 0, []Event{
		newTestEvent(t, "first"),
		newTestEvent(t, "second"),
	}))
	require.NoError(t, store.AppendEvents(ctx, aggregateID, "test_aggregate", 2, []Event{newTestEvent(t, "third")}))

	events, err := store.LoadEvents(ctx, aggregateID, 0, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i, event := range events {
		assert.Equal(t, i+1, event.Version)
		assert.Equal(t, aggregateID, event.AggregateID)
		assert.Equal(t, "test_aggregate", event.AggregateType)
		assert.NotEqual(t, uuid.Nil, event.ID)
	}

	var data TestEvent
	require.NoError(t, json.Unmarshal(events[2].EventData, &data))
	assert.Equal(t, "third", data.Message)
	assert.Equal(t, 3, store.CurrentVersion(ctx, aggregateID))
}

func TestLoadEventsVersionRange(t *testing.T) {
	ctx := context.Background()
	store := NewEventStore()
	aggregateID := uuid.New()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.AppendEvents(ctx, aggregateID, "test_aggregate", i, []Event{newTestEvent(t, fmt.Sprint(i))}))
	}

	events, err := store.LoadEvents(ctx, aggregateID, 2, 4)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, 2, events[0].Version)
	assert.Equal(t, 4, events[2].Version)
}

func TestAppendEventsConflict(t *testing.T) {
	ctx := context.Background()
	store := NewEventStore()
	aggregateID := uuid.New()

	require.NoError(t, store.AppendEvents(ctx, aggregateID, "test_aggregate", 0, []Event{newTestEvent(t, "a")}))

	err := store.AppendEvents(ctx, aggregateID, "test_aggregate", 0, []Event{newTestEvent(t, "b")})
	assert.ErrorIs(t, err, ErrConcurrencyConflict)

	err = store.AppendEvents(ctx, aggregateID, "test_aggregate", -1, nil)
	assert.ErrorIs(t, err, ErrInvalidVersion)

	assert.Equal(t, 1, store.CurrentVersion(ctx, aggregateID))
}

func TestStreamEvents(t *testing.T) {
	ctx := context.Background()
	store := NewEventStore()

	for i := 0; i < 7; i++ {
		require.NoError(t, store.AppendEvents(ctx, uuid.New(), "test_aggregate", 0, []Event{newTestEvent(t, fmt.Sprint(i))}))
	}

	first, err := store.StreamEvents(ctx, 0, 5)
	require.NoError(t, err)
	require.Len(t, first, 5)
	assert.Equal(t, int64(1), first[0].Sequence)

	rest, err := store.StreamEvents(ctx, first[len(first)-1].Sequence, 5)
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, int64(6), rest[0].Sequence)

	empty, err := store.StreamEvents(ctx, 7, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)

	var all []Event
	require.NotPanics(t, func() {
		all, err = store.StreamEvents(ctx, 5, math.MaxInt)
	})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(6), all[0].Sequence)

	_, err = store.StreamEvents(ctx, 0, 0)
	assert.Error(t, err)
}

func TestAggregateIDIsStable(t *testing.T) {
	assert.Equal(t, AggregateID("loan", 1), AggregateID("loan", 1))
	assert.NotEqual(t, AggregateID("loan", 1), AggregateID("loan", 2))
	assert.NotEqual(t, AggregateID("loan", 1), AggregateID("person", 1))
}

func BenchmarkAppendEvents(b *testing.B) {
	store := NewEventStore()
	event := newTestEvent(b, "bench")

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := store.AppendEvents(context.Background(), uuid.New(), "test_aggregate", 0, []Event{event}); err != nil {
			b.Fatalf("AppendEvents failed: %v", err)
		}
	}
}

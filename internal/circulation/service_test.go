package circulation

import (
	"context"
	"dvdlend/internal/catalog"
	"dvdlend/internal/eventstore"
	"dvdlend/internal/membership"
	"sync"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	people *membership.Repository
	items  *catalog.Repository
	loans  *Repository
	events *eventstore.EventStore
	svc    Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		people: membership.NewRepository(),
		items:  catalog.NewRepository(),
		loans:  NewRepository(nil),
		events: eventstore.NewEventStore(),
	}
	f.svc = NewService(f.loans, f.people, f.items, f.events, logr.Discard())
	return f
}

func (f *fixture) joao() membership.Person {
	return f.people.Create(context.Background(), "João", "123456789", "joao@email.com")
}

func (f *fixture) matrix() catalog.MediaItem {
	return f.items.Create(context.Background(), catalog.MediaItemInput{
		Title:      "Matrix",
		Synopsis:   "Ficção",
		Director:   "Wachowski",
		LeadActor:  "Keanu Reeves",
		Genre:      catalog.ScienceFiction,
		MinimumAge: 14,
	})
}

func TestBorrowAndReturnScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	person := f.joao()
	item := f.matrix()

	start := time.Now()
	loan, err := f.svc.Borrow(ctx, person.ID, item.ID)
	require.NoError(t, err)
	assert.Nil(t, loan.ReturnedAt)
	assert.False(t, loan.BorrowedAt.Before(start))
	assert.Equal(t, person.ID, loan.PersonID)
	assert.Equal(t, item.ID, loan.MediaItemID)

	assert.Equal(t, []Loan{loan}, f.svc.ListActive(ctx))
	assert.Equal(t, "Loan(1, João, Matrix)", f.svc.Describe(ctx, loan))

	returned, ok := f.svc.Return(ctx, loan.ID)
	require.True(t, ok)
	require.NotNil(t, returned.ReturnedAt)
	assert.False(t, returned.ReturnedAt.Before(returned.BorrowedAt))
	assert.Empty(t, f.svc.ListActive(ctx))
	assert.Len(t, f.svc.List(ctx), 1)
}

func TestBorrowTwiceIsUnavailable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	person := f.joao()
	item := f.matrix()

	_, err := f.svc.Borrow(ctx, person.ID, item.ID)
	require.NoError(t, err)

	_, err = f.svc.Borrow(ctx, person.ID, item.ID)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Len(t, f.svc.List(ctx), 1)
}

func TestBorrowUnknownIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	person := f.joao()
	item := f.matrix()

	tests := []struct {
		name              string
		personID, itemID  int64
		wantMessageSubstr string
	}{
		{"unknown person", 42, item.ID, "person 42"},
		{"unknown item", person.ID, 42, "media item 42"},
		{"both unknown", 0, 0, "person 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Borrow(ctx, tt.personID, tt.itemID)
			require.ErrorIs(t, err, ErrNotFound)
			assert.Contains(t, err.Error(), tt.wantMessageSubstr)
		})
	}
	assert.Empty(t, f.svc.List(ctx))
}

func TestReturnUnknownLoan(t *testing.T) {
	f := newFixture(t)
	_, ok := f.svc.Return(context.Background(), 1)
	assert.False(t, ok)
}

func TestReturnTwiceKeepsFirstTimestamp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	loan, err := f.svc.Borrow(ctx, f.joao().ID, f.matrix().ID)
	require.NoError(t, err)

	first, ok := f.svc.Return(ctx, loan.ID)
	require.True(t, ok)
	second, ok := f.svc.Return(ctx, loan.ID)
	require.True(t, ok)
	assert.Equal(t, first, second)

	events, err := f.events.LoadEvents(ctx, eventstore.AggregateID(AggregateType, loan.ID), 0, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "MediaItemBorrowed", events[0].EventType)
	assert.Equal(t, "MediaItemReturned", events[1].EventType)
}

func TestReturnJournalsLoanCreatedOutsideService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	loan := f.loans.Create(ctx, f.joao().ID, f.matrix().ID)

	returned, ok := f.svc.Return(ctx, loan.ID)
	require.True(t, ok)
	require.NotNil(t, returned.ReturnedAt)

	events, err := f.events.LoadEvents(ctx, eventstore.AggregateID(AggregateType, loan.ID), 0, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "MediaItemReturned", events[0].EventType)
	assert.Equal(t, 1, events[0].Version)
}

func TestBorrowAgainAfterReturn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item := f.matrix()
	joao := f.joao()
	maria := f.people.Create(ctx, "Maria", "", "")

	loan, err := f.svc.Borrow(ctx, joao.ID, item.ID)
	require.NoError(t, err)
	_, err = f.svc.Borrow(ctx, maria.ID, item.ID)
	require.ErrorIs(t, err, ErrUnavailable)

	f.svc.Return(ctx, loan.ID)

	next, err := f.svc.Borrow(ctx, maria.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID)
	assert.Equal(t, []Loan{next}, f.svc.ListActive(ctx))
}

func TestConcurrentBorrowPreventsDoubleBooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item := f.matrix()

	var people []membership.Person
	for i := 0; i < 10; i++ {
		people = append(people, f.people.Create(ctx, "Member", "", ""))
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0

	for _, person := range people {
		wg.Add(1)
		go func(p membership.Person) {
			defer wg.Done()
			if _, err := f.svc.Borrow(ctx, p.ID, item.ID); err == nil {
				mu.Lock()
				successCount++
				mu.Unlock()
			}
		}(person)
	}
	wg.Wait()

	assert.Equal(t, 1, successCount, "Only one concurrent borrow should succeed")
	assert.Len(t, f.svc.ListActive(ctx), 1)
}

func TestDescribeUnknownReferences(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "Loan(5, ?, ?)", f.svc.Describe(context.Background(), Loan{ID: 5, PersonID: 9, MediaItemID: 9}))
}

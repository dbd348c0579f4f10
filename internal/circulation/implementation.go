// internal/circulation/implementation.go
package circulation

import (
	"context"
	"dvdlend/internal/eventstore"
	"fmt"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// service implements the Service interface.
type service struct {
	repo       *Repository
	people     PersonFinder
	items      MediaItemFinder
	eventStore *eventstore.EventStore
	log        logr.Logger

	borrowed metric.Int64Counter
	returned metric.Int64Counter
	rejected metric.Int64Counter
}

// NewService creates a new circulation service instance.
func NewService(repo *Repository, people PersonFinder, items MediaItemFinder, es *eventstore.EventStore, log logr.Logger) Service {
	log = log.WithName("circulation")
	meter := otel.Meter("dvdlend/circulation")

	return &service{
		repo:       repo,
		people:     people,
		items:      items,
		eventStore: es,
		log:        log,
		borrowed:   newCounter(meter, log, "loans.borrowed", "Loans opened"),
		returned:   newCounter(meter, log, "loans.returned", "Loans closed"),
		rejected:   newCounter(meter, log, "loans.rejected", "Borrow attempts refused"),
	}
}

func newCounter(meter metric.Meter, log logr.Logger, name, desc string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		log.Error(err, "failed to create counter", "name", name)
		counter, _ = noop.NewMeterProvider().Meter("noop").Int64Counter(name)
	}
	return counter
}

// Borrow lends a media item to a person if both exist and the item has no open loan.
func (s *service) Borrow(ctx context.Context, personID, mediaItemID int64) (Loan, error) {
	// Step 1: Resolve both parties
	if _, ok := s.people.FindByID(ctx, personID); !ok {
		s.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", "not_found")))
		return Loan{}, fmt.Errorf("person %d: %w", personID, ErrNotFound)
	}
	if _, ok := s.items.FindByID(ctx, mediaItemID); !ok {
		s.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", "not_found")))
		return Loan{}, fmt.Errorf("media item %d: %w", mediaItemID, ErrNotFound)
	}

	// Step 2: Check availability and record the loan in one step
	loan, ok := s.repo.CreateIfAvailable(ctx, personID, mediaItemID)
	if !ok {
		s.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", "unavailable")))
		return Loan{}, fmt.Errorf("media item %d: %w", mediaItemID, ErrUnavailable)
	}
	s.borrowed.Add(ctx, 1)

	// Step 3: Journal the loan
	event, err := eventstore.NewEvent("MediaItemBorrowed", MediaItemBorrowedEvent{
		LoanID:      loan.ID,
		PersonID:    loan.PersonID,
		MediaItemID: loan.MediaItemID,
		BorrowedAt:  loan.BorrowedAt,
	})
	if err != nil {
		return loan, err
	}
	aggregateID := eventstore.AggregateID(AggregateType, loan.ID)
	if err := s.eventStore.AppendEvents(ctx, aggregateID, AggregateType, 0, []eventstore.Event{event}); err != nil {
		return loan, fmt.Errorf("failed to append event: %w", err)
	}

	s.log.Info("media item borrowed", "loan", loan.ID, "person", personID, "item", mediaItemID)
	return loan, nil
}

// Return closes the loan. Returning an already closed loan yields it unchanged.
func (s *service) Return(ctx context.Context, loanID int64) (Loan, bool) {
	loan, closed, ok := s.repo.close(ctx, loanID)
	if !ok {
		return Loan{}, false
	}
	if !closed {
		s.log.V(1).Info("loan already returned", "loan", loan.ID)
		return loan, true
	}
	s.returned.Add(ctx, 1)

	event, err := eventstore.NewEvent("MediaItemReturned", MediaItemReturnedEvent{
		LoanID:      loan.ID,
		PersonID:    loan.PersonID,
		MediaItemID: loan.MediaItemID,
		ReturnedAt:  *loan.ReturnedAt,
	})
	if err != nil {
		s.log.Error(err, "failed to build return event", "loan", loan.ID)
		return loan, true
	}
	aggregateID := eventstore.AggregateID(AggregateType, loan.ID)
	version := s.eventStore.CurrentVersion(ctx, aggregateID)
	if err := s.eventStore.AppendEvents(ctx, aggregateID, AggregateType, version, []eventstore.Event{event}); err != nil {
		s.log.Error(err, "failed to append return event", "loan", loan.ID)
	}

	s.log.Info("media item returned", "loan", loan.ID, "item", loan.MediaItemID)
	return loan, true
}

func (s *service) ListActive(ctx context.Context) []Loan {
	return s.repo.ListActive(ctx)
}

func (s *service) List(ctx context.Context) []Loan {
	return s.repo.List(ctx)
}

func (s *service) FindByID(ctx context.Context, id int64) (Loan, bool) {
	return s.repo.FindByID(ctx, id)
}

// Describe renders a loan with the borrower's name and the item's title.
func (s *service) Describe(ctx context.Context, loan Loan) string {
	name, title := "?", "?"
	if person, ok := s.people.FindByID(ctx, loan.PersonID); ok {
		name = person.Name
	}
	if item, ok := s.items.FindByID(ctx, loan.MediaItemID); ok {
		title = item.Title
	}
	return fmt.Sprintf("Loan(%d, %s, %s)", loan.ID, name, title)
}

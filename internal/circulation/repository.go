package circulation

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Clock supplies loan timestamps.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Repository owns every Loan record. It performs no eligibility checks of its own
// except in CreateIfAvailable.
type Repository struct {
	mu     sync.Mutex
	loans  []Loan
	nextID int64
	clock  Clock
	tracer trace.Tracer
}

// NewRepository creates an empty loan repository. A nil clock uses the wall clock.
func NewRepository(clock Clock) *Repository {
	if clock == nil {
		clock = realClock{}
	}
	return &Repository{
		nextID: 1,
		clock:  clock,
		tracer: otel.Tracer("dvdlend/circulation"),
	}
}

// Create records a new open loan borrowed now.
func (r *Repository) Create(ctx context.Context, personID, mediaItemID int64) Loan {
	_, span := r.tracer.Start(ctx, "circulation.create", trace.WithAttributes(
		attribute.Int64("person.id", personID),
		attribute.Int64("item.id", mediaItemID),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	loan := r.appendLocked(personID, mediaItemID)
	span.SetAttributes(attribute.Int64("loan.id", loan.ID))
	return loan
}

// CreateIfAvailable records a new loan only when the item has no open loan.
// The check and the insert share one critical section.
func (r *Repository) CreateIfAvailable(ctx context.Context, personID, mediaItemID int64) (Loan, bool) {
	_, span := r.tracer.Start(ctx, "circulation.create_if_available", trace.WithAttributes(
		attribute.Int64("person.id", personID),
		attribute.Int64("item.id", mediaItemID),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.availableLocked(mediaItemID) {
		span.SetAttributes(attribute.Bool("item.available", false))
		return Loan{}, false
	}

	loan := r.appendLocked(personID, mediaItemID)
	span.SetAttributes(attribute.Int64("loan.id", loan.ID))
	return loan, true
}

func (r *Repository) appendLocked(personID, mediaItemID int64) Loan {
	loan := Loan{
		ID:          r.nextID,
		PersonID:    personID,
		MediaItemID: mediaItemID,
		BorrowedAt:  r.clock.Now(),
	}
	r.nextID++
	r.loans = append(r.loans, loan)
	return loan
}

// List returns all loans in creation order.
func (r *Repository) List(ctx context.Context) []Loan {
	_, span := r.tracer.Start(ctx, "circulation.list")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	loans := make([]Loan, len(r.loans))
	for i, loan := range r.loans {
		loans[i] = loan.clone()
	}
	return loans
}

// ListActive returns the loans that have not been returned.
func (r *Repository) ListActive(ctx context.Context) []Loan {
	_, span := r.tracer.Start(ctx, "circulation.list_active")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	active := []Loan{}
	for _, loan := range r.loans {
		if loan.Open() {
			active = append(active, loan.clone())
		}
	}
	span.SetAttributes(attribute.Int("loans.active", len(active)))
	return active
}

// IsAvailable reports whether no open loan references the item.
func (r *Repository) IsAvailable(ctx context.Context, mediaItemID int64) bool {
	_, span := r.tracer.Start(ctx, "circulation.is_available",
		trace.WithAttributes(attribute.Int64("item.id", mediaItemID)),
	)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.availableLocked(mediaItemID)
}

func (r *Repository) availableLocked(mediaItemID int64) bool {
	for _, loan := range r.loans {
		if loan.MediaItemID == mediaItemID && loan.Open() {
			return false
		}
	}
	return true
}

// FindByID reports false when no loan has the given id.
func (r *Repository) FindByID(ctx context.Context, id int64) (Loan, bool) {
	_, span := r.tracer.Start(ctx, "circulation.find_by_id",
		trace.WithAttributes(attribute.Int64("loan.id", id)),
	)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, loan := range r.loans {
		if loan.ID == id {
			return loan.clone(), true
		}
	}
	return Loan{}, false
}

// Return closes an open loan and returns the updated record. A loan that is
// already closed is returned unchanged, keeping its first return timestamp.
func (r *Repository) Return(ctx context.Context, id int64) (Loan, bool) {
	loan, _, ok := r.close(ctx, id)
	return loan, ok
}

// close is Return that also reports whether this call performed the transition.
func (r *Repository) close(ctx context.Context, id int64) (loan Loan, closed bool, ok bool) {
	_, span := r.tracer.Start(ctx, "circulation.return",
		trace.WithAttributes(attribute.Int64("loan.id", id)),
	)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.loans {
		if r.loans[i].ID != id {
			continue
		}
		if r.loans[i].Open() {
			returnedAt := r.clock.Now()
			r.loans[i].ReturnedAt = &returnedAt
			closed = true
		}
		span.SetAttributes(attribute.Bool("loan.closed", closed))
		return r.loans[i].clone(), closed, true
	}
	span.SetAttributes(attribute.Bool("loan.found", false))
	return Loan{}, false, false
}

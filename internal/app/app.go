package app

import (
	"context"
	"dvdlend/internal/catalog"
	"dvdlend/internal/circulation"
	"dvdlend/internal/eventstore"
	"dvdlend/internal/membership"
	"fmt"
	"io"

	"github.com/go-logr/logr"
)

// App bundles the repositories and services of one lending tracker.
type App struct {
	Events      *eventstore.EventStore
	Membership  membership.Service
	Catalog     catalog.Service
	Circulation circulation.Service
	Log         logr.Logger
}

// New wires fresh in-memory repositories into their services.
func New(log logr.Logger) *App {
	es := eventstore.NewEventStore()
	people := membership.NewRepository()
	items := catalog.NewRepository()
	loans := circulation.NewRepository(nil)

	return &App{
		Events:      es,
		Membership:  membership.NewService(people, es, log),
		Catalog:     catalog.NewService(items, es, log),
		Circulation: circulation.NewService(loans, people, items, es, log),
		Log:         log,
	}
}

// RunDemo registers a friend and a DVD, lends it, returns it and prints the
// active loans after each step.
func (a *App) RunDemo(ctx context.Context, w io.Writer) error {
	person, err := a.Membership.Register(ctx, "João", "123456789", "joao@email.com")
	if err != nil {
		return err
	}
	item, err := a.Catalog.Register(ctx, catalog.MediaItemInput{
		Title:      "Matrix",
		Synopsis:   "Ficção",
		Director:   "Wachowski",
		LeadActor:  "Keanu Reeves",
		Genre:      catalog.ScienceFiction,
		MinimumAge: 14,
	})
	if err != nil {
		return err
	}

	loan, err := a.Circulation.Borrow(ctx, person.ID, item.ID)
	if err != nil {
		return fmt.Errorf("borrow: %w", err)
	}

	fmt.Fprintln(w, "Loan created:")
	fmt.Fprintln(w, a.Circulation.Describe(ctx, loan))

	fmt.Fprintln(w, "\nActive loans:")
	a.printLoans(ctx, w, a.Circulation.ListActive(ctx))

	if _, ok := a.Circulation.Return(ctx, loan.ID); !ok {
		return fmt.Errorf("loan %d vanished before return", loan.ID)
	}

	fmt.Fprintln(w, "\nAfter return:")
	a.printLoans(ctx, w, a.Circulation.ListActive(ctx))
	return nil
}

func (a *App) printLoans(ctx context.Context, w io.Writer, loans []circulation.Loan) {
	descs := make([]string, len(loans))
	for i, loan := range loans {
		descs[i] = a.Circulation.Describe(ctx, loan)
	}
	fmt.Fprintln(w, descs)
}

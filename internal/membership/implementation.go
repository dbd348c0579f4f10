// internal/membership/implementation.go
package membership

import (
	"context"
	"dvdlend/internal/eventstore"
	"fmt"

	"github.com/go-logr/logr"
)

// service implements the Service interface.
type service struct {
	repo       *Repository
	eventStore *eventstore.EventStore
	log        logr.Logger
}

// NewService creates a new membership service instance.
func NewService(repo *Repository, es *eventstore.EventStore, log logr.Logger) Service {
	return &service{
		repo:       repo,
		eventStore: es,
		log:        log.WithName("membership"),
	}
}

// Register creates a new person and journals the registration.
func (s *service) Register(ctx context.Context, name, phone, email string) (Person, error) {
	person := s.repo.Create(ctx, name, phone, email)

	event, err := eventstore.NewEvent("PersonRegistered", PersonRegisteredEvent{
		ID:    person.ID,
		Name:  person.Name,
		Email: person.Email,
	})
	if err != nil {
		return person, err
	}

	aggregateID := eventstore.AggregateID(AggregateType, person.ID)
	if err := s.eventStore.AppendEvents(ctx, aggregateID, AggregateType, 0, []eventstore.Event{event}); err != nil {
		return person, fmt.Errorf("failed to append event: %w", err)
	}

	s.log.V(1).Info("person registered", "id", person.ID, "name", person.Name)
	return person, nil
}

// List returns every registered person.
func (s *service) List(ctx context.Context) []Person {
	return s.repo.List(ctx)
}

// FindByID looks up a person by id.
func (s *service) FindByID(ctx context.Context, id int64) (Person, bool) {
	return s.repo.FindByID(ctx, id)
}

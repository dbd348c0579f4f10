// internal/catalog/implementation.go
package catalog

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

// NewService creates a new catalog service instance.
func NewService(repo *Repository, es *eventstore.EventStore, log logr.Logger) Service {
	return &service{
		repo:       repo,
		eventStore: es,
		log:        log.WithName("catalog"),
	}
}

// Register adds a new item to the catalog.
func (s *service) Register(ctx context.Context, in MediaItemInput) (MediaItem, error) {
	item := s.repo.Create(ctx, in)

	event, err := eventstore.NewEvent("MediaItemRegistered", MediaItemRegisteredEvent{
		ID:    item.ID,
		Title: item.Title,
		Genre: item.Genre.String(),
	})
	if err != nil {
		return item, err
	}

	aggregateID := eventstore.AggregateID(AggregateType, item.ID)
	if err := s.eventStore.AppendEvents(ctx, aggregateID, AggregateType, 0, []eventstore.Event{event}); err != nil {
		return item, fmt.Errorf("failed to append event: %w", err)
	}

	s.log.V(1).Info("media item registered", "id", item.ID, "title", item.Title, "genre", item.Genre)
	return item, nil
}

func (s *service) List(ctx context.Context) []MediaItem {
	return s.repo.List(ctx)
}

func (s *service) FindByID(ctx context.Context, id int64) (MediaItem, bool) {
	return s.repo.FindByID(ctx, id)
}

package catalog

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Repository owns every MediaItem record and hands out their ids.
type Repository struct {
	mu     sync.Mutex
	items  []MediaItem
	nextID int64
	tracer trace.Tracer
}

func NewRepository() *Repository {
	return &Repository{
		nextID: 1,
		tracer: otel.Tracer("dvdlend/catalog"),
	}
}

// Create allocates the next id and stores a new MediaItem.
func (r *Repository) Create(ctx context.Context, in MediaItemInput) MediaItem {
	_, span := r.tracer.Start(ctx, "catalog.create")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	item := MediaItem{
		ID:         r.nextID,
		Title:      in.Title,
		Synopsis:   in.Synopsis,
		Director:   in.Director,
		LeadActor:  in.LeadActor,
		Genre:      in.Genre,
		MinimumAge: in.MinimumAge,
	}
	r.nextID++
	r.items = append(r.items, item)

	span.SetAttributes(
		attribute.Int64("item.id", item.ID),
		attribute.String("item.genre", item.Genre.String()),
	)
	return item
}

func (r *Repository) List(ctx context.Context) []MediaItem {
	_, span := r.tracer.Start(ctx, "catalog.list")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]MediaItem, len(r.items))
	copy(items, r.items)
	return items
}

func (r *Repository) FindByID(ctx context.Context, id int64) (MediaItem, bool) {
	_, span := r.tracer.Start(ctx, "catalog.find_by_id",
		trace.WithAttributes(attribute.Int64("item.id", id)),
	)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.ID == id {
			return item, true
		}
	}
	span.SetAttributes(attribute.Bool("item.found", false))
	return MediaItem{}, false
}

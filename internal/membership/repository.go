package membership

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Repository owns every Person record and hands out their ids.
type Repository struct {
	mu     sync.Mutex
	people []Person
	nextID int64
	tracer trace.Tracer
}

// NewRepository creates an empty repository whose first id is 1.
func NewRepository() *Repository {
	return &Repository{
		nextID: 1,
		tracer: otel.Tracer("dvdlend/membership"),
	}
}

// Create allocates the next id and stores a new Person.
func (r *Repository) Create(ctx context.Context, name, phone, email string) Person {
	_, span := r.tracer.Start(ctx, "membership.create")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	person := Person{
		ID:    r.nextID,
		Name:  name,
		Phone: phone,
		Email: email,
	}
	r.nextID++
	r.people = append(r.people, person)

	span.SetAttributes(attribute.Int64("person.id", person.ID))
	return person
}

// List returns all people in creation order.
func (r *Repository) List(ctx context.Context) []Person {
	_, span := r.tracer.Start(ctx, "membership.list")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	people := make([]Person, len(r.people))
	copy(people, r.people)
	return people
}

// FindByID reports false when no person has the given id.
func (r *Repository) FindByID(ctx context.Context, id int64) (Person, bool) {
	_, span := r.tracer.Start(ctx, "membership.find_by_id",
		trace.WithAttributes(attribute.Int64("person.id", id)),
	)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, person := range r.people {
		if person.ID == id {
			return person, true
		}
	}
	span.SetAttributes(attribute.Bool("person.found", false))
	return Person{}, false
}

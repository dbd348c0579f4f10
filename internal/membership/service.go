// internal/membership/service.go
package membership

import (
	"context"
)

// Service defines the interface for the membership service.
type Service interface {
	Register(ctx context.Context, name, phone, email string) (Person, error)
	List(ctx context.Context) []Person
	FindByID(ctx context.Context, id int64) (Person, bool)
}

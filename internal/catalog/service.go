// internal/catalog/service.go
package catalog

import (
	"context"
)

// Service defines the interface for the catalog service.
type Service interface {
	Register(ctx context.Context, in MediaItemInput) (MediaItem, error)
	List(ctx context.Context) []MediaItem
	FindByID(ctx context.Context, id int64) (MediaItem, bool)
}

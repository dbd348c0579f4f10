// internal/circulation/service.go
package circulation

import (
	"context"
	"dvdlend/internal/catalog"
	"dvdlend/internal/membership"
)

// Service defines the interface for the circulation service.
type Service interface {
	Borrow(ctx context.Context, personID, mediaItemID int64) (Loan, error)
	Return(ctx context.Context, loanID int64) (Loan, bool)
	ListActive(ctx context.Context) []Loan
	List(ctx context.Context) []Loan
	FindByID(ctx context.Context, id int64) (Loan, bool)
	Describe(ctx context.Context, loan Loan) string
}

// PersonFinder resolves borrowers. *membership.Repository satisfies it.
type PersonFinder interface {
	FindByID(ctx context.Context, id int64) (membership.Person, bool)
}

// MediaItemFinder resolves lendable items. *catalog.Repository satisfies it.
type MediaItemFinder interface {
	FindByID(ctx context.Context, id int64) (catalog.MediaItem, bool)
}

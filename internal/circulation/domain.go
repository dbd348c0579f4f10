// internal/circulation/domain.go
package circulation

import (
	"time"
)

// Loan represents a media item lent to a friend. ReturnedAt stays nil while the loan is open.
type Loan struct {
	ID          int64      `json:"id"`
	PersonID    int64      `json:"person_id"`
	MediaItemID int64      `json:"media_item_id"`
	BorrowedAt  time.Time  `json:"borrowed_at"`
	ReturnedAt  *time.Time `json:"returned_at,omitempty"`
}

// Open reports whether the loan has not been returned yet.
func (l Loan) Open() bool {
	return l.ReturnedAt == nil
}

// clone returns a copy that shares no memory with l.
func (l Loan) clone() Loan {
	if l.ReturnedAt != nil {
		returnedAt := *l.ReturnedAt
		l.ReturnedAt = &returnedAt
	}
	return l
}

// AggregateType tags loan events in the event journal.
const AggregateType = "loan"

// MediaItemBorrowedEvent is published when an item is lent out.
type MediaItemBorrowedEvent struct {
	LoanID      int64     `json:"loan_id"`
	PersonID    int64     `json:"person_id"`
	MediaItemID int64     `json:"media_item_id"`
	BorrowedAt  time.Time `json:"borrowed_at"`
}

// MediaItemReturnedEvent is published when an item is returned.
type MediaItemReturnedEvent struct {
	LoanID      int64     `json:"loan_id"`
	PersonID    int64     `json:"person_id"`
	MediaItemID int64     `json:"media_item_id"`
	ReturnedAt  time.Time `json:"returned_at"`
}

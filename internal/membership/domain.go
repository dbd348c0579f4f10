// internal/membership/domain.go
package membership

// Person represents a registered friend who may borrow media.
type Person struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// AggregateType tags membership events in the event journal.
const AggregateType = "person"

// PersonRegisteredEvent is published when a new friend registers.
type PersonRegisteredEvent struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

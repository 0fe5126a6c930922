package birthday

import (
	"context"
)

// Repository defines the operations for persisting and retrieving birthday records.
type Repository interface {
	// Upsert stores the record, replacing any existing record for the same
	// member. Last write wins; no history is kept.
	Upsert(ctx context.Context, record *Record) error
	// FindByDate returns all records whose birthday equals the given
	// month-day, in stable member-id order. An empty result is not an error.
	FindByDate(ctx context.Context, date MonthDay) ([]*Record, error)
}

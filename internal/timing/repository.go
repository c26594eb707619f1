package timing

import "context"

// Repository stores the curated timing rule set. It holds reference data
// only; generated schedules are never persisted.
type Repository interface {
	// ListEntries returns all rules in table order. Order is load-bearing
	// for partial matching, so implementations must preserve it.
	ListEntries(ctx context.Context) ([]Entry, error)

	// UpsertEntry inserts or replaces one rule at the given position.
	UpsertEntry(ctx context.Context, position int, e Entry) error
}

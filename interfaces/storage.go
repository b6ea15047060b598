package interfaces

import "context"

// RecordStore provides create/read/list/delete over the remote record table.
// Each call maps to exactly one network operation; nothing is retried.
type RecordStore interface {
	// Name returns a human-readable label used in logs and degraded notices.
	Name() string

	// ListAll returns every record in store order.
	ListAll(ctx context.Context) ([]Record, error)

	// Get returns the record with the given id, or nil if it does not exist.
	Get(ctx context.Context, id string) (*Record, error)

	// Put writes the record, replacing any record with the same id.
	// The stored timestamp is always the instant of the write.
	Put(ctx context.Context, record Record) error

	// Delete removes the record. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}

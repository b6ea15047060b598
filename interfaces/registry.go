package interfaces

import "context"

// SecretRegistry is a read-only view of an external secret catalog.
// Search and tag filtering are evaluated client-side over ListAll.
type SecretRegistry interface {
	Name() string
	ListAll(ctx context.Context) ([]SecretDescriptor, error)
	SearchByText(ctx context.Context, query string) ([]SecretDescriptor, error)
	FilterByTag(ctx context.Context, filter TagFilter) ([]SecretDescriptor, error)
}

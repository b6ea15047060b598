package registry

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ruteri/halow-dashboard/interfaces"
)

// Backend enumerates secret descriptors from one external catalog.
type Backend interface {
	Name() string
	List(ctx context.Context) ([]interfaces.SecretDescriptor, error)
}

// Registry implements interfaces.SecretRegistry over a Backend.
type Registry struct {
	backend Backend
	log     *slog.Logger
}

func New(backend Backend, log *slog.Logger) *Registry {
	return &Registry{
		backend: backend,
		log:     log,
	}
}

func (r *Registry) Name() string {
	return r.backend.Name()
}

// ListAll returns every descriptor the backend enumerates.
func (r *Registry) ListAll(ctx context.Context) ([]interfaces.SecretDescriptor, error) {
	secrets, err := r.backend.List(ctx)
	if err != nil {
		r.log.Error("Failed to list secrets", "registry", r.backend.Name(), "err", err)
		return nil, err
	}
	return secrets, nil
}

// SearchByText returns descriptors whose name, description, tag keys or tag
// values contain query, ignoring case.
func (r *Registry) SearchByText(ctx context.Context, query string) ([]interfaces.SecretDescriptor, error) {
	secrets, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return MatchText(secrets, query), nil
}

// FilterByTag returns descriptors matching filter.
func (r *Registry) FilterByTag(ctx context.Context, filter interfaces.TagFilter) ([]interfaces.SecretDescriptor, error) {
	secrets, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return MatchTag(secrets, filter), nil
}

// MatchText filters secrets by case-insensitive substring.
func MatchText(secrets []interfaces.SecretDescriptor, query string) []interfaces.SecretDescriptor {
	term := strings.ToLower(query)
	matched := make([]interfaces.SecretDescriptor, 0, len(secrets))
	for _, s := range secrets {
		if textMatches(s, term) {
			matched = append(matched, s)
		}
	}
	return matched
}

func textMatches(s interfaces.SecretDescriptor, term string) bool {
	if strings.Contains(strings.ToLower(s.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(s.Description), term) {
		return true
	}
	for k, v := range s.Tags {
		if strings.Contains(strings.ToLower(k), term) || strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

// MatchTag filters secrets by tag key, and value when the filter has one.
func MatchTag(secrets []interfaces.SecretDescriptor, filter interfaces.TagFilter) []interfaces.SecretDescriptor {
	matched := make([]interfaces.SecretDescriptor, 0, len(secrets))
	for _, s := range secrets {
		if filter.Matches(s.Tags) {
			matched = append(matched, s)
		}
	}
	return matched
}

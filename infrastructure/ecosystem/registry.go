// Package ecosystem wires the per-kind ecosystem implementations behind a
// single registry used for both kind dispatch and directory detection.
package ecosystem

import (
	"github.com/rios0rios0/depwatch/domain"
)

// Registry manages all registered ecosystem implementations. Registration
// order is detection precedence: when a directory carries manifests of more
// than one kind, the first registered ecosystem wins.
type Registry struct {
	ordered []domain.Ecosystem
	byKind  map[domain.RepositoryKind]domain.Ecosystem
}

// NewRegistry creates a registry with the given ecosystems.
func NewRegistry(ecosystems ...domain.Ecosystem) *Registry {
	r := &Registry{
		byKind: make(map[domain.RepositoryKind]domain.Ecosystem),
	}
	for _, e := range ecosystems {
		r.ordered = append(r.ordered, e)
		r.byKind[e.Kind()] = e
	}
	return r
}

// ForKind returns the ecosystem handling the given kind, or nil.
func (r *Registry) ForKind(kind domain.RepositoryKind) domain.Ecosystem {
	return r.byKind[kind]
}

// All returns every registered ecosystem in registration order.
func (r *Registry) All() []domain.Ecosystem {
	return r.ordered
}

// Detect asks each ecosystem in order whether the directory belongs to it.
func (r *Registry) Detect(dir string) (domain.Repository, bool) {
	for _, e := range r.ordered {
		if repo, ok := e.Detect(dir); ok {
			return repo, true
		}
	}
	return domain.Repository{}, false
}

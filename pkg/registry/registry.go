package registry

import (
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/arthur-debert/dodot-firefox/pkg/errors"
)

// Registry maps unique names to items. It is safe for concurrent use;
// registration normally happens from init functions.
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	names []string // kept sorted
}

// New returns an empty Registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

// Register adds item under name. Empty and duplicate names are rejected.
func (r *Registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "'%s' is already registered", name)
	}

	r.items[name] = item
	pos, _ := slices.BinarySearch(r.names, name)
	r.names = slices.Insert(r.names, pos, name)
	return nil
}

// MustRegister is Register for init functions: a failure is a programming
// error and panics.
func (r *Registry[T]) MustRegister(name string, item T) {
	if err := r.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}

// Names returns the registered names in lexical order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.names)
}

// All yields name/item pairs in lexical order from a snapshot taken when
// iteration starts, so the registry is not locked while the caller runs.
func (r *Registry[T]) All() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		r.mu.RLock()
		names := slices.Clone(r.names)
		items := make([]T, len(names))
		for i, name := range names {
			items[i] = r.items[name]
		}
		r.mu.RUnlock()

		for i, name := range names {
			if !yield(name, items[i]) {
				return
			}
		}
	}
}

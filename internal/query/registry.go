package query

import "sync"

// Registry hands out one Paginator per scope (typically a user id), so the
// in-flight dedupe state survives across requests.
type Registry[T any] struct {
	mu         sync.Mutex
	paginators map[string]*Paginator[T]
	factory    func(scope string) *Paginator[T]
}

func NewRegistry[T any](factory func(scope string) *Paginator[T]) *Registry[T] {
	return &Registry[T]{
		paginators: make(map[string]*Paginator[T]),
		factory:    factory,
	}
}

func (r *Registry[T]) For(scope string) *Paginator[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.paginators[scope]; ok {
		return p
	}

	p := r.factory(scope)
	r.paginators[scope] = p

	return p
}

// Package plumbing defines generic types for the dependency injection
// mechanics in getdocker. Host facing components like package managers and
// service managers are produced by factories that probe the host and report
// whether they apply.
package plumbing

import "sync"

// Factory is a function that takes a parameter of type R and returns a value
// of type T and true when it can serve the given source.
type Factory[R any, T any] func(R) (T, bool)

// Provider is a generic provider of values of type T that can be initialized
// with a value of type R.
type Provider[R any, T any] struct {
	mu        sync.RWMutex
	factories []Factory[R, T]
	err       error
}

// Register adds a new factory to the provider.
func (p *Provider[R, T]) Register(f Factory[R, T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.factories = append(p.factories, f)
}

// Get retrieves the first value of type T from the factories in the Provider.
// If none can be found, the error supplied at creation time is returned.
func (p *Provider[R, T]) Get(r R) (T, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, f := range p.factories {
		if t, ok := f(r); ok {
			return t, nil
		}
	}
	return *new(T), p.err
}

// GetAll retrieves all values of type T from the factories in the Provider.
// If none can be found, the error supplied at creation time is returned.
func (p *Provider[R, T]) GetAll(r R) ([]T, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var ts []T
	for _, f := range p.factories {
		if t, ok := f(r); ok {
			ts = append(ts, t)
		}
	}
	if len(ts) == 0 {
		return nil, p.err
	}
	return ts, nil
}

// NewProvider creates a new instance of Provider.
// The error is returned when no factory can produce a value of type T.
func NewProvider[R any, T any](err error) *Provider[R, T] {
	return &Provider[R, T]{err: err}
}

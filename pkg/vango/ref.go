package vango

import "sync"

// Ref holds a mutable, non-owning reference to a value.
// It distinguishes "never set" from "set then cleared".
//
// Ref[T] is safe for concurrent access.
type Ref[T any] struct {
	value    T
	isSet    bool
	released bool
	mu       sync.RWMutex
}

// NewRef creates an empty Ref.
func NewRef[T any]() *Ref[T] {
	return &Ref[T]{}
}

// Current returns the current value of the ref.
func (r *Ref[T]) Current() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Get returns the current value and whether it is set.
func (r *Ref[T]) Get() (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value, r.isSet
}

// Set sets the ref's value.
func (r *Ref[T]) Set(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = value
	r.isSet = true
	r.released = false
}

// IsSet returns true if the ref currently holds a value.
func (r *Ref[T]) IsSet() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isSet
}

// Released returns true if the ref held a value that has since been cleared.
func (r *Ref[T]) Released() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.released
}

// Clear resets the ref to its zero value and marks it released if it was set.
func (r *Ref[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	if r.isSet {
		r.released = true
	}
	r.value = zero
	r.isSet = false
}

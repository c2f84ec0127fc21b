// Package observable provides typed change notification for mutable
// properties.
//
// Each property holds one value and a set of subscribers; setting a new
// value emits a typed change event to every subscriber, synchronously, in
// the caller's goroutine. This is the explicit subscribe/notify contract
// the preferences surface exposes upward to its UI layer.
package observable

import (
	"sync"
)

// Change is a single property transition.
type Change[T any] struct {
	Old T
	New T
}

// Observer is called when the property value changes.
type Observer[T any] func(change Change[T])

// Subscription represents an active observer registration.
type Subscription struct {
	id          uint64
	unsubscribe func(id uint64)
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.unsubscribe != nil {
		s.unsubscribe(s.id)
		s.unsubscribe = nil
	}
}

// Property is an observable value. The zero value is not usable; create
// properties with New or NewComparable.
type Property[T any] struct {
	mu        sync.Mutex
	value     T
	observers map[uint64]Observer[T]
	nextID    uint64

	// equal suppresses notifications for no-op sets when non-nil.
	equal func(a, b T) bool
}

// New creates a property with the given initial value. Every Set emits a
// change event, including sets to an equal value.
func New[T any](initial T) *Property[T] {
	return &Property[T]{
		value:     initial,
		observers: make(map[uint64]Observer[T]),
	}
}

// NewComparable creates a property that only notifies when the value
// actually changes.
func NewComparable[T comparable](initial T) *Property[T] {
	p := New(initial)
	p.equal = func(a, b T) bool { return a == b }
	return p
}

// Get returns the current value.
func (p *Property[T]) Get() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Set updates the value and notifies subscribers. It returns true when a
// notification was emitted; a set to an equal value on a comparable
// property returns false without notifying.
func (p *Property[T]) Set(value T) bool {
	p.mu.Lock()
	old := p.value
	if p.equal != nil && p.equal(old, value) {
		p.mu.Unlock()
		return false
	}
	p.value = value
	observers := make([]Observer[T], 0, len(p.observers))
	for _, obs := range p.observers {
		observers = append(observers, obs)
	}
	p.mu.Unlock()

	// Observers run outside the lock so they may read or set properties.
	change := Change[T]{Old: old, New: value}
	for _, obs := range observers {
		obs(change)
	}
	return true
}

// Subscribe registers an observer for future changes.
func (p *Property[T]) Subscribe(observer Observer[T]) *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.observers[id] = observer

	return &Subscription{
		id:          id,
		unsubscribe: p.removeObserver,
	}
}

func (p *Property[T]) removeObserver(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.observers, id)
}

// Package notifier is a small observer registry. Subscribing returns the capability to unsubscribe.
//
// The underlying event source is attached lazily: the first subscription calls Attach, and removing
// the last subscription calls the detach function Attach returned.
package notifier

import "sync"

// AttachFunc wires the registry to its event source and returns the matching detach function.
type AttachFunc func() (detach func())

type Notifier[T any] struct {
	// hookMu serializes attach/detach so the source is wired at most once
	hookMu sync.Mutex

	mu        sync.Mutex
	listeners map[uint64]func(T)
	order     []uint64
	nextID    uint64

	attach   AttachFunc
	detach   func()
	attached bool
}

func New[T any](attach AttachFunc) *Notifier[T] {
	return &Notifier[T]{
		listeners: make(map[uint64]func(T)),
		attach:    attach,
	}
}

// Subscribe registers fn and returns an idempotent unsubscribe function.
func (n *Notifier[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	n.hookMu.Lock()
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	n.order = append(n.order, id)
	needAttach := !n.attached
	n.attached = true
	n.mu.Unlock()

	// attach outside mu: sources may emit synchronously
	if needAttach && n.attach != nil {
		detach := n.attach()
		n.mu.Lock()
		n.detach = detach
		n.mu.Unlock()
	}
	n.hookMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { n.remove(id) })
	}
}

func (n *Notifier[T]) remove(id uint64) {
	n.hookMu.Lock()
	defer n.hookMu.Unlock()

	n.mu.Lock()
	if _, ok := n.listeners[id]; !ok {
		n.mu.Unlock()
		return
	}
	delete(n.listeners, id)
	for i, v := range n.order {
		if v == id {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}

	var detach func()
	if len(n.listeners) == 0 {
		detach = n.detach
		n.detach = nil
		n.attached = false
	}
	n.mu.Unlock()

	if detach != nil {
		detach()
	}
}

// Close drops every listener and detaches the source if it is attached.
func (n *Notifier[T]) Close() {
	n.hookMu.Lock()
	defer n.hookMu.Unlock()

	n.mu.Lock()
	n.listeners = make(map[uint64]func(T))
	n.order = nil
	detach := n.detach
	n.detach = nil
	n.attached = false
	n.mu.Unlock()

	if detach != nil {
		detach()
	}
}

// Notify calls every listener, in subscription order, with v. Listeners run outside the lock
// and may unsubscribe themselves.
func (n *Notifier[T]) Notify(v T) {
	n.mu.Lock()
	fns := make([]func(T), 0, len(n.order))
	for _, id := range n.order {
		fns = append(fns, n.listeners[id])
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

func (n *Notifier[T]) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

// Attached reports whether the event source is currently wired.
func (n *Notifier[T]) Attached() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.attached
}

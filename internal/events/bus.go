// Package events is a small in-process publish/subscribe bus.
package events

import "sync"

// Handler receives the payload passed to Emit.
type Handler func(payload any)

// Subscription identifies a handler registered with On.
type Subscription struct {
	event string
	id    uint64
}

type entry struct {
	id uint64
	fn Handler
}

// Bus is safe for concurrent use. Handlers run synchronously on the
// emitting goroutine in registration order.
type Bus struct {
	mu       sync.RWMutex
	next     uint64
	handlers map[string][]entry
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]entry)}
}

func (b *Bus) On(event string, fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.handlers[event] = append(b.handlers[event], entry{id: b.next, fn: fn})
	return Subscription{event: event, id: b.next}
}

// Off removes a handler. Unknown subscriptions are ignored.
func (b *Bus) Off(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.handlers[sub.event]
	for i, e := range list {
		if e.id == sub.id {
			b.handlers[sub.event] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(b.handlers[sub.event]) == 0 {
		delete(b.handlers, sub.event)
	}
}

// Emit calls every handler of event. Handlers may call On or Off; changes
// take effect from the next Emit.
func (b *Bus) Emit(event string, payload any) {
	b.mu.RLock()
	list := append([]entry(nil), b.handlers[event]...)
	b.mu.RUnlock()
	for _, e := range list {
		e.fn(payload)
	}
}

// Package events implements single-pass event dispatch. Subscribers
// observe the events of a resolved action; they cannot emit more.
package events

import (
	"sync"

	"github.com/nathoo/turncore/types"
)

// Handler observes one event.
type Handler func(types.Event)

type subscription struct {
	id      int
	typ     string // "" matches every event
	handler Handler
}

// Bus fans events out to subscribers in subscription order.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	nextID int
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers h for events of type typ, or for every event when
// typ is empty. The returned function removes the subscription.
func (b *Bus) Subscribe(typ string, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, typ: typ, handler: h})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers events to matching subscribers. Single pass: handlers
// run against a snapshot of the subscriber list.
func (b *Bus) Dispatch(events []types.Event) {
	if len(events) == 0 {
		return
	}
	b.mu.RLock()
	subs := append([]subscription(nil), b.subs...)
	b.mu.RUnlock()

	for _, ev := range events {
		for _, s := range subs {
			if s.typ == "" || s.typ == ev.Type {
				s.handler(ev)
			}
		}
	}
}

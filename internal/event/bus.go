// Package event implements the client's typed publish/subscribe bus (spec
// §4.10): a generics-based Emit/Subscribe pair, grounded on the teacher's
// core/event bus shape but dispatched synchronously — there is no tick
// scheduler in a client session to buffer against (spec §4.10, §5).
package event

import (
	"reflect"
	"sync"
)

// Handle identifies one subscription, returned by Subscribe for later use
// with Unsubscribe.
type Handle struct {
	kind reflect.Type
	id   uint64
}

type subscriber struct {
	id uint64
	fn func(any)
}

// Bus fans events out to subscribers of their concrete type, inline on the
// calling goroutine.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[reflect.Type][]subscriber
}

// NewBus builds an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[reflect.Type][]subscriber)}
}

// Subscribe registers fn to be called, synchronously, for every event of
// type T emitted after this call.
func Subscribe[T any](b *Bus, fn func(T)) Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.subs[t] = append(b.subs[t], subscriber{
		id: id,
		fn: func(v any) { fn(v.(T)) },
	})
	return Handle{kind: t, id: id}
}

// Unsubscribe removes a subscription previously returned by Subscribe.
func (b *Bus) Unsubscribe(h Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[h.kind]
	for i, s := range list {
		if s.id == h.id {
			b.subs[h.kind] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Emit calls every subscriber registered for T's concrete type, in
// registration order, on the calling goroutine (spec §4.10: "fanned out
// synchronously inside the receive loop").
func Emit[T any](b *Bus, v T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.mu.RLock()
	list := make([]subscriber, len(b.subs[t]))
	copy(list, b.subs[t])
	b.mu.RUnlock()
	for _, s := range list {
		s.fn(v)
	}
}

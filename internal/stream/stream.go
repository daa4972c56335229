// Package stream provides small channel-based publish-subscribe primitives:
// State broadcasts a current value with replay of the latest snapshot to new
// subscribers, Signal broadcasts one-shot events with no replay.
package stream

import (
	"context"
	"sync"
)

// State holds a current value and broadcasts it to subscribers. A new
// subscriber receives the current value immediately; every Set delivers the
// new value to all subscribers. Delivery is conflated: a subscriber that is
// slow to drain its channel observes the latest value, not every intermediate
// one.
type State[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]chan T
	next  int
}

func NewState[T any](initial T) *State[T] {
	return &State[T]{
		value: initial,
		subs:  make(map[int]chan T),
	}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the current value and notifies all subscribers.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	for _, ch := range s.subs {
		send(ch, v)
	}
}

// Watch subscribes to the state. The returned channel carries the current
// value immediately and the latest value after each Set. The subscription is
// released and the channel closed when ctx is done.
func (s *State[T]) Watch(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	ch <- s.value
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

// Signal broadcasts one-shot events to current subscribers only. Events are
// never replayed: a subscriber that joins after an Emit does not observe it.
type Signal[T any] struct {
	mu   sync.Mutex
	subs map[int]chan T
	next int
}

func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{subs: make(map[int]chan T)}
}

// Emit delivers v to every current subscriber. For a subscriber that has not
// consumed the previous event yet, the new event replaces it.
func (s *Signal[T]) Emit(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		send(ch, v)
	}
}

// Subscribe registers for future events until ctx is done.
func (s *Signal[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

// send pushes v without blocking, evicting a stale buffered value if needed.
func send[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

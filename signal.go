package sessions

import "sync"

// boolSignal is a latest-value broadcast: every subscriber gets the current
// value on subscribe, then one value per transition. Buffers hold a single
// slot and older values are dropped, so a slow consumer observes the latest
// state rather than the full history.
type boolSignal struct {
	mu     sync.Mutex
	value  bool
	closed bool
	nextID int
	subs   map[int]chan bool
}

func newBoolSignal(initial bool) *boolSignal {
	return &boolSignal{
		value: initial,
		subs:  map[int]chan bool{},
	}
}

// Subscribe registers a consumer and replays the current value immediately.
// The returned cancel func is idempotent and closes the channel.
func (s *boolSignal) Subscribe() (<-chan bool, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan bool, 1)
	ch <- s.value

	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
}

// Set publishes a new value to every subscriber
func (s *boolSignal) Set(value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.value = value
	for _, ch := range s.subs {
		publishLatest(ch, value)
	}
}

// Latest is the synchronous snapshot of the signal
func (s *boolSignal) Latest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Close completes the stream. Subscribers receive any undelivered latest
// value and then a closed channel; late subscribers get the terminal snapshot.
func (s *boolSignal) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// publishLatest drops the stale buffered value, if any, before writing so the
// single-slot buffer always holds the most recent state.
func publishLatest(ch chan bool, value bool) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- value:
	default:
	}
}

package sessions

import (
	"context"
	"sync"
	"time"
)

// IdentityStore holds at most one authenticated identity and exposes the
// live logged-in signal views subscribe to. It is explicitly constructed and
// passed to consumers; there is no ambient global instance.
type IdentityStore struct {
	mu       sync.Mutex
	identity *Identity
	loggedAt *time.Time
	closed   bool

	signal *boolSignal
	logger Logger
	sink   ActivitySink
	now    func() time.Time
}

// StoreOption customizes identity store construction.
type StoreOption func(*IdentityStore)

// WithStoreLogger overrides the default logger.
func WithStoreLogger(logger Logger) StoreOption {
	return func(s *IdentityStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStoreClock injects a custom clock (useful for tests).
func WithStoreClock(clock func() time.Time) StoreOption {
	return func(s *IdentityStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithStoreActivitySink sets the ActivitySink used to publish auth events.
func WithStoreActivitySink(sink ActivitySink) StoreOption {
	return func(s *IdentityStore) {
		s.sink = normalizeActivitySink(sink)
	}
}

// NewIdentityStore returns an anonymous store.
func NewIdentityStore(opts ...StoreOption) *IdentityStore {
	s := &IdentityStore{
		signal: newBoolSignal(false),
		logger: defLogger{},
		sink:   noopActivitySink{},
		now:    time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// LogIn replaces the current identity unconditionally and re-emits the
// logged-in signal. Repeated logins replace the identity, they never merge.
func (s *IdentityStore) LogIn(identity *Identity) {
	if identity == nil {
		s.logger.Info("LogIn called with nil identity, ignoring")
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Info("LogIn on closed identity store, ignoring")
		return
	}
	s.identity = identity
	at := s.now()
	s.loggedAt = &at
	s.mu.Unlock()

	s.signal.Set(true)
	s.logger.Debug("identity %d logged in", identity.ID)
	s.record(ActivityEvent{
		EventType: ActivityEventLoginSuccess,
		UserID:    identity.ID,
		Metadata:  map[string]any{"username": identity.Username},
	})
}

// LogOut clears the identity. Safe to call when already logged out; the
// signal still re-emits false so subscribers converge.
func (s *IdentityStore) LogOut() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	prev := s.identity
	s.identity = nil
	s.loggedAt = nil
	s.mu.Unlock()

	s.signal.Set(false)

	if prev != nil {
		s.logger.Debug("identity %d logged out", prev.ID)
		s.record(ActivityEvent{
			EventType: ActivityEventLogout,
			UserID:    prev.ID,
		})
	}
}

// IsAuthenticated is the synchronous snapshot read.
func (s *IdentityStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity != nil
}

// Current returns the held identity, if any.
func (s *IdentityStore) Current() (*Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil, false
	}
	return s.identity, true
}

// LoggedInAt reports when the current identity was stored.
func (s *IdentityStore) LoggedInAt() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loggedAt == nil {
		return time.Time{}, false
	}
	return *s.loggedAt, true
}

// Observe produces the live logged-in stream. At least one event reflecting
// current state is delivered immediately; the cancel func releases the
// subscription.
func (s *IdentityStore) Observe() (<-chan bool, func()) {
	return s.signal.Subscribe()
}

// Token implements TokenSource so gateways can read the bearer credential
// straight from the store.
func (s *IdentityStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return ""
	}
	return s.identity.Token
}

// Close drops the identity and completes the signal. The store cannot be
// reused afterwards.
func (s *IdentityStore) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.identity = nil
	s.loggedAt = nil
	s.mu.Unlock()

	s.signal.Set(false)
	s.signal.Close()
}

func (s *IdentityStore) record(event ActivityEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now()
	}

	sink := normalizeActivitySink(s.sink)
	if err := sink.Record(context.Background(), event); err != nil {
		s.logger.Error("identity store activity sink error: %v", err)
	}
}

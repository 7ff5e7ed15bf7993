package sessions

import (
	"context"
	"time"
)

// ActivityEventType enumerates supported activity categories.
type ActivityEventType string

const (
	ActivityEventLoginSuccess     ActivityEventType = "auth.login.success"
	ActivityEventLoginFailure     ActivityEventType = "auth.login.failure"
	ActivityEventLogout           ActivityEventType = "auth.logout"
	ActivityEventRegistration     ActivityEventType = "auth.registration"
	ActivityEventMembershipJoined ActivityEventType = "session.membership.joined"
	ActivityEventMembershipLeft   ActivityEventType = "session.membership.left"
	ActivityEventProfileDeleted   ActivityEventType = "profile.deleted"
)

// ActivityEvent captures audit-friendly information about a client action.
type ActivityEvent struct {
	EventType  ActivityEventType
	UserID     int64
	SessionID  int64
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivitySink consumes activity events for auditing/telemetry purposes.
// Sinks run best-effort: errors are logged, never propagated.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

// Record implements ActivitySink.
func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

func normalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return noopActivitySink{}
	}
	return s
}

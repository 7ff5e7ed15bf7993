package sessions

import (
	"context"
	"sync"
)

// SessionView is the client-held copy of one session plus the participation
// flag derived from it. The reconciler replaces the session wholesale after
// every successful toggle; the flag is never derived from a toggle response.
type SessionView struct {
	Session       *Session
	Teacher       *Teacher
	Participating bool
}

// MembershipReconciler toggles the current identity's membership in a
// session with the mutate-then-refetch protocol: join or leave, then re-get
// the session so the view holds the canonical post-toggle membership set.
// The extra round-trip buys read-after-write consistency; the toggle
// response alone does not carry the updated set.
type MembershipReconciler struct {
	api      SessionAPI
	teachers TeacherAPI
	store    *IdentityStore
	logger   Logger
	sink     ActivitySink

	mu      sync.Mutex
	pending map[int64]*sessionLock
}

// sessionLock serializes toggles on one session id. The refcount lets the
// reconciler drop the entry once no toggle holds or waits on it, so the
// pending map stays bounded by in-flight toggles rather than by every id
// ever touched.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewMembershipReconciler returns a reconciler over the given gateways and
// identity store.
func NewMembershipReconciler(api SessionAPI, teachers TeacherAPI, store *IdentityStore) *MembershipReconciler {
	return &MembershipReconciler{
		api:      api,
		teachers: teachers,
		store:    store,
		logger:   defLogger{},
		sink:     noopActivitySink{},
		pending:  map[int64]*sessionLock{},
	}
}

func (r *MembershipReconciler) WithLogger(logger Logger) *MembershipReconciler {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// WithActivitySink configures an ActivitySink for membership events.
func (r *MembershipReconciler) WithActivitySink(sink ActivitySink) *MembershipReconciler {
	r.sink = normalizeActivitySink(sink)
	return r
}

// Load fetches the session and its teacher and derives the participation
// flag for the current identity.
func (r *MembershipReconciler) Load(ctx context.Context, id int64) (*SessionView, error) {
	session, err := r.api.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &SessionView{Session: session}

	if r.teachers != nil && session.TeacherID != 0 {
		teacher, err := r.teachers.Get(ctx, session.TeacherID)
		if err != nil {
			return nil, err
		}
		view.Teacher = teacher
	}

	r.derive(view)

	return view, nil
}

// Toggle joins the session when the current identity is not a member and
// leaves it otherwise. On success the view's session is replaced with the
// refetched record and the flag re-derived from it. On failure the view is
// left untouched and no refetch happens, so the failure is not masked by a
// stale-looking success.
//
// Toggles on the same session id are serialized: a second toggle waits for
// the prior join/leave + refetch to finish, keeping membership snapshots in
// order.
func (r *MembershipReconciler) Toggle(ctx context.Context, view *SessionView) error {
	if view == nil || view.Session == nil {
		return wrapKind(ErrNotFound, nil, map[string]any{"reason": "no session loaded"})
	}

	identity, ok := r.store.Current()
	if !ok {
		return wrapKind(ErrUnauthenticated, nil, map[string]any{
			"action":  string(ActionJoinSession),
			"session": view.Session.ID,
		})
	}

	sessionID := view.Session.ID

	lock := r.acquireSession(sessionID)
	defer r.releaseSession(sessionID, lock)

	joining := !view.Session.HasMember(identity.ID)

	var err error
	if joining {
		err = r.api.Join(ctx, sessionID, identity.ID)
	} else {
		err = r.api.Leave(ctx, sessionID, identity.ID)
	}
	if err != nil {
		r.logger.Error("membership toggle failed for session %d: %v", sessionID, err)
		return err
	}

	// refetch is mandatory: replace the held copy wholesale
	refetched, err := r.api.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	view.Session = refetched
	r.derive(view)

	event := ActivityEvent{
		EventType: ActivityEventMembershipJoined,
		UserID:    identity.ID,
		SessionID: sessionID,
	}
	if !joining {
		event.EventType = ActivityEventMembershipLeft
	}
	r.record(ctx, event)

	return nil
}

// Participating reports whether the current identity is in the session's
// membership set.
func (r *MembershipReconciler) Participating(session *Session) bool {
	identity, ok := r.store.Current()
	if !ok {
		return false
	}
	return session.HasMember(identity.ID)
}

func (r *MembershipReconciler) derive(view *SessionView) {
	view.Participating = r.Participating(view.Session)
}

func (r *MembershipReconciler) acquireSession(id int64) *sessionLock {
	r.mu.Lock()
	lock, ok := r.pending[id]
	if !ok {
		lock = &sessionLock{}
		r.pending[id] = lock
	}
	lock.refs++
	r.mu.Unlock()

	lock.mu.Lock()
	return lock
}

func (r *MembershipReconciler) releaseSession(id int64, lock *sessionLock) {
	lock.mu.Unlock()

	r.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(r.pending, id)
	}
	r.mu.Unlock()
}

func (r *MembershipReconciler) record(ctx context.Context, event ActivityEvent) {
	sink := normalizeActivitySink(r.sink)
	if err := sink.Record(ctx, event); err != nil {
		r.logger.Error("reconciler activity sink error: %v", err)
	}
}

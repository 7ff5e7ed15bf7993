package sessions_test

import (
	"context"
	"sync"
	"testing"
	"time"

	sessions "github.com/goliatone/go-sessions-client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func memberStore(id int64) *sessions.IdentityStore {
	store := sessions.NewIdentityStore()
	store.LogIn(&sessions.Identity{ID: id})
	return store
}

func TestLoadFetchesSessionAndTeacher(t *testing.T) {
	api := &fakeSessionAPI{
		getFn: func(ctx context.Context, id int64) (*sessions.Session, error) {
			return &sessions.Session{ID: id, TeacherID: 3, Users: []int64{1, 2}}, nil
		},
	}

	teachers := &MockTeacherAPI{}
	teachers.On("Get", mock.Anything, int64(3)).Return(&sessions.Teacher{ID: 3, LastName: "Smith"}, nil).Once()

	r := sessions.NewMembershipReconciler(api, teachers, memberStore(2))

	view, err := r.Load(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), view.Session.ID)
	require.NotNil(t, view.Teacher)
	assert.Equal(t, "Smith", view.Teacher.LastName)
	assert.True(t, view.Participating)
	teachers.AssertExpectations(t)
}

func TestToggleJoinThenRefetch(t *testing.T) {
	api := &fakeSessionAPI{
		getFn: func(ctx context.Context, id int64) (*sessions.Session, error) {
			return &sessions.Session{ID: 1, Users: []int64{2}}, nil
		},
	}

	r := sessions.NewMembershipReconciler(api, nil, memberStore(2))

	view := &sessions.SessionView{Session: &sessions.Session{ID: 1, Users: []int64{}}}
	require.NoError(t, r.Toggle(context.Background(), view))

	// exactly one join then one refetch, in that order
	assert.Equal(t, []string{"join", "get"}, api.Calls())
	assert.True(t, view.Participating)
	assert.Equal(t, []int64{2}, view.Session.Users)
}

func TestToggleLeaveThenRefetch(t *testing.T) {
	api := &fakeSessionAPI{
		getFn: func(ctx context.Context, id int64) (*sessions.Session, error) {
			return &sessions.Session{ID: 1, Users: []int64{1, 3}}, nil
		},
	}

	r := sessions.NewMembershipReconciler(api, nil, memberStore(2))

	view := &sessions.SessionView{Session: &sessions.Session{ID: 1, Users: []int64{1, 2, 3}}}
	require.NoError(t, r.Toggle(context.Background(), view))

	assert.Equal(t, []string{"leave", "get"}, api.Calls())
	assert.False(t, view.Participating)
	assert.Equal(t, []int64{1, 3}, view.Session.Users)
}

// join then leave issues exactly two toggles and two refetches
func TestToggleJoinThenLeaveSequence(t *testing.T) {
	canonical := &sessions.Session{ID: 1, Users: []int64{}}
	api := &fakeSessionAPI{}
	api.getFn = func(ctx context.Context, id int64) (*sessions.Session, error) {
		snapshot := *canonical
		return &snapshot, nil
	}
	api.joinFn = func(ctx context.Context, sessionID, userID int64) error {
		canonical.Users = []int64{userID}
		return nil
	}
	api.leaveFn = func(ctx context.Context, sessionID, userID int64) error {
		canonical.Users = []int64{}
		return nil
	}

	r := sessions.NewMembershipReconciler(api, nil, memberStore(2))

	view := &sessions.SessionView{Session: &sessions.Session{ID: 1, Users: []int64{}}}

	require.NoError(t, r.Toggle(context.Background(), view))
	assert.True(t, view.Participating)

	require.NoError(t, r.Toggle(context.Background(), view))
	assert.False(t, view.Participating)
	assert.Empty(t, view.Session.Users)

	assert.Equal(t, []string{"join", "get", "leave", "get"}, api.Calls())
}

func TestToggleFailureLeavesViewUntouched(t *testing.T) {
	api := &fakeSessionAPI{
		joinFn: func(ctx context.Context, sessionID, userID int64) error {
			return sessions.ErrUnauthenticated
		},
	}

	r := sessions.NewMembershipReconciler(api, nil, memberStore(2))

	held := &sessions.Session{ID: 1, Users: []int64{5}}
	view := &sessions.SessionView{Session: held, Participating: false}

	err := r.Toggle(context.Background(), view)
	require.Error(t, err)
	assert.True(t, sessions.IsUnauthenticated(err))

	// no refetch, held copy and flag unchanged
	assert.Equal(t, []string{"join"}, api.Calls())
	assert.Same(t, held, view.Session)
	assert.False(t, view.Participating)
}

func TestToggleAnonymousIsRejectedBeforeAnyCall(t *testing.T) {
	api := &fakeSessionAPI{}
	r := sessions.NewMembershipReconciler(api, nil, sessions.NewIdentityStore())

	view := &sessions.SessionView{Session: &sessions.Session{ID: 1}}
	err := r.Toggle(context.Background(), view)
	require.Error(t, err)
	assert.True(t, sessions.IsUnauthenticated(err))
	assert.Empty(t, api.Calls())
}

func TestToggleEmitsMembershipEvents(t *testing.T) {
	api := &fakeSessionAPI{
		getFn: func(ctx context.Context, id int64) (*sessions.Session, error) {
			return &sessions.Session{ID: 1, Users: []int64{2}}, nil
		},
	}

	sink := &recordingSink{}
	r := sessions.NewMembershipReconciler(api, nil, memberStore(2)).WithActivitySink(sink)

	view := &sessions.SessionView{Session: &sessions.Session{ID: 1}}
	require.NoError(t, r.Toggle(context.Background(), view))

	events := sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, sessions.ActivityEventMembershipJoined, events[0].EventType)
	assert.Equal(t, int64(2), events[0].UserID)
	assert.Equal(t, int64(1), events[0].SessionID)
}

// a second toggle on the same session id waits for the prior
// join/leave + refetch to finish
func TestTogglesOnSameSessionSerialize(t *testing.T) {
	firstJoinStarted := make(chan struct{})
	releaseFirstJoin := make(chan struct{})
	var once sync.Once

	canonical := &sessions.Session{ID: 1, Users: []int64{}}
	var mu sync.Mutex

	api := &fakeSessionAPI{}
	api.joinFn = func(ctx context.Context, sessionID, userID int64) error {
		once.Do(func() {
			close(firstJoinStarted)
			<-releaseFirstJoin
		})
		mu.Lock()
		canonical.Users = append(canonical.Users, userID)
		mu.Unlock()
		return nil
	}
	api.leaveFn = func(ctx context.Context, sessionID, userID int64) error {
		mu.Lock()
		canonical.Users = []int64{}
		mu.Unlock()
		return nil
	}
	api.getFn = func(ctx context.Context, id int64) (*sessions.Session, error) {
		mu.Lock()
		defer mu.Unlock()
		snapshot := *canonical
		snapshot.Users = append([]int64{}, canonical.Users...)
		return &snapshot, nil
	}

	r := sessions.NewMembershipReconciler(api, nil, memberStore(2))

	view := &sessions.SessionView{Session: &sessions.Session{ID: 1, Users: []int64{}}}

	done := make(chan error, 1)
	go func() {
		done <- r.Toggle(context.Background(), view)
	}()

	<-firstJoinStarted

	second := &sessions.SessionView{Session: &sessions.Session{ID: 1, Users: []int64{2}}}
	secondDone := make(chan error, 1)
	go func() {
		secondDone <- r.Toggle(context.Background(), second)
	}()

	// the second toggle must not reach the gateway while the first holds the lock
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []string{"join"}, api.Calls())

	close(releaseFirstJoin)
	require.NoError(t, <-done)
	require.NoError(t, <-secondDone)

	assert.Equal(t, []string{"join", "get", "leave", "get"}, api.Calls())
}

func TestParticipatingDerivesFromMembership(t *testing.T) {
	r := sessions.NewMembershipReconciler(&fakeSessionAPI{}, nil, memberStore(2))

	assert.True(t, r.Participating(&sessions.Session{ID: 1, Users: []int64{2}}))
	assert.False(t, r.Participating(&sessions.Session{ID: 1, Users: []int64{3}}))

	anon := sessions.NewMembershipReconciler(&fakeSessionAPI{}, nil, sessions.NewIdentityStore())
	assert.False(t, anon.Participating(&sessions.Session{ID: 1, Users: []int64{2}}))
}

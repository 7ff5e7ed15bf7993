package sessions_test

import (
	"context"
	"sync"

	sessions "github.com/goliatone/go-sessions-client"
	"github.com/stretchr/testify/mock"
)

// MockAuthAPI implements sessions.AuthAPI
type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Register(ctx context.Context, req sessions.RegisterRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockAuthAPI) Login(ctx context.Context, req sessions.LoginRequest) (*sessions.Identity, error) {
	args := m.Called(ctx, req)
	if identity, ok := args.Get(0).(*sessions.Identity); ok {
		return identity, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockProfileAPI implements sessions.ProfileAPI
type MockProfileAPI struct {
	mock.Mock
}

func (m *MockProfileAPI) Get(ctx context.Context, id int64) (*sessions.Profile, error) {
	args := m.Called(ctx, id)
	if profile, ok := args.Get(0).(*sessions.Profile); ok {
		return profile, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileAPI) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTeacherAPI implements sessions.TeacherAPI
type MockTeacherAPI struct {
	mock.Mock
}

func (m *MockTeacherAPI) List(ctx context.Context) ([]sessions.Teacher, error) {
	args := m.Called(ctx)
	if teachers, ok := args.Get(0).([]sessions.Teacher); ok {
		return teachers, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTeacherAPI) Get(ctx context.Context, id int64) (*sessions.Teacher, error) {
	args := m.Called(ctx, id)
	if teacher, ok := args.Get(0).(*sessions.Teacher); ok {
		return teacher, args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeSessionAPI is a scriptable sessions.SessionAPI that records the order
// of wire calls, which is what the reconciler tests assert on.
type fakeSessionAPI struct {
	mu    sync.Mutex
	calls []string

	listFn   func(ctx context.Context) ([]sessions.Session, error)
	getFn    func(ctx context.Context, id int64) (*sessions.Session, error)
	createFn func(ctx context.Context, draft sessions.SessionDraft) (*sessions.Session, error)
	updateFn func(ctx context.Context, id int64, draft sessions.SessionDraft) (*sessions.Session, error)
	removeFn func(ctx context.Context, id int64) error
	joinFn   func(ctx context.Context, sessionID, userID int64) error
	leaveFn  func(ctx context.Context, sessionID, userID int64) error
}

func (f *fakeSessionAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeSessionAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeSessionAPI) List(ctx context.Context) ([]sessions.Session, error) {
	f.record("list")
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeSessionAPI) Get(ctx context.Context, id int64) (*sessions.Session, error) {
	f.record("get")
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return &sessions.Session{ID: id}, nil
}

func (f *fakeSessionAPI) Create(ctx context.Context, draft sessions.SessionDraft) (*sessions.Session, error) {
	f.record("create")
	if f.createFn != nil {
		return f.createFn(ctx, draft)
	}
	return &sessions.Session{}, nil
}

func (f *fakeSessionAPI) Update(ctx context.Context, id int64, draft sessions.SessionDraft) (*sessions.Session, error) {
	f.record("update")
	if f.updateFn != nil {
		return f.updateFn(ctx, id, draft)
	}
	return &sessions.Session{ID: id}, nil
}

func (f *fakeSessionAPI) Remove(ctx context.Context, id int64) error {
	f.record("remove")
	if f.removeFn != nil {
		return f.removeFn(ctx, id)
	}
	return nil
}

func (f *fakeSessionAPI) Join(ctx context.Context, sessionID, userID int64) error {
	f.record("join")
	if f.joinFn != nil {
		return f.joinFn(ctx, sessionID, userID)
	}
	return nil
}

func (f *fakeSessionAPI) Leave(ctx context.Context, sessionID, userID int64) error {
	f.record("leave")
	if f.leaveFn != nil {
		return f.leaveFn(ctx, sessionID, userID)
	}
	return nil
}

// recordingSink captures activity events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []sessions.ActivityEvent
}

func (r *recordingSink) Record(_ context.Context, event sessions.ActivityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingSink) Events() []sessions.ActivityEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sessions.ActivityEvent, len(r.events))
	copy(out, r.events)
	return out
}

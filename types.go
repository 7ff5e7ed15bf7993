package sessions

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// AuthAPI holds the wire operations of the auth resource
type AuthAPI interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, req LoginRequest) (*Identity, error)
}

// SessionAPI holds the wire operations of the session resource
type SessionAPI interface {
	List(ctx context.Context) ([]Session, error)
	Get(ctx context.Context, id int64) (*Session, error)
	Create(ctx context.Context, draft SessionDraft) (*Session, error)
	Update(ctx context.Context, id int64, draft SessionDraft) (*Session, error)
	Remove(ctx context.Context, id int64) error
	Join(ctx context.Context, sessionID, userID int64) error
	Leave(ctx context.Context, sessionID, userID int64) error
}

// TeacherAPI holds the wire operations of the teacher resource
type TeacherAPI interface {
	List(ctx context.Context) ([]Teacher, error)
	Get(ctx context.Context, id int64) (*Teacher, error)
}

// ProfileAPI holds the wire operations of the user resource
type ProfileAPI interface {
	Get(ctx context.Context, id int64) (*Profile, error)
	Remove(ctx context.Context, id int64) error
}

// TokenSource provides the bearer credential attached to authenticated
// requests. An empty token means the request goes out anonymous.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string {
	if f == nil {
		return ""
	}
	return f()
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SESSIONS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SESSIONS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SESSIONS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

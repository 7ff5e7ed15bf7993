package sessions

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Authenticator glues the auth gateway to the identity store: it runs the
// login/register workflows and keeps the store as the single authoritative
// record of who is signed in.
type Authenticator struct {
	api    AuthAPI
	store  *IdentityStore
	logger Logger
	sink   ActivitySink
}

// NewAuthenticator returns an authenticator over the given gateway and store.
func NewAuthenticator(api AuthAPI, store *IdentityStore) *Authenticator {
	return &Authenticator{
		api:    api,
		store:  store,
		logger: defLogger{},
		sink:   noopActivitySink{},
	}
}

func (a *Authenticator) WithLogger(logger Logger) *Authenticator {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// WithActivitySink configures an ActivitySink for emitting auth events.
func (a *Authenticator) WithActivitySink(sink ActivitySink) *Authenticator {
	a.sink = normalizeActivitySink(sink)
	return a
}

// Login authenticates the credential and stores the resulting identity. On
// failure the store is left untouched: a prior identity, if any, survives.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*Identity, error) {
	req := LoginRequest{Email: email, Password: password}
	if err := req.Validate(); err != nil {
		return nil, wrapKind(ErrValidation, err, map[string]any{"email": email})
	}

	identity, err := a.api.Login(ctx, req)
	if err != nil {
		a.logger.Error("login failed for %s", email)
		a.emit(ctx, ActivityEvent{
			EventType: ActivityEventLoginFailure,
			Metadata:  map[string]any{"email": email, "error": err.Error()},
		})
		return nil, err
	}

	if identity == nil {
		return nil, goerrors.New("login returned no identity", goerrors.CategoryInternal)
	}

	a.store.LogIn(identity)

	return identity, nil
}

// Register creates an account. It does not log the new account in; the
// caller routes to the login view afterwards.
func (a *Authenticator) Register(ctx context.Context, req RegisterRequest) error {
	if err := req.Validate(); err != nil {
		return wrapKind(ErrValidation, err, map[string]any{"email": req.Email})
	}

	if err := a.api.Register(ctx, req); err != nil {
		return err
	}

	a.emit(ctx, ActivityEvent{
		EventType: ActivityEventRegistration,
		Metadata:  map[string]any{"email": req.Email},
	})

	return nil
}

// Logout clears the store. Safe to call when already anonymous.
func (a *Authenticator) Logout() {
	a.store.LogOut()
}

func (a *Authenticator) emit(ctx context.Context, event ActivityEvent) {
	sink := normalizeActivitySink(a.sink)
	if err := sink.Record(ctx, event); err != nil {
		a.logger.Error("authenticator activity sink error: %v", err)
	}
}

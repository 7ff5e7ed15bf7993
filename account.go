package sessions

import (
	"context"
)

// Account is the profile workflow for the signed-in user: fetch the full
// profile record on demand and delete the account, which also signs out.
type Account struct {
	api    ProfileAPI
	store  *IdentityStore
	logger Logger
	sink   ActivitySink
}

// NewAccount returns the profile workflow over the given gateway and store.
func NewAccount(api ProfileAPI, store *IdentityStore) *Account {
	return &Account{
		api:    api,
		store:  store,
		logger: defLogger{},
		sink:   noopActivitySink{},
	}
}

func (a *Account) WithLogger(logger Logger) *Account {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// WithActivitySink configures an ActivitySink for emitting profile events.
func (a *Account) WithActivitySink(sink ActivitySink) *Account {
	a.sink = normalizeActivitySink(sink)
	return a
}

// Me fetches the full profile of the current identity. The record is not
// cached; every call is a fresh read.
func (a *Account) Me(ctx context.Context) (*Profile, error) {
	identity, ok := a.store.Current()
	if !ok {
		return nil, wrapKind(ErrUnauthenticated, nil, map[string]any{"action": string(ActionViewProfile)})
	}

	return a.api.Get(ctx, identity.ID)
}

// Delete removes the current account and logs the identity out. The store is
// only cleared after the server confirms the deletion.
func (a *Account) Delete(ctx context.Context) error {
	identity, ok := a.store.Current()
	if !ok {
		return wrapKind(ErrUnauthenticated, nil, map[string]any{"action": string(ActionDeleteProfile)})
	}

	if err := a.api.Remove(ctx, identity.ID); err != nil {
		return err
	}

	sink := normalizeActivitySink(a.sink)
	if err := sink.Record(ctx, ActivityEvent{
		EventType: ActivityEventProfileDeleted,
		UserID:    identity.ID,
	}); err != nil {
		a.logger.Error("account activity sink error: %v", err)
	}

	a.store.LogOut()

	return nil
}

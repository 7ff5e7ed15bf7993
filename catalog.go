package sessions

import (
	"context"
)

// Catalog is the role-gated session workflow behind the list, detail and
// management views. Every operation resolves the access level once, asks the
// gate, and only then reaches for the gateway.
type Catalog struct {
	api    SessionAPI
	store  *IdentityStore
	logger Logger
}

// NewCatalog returns the session workflow over the given gateway and store.
func NewCatalog(api SessionAPI, store *IdentityStore) *Catalog {
	return &Catalog{
		api:    api,
		store:  store,
		logger: defLogger{},
	}
}

func (c *Catalog) WithLogger(logger Logger) *Catalog {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// List returns all sessions. Requires authentication.
func (c *Catalog) List(ctx context.Context) ([]Session, error) {
	if err := c.permit(ActionViewSessions); err != nil {
		return nil, err
	}
	return c.api.List(ctx)
}

// Get returns one session. Requires authentication.
func (c *Catalog) Get(ctx context.Context, id int64) (*Session, error) {
	if err := c.permit(ActionViewSession); err != nil {
		return nil, err
	}
	return c.api.Get(ctx, id)
}

// Create submits a create form. Admin only.
func (c *Catalog) Create(ctx context.Context, form SessionForm) (*Session, error) {
	if err := c.permit(ActionCreateSession); err != nil {
		return nil, err
	}

	draft, err := form.Draft()
	if err != nil {
		return nil, err
	}

	return c.api.Create(ctx, draft)
}

// Update submits an update form against the given session id. Admin only.
func (c *Catalog) Update(ctx context.Context, id int64, form SessionForm) (*Session, error) {
	if err := c.permit(ActionUpdateSession); err != nil {
		return nil, err
	}

	draft, err := form.Draft()
	if err != nil {
		return nil, err
	}

	return c.api.Update(ctx, id, draft)
}

// Remove deletes a session. Admin only.
func (c *Catalog) Remove(ctx context.Context, id int64) error {
	if err := c.permit(ActionDeleteSession); err != nil {
		return err
	}
	return c.api.Remove(ctx, id)
}

func (c *Catalog) permit(action Action) error {
	identity, _ := c.store.Current()
	access := AccessFor(identity)

	if Permit(access, action) {
		return nil
	}

	if access == AccessAnonymous {
		return wrapKind(ErrUnauthenticated, nil, map[string]any{"action": string(action)})
	}

	c.logger.Debug("action %s denied for %s", action, access)

	return wrapKind(ErrForbidden, nil, map[string]any{
		"action": string(action),
		"access": access.String(),
	})
}

package sessions

import (
	"context"
	"fmt"
	"net/http"
)

var _ SessionAPI = &SessionGateway{}

// SessionGateway maps the session resource endpoints. Create, Update and
// Remove are admin operations; the server enforces that, the client gate
// only hides the affordances.
type SessionGateway struct {
	client *Client
}

func (g *SessionGateway) List(ctx context.Context) ([]Session, error) {
	out := []Session{}
	if err := g.client.do(ctx, http.MethodGet, "/session", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *SessionGateway) Get(ctx context.Context, id int64) (*Session, error) {
	out := &Session{}
	if err := g.client.do(ctx, http.MethodGet, fmt.Sprintf("/session/%d", id), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *SessionGateway) Create(ctx context.Context, draft SessionDraft) (*Session, error) {
	out := &Session{}
	if err := g.client.do(ctx, http.MethodPost, "/session", draft, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *SessionGateway) Update(ctx context.Context, id int64, draft SessionDraft) (*Session, error) {
	out := &Session{}
	if err := g.client.do(ctx, http.MethodPut, fmt.Sprintf("/session/%d", id), draft, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *SessionGateway) Remove(ctx context.Context, id int64) error {
	return g.client.do(ctx, http.MethodDelete, fmt.Sprintf("/session/%d", id), nil, nil)
}

// Join adds userID to the session membership. The response carries no
// membership state; callers that need the updated set must refetch.
func (g *SessionGateway) Join(ctx context.Context, sessionID, userID int64) error {
	return g.client.do(ctx, http.MethodPost, fmt.Sprintf("/session/%d/participate/%d", sessionID, userID), nil, nil)
}

// Leave removes userID from the session membership. Same contract as Join.
func (g *SessionGateway) Leave(ctx context.Context, sessionID, userID int64) error {
	return g.client.do(ctx, http.MethodDelete, fmt.Sprintf("/session/%d/participate/%d", sessionID, userID), nil, nil)
}

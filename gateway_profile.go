package sessions

import (
	"context"
	"fmt"
	"net/http"
)

var _ ProfileAPI = &ProfileGateway{}

// ProfileGateway maps the user resource endpoints.
type ProfileGateway struct {
	client *Client
}

func (g *ProfileGateway) Get(ctx context.Context, id int64) (*Profile, error) {
	out := &Profile{}
	if err := g.client.do(ctx, http.MethodGet, fmt.Sprintf("/user/%d", id), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *ProfileGateway) Remove(ctx context.Context, id int64) error {
	return g.client.do(ctx, http.MethodDelete, fmt.Sprintf("/user/%d", id), nil, nil)
}

package sessions

import (
	"context"
	"fmt"
	"net/http"
)

var _ TeacherAPI = &TeacherGateway{}

// TeacherGateway maps the teacher resource endpoints. Teachers are immutable
// reference data from the client's perspective.
type TeacherGateway struct {
	client *Client
}

func (g *TeacherGateway) List(ctx context.Context) ([]Teacher, error) {
	out := []Teacher{}
	if err := g.client.do(ctx, http.MethodGet, "/teacher", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *TeacherGateway) Get(ctx context.Context, id int64) (*Teacher, error) {
	out := &Teacher{}
	if err := g.client.do(ctx, http.MethodGet, fmt.Sprintf("/teacher/%d", id), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

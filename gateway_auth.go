package sessions

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

var _ AuthAPI = &AuthGateway{}

// AuthGateway maps the auth resource endpoints.
type AuthGateway struct {
	client *Client
}

// Register creates a new account. A duplicate email surfaces as Conflict;
// the server answers the duplicate case with a 400, so both codes map there.
func (g *AuthGateway) Register(ctx context.Context, req RegisterRequest) error {
	err := g.client.do(ctx, http.MethodPost, "/auth/register", req, nil)
	if err == nil {
		return nil
	}

	if statusOf(err) == http.StatusBadRequest {
		return wrapKind(ErrConflict, err, map[string]any{"email": req.Email})
	}

	return err
}

// Login exchanges the credential for an identity. Bad credentials surface as
// Unauthenticated. The credential is not retained after the call.
func (g *AuthGateway) Login(ctx context.Context, req LoginRequest) (*Identity, error) {
	identity := &Identity{}
	if err := g.client.do(ctx, http.MethodPost, "/auth/login", req, identity); err != nil {
		return nil, err
	}

	identity.Claims = decodeTokenClaims(identity.Token)

	return identity, nil
}

// decodeTokenClaims reads the registered claims out of the issued token
// without verifying the signature. The token stays an opaque bearer
// credential; a token that does not parse simply yields no claims.
func decodeTokenClaims(token string) *TokenClaims {
	if token == "" {
		return nil
	}

	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil
	}

	decoded := &TokenClaims{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		decoded.IssuedAt = &claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		decoded.ExpiresAt = &claims.ExpiresAt.Time
	}

	return decoded
}

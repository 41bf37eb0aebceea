package athom

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/darmiel/homeyctl/internal/core"
)

// SetToken applies an account token to the session and persists it. Any
// cached profile is dropped, the token may belong to a different account.
func (c *Client) SetToken(_ context.Context, token *core.AccountToken) error {
	c.current.Token = token
	c.current.User = nil
	return c.states.Set(c.current)
}

// IsLoggedIn reports whether the session carries a usable token. Access
// tokens issued by the cloud are JWTs, so expiry can be checked without a
// network call; opaque tokens are assumed valid.
func (c *Client) IsLoggedIn() bool {
	token := c.current.Token
	if token == nil || token.AccessToken == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token.AccessToken, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	if exp.After(time.Now()) {
		return true
	}
	// an expired access token is still usable when it can be refreshed
	return token.RefreshToken != ""
}

// Logout invalidates the session's authentication state.
func (c *Client) Logout(_ context.Context) error {
	c.current = State{}
	return c.states.Set(c.current)
}

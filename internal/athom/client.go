// Package athom implements the cloud account API client. It is the only
// package that talks to the Homey cloud; everything above it goes through
// the core.CloudSession port.
package athom

import (
	"context"
	"net/http"
	"time"

	"github.com/darmiel/homeyctl/internal/core"
)

type Config struct {
	// APIRoot is the base URL of the cloud account API, without trailing slash.
	APIRoot string

	// ClientID and ClientSecret identify the CLI against the cloud.
	ClientID     string
	ClientSecret string

	// Settings is the persistent store backing the serialized session state.
	Settings core.SettingsStore

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client is the authenticated account session. One instance per process,
// constructed lazily by the session manager.
type Client struct {
	apiRoot      string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	states  stateStore
	current State
}

var _ core.CloudSession = (*Client)(nil)

// New constructs a session, restoring any previously persisted state.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	states := stateStore{settings: cfg.Settings}
	return &Client{
		apiRoot:      cfg.APIRoot,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   httpClient,
		states:       states,
		current:      states.Get(),
	}
}

// AuthenticatedUser fetches the live profile and caches it in the persisted
// session state for later offline fallback.
func (c *Client) AuthenticatedUser(ctx context.Context) (core.AuthenticatedUser, error) {
	var data profileData
	if _, err := c.get(ctx, c.apiRoot+"/user/me", &data); err != nil {
		return nil, err
	}

	c.current.User = &data
	if err := c.states.Set(c.current); err != nil {
		return nil, err
	}
	return &User{client: c, data: data}, nil
}

// CachedAuthenticatedUser returns the last successfully fetched profile
// without a network call.
func (c *Client) CachedAuthenticatedUser() (core.AuthenticatedUser, error) {
	if c.current.User == nil {
		return nil, ErrNoCachedUser
	}
	return &User{client: c, data: *c.current.User}, nil
}

// Authenticate exchanges the account token for a Homey-scoped delegation
// token. The returned handle defaults to the cloud relay address; the
// resolver overrides BaseURL when a local address is known.
func (c *Client) Authenticate(ctx context.Context, hub *core.Hub) (*core.Handle, error) {
	payload := map[string]string{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
	}
	var result struct {
		Token string `json:"token"`
	}
	if _, err := c.post(ctx, c.apiRoot+"/homey/"+hub.ID+"/delegate", payload, &result); err != nil {
		return nil, err
	}

	return &core.Handle{
		Name:    hub.Name,
		BaseURL: hub.RemoteURL,
		Token:   result.Token,
	}, nil
}

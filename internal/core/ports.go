package core

import "context"

// CloudSession is the authenticated account session against the Homey cloud.
// Implementation: internal/athom.Client.
type CloudSession interface {
	// SetToken applies an account token to the session and persists it.
	SetToken(ctx context.Context, token *AccountToken) error

	// IsLoggedIn reports whether the session carries a usable token.
	// It never performs a network call.
	IsLoggedIn() bool

	// Logout invalidates the session's authentication state.
	Logout(ctx context.Context) error

	// AuthenticatedUser fetches the live profile of the session owner.
	AuthenticatedUser(ctx context.Context) (AuthenticatedUser, error)

	// CachedAuthenticatedUser returns the last successfully fetched profile
	// without a network call. Fails when nothing was ever fetched.
	CachedAuthenticatedUser() (AuthenticatedUser, error)

	// Authenticate obtains a Homey-scoped handle for the given Hub.
	// The returned handle defaults to the cloud relay address.
	Authenticate(ctx context.Context, hub *Hub) (*Handle, error)
}

// AuthenticatedUser is the profile of the account owner.
type AuthenticatedUser interface {
	ID() string
	Fullname() string

	// GetHomeys lists all Homeys belonging to this user.
	GetHomeys(ctx context.Context) ([]*Hub, error)
}

// LocalProber scans the local network for directly reachable Homeys.
// The result maps Homey IDs to candidate gateway addresses. A nil or
// empty map is a valid result, probing is best-effort.
type LocalProber interface {
	Scan(ctx context.Context) map[string]string
}

// SelectOption is one choice presented by a list prompt.
type SelectOption struct {
	Value string
	Label string
}

// Prompter abstracts interactive terminal input.
type Prompter interface {
	// Input asks for a single line of free text.
	Input(label string) (string, error)

	// Select presents a single-choice list and returns the chosen Value.
	Select(label string, options []SelectOption) (string, error)
}

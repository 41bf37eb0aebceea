package core

import "strings"

// Hub represents a single Homey belonging to the authenticated account.
// The directory keeps one list of these per process; local discovery
// mutates records in place to attach a direct address.
type Hub struct {
	// ID is the stable Homey identifier. Display names are not unique,
	// the ID is the only safe way to reference a Homey.
	ID string `json:"id"`

	// Name is the user-chosen display name.
	Name string `json:"name"`

	// State is the lifecycle state as reported by the cloud,
	// e.g. "online", "offline" or a suffixed form like "rebooting_update".
	State string `json:"state"`

	// RemoteURL is the cloud relay address, always present.
	RemoteURL string `json:"remoteUrl"`

	// LocalAddress is the gateway address found by local discovery.
	// Empty when the Homey was not reachable on the local network.
	LocalAddress string `json:"-"`
}

// Online reports whether the Homey is in any "online" sub-state.
func (h *Hub) Online() bool {
	return strings.HasPrefix(h.State, "online")
}

// StateLabel reduces a (possibly suffixed) state string to its display label,
// e.g. "rebooting_update" => "rebooting".
func StateLabel(state string) string {
	if idx := strings.IndexByte(state, '_'); idx >= 0 {
		return state[:idx]
	}
	return state
}

// Selection is the persisted (id, name) pair of the Homey the user
// currently operates on. The name is informational only, resolution
// always goes through the ID.
type Selection struct {
	ID   string `json:"id" mapstructure:"id"`
	Name string `json:"name" mapstructure:"name"`
}

// Handle is a live authenticated connection to one Homey. BaseURL prefers
// the locally discovered address over the cloud relay when both exist.
type Handle struct {
	Name    string
	BaseURL string

	// Token is the Homey-scoped bearer token obtained during delegation.
	Token string
}

package athom

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/darmiel/homeyctl/internal/core"
)

// stateKey is the fixed settings key holding the serialized session state.
// No other component writes to this key.
const stateKey = "cloud.state"

var ErrNoCachedUser = fmt.Errorf("no cached user profile")

// State is the serializable session state persisted between invocations.
type State struct {
	Token *core.AccountToken `json:"token,omitempty" mapstructure:"token"`
	User  *profileData       `json:"user,omitempty" mapstructure:"user"`
}

type profileData struct {
	UserID    string `json:"id" mapstructure:"id"`
	FirstName string `json:"firstname" mapstructure:"firstname"`
	LastName  string `json:"lastname" mapstructure:"lastname"`
	Email     string `json:"email" mapstructure:"email"`
}

// stateStore adapts the generic settings facility to typed state access.
type stateStore struct {
	settings core.SettingsStore
}

// Get returns the persisted state, or an empty state when nothing was
// stored or the stored value cannot be decoded. It never fails.
func (s stateStore) Get() State {
	raw, ok := s.settings.Get(stateKey)
	if !ok {
		return State{}
	}
	var state State
	if err := mapstructure.Decode(raw, &state); err != nil {
		return State{}
	}
	return state
}

func (s stateStore) Set(state State) error {
	if err := s.settings.Set(stateKey, state); err != nil {
		return fmt.Errorf("persisting session state: %w", err)
	}
	return nil
}

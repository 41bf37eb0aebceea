package core

// SettingsStore is the persistent key-value settings facility backing
// credentials and the active selection. Keys are flat strings, values
// are JSON-serializable.
// Implementation: internal/cliconfig.Store.
type SettingsStore interface {
	// Get returns the stored value for key, or false when unset.
	Get(key string) (any, bool)

	// Set persists value under key, overwriting any previous value.
	Set(key string, value any) error

	// Unset removes key. Removing an absent key is not an error.
	Unset(key string) error
}

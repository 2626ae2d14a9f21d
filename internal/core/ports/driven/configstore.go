package driven

// ConfigStore holds raw configuration values under dot-separated keys such
// as "finder.base_path". Values keep the type they were decoded or set with;
// interpreting them is left to the caller.
type ConfigStore interface {
	Get(key string) (any, bool)

	// Set stores value and persists it immediately.
	Set(key string, value any) error

	// Unset removes key. Removing a missing key is not an error.
	Unset(key string) error

	// Keys returns every stored key in sorted order.
	Keys() []string

	// Load rereads the backing storage, replacing all values.
	Load() error

	// Path describes where values are persisted.
	Path() string
}

package driving

import "github.com/ff-labs/fff-go/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Load resolves settings from defaults, the config file and the environment.
	Load() domain.Settings

	// Set validates and persists a single config key.
	Set(key, value string) error

	// Unset removes a config key so its default applies again.
	Unset(key string) error

	// Keys lists the supported config keys.
	Keys() []string
}

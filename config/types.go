package config

const (
	// CatalogFileEnvVar overrides the catalog location for one invocation.
	CatalogFileEnvVar = "ARMKIT_CONFIG_FILE"

	defaultConfigDir  = ".armkit"
	defaultConfigFile = "config.yaml"

	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Catalog is the persisted profile store.
type Catalog struct {
	Profiles       []Profile `yaml:"profiles"`
	CurrentProfile string    `yaml:"current-profile,omitempty"`
}

// Profile selects a subscription and the session tuning used for it.
type Profile struct {
	Name         string      `yaml:"name"`
	Subscription string      `yaml:"subscription,omitempty"`
	TenantID     string      `yaml:"tenant-id,omitempty"`
	Preferences  Preferences `yaml:"preferences,omitempty"`
}

type Preferences struct {
	// PageSize re-chunks remote listings; zero keeps the session default.
	PageSize int `yaml:"page-size,omitempty"`

	// RequestsPerSecond throttles control-plane calls; zero disables it.
	RequestsPerSecond float64 `yaml:"requests-per-second,omitempty"`

	// Output is the default CLI rendering, "json" or "yaml".
	Output string `yaml:"output,omitempty"`
}

func (c Catalog) lookup(name string) (Profile, bool) {
	for _, profile := range c.Profiles {
		if profile.Name == name {
			return profile, true
		}
	}
	return Profile{}, false
}

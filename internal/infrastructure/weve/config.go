package weve

import "errors"

// Config holds configuration for the Weve platform API integration
type Config struct {
	// APIBaseURL is the base URL for the Weve API
	APIBaseURL string
	// APIKey is the optional X-API-Key header value
	APIKey string
	// TimeoutMillis bounds every request, in milliseconds
	TimeoutMillis int
	// Simulation selects the deterministic in-process client instead of HTTP.
	// It defaults to on so undeployed environments never hit the platform.
	Simulation bool
	// SimulatedSessionTTLSeconds is the token lifetime issued in simulation mode
	SimulatedSessionTTLSeconds int64
}

const (
	// ProductionAPIURL is the production Weve API endpoint
	ProductionAPIURL = "https://api.weve.mn/api"
	// DefaultTimeoutMillis is the default request timeout
	DefaultTimeoutMillis = 30000
	// DefaultSimulatedSessionTTLSeconds is the default simulated token lifetime
	DefaultSimulatedSessionTTLSeconds = 3600
)

// ErrConfigMissingBaseURL indicates the real client was requested without an API URL
var ErrConfigMissingBaseURL = errors.New("weve: API base URL is required")

// NewConfig creates a new Weve configuration with defaults applied
func NewConfig(apiBaseURL, apiKey string) *Config {
	cfg := &Config{
		APIBaseURL: apiBaseURL,
		APIKey:     apiKey,
	}
	cfg.applyDefaults()
	return cfg
}

// Validate validates the configuration and fills defaults
func (c *Config) Validate() error {
	c.applyDefaults()
	if !c.Simulation && c.APIBaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.APIBaseURL == "" && !c.Simulation {
		c.APIBaseURL = ProductionAPIURL
	}
	if c.TimeoutMillis <= 0 {
		c.TimeoutMillis = DefaultTimeoutMillis
	}
	if c.SimulatedSessionTTLSeconds <= 0 {
		c.SimulatedSessionTTLSeconds = DefaultSimulatedSessionTTLSeconds
	}
}

package types

import "time"

// HTTPConfig holds shared HTTP settings used by the registry sources.
type HTTPConfig struct {
	// Timeout is the HTTP client timeout for a single request.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "trademark-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on HTTP 429/503 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// ScoringPolicy selects how the aggregator treats scores supplied by sources.
type ScoringPolicy string

const (
	// ScoreUniform rescores every result so scores compare across sources.
	ScoreUniform ScoringPolicy = "uniform"

	// ScoreFillMissing keeps a source-supplied score and only computes one
	// when the source left it at zero.
	ScoreFillMissing ScoringPolicy = "fill_missing"
)

// BreakerConfig configures the circuit breaker placed in front of each
// remote registry source.
type BreakerConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// ConsecutiveFailures trips the breaker (default 5).
	ConsecutiveFailures uint32 `json:"consecutive_failures" yaml:"consecutive_failures" mapstructure:"consecutive_failures"`

	// OpenTimeout is how long the breaker stays open before probing (default 30s).
	OpenTimeout time.Duration `json:"open_timeout" yaml:"open_timeout" mapstructure:"open_timeout"`
}

// SearchConfig holds settings for the aggregation stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// SourceTimeout bounds each source call (default 10s).
	SourceTimeout time.Duration `json:"source_timeout" yaml:"source_timeout" mapstructure:"source_timeout"`

	// Deadline bounds the whole search; sources still running when it
	// expires are reported as timed out (default 20s).
	Deadline time.Duration `json:"deadline" yaml:"deadline" mapstructure:"deadline"`

	// MaxResults caps the number of hits requested from each source (default 50).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	Scoring ScoringPolicy `json:"scoring" yaml:"scoring" mapstructure:"scoring"`

	Breaker BreakerConfig `json:"breaker" yaml:"breaker" mapstructure:"breaker"`
}

// RegistryConfig configures one remote trademark registry.
type RegistryConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	APIKey  string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Jurisdictions scopes a regional or national registry. Empty means the
	// registry is consulted for every query.
	Jurisdictions []string `json:"jurisdictions,omitempty" yaml:"jurisdictions,omitempty" mapstructure:"jurisdictions"`
}

// SourcesConfig groups the remote registries.
type SourcesConfig struct {
	TMview   RegistryConfig `json:"tmview" yaml:"tmview" mapstructure:"tmview"`
	EUIPO    RegistryConfig `json:"euipo" yaml:"euipo" mapstructure:"euipo"`
	WIPO     RegistryConfig `json:"wipo" yaml:"wipo" mapstructure:"wipo"`
	National RegistryConfig `json:"national" yaml:"national" mapstructure:"national"`
}

// StoreConfig holds settings for the local trademark record store.
type StoreConfig struct {
	// Path is the sqlite database file (e.g. "data/trademarks.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// MaxResults is the default cap for store queries (default 100).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// LogConfig selects the log level and encoder.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Environment "development" switches to a human-readable console encoder.
	Environment string `json:"environment" yaml:"environment" mapstructure:"environment"`
}

// ServerConfig holds settings for the HTTP surface.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// Config groups every section of trademark-engine.yaml.
type Config struct {
	Search  SearchConfig  `json:"search" yaml:"search" mapstructure:"search"`
	Sources SourcesConfig `json:"sources" yaml:"sources" mapstructure:"sources"`
	Store   StoreConfig   `json:"store" yaml:"store" mapstructure:"store"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
}

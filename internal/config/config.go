package config

import (
	"time"
)

// Config is the root client configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Stream    StreamConfig    `yaml:"stream"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
	Hydration HydrationConfig `yaml:"hydration"`
	Identity  IdentityConfig  `yaml:"identity"`
	Session   SessionConfig   `yaml:"session"`
	Network   NetworkConfig   `yaml:"network"`
	Log       LogConfig       `yaml:"log"`
}

// APIConfig holds remote API settings.
type APIConfig struct {
	BaseURL        string        `yaml:"base_url"        env:"API_BASE_URL"        env-required:"true"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"API_REQUEST_TIMEOUT" env-default:"10s"`
	RetryDelay     time.Duration `yaml:"retry_delay"     env:"API_RETRY_DELAY"     env-default:"500ms"`
	// RateLimit caps requests per second to the API; the push stream is exempt.
	RateLimit float64 `yaml:"rate_limit" env:"API_RATE_LIMIT" env-default:"10"`
	RateBurst int     `yaml:"rate_burst" env:"API_RATE_BURST" env-default:"5"`
}

// StreamConfig holds push-stream connection settings. IdleTimeout drops a
// connection that delivered no bytes, heartbeats included, for that long.
// Zero disables the check.
type StreamConfig struct {
	InitialBackoff time.Duration `yaml:"initial_backoff" env:"STREAM_INITIAL_BACKOFF" env-default:"1s"`
	MaxBackoff     time.Duration `yaml:"max_backoff"     env:"STREAM_MAX_BACKOFF"     env-default:"30s"`
	MaxAttempts    int           `yaml:"max_attempts"    env:"STREAM_MAX_ATTEMPTS"    env-default:"10"`
	FrameBuffer    int           `yaml:"frame_buffer"    env:"STREAM_FRAME_BUFFER"    env-default:"64"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"    env:"STREAM_IDLE_TIMEOUT"    env-default:"45s"`
}

// ReconcileConfig holds snapshot reconciliation settings.
type ReconcileConfig struct {
	Cooldown     time.Duration `yaml:"cooldown"      env:"RECONCILE_COOLDOWN"      env-default:"15s"`
	Interval     time.Duration `yaml:"interval"      env:"RECONCILE_INTERVAL"      env-default:"60s"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"RECONCILE_FETCH_TIMEOUT" env-default:"15s"`
}

// HydrationConfig holds background venue detail fetch settings.
type HydrationConfig struct {
	Concurrency  int           `yaml:"concurrency"   env:"HYDRATION_CONCURRENCY"   env-default:"3"`
	BatchWait    time.Duration `yaml:"batch_wait"    env:"HYDRATION_BATCH_WAIT"    env-default:"5ms"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"HYDRATION_FETCH_TIMEOUT" env-default:"10s"`
}

// IdentityConfig holds the actor identity and bearer credential.
// Missing IDs may be filled from the token claims.
type IdentityConfig struct {
	OrganizerID   string `yaml:"organizer_id"   env:"IDENTITY_ORGANIZER_ID"`
	ParticipantID string `yaml:"participant_id" env:"IDENTITY_PARTICIPANT_ID"`
	Token         string `yaml:"token"          env:"IDENTITY_TOKEN"`
}

// SessionConfig selects the event the client follows.
type SessionConfig struct {
	EventID string `yaml:"event_id" env:"SESSION_EVENT_ID" env-required:"true"`
}

// NetworkConfig holds connectivity probe settings. An empty ProbeAddress disables the probe.
type NetworkConfig struct {
	ProbeAddress  string        `yaml:"probe_address"  env:"NETWORK_PROBE_ADDRESS"`
	ProbeInterval time.Duration `yaml:"probe_interval" env:"NETWORK_PROBE_INTERVAL" env-default:"5s"`
	ProbeTimeout  time.Duration `yaml:"probe_timeout"  env:"NETWORK_PROBE_TIMEOUT"  env-default:"2s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ProbeEnabled reports whether the network probe should run.
func (c NetworkConfig) ProbeEnabled() bool {
	return c.ProbeAddress != ""
}

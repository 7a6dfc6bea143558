package transport

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config groups the retry tunables. Values are taken from environment
// variables with the prefix "CODEVF". Example:
// CODEVF_MAX_ATTEMPTS=5 CODEVF_BASE_BACKOFF=250ms .
type Config struct {
	// MaxAttempts is the total number of tries, the first call included.
	MaxAttempts int           `envconfig:"MAX_ATTEMPTS" default:"4"`
	BaseBackoff time.Duration `envconfig:"BASE_BACKOFF" default:"500ms"`
	MaxInterval time.Duration `envconfig:"MAX_INTERVAL" default:"20s"`
	Timeout     time.Duration `envconfig:"TIMEOUT"      default:"60s"`
}

// LoadConfig populates Config from environment variables (prefix CODEVF).
func LoadConfig() (Config, error) {
	var c Config
	return c, envconfig.Process("CODEVF", &c)
}

// withDefaults applies zero-value defaults so a hand-built Config behaves.
func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 4
	}
	if c.BaseBackoff <= 0 {
		c.BaseBackoff = 500 * time.Millisecond
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = 20 * time.Second
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	return c
}

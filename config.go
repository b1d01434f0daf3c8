package account

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config defines a public type used by the account client APIs.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	Remote  RemoteConfig
	Notify  NotifyConfig
	Metrics MetricsConfig
	Redis   RedisConfig
}

/*
====================================
REMOTE CONFIG
====================================
*/

// RemoteConfig locates the HeroNexus REST backend. The client imposes no
// timeout of its own beyond the transport's; Timeout configures that
// transport default.
type RemoteConfig struct {
	BaseURL string        `env:"HERONEXUS_API_BASE_URL"`
	Timeout time.Duration `env:"HERONEXUS_API_TIMEOUT" envDefault:"30s"`
}

/*
====================================
NOTIFY CONFIG
====================================
*/

// NotifyConfig controls the asynchronous notification dispatcher.
type NotifyConfig struct {
	Enabled    bool `env:"HERONEXUS_NOTIFY_ENABLED" envDefault:"true"`
	BufferSize int  `env:"HERONEXUS_NOTIFY_BUFFER" envDefault:"64"`
	DropIfFull bool `env:"HERONEXUS_NOTIFY_DROP_IF_FULL" envDefault:"true"`
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the in-process counters.
type MetricsConfig struct {
	Enabled                 bool `env:"HERONEXUS_METRICS_ENABLED" envDefault:"true"`
	EnableLatencyHistograms bool `env:"HERONEXUS_METRICS_LATENCY" envDefault:"false"`
}

/*
====================================
REDIS CONFIG
====================================
*/

// RedisConfig locates the optional Redis credential mirror. When Addr is
// empty the in-memory store is used.
type RedisConfig struct {
	Addr     string `env:"HERONEXUS_REDIS_ADDR"`
	Password string `env:"HERONEXUS_REDIS_PASSWORD"`
	DB       int    `env:"HERONEXUS_REDIS_DB" envDefault:"0"`
	Prefix   string `env:"HERONEXUS_REDIS_PREFIX" envDefault:"hxacct"`
}

// DefaultConfig returns the configuration a Builder starts from.
func DefaultConfig() Config {
	return Config{
		Remote: RemoteConfig{
			Timeout: 30 * time.Second,
		},
		Notify: NotifyConfig{
			Enabled:    true,
			BufferSize: 64,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Redis: RedisConfig{
			Prefix: "hxacct",
		},
	}
}

// ConfigFromEnv builds a Config from HERONEXUS_* environment variables on
// top of the defaults.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Remote.Timeout < 0 {
		return errors.New("remote timeout must not be negative")
	}
	if c.Notify.Enabled && c.Notify.BufferSize < 0 {
		return errors.New("notify buffer size must not be negative")
	}
	return nil
}

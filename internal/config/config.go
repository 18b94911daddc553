package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"userexplorer/internal/debounce"
	"userexplorer/internal/directory"
)

// Config represents the application configuration
type Config struct {
	Version        int           `toml:"version" koanf:"version"`
	Endpoint       string        `toml:"endpoint" koanf:"endpoint" validate:"required,url"`
	RequestTimeout Duration      `toml:"request_timeout" koanf:"request_timeout" validate:"gt=0"`
	DebounceDelay  Duration      `toml:"debounce_delay" koanf:"debounce_delay" validate:"gte=0"`
	LogFile        string        `toml:"log_file" koanf:"log_file"`
	LogLevel       string        `toml:"log_level" koanf:"log_level" validate:"oneof=debug info warn error"`
	MetricsAddr    string        `toml:"metrics_addr" koanf:"metrics_addr" validate:"omitempty,hostname_port"`
	Breaker        BreakerConfig `toml:"breaker" koanf:"breaker"`
	UISettings     UISettings    `toml:"ui" koanf:"ui"`
}

// BreakerConfig controls the circuit breaker in front of the directory
type BreakerConfig struct {
	MaxFailures uint32   `toml:"max_failures" koanf:"max_failures"`
	OpenTimeout Duration `toml:"open_timeout" koanf:"open_timeout" validate:"gt=0"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowCompany   bool `toml:"show_company" koanf:"show_company"`
	SkeletonCards int  `toml:"skeleton_cards" koanf:"skeleton_cards" validate:"gte=0,lte=50"`
}

// Duration is a time.Duration written as "300ms" in config files
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

var validate = validator.New()

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:        1,
		Endpoint:       directory.DefaultEndpoint,
		RequestTimeout: Duration(directory.DefaultTimeout),
		DebounceDelay:  Duration(debounce.DefaultDelay),
		LogFile:        "userexplorer.log",
		LogLevel:       "info",
		Breaker: BreakerConfig{
			MaxFailures: directory.DefaultBreakerMaxFailures,
			OpenTimeout: Duration(directory.DefaultBreakerOpenTimeout),
		},
		UISettings: UISettings{
			ShowCompany:   true,
			SkeletonCards: 9,
		},
	}
}

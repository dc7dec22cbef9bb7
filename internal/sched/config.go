package sched

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	yaml "github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// Clock kinds accepted in Config.Clock.
const (
	ClockLogical = "logical"
	ClockWall    = "wall"
)

// Config mirrors config.yml
type Config struct {
	Clock    string `yaml:"clock" validate:"oneof=logical wall"`              // logical (by default)
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"` // info (by default)
	Journal  string `yaml:"journal"`                                          // CSV event journal, off when empty
	Color    bool   `yaml:"color"`                                            // true (by default)
}

// If the config file is not found, we use default values
func defaultConfig() Config {
	return Config{
		Clock:    ClockLogical,
		LogLevel: "info",
		Color:    true,
	}
}

// Load reads YAML and overrides defaults; empty path or a missing file means
// defaults only. Malformed YAML and values that fail validation are errors.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}

	// sanity clamps
	cfg.Clock = strings.ToLower(strings.TrimSpace(cfg.Clock))
	if cfg.Clock == "" {
		cfg.Clock = ClockLogical
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate checks every field against its allowed values.
func (c Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return errors.New(formatValidationError(fieldErrs[0]))
	}
	return errors.Wrap(err, "validation error")
}

// newValidator reports fields by their yaml names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "oneof":
		return fmt.Sprintf("'%s' must be one of [%s] (got '%v')", e.Field(), e.Param(), e.Value())
	default:
		return fmt.Sprintf("'%s' failed validation '%s'", e.Field(), e.Tag())
	}
}

// NewClock builds the clock named by c.Clock.
func (c Config) NewClock() Clock {
	if c.Clock == ClockWall {
		return NewWallClock()
	}
	return NewLogicalClock()
}

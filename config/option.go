// file: stuff/config/option.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"

	"github.com/rskv-p/stuff/codec"
)

// Option is a functional config initializer.
type Option func(*Config) error

// New applies opts over Default in order.
func New(opts ...Option) (*Config, error) {
	cfg := Default()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithDefaults decodes a loosely typed map ("log": {"level": "warn"}) over
// the config.
func WithDefaults(values map[string]any) Option {
	return func(c *Config) error {
		return decodeMap(values, c)
	}
}

// FromJSON loads config from a JSON file.
func FromJSON(path string) Option {
	return func(c *Config) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		data = ReplaceEnvVars(data)

		raw, err := codec.Decode[map[string]any](data)
		if err != nil {
			return fmt.Errorf("parse config json: %w", err)
		}
		return decodeMap(raw, c)
	}
}

// FromEnv overrides values from environment variables with prefix.
func FromEnv(prefix string) Option {
	return func(c *Config) error {
		c.ApplyEnv(prefix)
		return nil
	}
}

// FromDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set.
func FromDotEnv(path string) Option {
	return func(c *Config) error {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
		return nil
	}
}

func decodeMap(values map[string]any, c *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		TagName:          "json",
		WeaklyTypedInput: true,
		ZeroFields:       true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(values); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// ParseEnvValue tries to interpret strings like "true", "123", etc.
func ParseEnvValue(v string) any {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "true") {
		return true
	}
	if strings.EqualFold(v, "false") {
		return false
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return v
}

// ReplaceEnvVars replaces ${ENV_VAR} in raw JSON.
func ReplaceEnvVars(data []byte) []byte {
	return []byte(os.Expand(string(data), os.Getenv))
}

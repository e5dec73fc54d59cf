package logger

import (
	"fmt"

	"github.com/rskv-p/stuff/constant"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"

	OutputStdout = "stdout"
	OutputStderr = "stderr"
)

// Config describes where and how records are written. Outputs other than
// "stdout" and "stderr" are file paths rotated by lumberjack.
type Config struct {
	Level      string   `json:"level"`
	Format     string   `json:"format"`
	Outputs    []string `json:"outputs"`
	MaxSize    int      `json:"max_size"`    // MB
	MaxBackups int      `json:"max_backups"` // rotated files
	MaxAge     int      `json:"max_age"`     // days
	Compress   bool     `json:"compress"`
	NoColor    bool     `json:"no_color"`
	Trace      bool     `json:"trace"`   // attach call traces to error records
	Process    string   `json:"process"` // overrides the executable name
	SystemTag  string   `json:"system_tag"`
}

//
// ---------- Defaults ----------

var defaultConfig = Config{
	Level:      "info",
	Format:     FormatConsole,
	Outputs:    []string{OutputStderr},
	MaxSize:    10,
	MaxBackups: 5,
	MaxAge:     7,
	Compress:   true,
}

// DefaultConfig returns a console logger on stderr that logs everything.
func DefaultConfig() Config {
	cfg := defaultConfig
	cfg.Outputs = append([]string(nil), defaultConfig.Outputs...)
	return cfg
}

// applyDefaults fills missing values from defaultConfig.
func applyDefaults(cfg *Config) {
	if cfg.Level == "" {
		cfg.Level = defaultConfig.Level
	}
	if cfg.Format == "" {
		cfg.Format = defaultConfig.Format
	}
	if len(cfg.Outputs) == 0 {
		cfg.Outputs = append([]string(nil), defaultConfig.Outputs...)
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = defaultConfig.MaxSize
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = defaultConfig.MaxBackups
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = defaultConfig.MaxAge
	}
}

// Validate checks the level and format names.
func (c Config) Validate() error {
	if c.Level != "" {
		if _, err := ParseLevel(c.Level); err != nil {
			return err
		}
	}
	switch c.Format {
	case "", FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("%w: %q", constant.ErrInvalidFormat, c.Format)
	}
	return nil
}

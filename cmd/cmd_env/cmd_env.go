// Package cmd_env holds what the subcommands share: config resolution,
// logger construction and input reading.
package cmd_env

import (
	"fmt"
	"io"
	"os"

	"github.com/rskv-p/stuff/config"
	"github.com/rskv-p/stuff/constant"
	"github.com/rskv-p/stuff/logger"
)

// ConfigPath is bound to the global --config flag.
var ConfigPath string

// Config loads the explicit config file when one was given, the fallback
// chain otherwise, and validates the result.
func Config() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if ConfigPath != "" {
		cfg, err = config.Load(ConfigPath)
		if err == nil {
			cfg.ApplyEnv(constant.EnvPrefix)
		}
	} else {
		cfg, err = config.LoadWithFallback()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Logger builds the configured logger and installs it as the default.
func Logger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		return nil, err
	}
	logger.SetDefault(l)
	return l, nil
}

// ReadInput reads the file named by args[0], or stdin when args is empty
// or names "-".
func ReadInput(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: read stdin: %w", constant.ErrIO, err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constant.ErrIO, err)
	}
	return data, nil
}

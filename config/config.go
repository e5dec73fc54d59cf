// file: stuff/config/config.go
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/rskv-p/stuff/codec"
	"github.com/rskv-p/stuff/constant"
	"github.com/rskv-p/stuff/logger"
	"github.com/rskv-p/stuff/store"
)

// Config holds the settings shared by the command line and library users.
type Config struct {
	AppName string        `json:"app_name"`
	Log     logger.Config `json:"log"`
	Store   StoreSettings `json:"store"`
	Codec   CodecSettings `json:"codec"`
}

// StoreSettings override the per-user persistence directories.
type StoreSettings struct {
	CacheDir     string `json:"cache_dir"`
	DocumentsDir string `json:"documents_dir"`
	NoDocuments  bool   `json:"no_documents"`
}

// CodecSettings name the codec strategies in text form.
type CodecSettings struct {
	Pretty     bool   `json:"pretty"`
	Dates      string `json:"dates"`       // deferred | iso8601 | epoch_seconds | epoch_millis | format
	DateLayout string `json:"date_layout"` // Go layout for "format"
	Binary     string `json:"binary"`      // base64 | raw
	Keys       string `json:"keys"`        // as_is | snake_case
	NonFinite  string `json:"non_finite"`  // fail | string
	Engine     string `json:"engine"`      // std | go-json
}

// Default returns a default config.
func Default() *Config {
	return &Config{
		AppName: constant.DefaultAppName,
		Log:     logger.DefaultConfig(),
		Codec: CodecSettings{
			Dates:     "deferred",
			Binary:    "base64",
			Keys:      "as_is",
			NonFinite: "fail",
			Engine:    "std",
		},
	}
}

// ----------------------------------------------------
// Loading
// ----------------------------------------------------

// Load reads a JSON config file over the defaults. ${VAR} references are
// expanded from the environment first.
func Load(path string) (*Config, error) {
	return New(FromJSON(path))
}

// LoadFromEnv loads config from environment using prefix.
func LoadFromEnv(prefix string) *Config {
	cfg := Default()
	cfg.ApplyEnv(prefix)
	return cfg
}

// LoadWithFallback loads .env, then the file named by STUFF_CONFIG (or
// ./stuff.json when present), then lets STUFF_* variables override it.
func LoadWithFallback() (*Config, error) {
	if err := godotenv.Load(constant.DefaultEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", constant.DefaultEnvFile, err)
	}

	path := os.Getenv(constant.EnvConfigPath)
	if path == "" {
		if _, err := os.Stat(constant.DefaultConfigFile); err == nil {
			path = constant.DefaultConfigFile
		}
	}
	if path == "" {
		return LoadFromEnv(constant.EnvPrefix), nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(constant.EnvPrefix)
	return cfg, nil
}

// MustLoadWithFallback panics if config cannot be loaded or is invalid.
func MustLoadWithFallback() *Config {
	cfg, err := LoadWithFallback()
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}
	return cfg
}

// ApplyEnv overrides fields from prefixed environment variables.
func (cfg *Config) ApplyEnv(prefix string) {
	cfg.AppName = GetEnvStr(prefix+"APP_NAME", cfg.AppName)

	cfg.Log.Level = GetEnvStr(prefix+"LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = GetEnvStr(prefix+"LOG_FORMAT", cfg.Log.Format)
	cfg.Log.Outputs = GetEnvList(prefix+"LOG_OUTPUTS", cfg.Log.Outputs)
	cfg.Log.NoColor = GetEnvBool(prefix+"LOG_NO_COLOR", cfg.Log.NoColor)
	cfg.Log.Trace = GetEnvBool(prefix+"LOG_TRACE", cfg.Log.Trace)
	cfg.Log.MaxSize = GetEnvInt(prefix+"LOG_MAX_SIZE", cfg.Log.MaxSize)

	cfg.Store.CacheDir = GetEnvStr(prefix+"CACHE_DIR", cfg.Store.CacheDir)
	cfg.Store.DocumentsDir = GetEnvStr(prefix+"DOCUMENTS_DIR", cfg.Store.DocumentsDir)
	cfg.Store.NoDocuments = GetEnvBool(prefix+"NO_DOCUMENTS", cfg.Store.NoDocuments)

	cfg.Codec.Pretty = GetEnvBool(prefix+"CODEC_PRETTY", cfg.Codec.Pretty)
	cfg.Codec.Dates = GetEnvStr(prefix+"CODEC_DATES", cfg.Codec.Dates)
	cfg.Codec.DateLayout = GetEnvStr(prefix+"CODEC_DATE_LAYOUT", cfg.Codec.DateLayout)
	cfg.Codec.Binary = GetEnvStr(prefix+"CODEC_BINARY", cfg.Codec.Binary)
	cfg.Codec.Keys = GetEnvStr(prefix+"CODEC_KEYS", cfg.Codec.Keys)
	cfg.Codec.NonFinite = GetEnvStr(prefix+"CODEC_NON_FINITE", cfg.Codec.NonFinite)
	cfg.Codec.Engine = GetEnvStr(prefix+"CODEC_ENGINE", cfg.Codec.Engine)
}

// ----------------------------------------------------
// Validation & output
// ----------------------------------------------------

// Validate checks config for required and well-formed values.
func (cfg *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(cfg.AppName) == "" {
		problems = append(problems, "app_name")
	}
	if err := cfg.Log.Validate(); err != nil {
		problems = append(problems, "log: "+err.Error())
	}
	if _, err := cfg.Codec.Options(); err != nil {
		problems = append(problems, "codec: "+err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", constant.ErrInvalidConfig, strings.Join(problems, ", "))
	}
	return nil
}

func (cfg *Config) String() string {
	s, err := codec.EncodeString(cfg, codec.Pretty())
	if err != nil {
		return fmt.Sprintf("%+v", *cfg)
	}
	return s
}

func (cfg *Config) Dump(w io.Writer) {
	_, _ = io.WriteString(w, cfg.String())
}

// ----------------------------------------------------
// Adapters
// ----------------------------------------------------

// LoggerConfig returns the logger settings with the system tag defaulted to
// the app name.
func (cfg *Config) LoggerConfig() logger.Config {
	lc := cfg.Log
	if lc.SystemTag == "" {
		lc.SystemTag = cfg.AppName
	}
	return lc
}

// CodecOptions converts the codec settings.
func (cfg *Config) CodecOptions() ([]codec.Option, error) {
	return cfg.Codec.Options()
}

// Dirs resolves the store directories, applying overrides.
func (cfg *Config) Dirs() store.Dirs {
	d := store.DefaultDirs(cfg.AppName)
	if cfg.Store.CacheDir != "" {
		d.Cache = cfg.Store.CacheDir
	}
	if cfg.Store.DocumentsDir != "" {
		d.Documents = cfg.Store.DocumentsDir
	}
	if cfg.Store.NoDocuments {
		d.Documents = ""
	}
	return d
}

// StoreOptions returns the options for store.New: directories and a codec
// built from the codec settings.
func (cfg *Config) StoreOptions() ([]store.Option, error) {
	opts, err := cfg.CodecOptions()
	if err != nil {
		return nil, err
	}
	return []store.Option{
		store.WithDirs(cfg.Dirs()),
		store.WithCodec(codec.NewJSON(opts...)),
	}, nil
}

// Options converts the text settings into codec options.
func (c CodecSettings) Options() ([]codec.Option, error) {
	var opts []codec.Option
	if c.Pretty {
		opts = append(opts, codec.Pretty())
	}

	switch strings.ToLower(c.Dates) {
	case "", "deferred":
	case "iso8601":
		opts = append(opts, codec.WithDates(codec.DateISO8601))
	case "epoch_seconds", "seconds":
		opts = append(opts, codec.WithDates(codec.DateEpochSeconds))
	case "epoch_millis", "millis":
		opts = append(opts, codec.WithDates(codec.DateEpochMillis))
	case "format":
		if c.DateLayout == "" {
			return nil, errors.New("dates \"format\" needs date_layout")
		}
		opts = append(opts, codec.WithDates(codec.DateFormat(c.DateLayout)))
	default:
		return nil, fmt.Errorf("unknown dates %q", c.Dates)
	}

	switch strings.ToLower(c.Binary) {
	case "", "base64":
	case "raw":
		opts = append(opts, codec.WithBinary(codec.BinaryRaw))
	default:
		return nil, fmt.Errorf("unknown binary %q", c.Binary)
	}

	switch strings.ToLower(c.Keys) {
	case "", "as_is":
	case "snake_case", "snake":
		opts = append(opts, codec.WithKeys(codec.KeysSnakeCase))
	default:
		return nil, fmt.Errorf("unknown keys %q", c.Keys)
	}

	switch strings.ToLower(c.NonFinite) {
	case "", "fail":
	case "string":
		opts = append(opts, codec.WithNonFinite(codec.NonFiniteAsString))
	default:
		return nil, fmt.Errorf("unknown non_finite %q", c.NonFinite)
	}

	engine, ok := codec.EngineByName(strings.ToLower(c.Engine))
	if !ok {
		return nil, fmt.Errorf("unknown engine %q", c.Engine)
	}
	opts = append(opts, codec.WithEngine(engine))
	return opts, nil
}

package config_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rskv-p/stuff/codec"
	"github.com/rskv-p/stuff/config"
	"github.com/rskv-p/stuff/constant"
	"github.com/rskv-p/stuff/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stuff.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, constant.DefaultAppName, cfg.AppName)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"stderr"}, cfg.Log.Outputs)
	assert.Equal(t, "deferred", cfg.Codec.Dates)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Setenv("STUFF_TEST_CACHE", "/var/cache/stuff")
	path := writeConfig(t, `{
		"app_name": "demo",
		"log": {"level": "warn", "format": "json", "outputs": ["stdout"], "max_size": "20"},
		"store": {"cache_dir": "${STUFF_TEST_CACHE}", "no_documents": true},
		"codec": {"keys": "snake_case", "pretty": true}
	}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.AppName)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"stdout"}, cfg.Log.Outputs)
	assert.Equal(t, 20, cfg.Log.MaxSize)
	assert.Equal(t, "/var/cache/stuff", cfg.Store.CacheDir)
	assert.True(t, cfg.Store.NoDocuments)
	assert.Equal(t, "snake_case", cfg.Codec.Keys)
	assert.Equal(t, "base64", cfg.Codec.Binary, "unset values keep defaults")
	assert.NoError(t, cfg.Validate())

	d := cfg.Dirs()
	assert.Equal(t, "/var/cache/stuff", d.Cache)
	assert.Empty(t, d.Documents)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, `{"app_name": `))
	assert.True(t, errors.Is(err, constant.ErrDecode))

	_, err = config.Load(writeConfig(t, `{"log": {"max_size": "big"}}`))
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STUFF_APP_NAME", "envapp")
	t.Setenv("STUFF_LOG_LEVEL", "error")
	t.Setenv("STUFF_LOG_OUTPUTS", "stdout,/tmp/stuff.log")
	t.Setenv("STUFF_LOG_TRACE", "yes")
	t.Setenv("STUFF_CODEC_DATES", "epoch_millis")
	t.Setenv("STUFF_CODEC_ENGINE", "go-json")

	cfg := config.LoadFromEnv(constant.EnvPrefix)
	assert.Equal(t, "envapp", cfg.AppName)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, []string{"stdout", "/tmp/stuff.log"}, cfg.Log.Outputs)
	assert.True(t, cfg.Log.Trace)
	assert.Equal(t, "epoch_millis", cfg.Codec.Dates)
	assert.Equal(t, "go-json", cfg.Codec.Engine)
	assert.NoError(t, cfg.Validate())
}

func TestLoadWithFallback_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `{"app_name": "fromfile", "log": {"level": "debug"}}`)
	t.Setenv(constant.EnvConfigPath, path)
	t.Setenv("STUFF_LOG_LEVEL", "fatal")

	cfg, err := config.LoadWithFallback()
	require.NoError(t, err)
	assert.Equal(t, "fromfile", cfg.AppName)
	assert.Equal(t, "fatal", cfg.Log.Level)
}

func TestLoadWithFallback_DotEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	t.Setenv(constant.EnvConfigPath, "")
	t.Setenv("STUFF_APP_NAME", "")
	require.NoError(t, os.Unsetenv("STUFF_APP_NAME"))
	require.NoError(t, os.WriteFile(constant.DefaultEnvFile, []byte("STUFF_APP_NAME=dotenv\n"), 0o644))

	cfg, err := config.LoadWithFallback()
	require.NoError(t, err)
	assert.Equal(t, "dotenv", cfg.AppName)
}

func TestLoadWithFallback_BadFile(t *testing.T) {
	t.Setenv(constant.EnvConfigPath, filepath.Join(t.TempDir(), "nope.json"))
	_, err := config.LoadWithFallback()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.AppName = " "
	cfg.Log.Level = "loud"
	cfg.Codec.Binary = "hex"

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, constant.ErrInvalidConfig))
	assert.Contains(t, err.Error(), "app_name")
	assert.Contains(t, err.Error(), "log:")
	assert.Contains(t, err.Error(), `unknown binary "hex"`)

	cfg = config.Default()
	cfg.Codec.Dates = "format"
	assert.Error(t, cfg.Validate())
	cfg.Codec.DateLayout = "2006-01-02"
	assert.NoError(t, cfg.Validate())
}

func TestStringAndDump(t *testing.T) {
	cfg := config.Default()
	assert.Contains(t, cfg.String(), `"app_name": "stuff"`)

	var buf bytes.Buffer
	cfg.Dump(&buf)
	assert.Contains(t, buf.String(), `"level": "info"`)
}

func TestCodecOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Codec = config.CodecSettings{
		Pretty:    true,
		Dates:     "epoch_seconds",
		Binary:    "raw",
		Keys:      "snake_case",
		NonFinite: "string",
		Engine:    "go-json",
	}
	opts, err := cfg.CodecOptions()
	require.NoError(t, err)

	o := codec.NewOptions(opts...)
	assert.True(t, o.Pretty)
	assert.Equal(t, codec.DateEpochSeconds, o.Dates)
	assert.Equal(t, codec.BinaryRaw, o.Binary)
	assert.Equal(t, codec.KeysSnakeCase, o.Keys)
	assert.Equal(t, codec.NonFiniteAsString, o.NonFinite)
	assert.Equal(t, "go-json", o.Engine.Name())
}

func TestStoreOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Store.CacheDir = t.TempDir()
	cfg.Store.NoDocuments = true
	cfg.Codec.Keys = "snake_case"

	opts, err := cfg.StoreOptions()
	require.NoError(t, err)
	s := store.New(opts...)

	type profile struct {
		UserName string `json:"userName"`
	}
	require.NoError(t, s.Save(store.Cache, "p.json", profile{"ed"}))
	raw, err := s.LoadRaw(store.Cache, "p.json")
	require.NoError(t, err)
	assert.Equal(t, `{"user_name":"ed"}`, string(raw))

	err = s.Save(store.Documents, "p.json", profile{"ed"})
	assert.True(t, errors.Is(err, constant.ErrUnsupported))
}

func TestLoggerConfig(t *testing.T) {
	cfg := config.Default()
	cfg.AppName = "demo"
	assert.Equal(t, "demo", cfg.LoggerConfig().SystemTag)

	cfg.Log.SystemTag = "custom"
	assert.Equal(t, "custom", cfg.LoggerConfig().SystemTag)
}

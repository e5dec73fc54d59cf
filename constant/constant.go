// file: stuff/constant/constant.go
package constant

import (
	"errors"
	"fmt"
)

// ----------------------------------------------------
// Standard errors
// ----------------------------------------------------

var (
	ErrEncode      = errors.New("cannot encode value")
	ErrDecode      = errors.New("cannot decode value")
	ErrKeyPath     = fmt.Errorf("%w: key path not found", ErrDecode)
	ErrIO          = errors.New("file i/o failed")
	ErrUnsupported = errors.New("unsupported operation")
	ErrInvalidName = errors.New("invalid file name")
)

var (
	ErrNotEnum    = errors.New("value is not a tagged enum")
	ErrNoPayload  = errors.New("enum case has no associated value")
	ErrNoRawValue = errors.New("enum has no raw value")
)

var (
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrInvalidFormat = errors.New("invalid log format")
	ErrInvalidConfig = errors.New("invalid config")
)

// ----------------------------------------------------
// Config paths & keys
// ----------------------------------------------------

const (
	DefaultAppName    = "stuff"
	DefaultConfigFile = "stuff.json"
	DefaultEnvFile    = ".env"
	EnvPrefix         = "STUFF_"
	EnvConfigPath     = "STUFF_CONFIG"
	EnvDocumentsDir   = "STUFF_DOCUMENTS_DIR"
	DocumentsDirName  = "Documents"
)

// ----------------------------------------------------
// JSON
// ----------------------------------------------------

const (
	JSONIndent   = "  "
	MaxDepth     = 1000
	KeyPathSep   = "."
	NaNString    = "NaN"
	PosInfString = "Infinity"
	NegInfString = "-Infinity"
)

// ----------------------------------------------------
// Files
// ----------------------------------------------------

const (
	FileMode = 0o644
	DirMode  = 0o755
)

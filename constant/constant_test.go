package constant_test

import (
	"errors"
	"testing"

	"github.com/rskv-p/stuff/constant"
	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	errs := []error{
		constant.ErrEncode,
		constant.ErrDecode,
		constant.ErrKeyPath,
		constant.ErrIO,
		constant.ErrUnsupported,
		constant.ErrInvalidName,
		constant.ErrNotEnum,
		constant.ErrNoPayload,
		constant.ErrNoRawValue,
		constant.ErrInvalidLevel,
		constant.ErrInvalidFormat,
		constant.ErrInvalidConfig,
	}
	for _, err := range errs {
		assert.Error(t, err)
		assert.NotEmpty(t, err.Error())
	}
}

func TestKeyPathIsDecodeError(t *testing.T) {
	assert.True(t, errors.Is(constant.ErrKeyPath, constant.ErrDecode))
	assert.False(t, errors.Is(constant.ErrDecode, constant.ErrKeyPath))
}

func TestConstants_Values(t *testing.T) {
	assert.Equal(t, "stuff", constant.DefaultAppName)
	assert.Equal(t, "STUFF_", constant.EnvPrefix)
	assert.Equal(t, "  ", constant.JSONIndent)
	assert.Equal(t, ".", constant.KeyPathSep)
}

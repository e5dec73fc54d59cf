package codec_test

import (
	"errors"
	"testing"
	"time"

	"github.com/rskv-p/stuff/codec"
	"github.com/stretchr/testify/assert"
)

type point struct{ X, Y int }

func TestToString(t *testing.T) {
	assert.Equal(t, "", codec.ToString(nil))
	assert.Equal(t, "abc", codec.ToString("abc"))
	assert.Equal(t, "xyz", codec.ToString([]byte("xyz")))
	assert.Equal(t, "123", codec.ToString(123))
	assert.Equal(t, "-7", codec.ToString(int64(-7)))
	assert.Equal(t, "8", codec.ToString(uint(8)))
	assert.Equal(t, "3.5", codec.ToString(3.5))
	assert.Equal(t, "0.25", codec.ToString(float32(0.25)))
	assert.Equal(t, "true", codec.ToString(true))
	assert.Equal(t, "1s", codec.ToString(time.Second))
	assert.Equal(t, "boom", codec.ToString(errors.New("boom")))
	assert.Equal(t, `{"X":1,"Y":2}`, codec.ToString(point{1, 2}))
	assert.Contains(t, codec.ToString(map[string]any{"x": 1}), `"x":1`)
}

func TestToString_Unencodable(t *testing.T) {
	ch := make(chan int)
	assert.NotEmpty(t, codec.ToString(ch))
}

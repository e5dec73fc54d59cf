//go:build windows || plan9 || js || wasip1 || binary_log

package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// openSystem writes system records to a rotated file in the temp dir.
func openSystem(tag string, cfg Config) (zerolog.LevelWriter, io.Closer) {
	lj := fallbackSystemFile(tag, cfg)
	return zerolog.MultiLevelWriter(lj), lj
}

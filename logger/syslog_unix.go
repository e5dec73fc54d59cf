//go:build !windows && !plan9 && !js && !wasip1 && !binary_log

package logger

import (
	"io"
	"log/syslog"

	"github.com/rs/zerolog"
)

// openSystem connects to the local syslog daemon, falling back to a rotated
// file in the temp dir when it is unreachable.
func openSystem(tag string, cfg Config) (zerolog.LevelWriter, io.Closer) {
	w, err := syslog.New(syslog.LOG_USER|syslog.LOG_INFO, tag)
	if err != nil {
		lj := fallbackSystemFile(tag, cfg)
		return zerolog.MultiLevelWriter(lj), lj
	}
	return zerolog.SyslogLevelWriter(w), w
}

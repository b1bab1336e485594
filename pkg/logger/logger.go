// Package logger builds the zerolog loggers used across the jot service.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const (
	permission = 0664
)

// Build accumulates logger configuration before Make is called.
type Build struct {
	writer io.Writer
	path   string
	level  zerolog.Level
}

// Log owns a configured logger and, when logging to a file, the open handle.
type Log struct {
	LogFile *os.File
	Logger  zerolog.Logger
}

func New() *Build {
	return &Build{level: zerolog.InfoLevel}
}

// ToPath directs log output to the file at path, appending if it exists.
func (build *Build) ToPath(path string) *Build {
	build.path = path
	return build
}

// ToWriter directs log output to w. Ignored when ToPath is also set.
func (build *Build) ToWriter(w io.Writer) *Build {
	build.writer = w
	return build
}

// Level sets the minimum level emitted.
func (build *Build) Level(level zerolog.Level) *Build {
	build.level = level
	return build
}

// Make finalizes the build. Defaults to stderr when neither a path nor a
// writer was configured.
func (build *Build) Make() (*Log, error) {
	logData := new(Log)
	w := build.writer
	if w == nil {
		w = os.Stderr
	}
	if build.path != "" {
		f, err := os.OpenFile(build.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, err
		}
		logData.LogFile = f
		w = zerolog.SyncWriter(f)
	}
	logData.Logger = zerolog.New(w).Level(build.level).With().Timestamp().Logger()
	return logData, nil
}

// Close releases the log file, if any.
func (l *Log) Close() error {
	if l.LogFile != nil {
		return l.LogFile.Close()
	}
	return nil
}

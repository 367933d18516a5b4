// Package log writes diagnostics to a dated file under the logs directory. Nothing is emitted
// unless logs.write is enabled, so the terminal interface is never disturbed.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vidscrub/vidscrub/constant"
	"github.com/vidscrub/vidscrub/filesystem"
	"github.com/vidscrub/vidscrub/key"
	"github.com/vidscrub/vidscrub/where"
)

var (
	enabled bool
	logger  = newLogger(io.Discard)
)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	return l
}

// Setup opens today's log file and applies the configured format and level.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		logger.SetOutput(io.Discard)
		return nil
	}

	path := filepath.Join(where.Logs(), fmt.Sprintf("%s.log", time.Now().Format(time.DateOnly)))
	file, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		enabled = false
		return fmt.Errorf("open log file: %w", err)
	}

	logger.SetOutput(file)

	if viper.GetBool(key.LogsJson) {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.WithField("version", constant.Version).Debug("logging started")
	return nil
}

// Enabled reports whether log output is written anywhere.
func Enabled() bool {
	return enabled
}

// With returns an entry carrying the given fields. It is silent while logging is disabled.
func With(fields logrus.Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

func emit(level logrus.Level, args ...any) {
	if enabled {
		logger.Log(level, args...)
	}
}

func emitf(level logrus.Level, format string, args ...any) {
	if enabled {
		logger.Logf(level, format, args...)
	}
}

func Error(args ...any)                 { emit(logrus.ErrorLevel, args...) }
func Errorf(format string, args ...any) { emitf(logrus.ErrorLevel, format, args...) }
func Warn(args ...any)                  { emit(logrus.WarnLevel, args...) }
func Warnf(format string, args ...any)  { emitf(logrus.WarnLevel, format, args...) }
func Info(args ...any)                  { emit(logrus.InfoLevel, args...) }
func Infof(format string, args ...any)  { emitf(logrus.InfoLevel, format, args...) }
func Debug(args ...any)                 { emit(logrus.DebugLevel, args...) }
func Debugf(format string, args ...any) { emitf(logrus.DebugLevel, format, args...) }
func Trace(args ...any)                 { emit(logrus.TraceLevel, args...) }
func Tracef(format string, args ...any) { emitf(logrus.TraceLevel, format, args...) }

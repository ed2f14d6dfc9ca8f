package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Leveled logger shared by the API and the seed command. Output is one JSON
// object per line.

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu     sync.RWMutex
	logger zerolog.Logger = newLogger(os.Stdout)
	level  Level          = LevelInfo
)

func newLogger(w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(w).With().Timestamp().Logger()
}

// SetOutput redirects log output; used by tests and by the seed command.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level = LevelDebug
	case "warn", "warning":
		level = LevelWarn
	case "error":
		level = LevelError
	case "fatal":
		level = LevelFatal
	default:
		level = LevelInfo
	}
}

func current(l Level) (zerolog.Logger, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return logger, l >= level
}

func event(l Level) *zerolog.Event {
	lg, ok := current(l)
	if !ok {
		return nil
	}
	switch l {
	case LevelDebug:
		return lg.Debug()
	case LevelInfo:
		return lg.Info()
	case LevelWarn:
		return lg.Warn()
	case LevelError:
		return lg.Error()
	}
	return lg.WithLevel(zerolog.FatalLevel)
}

func Debugf(format string, v ...interface{}) {
	if e := event(LevelDebug); e != nil {
		e.Msgf(format, v...)
	}
}

func Infof(format string, v ...interface{}) {
	if e := event(LevelInfo); e != nil {
		e.Msgf(format, v...)
	}
}

func Warnf(format string, v ...interface{}) {
	if e := event(LevelWarn); e != nil {
		e.Msgf(format, v...)
	}
}

func Errorf(format string, v ...interface{}) {
	if e := event(LevelError); e != nil {
		e.Msgf(format, v...)
	}
}

// Fatalf logs regardless of level and exits the process.
func Fatalf(format string, v ...interface{}) {
	lg, _ := current(LevelFatal)
	lg.WithLevel(zerolog.FatalLevel).Msgf(format, v...)
	os.Exit(1)
}

// Request writes one access-log line. 5xx responses are logged at error
// level, 4xx at warn.
func Request(method, path string, status int, latency time.Duration, clientIP string) {
	l := LevelInfo
	switch {
	case status >= 500:
		l = LevelError
	case status >= 400:
		l = LevelWarn
	}
	e := event(l)
	if e == nil {
		return
	}
	e.Str("method", method).
		Str("path", path).
		Int("status", status).
		Dur("latency", latency).
		Str("client_ip", clientIP).
		Msg("request")
}

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch level {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}

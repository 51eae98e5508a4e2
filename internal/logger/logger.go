package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

var (
	mu  sync.RWMutex
	log zerolog.Logger
)

func init() {
	log = newLogger(os.Stderr, ParseLevel(os.Getenv("LOG_LEVEL")))
}

func newLogger(w io.Writer, lvl Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime, NoColor: w != os.Stderr}
	return zerolog.New(out).Level(zerologLevel(lvl)).With().Timestamp().Logger()
}

// ParseLevel maps DEBUG/INFO/WARN/ERROR (any case) to a Level, defaulting to
// InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel
	case "WARN":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func zerologLevel(l Level) zerolog.Level {
	switch l {
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// SetLevel changes the minimum level emitted.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	log = log.Level(zerologLevel(l))
}

// SetOutput redirects log output, keeping the current level.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = newLogger(w, fromZerolog(log.GetLevel()))
}

func fromZerolog(l zerolog.Level) Level {
	switch l {
	case zerolog.DebugLevel, zerolog.TraceLevel:
		return DebugLevel
	case zerolog.WarnLevel:
		return WarnLevel
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

func Debug(format string, args ...interface{}) {
	current().Debug().Msgf(format, args...)
}

func Info(format string, args ...interface{}) {
	current().Info().Msgf(format, args...)
}

func Warn(format string, args ...interface{}) {
	current().Warn().Msgf(format, args...)
}

func Error(format string, args ...interface{}) {
	current().Error().Msgf(format, args...)
}

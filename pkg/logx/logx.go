package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level controls which messages are emitted
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var logger = zerolog.New(zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.RFC3339,
}).With().Timestamp().Logger()

// SetLevel sets the global minimum log level
func SetLevel(level Level) {
	switch level {
	case LevelDebug:
		logger = logger.Level(zerolog.DebugLevel)
	case LevelInfo:
		logger = logger.Level(zerolog.InfoLevel)
	case LevelWarn:
		logger = logger.Level(zerolog.WarnLevel)
	case LevelError:
		logger = logger.Level(zerolog.ErrorLevel)
	}
}

func Debug(msg string) {
	logger.Debug().Msg(msg)
}

func Debugf(format string, args ...any) {
	logger.Debug().Msgf(format, args...)
}

func Info(msg string) {
	logger.Info().Msg(msg)
}

func Infof(format string, args ...any) {
	logger.Info().Msgf(format, args...)
}

func Warn(msg string) {
	logger.Warn().Msg(msg)
}

func Warnf(format string, args ...any) {
	logger.Warn().Msgf(format, args...)
}

func Error(msg string) {
	logger.Error().Msg(msg)
}

func Errorf(format string, args ...any) {
	logger.Error().Msgf(format, args...)
}

// Fatalf logs at fatal level and exits with status 1
func Fatalf(format string, args ...any) {
	logger.Fatal().Msgf(format, args...)
}

package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger

// Init configures the package logger. Production logs JSON at info level,
// everything else logs text with debug enabled.
func Init(environment string) {
	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	log = slog.New(handler)
}

func ensure() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Debug(msg string, args ...any) {
	ensure().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	ensure().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	ensure().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	ensure().Error(msg, args...)
}

// Fatal logs at error level and exits the process.
func Fatal(msg string, args ...any) {
	ensure().Error(msg, args...)
	os.Exit(1)
}

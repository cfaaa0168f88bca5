package logger

import (
	"io"
	"log/slog"
	"os"
)

var log *slog.Logger

// Init installs the process-wide logger. Development gets debug-level text,
// every other environment gets JSON at info level.
func Init(env string) {
	InitWithWriter(env, os.Stdout)
}

func InitWithWriter(env string, w io.Writer) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	}

	if env == "development" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

func GetLogger() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal logs and exits with code 1.
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// NotifyLog records a side-channel delivery (websocket, e-mail) of a notification.
func NotifyLog(channel, userID string, err error) {
	fields := []any{
		"channel", channel,
		"user_id", userID,
	}

	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Warn("notification delivery failed", fields...)
	} else {
		GetLogger().Debug("notification delivered", fields...)
	}
}

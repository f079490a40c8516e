package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
)

// LogOutput is where workflow loggers write. Tests may redirect it.
var LogOutput io.Writer = os.Stderr

// SetupLogger configures the application-wide logger.
// It uses "tint" for colorized, structured logging that is easy to read in terminals.
func SetupLogger(level string, providerName string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := tint.NewHandler(LogOutput, &tint.Options{
		Level: logLevel,
	})

	return slog.New(handler).With("cloud_provider", providerName)
}

// newRunID returns the identifier attached to every log line of one workflow run.
func newRunID() string {
	return fmt.Sprintf("req-%s", uuid.New().String())
}

// withTimeout applies the optional global workflow timeout.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

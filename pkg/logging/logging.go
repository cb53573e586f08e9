// Package logging builds the structured logger shared across services,
// following the teacher's convention of wiring a single *slog.Logger
// through each component's constructors.
package logging

import (
	"log/slog"
	"os"
)

// New builds a JSON slog.Logger tagged with the owning component and
// replica id (0 for components that have no replica identity).
func New(component string, componentID int) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	logger := slog.New(h).With(
		slog.String("component", component),
	)
	if componentID > 0 {
		logger = logger.With(slog.Int("component_id", componentID))
	}
	return logger
}

// WithCorrelation returns a logger annotated with a request correlation id.
func WithCorrelation(logger *slog.Logger, correlationID string) *slog.Logger {
	if correlationID == "" {
		return logger
	}
	return logger.With(slog.String("correlation_id", correlationID))
}

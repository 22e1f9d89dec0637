package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

// Send fires a best-effort desktop notification. Failures are logged
// and never bubble up: a missing notification daemon must not break a
// punch.
func Send(logger *slog.Logger, title, message string) {
	if err := beeep.Notify(title, message, ""); err != nil && logger != nil {
		logger.Debug("desktop notification failed", "error", err)
	}
}

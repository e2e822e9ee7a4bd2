package notifier

import (
	"context"

	"github.com/mauv0809/crease/internal/match"
)

// Notifier defines a high-level interface for sending notifications about match events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For completed matches
	SendMatchResult(ctx context.Context, board *match.Scoreboard, dryRun bool) error
	// For matches going live or being cancelled
	SendStatusChange(ctx context.Context, m *match.Match, previous match.Status, dryRun bool) error
}

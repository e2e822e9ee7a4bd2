package match

import "context"

// MatchStore defines the interface for matches, scores, player stats and
// commentary.
type MatchStore interface {
	// Create inserts the match and then its zeroed score row. The two writes are
	// not atomic; a match without a score reads back with a nil score.
	Create(ctx context.Context, in CreateInput) (string, error)
	List(ctx context.Context, f ListFilter) ([]Summary, error)
	Get(ctx context.Context, id string) (*Match, error)
	Scoreboard(ctx context.Context, id string) (*Scoreboard, error)
	UpdateScore(ctx context.Context, matchID string, u ScoreUpdate) (*ScoreView, error)
	// UpdateStatus applies a transition and returns the match together with
	// the status it had before. Equal statuses mean nothing changed.
	UpdateStatus(ctx context.Context, matchID string, next Status) (*Match, Status, error)

	AddPlayer(ctx context.Context, matchID string, in AddPlayerInput) (*PlayerStat, error)
	RemovePlayer(ctx context.Context, matchID, statID string) error
	UpdatePlayerStat(ctx context.Context, matchID, statID string, u StatUpdate) (*PlayerStatView, error)
	// PlayerStats returns every stat line recorded for a registered player.
	PlayerStats(ctx context.Context, playerID string) ([]PlayerStat, error)

	AddCommentary(ctx context.Context, matchID string, in CommentaryInput) (*Commentary, error)
	ListCommentary(ctx context.Context, matchID string) ([]Commentary, error)
}

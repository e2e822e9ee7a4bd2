package match

import (
	"time"

	"github.com/mauv0809/crease/internal/scoring"
)

// DefaultOvers is the overs limit used when none is given.
const DefaultOvers = 20

// Team is one side of a match.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Venue is the location a match is played at.
type Venue struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Country *string `json:"country"`
}

// Match is a match with its teams and venue resolved.
type Match struct {
	ID        string    `json:"id"`
	TeamA     Team      `json:"team_a"`
	TeamB     Team      `json:"team_b"`
	Venue     *Venue    `json:"venue"`
	Overs     int       `json:"overs"`
	Status    Status    `json:"status"`
	CreatedBy *string   `json:"created_by"`
	StartDate time.Time `json:"start_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Score is the stored score row of a match.
type Score struct {
	MatchID string `json:"match_id"`
	scoring.Score
}

// ScoreView is a Score with run rates attached.
type ScoreView struct {
	MatchID string `json:"match_id"`
	scoring.EnrichedScore
}

// Enrich attaches run rates.
func (s Score) Enrich() ScoreView {
	return ScoreView{MatchID: s.MatchID, EnrichedScore: scoring.EnrichScore(s.Score)}
}

// PlayerStat is one player's line in one match. The player is identified by
// PlayerID when registered, otherwise by PlayerName.
type PlayerStat struct {
	ID         string  `json:"id"`
	MatchID    string  `json:"match_id"`
	TeamID     string  `json:"team_id"`
	PlayerID   *string `json:"player_id"`
	PlayerName *string `json:"player_name"`
	scoring.StatLine
	CreatedAt time.Time `json:"created_at"`
}

// PlayerStatView is a PlayerStat with its per-match rates.
type PlayerStatView struct {
	PlayerStat
	StrikeRate *float64 `json:"strike_rate"`
	Economy    *float64 `json:"economy"`
}

// Enrich attaches strike rate and economy.
func (p PlayerStat) Enrich() PlayerStatView {
	return PlayerStatView{
		PlayerStat: p,
		StrikeRate: p.StrikeRate(),
		Economy:    p.Economy(),
	}
}

// Summary is a list entry: a match and its score, if any.
type Summary struct {
	Match
	Score *ScoreView `json:"score"`
}

// Scoreboard is the full read model of one match.
type Scoreboard struct {
	Match
	Score       *ScoreView       `json:"score"`
	PlayerStats []PlayerStatView `json:"playerStats"`
	TeamAStats  []PlayerStatView `json:"team_a_stats"`
	TeamBStats  []PlayerStatView `json:"team_b_stats"`
}

// TopScorer returns the highest run scorer, or nil when nobody has batted.
func (b *Scoreboard) TopScorer() *PlayerStatView {
	var top *PlayerStatView
	for i := range b.PlayerStats {
		p := &b.PlayerStats[i]
		if p.Runs == nil {
			continue
		}
		if top == nil || *p.Runs > *top.Runs {
			top = p
		}
	}
	return top
}

// Commentary is a free-text note attached to a match.
type Commentary struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match_id"`
	Over      *float64  `json:"over"`
	Text      string    `json:"text"`
	AuthorID  *string   `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateInput describes a new match. Teams are given by name and created on
// first use. The venue is either an existing location id or a location name.
type CreateInput struct {
	TeamAName    string
	TeamBName    string
	VenueID      string
	LocationName string
	Overs        int
	StartDate    time.Time
	Status       Status
	CreatedBy    string
}

// ListFilter narrows List. Zero values mean no filter.
type ListFilter struct {
	Status    Status
	CreatedBy string
	Limit     int
}

// ScoreUpdate holds optional score changes. Absent fields are left
// untouched; only Target may be cleared with null.
type ScoreUpdate struct {
	TeamAScore   Optional[int]     `json:"teamAScore"`
	TeamAWickets Optional[int]     `json:"teamAWkts"`
	TeamAOvers   Optional[float64] `json:"teamAOvers"`
	TeamBScore   Optional[int]     `json:"teamBScore"`
	TeamBWickets Optional[int]     `json:"teamBWkts"`
	TeamBOvers   Optional[float64] `json:"teamBOvers"`
	Target       Optional[int]     `json:"target"`
}

// StatUpdate holds optional player-stat changes. Absent fields are left
// untouched and null clears a counter, so a line can record batting only
// (null wickets) or bowling only (null runs).
type StatUpdate struct {
	Runs    Optional[int]     `json:"runs"`
	Balls   Optional[int]     `json:"balls"`
	Fours   Optional[int]     `json:"fours"`
	Sixes   Optional[int]     `json:"sixes"`
	Wickets Optional[int]     `json:"wickets"`
	Overs   Optional[float64] `json:"overs"`
}

// AddPlayerInput attaches a player to one team of a match.
type AddPlayerInput struct {
	TeamID     string  `json:"teamId"`
	PlayerID   *string `json:"playerId"`
	PlayerName *string `json:"playerName"`
}

// CommentaryInput is a new commentary entry.
type CommentaryInput struct {
	Over     *float64 `json:"over"`
	Text     string   `json:"text"`
	AuthorID string   `json:"-"`
}

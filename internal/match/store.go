package match

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/crease/internal/apperr"
	"github.com/mauv0809/crease/internal/lookup"
	"github.com/mauv0809/crease/internal/scoring"
)

const matchColumns = `
	m.id, m.team_a, ta.name, m.team_b, tb.name,
	m.venue, l.name, l.address, l.city, l.state, l.country,
	m.overs, m.status, m.created_by, m.start_date, m.created_at, m.updated_at`

const matchJoins = `
	FROM matches m
	JOIN teams ta ON ta.id = m.team_a
	JOIN teams tb ON tb.id = m.team_b
	LEFT JOIN locations l ON l.id = m.venue`

const scoreColumns = `match_id, team_a_score, team_a_wkts, team_a_overs, team_b_score, team_b_wkts, team_b_overs, target`

const statColumns = `id, match_id, team_id, player_id, player_name, runs, balls, fours, sixes, wickets, overs, created_at`

type store struct {
	db       *sql.DB
	resolver lookup.Resolver
	now      func() time.Time
	// mu serializes status transitions so check-then-write is not interleaved.
	mu sync.Mutex
}

// New creates a new MatchStore. Team and location names are resolved through
// resolver.
func New(db *sql.DB, resolver lookup.Resolver) MatchStore {
	return &store{
		db:       db,
		resolver: resolver,
		now:      time.Now,
	}
}

func (s *store) Create(ctx context.Context, in CreateInput) (string, error) {
	if strings.TrimSpace(in.TeamAName) == "" || strings.TrimSpace(in.TeamBName) == "" {
		return "", apperr.Validation("teamAName and teamBName are required")
	}
	overs := in.Overs
	if overs == 0 {
		overs = DefaultOvers
	}
	if overs < 0 {
		return "", apperr.Validation("overs must be positive")
	}
	status := in.Status
	if status == "" {
		status = StatusLive
	}
	if status != StatusLive && status != StatusScheduled {
		return "", apperr.Validation("a new match must be scheduled or live")
	}

	var venueID *string
	switch {
	case in.VenueID != "":
		if err := s.ensureLocation(ctx, in.VenueID); err != nil {
			return "", err
		}
		venueID = &in.VenueID
	case strings.TrimSpace(in.LocationName) != "":
		id, err := s.resolver.LocationID(ctx, in.LocationName)
		if err != nil {
			return "", err
		}
		venueID = &id
	}

	teamA, err := s.resolver.TeamID(ctx, in.TeamAName)
	if err != nil {
		return "", err
	}
	teamB, err := s.resolver.TeamID(ctx, in.TeamBName)
	if err != nil {
		return "", err
	}
	if teamA == teamB {
		return "", apperr.Validation("a match needs two different teams")
	}

	now := s.now().Unix()
	start := in.StartDate
	if start.IsZero() {
		start = s.now()
	}
	var createdBy *string
	if in.CreatedBy != "" {
		createdBy = &in.CreatedBy
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO matches (id, team_a, team_b, venue, overs, status, created_by, start_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, teamA, teamB, venueID, overs, string(status), createdBy, start.Unix(), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert match: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO match_score (match_id, team_a_score, team_a_wkts, team_a_overs, team_b_score, team_b_wkts, team_b_overs)
		VALUES (?, 0, 0, 0, 0, 0, 0)`, id)
	if err != nil {
		log.Error("Match created without score row", "matchID", id, "error", err)
		return "", fmt.Errorf("failed to insert score for match %s: %w", id, err)
	}

	log.Info("Created match", "matchID", id, "teamA", teamA, "teamB", teamB, "status", status)
	return id, nil
}

func (s *store) ensureLocation(ctx context.Context, id string) error {
	var found string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM locations WHERE id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Validation("location %s does not exist", id)
	}
	if err != nil {
		return fmt.Errorf("failed to query location: %w", err)
	}
	return nil
}

func (s *store) List(ctx context.Context, f ListFilter) ([]Summary, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		where = append(where, "m.status = ?")
		args = append(args, string(f.Status))
	}
	if f.CreatedBy != "" {
		where = append(where, "m.created_by = ?")
		args = append(args, f.CreatedBy)
	}

	query := `SELECT ` + matchColumns + `,
		s.match_id, s.team_a_score, s.team_a_wkts, s.team_a_overs, s.team_b_score, s.team_b_wkts, s.team_b_overs, s.target` +
		matchJoins + `
		LEFT JOIN match_score s ON s.match_id = m.id`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY m.created_at DESC, m.rowid DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var (
			row     matchRow
			scoreID *string
			a, b    struct {
				score, wkts *int
				overs       *float64
			}
			target *int
		)
		dest := append(row.dest(), &scoreID, &a.score, &a.wkts, &a.overs, &b.score, &b.wkts, &b.overs, &target)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}

		summary := Summary{Match: row.match()}
		if scoreID != nil {
			view := Score{
				MatchID: *scoreID,
				Score: scoring.Score{
					TeamAScore:   deref(a.score),
					TeamAWickets: deref(a.wkts),
					TeamAOvers:   derefFloat(a.overs),
					TeamBScore:   deref(b.score),
					TeamBWickets: deref(b.wkts),
					TeamBOvers:   derefFloat(b.overs),
					Target:       target,
				},
			}.Enrich()
			summary.Score = &view
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func (s *store) Get(ctx context.Context, id string) (*Match, error) {
	var row matchRow
	err := s.db.QueryRowContext(ctx, `SELECT `+matchColumns+matchJoins+` WHERE m.id = ?`, id).Scan(row.dest()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Match not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query match %s: %w", id, err)
	}
	m := row.match()
	return &m, nil
}

func (s *store) Scoreboard(ctx context.Context, id string) (*Scoreboard, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	board := &Scoreboard{
		Match:       *m,
		PlayerStats: []PlayerStatView{},
		TeamAStats:  []PlayerStatView{},
		TeamBStats:  []PlayerStatView{},
	}

	score, err := s.getScore(ctx, id)
	if err != nil {
		return nil, err
	}
	if score != nil {
		view := score.Enrich()
		board.Score = &view
	}

	stats, err := s.queryStats(ctx, `SELECT `+statColumns+` FROM match_player_stats WHERE match_id = ? ORDER BY runs DESC, created_at ASC, rowid ASC`, id)
	if err != nil {
		return nil, err
	}
	for _, st := range stats {
		view := st.Enrich()
		board.PlayerStats = append(board.PlayerStats, view)
		switch st.TeamID {
		case m.TeamA.ID:
			board.TeamAStats = append(board.TeamAStats, view)
		case m.TeamB.ID:
			board.TeamBStats = append(board.TeamBStats, view)
		}
	}
	return board, nil
}

// getScore returns nil without error when the match has no score row.
func (s *store) getScore(ctx context.Context, matchID string) (*Score, error) {
	score, err := scanScore(s.db.QueryRowContext(ctx, `SELECT `+scoreColumns+` FROM match_score WHERE match_id = ?`, matchID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return score, err
}

func (s *store) UpdateScore(ctx context.Context, matchID string, u ScoreUpdate) (*ScoreView, error) {
	if err := u.validate(); err != nil {
		return nil, err
	}
	var set assignments
	setField(&set, "team_a_score", u.TeamAScore)
	setField(&set, "team_a_wkts", u.TeamAWickets)
	setField(&set, "team_a_overs", u.TeamAOvers)
	setField(&set, "team_b_score", u.TeamBScore)
	setField(&set, "team_b_wkts", u.TeamBWickets)
	setField(&set, "team_b_overs", u.TeamBOvers)
	setField(&set, "target", u.Target)

	score, err := scanScore(s.db.QueryRowContext(ctx,
		`UPDATE match_score SET `+set.clause("match_id = match_id")+` WHERE match_id = ? RETURNING `+scoreColumns,
		append(set.args, matchID)...,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Score not found for match %s", matchID)
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE matches SET updated_at = ? WHERE id = ?`, s.now().Unix(), matchID); err != nil {
		log.Warn("Failed to touch match after score update", "matchID", matchID, "error", err)
	}
	log.Debug("Updated score", "matchID", matchID)
	view := score.Enrich()
	return &view, nil
}

func (s *store) UpdateStatus(ctx context.Context, matchID string, next Status) (*Match, Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.Get(ctx, matchID)
	if err != nil {
		return nil, "", err
	}
	previous := m.Status
	if previous == next {
		return m, previous, nil
	}
	if previous.Terminal() {
		return nil, "", apperr.Validation("match is already %s", previous)
	}
	if !previous.CanTransitionTo(next) {
		return nil, "", apperr.Validation("cannot change status from %s to %s", previous, next)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE matches SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(next), s.now().Unix(), matchID, string(previous),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to update status of match %s: %w", matchID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, "", apperr.Conflict("match status was changed by another request")
	}
	log.Info("Changed match status", "matchID", matchID, "from", previous, "to", next)
	updated, err := s.Get(ctx, matchID)
	if err != nil {
		return nil, "", err
	}
	return updated, previous, nil
}

func (s *store) AddPlayer(ctx context.Context, matchID string, in AddPlayerInput) (*PlayerStat, error) {
	if strings.TrimSpace(in.TeamID) == "" {
		return nil, apperr.Validation("teamId is required")
	}
	playerID := trimmed(in.PlayerID)
	playerName := trimmed(in.PlayerName)
	if playerID == nil && playerName == nil {
		return nil, apperr.Validation("Either playerId or playerName is required")
	}

	m, err := s.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if in.TeamID != m.TeamA.ID && in.TeamID != m.TeamB.ID {
		return nil, apperr.Validation("team %s is not playing in this match", in.TeamID)
	}

	zero, zeroOvers := 0, 0.0
	stat := &PlayerStat{
		ID:         uuid.NewString(),
		MatchID:    matchID,
		TeamID:     in.TeamID,
		PlayerID:   playerID,
		PlayerName: playerName,
		StatLine: scoring.StatLine{
			Runs: &zero, Balls: &zero, Fours: &zero, Sixes: &zero, Wickets: &zero, Overs: &zeroOvers,
		},
		CreatedAt: time.Unix(s.now().Unix(), 0).UTC(),
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO match_player_stats (id, match_id, team_id, player_id, player_name, runs, balls, fours, sixes, wickets, overs, created_at)
		VALUES (?, ?, ?, ?, ?, 0, 0, 0, 0, 0, 0, ?)`,
		stat.ID, stat.MatchID, stat.TeamID, stat.PlayerID, stat.PlayerName, stat.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add player to match %s: %w", matchID, err)
	}
	log.Info("Added player to match", "matchID", matchID, "statID", stat.ID, "teamID", stat.TeamID)
	return stat, nil
}

func (s *store) RemovePlayer(ctx context.Context, matchID, statID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM match_player_stats WHERE id = ? AND match_id = ?`, statID, matchID)
	if err != nil {
		return fmt.Errorf("failed to remove player stat %s: %w", statID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.NotFound("Player stat not found")
	}
	log.Info("Removed player from match", "matchID", matchID, "statID", statID)
	return nil
}

func (s *store) UpdatePlayerStat(ctx context.Context, matchID, statID string, u StatUpdate) (*PlayerStatView, error) {
	if err := u.validate(); err != nil {
		return nil, err
	}
	var set assignments
	setField(&set, "runs", u.Runs)
	setField(&set, "balls", u.Balls)
	setField(&set, "fours", u.Fours)
	setField(&set, "sixes", u.Sixes)
	setField(&set, "wickets", u.Wickets)
	setField(&set, "overs", u.Overs)

	stat, err := scanStat(s.db.QueryRowContext(ctx,
		`UPDATE match_player_stats SET `+set.clause("id = id")+` WHERE id = ? AND match_id = ? RETURNING `+statColumns,
		append(set.args, statID, matchID)...,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Player stat not found")
	}
	if err != nil {
		return nil, err
	}
	log.Debug("Updated player stat", "matchID", matchID, "statID", statID)
	view := stat.Enrich()
	return &view, nil
}

func (s *store) PlayerStats(ctx context.Context, playerID string) ([]PlayerStat, error) {
	return s.queryStats(ctx, `SELECT `+statColumns+` FROM match_player_stats WHERE player_id = ? ORDER BY created_at ASC, rowid ASC`, playerID)
}

func (s *store) queryStats(ctx context.Context, query string, args ...any) ([]PlayerStat, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query player stats: %w", err)
	}
	defer rows.Close()

	stats := []PlayerStat{}
	for rows.Next() {
		st, err := scanStat(rows)
		if err != nil {
			return nil, err
		}
		stats = append(stats, *st)
	}
	return stats, rows.Err()
}

func (s *store) AddCommentary(ctx context.Context, matchID string, in CommentaryInput) (*Commentary, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, apperr.Validation("text is required")
	}
	if in.Over != nil && *in.Over < 0 {
		return nil, apperr.Validation("over must not be negative")
	}
	if _, err := s.Get(ctx, matchID); err != nil {
		return nil, err
	}

	c := &Commentary{
		ID:        uuid.NewString(),
		MatchID:   matchID,
		Over:      in.Over,
		Text:      text,
		CreatedAt: time.Unix(s.now().Unix(), 0).UTC(),
	}
	if in.AuthorID != "" {
		c.AuthorID = &in.AuthorID
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO match_commentary (id, match_id, over_number, text, author_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.MatchID, c.Over, c.Text, c.AuthorID, c.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert commentary: %w", err)
	}
	return c, nil
}

func (s *store) ListCommentary(ctx context.Context, matchID string) ([]Commentary, error) {
	if _, err := s.Get(ctx, matchID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, match_id, over_number, text, author_id, created_at FROM match_commentary WHERE match_id = ? ORDER BY created_at DESC, rowid DESC`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query commentary: %w", err)
	}
	defer rows.Close()

	entries := []Commentary{}
	for rows.Next() {
		var (
			c         Commentary
			createdAt int64
		)
		if err := rows.Scan(&c.ID, &c.MatchID, &c.Over, &c.Text, &c.AuthorID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan commentary: %w", err)
		}
		c.CreatedAt = time.Unix(createdAt, 0).UTC()
		entries = append(entries, c)
	}
	return entries, rows.Err()
}

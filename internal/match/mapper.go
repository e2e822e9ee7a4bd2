package match

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mauv0809/crease/internal/apperr"
)

type scanner interface {
	Scan(dest ...any) error
}

// matchRow receives the columns selected by matchColumns.
type matchRow struct {
	m                               Match
	venueID, venueName              *string
	address, city, state, country   *string
	status                          string
	startDate, createdAt, updatedAt int64
}

func (r *matchRow) dest() []any {
	return []any{
		&r.m.ID, &r.m.TeamA.ID, &r.m.TeamA.Name, &r.m.TeamB.ID, &r.m.TeamB.Name,
		&r.venueID, &r.venueName, &r.address, &r.city, &r.state, &r.country,
		&r.m.Overs, &r.status, &r.m.CreatedBy, &r.startDate, &r.createdAt, &r.updatedAt,
	}
}

func (r *matchRow) match() Match {
	m := r.m
	m.Status = Status(r.status)
	m.StartDate = time.Unix(r.startDate, 0).UTC()
	m.CreatedAt = time.Unix(r.createdAt, 0).UTC()
	m.UpdatedAt = time.Unix(r.updatedAt, 0).UTC()
	// A venue id whose location was deleted joins to a null name.
	if r.venueID != nil && r.venueName != nil {
		m.Venue = &Venue{
			ID:      *r.venueID,
			Name:    *r.venueName,
			Address: r.address,
			City:    r.city,
			State:   r.state,
			Country: r.country,
		}
	}
	return m
}

func scanScore(row scanner) (*Score, error) {
	var sc Score
	err := row.Scan(&sc.MatchID, &sc.TeamAScore, &sc.TeamAWickets, &sc.TeamAOvers,
		&sc.TeamBScore, &sc.TeamBWickets, &sc.TeamBOvers, &sc.Target)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan score: %w", err)
	}
	return &sc, nil
}

func scanStat(row scanner) (*PlayerStat, error) {
	var (
		st        PlayerStat
		createdAt int64
	)
	err := row.Scan(&st.ID, &st.MatchID, &st.TeamID, &st.PlayerID, &st.PlayerName,
		&st.Runs, &st.Balls, &st.Fours, &st.Sixes, &st.Wickets, &st.Overs, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan player stat: %w", err)
	}
	st.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &st, nil
}

func (u ScoreUpdate) validate() error {
	counters := []struct {
		name string
		v    Optional[int]
	}{
		{"teamAScore", u.TeamAScore}, {"teamAWkts", u.TeamAWickets},
		{"teamBScore", u.TeamBScore}, {"teamBWkts", u.TeamBWickets},
	}
	for _, c := range counters {
		if c.v.Null {
			return apperr.Validation("%s cannot be null", c.name)
		}
		if c.v.present() && c.v.Value < 0 {
			return apperr.Validation("%s must not be negative", c.name)
		}
	}
	for name, v := range map[string]Optional[float64]{"teamAOvers": u.TeamAOvers, "teamBOvers": u.TeamBOvers} {
		if v.Null {
			return apperr.Validation("%s cannot be null", name)
		}
		if v.present() && v.Value < 0 {
			return apperr.Validation("%s must not be negative", name)
		}
	}
	if u.Target.present() && u.Target.Value < 0 {
		return apperr.Validation("target must not be negative")
	}
	if u.TeamAWickets.present() && u.TeamAWickets.Value > 10 || u.TeamBWickets.present() && u.TeamBWickets.Value > 10 {
		return apperr.Validation("wickets cannot exceed 10")
	}
	return nil
}

func (u StatUpdate) validate() error {
	for name, v := range map[string]Optional[int]{
		"runs": u.Runs, "balls": u.Balls, "fours": u.Fours, "sixes": u.Sixes, "wickets": u.Wickets,
	} {
		if v.present() && v.Value < 0 {
			return apperr.Validation("%s must not be negative", name)
		}
	}
	if u.Overs.present() && u.Overs.Value < 0 {
		return apperr.Validation("overs must not be negative")
	}
	return nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

package scoring

// Score holds the raw counters for both innings of a match.
type Score struct {
	TeamAScore   int     `json:"team_a_score"`
	TeamAWickets int     `json:"team_a_wickets"`
	TeamAOvers   float64 `json:"team_a_overs"`
	TeamBScore   int     `json:"team_b_score"`
	TeamBWickets int     `json:"team_b_wickets"`
	TeamBOvers   float64 `json:"team_b_overs"`
	Target       *int    `json:"target"`
}

// EnrichedScore is a Score plus both run rates.
type EnrichedScore struct {
	Score
	TeamARunRate float64 `json:"team_a_run_rate"`
	TeamBRunRate float64 `json:"team_b_run_rate"`
}

// EnrichScore attaches run rates to s. It is safe to call repeatedly.
func EnrichScore(s Score) EnrichedScore {
	return EnrichedScore{
		Score:        s,
		TeamARunRate: RunRate(s.TeamAScore, s.TeamAOvers),
		TeamBRunRate: RunRate(s.TeamBScore, s.TeamBOvers),
	}
}

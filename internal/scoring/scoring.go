// Package scoring derives cricket statistics from raw counters.
//
// Nothing here is ever persisted: every rate is recomputed from the counters
// it is derived from, so a rate can never disagree with its source.
package scoring

import "math"

// Round2 rounds x to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// RunRate is runs scored per over, or 0 before the first over is bowled.
func RunRate(score int, overs float64) float64 {
	if overs <= 0 {
		return 0
	}
	return Round2(float64(score) / overs)
}

// StatLine is one player's raw counters for one match.
// A nil counter means "not recorded", which is different from zero:
// a line with nil Runs is a bowling-only appearance.
type StatLine struct {
	Runs    *int     `json:"runs"`
	Balls   *int     `json:"balls"`
	Fours   *int     `json:"fours"`
	Sixes   *int     `json:"sixes"`
	Wickets *int     `json:"wickets"`
	Overs   *float64 `json:"overs"`
}

// StrikeRate is runs per 100 balls for this line, or nil when there is
// nothing to divide.
func (l StatLine) StrikeRate() *float64 {
	if l.Runs == nil || deref(l.Balls) <= 0 {
		return nil
	}
	sr := Round2(float64(*l.Runs) / float64(*l.Balls) * 100)
	return &sr
}

// Economy is runs per over for this line, or nil when no overs were bowled.
func (l StatLine) Economy() *float64 {
	if l.Runs == nil || derefFloat(l.Overs) <= 0 {
		return nil
	}
	econ := Round2(float64(*l.Runs) / *l.Overs)
	return &econ
}

// BattingAggregate totals a player's batting across matches.
type BattingAggregate struct {
	TotalRuns  int     `json:"totalRuns"`
	TotalBalls int     `json:"totalBalls"`
	TotalFours int     `json:"totalFours"`
	TotalSixes int     `json:"totalSixes"`
	Matches    int     `json:"matches"`
	StrikeRate float64 `json:"strikeRate"`
}

// BowlingAggregate totals a player's bowling across matches.
type BowlingAggregate struct {
	TotalWickets      int     `json:"totalWickets"`
	TotalOvers        float64 `json:"totalOvers"`
	TotalRunsConceded int     `json:"totalRunsConceded"`
	Matches           int     `json:"matches"`
	Economy           float64 `json:"economy"`
	Average           float64 `json:"average"`
}

// Accumulate folds every line of one player into batting and bowling totals.
//
// A line counts towards batting when Runs is recorded and towards bowling when
// Wickets is recorded. Runs conceded is read from the same Runs counter, so a
// line carrying both batting and bowling figures adds its runs to both totals.
// TODO: split runs conceded into its own column once the scoring app records
// it separately from runs scored.
func Accumulate(lines []StatLine) (BattingAggregate, BowlingAggregate) {
	var bat BattingAggregate
	var bowl BowlingAggregate

	for _, l := range lines {
		if l.Runs != nil {
			bat.TotalRuns += *l.Runs
			bat.TotalBalls += deref(l.Balls)
			bat.TotalFours += deref(l.Fours)
			bat.TotalSixes += deref(l.Sixes)
			bat.Matches++
		}
		if l.Wickets != nil {
			bowl.TotalWickets += *l.Wickets
			bowl.TotalOvers += derefFloat(l.Overs)
			bowl.TotalRunsConceded += deref(l.Runs)
			bowl.Matches++
		}
	}

	if bat.TotalBalls > 0 {
		bat.StrikeRate = Round2(float64(bat.TotalRuns) / float64(bat.TotalBalls) * 100)
	}
	if bowl.TotalOvers > 0 {
		bowl.Economy = Round2(float64(bowl.TotalRunsConceded) / bowl.TotalOvers)
	}
	if bowl.TotalWickets > 0 {
		bowl.Average = Round2(float64(bowl.TotalRunsConceded) / float64(bowl.TotalWickets))
	}
	return bat, bowl
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

// Int and Float return pointers to their argument, for building StatLines.
func Int(v int) *int { return &v }

func Float(v float64) *float64 { return &v }

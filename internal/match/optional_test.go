package match

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalUnmarshal(t *testing.T) {
	var u StatUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"runs":50,"wickets":null}`), &u))

	assert.Equal(t, Some(50), u.Runs)
	assert.Equal(t, Null[int](), u.Wickets)
	assert.False(t, u.Overs.Set, "missing key stays unset")
	assert.True(t, u.Runs.present())
	assert.False(t, u.Wickets.present())

	err := json.Unmarshal([]byte(`{"runs":"fifty"}`), &u)
	assert.Error(t, err)
}

func TestOptionalMarshal(t *testing.T) {
	out, err := json.Marshal(ScoreUpdate{TeamAScore: Some(12), Target: Null[int]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"teamAScore": 12, "teamAWkts": null, "teamAOvers": null,
		"teamBScore": null, "teamBWkts": null, "teamBOvers": null,
		"target": null
	}`, string(out))
}

func TestAssignments(t *testing.T) {
	var set assignments
	assert.Equal(t, "id = id", set.clause("id = id"))

	setField(&set, "runs", Some(4))
	setField(&set, "wickets", Null[int]())
	setField(&set, "overs", Optional[float64]{})
	assert.Equal(t, "runs = ?, wickets = ?", set.clause("id = id"))
	assert.Equal(t, []any{4, nil}, set.args)
}

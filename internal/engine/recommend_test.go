package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend(t *testing.T) {
	w := DefaultWeights()

	tests := []struct {
		name     string
		tco      Scores
		eco      Scores
		org      Scores
		expected Action
		votes    VoteDetail
	}{
		{
			name:     "all ties go to keep",
			tco:      Uniform(100),
			eco:      Uniform(50),
			org:      Uniform(960),
			expected: ActionKeep,
			votes:    VoteDetail{ActionKeep, ActionKeep, ActionKeep},
		},
		{
			name:     "financial winner alone loses to eco plus org",
			tco:      Scores{Keep: 200, Buy: 150, Lease: 300},
			eco:      Uniform(10),
			org:      Uniform(0),
			expected: ActionKeep,
			votes:    VoteDetail{ActionBuy, ActionKeep, ActionKeep},
		},
		{
			name:     "financial and org agree",
			tco:      Scores{Keep: 200, Buy: 250, Lease: 150},
			eco:      Uniform(10),
			org:      Scores{Keep: 960, Buy: 400, Lease: 400},
			expected: ActionLease,
			votes:    VoteDetail{ActionLease, ActionKeep, ActionBuy},
		},
		{
			name:     "buy and lease tie on cost picks buy",
			tco:      Scores{Keep: 300, Buy: 100, Lease: 100},
			eco:      Scores{Keep: 50, Buy: 20, Lease: 20},
			org:      Uniform(0),
			expected: ActionBuy,
			votes:    VoteDetail{ActionBuy, ActionBuy, ActionKeep},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommend(tt.tco, tt.eco, tt.org, w)
			assert.Equal(t, tt.expected, got.Action)
			assert.Equal(t, tt.votes, got.Votes)
			assert.InDelta(t, 1.0, got.Tally.Keep+got.Tally.Buy+got.Tally.Lease, 1e-9)
		})
	}
}

func TestRecommend_TallyTie(t *testing.T) {
	// Buy and Lease each collect 0.5; Buy comes first.
	w := Weights{Financial: 0.5, Ecological: 0, Organizational: 0.5}
	got := Recommend(
		Scores{Keep: 3, Buy: 1, Lease: 2},
		Uniform(1),
		Scores{Keep: 3, Buy: 2, Lease: 1},
		w,
	)
	assert.Equal(t, ActionBuy, got.Action)
	assert.InDelta(t, 0.5, got.Tally.Buy, 1e-9)
	assert.InDelta(t, 0.5, got.Tally.Lease, 1e-9)
}

func TestRecommend_Idempotent(t *testing.T) {
	tco := Scores{Keep: 112.8, Buy: 143.3, Lease: 112.8}
	eco := Uniform(50.9)
	org := Scores{Keep: 960, Buy: 240, Lease: 240}
	first := Recommend(tco, eco, org, DefaultWeights())
	for range 10 {
		assert.Equal(t, first, Recommend(tco, eco, org, DefaultWeights()))
	}
}

func TestParseAction(t *testing.T) {
	for _, in := range []string{"keep", "KEEP", " Keep "} {
		a, err := ParseAction(in)
		require.NoError(t, err)
		assert.Equal(t, ActionKeep, a)
	}
	a, err := ParseAction("lease")
	require.NoError(t, err)
	assert.Equal(t, ActionLease, a)

	_, err = ParseAction("rent")
	assert.Error(t, err)
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)
	assert.Equal(t, []Action{ActionKeep, ActionBuy, ActionLease}, AllActions())
}

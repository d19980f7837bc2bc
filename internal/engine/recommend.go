package engine

import (
	"fmt"
	"strings"
)

// Action is a disposition strategy for an equipment line.
type Action string

// Strategies, in the fixed order used to break ties.
const (
	ActionKeep  Action = "Keep"
	ActionBuy   Action = "Buy"
	ActionLease Action = "Lease"
)

// AllActions returns Keep, Buy, Lease. Ties in both the per-criterion minimum
// and the weighted vote go to the earliest action in this order.
func AllActions() []Action {
	return []Action{ActionKeep, ActionBuy, ActionLease}
}

// ParseAction converts a case-insensitive action name.
func ParseAction(s string) (Action, error) {
	for _, a := range AllActions() {
		if strings.EqualFold(strings.TrimSpace(s), string(a)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Scores holds one value per action for a single criterion.
type Scores struct {
	Keep  float64 `json:"keep"`
	Buy   float64 `json:"buy"`
	Lease float64 `json:"lease"`
}

// Get returns the score of a.
func (s Scores) Get(a Action) float64 {
	switch a {
	case ActionBuy:
		return s.Buy
	case ActionLease:
		return s.Lease
	default:
		return s.Keep
	}
}

func (s *Scores) add(a Action, v float64) {
	switch a {
	case ActionBuy:
		s.Buy += v
	case ActionLease:
		s.Lease += v
	default:
		s.Keep += v
	}
}

// Uniform returns Scores with the same value for every action.
func Uniform(v float64) Scores {
	return Scores{Keep: v, Buy: v, Lease: v}
}

// VoteDetail records which action won each criterion.
type VoteDetail struct {
	Financial      Action `json:"financial"`
	Ecological     Action `json:"ecological"`
	Organizational Action `json:"organizational"`
}

// Recommendation is the outcome of the weighted vote.
type Recommendation struct {
	Action Action     `json:"action"`
	Votes  VoteDetail `json:"votes"`

	// Tally is the accumulated weight per action.
	Tally Scores `json:"tally"`
}

// Recommend picks the lowest-valued action for each criterion (cost for
// tco and org, kg CO2 for eco), adds that criterion's weight to its winner and
// returns the action with the highest total.
//
// The weights are expected to sum to 1.0.
func Recommend(tco, eco, org Scores, w Weights) Recommendation {
	votes := VoteDetail{
		Financial:      argMin(tco),
		Ecological:     argMin(eco),
		Organizational: argMin(org),
	}

	var tally Scores
	tally.add(votes.Financial, w.Financial)
	tally.add(votes.Ecological, w.Ecological)
	tally.add(votes.Organizational, w.Organizational)

	return Recommendation{Action: argMax(tally), Votes: votes, Tally: tally}
}

func argMin(s Scores) Action {
	actions := AllActions()
	best := actions[0]
	for _, a := range actions[1:] {
		if s.Get(a) < s.Get(best) {
			best = a
		}
	}
	return best
}

func argMax(s Scores) Action {
	actions := AllActions()
	best := actions[0]
	for _, a := range actions[1:] {
		if s.Get(a) > s.Get(best) {
			best = a
		}
	}
	return best
}

package engine

import "math"

// ProductivityCost estimates the yearly salary-equivalent lost by one worker
// on under-performing hardware:
//
//	cost = salary · clamp(sensitivity · (1 − perfRatio), 0, MaxProductivityLoss)
//
// The 5% ceiling holds whatever the ratio or sensitivity.
func ProductivityCost(perfRatio, salary, sensitivity float64) float64 {
	lossPct := math.Min(MaxProductivityLoss, math.Max(0, sensitivity*(1-perfRatio)))
	return salary * lossPct
}

// PersonaCost is ProductivityCost for one persona.
func (p Persona) PersonaCost(perfRatio float64) float64 {
	return ProductivityCost(perfRatio, p.Salary, p.Sensitivity)
}

// OrgScores returns the designer productivity cost per action. Keep runs at
// PerfRatio; Buy and Lease run at the replacement ratio.
func (a Assumptions) OrgScores() Scores {
	replaced := a.Designer.PersonaCost(a.replacementRatio())
	return Scores{Keep: a.Designer.PersonaCost(a.PerfRatio), Buy: replaced, Lease: replaced}
}

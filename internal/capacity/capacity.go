// Package capacity converts step automation-opportunity ratings into a
// normalized allocation of a team's working capacity. The allocation
// is a proxy: capacity is assumed to be distributed across steps in
// proportion to how much automatable impact each step represents.
package capacity

import "github.com/lighthouise/engine/internal/model"

// impactPoints maps an impact rating to its fixed point weight.
var impactPoints = map[model.Impact]float64{
	model.ImpactHigh:   3,
	model.ImpactMedium: 2,
	model.ImpactLow:    1,
}

// Points returns the point weight for an impact rating. Unknown
// ratings count as low rather than dropping the step from the
// allocation.
func Points(impact model.Impact) float64 {
	if p, ok := impactPoints[impact]; ok {
		return p
	}
	return impactPoints[model.ImpactLow]
}

// Weights maps each step id to its fraction of total capacity. The
// fractions are in (0,1] and sum to 1.0 across the input set. An empty
// input yields an empty map.
func Weights(steps []model.WorkflowStep) map[string]float64 {
	weights := make(map[string]float64, len(steps))
	if len(steps) == 0 {
		return weights
	}

	var total float64
	for _, s := range steps {
		total += Points(s.AIOpportunity.Impact)
	}

	for _, s := range steps {
		weights[s.ID] = Points(s.AIOpportunity.Impact) / total
	}
	return weights
}

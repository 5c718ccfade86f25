// Package savings converts team size, cost assumptions, capacity
// weights, and process maturity into low/mid/high annual dollar
// savings estimates per step and per process.
package savings

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/lighthouise/engine/internal/model"
)

// DefaultRangeFactor is the default estimation-uncertainty spread
// applied around the mid estimate.
const DefaultRangeFactor = 0.25

// maturityBase is the automation headroom by current maturity. Manual
// processes have the most headroom; already-automated ones the least.
var maturityBase = map[model.Maturity]float64{
	model.MaturityManual:        0.60,
	model.MaturitySemiAutomated: 0.35,
	model.MaturityAutomated:     0.10,
}

// impactMultiplier scales headroom by the step's opportunity rating.
var impactMultiplier = map[model.Impact]float64{
	model.ImpactHigh:   1.15,
	model.ImpactMedium: 1.0,
	model.ImpactLow:    0.85,
}

// AutomationPotential returns the fraction of a step's effort that
// automation can remove, given current maturity and the step's
// opportunity rating. The result is in [0,1]. For a fixed impact,
// manual > semi-automated > automated; for a fixed maturity, high >=
// medium >= low.
func AutomationPotential(maturity model.Maturity, impact model.Impact) float64 {
	base, ok := maturityBase[maturity]
	if !ok {
		base = maturityBase[model.MaturitySemiAutomated]
	}
	mul, ok := impactMultiplier[impact]
	if !ok {
		mul = impactMultiplier[model.ImpactMedium]
	}
	return math.Min(base*mul, 1.0)
}

// StepInput carries everything needed to estimate one step.
type StepInput struct {
	Step           model.WorkflowStep
	Maturity       model.Maturity
	TeamSize       float64
	CostPerPerson  float64
	CapacityWeight float64
	TopTool        *model.TopTool
}

// Estimator computes savings ranges with a configured uncertainty
// spread.
type Estimator struct {
	rangeFactor float64
}

// NewEstimator creates an Estimator. A non-positive rangeFactor falls
// back to the default.
func NewEstimator(rangeFactor float64) *Estimator {
	if rangeFactor <= 0 {
		rangeFactor = DefaultRangeFactor
	}
	return &Estimator{rangeFactor: rangeFactor}
}

// RangeFactor returns the configured uncertainty spread.
func (e *Estimator) RangeFactor() float64 { return e.rangeFactor }

// EstimateStep computes the savings estimate for one assessed step.
// Zero team size or cost is a valid degenerate input yielding a zero
// range. Negative or non-finite numeric inputs are rejected.
func (e *Estimator) EstimateStep(in StepInput) (model.StepSavingsEstimate, error) {
	if err := validateInput(in); err != nil {
		return model.StepSavingsEstimate{}, err
	}

	potential := AutomationPotential(in.Maturity, in.Step.AIOpportunity.Impact)
	mid := in.TeamSize * in.CapacityWeight * potential * in.CostPerPerson

	est := model.StepSavingsEstimate{
		StepID:              in.Step.ID,
		StepTitle:           in.Step.Title,
		StepNumber:          in.Step.StepNumber,
		Maturity:            in.Maturity,
		CapacityWeight:      in.CapacityWeight,
		AutomationPotential: potential,
		Savings: model.SavingsRange{
			Low:  mid * (1 - e.rangeFactor),
			Mid:  mid,
			High: mid * (1 + e.rangeFactor),
		},
		TopTool: in.TopTool,
	}
	if est.Savings.Low < 0 {
		est.Savings.Low = 0
	}
	return est, nil
}

func validateInput(in StepInput) error {
	if in.TeamSize < 0 || math.IsNaN(in.TeamSize) || math.IsInf(in.TeamSize, 0) {
		return eris.Errorf("savings: invalid team size %v", in.TeamSize)
	}
	if in.CostPerPerson < 0 || math.IsNaN(in.CostPerPerson) || math.IsInf(in.CostPerPerson, 0) {
		return eris.Errorf("savings: invalid cost per person %v", in.CostPerPerson)
	}
	if in.CapacityWeight < 0 || in.CapacityWeight > 1 || math.IsNaN(in.CapacityWeight) {
		return eris.Errorf("savings: capacity weight %v out of [0,1]", in.CapacityWeight)
	}
	if !in.Maturity.Valid() {
		return eris.Errorf("savings: unknown maturity %q", in.Maturity)
	}
	return nil
}

// Total sums step estimates elementwise. Intermediate values are never
// rounded; rounding is presentation-time only.
func Total(estimates []model.StepSavingsEstimate) model.SavingsRange {
	var total model.SavingsRange
	for _, est := range estimates {
		total = total.Add(est.Savings)
	}
	return total
}

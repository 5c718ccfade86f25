// Package report assembles engagement findings from the pure core
// components and renders them for delivery (text tables, XLSX
// workbooks, export rows).
package report

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/lighthouise/engine/internal/capacity"
	"github.com/lighthouise/engine/internal/catalog"
	"github.com/lighthouise/engine/internal/diagnostic"
	"github.com/lighthouise/engine/internal/fit"
	"github.com/lighthouise/engine/internal/model"
	"github.com/lighthouise/engine/internal/savings"
)

// Builder orchestrates the core for one engagement at a time. It holds
// only immutable catalog state and is safe for concurrent use.
type Builder struct {
	catalog    *catalog.Catalog
	scorer     *fit.Scorer
	classifier *diagnostic.Classifier
}

// NewBuilder creates a Builder over the given catalog.
func NewBuilder(c *catalog.Catalog) *Builder {
	return &Builder{
		catalog:    c,
		scorer:     fit.NewScorer(c),
		classifier: diagnostic.NewClassifier(),
	}
}

// Intake is the full input for one engagement assessment.
type Intake struct {
	Context       model.CompanyContext   `json:"context" yaml:"context"`
	Processes     []model.ProcessAnswers `json:"processes" yaml:"processes"`
	PainPoints    string                 `json:"pain_points,omitempty" yaml:"pain_points,omitempty"`
	CostPerPerson float64                `json:"cost_per_person,omitempty" yaml:"cost_per_person,omitempty"`
	RangeFactor   float64                `json:"range_factor,omitempty" yaml:"range_factor,omitempty"`
}

// Build computes the full findings for an engagement. Intake overrides
// take precedence over the supplied default assumptions.
func (b *Builder) Build(intake Intake, defaults model.Assumptions) (*model.EngagementFindings, error) {
	assumptions := defaults
	if intake.CostPerPerson > 0 {
		assumptions.CostPerPerson = intake.CostPerPerson
	}
	if intake.RangeFactor > 0 {
		assumptions.RangeFactor = intake.RangeFactor
	}
	if assumptions.CostPerPerson < 0 {
		return nil, eris.Errorf("report: negative cost per person %v", assumptions.CostPerPerson)
	}

	estimator := savings.NewEstimator(assumptions.RangeFactor)
	assumptions.RangeFactor = estimator.RangeFactor()

	findings := &model.EngagementFindings{
		Context:           intake.Context,
		Diagnostic:        b.classifier.Classify(intake.Context, intake.PainPoints),
		FindingsByProcess: make(map[string]*model.ProcessFindings, len(intake.Processes)),
		Assumptions:       assumptions,
	}

	for _, pa := range intake.Processes {
		pf, err := b.buildProcess(pa, intake.Context, estimator, assumptions.CostPerPerson)
		if err != nil {
			return nil, err
		}
		findings.FindingsByProcess[pa.WorkflowID] = pf
		findings.GrandTotal = findings.GrandTotal.Add(pf.TotalSavings)
	}

	zap.L().Info("report: findings built",
		zap.String("company", intake.Context.CompanyName),
		zap.Int("processes", len(findings.FindingsByProcess)),
		zap.Float64("total_mid", findings.GrandTotal.Mid),
	)

	return findings, nil
}

// buildProcess computes findings for one assessed process: catalog
// steps -> capacity weights -> fit ranking -> savings. Steps without a
// maturity answer are unassessed and excluded.
func (b *Builder) buildProcess(pa model.ProcessAnswers, ctx model.CompanyContext, estimator *savings.Estimator, costPerPerson float64) (*model.ProcessFindings, error) {
	wf, ok := b.catalog.Workflow(pa.WorkflowID)
	if !ok {
		return nil, eris.Errorf("report: unknown workflow %q", pa.WorkflowID)
	}
	if pa.TeamSize < 0 {
		return nil, eris.Errorf("report: negative team size %v for %q", pa.TeamSize, pa.WorkflowID)
	}

	category := model.ToolCategory(wf.ProcessID)
	weights := capacity.Weights(wf.Steps)

	answered := make(map[string]model.Maturity, len(pa.Answers))
	for _, a := range pa.Answers {
		answered[a.StepID] = a.Maturity
	}

	pf := &model.ProcessFindings{
		ProcessName:    wf.Name,
		TeamSize:       pa.TeamSize,
		TotalStepCount: len(wf.Steps),
	}

	for _, step := range wf.Steps {
		maturity, ok := answered[step.ID]
		if !ok {
			continue
		}

		var topTool *model.TopTool
		if category.Valid() {
			topTool = b.scorer.TopToolForStep(step.ID, category, &ctx, ctx.ERP)
		}

		est, err := estimator.EstimateStep(savings.StepInput{
			Step:           step,
			Maturity:       maturity,
			TeamSize:       pa.TeamSize,
			CostPerPerson:  costPerPerson,
			CapacityWeight: weights[step.ID],
			TopTool:        topTool,
		})
		if err != nil {
			return nil, eris.Wrapf(err, "report: estimate step %q", step.ID)
		}
		pf.StepEstimates = append(pf.StepEstimates, est)
	}

	pf.AssessedStepCount = len(pf.StepEstimates)
	pf.TotalSavings = savings.Total(pf.StepEstimates)
	return pf, nil
}

package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lighthouise/engine/internal/catalog"
	"github.com/lighthouise/engine/internal/model"
)

var testWorkflows = []byte(`
workflows:
  - id: ap
    name: Accounts Payable
    function_id: finance
    process_id: ap
    steps:
      - id: invoice-capture
        title: Invoice Capture
        step_number: 1
        ai_opportunity: {impact: high}
      - id: approval-routing
        title: Approval Routing
        step_number: 2
        ai_opportunity: {impact: medium}
`)

var testTools = []byte(`
tools:
  - id: alpha
    name: Alpha
    vendor: Alpha Inc
    category: ap
    company_sizes: [mid-market, enterprise]
    sub_sectors: [saas]
    erp_compatibility: {netsuite: native}
    fit_scores: {invoice-capture: 90}
    overall_fit_score: 70
  - id: beta
    name: Beta
    vendor: Beta Corp
    category: ap
    company_sizes: [smb, mid-market]
    overall_fit_score: 85
  - id: gamma
    name: Gamma
    vendor: Gamma LLC
    category: ap
    company_sizes: [enterprise]
    sub_sectors: [fintech]
    fit_scores: {invoice-capture: 85}
    overall_fit_score: 60
  - id: delta
    name: Delta
    vendor: Delta Co
    category: fpa
    overall_fit_score: 95
`)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.LoadFrom(testWorkflows, testTools)
	require.NoError(t, err)
	return cat
}

func TestGradeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score int
		want  Grade
	}{
		{score: 100, want: GradeBestFit},
		{score: 80, want: GradeBestFit},
		{score: 79, want: GradeGoodFit},
		{score: 50, want: GradeGoodFit},
		{score: 49, want: GradeLimited},
		{score: 0, want: GradeLimited},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeFor(tt.score), "score %d", tt.score)
	}
}

func TestEffectiveScore(t *testing.T) {
	t.Parallel()

	tool := model.Tool{
		FitScores:       map[string]int{"invoice-capture": 90},
		OverallFitScore: 70,
	}

	assert.Equal(t, 90, EffectiveScore(&tool, "invoice-capture"))
	assert.Equal(t, 70, EffectiveScore(&tool, "approval-routing"))

	bare := model.Tool{}
	assert.Equal(t, 0, EffectiveScore(&bare, "invoice-capture"))
}

func TestToolsForStep(t *testing.T) {
	t.Parallel()
	scorer := NewScorer(testCatalog(t))

	t.Run("ranked by effective score descending", func(t *testing.T) {
		ranked := scorer.ToolsForStep("invoice-capture", model.CategoryAP, nil, "")
		require.Len(t, ranked, 3)
		// alpha 90 (step score), gamma 85 (step score), beta 85 (overall).
		assert.Equal(t, "alpha", ranked[0].Tool.ID)
		assert.Equal(t, 90, ranked[0].EffectiveScore)
		assert.Equal(t, GradeBestFit, ranked[0].Grade)
	})

	t.Run("tie falls back to catalog order", func(t *testing.T) {
		ranked := scorer.ToolsForStep("invoice-capture", model.CategoryAP, nil, "")
		require.Len(t, ranked, 3)
		// beta (index 1) and gamma (index 2) both score 85; beta wins.
		assert.Equal(t, "beta", ranked[1].Tool.ID)
		assert.Equal(t, "gamma", ranked[2].Tool.ID)
	})

	t.Run("sub-sector match breaks score ties", func(t *testing.T) {
		ctx := &model.CompanyContext{SubSector: "fintech"}
		ranked := scorer.ToolsForStep("invoice-capture", model.CategoryAP, ctx, "")
		require.Len(t, ranked, 3)
		// gamma serves fintech, beta does not; both score 85.
		assert.Equal(t, "gamma", ranked[1].Tool.ID)
		assert.True(t, ranked[1].SubSectorMatch)
		assert.Equal(t, "beta", ranked[2].Tool.ID)
	})

	t.Run("size match breaks remaining ties", func(t *testing.T) {
		ctx := &model.CompanyContext{CompanySize: model.SizeEnterprise}
		ranked := scorer.ToolsForStep("invoice-capture", model.CategoryAP, ctx, "")
		require.Len(t, ranked, 3)
		assert.Equal(t, "gamma", ranked[1].Tool.ID)
		assert.True(t, ranked[1].SizeMatch)
	})

	t.Run("erp compatibility annotated when declared", func(t *testing.T) {
		ranked := scorer.ToolsForStep("invoice-capture", model.CategoryAP, nil, "netsuite")
		require.Len(t, ranked, 3)
		require.NotNil(t, ranked[0].ERPCompat)
		assert.Equal(t, model.ERPNative, *ranked[0].ERPCompat)
		// Tools without declared compatibility stay in the ranking.
		assert.Nil(t, ranked[1].ERPCompat)
	})

	t.Run("other categories excluded", func(t *testing.T) {
		ranked := scorer.ToolsForStep("invoice-capture", model.CategoryAP, nil, "")
		for _, rt := range ranked {
			assert.Equal(t, model.CategoryAP, rt.Tool.Category)
		}
	})

	t.Run("empty category yields empty slice", func(t *testing.T) {
		ranked := scorer.ToolsForStep("invoice-capture", model.CategoryClose, nil, "")
		assert.Empty(t, ranked)
	})
}

func TestTopToolForStep(t *testing.T) {
	t.Parallel()
	scorer := NewScorer(testCatalog(t))

	top := scorer.TopToolForStep("invoice-capture", model.CategoryAP, nil, "")
	require.NotNil(t, top)
	assert.Equal(t, "Alpha", top.Name)
	assert.Equal(t, 90, top.FitScore)

	assert.Nil(t, scorer.TopToolForStep("invoice-capture", model.CategoryClose, nil, ""))
}

func TestGroupScore(t *testing.T) {
	t.Parallel()

	tool := model.Tool{
		FitScores:       map[string]int{"a": 90, "b": 81},
		OverallFitScore: 70,
	}

	tests := []struct {
		name    string
		stepIDs []string
		want    int
	}{
		{name: "mean of step scores", stepIDs: []string{"a", "b"}, want: 86},
		{name: "overall fills missing steps", stepIDs: []string{"a", "missing"}, want: 80},
		{name: "single step", stepIDs: []string{"b"}, want: 81},
		{name: "no steps", stepIDs: nil, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupScore(&tool, tt.stepIDs))
		})
	}
}

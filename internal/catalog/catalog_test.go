package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lighthouise/engine/internal/model"
)

func TestLoadEmbedded(t *testing.T) {
	t.Parallel()

	cat, err := Load()
	require.NoError(t, err)

	// Listing excludes workflows with no steps; direct lookup does not.
	for _, w := range cat.Workflows() {
		assert.NotEmpty(t, w.Steps, "workflow %s", w.ID)
	}

	payroll, ok := cat.Workflow("payroll")
	require.True(t, ok)
	assert.Empty(t, payroll.Steps)

	_, ok = cat.Workflow("treasury")
	assert.False(t, ok)

	ap, ok := cat.Workflow("ap")
	require.True(t, ok)
	require.NotEmpty(t, ap.Steps)
	assert.Equal(t, 1, ap.Steps[0].StepNumber)

	assert.NotEmpty(t, cat.Tools())
	for _, category := range []model.ToolCategory{
		model.CategoryAP, model.CategoryAR, model.CategoryFPA, model.CategoryClose,
	} {
		assert.NotEmpty(t, cat.ToolsByCategory(category), "category %s", category)
	}
}

func TestWorkflowStep(t *testing.T) {
	t.Parallel()

	cat, err := Load()
	require.NoError(t, err)

	step, ok := cat.WorkflowStep("ap", "invoice-capture")
	require.True(t, ok)
	assert.Equal(t, "invoice-capture", step.ID)

	_, ok = cat.WorkflowStep("ap", "nonexistent-step")
	assert.False(t, ok)

	_, ok = cat.WorkflowStep("nonexistent-workflow", "invoice-capture")
	assert.False(t, ok)
}

func TestToolsByIDs(t *testing.T) {
	t.Parallel()

	cat, err := Load()
	require.NoError(t, err)

	t.Run("preserves input order", func(t *testing.T) {
		tools := cat.ToolsByIDs([]string{"tipalti", "stampli"})
		require.Len(t, tools, 2)
		assert.Equal(t, "tipalti", tools[0].ID)
		assert.Equal(t, "stampli", tools[1].ID)
	})

	t.Run("drops unknown ids silently", func(t *testing.T) {
		tools := cat.ToolsByIDs([]string{"stampli", "no-such-tool", "blackline"})
		require.Len(t, tools, 2)
		assert.Equal(t, "stampli", tools[0].ID)
		assert.Equal(t, "blackline", tools[1].ID)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, cat.ToolsByIDs(nil))
	})
}

func TestToolOrder(t *testing.T) {
	t.Parallel()

	cat, err := Load()
	require.NoError(t, err)

	first := cat.Tools()[0]
	assert.Equal(t, 0, cat.ToolOrder(first.ID))
	assert.Equal(t, len(cat.Tools()), cat.ToolOrder("unknown-tool"))
}

func TestERPCompatibility(t *testing.T) {
	t.Parallel()

	tool := model.Tool{
		ERPCompatibility: map[string]model.ERPLevel{"netsuite": model.ERPNative},
	}

	level, ok := ERPCompatibility(&tool, "netsuite")
	require.True(t, ok)
	assert.Equal(t, model.ERPNative, level)

	level, ok = ERPCompatibility(&tool, "NetSuite")
	require.True(t, ok)
	assert.Equal(t, model.ERPNative, level)

	_, ok = ERPCompatibility(&tool, "sap")
	assert.False(t, ok)

	_, ok = ERPCompatibility(&tool, "")
	assert.False(t, ok)

	bare := model.Tool{}
	_, ok = ERPCompatibility(&bare, "netsuite")
	assert.False(t, ok)
}

func TestLoadFromValidation(t *testing.T) {
	t.Parallel()

	validTools := []byte(`
tools:
  - id: alpha
    name: Alpha
    category: ap
    overall_fit_score: 70
`)

	tests := []struct {
		name      string
		workflows string
		tools     string
		wantErr   string
	}{
		{
			name: "gap in step numbering",
			workflows: `
workflows:
  - id: ap
    name: AP
    steps:
      - {id: a, title: A, step_number: 1, ai_opportunity: {impact: high}}
      - {id: b, title: B, step_number: 3, ai_opportunity: {impact: low}}
`,
			wantErr: "numbered 3, expected 2",
		},
		{
			name: "numbering not one-based",
			workflows: `
workflows:
  - id: ap
    name: AP
    steps:
      - {id: a, title: A, step_number: 0, ai_opportunity: {impact: high}}
`,
			wantErr: "numbered 0, expected 1",
		},
		{
			name: "unknown impact",
			workflows: `
workflows:
  - id: ap
    name: AP
    steps:
      - {id: a, title: A, step_number: 1, ai_opportunity: {impact: severe}}
`,
			wantErr: "unknown impact",
		},
		{
			name: "duplicate step id",
			workflows: `
workflows:
  - id: ap
    name: AP
    steps:
      - {id: a, title: A, step_number: 1, ai_opportunity: {impact: high}}
      - {id: a, title: B, step_number: 2, ai_opportunity: {impact: low}}
`,
			wantErr: "duplicate step id",
		},
		{
			name: "duplicate workflow id",
			workflows: `
workflows:
  - {id: ap, name: AP, steps: []}
  - {id: ap, name: AP again, steps: []}
`,
			wantErr: "duplicate workflow id",
		},
		{
			name:      "duplicate tool id",
			workflows: "workflows: []",
			tools: `
tools:
  - {id: alpha, name: Alpha, category: ap}
  - {id: alpha, name: Alpha again, category: ap}
`,
			wantErr: "duplicate tool id",
		},
		{
			name:      "unknown tool category",
			workflows: "workflows: []",
			tools: `
tools:
  - {id: alpha, name: Alpha, category: payroll}
`,
			wantErr: "unknown category",
		},
		{
			name:      "fit score out of range",
			workflows: "workflows: []",
			tools: `
tools:
  - {id: alpha, name: Alpha, category: ap, overall_fit_score: 101}
`,
			wantErr: "out of range",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tools := validTools
			if tt.tools != "" {
				tools = []byte(tt.tools)
			}
			_, err := LoadFrom([]byte(tt.workflows), tools)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromEmptyCatalog(t *testing.T) {
	t.Parallel()

	cat, err := LoadFrom([]byte("workflows: []"), []byte("tools: []"))
	require.NoError(t, err)
	assert.Empty(t, cat.Workflows())
	assert.Empty(t, cat.Tools())
}

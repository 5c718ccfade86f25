package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lighthouise/engine/internal/model"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	c := NewClassifier()

	tests := []struct {
		name string
		ctx  model.CompanyContext
		want string
	}{
		{
			name: "exact technology enterprise",
			ctx:  model.CompanyContext{Industry: "Technology", CompanySize: model.SizeEnterprise},
			want: "platform-enterprise",
		},
		{
			name: "exact technology startup",
			ctx:  model.CompanyContext{Industry: "Technology", CompanySize: model.SizeStartup},
			want: "scaling-software",
		},
		{
			name: "industry wildcard when size unmapped",
			ctx:  model.CompanyContext{Industry: "Professional Services", CompanySize: model.SizeStartup},
			want: "billable-hours-firm",
		},
		{
			name: "manufacturing falls through to industry entry",
			ctx:  model.CompanyContext{Industry: "Manufacturing", CompanySize: model.SizeStartup},
			want: "margin-pressured-manufacturer",
		},
		{
			name: "size wildcard for unmapped industry",
			ctx:  model.CompanyContext{Industry: "Agriculture", CompanySize: model.SizeEnterprise},
			want: "scaled-org",
		},
		{
			name: "small size wildcard",
			ctx:  model.CompanyContext{Industry: "Agriculture", CompanySize: model.SizeSMB},
			want: "lean-org",
		},
		{
			name: "default when nothing matches",
			ctx:  model.CompanyContext{Industry: "Agriculture", CompanySize: model.CompanySize("unknown")},
			want: "general-finance-org",
		},
		{
			name: "default for empty context",
			ctx:  model.CompanyContext{},
			want: "general-finance-org",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.ctx, "")
			assert.Equal(t, tt.want, got.CompanyArchetype)
			assert.NotEmpty(t, got.ArchetypeDescription)
			assert.NotEmpty(t, got.Challenges)
			assert.NotEmpty(t, got.PriorityAreas)
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	t.Parallel()
	c := NewClassifier()

	ctx := model.CompanyContext{Industry: "Technology", CompanySize: model.SizeMidMarket}
	first := c.Classify(ctx, "notes")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Classify(ctx, "notes"))
	}
}

func TestClassifyPainPointNotes(t *testing.T) {
	t.Parallel()
	c := NewClassifier()
	ctx := model.CompanyContext{Industry: "Technology", CompanySize: model.SizeEnterprise}

	// Notes are carried through but never change the archetype.
	plain := c.Classify(ctx, "")
	noted := c.Classify(ctx, "close takes three weeks")
	assert.Equal(t, "", plain.PainPointNotes)
	assert.Equal(t, "close takes three weeks", noted.PainPointNotes)
	assert.Equal(t, plain.CompanyArchetype, noted.CompanyArchetype)
	assert.Equal(t, plain.PriorityAreas, noted.PriorityAreas)
}

func TestPriorityAreasRankedAndMapped(t *testing.T) {
	t.Parallel()
	c := NewClassifier()

	processIDs := map[string]bool{"ap": true, "ar": true, "fpa": true, "close": true, "payroll": true}

	contexts := []model.CompanyContext{
		{Industry: "Technology", CompanySize: model.SizeEnterprise},
		{Industry: "Technology", CompanySize: model.SizeSMB},
		{Industry: "Manufacturing", CompanySize: model.SizeMidMarket},
		{Industry: "Distribution", CompanySize: model.SizeMidMarket},
		{Industry: "Financial Services", CompanySize: model.SizeEnterprise},
		{Industry: "Healthcare", CompanySize: model.SizeSMB},
		{Industry: "Professional Services", CompanySize: model.SizeMidMarket},
		{},
	}
	for _, ctx := range contexts {
		diag := c.Classify(ctx, "")
		require.NotEmpty(t, diag.PriorityAreas, "context %+v", ctx)
		for i, p := range diag.PriorityAreas {
			assert.Equal(t, i+1, p.Rank, "archetype %s", diag.CompanyArchetype)
			assert.True(t, processIDs[p.ProcessID],
				"archetype %s references unknown process %q", diag.CompanyArchetype, p.ProcessID)
			assert.NotEmpty(t, p.Rationale)
		}
	}
}

func TestClassifyCopiesTableSlices(t *testing.T) {
	t.Parallel()
	c := NewClassifier()
	ctx := model.CompanyContext{Industry: "Technology", CompanySize: model.SizeEnterprise}

	first := c.Classify(ctx, "")
	first.Challenges[0].Title = "mutated"
	first.PriorityAreas[0].Rationale = "mutated"

	second := c.Classify(ctx, "")
	assert.NotEqual(t, "mutated", second.Challenges[0].Title)
	assert.NotEqual(t, "mutated", second.PriorityAreas[0].Rationale)
}

// Package fit ranks vendor tools against workflow steps. The ranking
// blends a tool's step-level fit score with company-context matching
// (sub-sector, company size) and surfaces ERP compatibility alongside
// each ranked result.
package fit

import (
	"math"
	"sort"

	"github.com/lighthouise/engine/internal/catalog"
	"github.com/lighthouise/engine/internal/model"
)

// Grade bands an effective fit score for display.
type Grade string

const (
	GradeBestFit Grade = "best-fit"
	GradeGoodFit Grade = "good-fit"
	GradeLimited Grade = "limited"
)

// GradeFor returns the display band for a 0-100 fit score.
func GradeFor(score int) Grade {
	switch {
	case score >= 80:
		return GradeBestFit
	case score >= 50:
		return GradeGoodFit
	default:
		return GradeLimited
	}
}

// RankedTool is one entry of a per-step tool ranking.
type RankedTool struct {
	Tool           model.Tool      `json:"tool"`
	EffectiveScore int             `json:"effective_score"`
	Grade          Grade           `json:"grade"`
	SubSectorMatch bool            `json:"sub_sector_match"`
	SizeMatch      bool            `json:"size_match"`
	ERPCompat      *model.ERPLevel `json:"erp_compatibility,omitempty"`
}

// Scorer ranks catalog tools for workflow steps.
type Scorer struct {
	catalog *catalog.Catalog
}

// NewScorer creates a Scorer over the given catalog.
func NewScorer(c *catalog.Catalog) *Scorer {
	return &Scorer{catalog: c}
}

// EffectiveScore resolves a tool's fit score for a step: the sparse
// per-step score when present, else the overall score, else zero.
func EffectiveScore(t *model.Tool, stepID string) int {
	if s, ok := t.FitScores[stepID]; ok {
		return s
	}
	return t.OverallFitScore
}

// ToolsForStep returns the tools of a category ranked for a step,
// best first. The comparator chain is: effective score descending,
// then sub-sector match, then company-size match, then catalog
// insertion order. Context and ERP are optional; absence of ERP data
// never excludes a tool.
func (s *Scorer) ToolsForStep(stepID string, category model.ToolCategory, ctx *model.CompanyContext, erp string) []RankedTool {
	tools := s.catalog.ToolsByCategory(category)
	ranked := make([]RankedTool, 0, len(tools))

	for i := range tools {
		t := tools[i]
		rt := RankedTool{
			Tool:           t,
			EffectiveScore: EffectiveScore(&t, stepID),
		}
		rt.Grade = GradeFor(rt.EffectiveScore)
		if ctx != nil {
			if ctx.SubSector != "" {
				rt.SubSectorMatch = t.ServesSubSector(ctx.SubSector)
			}
			if ctx.CompanySize != "" {
				rt.SizeMatch = t.SupportsSize(ctx.CompanySize)
			}
		}
		if level, ok := catalog.ERPCompatibility(&t, erp); ok {
			rt.ERPCompat = &level
		}
		ranked = append(ranked, rt)
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		ra, rb := ranked[a], ranked[b]
		if ra.EffectiveScore != rb.EffectiveScore {
			return ra.EffectiveScore > rb.EffectiveScore
		}
		if ra.SubSectorMatch != rb.SubSectorMatch {
			return ra.SubSectorMatch
		}
		if ra.SizeMatch != rb.SizeMatch {
			return ra.SizeMatch
		}
		return s.catalog.ToolOrder(ra.Tool.ID) < s.catalog.ToolOrder(rb.Tool.ID)
	})

	return ranked
}

// TopToolForStep returns the best-ranked tool for a step, or nil when
// the category has no tools.
func (s *Scorer) TopToolForStep(stepID string, category model.ToolCategory, ctx *model.CompanyContext, erp string) *model.TopTool {
	ranked := s.ToolsForStep(stepID, category, ctx, erp)
	if len(ranked) == 0 {
		return nil
	}
	return &model.TopTool{
		Name:     ranked[0].Tool.Name,
		FitScore: ranked[0].EffectiveScore,
	}
}

// GroupScore aggregates a tool's fit across the steps of a capability
// group: the arithmetic mean of per-step effective scores, rounded to
// the nearest integer. Zero steps yield zero.
func GroupScore(t *model.Tool, stepIDs []string) int {
	if len(stepIDs) == 0 {
		return 0
	}
	var sum float64
	for _, id := range stepIDs {
		sum += float64(EffectiveScore(t, id))
	}
	return int(math.Round(sum / float64(len(stepIDs))))
}

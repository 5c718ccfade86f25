// Package diagnostic maps company attributes to an archetype, a set of
// predictable challenges, and ranked priority process areas. The
// mapping is an explicit finite lookup table with an ordered fallback
// chain; classification never fails.
package diagnostic

import (
	"go.uber.org/zap"

	"github.com/lighthouise/engine/internal/model"
)

// Archetype is one row of the classification table.
type Archetype struct {
	Name          string
	Description   string
	Challenges    []model.Challenge
	PriorityAreas []model.PriorityArea
}

// tableKey identifies an (industry, size) pair. Empty fields act as
// wildcards in the fallback chain.
type tableKey struct {
	Industry string
	Size     model.CompanySize
}

// Classifier resolves company contexts against the archetype table.
type Classifier struct {
	table        map[tableKey]*Archetype
	defaultEntry *Archetype
}

// NewClassifier builds a Classifier over the built-in archetype table.
func NewClassifier() *Classifier {
	c := &Classifier{table: make(map[tableKey]*Archetype)}
	for i := range archetypes {
		a := &archetypes[i]
		for _, k := range archetypeKeys[a.Name] {
			c.table[k] = a
		}
	}
	c.defaultEntry = &defaultArchetype
	return c
}

// Classify returns the best-effort diagnostic for a company context.
// Pain-point text is carried opaquely on the result for downstream
// narrative use; it never affects the deterministic computation.
// Fallback chain: exact (industry, size) -> industry any-size ->
// size-only generic -> default.
func (c *Classifier) Classify(ctx model.CompanyContext, painPointText string) model.CompanyDiagnostic {
	a := c.resolve(ctx)

	zap.L().Debug("diagnostic: classified company",
		zap.String("company", ctx.CompanyName),
		zap.String("industry", ctx.Industry),
		zap.String("size", string(ctx.CompanySize)),
		zap.String("archetype", a.Name),
	)

	diag := model.CompanyDiagnostic{
		CompanyArchetype:     a.Name,
		ArchetypeDescription: a.Description,
		Challenges:           append([]model.Challenge(nil), a.Challenges...),
		PriorityAreas:        append([]model.PriorityArea(nil), a.PriorityAreas...),
		PainPointNotes:       painPointText,
	}
	return diag
}

func (c *Classifier) resolve(ctx model.CompanyContext) *Archetype {
	if a, ok := c.table[tableKey{Industry: ctx.Industry, Size: ctx.CompanySize}]; ok {
		return a
	}
	if a, ok := c.table[tableKey{Industry: ctx.Industry}]; ok {
		return a
	}
	if a, ok := c.table[tableKey{Size: ctx.CompanySize}]; ok {
		return a
	}
	return c.defaultEntry
}

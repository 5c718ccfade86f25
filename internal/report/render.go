package report

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lighthouise/engine/internal/model"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// Currency formats a dollar amount for display, rounding to whole
// dollars. Rounding happens here only; computed values stay exact.
func Currency(v float64) string {
	return usd.Sprintf("$%.0f", v)
}

// RenderText renders engagement findings as a plain-text report for
// CLI output.
func RenderText(f *model.EngagementFindings) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Engagement Findings: %s\n", f.Context.CompanyName)
	fmt.Fprintf(&b, "Archetype: %s\n", f.Diagnostic.CompanyArchetype)
	fmt.Fprintf(&b, "%s\n\n", f.Diagnostic.ArchetypeDescription)

	if len(f.Diagnostic.PriorityAreas) > 0 {
		b.WriteString("Priority areas:\n")
		for _, pa := range f.Diagnostic.PriorityAreas {
			fmt.Fprintf(&b, "  %d. %s: %s\n", pa.Rank, pa.ProcessID, pa.Rationale)
		}
		b.WriteString("\n")
	}

	for _, id := range sortedProcessIDs(f.FindingsByProcess) {
		pf := f.FindingsByProcess[id]
		fmt.Fprintf(&b, "%s (%d of %d steps assessed, team of %g)\n",
			pf.ProcessName, pf.AssessedStepCount, pf.TotalStepCount, pf.TeamSize)
		for _, est := range pf.StepEstimates {
			tool := "-"
			if est.TopTool != nil {
				tool = fmt.Sprintf("%s (%d)", est.TopTool.Name, est.TopTool.FitScore)
			}
			fmt.Fprintf(&b, "  %d. %-38s %-14s %s - %s   top tool: %s\n",
				est.StepNumber, est.StepTitle, est.Maturity,
				Currency(est.Savings.Low), Currency(est.Savings.High), tool)
		}
		fmt.Fprintf(&b, "  Total: %s - %s (mid %s)\n\n",
			Currency(pf.TotalSavings.Low), Currency(pf.TotalSavings.High), Currency(pf.TotalSavings.Mid))
	}

	fmt.Fprintf(&b, "Grand total: %s - %s (mid %s)\n",
		Currency(f.GrandTotal.Low), Currency(f.GrandTotal.High), Currency(f.GrandTotal.Mid))
	fmt.Fprintf(&b, "Assumptions: %s per person/year, ±%.0f%% range\n",
		Currency(f.Assumptions.CostPerPerson), f.Assumptions.RangeFactor*100)

	return b.String()
}

func sortedProcessIDs(m map[string]*model.ProcessFindings) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

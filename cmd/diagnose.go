package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/lighthouise/engine/internal/diagnostic"
	"github.com/lighthouise/engine/internal/model"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Classify a company into a finance-org archetype",
	Long: `Maps an industry and company-size pair to a diagnostic archetype
with likely challenges and priority areas. Unmatched pairs fall back
through industry-only and size-only entries before the general default.

Examples:
  diagnose --industry Technology --size enterprise
  diagnose --industry Manufacturing --size mid-market --pain-points "slow close"`,
	RunE: runDiagnose,
}

func init() {
	f := diagnoseCmd.Flags()
	f.String("industry", "", "company industry")
	f.String("size", "", "company size (startup, smb, mid-market, enterprise)")
	f.String("sub-sector", "", "industry sub-sector")
	f.String("pain-points", "", "free-text pain point notes")
	f.Bool("json", false, "emit JSON instead of text")

	rootCmd.AddCommand(diagnoseCmd)
}

func runDiagnose(cmd *cobra.Command, _ []string) error {
	industry, _ := cmd.Flags().GetString("industry")
	size, _ := cmd.Flags().GetString("size")
	subSector, _ := cmd.Flags().GetString("sub-sector")
	painPoints, _ := cmd.Flags().GetString("pain-points")
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx := model.CompanyContext{
		Industry:    industry,
		SubSector:   subSector,
		CompanySize: model.CompanySize(size),
	}

	diag := diagnostic.NewClassifier().Classify(ctx, painPoints)

	if asJSON {
		out, err := json.MarshalIndent(diag, "", "  ")
		if err != nil {
			return eris.Wrap(err, "encode diagnostic")
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Archetype: %s\n\n%s\n", diag.CompanyArchetype, diag.ArchetypeDescription)
	if len(diag.Challenges) > 0 {
		fmt.Println("\nLikely challenges:")
		for _, c := range diag.Challenges {
			fmt.Printf("  - %s: %s\n", c.Title, c.Description)
		}
	}
	if len(diag.PriorityAreas) > 0 {
		fmt.Println("\nPriority areas:")
		for _, p := range diag.PriorityAreas {
			fmt.Printf("  %d. %s: %s\n", p.Rank, p.ProcessID, p.Rationale)
		}
	}
	return nil
}

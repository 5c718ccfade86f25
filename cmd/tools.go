package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/lighthouise/engine/internal/catalog"
	"github.com/lighthouise/engine/internal/fit"
	"github.com/lighthouise/engine/internal/model"
)

var toolsCmd = &cobra.Command{
	Use:   "tools [id]",
	Short: "List vendor tools or rank them for a workflow step",
	Long: `Without arguments, lists the vendor catalog. With --step, ranks tools
for that step by effective fit score, strongest first. A tool ID prints
one tool's full profile.

Examples:
  tools
  tools --category ap
  tools --step invoice-capture --category ap --size mid-market --erp netsuite
  tools stampli`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTools,
}

func init() {
	f := toolsCmd.Flags()
	f.String("category", "", "filter by tool category (ap, ar, fpa, close)")
	f.String("step", "", "rank tools for this workflow step")
	f.String("erp", "", "ERP system for compatibility annotation")
	f.String("size", "", "company size for fit tie-breaking")
	f.String("sub-sector", "", "sub-sector for fit tie-breaking")

	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	if len(args) == 1 {
		return showTool(w, cat, args[0])
	}

	categoryFlag, _ := cmd.Flags().GetString("category")
	stepID, _ := cmd.Flags().GetString("step")

	if stepID != "" {
		category := model.ToolCategory(categoryFlag)
		if !category.Valid() {
			return eris.New("cmd: --step requires a valid --category")
		}

		erp, _ := cmd.Flags().GetString("erp")
		size, _ := cmd.Flags().GetString("size")
		subSector, _ := cmd.Flags().GetString("sub-sector")

		var ctx *model.CompanyContext
		if size != "" || subSector != "" {
			ctx = &model.CompanyContext{
				CompanySize: model.CompanySize(size),
				SubSector:   subSector,
			}
		}

		ranked := fit.NewScorer(cat).ToolsForStep(stepID, category, ctx, erp)
		fmt.Fprintln(w, "TOOL\tSCORE\tGRADE\tERP")
		for _, rt := range ranked {
			erpCol := "-"
			if rt.ERPCompat != nil {
				erpCol = string(*rt.ERPCompat)
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", rt.Tool.Name, rt.EffectiveScore, rt.Grade, erpCol)
		}
		return nil
	}

	tools := cat.Tools()
	if categoryFlag != "" {
		category := model.ToolCategory(categoryFlag)
		if !category.Valid() {
			return eris.Errorf("cmd: unknown category %q", categoryFlag)
		}
		tools = cat.ToolsByCategory(category)
	}

	fmt.Fprintln(w, "ID\tNAME\tVENDOR\tCATEGORY\tSIZES")
	for _, t := range tools {
		sizes := make([]string, len(t.CompanySizes))
		for i, s := range t.CompanySizes {
			sizes[i] = string(s)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Name, t.Vendor, t.Category, strings.Join(sizes, ","))
	}
	return nil
}

func showTool(w *tabwriter.Writer, cat *catalog.Catalog, id string) error {
	t, ok := cat.Tool(id)
	if !ok {
		return eris.Errorf("cmd: unknown tool %q", id)
	}

	fmt.Fprintf(w, "%s\t(%s, %s)\n\n", t.Name, t.Vendor, t.Category)
	fmt.Fprintf(w, "%s\n\n", t.Description)
	fmt.Fprintf(w, "Pricing:\t%s", t.Pricing.Model)
	if t.Pricing.StartingPrice != "" {
		fmt.Fprintf(w, " from %s", t.Pricing.StartingPrice)
	}
	fmt.Fprintln(w)
	if len(t.KeyFeatures) > 0 {
		fmt.Fprintf(w, "Features:\t%s\n", strings.Join(t.KeyFeatures, ", "))
	}
	if len(t.Integrations) > 0 {
		fmt.Fprintf(w, "Integrations:\t%s\n", strings.Join(t.Integrations, ", "))
	}
	if len(t.ERPCompatibility) > 0 {
		pairs := make([]string, 0, len(t.ERPCompatibility))
		for erp, level := range t.ERPCompatibility {
			pairs = append(pairs, fmt.Sprintf("%s=%s", erp, level))
		}
		sort.Strings(pairs)
		fmt.Fprintf(w, "ERP:\t%s\n", strings.Join(pairs, ", "))
	}
	return nil
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/lighthouise/engine/internal/capacity"
	"github.com/lighthouise/engine/internal/catalog"
)

var workflowsCmd = &cobra.Command{
	Use:   "workflows [id]",
	Short: "List workflow definitions or show one workflow's steps",
	Long: `Without arguments, lists every workflow that has at least one step.
With a workflow ID, prints its steps together with their impact and the
capacity weight each step would carry in an assessment.

Examples:
  workflows
  workflows ap`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWorkflows,
}

func init() {
	rootCmd.AddCommand(workflowsCmd)
}

func runWorkflows(_ *cobra.Command, args []string) error {
	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	if len(args) == 0 {
		fmt.Fprintln(w, "ID\tNAME\tSTEPS")
		for _, wf := range cat.Workflows() {
			fmt.Fprintf(w, "%s\t%s\t%d\n", wf.ProcessID, wf.Name, len(wf.Steps))
		}
		return nil
	}

	wf, ok := cat.Workflow(args[0])
	if !ok {
		return eris.Errorf("cmd: unknown workflow %q", args[0])
	}

	weights := capacity.Weights(wf.Steps)
	fmt.Fprintf(w, "%s (%s)\n\n", wf.Name, wf.ProcessID)
	fmt.Fprintln(w, "STEP\tID\tIMPACT\tWEIGHT")
	for _, step := range wf.Steps {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.3f\n",
			step.StepNumber, step.ID, step.AIOpportunity.Impact, weights[step.ID])
	}
	return nil
}

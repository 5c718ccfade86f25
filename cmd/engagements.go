package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/lighthouise/engine/internal/engagement"
	"github.com/lighthouise/engine/internal/model"
	"github.com/lighthouise/engine/pkg/notion"
)

var engagementsCmd = &cobra.Command{
	Use:   "engagements [id]",
	Short: "List saved engagement snapshots or show one",
	Long: `Without arguments, lists recent snapshots from the configured store.
With a snapshot ID, prints the full stored record as JSON.

Examples:
  engagements
  engagements --limit 10
  engagements 7f3c2a9e-1b4d-4f6a-9c8e-2d5b7a1f0e3c`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEngagements,
}

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a saved snapshot's findings to Notion",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	engagementsCmd.Flags().Int("limit", 50, "maximum snapshots to list")
	engagementsCmd.AddCommand(exportCmd)

	rootCmd.AddCommand(engagementsCmd)
}

func runEngagements(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := engagement.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	if len(args) == 1 {
		snap, err := store.Get(ctx, args[0])
		if err != nil {
			if eris.Is(err, engagement.ErrNotFound) {
				return eris.Errorf("cmd: no engagement %q", args[0])
			}
			return err
		}
		out, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return eris.Wrap(err, "encode snapshot")
		}
		fmt.Println(string(out))
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	snaps, err := store.List(ctx, limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tCOMPANY\tPROCESSES\tCREATED")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			s.ID, s.Context.CompanyName, len(s.PerProcessAnswers),
			s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if cfg.Notion.Token == "" {
		return eris.New("cmd: notion token is not configured")
	}

	store, err := engagement.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := store.Get(ctx, args[0])
	if err != nil {
		if eris.Is(err, engagement.ErrNotFound) {
			return eris.Errorf("cmd: no engagement %q", args[0])
		}
		return err
	}

	findings := &model.EngagementFindings{
		Context:           snap.Context,
		Diagnostic:        snap.Diagnostic,
		FindingsByProcess: snap.FindingsByProcess,
		Assumptions:       snap.Assumptions,
	}
	for _, pf := range findings.FindingsByProcess {
		findings.GrandTotal = findings.GrandTotal.Add(pf.TotalSavings)
	}

	exporter := notion.NewExporter(notion.NewClient(cfg.Notion.Token), cfg.Notion.FindingsDB)
	created, err := exporter.ExportFindings(ctx, findings)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d process pages for %s\n", created, snap.Context.CompanyName)
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/lighthouise/engine/internal/catalog"
	"github.com/lighthouise/engine/internal/engagement"
	"github.com/lighthouise/engine/internal/model"
	"github.com/lighthouise/engine/internal/report"
	"github.com/lighthouise/engine/pkg/edgar"
	"github.com/lighthouise/engine/pkg/llm"
)

var assessCmd = &cobra.Command{
	Use:   "assess <intake.yaml>",
	Short: "Run a full engagement assessment from an intake file",
	Long: `Computes engagement findings from a YAML intake file: diagnostic
archetype, per-step capacity weights, tool fit rankings, and low/mid/high
savings estimates per assessed process.

Enrichment (SEC EDGAR) and commentary (LLM) are fetched concurrently when
configured; either failing leaves the findings intact.

Examples:
  # Assess and print to stdout
  assess intake.yaml

  # Persist a snapshot and export an XLSX deliverable
  assess intake.yaml --save --xlsx findings.xlsx

  # Attach EDGAR revenue enrichment by CIK
  assess intake.yaml --cik 320193`,
	Args: cobra.ExactArgs(1),
	RunE: runAssess,
}

func init() {
	f := assessCmd.Flags()
	f.Bool("save", false, "persist an engagement snapshot")
	f.String("xlsx", "", "write findings workbook to this path")
	f.String("cik", "", "SEC CIK for revenue enrichment")
	f.Bool("commentary", false, "generate LLM commentary per process")

	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	intakePath := args[0]
	save, _ := cmd.Flags().GetBool("save")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")
	cik, _ := cmd.Flags().GetString("cik")
	withCommentary, _ := cmd.Flags().GetBool("commentary")

	raw, err := os.ReadFile(intakePath)
	if err != nil {
		return eris.Wrapf(err, "read intake %s", intakePath)
	}
	var intake report.Intake
	if err := yaml.Unmarshal(raw, &intake); err != nil {
		return eris.Wrap(err, "parse intake")
	}

	cat, err := catalog.Load()
	if err != nil {
		return err
	}
	builder := report.NewBuilder(cat)

	findings, err := builder.Build(intake, model.Assumptions{
		CostPerPerson: cfg.Assumptions.CostPerPerson,
		RangeFactor:   cfg.Assumptions.RangeFactor,
	})
	if err != nil {
		return err
	}

	annotateFindings(ctx, findings, cik, withCommentary)

	fmt.Print(report.RenderText(findings))

	if xlsxPath != "" {
		if err := report.WriteXLSX(findings, xlsxPath); err != nil {
			return err
		}
		fmt.Printf("\nWorkbook written to %s\n", xlsxPath)
	}

	if save {
		id, err := saveSnapshot(ctx, intake, findings)
		if err != nil {
			return err
		}
		fmt.Printf("Snapshot saved: %s\n", id)
	}

	return nil
}

// annotateFindings attaches optional enrichment and commentary. Both
// collaborators may fail or be unconfigured; findings stay valid
// either way.
func annotateFindings(ctx context.Context, findings *model.EngagementFindings, cik string, withCommentary bool) {
	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	g, gctx := errgroup.WithContext(fetchCtx)

	if cik != "" {
		g.Go(func() error {
			client, err := edgar.New(edgar.Options{
				BaseURL:        cfg.Edgar.BaseURL,
				UserAgent:      cfg.Edgar.UserAgent,
				RequestsPerSec: cfg.Edgar.RequestsPerSec,
				CacheTTL:       time.Duration(cfg.Edgar.CacheTTLHours) * time.Hour,
			})
			if err != nil {
				zap.L().Warn("assess: edgar client unavailable", zap.Error(err))
				return nil
			}
			enrich, err := client.CompanyFacts(gctx, cik)
			if err != nil {
				zap.L().Warn("assess: enrichment failed", zap.String("cik", cik), zap.Error(err))
				return nil
			}
			findings.Enrichment = enrich
			return nil
		})
	}

	if withCommentary && cfg.Anthropic.Key != "" {
		commentator, err := llm.New(llm.Options{
			APIKey:         cfg.Anthropic.Key,
			Model:          cfg.Anthropic.Model,
			MaxTokens:      cfg.Anthropic.MaxTokens,
			RequestsPerMin: cfg.Anthropic.RequestsPerMin,
		})
		if err != nil {
			zap.L().Warn("assess: commentary client unavailable", zap.Error(err))
		} else {
			for _, pf := range findings.FindingsByProcess {
				pf := pf
				g.Go(func() error {
					text, err := commentator.ProcessCommentary(gctx, findings.Context, pf)
					if err != nil {
						zap.L().Warn("assess: commentary failed",
							zap.String("process", pf.ProcessName), zap.Error(err))
						return nil
					}
					pf.Commentary = text
					return nil
				})
			}
		}
	}

	_ = g.Wait()
}

func saveSnapshot(ctx context.Context, intake report.Intake, findings *model.EngagementFindings) (string, error) {
	store, err := engagement.Open(ctx, cfg.Store)
	if err != nil {
		return "", err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return "", err
	}

	snap := &model.EngagementSnapshot{
		Context:           findings.Context,
		PerProcessAnswers: intake.Processes,
		Diagnostic:        findings.Diagnostic,
		FindingsByProcess: findings.FindingsByProcess,
		Assumptions:       findings.Assumptions,
	}
	if err := store.Save(ctx, snap); err != nil {
		return "", err
	}
	return snap.ID, nil
}

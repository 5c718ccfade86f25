package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lighthouise/engine/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "lighthouise",
	Short: "Finance process assessment and savings-estimation engine",
	Long: "Assesses a client's AP/AR/FP&A/close processes, estimates automation " +
		"savings per workflow step, ranks vendor tools by fit, and classifies the " +
		"company into a diagnostic archetype.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shivam27k/email-automation-bot/internal/config"
	"github.com/shivam27k/email-automation-bot/internal/observability"
)

var diagnosticsCommand = &cobra.Command{
	Use:   "diagnostics",
	Short: "Print a runtime environment snapshot",
	Long:  "Prints the effective environment state (dotenv loading, secret presence, toggles) without revealing any secret material. Useful for debugging misconfigured deployments.",
	RunE:  runDiagnosticsCmd,
}

var diagnosticsConfigPath string

func init() {
	diagnosticsCommand.Flags().StringVar(&diagnosticsConfigPath, "config", "", "Path to config.json file")

	rootCmd.AddCommand(diagnosticsCommand)
}

func runDiagnosticsCmd(_ *cobra.Command, _ []string) error {
	cfg := config.Default()
	if diagnosticsConfigPath != "" {
		loaded, err := config.Load(diagnosticsConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintDiagnostics(cfg.Diagnose(envFile, envLoaded))
	return nil
}

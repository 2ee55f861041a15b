package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spektr-org/salesdesk/config"
	"github.com/spektr-org/salesdesk/crm"
	"github.com/spektr-org/salesdesk/logger"
	"github.com/spektr-org/salesdesk/tui"
)

// ============================================================================
// SALESDESK CLI: Sales dashboard lists from the terminal
// ============================================================================

const version = "0.3.0"

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	appLog *logger.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:     "salesdesk",
	Short:   "Sales CRM dashboard: accounts, pipeline, quotations, campaigns, tasks",
	Version: version,
	Long: `salesdesk filters, sorts and summarizes the sales CRM collections.

Run without arguments to open the interactive dashboard. The view and
metrics commands print the same lists non-interactively, and view --file
runs the engine over any CSV export.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}

		// The dashboard owns the terminal; logs that would land on it are dropped.
		if isInteractive(cmd) && logsToTerminal(cfg.Logging) {
			appLog = logger.Nop()
			return nil
		}
		appLog, err = logger.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appLog != nil {
			_ = appLog.Sync()
		}
	},
	RunE: runTUI,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "salesdesk.yaml", "Path to YAML config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	pagesCmd.Flags().StringVarP(&viewFormat, "format", "f", formatTable, "Output format: json, pretty, table, csv")
	addListFlags(viewCmd)
	addListFlags(metricsCmd)
	viewCmd.Flags().StringVar(&viewFile, "file", "", "CSV file to view instead of a seeded list")
	discoverCmd.Flags().StringVar(&viewFile, "file", "", "CSV file to inspect (required)")
	_ = discoverCmd.MarkFlagRequired("file")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, err := tui.New(cfg, crm.SeedDataset(), appLog)
	if err != nil {
		return err
	}
	return tui.Run(ctx, m)
}

// isInteractive reports whether cmd opens the dashboard: the bare root or tui.
// It goes by position and name so rootCmd's own hooks can call it.
func isInteractive(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == tuiCmd.Name()
}

func logsToTerminal(c logger.Config) bool {
	if len(c.OutputPaths) == 0 {
		return true
	}
	return slices.Contains(c.OutputPaths, "stderr") || slices.Contains(c.OutputPaths, "stdout")
}

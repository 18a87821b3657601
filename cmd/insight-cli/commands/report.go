package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harshajxn/gecf-knowledge-insight/cmd/insight-cli/ui"
	"github.com/harshajxn/gecf-knowledge-insight/internal/config"
	"github.com/harshajxn/gecf-knowledge-insight/internal/domain"
	"github.com/harshajxn/gecf-knowledge-insight/internal/observability"
	"github.com/harshajxn/gecf-knowledge-insight/internal/report"
)

var (
	reportInputPath  string
	reportOutputPath string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compose a styled PDF report from selected summaries",
	Long: `Read a JSON array of {title, countries, summary, source} entries and
render them into a paginated PDF report.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportInputPath, "input", "i", "", "JSON file with report entries (required)")
	reportCmd.Flags().StringVarP(&reportOutputPath, "output", "o", "GECF_News_Report.pdf", "output PDF path")
	reportCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	data, err := os.ReadFile(reportInputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", reportInputPath, err)
	}
	var entries []domain.ReportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse %s: %w", reportInputPath, err)
	}

	logger := observability.NewLogger(observability.LogConfig{Level: "warn", Format: "console"})
	compositor := report.NewCompositor(cfg.Report.FontDir, cfg.Report.LogoPath, logger)

	sp := ui.NewSpinner("composing report")
	sp.Start()
	pdfBytes, err := compositor.Compose(entries)
	sp.Stop()
	if err != nil {
		return fmt.Errorf("compose report: %w", err)
	}

	if err := os.WriteFile(reportOutputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", reportOutputPath, err)
	}
	ui.Success("Report written to %s (%d entries)", reportOutputPath, len(entries))
	return nil
}

// Package commands implements the insight CLI commands.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harshajxn/gecf-knowledge-insight/cmd/insight-cli/ui"
)

var (
	cfgFile string
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "insight",
	Short: "GECF Knowledge Insight - summarize news PDFs from the command line",
	Long: `The insight CLI runs the document summarization pipeline locally:
extract text and images from PDF news documents, summarize each one with an
LLM, detect GECF country mentions, and compose selected summaries into a
styled PDF report.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		ui.Init(noColor)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harshajxn/gecf-knowledge-insight/cmd/insight-cli/ui"
	"github.com/harshajxn/gecf-knowledge-insight/internal/batch"
	"github.com/harshajxn/gecf-knowledge-insight/internal/config"
	"github.com/harshajxn/gecf-knowledge-insight/internal/domain"
	"github.com/harshajxn/gecf-knowledge-insight/internal/extract"
	"github.com/harshajxn/gecf-knowledge-insight/internal/imaging"
	"github.com/harshajxn/gecf-knowledge-insight/internal/llm"
	"github.com/harshajxn/gecf-knowledge-insight/internal/observability"
	"github.com/harshajxn/gecf-knowledge-insight/internal/pdf"
)

var processOutputPath string

var processCmd = &cobra.Command{
	Use:   "process <file.pdf> [file.pdf...]",
	Short: "Summarize one or more PDF news documents",
	Long:  "Run the extraction and summarization pipeline over the given PDF files and print the results.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processOutputPath, "output", "o", "", "write full results as JSON to this path")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Keep structured logs out of the interactive output.
	logger := observability.NewLogger(observability.LogConfig{Level: "error", Format: "console"})

	summarizer := llm.NewClient(llm.Config{
		APIKey:     cfg.LLM.APIKey,
		BaseURL:    cfg.LLM.BaseURL,
		Model:      cfg.LLM.Model,
		Timeout:    cfg.LLM.RequestTimeout,
		MaxRetries: cfg.LLM.MaxRetries,
	})
	if !summarizer.HasAPIKey() {
		ui.Warning("GROQ_API_KEY is not set: summaries will fail, extraction still runs")
	}

	features := extract.NewFeatureExtractor(cfg.Countries(), cfg.Sources())
	encoder := imaging.NewEncoder(cfg.Extraction.ThumbnailWidth, cfg.Extraction.ThumbnailQuality)
	service := extract.NewService(features, summarizer, encoder, extract.Options{
		TempDir:  cfg.Extraction.TempDir,
		MaxBytes: cfg.Server.MaxUploadBytes,
		ImageFilter: pdf.ImageFilter{
			MinWidth:   cfg.Extraction.MinImageWidth,
			MinHeight:  cfg.Extraction.MinImageHeight,
			MarginBand: cfg.Extraction.MarginBand,
		},
	}, logger)

	uploads := make([]batch.Upload, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		uploads = append(uploads, batch.Upload{FileName: filepath.Base(path), Data: data})
	}

	ui.Section("Document Processing")

	bar := ui.NewProgressBar(int64(len(uploads)), "processing")
	records := make([]domain.DocumentRecord, 0, len(uploads))
	for _, up := range uploads {
		records = append(records, service.ProcessDocument(ctx, up.FileName, up.Data))
		bar.Add(1)
	}
	bar.Finish()

	for _, rec := range records {
		printRecord(rec)
	}

	if processOutputPath != "" {
		if err := writeResults(processOutputPath, records); err != nil {
			return err
		}
		ui.Success("Results written to %s", processOutputPath)
	}
	return nil
}

func printRecord(rec domain.DocumentRecord) {
	fmt.Println()
	if rec.Summary.Failed {
		ui.Error("%s: %s", rec.FileName, rec.Summary.Reason)
		return
	}
	ui.Success("%s", rec.FileName)
	ui.Info("Heading: %s", rec.Heading)
	if rec.Source != "Unknown" {
		ui.Info("Source: %s", rec.Source)
	}
	if len(rec.CountriesMentioned) > 0 {
		ui.Info("GECF countries: %s", strings.Join(rec.CountriesMentioned, ", "))
	}
	fmt.Println(rec.Summary.Text)
}

type resultJSON struct {
	FileName           string   `json:"fileName"`
	Heading            string   `json:"heading"`
	Source             string   `json:"source"`
	CountriesFound     []string `json:"countriesFound"`
	CountriesMentioned []string `json:"countriesMentioned"`
	Images             []string `json:"images"`
	Summary            string   `json:"summary"`
}

func writeResults(path string, records []domain.DocumentRecord) error {
	out := make([]resultJSON, len(records))
	for i, rec := range records {
		out[i] = resultJSON{
			FileName:           rec.FileName,
			Heading:            rec.Heading,
			Source:             rec.Source,
			CountriesFound:     rec.CountriesFound,
			CountriesMentioned: rec.CountriesMentioned,
			Images:             rec.Images,
			Summary:            rec.Summary.Display(),
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

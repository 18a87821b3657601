// Package main provides the insight API router setup.
package main

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/harshajxn/gecf-knowledge-insight/cmd/insight-api/handlers"
	"github.com/harshajxn/gecf-knowledge-insight/cmd/insight-api/middleware"
	"github.com/harshajxn/gecf-knowledge-insight/internal/batch"
	"github.com/harshajxn/gecf-knowledge-insight/internal/config"
	"github.com/harshajxn/gecf-knowledge-insight/internal/extract"
	"github.com/harshajxn/gecf-knowledge-insight/internal/imaging"
	"github.com/harshajxn/gecf-knowledge-insight/internal/llm"
	"github.com/harshajxn/gecf-knowledge-insight/internal/observability"
	"github.com/harshajxn/gecf-knowledge-insight/internal/pdf"
	"github.com/harshajxn/gecf-knowledge-insight/internal/report"
	"github.com/harshajxn/gecf-knowledge-insight/internal/stats"
)

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(cfg.Server.WriteTimeout))

	// Pipeline dependencies
	summarizer := llm.NewClient(llm.Config{
		APIKey:     cfg.LLM.APIKey,
		BaseURL:    cfg.LLM.BaseURL,
		Model:      cfg.LLM.Model,
		Timeout:    cfg.LLM.RequestTimeout,
		MaxRetries: cfg.LLM.MaxRetries,
	})

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

	orchestrator := batch.NewOrchestrator(service, cfg.Extraction.Workers, logger)
	compositor := report.NewCompositor(cfg.Report.FontDir, cfg.Report.LogoPath, logger)

	var tracker *stats.Tracker
	if cfg.Stats.Enabled {
		tracker = stats.NewTracker(cfg.Stats.Path, logger)
	}

	// Handlers
	documentsHandler := handlers.NewDocumentsHandler(logger, orchestrator, tracker, cfg.Server.MaxUploadBytes)
	reportHandler := handlers.NewReportHandler(logger, compositor)
	systemHandler := handlers.NewSystemHandler(tracker, cfg.Extraction.TempDir, summarizer.HasAPIKey())

	r.Get("/health", systemHandler.Health)
	r.Post("/process", documentsHandler.Process)
	r.Post("/generate-pdf", reportHandler.Generate)
	if tracker != nil {
		r.Get("/stats", systemHandler.Stats)
	}

	// Static assets and the landing page
	if info, err := os.Stat(cfg.Server.StaticDir); err == nil && info.IsDir() {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.Server.StaticDir)))
		r.Get("/static/*", fs.ServeHTTP)

		index := filepath.Join(cfg.Server.StaticDir, "index.html")
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			if tracker != nil {
				tracker.RecordVisit()
			}
			http.ServeFile(w, req, index)
		})
	}

	return r
}

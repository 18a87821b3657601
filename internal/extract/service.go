package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/harshajxn/gecf-knowledge-insight/internal/domain"
	"github.com/harshajxn/gecf-knowledge-insight/internal/imaging"
	"github.com/harshajxn/gecf-knowledge-insight/internal/observability"
	"github.com/harshajxn/gecf-knowledge-insight/internal/pdf"
)

// Summarizer produces a one-paragraph summary for extracted document text.
type Summarizer interface {
	Summarize(ctx context.Context, text string, countriesFound []string) (string, error)
}

// Options tunes the per-document pipeline.
type Options struct {
	TempDir     string
	MaxBytes    int64
	ImageFilter pdf.ImageFilter
}

// Service runs the full per-document pipeline: feature extraction, image
// extraction, summarization, and mention reconciliation.
type Service struct {
	features   *FeatureExtractor
	summarizer Summarizer
	encoder    *imaging.Encoder
	opts       Options
	logger     *observability.Logger
}

// NewService wires the per-document pipeline.
func NewService(features *FeatureExtractor, summarizer Summarizer, encoder *imaging.Encoder, opts Options, logger *observability.Logger) *Service {
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}
	return &Service{
		features:   features,
		summarizer: summarizer,
		encoder:    encoder,
		opts:       opts,
		logger:     logger.WithComponent("extract"),
	}
}

// ProcessDocument runs the pipeline for one uploaded file. Extraction
// failures are absorbed into the record's text so summarization still
// executes; the method never returns an error for per-document problems.
func (s *Service) ProcessDocument(ctx context.Context, fileName string, data []byte) domain.DocumentRecord {
	features, images := s.extract(fileName, data)

	record := domain.DocumentRecord{
		FileName:       fileName,
		Heading:        features.Heading,
		Source:         features.Source,
		FullText:       features.FullText,
		RelevantText:   features.RelevantText,
		CountriesFound: append([]string{}, features.Countries...),
		Images:         images,
	}

	promptText := features.RelevantText
	if promptText == "" {
		promptText = features.FullText
	}

	summaryText, err := s.summarizer.Summarize(ctx, promptText, features.Countries)
	if err != nil {
		s.logger.Warn().Str("file", fileName).Err(err).Msg("Summarization failed")
		record.Summary = domain.SummarizeFailure(err.Error())
		record.CountriesMentioned = []string{}
		return record
	}

	record.Summary = domain.OkSummary(summaryText)
	record.CountriesMentioned = Reconcile(features.Countries, summaryText)
	return record
}

// extract produces the feature tuple and thumbnails. Any failure yields the
// error-message-as-text tuple so downstream stages still run.
func (s *Service) extract(fileName string, data []byte) (domain.Features, []string) {
	if err := pdf.ValidateUpload(fileName, data, s.opts.MaxBytes); err != nil {
		s.logger.Warn().Str("file", fileName).Err(err).Msg("Upload rejected")
		return errorFeatures(fileName, err), []string{}
	}

	pages, err := s.pageTexts(fileName, data)
	if err != nil {
		s.logger.Warn().Str("file", fileName).Err(err).Msg("Text extraction failed")
		return errorFeatures(fileName, err), []string{}
	}

	features := s.features.Extract(pages, fileName)
	return features, s.thumbnails(fileName, data)
}

// pageTexts hands the bytes to the PDF parser through a uniquely named temp
// file, removed on all paths.
func (s *Service) pageTexts(fileName string, data []byte) ([]string, error) {
	tempPath := filepath.Join(s.opts.TempDir, fmt.Sprintf("insight-%s.pdf", uuid.NewString()))
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return nil, domain.IOError("write temp file", err)
	}
	defer os.Remove(tempPath)

	return pdf.PageTexts(tempPath)
}

// thumbnails extracts and encodes content images. Failures here never block
// the document: a parse failure yields an empty list, a per-image encode
// failure skips that image.
func (s *Service) thumbnails(fileName string, data []byte) []string {
	extracted, err := pdf.ExtractImages(data, s.opts.ImageFilter)
	if err != nil {
		s.logger.Debug().Str("file", fileName).Err(err).Msg("Image extraction failed")
		return []string{}
	}

	thumbs := make([]string, 0, len(extracted))
	for _, img := range extracted {
		b64, err := s.encoder.Thumbnail(img.Img)
		if err != nil {
			s.logger.Debug().Str("file", fileName).Int("page", img.PageNr).Err(err).Msg("Thumbnail encode failed")
			continue
		}
		thumbs = append(thumbs, b64)
	}
	return thumbs
}

// errorFeatures is the failure tuple: error message as text, filename as
// heading, unknown source, no countries.
func errorFeatures(fileName string, err error) domain.Features {
	return domain.Features{
		FullText: fmt.Sprintf("Error processing %s: %v", fileName, err),
		Heading:  fileName,
		Source:   "Unknown",
	}
}

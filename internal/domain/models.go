// Package domain defines the core types shared across the extraction pipeline.
package domain

// Summary is the tagged outcome of a summarization attempt. Failures are
// carried as data so one bad document never aborts a batch; the display
// string is produced only at the response boundary.
type Summary struct {
	Text   string
	Failed bool
	Reason string
}

// OkSummary wraps a successful summarization result.
func OkSummary(text string) Summary {
	return Summary{Text: text}
}

// SummarizeFailure records an LLM invocation failure.
func SummarizeFailure(detail string) Summary {
	return Summary{Failed: true, Reason: "Could not generate summary: " + detail}
}

// ProcessingFailure records a whole-document processing failure.
func ProcessingFailure(detail string) Summary {
	return Summary{Failed: true, Reason: "Error processing this document: " + detail}
}

// Display renders the summary for end users. Failure reasons are
// human-readable and safe to show directly.
func (s Summary) Display() string {
	if s.Failed {
		return s.Reason
	}
	return s.Text
}

// Features is the tuple produced by document feature extraction.
type Features struct {
	FullText     string
	RelevantText string
	Countries    []string
	Heading      string
	Source       string
}

// DocumentRecord is the per-file result of the extraction pipeline. Records
// are built fresh per request and never persisted.
type DocumentRecord struct {
	FileName           string
	Heading            string
	Source             string
	FullText           string
	RelevantText       string
	CountriesFound     []string
	Images             []string // base64-encoded JPEG thumbnails, page order
	Summary            Summary
	CountriesMentioned []string
}

// ErrorRecord builds the record used when a single file fails entirely:
// error text as the summary, empty country and image sets.
func ErrorRecord(fileName string, err error) DocumentRecord {
	return DocumentRecord{
		FileName:           fileName,
		Heading:            fileName,
		Source:             "Unknown",
		CountriesFound:     []string{},
		Images:             []string{},
		Summary:            ProcessingFailure(err.Error()),
		CountriesMentioned: []string{},
	}
}

// ReportEntry is one section of a composed PDF report.
type ReportEntry struct {
	Title     string   `json:"title"`
	Countries []string `json:"countries"`
	Summary   string   `json:"summary"`
	Source    string   `json:"source,omitempty"`
}

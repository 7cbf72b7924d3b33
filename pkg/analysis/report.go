package analysis

import "time"

// Report contains pre-computed views of a parse run.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Files summarizes each successfully parsed document.
	Files []FileSummary `json:"files,omitempty"`

	// Languages aggregates fence languages across all documents.
	Languages []LanguageUsage `json:"languages,omitempty"`

	// Errors lists the files that could not be parsed.
	Errors []ErrorEntry `json:"errors,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// FileSummary represents a single document in the report.
type FileSummary struct {
	Path       string         `json:"path"`
	Outline    []OutlineEntry `json:"outline,omitempty"`
	Links      []LinkEntry    `json:"links,omitempty"`
	Nodes      int            `json:"nodes"`
	LinkCount  int            `json:"linkCount"`
	ImageCount int            `json:"imageCount"`
	Fences     int            `json:"codeFences"`
	Languages  []string       `json:"languages,omitempty"`
	MaxDepth   int            `json:"maxDepth"`
}

// OutlineEntry represents one heading in a document outline.
type OutlineEntry struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Line  int    `json:"line"`
}

// LinkEntry represents one link, image or autolink occurrence.
type LinkEntry struct {
	Destination string `json:"destination"`
	Text        string `json:"text,omitempty"`
	Image       bool   `json:"image,omitempty"`
	Line        int    `json:"line"`
}

// ErrorEntry records a file that failed to parse.
type ErrorEntry struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// LanguageUsage contains aggregated data for a single fence language.
type LanguageUsage struct {
	Language string   `json:"language"`
	Fences   int      `json:"fences"`
	Files    []string `json:"files,omitempty"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files    int `json:"filesScanned"`
	Parsed   int `json:"filesParsed"`
	Errored  int `json:"filesErrored"`
	Headings int `json:"headings"`
	Links    int `json:"links"`
	Images   int `json:"images"`
	Fences   int `json:"codeFences"`
	MaxDepth int `json:"maxDepth"`
}

// HasErrors returns true if any file failed to parse.
func (t Totals) HasErrors() bool {
	return t.Errored > 0
}

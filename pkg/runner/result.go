package runner

import (
	"github.com/vmittal27/mkforge/pkg/inspect"
	"github.com/vmittal27/mkforge/pkg/tree"
)

// FileOutcome holds the parse products for a single file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Snapshot is the parsed document. Nil if the file could not be parsed.
	Snapshot *tree.Snapshot

	// Report is the document analysis for this file. Only populated when
	// Options.Inspect is set and parsing succeeded.
	Report *inspect.Report

	// Error is set if the file could not be read or decoded.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files successfully parsed.
	FilesParsed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// Nodes is the total node count across all analyzed files.
	Nodes int

	// Headings is the total heading count across all analyzed files.
	Headings int

	// Links is the total link count (images excluded) across all analyzed files.
	Links int

	// Languages maps fenced code block languages to occurrence counts,
	// merged across all analyzed files.
	Languages map[string]int

	// MaxDepth is the deepest nesting level seen in any analyzed file.
	MaxDepth int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed to parse.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		Languages: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesParsed++

	rep := outcome.Report
	if rep == nil {
		return
	}

	r.Stats.Headings += len(rep.Headings)
	r.Stats.Links += rep.LinkCount()
	for _, count := range rep.Counts {
		r.Stats.Nodes += count
	}
	for lang, count := range rep.Languages {
		r.Stats.Languages[lang] += count
	}
	if rep.MaxDepth > r.Stats.MaxDepth {
		r.Stats.MaxDepth = rep.MaxDepth
	}
}

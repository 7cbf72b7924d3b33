// Package analysis turns parse-run outcomes into a versioned report with
// per-file summaries, a cross-file language aggregation and totals.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/vmittal27/mkforge/pkg/inspect"
	"github.com/vmittal27/mkforge/pkg/runner"
	"github.com/vmittal27/mkforge/pkg/tree"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through the outcomes to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	langFences := make(map[string]int)
	langFiles := make(map[string]map[string]bool)

	for _, file := range result.Files {
		report.Totals.Files++
		displayPath := makeRelativePath(file.Path, opts.WorkingDir)

		if file.Error != nil {
			report.Totals.Errored++
			report.Errors = append(report.Errors, ErrorEntry{
				Path:    displayPath,
				Message: file.Error.Error(),
			})
			continue
		}
		report.Totals.Parsed++

		rep := file.Report
		if rep == nil && file.Snapshot != nil {
			// The runner only analyzes when asked to; fill the gap here.
			rep = inspect.Analyze(file.Snapshot)
		}
		if rep == nil {
			continue
		}

		report.Files = append(report.Files, summarize(displayPath, rep, opts))

		report.Totals.Headings += len(rep.Headings)
		links := rep.LinkCount()
		report.Totals.Links += links
		report.Totals.Images += len(rep.Links) - links
		report.Totals.Fences += rep.Counts[tree.NodeCodeBlock]
		if rep.MaxDepth > report.Totals.MaxDepth {
			report.Totals.MaxDepth = rep.MaxDepth
		}

		for lang, count := range rep.Languages {
			langFences[lang] += count
			if langFiles[lang] == nil {
				langFiles[lang] = make(map[string]bool)
			}
			langFiles[lang][displayPath] = true
		}
	}

	report.Languages = buildLanguages(langFences, langFiles, opts)

	return report
}

// summarize builds the report view of one analyzed document.
func summarize(path string, rep *inspect.Report, opts Options) FileSummary {
	summary := FileSummary{
		Path:       path,
		Nodes:      totalNodes(rep),
		LinkCount:  rep.LinkCount(),
		ImageCount: len(rep.Links) - rep.LinkCount(),
		Fences:     rep.Counts[tree.NodeCodeBlock],
		MaxDepth:   rep.MaxDepth,
	}

	for lang := range rep.Languages {
		summary.Languages = append(summary.Languages, lang)
	}
	slices.Sort(summary.Languages)

	if opts.IncludeOutline {
		for _, h := range rep.Headings {
			summary.Outline = append(summary.Outline, OutlineEntry{
				Level: h.Level,
				Text:  h.Text,
				Line:  h.Line,
			})
		}
	}

	if opts.IncludeLinks {
		for _, l := range rep.Links {
			summary.Links = append(summary.Links, LinkEntry{
				Destination: l.Destination,
				Text:        l.Text,
				Image:       l.Image,
				Line:        l.Line,
			})
		}
	}

	return summary
}

// totalNodes sums the per-kind counts of one document.
func totalNodes(rep *inspect.Report) int {
	total := 0
	for _, count := range rep.Counts {
		total += count
	}
	return total
}

// buildLanguages constructs the Languages slice from accumulated data.
func buildLanguages(fences map[string]int, files map[string]map[string]bool, opts Options) []LanguageUsage {
	result := make([]LanguageUsage, 0, len(fences))
	for lang, count := range fences {
		usage := LanguageUsage{Language: lang, Fences: count}
		for f := range files[lang] {
			usage.Files = append(usage.Files, f)
		}
		slices.Sort(usage.Files)
		result = append(result, usage)
	}
	sortLanguageUsage(result, opts.SortBy, opts.SortDesc)
	return result
}

func sortLanguageUsage(usages []LanguageUsage, sortBy SortField, desc bool) {
	slices.SortFunc(usages, func(left, right LanguageUsage) int {
		switch sortBy {
		case SortByAlpha:
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(left.Language, right.Language)
		default: // SortByCount
			result := cmp.Compare(left.Fences, right.Fences)
			if desc {
				result = -result
			}
			if result == 0 {
				// Ties break alphabetically for determinism.
				result = cmp.Compare(left.Language, right.Language)
			}
			return result
		}
	})
}

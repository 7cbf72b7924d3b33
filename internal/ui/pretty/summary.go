package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/vmittal27/mkforge/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files parsed (7 headings, 12 links)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesErrored == 0 {
		parsedWord := wordFiles
		if stats.FilesParsed == 1 {
			parsedWord = wordFile
		}
		return s.Success.Render(fmt.Sprintf("%d %s parsed", stats.FilesParsed, parsedWord)) +
			s.Dim.Render(fmt.Sprintf(" (%d headings, %d links)", stats.Headings, stats.Links)) + "\n"
	}

	erroredWord := wordFiles
	if stats.FilesErrored == 1 {
		erroredWord = wordFile
	}

	parts := []string{
		fmt.Sprintf("%d of %d %s parsed", stats.FilesParsed, stats.FilesDiscovered, wordFiles),
		s.Error.Render(fmt.Sprintf("%d %s failed", stats.FilesErrored, erroredWord)),
	}

	if stats.FilesParsed > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d headings, %d links", stats.Headings, stats.Links)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	// Files
	builder.WriteString("  Files scanned:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")

	builder.WriteString("  Files parsed:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesParsed)) + "\n")

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	// Document contents
	builder.WriteString("  Nodes:             " +
		s.SummaryValue.Render(strconv.Itoa(stats.Nodes)) + "\n")
	builder.WriteString("  Headings:          " +
		s.SummaryValue.Render(strconv.Itoa(stats.Headings)) + "\n")
	builder.WriteString("  Links:             " +
		s.SummaryValue.Render(strconv.Itoa(stats.Links)) + "\n")

	if len(stats.Languages) > 0 {
		builder.WriteString("  Fence languages:   " +
			s.SummaryValue.Render(formatLanguages(stats.Languages)) + "\n")
	}

	if stats.MaxDepth > 0 {
		builder.WriteString("  Max depth:         " +
			s.SummaryValue.Render(strconv.Itoa(stats.MaxDepth)) + "\n")
	}

	builder.WriteString("\n")

	// Overall status
	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Parse failed with errors"))
	case stats.FilesParsed == 0:
		builder.WriteString(s.Warning.Render("No files parsed"))
	default:
		builder.WriteString(s.Success.Render("Parse succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// formatLanguages renders a fence-language histogram as "go (5), python (2)",
// sorted by name.
func formatLanguages(languages map[string]int) string {
	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s (%d)", name, languages[name]))
	}
	return strings.Join(parts, ", ")
}

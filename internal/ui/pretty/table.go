package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vmittal27/mkforge/pkg/analysis"
	"github.com/vmittal27/mkforge/pkg/flavor"
)

// Table formatting constants.
const (
	enabledSymbol    = "+"
	tablePadding     = 2
	tableColumnCount = 3 // LANGUAGE, FENCES, FILES
	minLanguageWidth = 10
	minFencesWidth   = 6
	minFilesWidth    = 24
	heavySeparator   = "="
	defaultTermWidth = 100
)

// TableFormatter formats analysis views as styled tables.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// FormatLanguageTable renders the fence-language histogram as a styled table.
func (t *TableFormatter) FormatLanguageTable(usage []analysis.LanguageUsage) string {
	if len(usage) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(usage)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, u := range usage {
		builder.WriteString(t.formatRow(u, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatTotals(usage))
	builder.WriteString("\n")

	return builder.String()
}

// calculateColumnWidths determines column widths based on content.
func (t *TableFormatter) calculateColumnWidths(usage []analysis.LanguageUsage) columnWidths {
	widths := columnWidths{
		language: minLanguageWidth,
		fences:   minFencesWidth,
		files:    minFilesWidth,
	}

	for _, u := range usage {
		if len(u.Language) > widths.language {
			widths.language = len(u.Language)
		}
		if n := len(strconv.Itoa(u.Fences)); n > widths.fences {
			widths.fences = n
		}
		if n := len(joinFiles(u.Files)); n > widths.files {
			widths.files = n
		}
	}

	// Constrain to terminal width by narrowing the files column
	totalWidth := t.calculateTotalWidth(widths)
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.files = max(minFilesWidth, widths.files-excess)
	}

	return widths
}

type columnWidths struct {
	language int
	fences   int
	files    int
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.language + widths.fences + widths.files +
		(tablePadding * tableColumnCount)
}

// formatHeader formats the table header row.
func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %*s  %-*s",
		widths.language, "LANGUAGE",
		widths.fences, "FENCES",
		widths.files, "FILES",
	)
	return t.styles.TableHeader.Render(header)
}

// formatSeparator formats a separator line.
func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	sep := strings.Repeat(heavySeparator, t.calculateTotalWidth(widths))
	return t.styles.TableSeparator.Render(sep)
}

// formatRow formats a single table row. Cells are padded before styling
// so ANSI escapes do not skew the column widths.
func (t *TableFormatter) formatRow(u analysis.LanguageUsage, widths columnWidths) string {
	language := truncateString(u.Language, widths.language)
	files := truncateString(joinFiles(u.Files), widths.files)

	return fmt.Sprintf(" %s  %s  %s",
		t.styles.Bold.Render(fmt.Sprintf("%-*s", widths.language, language)),
		t.styles.TableCount.Render(fmt.Sprintf("%*d", widths.fences, u.Fences)),
		t.styles.Dim.Render(fmt.Sprintf("%-*s", widths.files, files)),
	)
}

// formatTotals formats a totals line for the language table.
func (t *TableFormatter) formatTotals(usage []analysis.LanguageUsage) string {
	var fences int
	files := make(map[string]struct{})
	for _, u := range usage {
		fences += u.Fences
		for _, f := range u.Files {
			files[f] = struct{}{}
		}
	}

	languageWord := "languages"
	if len(usage) == 1 {
		languageWord = "language"
	}
	fenceWord := "fences"
	if fences == 1 {
		fenceWord = "fence"
	}
	fileWord := wordFiles
	if len(files) == 1 {
		fileWord = wordFile
	}

	parts := []string{
		fmt.Sprintf("%d %s", len(usage), languageWord),
		t.styles.TableCount.Render(fmt.Sprintf("%d %s", fences, fenceWord)),
		fmt.Sprintf("in %d %s", len(files), fileWord),
	}
	return " " + strings.Join(parts, " | ")
}

// FormatFeatureTable renders a feature matrix, one column per flavor.
// Features appear in canonical display order.
func (t *TableFormatter) FormatFeatureTable(flavors []flavor.Flavor) string {
	if len(flavors) == 0 {
		return ""
	}

	flagNames := flavor.FlagNames()

	featureWidth := len("FEATURE")
	for _, name := range flagNames {
		if len(name) > featureWidth {
			featureWidth = len(name)
		}
	}

	flavorWidths := make([]int, len(flavors))
	for i, f := range flavors {
		flavorWidths[i] = len(f.Name())
	}

	var builder strings.Builder

	// Header
	header := fmt.Sprintf(" %-*s", featureWidth, "FEATURE")
	for i, f := range flavors {
		header += fmt.Sprintf("  %-*s", flavorWidths[i], strings.ToUpper(f.Name()))
	}
	builder.WriteString(t.styles.TableHeader.Render(header))
	builder.WriteString("\n")

	// Separator
	totalWidth := featureWidth + tablePadding
	for _, w := range flavorWidths {
		totalWidth += w + tablePadding
	}
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, totalWidth)))
	builder.WriteString("\n")

	// One row per feature
	for _, name := range flagNames {
		builder.WriteString(fmt.Sprintf(" %-*s", featureWidth, name))
		for i, f := range flavors {
			cell := " "
			if on, _ := f.Options().Get(name); on {
				cell = t.styles.TableCount.Render(enabledSymbol)
			}
			builder.WriteString(strings.Repeat(" ", tablePadding))
			builder.WriteString(cell)
			builder.WriteString(strings.Repeat(" ", flavorWidths[i]-1))
		}
		builder.WriteString("\n")
	}

	// Legend
	builder.WriteString(t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s = enabled", enabledSymbol),
	))
	builder.WriteString("\n")

	return builder.String()
}

// joinFiles renders a file list as a single table cell.
func joinFiles(files []string) string {
	return strings.Join(files, ", ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vmittal27/mkforge/internal/logging"
	"github.com/vmittal27/mkforge/internal/ui/pretty"
	"github.com/vmittal27/mkforge/pkg/analysis"
	"github.com/vmittal27/mkforge/pkg/flavor"
	"github.com/vmittal27/mkforge/pkg/parse"
	"github.com/vmittal27/mkforge/pkg/runner"
)

const formatText = "text"

type inspectFlags struct {
	format     string
	flavor     string
	flavorFile string
	ignore     []string
	jobs       int
	sort       string
	noOutline  bool
	noLinks    bool
}

func newInspectCommand() *cobra.Command {
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect [paths...]",
		Short: "Report document structure: outlines, links, and fence languages",
		Long:  inspectLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, flags)
		},
	}

	addInspectFlags(cmd, flags)

	return cmd
}

const inspectLongDescription = `Inspect Markdown files and report on their structure.

For each document, prints the heading outline with line numbers and the
inventory of links and images. Across all documents, aggregates fenced
code block languages into a usage table.

Inspection defaults to the GitHub flavor so that tables, task lists, and
autolinks in typical project documentation are recognized.

Examples:
  mkforge inspect                        # Inspect current directory
  mkforge inspect docs/ README.md        # Inspect specific paths
  mkforge inspect --sort alpha           # Sort languages alphabetically
  mkforge inspect --no-links             # Outlines only
  mkforge inspect --format json          # Machine-readable report`

func runInspect(cmd *cobra.Command, args []string, flags *inspectFlags) error {
	logger := logging.Default()

	switch flags.format {
	case formatText, formatJSON:
	default:
		return fmt.Errorf("%w: unknown format %q (expected text or json)",
			ErrBadArguments, flags.format)
	}

	sortBy := analysis.SortField(flags.sort)
	if !sortBy.IsValid() {
		return fmt.Errorf("%w: unknown sort %q (expected count or alpha)",
			ErrBadArguments, flags.sort)
	}

	fl, err := resolveFlavor(flags.flavor, flags.flavorFile)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	run := runner.New(parse.New(fl))

	result, err := run.Run(cmd.Context(), runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: flags.ignore,
		Jobs:         flags.jobs,
		Inspect:      true,
	})
	if err != nil {
		return errors.Join(errors.New("inspect run failed"), err)
	}

	logger.Debug("inspect run finished",
		logging.FieldFiles, len(result.Files),
		logging.FieldHeadings, result.Stats.Headings,
		logging.FieldLinks, result.Stats.Links,
	)

	report := analysis.Analyze(result, analysis.Options{
		IncludeOutline: !flags.noOutline,
		IncludeLinks:   !flags.noLinks,
		SortBy:         sortBy,
		SortDesc:       sortBy == analysis.SortByCount,
		WorkingDir:     workDir,
	})

	out := cmd.OutOrStdout()

	if flags.format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	} else {
		styles := stylesForCommand(cmd)
		renderInspectText(cmd, styles, result, report, flags, workDir)
	}

	if code := ExitCodeFromResult(result); code != ExitSuccess {
		return &ExitError{Code: code, Err: ErrFilesFailed}
	}

	return nil
}

func addInspectFlags(cmd *cobra.Command, flags *inspectFlags) {
	cmd.Flags().StringVar(&flags.format, "format", formatText, "output format: text, json")
	cmd.Flags().StringVar(&flags.flavor, "flavor", flavor.NameGitHub,
		"Markdown flavor: CommonMark, GitHub, or one defined in --flavor-file")
	cmd.Flags().StringVar(&flags.flavorFile, "flavor-file", "",
		"YAML file with additional flavor definitions")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.sort, "sort", string(analysis.SortByCount),
		"language table order: count, alpha")
	cmd.Flags().BoolVar(&flags.noOutline, "no-outline", false, "omit heading outlines")
	cmd.Flags().BoolVar(&flags.noLinks, "no-links", false, "omit link inventories")
}

func renderInspectText(
	cmd *cobra.Command,
	styles *pretty.Styles,
	result *runner.Result,
	report *analysis.Report,
	flags *inspectFlags,
	workDir string,
) {
	out := cmd.OutOrStdout()

	for _, outcome := range result.Files {
		path := displayPath(outcome.Path, workDir)

		if outcome.Error != nil {
			fmt.Fprint(out, styles.FormatParseError(path, outcome.Error))
			continue
		}

		fmt.Fprintln(out, styles.FormatFileHeader(path, totalNodes(outcome.Report)))

		if !flags.noOutline {
			fmt.Fprint(out, styles.FormatOutline(outcome.Report))
		}
		if !flags.noLinks {
			fmt.Fprint(out, styles.FormatLinks(outcome.Report))
		}

		fmt.Fprintln(out)
	}

	formatter := pretty.NewTableFormatter(styles, terminalWidth())
	if table := formatter.FormatLanguageTable(report.Languages); table != "" {
		fmt.Fprint(out, table)
		fmt.Fprintln(out)
	}

	fmt.Fprint(out, styles.FormatSummaryOneLine(result.Stats))
}

// terminalWidth reports the stdout width, or zero when stdout is not a
// terminal so the formatter falls back to its default.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}

	return width
}

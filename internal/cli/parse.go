package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmittal27/mkforge/internal/logging"
	"github.com/vmittal27/mkforge/internal/ui/pretty"
	"github.com/vmittal27/mkforge/pkg/analysis"
	"github.com/vmittal27/mkforge/pkg/flavor"
	"github.com/vmittal27/mkforge/pkg/inspect"
	"github.com/vmittal27/mkforge/pkg/parse"
	"github.com/vmittal27/mkforge/pkg/runner"
)

// ErrFilesFailed is returned when some files could not be parsed.
var ErrFilesFailed = errors.New("some files failed to parse")

// Output formats for the parse command.
const (
	formatTree    = "tree"
	formatJSON    = "json"
	formatSummary = "summary"
)

type parseFlags struct {
	format         string
	flavor         string
	flavorFile     string
	ignore         []string
	jobs           int
	followSymlinks bool
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Parse Markdown files into document trees",
		Long:  parseLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	addParseFlags(cmd, flags)

	return cmd
}

const parseLongDescription = `Parse Markdown files into document trees.

By default, parses all .md and .markdown files in the current directory
and subdirectories. Specify paths to parse specific files or directories.

The flavor selects the dialect: CommonMark parses plain CommonMark, while
GitHub enables the GFM extensions (tables, strikethrough, autolinks, raw
tag filtering, task lists). Additional flavors can be loaded from a YAML
definitions file.

Examples:
  mkforge parse                          # Parse current directory
  mkforge parse docs/                    # Parse a directory tree
  mkforge parse README.md                # Parse a single file
  mkforge parse --flavor GitHub          # Enable the GFM extensions
  mkforge parse --format json            # Output as JSON for tooling
  mkforge parse --format summary         # Aggregate statistics only
  mkforge parse --flavor-file defs.yaml --flavor Wiki`

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
	logger := logging.Default()

	switch flags.format {
	case formatTree, formatJSON, formatSummary:
	default:
		return fmt.Errorf("%w: unknown format %q (expected tree, json, or summary)",
			ErrBadArguments, flags.format)
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

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     runner.DefaultExtensions(),
		ExcludeGlobs:   flags.ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           flags.jobs,
		Inspect:        true,
	}

	logger.Debug("starting parse run",
		logging.FieldPaths, runOpts.EffectivePaths(),
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldFlavor, fl.Name(),
		logging.FieldFormat, flags.format,
		logging.FieldJobs, runOpts.Jobs,
	)

	start := time.Now()

	result, err := run.Run(cmd.Context(), runOpts)
	if err != nil {
		return errors.Join(errors.New("parse run failed"), err)
	}

	logger.Debug("parse run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldDuration, time.Since(start),
	)

	styles := stylesForCommand(cmd)
	out := cmd.OutOrStdout()

	switch flags.format {
	case formatTree:
		renderTrees(out, styles, result, workDir)
	case formatSummary:
		renderRunSummary(out, styles, result, workDir)
	case formatJSON:
		if err := renderRunJSON(out, result, workDir); err != nil {
			return err
		}
	}

	if code := ExitCodeFromResult(result); code != ExitSuccess {
		return &ExitError{Code: code, Err: ErrFilesFailed}
	}

	return nil
}

func addParseFlags(cmd *cobra.Command, flags *parseFlags) {
	cmd.Flags().StringVar(&flags.format, "format", formatTree,
		"output format: tree, json, summary")
	cmd.Flags().StringVar(&flags.flavor, "flavor", flavor.NameCommonMark,
		"Markdown flavor: CommonMark, GitHub, or one defined in --flavor-file")
	cmd.Flags().StringVar(&flags.flavorFile, "flavor-file", "",
		"YAML file with additional flavor definitions")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false,
		"traverse directory symlinks during discovery")
}

// renderTrees prints one styled tree per file, then a one-line run summary.
func renderTrees(out io.Writer, styles *pretty.Styles, result *runner.Result, workDir string) {
	for _, outcome := range result.Files {
		path := displayPath(outcome.Path, workDir)

		if outcome.Error != nil {
			fmt.Fprint(out, styles.FormatParseError(path, outcome.Error))
			continue
		}

		fmt.Fprintln(out, styles.FormatFileHeader(path, totalNodes(outcome.Report)))
		fmt.Fprint(out, styles.FormatTree(outcome.Snapshot))
		fmt.Fprintln(out)
	}

	fmt.Fprint(out, styles.FormatSummaryOneLine(result.Stats))
}

// renderRunSummary prints per-file errors followed by the aggregate block.
func renderRunSummary(out io.Writer, styles *pretty.Styles, result *runner.Result, workDir string) {
	for _, outcome := range result.Files {
		if outcome.Error != nil {
			fmt.Fprint(out, styles.FormatParseError(displayPath(outcome.Path, workDir), outcome.Error))
		}
	}

	fmt.Fprint(out, styles.FormatSummary(result.Stats))
}

func renderRunJSON(out io.Writer, result *runner.Result, workDir string) error {
	report := analysis.Analyze(result, analysis.Options{
		IncludeOutline: true,
		IncludeLinks:   true,
		SortBy:         analysis.SortByCount,
		SortDesc:       true,
		WorkingDir:     workDir,
	})

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return nil
}

// resolveFlavor looks up a flavor by name, consulting an optional YAML
// definitions file layered over the builtin registry.
func resolveFlavor(name, flavorFile string) (flavor.Flavor, error) {
	reg, err := loadRegistry(flavorFile)
	if err != nil {
		return flavor.Flavor{}, err
	}

	fl, ok := reg.Lookup(name)
	if !ok {
		return flavor.Flavor{}, fmt.Errorf("%w: unknown flavor %q (known: %s)",
			ErrBadArguments, name, strings.Join(reg.Names(), ", "))
	}

	return fl, nil
}

// loadRegistry builds a registry of the builtin flavors plus any defined in
// the given YAML file. A fresh registry per call keeps command runs from
// mutating global state.
func loadRegistry(flavorFile string) (*flavor.Registry, error) {
	reg := flavor.NewRegistry(flavor.CommonMark, flavor.GitHub)

	if flavorFile == "" {
		return reg, nil
	}

	data, err := os.ReadFile(flavorFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read flavor file: %v", ErrBadArguments, err)
	}

	if err := reg.LoadDefinitions(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadArguments, err)
	}

	return reg, nil
}

// stylesForCommand builds the styled output palette from the persistent
// color flag.
func stylesForCommand(cmd *cobra.Command) *pretty.Styles {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	return pretty.NewStyles(pretty.IsColorEnabled(colorMode, os.Stdout))
}

// displayPath shortens a path relative to the working directory when that
// makes it shorter to read.
func displayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}

	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}

	return rel
}

func totalNodes(rep *inspect.Report) int {
	if rep == nil {
		return 0
	}

	total := 0
	for _, count := range rep.Counts {
		total += count
	}

	return total
}

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmittal27/mkforge/internal/logging"
	"github.com/vmittal27/mkforge/internal/watch"
	"github.com/vmittal27/mkforge/pkg/flavor"
	"github.com/vmittal27/mkforge/pkg/parse"
	"github.com/vmittal27/mkforge/pkg/runner"
)

type watchFlags struct {
	flavor     string
	flavorFile string
	ignore     []string
	jobs       int
	debounce   time.Duration
	quiet      bool
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-parse Markdown files whenever they change",
		Long:  watchLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, flags)
		},
	}

	addWatchFlags(cmd, flags)

	return cmd
}

const watchLongDescription = `Watch Markdown files and re-parse them on every change.

Runs the parse pipeline once, then watches the given paths (directories
recursively) and reruns after each batch of changes. Bursts of events,
such as an editor writing several files, coalesce within the debounce
window into a single rerun. Stop with Ctrl-C.

Examples:
  mkforge watch                          # Watch current directory
  mkforge watch docs/ --flavor GitHub    # Watch with GFM extensions
  mkforge watch --debounce 2s            # Settle longer before rerunning
  mkforge watch --quiet                  # Report only files with errors`

func runWatch(cmd *cobra.Command, args []string, flags *watchFlags) error {
	logger := logging.Default()

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
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: flags.ignore,
		Jobs:         flags.jobs,
		Inspect:      true,
	}

	logger.Info("watching for changes",
		logging.FieldPaths, runOpts.EffectivePaths(),
		logging.FieldFlavor, fl.Name(),
		logging.FieldDebounce, flags.debounce,
	)

	styles := stylesForCommand(cmd)
	out := cmd.OutOrStdout()

	onResult := func(result *runner.Result, err error) {
		if err != nil {
			logger.Error("run failed", logging.FieldError, err)
			return
		}

		for _, outcome := range result.Files {
			if outcome.Error != nil {
				fmt.Fprint(out, styles.FormatParseError(displayPath(outcome.Path, workDir), outcome.Error))
			}
		}
		if !flags.quiet {
			fmt.Fprint(out, styles.FormatSummaryOneLine(result.Stats))
		}
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = logging.WithLogger(ctx, logger)

	watcher := watch.New(run, runOpts, flags.debounce, onResult)

	if err := watcher.Watch(ctx); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	logger.Info("watch stopped")

	return nil
}

func addWatchFlags(cmd *cobra.Command, flags *watchFlags) {
	cmd.Flags().StringVar(&flags.flavor, "flavor", flavor.NameGitHub,
		"Markdown flavor: CommonMark, GitHub, or one defined in --flavor-file")
	cmd.Flags().StringVar(&flags.flavorFile, "flavor-file", "",
		"YAML file with additional flavor definitions")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", watch.DefaultDebounce,
		"quiet period after the last change before rerunning")
	cmd.Flags().BoolVar(&flags.quiet, "quiet", false,
		"print only parse errors, no per-run summary")
}

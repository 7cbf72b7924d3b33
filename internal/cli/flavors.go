package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vmittal27/mkforge/internal/logging"
	"github.com/vmittal27/mkforge/internal/ui/pretty"
	"github.com/vmittal27/mkforge/pkg/flavor"
)

// definitionFilePermissions is the file mode for exported definition files
// (world-readable).
const definitionFilePermissions = 0644

const formatTable = "table"

type flavorsFlags struct {
	format     string
	flavorFile string
	exportYAML bool
	output     string
	force      bool
}

// flavorInfo represents a flavor in JSON output.
type flavorInfo struct {
	Name  string   `json:"name"`
	Flags []string `json:"flags,omitempty"`
}

func newFlavorsCommand() *cobra.Command {
	flags := &flavorsFlags{}

	cmd := &cobra.Command{
		Use:   "flavors",
		Short: "List registered Markdown flavors and their features",
		Long: `List registered Markdown flavors and the features each one enables.

The feature matrix shows one row per feature flag and one column per
flavor. Definitions loaded with --flavor-file appear alongside the
builtin CommonMark and GitHub flavors.

With --yaml, exports every flavor as a self-contained definitions
document instead, suitable as a starting point for --flavor-file.

Examples:
  mkforge flavors                         Show the feature matrix
  mkforge flavors --flavor-file defs.yaml Include custom definitions
  mkforge flavors --format json           Machine-readable list
  mkforge flavors --yaml                  Export definitions as YAML
  mkforge flavors --yaml -o flavors.yaml  Write a definitions file`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFlavors(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", formatTable,
		"output format: table, json")
	cmd.Flags().StringVar(&flags.flavorFile, "flavor-file", "",
		"YAML file with additional flavor definitions")
	cmd.Flags().BoolVar(&flags.exportYAML, "yaml", false,
		"export flavors as a YAML definitions document")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"write the YAML export to a file instead of stdout")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false,
		"overwrite an existing output file")

	return cmd
}

func runFlavors(cmd *cobra.Command, flags *flavorsFlags) error {
	reg, err := loadRegistry(flags.flavorFile)
	if err != nil {
		return err
	}

	if flags.exportYAML {
		return exportFlavorsYAML(cmd, reg, flags)
	}

	switch flags.format {
	case formatJSON:
		return outputFlavorsJSON(cmd, reg.All())
	case formatTable:
	default:
		return fmt.Errorf("%w: unknown format %q (expected table or json)",
			ErrBadArguments, flags.format)
	}

	styles := stylesForCommand(cmd)
	formatter := pretty.NewTableFormatter(styles, terminalWidth())

	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFeatureTable(reg.All()))

	return nil
}

// outputFlavorsJSON outputs flavors as a JSON array.
func outputFlavorsJSON(cmd *cobra.Command, flavors []flavor.Flavor) error {
	infos := make([]flavorInfo, 0, len(flavors))
	for _, f := range flavors {
		infos = append(infos, flavorInfo{
			Name:  f.Name(),
			Flags: f.Options().Enabled(),
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding flavors: %w", err)
	}
	return nil
}

// exportFlavorsYAML writes the registry as a definitions document, to
// stdout or to --output.
func exportFlavorsYAML(cmd *cobra.Command, reg *flavor.Registry, flags *flavorsFlags) error {
	data, err := reg.ExportDefinitions()
	if err != nil {
		return fmt.Errorf("export flavor definitions: %w", err)
	}

	if flags.output == "" {
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	}

	logger := logging.NewInteractive()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	if err := os.WriteFile(absPath, data, definitionFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("wrote flavor definitions", logging.FieldPath, flags.output)
	logger.Info("load them with --flavor-file on parse, inspect, or watch")

	return nil
}

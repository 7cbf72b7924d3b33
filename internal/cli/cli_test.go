package cli_test

import (
	"bytes"
	"testing"

	"github.com/vmittal27/mkforge/internal/cli"
)

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}

	cmd := cli.NewRootCommand(info)

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "mkforge" {
		t.Errorf("expected Use to be 'mkforge', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	expectedSubcommands := []string{"parse", "inspect", "flavors", "watch", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestParseCommandFlags(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)
	parseCmd, _, err := cmd.Find([]string{"parse"})
	if err != nil {
		t.Fatalf("parse command not found: %v", err)
	}

	expectedFlags := []string{
		"format",
		"flavor",
		"flavor-file",
		"ignore",
		"jobs",
		"follow-symlinks",
	}

	for _, flagName := range expectedFlags {
		flag := parseCmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected flag %q to exist on parse command", flagName)
		}
	}
}

func TestWatchCommandFlags(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)
	watchCmd, _, err := cmd.Find([]string{"watch"})
	if err != nil {
		t.Fatalf("watch command not found: %v", err)
	}

	expectedFlags := []string{"flavor", "flavor-file", "ignore", "jobs", "debounce", "quiet"}

	for _, flagName := range expectedFlags {
		flag := watchCmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected flag %q to exist on watch command", flagName)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	expectedFlags := []string{"debug", "color"}

	for _, flagName := range expectedFlags {
		flag := cmd.PersistentFlags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	}

	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	// Version command uses charmbracelet/log which writes to stdout directly,
	// so we just verify it doesn't error.
}

func TestParseCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)
	parseCmd, _, err := cmd.Find([]string{"parse"})
	if err != nil {
		t.Fatalf("parse command not found: %v", err)
	}

	// The parse command accepts arbitrary args (file paths).
	err = parseCmd.Args(parseCmd, []string{"file1.md", "file2.md", "docs/"})
	if err != nil {
		t.Errorf("parse command should accept arbitrary args, got error: %v", err)
	}
}

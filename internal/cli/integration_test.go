package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmittal27/mkforge/internal/cli"
)

// testMarkdownBasic exercises a heading and a paragraph, the smallest
// document with two block kinds.
const testMarkdownBasic = "# Heading\n\nSome content.\n"

func testBuildInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func writeMarkdown(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs the root command with the given args and returns combined
// output and the execution error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testBuildInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String() + stderr.String(), err
}

// TestIntegration_ParseTreeOutput tests the default tree rendering.
func TestIntegration_ParseTreeOutput(t *testing.T) {
	t.Parallel()

	mdFile := writeMarkdown(t, "test.md", testMarkdownBasic)

	output, err := execute(t, "parse", "--color", "never", mdFile)
	require.NoError(t, err)

	assert.Contains(t, output, "Document", "tree output should show the document root")
	assert.Contains(t, output, "Heading level=1", "tree output should show the heading with its level")
	assert.Contains(t, output, "Paragraph", "tree output should show the paragraph")
	assert.Contains(t, output, `"Some content."`, "tree output should show literal text")
	assert.Contains(t, output, "1 file parsed", "tree output should end with the run summary")
}

// TestIntegration_FlavorSelection tests that the flavor flag switches the
// GFM extensions on and off.
func TestIntegration_FlavorSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		flavor         string
		content        string
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:           "strikethrough literal under CommonMark",
			flavor:         "CommonMark",
			content:        "~~gone~~\n",
			wantContains:   []string{`"~~gone~~"`},
			wantNotContain: []string{"Strikethrough"},
		},
		{
			name:           "strikethrough node under GitHub",
			flavor:         "GitHub",
			content:        "~~gone~~\n",
			wantContains:   []string{"Strikethrough", `"gone"`},
			wantNotContain: []string{`"~~gone~~"`},
		},
		{
			name:           "pipe table stays a paragraph under CommonMark",
			flavor:         "CommonMark",
			content:        "| a | b |\n| - | - |\n| 1 | 2 |\n",
			wantContains:   []string{"Paragraph"},
			wantNotContain: []string{"Table"},
		},
		{
			name:         "pipe table parses under GitHub",
			flavor:       "GitHub",
			content:      "| a | b |\n| - | - |\n| 1 | 2 |\n",
			wantContains: []string{"Table", "TableRow", "TableCell"},
		},
		{
			name:           "task markers literal under CommonMark",
			flavor:         "CommonMark",
			content:        "- [x] done\n- [ ] todo\n",
			wantContains:   []string{"List bullet", "ListItem"},
			wantNotContain: []string{"task="},
		},
		{
			name:         "task markers recognized under GitHub",
			flavor:       "GitHub",
			content:      "- [x] done\n- [ ] todo\n",
			wantContains: []string{"task=checked", "task=unchecked"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mdFile := writeMarkdown(t, "test.md", tt.content)

			output, err := execute(t, "parse", "--flavor", tt.flavor, "--color", "never", mdFile)
			require.NoError(t, err)

			for _, want := range tt.wantContains {
				assert.Contains(t, output, want,
					"output should contain %q for flavor=%s", want, tt.flavor)
			}
			for _, notWant := range tt.wantNotContain {
				assert.NotContains(t, output, notWant,
					"output should not contain %q for flavor=%s", notWant, tt.flavor)
			}
		})
	}
}

// TestIntegration_ParseJSONOutput tests the machine-readable report.
func TestIntegration_ParseJSONOutput(t *testing.T) {
	t.Parallel()

	mdFile := writeMarkdown(t, "test.md", testMarkdownBasic)

	output, err := execute(t, "parse", "--format", "json", "--color", "never", mdFile)
	require.NoError(t, err)

	assert.Contains(t, output, `"files"`, "JSON output should include the files array")
	assert.Contains(t, output, `"outline"`, "JSON output should include per-file outlines")
	assert.Contains(t, output, `"Heading"`, "JSON outline should include the heading text")
	assert.Contains(t, output, `"summary"`, "JSON output should include run totals")
	assert.Contains(t, output, `"filesParsed": 1`, "JSON totals should count the parsed file")
}

// TestIntegration_ParseSummaryFormat tests the aggregate summary block.
func TestIntegration_ParseSummaryFormat(t *testing.T) {
	t.Parallel()

	mdFile := writeMarkdown(t, "test.md", testMarkdownBasic)

	output, err := execute(t, "parse", "--format", "summary", "--color", "never", mdFile)
	require.NoError(t, err)

	assert.Contains(t, output, "Summary", "summary format should show the Summary block")
	assert.Contains(t, output, "Files parsed:", "summary format should count parsed files")
	assert.Contains(t, output, "Headings:", "summary format should count headings")
	assert.Contains(t, output, "Parse succeeded", "summary format should show the status line")
}

// TestIntegration_ParseMissingFile tests that a nonexistent input path fails
// with an I/O exit code, never a tree.
func TestIntegration_ParseMissingFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "no-such-file.md")

	_, err := execute(t, "parse", "--color", "never", missing)
	require.Error(t, err, "parse of a missing file should fail")

	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(err),
		"missing input should map to the I/O exit code")
}

// TestIntegration_UnknownFlavor tests that an unrecognized flavor name is
// rejected before any parsing happens.
func TestIntegration_UnknownFlavor(t *testing.T) {
	t.Parallel()

	mdFile := writeMarkdown(t, "test.md", testMarkdownBasic)

	_, err := execute(t, "parse", "--flavor", "Imaginary", "--color", "never", mdFile)
	require.Error(t, err, "unknown flavor should be rejected")

	assert.Contains(t, err.Error(), "unknown flavor", "error should name the problem")
	assert.Contains(t, err.Error(), "Imaginary", "error should echo the requested name")
	assert.Equal(t, cli.ExitBadArguments, cli.ExitCodeFromError(err),
		"unknown flavor should map to the bad-arguments exit code")
}

// TestIntegration_FlavorFile tests custom dialects loaded as YAML data.
func TestIntegration_FlavorFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	defsFile := filepath.Join(tmpDir, "defs.yaml")
	defs := `flavors:
  - name: Wiki
    base: CommonMark
    enable: [strikethrough]
`
	require.NoError(t, os.WriteFile(defsFile, []byte(defs), 0644))

	mdFile := filepath.Join(tmpDir, "test.md")
	require.NoError(t, os.WriteFile(mdFile, []byte("~~gone~~ | not a table |\n"), 0644))

	output, err := execute(t, "parse",
		"--flavor-file", defsFile,
		"--flavor", "Wiki",
		"--color", "never",
		mdFile,
	)
	require.NoError(t, err)

	// The Wiki flavor enables strikethrough but not tables.
	assert.Contains(t, output, "Strikethrough", "custom flavor should enable strikethrough")
	assert.NotContains(t, output, "Table", "custom flavor should leave tables disabled")
}

// TestIntegration_FlavorsCommand tests the feature matrix and exports.
func TestIntegration_FlavorsCommand(t *testing.T) {
	t.Parallel()

	t.Run("table lists builtins", func(t *testing.T) {
		t.Parallel()

		output, err := execute(t, "flavors", "--color", "never")
		require.NoError(t, err)

		assert.Contains(t, output, "COMMONMARK", "matrix header should name the CommonMark column")
		assert.Contains(t, output, "GITHUB", "matrix header should name the GitHub column")
		assert.Contains(t, output, "strikethrough")
		assert.Contains(t, output, "tasklist")
	})

	t.Run("json lists enabled flags", func(t *testing.T) {
		t.Parallel()

		output, err := execute(t, "flavors", "--format", "json", "--color", "never")
		require.NoError(t, err)

		assert.Contains(t, output, `"name": "CommonMark"`)
		assert.Contains(t, output, `"name": "GitHub"`)
		assert.Contains(t, output, `"strikethrough"`)
	})

	t.Run("yaml export round-trips through flavor-file", func(t *testing.T) {
		t.Parallel()

		output, err := execute(t, "flavors", "--yaml", "--color", "never")
		require.NoError(t, err)

		assert.Contains(t, output, "flavors:")
		assert.Contains(t, output, "name: CommonMark")
		assert.Contains(t, output, "name: GitHub")

		// The export is itself a loadable definitions document, modulo the
		// duplicate builtin names, so spot-check the shape only.
		assert.True(t, strings.HasPrefix(strings.TrimSpace(output), "flavors:"),
			"export should start with the flavors key")
	})
}

// TestIntegration_InspectOutline tests the inspect command's outline and
// link inventory.
func TestIntegration_InspectOutline(t *testing.T) {
	t.Parallel()

	content := `# Title

Intro with a [link](https://example.com).

## Section

` + "```go\nfunc main() {}\n```\n"

	mdFile := writeMarkdown(t, "doc.md", content)

	output, err := execute(t, "inspect", "--color", "never", mdFile)
	require.NoError(t, err)

	assert.Contains(t, output, "# Title:1", "outline should show the level-1 heading with its line")
	assert.Contains(t, output, "## Section:5", "outline should show the level-2 heading with its line")
	assert.Contains(t, output, "-> https://example.com", "link inventory should show the destination")
	assert.Contains(t, output, "LANGUAGE", "language table should render its header")
	assert.Contains(t, output, "1 language", "language table totals should count the go fence")
}

// TestIntegration_InspectNoOutline tests suppressing report sections.
func TestIntegration_InspectNoOutline(t *testing.T) {
	t.Parallel()

	mdFile := writeMarkdown(t, "doc.md", "# Title\n\n[link](https://example.com)\n")

	output, err := execute(t, "inspect", "--no-outline", "--no-links", "--color", "never", mdFile)
	require.NoError(t, err)

	assert.NotContains(t, output, "# Title:1", "outline should be suppressed")
	assert.NotContains(t, output, "-> https://example.com", "links should be suppressed")
	assert.Contains(t, output, "1 file parsed", "summary line should remain")
}

// TestIntegration_ParseDirectory tests discovery over a directory tree with
// ignore patterns.
func TestIntegration_ParseDirectory(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "docs"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "vendor"), 0755))

	files := map[string]string{
		"README.md":      "# Readme\n",
		"docs/guide.md":  "# Guide\n",
		"vendor/skip.md": "# Skipped\n",
		"notes.txt":      "not markdown\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0644))
	}

	output, err := execute(t, "parse",
		"--ignore", "vendor/**",
		"--color", "never",
		tmpDir,
	)
	require.NoError(t, err)

	assert.Contains(t, output, "README.md")
	assert.Contains(t, output, "guide.md")
	assert.NotContains(t, output, "skip.md", "ignored directories should be excluded")
	assert.NotContains(t, output, "notes.txt", "non-Markdown files should be excluded")
	assert.Contains(t, output, "2 files parsed")
}

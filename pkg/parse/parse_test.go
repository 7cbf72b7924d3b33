package parse_test

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/vmittal27/mkforge/pkg/flavor"
	"github.com/vmittal27/mkforge/pkg/parse"
	"github.com/vmittal27/mkforge/pkg/tree"
)

func parseDoc(t *testing.T, f flavor.Flavor, src string) *tree.Snapshot {
	t.Helper()
	snap, err := parse.New(f).Parse(context.Background(), "test.md", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return snap
}

func checkDump(t *testing.T, f flavor.Flavor, src string, want []string) {
	t.Helper()
	snap := parseDoc(t, f, src)
	got := strings.TrimSuffix(tree.Dump(snap.Root), "\n")
	expected := strings.Join(want, "\n")
	if got != expected {
		t.Errorf("tree mismatch under %s\ninput:\n%q\ngot:\n%s\nwant:\n%s",
			f.Name(), src, got, expected)
	}
}

func TestParseHeadingAndParagraph(t *testing.T) {
	t.Parallel()

	want := []string{
		"Document",
		"  Heading level=1",
		`    Text "Heading"`,
		"  Paragraph",
		`    Text "Some content."`,
	}
	for _, f := range []flavor.Flavor{flavor.CommonMark, flavor.GitHub} {
		checkDump(t, f, "# Heading\n\nSome content.", want)
	}
}

func TestParseStrikethroughByFlavor(t *testing.T) {
	t.Parallel()

	src := "~~gone~~"

	checkDump(t, flavor.CommonMark, src, []string{
		"Document",
		"  Paragraph",
		`    Text "~~gone~~"`,
	})
	checkDump(t, flavor.GitHub, src, []string{
		"Document",
		"  Paragraph",
		"    Strikethrough",
		`      Text "gone"`,
	})
}

func TestParseTableByFlavor(t *testing.T) {
	t.Parallel()

	src := "a | b\n- | -\nx | y"

	checkDump(t, flavor.GitHub, src, []string{
		"Document",
		"  Table cols=2 align=[none,none]",
		"    TableRow header",
		"      TableCell",
		`        Text "a"`,
		"      TableCell",
		`        Text "b"`,
		"    TableRow",
		"      TableCell",
		`        Text "x"`,
		"      TableCell",
		`        Text "y"`,
	})

	// Without the extension the delimiter row reads as a list marker and the
	// last line continues the item's paragraph lazily.
	checkDump(t, flavor.CommonMark, src, []string{
		"Document",
		"  Paragraph",
		`    Text "a | b"`,
		"  List bullet='-' tight",
		"    ListItem",
		"      Paragraph",
		`        Text "| -"`,
		"        SoftBreak",
		`        Text "x | y"`,
	})
}

func TestParseTaskListByFlavor(t *testing.T) {
	t.Parallel()

	src := "- [x] done\n- [ ] todo"

	checkDump(t, flavor.GitHub, src, []string{
		"Document",
		"  List bullet='-' tight",
		"    ListItem task=checked",
		"      Paragraph",
		`        Text "done"`,
		"    ListItem task=unchecked",
		"      Paragraph",
		`        Text "todo"`,
	})

	checkDump(t, flavor.CommonMark, src, []string{
		"Document",
		"  List bullet='-' tight",
		"    ListItem",
		"      Paragraph",
		`        Text "[x] done"`,
		"    ListItem",
		"      Paragraph",
		`        Text "[ ] todo"`,
	})
}

func TestParseIdempotence(t *testing.T) {
	t.Parallel()

	src := "# T\n\npara *em* [l](/u)\n\n- a\n- b\n\n> quote\n\n```go\ncode\n```\n"
	first := tree.Dump(parseDoc(t, flavor.GitHub, src).Root)
	second := tree.Dump(parseDoc(t, flavor.GitHub, src).Root)
	if first != second {
		t.Errorf("parses differ:\n%s\nvs\n%s", first, second)
	}
}

func TestParseFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte("# Title\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := parse.ParseFile(context.Background(), parse.Request{Path: path, Flavor: flavor.GitHub})
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if snap.Path != path {
		t.Errorf("snapshot path %q, want %q", snap.Path, path)
	}
	if snap.Root.FirstChild == nil || snap.Root.FirstChild.Kind != tree.NodeHeading {
		t.Error("expected a heading at the top of the document")
	}
}

func TestParseFileMissing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent.md")
	snap, err := parse.New(flavor.CommonMark).ParseFile(context.Background(), path)
	if snap != nil {
		t.Error("missing file must not yield a snapshot")
	}

	var readErr *parse.ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("err = %v, want *ReadError", err)
	}
	if readErr.Path != path {
		t.Errorf("error path %q, want %q", readErr.Path, path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("cause must unwrap to fs.ErrNotExist")
	}
}

func TestParseEncoding(t *testing.T) {
	t.Parallel()

	t.Run("utf8 bom stripped", func(t *testing.T) {
		t.Parallel()
		snap := parseDoc(t, flavor.CommonMark, "\xEF\xBB\xBF# Hi")
		if !bytes.Equal(snap.Content, []byte("# Hi")) {
			t.Errorf("content %q, want bom stripped", snap.Content)
		}
		if snap.Root.FirstChild.Kind != tree.NodeHeading {
			t.Error("heading should survive the bom")
		}
	})

	t.Run("utf16 little endian", func(t *testing.T) {
		t.Parallel()
		snap := parseDoc(t, flavor.CommonMark, "\xFF\xFEh\x00i\x00")
		if !bytes.Equal(snap.Content, []byte("hi")) {
			t.Errorf("content %q, want %q", snap.Content, "hi")
		}
	})

	t.Run("utf16 big endian", func(t *testing.T) {
		t.Parallel()
		snap := parseDoc(t, flavor.CommonMark, "\xFE\xFF\x00h\x00i")
		if !bytes.Equal(snap.Content, []byte("hi")) {
			t.Errorf("content %q, want %q", snap.Content, "hi")
		}
	})

	t.Run("nul replaced", func(t *testing.T) {
		t.Parallel()
		snap := parseDoc(t, flavor.CommonMark, "a\x00b")
		if !bytes.Equal(snap.Content, []byte("a�b")) {
			t.Errorf("content %q, want nul replaced", snap.Content)
		}
	})

	t.Run("invalid utf8 errors with offset", func(t *testing.T) {
		t.Parallel()
		_, err := parse.New(flavor.CommonMark).Parse(context.Background(), "bad.md", []byte("ok \xFFbad"))
		var encErr *parse.EncodingError
		if !errors.As(err, &encErr) {
			t.Fatalf("err = %v, want *EncodingError", err)
		}
		if encErr.Offset != 3 {
			t.Errorf("offset %d, want 3", encErr.Offset)
		}
	})
}

func TestParseCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap, err := parse.New(flavor.GitHub).Parse(ctx, "test.md", []byte("# hi"))
	if snap != nil {
		t.Error("cancelled parse must not yield a snapshot")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled in the chain", err)
	}
}

func TestParseZeroParser(t *testing.T) {
	t.Parallel()

	var p parse.Parser
	snap, err := p.Parse(context.Background(), "test.md", []byte("~~x~~"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	text := snap.Root.FirstChild.FirstChild
	if text.Kind != tree.NodeText || text.Inline.Text != "~~x~~" {
		t.Error("zero parser must behave as plain CommonMark")
	}
}

func TestParseConcurrent(t *testing.T) {
	t.Parallel()

	src := []byte("# T\n\n*em* and [l](/u)\n\n| a | b |\n| - | - |\n| 1 | 2 |\n")
	p := parse.New(flavor.GitHub)

	base, err := p.Parse(context.Background(), "test.md", src)
	if err != nil {
		t.Fatal(err)
	}
	want := tree.Dump(base.Root)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := p.Parse(context.Background(), "test.md", src)
			if err != nil {
				t.Error(err)
				return
			}
			if got := tree.Dump(snap.Root); got != want {
				t.Error("concurrent parse diverged")
			}
		}()
	}
	wg.Wait()
}

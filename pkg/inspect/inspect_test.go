package inspect_test

import (
	"context"
	"testing"

	"github.com/vmittal27/mkforge/pkg/flavor"
	"github.com/vmittal27/mkforge/pkg/inspect"
	"github.com/vmittal27/mkforge/pkg/parse"
	"github.com/vmittal27/mkforge/pkg/tree"
)

func analyze(t *testing.T, f flavor.Flavor, src string) *inspect.Report {
	t.Helper()
	snap, err := parse.New(f).Parse(context.Background(), "test.md", []byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return inspect.Analyze(snap)
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	src := "# Guide\n" +
		"\n" +
		"Intro with [site](https://example.com \"Home\") and ![logo](/logo.png).\n" +
		"\n" +
		"## Usage\n" +
		"\n" +
		"Contact <me@example.com> or https://mkforge.dev.\n" +
		"\n" +
		"```go\n" +
		"package main\n" +
		"```\n" +
		"\n" +
		"```\n" +
		"def main():\n" +
		"    pass\n" +
		"```\n" +
		"\n" +
		"- outer\n" +
		"  - inner *deep*\n"

	rep := analyze(t, flavor.GitHub, src)

	if rep.Path != "test.md" {
		t.Errorf("Path = %q, want %q", rep.Path, "test.md")
	}

	wantHeadings := []inspect.Heading{
		{Level: 1, Text: "Guide", Line: 1},
		{Level: 2, Text: "Usage", Line: 5},
	}
	if len(rep.Headings) != len(wantHeadings) {
		t.Fatalf("len(Headings) = %d, want %d", len(rep.Headings), len(wantHeadings))
	}
	for i, want := range wantHeadings {
		if rep.Headings[i] != want {
			t.Errorf("Headings[%d] = %+v, want %+v", i, rep.Headings[i], want)
		}
	}

	wantLinks := []inspect.Link{
		{Destination: "https://example.com", Text: "site", Line: 3},
		{Destination: "/logo.png", Text: "logo", Image: true, Line: 3},
		{Destination: "mailto:me@example.com", Text: "me@example.com", Line: 7},
		{Destination: "https://mkforge.dev", Text: "https://mkforge.dev", Line: 7},
	}
	if len(rep.Links) != len(wantLinks) {
		t.Fatalf("len(Links) = %d, want %d: %+v", len(rep.Links), len(wantLinks), rep.Links)
	}
	for i, want := range wantLinks {
		if rep.Links[i] != want {
			t.Errorf("Links[%d] = %+v, want %+v", i, rep.Links[i], want)
		}
	}

	if got := rep.LinkCount(); got != 3 {
		t.Errorf("LinkCount() = %d, want 3 (images excluded)", got)
	}

	counts := map[tree.NodeKind]int{
		tree.NodeDocument:  1,
		tree.NodeHeading:   2,
		tree.NodeCodeBlock: 2,
		tree.NodeList:      2,
		tree.NodeListItem:  2,
		tree.NodeLink:      1,
		tree.NodeImage:     1,
		tree.NodeAutolink:  2,
		tree.NodeEmphasis:  1,
	}
	for kind, want := range counts {
		if got := rep.Counts[kind]; got != want {
			t.Errorf("Counts[%v] = %d, want %d", kind, got, want)
		}
	}

	if len(rep.Languages) != 2 {
		t.Errorf("Languages = %v, want 2 entries", rep.Languages)
	}
	if rep.Languages["go"] != 1 {
		t.Errorf("Languages[go] = %d, want 1", rep.Languages["go"])
	}
	if rep.Languages["python"] != 1 {
		t.Errorf("Languages[python] = %d, want 1", rep.Languages["python"])
	}

	// Document > List > ListItem > List > ListItem > Paragraph > Emphasis > Text.
	if rep.MaxDepth != 8 {
		t.Errorf("MaxDepth = %d, want 8", rep.MaxDepth)
	}
}

func TestAnalyzeEmptyDocument(t *testing.T) {
	t.Parallel()

	rep := analyze(t, flavor.CommonMark, "")

	if len(rep.Headings) != 0 || len(rep.Links) != 0 {
		t.Errorf("expected empty outline, got %+v / %+v", rep.Headings, rep.Links)
	}
	if rep.Counts[tree.NodeDocument] != 1 {
		t.Errorf("Counts[Document] = %d, want 1", rep.Counts[tree.NodeDocument])
	}
	if rep.MaxDepth != 1 {
		t.Errorf("MaxDepth = %d, want 1", rep.MaxDepth)
	}
	if len(rep.Languages) != 0 {
		t.Errorf("Languages = %v, want empty", rep.Languages)
	}
}

func TestAnalyzeFenceLanguageFallbacks(t *testing.T) {
	t.Parallel()

	// CommonMark leaves the language attribute unset, so the info string
	// and then content classification take over.
	src := "```golang\n" +
		"package main\n" +
		"```\n" +
		"\n" +
		"```\n" +
		"SELECT * FROM users;\n" +
		"```\n" +
		"\n" +
		"```\n" +
		"just prose here\n" +
		"```\n"

	rep := analyze(t, flavor.CommonMark, src)

	if rep.Languages["go"] != 1 {
		t.Errorf("Languages[go] = %d, want 1 (info string alias)", rep.Languages["go"])
	}
	if rep.Languages["sql"] != 1 {
		t.Errorf("Languages[sql] = %d, want 1 (classified)", rep.Languages["sql"])
	}
	if rep.Languages["text"] != 1 {
		t.Errorf("Languages[text] = %d, want 1 (unclassifiable)", rep.Languages["text"])
	}
}

func TestAnalyzeSetextHeading(t *testing.T) {
	t.Parallel()

	rep := analyze(t, flavor.CommonMark, "Title\n=====\n\nSub\n---\n")

	want := []inspect.Heading{
		{Level: 1, Text: "Title", Line: 1},
		{Level: 2, Text: "Sub", Line: 4},
	}
	if len(rep.Headings) != len(want) {
		t.Fatalf("len(Headings) = %d, want %d", len(rep.Headings), len(want))
	}
	for i, w := range want {
		if rep.Headings[i] != w {
			t.Errorf("Headings[%d] = %+v, want %+v", i, rep.Headings[i], w)
		}
	}
}

func TestAnalyzeReferenceLinks(t *testing.T) {
	t.Parallel()

	src := "read [the guide][g] first\n\n[g]: /guide \"Guide\"\n"

	rep := analyze(t, flavor.CommonMark, src)

	if len(rep.Links) != 1 {
		t.Fatalf("len(Links) = %d, want 1: %+v", len(rep.Links), rep.Links)
	}
	link := rep.Links[0]
	if link.Destination != "/guide" {
		t.Errorf("Destination = %q, want %q", link.Destination, "/guide")
	}
	if link.Text != "the guide" {
		t.Errorf("Text = %q, want %q", link.Text, "the guide")
	}
	if link.Line != 1 {
		t.Errorf("Line = %d, want 1", link.Line)
	}
}

package block_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vmittal27/mkforge/internal/block"
	"github.com/vmittal27/mkforge/pkg/flavor"
	"github.com/vmittal27/mkforge/pkg/tree"
)

// dumpBlocks scans src and renders the block structure one node per line,
// with raw inline content still unresolved.
func dumpBlocks(t *testing.T, src string, opts flavor.Options) string {
	t.Helper()
	res := block.Scan([]byte(src), opts, tree.NewArena())

	raws := make(map[*tree.Node]string)
	for _, raw := range res.Raws {
		parts := make([]string, len(raw.Segments))
		for i, seg := range raw.Segments {
			parts[i] = src[seg.Start:seg.End]
		}
		raws[raw.Node] = strings.Join(parts, "\n")
	}

	var sb strings.Builder
	var walk func(n *tree.Node, depth int)
	walk = func(n *tree.Node, depth int) {
		for child := n.FirstChild; child != nil; child = child.Next {
			sb.WriteString(strings.Repeat("  ", depth))
			sb.WriteString(describeBlock(child, raws))
			sb.WriteByte('\n')
			walk(child, depth+1)
		}
	}
	walk(res.Doc, 0)
	return strings.TrimSuffix(sb.String(), "\n")
}

func describeBlock(n *tree.Node, raws map[*tree.Node]string) string {
	switch n.Kind {
	case tree.NodeParagraph:
		return fmt.Sprintf("Paragraph %q", raws[n])
	case tree.NodeHeading:
		setext := ""
		if n.Block.Setext {
			setext = " setext"
		}
		return fmt.Sprintf("Heading %d%s %q", n.Block.HeadingLevel, setext, raws[n])
	case tree.NodeCodeBlock:
		attrs := n.Block.CodeBlock
		if !attrs.Fenced {
			return fmt.Sprintf("CodeBlock %q", n.Block.Literal)
		}
		out := "CodeBlock fenced"
		if attrs.Info != "" {
			out += fmt.Sprintf(" info=%q", attrs.Info)
		}
		if attrs.Language != "" {
			out += fmt.Sprintf(" lang=%q", attrs.Language)
		}
		return out + fmt.Sprintf(" %q", n.Block.Literal)
	case tree.NodeHTMLBlock:
		return fmt.Sprintf("HTMLBlock %q", n.Block.Literal)
	case tree.NodeList:
		attrs := n.Block.List
		mode := "loose"
		if attrs.Tight {
			mode = "tight"
		}
		if attrs.Ordered {
			return fmt.Sprintf("List %d%c %s", attrs.StartNumber, attrs.Delimiter, mode)
		}
		return fmt.Sprintf("List %c %s", attrs.BulletMarker, mode)
	case tree.NodeListItem:
		if task := n.Block.Item.Task; task != tree.TaskNone {
			return "ListItem task=" + task.String()
		}
		return "ListItem"
	case tree.NodeTable:
		names := make([]string, len(n.Block.Table.Alignments))
		for i, a := range n.Block.Table.Alignments {
			names[i] = a.String()
		}
		return "Table [" + strings.Join(names, ",") + "]"
	case tree.NodeTableRow:
		if n.Block.Row.Header {
			return "TableRow header"
		}
		return "TableRow"
	case tree.NodeTableCell:
		if a := n.Block.Cell.Alignment; a != tree.AlignNone {
			return fmt.Sprintf("TableCell %s %q", a, raws[n])
		}
		return fmt.Sprintf("TableCell %q", raws[n])
	default:
		return n.Kind.String()
	}
}

func checkBlocks(t *testing.T, src string, opts flavor.Options, want []string) {
	t.Helper()
	got := dumpBlocks(t, src, opts)
	expected := strings.Join(want, "\n")
	if got != expected {
		t.Errorf("block structure mismatch\ninput:\n%q\ngot:\n%s\nwant:\n%s", src, got, expected)
	}
}

func TestScanParagraphs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "single line",
			src:  "hello world",
			want: []string{`Paragraph "hello world"`},
		},
		{
			name: "continuation lines join",
			src:  "line one\nline two",
			want: []string{`Paragraph "line one\nline two"`},
		},
		{
			name: "blank line separates",
			src:  "one\n\ntwo",
			want: []string{`Paragraph "one"`, `Paragraph "two"`},
		},
		{
			name: "leading spaces dropped",
			src:  "   spaced",
			want: []string{`Paragraph "spaced"`},
		},
		{
			name: "indented continuation stays paragraph",
			src:  "para\n    still para",
			want: []string{`Paragraph "para\nstill para"`},
		},
		{
			name: "empty input",
			src:  "",
			want: nil,
		},
		{
			name: "only blank lines",
			src:  "\n\n\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			checkBlocks(t, tt.src, flavor.Options{}, tt.want)
		})
	}
}

func TestScanHeadings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "atx level one",
			src:  "# Title",
			want: []string{`Heading 1 "Title"`},
		},
		{
			name: "atx closing sequence",
			src:  "### x ###",
			want: []string{`Heading 3 "x"`},
		},
		{
			name: "closing sequence needs space",
			src:  "# foo#",
			want: []string{`Heading 1 "foo#"`},
		},
		{
			name: "hash without space is text",
			src:  "#note",
			want: []string{`Paragraph "#note"`},
		},
		{
			name: "seven hashes is text",
			src:  "####### seven",
			want: []string{`Paragraph "####### seven"`},
		},
		{
			name: "empty heading",
			src:  "#",
			want: []string{`Heading 1 ""`},
		},
		{
			name: "atx interrupts paragraph",
			src:  "foo\n# bar",
			want: []string{`Paragraph "foo"`, `Heading 1 "bar"`},
		},
		{
			name: "setext level one",
			src:  "Title\n=====",
			want: []string{`Heading 1 setext "Title"`},
		},
		{
			name: "setext level two",
			src:  "Sub\n---",
			want: []string{`Heading 2 setext "Sub"`},
		},
		{
			name: "setext joins lines",
			src:  "a\nb\n===",
			want: []string{`Heading 1 setext "a\nb"`},
		},
		{
			name: "underline without paragraph is text",
			src:  "===",
			want: []string{`Paragraph "==="`},
		},
		{
			name: "setext wins over thematic break",
			src:  "Foo\n---",
			want: []string{`Heading 2 setext "Foo"`},
		},
		{
			name: "setext inside list item",
			src:  "- Foo\n  ---",
			want: []string{
				"List - tight",
				"  ListItem",
				`    Heading 2 setext "Foo"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			checkBlocks(t, tt.src, flavor.Options{}, tt.want)
		})
	}
}

func TestScanThematicBreaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "asterisks",
			src:  "***",
			want: []string{"ThematicBreak"},
		},
		{
			name: "spaced dashes beat list",
			src:  "- - -",
			want: []string{"ThematicBreak"},
		},
		{
			name: "underscores",
			src:  "___",
			want: []string{"ThematicBreak"},
		},
		{
			name: "two dashes are text",
			src:  "--",
			want: []string{`Paragraph "--"`},
		},
		{
			name: "mixed characters are text",
			src:  "-*-",
			want: []string{`Paragraph "-*-"`},
		},
		{
			name: "break closes list",
			src:  "- foo\n---",
			want: []string{
				"List - tight",
				"  ListItem",
				`    Paragraph "foo"`,
				"ThematicBreak",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			checkBlocks(t, tt.src, flavor.Options{}, tt.want)
		})
	}
}

func TestScanCodeBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		opts flavor.Options
		want []string
	}{
		{
			name: "indented",
			src:  "    code",
			want: []string{"CodeBlock \"code\\n\""},
		},
		{
			name: "indented keeps interior blanks",
			src:  "    a\n\n    b",
			want: []string{"CodeBlock \"a\\n\\nb\\n\""},
		},
		{
			name: "indented drops trailing blanks",
			src:  "    a\n\n",
			want: []string{"CodeBlock \"a\\n\""},
		},
		{
			name: "tab counts as code indent",
			src:  "\tcode",
			want: []string{"CodeBlock \"code\\n\""},
		},
		{
			name: "fenced",
			src:  "```\ncode\n```",
			want: []string{"CodeBlock fenced \"code\\n\""},
		},
		{
			name: "fenced with info string",
			src:  "```go title\nx\n```",
			want: []string{"CodeBlock fenced info=\"go title\" \"x\\n\""},
		},
		{
			name: "language surfaced when enabled",
			src:  "```go title\nx\n```",
			opts: flavor.Options{LanguageTagged: true},
			want: []string{"CodeBlock fenced info=\"go title\" lang=\"go\" \"x\\n\""},
		},
		{
			name: "unclosed fence runs to end",
			src:  "```\nunclosed",
			want: []string{"CodeBlock fenced \"unclosed\\n\""},
		},
		{
			name: "shorter fence stays inside",
			src:  "````\n```\n````",
			want: []string{"CodeBlock fenced \"```\\n\""},
		},
		{
			name: "opening indent stripped from content",
			src:  "  ```\n  a\n   b\n```",
			want: []string{"CodeBlock fenced \"a\\n b\\n\""},
		},
		{
			name: "fence interrupts paragraph",
			src:  "para\n```\nx\n```",
			want: []string{`Paragraph "para"`, "CodeBlock fenced \"x\\n\""},
		},
		{
			name: "empty fenced block",
			src:  "```\n```",
			want: []string{`CodeBlock fenced ""`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			checkBlocks(t, tt.src, tt.opts, tt.want)
		})
	}
}

func TestScanBlockquotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "basic",
			src:  "> quoted",
			want: []string{"Blockquote", `  Paragraph "quoted"`},
		},
		{
			name: "lazy continuation",
			src:  "> a\nb",
			want: []string{"Blockquote", `  Paragraph "a\nb"`},
		},
		{
			name: "blank line closes",
			src:  "> a\n\nb",
			want: []string{"Blockquote", `  Paragraph "a"`, `Paragraph "b"`},
		},
		{
			name: "nested",
			src:  "> > deep",
			want: []string{"Blockquote", "  Blockquote", `    Paragraph "deep"`},
		},
		{
			name: "empty",
			src:  ">",
			want: []string{"Blockquote"},
		},
		{
			name: "lazy indented chunk",
			src:  "> a\n    b",
			want: []string{"Blockquote", `  Paragraph "a\nb"`},
		},
		{
			name: "code inside quote",
			src:  ">     x",
			want: []string{"Blockquote", "  CodeBlock \"x\\n\""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			checkBlocks(t, tt.src, flavor.Options{}, tt.want)
		})
	}
}

func TestScanLists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "tight bullets",
			src:  "- a\n- b",
			want: []string{
				"List - tight",
				"  ListItem",
				`    Paragraph "a"`,
				"  ListItem",
				`    Paragraph "b"`,
			},
		},
		{
			name: "blank between items loosens",
			src:  "- a\n\n- b",
			want: []string{
				"List - loose",
				"  ListItem",
				`    Paragraph "a"`,
				"  ListItem",
				`    Paragraph "b"`,
			},
		},
		{
			name: "blank inside item loosens",
			src:  "- a\n\n  b",
			want: []string{
				"List - loose",
				"  ListItem",
				`    Paragraph "a"`,
				`    Paragraph "b"`,
			},
		},
		{
			name: "trailing blank stays tight",
			src:  "- a\n- b\n\n",
			want: []string{
				"List - tight",
				"  ListItem",
				`    Paragraph "a"`,
				"  ListItem",
				`    Paragraph "b"`,
			},
		},
		{
			name: "ordered with start",
			src:  "3) x\n4) y",
			want: []string{
				"List 3) tight",
				"  ListItem",
				`    Paragraph "x"`,
				"  ListItem",
				`    Paragraph "y"`,
			},
		},
		{
			name: "later numbers do not reset start",
			src:  "1. one\n7. seven",
			want: []string{
				"List 1. tight",
				"  ListItem",
				`    Paragraph "one"`,
				"  ListItem",
				`    Paragraph "seven"`,
			},
		},
		{
			name: "bullet change splits list",
			src:  "- a\n+ b",
			want: []string{
				"List - tight",
				"  ListItem",
				`    Paragraph "a"`,
				"List + tight",
				"  ListItem",
				`    Paragraph "b"`,
			},
		},
		{
			name: "delimiter change splits list",
			src:  "1. a\n2) b",
			want: []string{
				"List 1. tight",
				"  ListItem",
				`    Paragraph "a"`,
				"List 2) tight",
				"  ListItem",
				`    Paragraph "b"`,
			},
		},
		{
			name: "nested list",
			src:  "- a\n  - b",
			want: []string{
				"List - tight",
				"  ListItem",
				`    Paragraph "a"`,
				"    List - tight",
				"      ListItem",
				`        Paragraph "b"`,
			},
		},
		{
			name: "ordered two cannot interrupt paragraph",
			src:  "para\n2. x",
			want: []string{`Paragraph "para\n2. x"`},
		},
		{
			name: "ordered one interrupts paragraph",
			src:  "para\n1. x",
			want: []string{
				`Paragraph "para"`,
				"List 1. tight",
				"  ListItem",
				`    Paragraph "x"`,
			},
		},
		{
			name: "empty item cannot interrupt paragraph",
			src:  "para\n1.",
			want: []string{`Paragraph "para\n1."`},
		},
		{
			name: "empty item",
			src:  "-",
			want: []string{"List - tight", "  ListItem"},
		},
		{
			name: "item content after empty marker line",
			src:  "-\n  foo",
			want: []string{
				"List - tight",
				"  ListItem",
				`    Paragraph "foo"`,
			},
		},
		{
			name: "lazy item continuation",
			src:  "- foo\nbar",
			want: []string{
				"List - tight",
				"  ListItem",
				`    Paragraph "foo\nbar"`,
			},
		},
		{
			name: "code block inside item",
			src:  "- a\n\n      b",
			want: []string{
				"List - loose",
				"  ListItem",
				`    Paragraph "a"`,
				"    CodeBlock \"b\\n\"",
			},
		},
		{
			name: "four space padding joins marker",
			src:  "-    far\n     next",
			want: []string{
				"List - tight",
				"  ListItem",
				`    Paragraph "far\nnext"`,
			},
		},
		{
			name: "five spaces start code",
			src:  "-     spaced\n  rest",
			want: []string{
				"List - tight",
				"  ListItem",
				"    CodeBlock \"spaced\\n\"",
				`    Paragraph "rest"`,
			},
		},
		{
			name: "marker in quote",
			src:  "> - a\n>   b",
			want: []string{
				"Blockquote",
				"  List - tight",
				"    ListItem",
				`      Paragraph "a\nb"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			checkBlocks(t, tt.src, flavor.Options{}, tt.want)
		})
	}
}

func TestScanHTMLBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "block tag runs to blank line",
			src:  "<div>\nfoo\n\nbar",
			want: []string{"HTMLBlock \"<div>\\nfoo\\n\"", `Paragraph "bar"`},
		},
		{
			name: "comment closes on same line",
			src:  "<!-- c -->\ntext",
			want: []string{"HTMLBlock \"<!-- c -->\\n\"", `Paragraph "text"`},
		},
		{
			name: "pre swallows blank lines",
			src:  "<pre>\n\n</pre>",
			want: []string{"HTMLBlock \"<pre>\\n\\n</pre>\\n\""},
		},
		{
			name: "block tag interrupts paragraph",
			src:  "para\n<div>",
			want: []string{`Paragraph "para"`, "HTMLBlock \"<div>\\n\""},
		},
		{
			name: "standalone tag cannot interrupt paragraph",
			src:  "para\n<custom />",
			want: []string{`Paragraph "para\n<custom />"`},
		},
		{
			name: "standalone tag block",
			src:  "<custom x=1>\ntext\n\nafter",
			want: []string{"HTMLBlock \"<custom x=1>\\ntext\\n\"", `Paragraph "after"`},
		},
		{
			name: "incomplete tag is text",
			src:  "<3 little pigs",
			want: []string{`Paragraph "<3 little pigs"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			checkBlocks(t, tt.src, flavor.Options{}, tt.want)
		})
	}
}

func TestScanReferenceDefinitions(t *testing.T) {
	t.Parallel()

	t.Run("definition leaves no node", func(t *testing.T) {
		t.Parallel()
		src := "[foo]: /url \"title\"\n\n[foo]"
		checkBlocks(t, src, flavor.Options{}, []string{`Paragraph "[foo]"`})

		res := block.Scan([]byte(src), flavor.Options{}, tree.NewArena())
		def, ok := res.Refs.Lookup("foo")
		if !ok {
			t.Fatal("expected definition for foo")
		}
		if def.Destination != "/url" || def.Title != "title" {
			t.Errorf("got %+v, want /url with title", def)
		}
	})

	t.Run("first definition wins", func(t *testing.T) {
		t.Parallel()
		res := block.Scan([]byte("[a]: /1\n[a]: /2"), flavor.Options{}, tree.NewArena())
		def, ok := res.Refs.Lookup("a")
		if !ok || def.Destination != "/1" {
			t.Errorf("got %+v, want /1", def)
		}
	})

	t.Run("definition followed by text", func(t *testing.T) {
		t.Parallel()
		src := "[label]: /url\npara text"
		checkBlocks(t, src, flavor.Options{}, []string{`Paragraph "para text"`})
	})

	t.Run("definition spanning lines", func(t *testing.T) {
		t.Parallel()
		src := "[foo]:\n/url\n'ttl'\n\nrest"
		checkBlocks(t, src, flavor.Options{}, []string{`Paragraph "rest"`})

		res := block.Scan([]byte(src), flavor.Options{}, tree.NewArena())
		def, ok := res.Refs.Lookup("foo")
		if !ok || def.Destination != "/url" || def.Title != "ttl" {
			t.Errorf("got %+v, want /url with ttl", def)
		}
	})

	t.Run("definition after text is content", func(t *testing.T) {
		t.Parallel()
		src := "text\n[label]: /url"
		checkBlocks(t, src, flavor.Options{}, []string{`Paragraph "text\n[label]: /url"`})
	})

	t.Run("labels normalize on lookup", func(t *testing.T) {
		t.Parallel()
		res := block.Scan([]byte("[Foo   Bar]: /url"), flavor.Options{}, tree.NewArena())
		if _, ok := res.Refs.Lookup("foo bar"); !ok {
			t.Error("expected case and whitespace folded lookup to succeed")
		}
	})

	t.Run("definitions before setext leave thematic break", func(t *testing.T) {
		t.Parallel()
		src := "[ref]: /url\n---"
		checkBlocks(t, src, flavor.Options{}, []string{"ThematicBreak"})
	})
}

func TestScanTables(t *testing.T) {
	t.Parallel()

	opts := flavor.Options{Table: true}

	tests := []struct {
		name string
		src  string
		opts flavor.Options
		want []string
	}{
		{
			name: "basic table",
			src:  "a | b\n- | -\n1 | 2",
			opts: opts,
			want: []string{
				"Table [none,none]",
				"  TableRow header",
				`    TableCell "a"`,
				`    TableCell "b"`,
				"  TableRow",
				`    TableCell "1"`,
				`    TableCell "2"`,
			},
		},
		{
			name: "alignments",
			src:  "| x | y | z |\n| :- | :-: | -: |",
			opts: opts,
			want: []string{
				"Table [left,center,right]",
				"  TableRow header",
				`    TableCell left "x"`,
				`    TableCell center "y"`,
				`    TableCell right "z"`,
			},
		},
		{
			name: "column count mismatch demotes",
			src:  "h1 | h2\n--|--|--",
			opts: opts,
			want: []string{`Paragraph "h1 | h2\n--|--|--"`},
		},
		{
			name: "table ends open paragraph",
			src:  "before\nc1 | c2\n-- | --",
			opts: opts,
			want: []string{
				`Paragraph "before"`,
				"Table [none,none]",
				"  TableRow header",
				`    TableCell "c1"`,
				`    TableCell "c2"`,
			},
		},
		{
			name: "heading interrupts table",
			src:  "a|b\n-|-\n# done",
			opts: opts,
			want: []string{
				"Table [none,none]",
				"  TableRow header",
				`    TableCell "a"`,
				`    TableCell "b"`,
				`Heading 1 "done"`,
			},
		},
		{
			name: "blank line ends table",
			src:  "a|b\n-|-\nr1|r2\n\nafter",
			opts: opts,
			want: []string{
				"Table [none,none]",
				"  TableRow header",
				`    TableCell "a"`,
				`    TableCell "b"`,
				"  TableRow",
				`    TableCell "r1"`,
				`    TableCell "r2"`,
				`Paragraph "after"`,
			},
		},
		{
			name: "ragged rows kept as scanned",
			src:  "a|b\n-|-\nonly",
			opts: opts,
			want: []string{
				"Table [none,none]",
				"  TableRow header",
				`    TableCell "a"`,
				`    TableCell "b"`,
				"  TableRow",
				`    TableCell "only"`,
			},
		},
		{
			name: "escaped pipe stays in cell",
			src:  "a\\|x | b\n- | -",
			opts: opts,
			want: []string{
				"Table [none,none]",
				"  TableRow header",
				`    TableCell "a\\|x"`,
				`    TableCell "b"`,
			},
		},
		{
			name: "delimiter beats list start",
			src:  "a | b\n- | -",
			opts: opts,
			want: []string{
				"Table [none,none]",
				"  TableRow header",
				`    TableCell "a"`,
				`    TableCell "b"`,
			},
		},
		{
			name: "tables off reads delimiter as list",
			src:  "a | b\n- | -",
			want: []string{
				`Paragraph "a | b"`,
				"List - tight",
				"  ListItem",
				`    Paragraph "| -"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			checkBlocks(t, tt.src, tt.opts, tt.want)
		})
	}
}

func TestScanTaskItems(t *testing.T) {
	t.Parallel()

	opts := flavor.Options{TaskList: true}

	tests := []struct {
		name string
		src  string
		opts flavor.Options
		want []string
	}{
		{
			name: "checked and unchecked",
			src:  "- [x] done\n- [ ] open",
			opts: opts,
			want: []string{
				"List - tight",
				"  ListItem task=checked",
				`    Paragraph "done"`,
				"  ListItem task=unchecked",
				`    Paragraph "open"`,
			},
		},
		{
			name: "capital marker",
			src:  "- [X] caps",
			opts: opts,
			want: []string{
				"List - tight",
				"  ListItem task=checked",
				`    Paragraph "caps"`,
			},
		},
		{
			name: "other letters are text",
			src:  "- [y] no",
			opts: opts,
			want: []string{
				"List - tight",
				"  ListItem",
				`    Paragraph "[y] no"`,
			},
		},
		{
			name: "disabled markers stay text",
			src:  "- [x] done",
			want: []string{
				"List - tight",
				"  ListItem",
				`    Paragraph "[x] done"`,
			},
		},
		{
			name: "bare marker",
			src:  "- [x]",
			opts: opts,
			want: []string{
				"List - tight",
				"  ListItem task=checked",
			},
		},
		{
			name: "marker without following space is text",
			src:  "- [x]done",
			opts: opts,
			want: []string{
				"List - tight",
				"  ListItem",
				`    Paragraph "[x]done"`,
			},
		},
		{
			name: "only first paragraph of item",
			src:  "- a\n\n  [x] b",
			opts: opts,
			want: []string{
				"List - loose",
				"  ListItem",
				`    Paragraph "a"`,
				`    Paragraph "[x] b"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			checkBlocks(t, tt.src, tt.opts, tt.want)
		})
	}
}

func TestScanNestingLimit(t *testing.T) {
	t.Parallel()

	src := strings.Repeat("> ", 300) + "x"
	res := block.Scan([]byte(src), flavor.Options{}, tree.NewArena())

	depth := 0
	quotes := 0
	var walk func(n *tree.Node, d int)
	walk = func(n *tree.Node, d int) {
		if d > depth {
			depth = d
		}
		if n.Kind == tree.NodeBlockquote {
			quotes++
		}
		for child := n.FirstChild; child != nil; child = child.Next {
			walk(child, d+1)
		}
	}
	walk(res.Doc, 0)

	if quotes != 255 {
		t.Errorf("got %d nested blockquotes, want 255", quotes)
	}
	if depth != 256 {
		t.Errorf("got depth %d, want 256", depth)
	}
	if len(res.Raws) != 1 {
		t.Fatalf("got %d raw leaves, want 1", len(res.Raws))
	}
	leaf := res.Raws[0]
	if leaf.Node.Kind != tree.NodeParagraph {
		t.Fatalf("deepest leaf is %s, want Paragraph", leaf.Node.Kind)
	}
	text := src[leaf.Segments[0].Start:leaf.Segments[0].End]
	if want := strings.Repeat("> ", 45) + "x"; text != want {
		t.Errorf("leftover markers: got %q, want %q", text, want)
	}
}

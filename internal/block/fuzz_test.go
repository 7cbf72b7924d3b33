package block_test

import (
	"testing"

	"github.com/vmittal27/mkforge/internal/block"
	"github.com/vmittal27/mkforge/pkg/flavor"
	"github.com/vmittal27/mkforge/pkg/tree"
)

// FuzzScan fuzzes the block phase alone with random input.
func FuzzScan(f *testing.F) {
	seeds := []string{
		"",
		"# Heading",
		"Setext\n===",
		"- a\n- b\n\n- c",
		"1. one\n9) nine",
		"> quote\n>> nested",
		"~~~info string\nfence\n~~~",
		"    indented\n      more",
		"***\n---\n___",
		"| a | b |\n| - | - |\n| 1 | 2 |",
		"- [x] task\n- [ ] open",
		"[label]: /dest \"title\"\n\n[label]",
		"<pre>\nverbatim\n</pre>",
		"<!-- comment -->",
		"para\nlazy continuation\n\nnext",
		"\ttab indent",
		"a\r\nb\rc",
		"> > > > > > deep",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		for _, opts := range []flavor.Options{flavor.CommonMark.Options(), flavor.GitHub.Options()} {
			res := block.Scan(data, opts, tree.NewArena())

			// Scanning is total: every input yields a document.
			if res.Doc == nil {
				t.Fatal("Scan returned a nil document")
			}
			if res.Doc.Kind != tree.NodeDocument {
				t.Fatalf("root kind = %v, want NodeDocument", res.Doc.Kind)
			}

			// Raw segments must index into the source.
			for _, raw := range res.Raws {
				if raw.Node == nil {
					t.Fatal("raw entry without a node")
				}
				for _, seg := range raw.Segments {
					if seg.Start < 0 || seg.End < seg.Start || seg.End > len(data) {
						t.Fatalf("segment [%d,%d) out of bounds for %d source bytes",
							seg.Start, seg.End, len(data))
					}
				}
			}
		}
	})
}

// Package inspect summarizes parsed documents: heading outline, node-kind
// counts, link inventory, fence-language histogram, and nesting depth.
package inspect

import (
	"strings"

	"github.com/vmittal27/mkforge/pkg/langdetect"
	"github.com/vmittal27/mkforge/pkg/tree"
)

// Report summarizes one parsed document.
type Report struct {
	Path      string
	Headings  []Heading
	Links     []Link
	Counts    map[tree.NodeKind]int
	Languages map[string]int
	MaxDepth  int
}

// Heading is one outline entry, in document order.
type Heading struct {
	Level int
	Text  string
	Line  int
}

// Link records one link, image, or autolink occurrence.
type Link struct {
	Destination string
	Text        string
	Image       bool
	Line        int
}

// Analyze walks the snapshot's tree once and builds its report.
func Analyze(snap *tree.Snapshot) *Report {
	r := &Report{
		Path:      snap.Path,
		Counts:    make(map[tree.NodeKind]int),
		Languages: make(map[string]int),
	}
	r.visit(snap.Root, 1)
	return r
}

func (r *Report) visit(n *tree.Node, depth int) {
	r.Counts[n.Kind]++
	if depth > r.MaxDepth {
		r.MaxDepth = depth
	}

	switch n.Kind {
	case tree.NodeHeading:
		r.Headings = append(r.Headings, Heading{
			Level: n.Block.HeadingLevel,
			Text:  n.PlainText(),
			Line:  n.SourcePosition().StartLine,
		})
	case tree.NodeLink, tree.NodeImage:
		r.Links = append(r.Links, Link{
			Destination: n.Inline.Link.Destination,
			Text:        n.PlainText(),
			Image:       n.Kind == tree.NodeImage,
			Line:        n.SourcePosition().StartLine,
		})
	case tree.NodeAutolink:
		r.Links = append(r.Links, Link{
			Destination: n.Inline.Autolink.Destination,
			Text:        n.PlainText(),
			Line:        n.SourcePosition().StartLine,
		})
	case tree.NodeCodeBlock:
		r.Languages[fenceLanguage(n)]++
	}

	for child := n.FirstChild; child != nil; child = child.Next {
		r.visit(child, depth+1)
	}
}

// LinkCount reports how many non-image links the document has.
func (r *Report) LinkCount() int {
	count := 0
	for _, l := range r.Links {
		if !l.Image {
			count++
		}
	}
	return count
}

// fenceLanguage resolves a code block's language: the dedicated language
// attribute when present, else the first info-string word, else content
// classification.
func fenceLanguage(n *tree.Node) string {
	attrs := n.Block.CodeBlock
	if attrs != nil {
		if attrs.Language != "" {
			return langdetect.Canonical(attrs.Language)
		}
		if fields := strings.Fields(attrs.Info); len(fields) > 0 {
			return langdetect.Canonical(fields[0])
		}
	}
	return langdetect.Classify([]byte(n.Block.Literal))
}

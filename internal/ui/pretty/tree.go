package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vmittal27/mkforge/pkg/inspect"
	"github.com/vmittal27/mkforge/pkg/tree"
)

// treeLiteralMax caps literal text in tree output. tree.Dump is the
// lossless form; this renderer favors scannability.
const treeLiteralMax = 48

// FormatTree renders a parsed document as an indented node outline,
// one node per line with its display attributes.
func (s *Styles) FormatTree(snap *tree.Snapshot) string {
	if snap == nil || snap.Root == nil {
		return ""
	}

	var builder strings.Builder
	s.writeTreeNode(&builder, snap.Root, 0)
	return builder.String()
}

func (s *Styles) writeTreeNode(builder *strings.Builder, n *tree.Node, depth int) {
	builder.WriteString(strings.Repeat("  ", depth))
	builder.WriteString(s.TreeKind.Render(n.Kind.String()))
	if attrs := s.renderNodeAttrs(n); attrs != "" {
		builder.WriteString(" " + attrs)
	}
	builder.WriteString("\n")

	for child := n.FirstChild; child != nil; child = child.Next {
		s.writeTreeNode(builder, child, depth+1)
	}
}

// renderNodeAttrs renders the attributes a reader scans for. Literals are
// quoted and truncated; structural details beyond these stay in tree.Dump.
func (s *Styles) renderNodeAttrs(n *tree.Node) string {
	var parts []string

	if n.Block != nil {
		switch n.Kind {
		case tree.NodeHeading:
			parts = append(parts, s.TreeAttr.Render(fmt.Sprintf("level=%d", n.Block.HeadingLevel)))
		case tree.NodeList:
			if list := n.Block.List; list != nil {
				if list.Ordered {
					parts = append(parts, s.TreeAttr.Render("ordered"))
				} else {
					parts = append(parts, s.TreeAttr.Render("bullet"))
				}
			}
		case tree.NodeListItem:
			if item := n.Block.Item; item != nil && item.Task != tree.TaskNone {
				parts = append(parts, s.TreeAttr.Render("task="+item.Task.String()))
			}
		case tree.NodeCodeBlock:
			if cb := n.Block.CodeBlock; cb != nil && cb.Language != "" {
				parts = append(parts, s.TreeAttr.Render(cb.Language))
			}
			parts = append(parts, s.TreeLiteral.Render(strconv.Quote(truncateString(n.Block.Literal, treeLiteralMax))))
		case tree.NodeHTMLBlock:
			parts = append(parts, s.TreeLiteral.Render(strconv.Quote(truncateString(n.Block.Literal, treeLiteralMax))))
		}
	}

	if n.Inline != nil {
		switch n.Kind {
		case tree.NodeText, tree.NodeCodeSpan, tree.NodeHTMLInline:
			parts = append(parts, s.TreeLiteral.Render(strconv.Quote(truncateString(n.Inline.Text, treeLiteralMax))))
		case tree.NodeLink, tree.NodeImage:
			if link := n.Inline.Link; link != nil {
				parts = append(parts, s.TreeAttr.Render("-> "+link.Destination))
			}
		case tree.NodeAutolink:
			if autolink := n.Inline.Autolink; autolink != nil {
				parts = append(parts, s.TreeAttr.Render("-> "+autolink.Destination))
			}
		}
	}

	return strings.Join(parts, " ")
}

// FormatOutline renders a document's heading outline, indented by level.
func (s *Styles) FormatOutline(rep *inspect.Report) string {
	if rep == nil || len(rep.Headings) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, h := range rep.Headings {
		builder.WriteString(strings.Repeat("  ", h.Level-1))
		builder.WriteString(s.OutlineMarker.Render(strings.Repeat("#", h.Level)))
		builder.WriteString(" " + s.OutlineText.Render(h.Text))
		builder.WriteString(s.Location.Render(":" + strconv.Itoa(h.Line)))
		builder.WriteString("\n")
	}
	return builder.String()
}

// FormatLinks renders a document's link inventory, one link per line.
func (s *Styles) FormatLinks(rep *inspect.Report) string {
	if rep == nil || len(rep.Links) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, link := range rep.Links {
		kind := "link"
		if link.Image {
			kind = "image"
		}
		builder.WriteString(fmt.Sprintf("  %s %s %s %s\n",
			s.Location.Render(fmt.Sprintf("%4d", link.Line)),
			s.Dim.Render(fmt.Sprintf("%-5s", kind)),
			s.Message.Render(link.Text),
			s.TreeAttr.Render("-> "+link.Destination),
		))
	}
	return builder.String()
}

// FormatParseError formats a failed file for terminal output.
func (s *Styles) FormatParseError(path string, err error) string {
	return fmt.Sprintf("  %s  %s  %s\n",
		s.FilePath.Render(path),
		s.Error.Render("error"),
		s.Message.Render(err.Error()),
	)
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, nodeCount int) string {
	header := s.FilePath.Render(path)
	if nodeCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d nodes)", nodeCount))
	}
	return header
}

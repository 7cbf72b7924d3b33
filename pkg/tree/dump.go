package tree

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders the tree rooted at n as an indented outline, one node per
// line with its significant attributes. The format is deterministic for
// structurally identical trees, which makes it suitable for comparing
// parse results in tests.
func Dump(n *Node) string {
	var sb strings.Builder
	dumpNode(&sb, n, 0)
	return sb.String()
}

func dumpNode(sb *strings.Builder, n *Node, depth int) {
	if n == nil {
		return
	}

	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(describe(n))
	sb.WriteByte('\n')

	for child := n.FirstChild; child != nil; child = child.Next {
		dumpNode(sb, child, depth+1)
	}
}

// describe renders one node as its kind name plus attribute fields.
func describe(n *Node) string {
	var parts []string
	parts = append(parts, n.Kind.String())

	if n.Block != nil {
		parts = append(parts, describeBlock(n)...)
	}
	if n.Inline != nil {
		parts = append(parts, describeInline(n)...)
	}

	return strings.Join(parts, " ")
}

func describeBlock(n *Node) []string {
	a := n.Block
	var parts []string

	switch n.Kind {
	case NodeHeading:
		parts = append(parts, fmt.Sprintf("level=%d", a.HeadingLevel))
		if a.Setext {
			parts = append(parts, "setext")
		}
	case NodeList:
		if a.List != nil {
			if a.List.Ordered {
				parts = append(parts,
					fmt.Sprintf("ordered start=%d delim=%q", a.List.StartNumber, a.List.Delimiter))
			} else {
				parts = append(parts, fmt.Sprintf("bullet=%q", a.List.BulletMarker))
			}
			if a.List.Tight {
				parts = append(parts, "tight")
			}
		}
	case NodeListItem:
		if a.Item != nil && a.Item.Task != TaskNone {
			parts = append(parts, "task="+a.Item.Task.String())
		}
	case NodeCodeBlock:
		if a.CodeBlock != nil {
			if a.CodeBlock.Fenced {
				parts = append(parts, fmt.Sprintf("fence=%q", a.CodeBlock.FenceChar))
				if a.CodeBlock.Info != "" {
					parts = append(parts, "info="+strconv.Quote(a.CodeBlock.Info))
				}
				if a.CodeBlock.Language != "" {
					parts = append(parts, "lang="+strconv.Quote(a.CodeBlock.Language))
				}
			} else {
				parts = append(parts, "indented")
			}
		}
		parts = append(parts, "literal="+strconv.Quote(a.Literal))
	case NodeHTMLBlock:
		parts = append(parts, "literal="+strconv.Quote(a.Literal))
	case NodeTable:
		if a.Table != nil {
			aligns := make([]string, len(a.Table.Alignments))
			for i, al := range a.Table.Alignments {
				aligns[i] = al.String()
			}
			parts = append(parts,
				fmt.Sprintf("cols=%d", len(a.Table.Alignments)),
				"align=["+strings.Join(aligns, ",")+"]")
		}
	case NodeTableRow:
		if a.Row != nil && a.Row.Header {
			parts = append(parts, "header")
		}
	case NodeTableCell:
		if a.Cell != nil && a.Cell.Alignment != AlignNone {
			parts = append(parts, "align="+a.Cell.Alignment.String())
		}
	}

	return parts
}

func describeInline(n *Node) []string {
	a := n.Inline
	var parts []string

	switch n.Kind {
	case NodeText, NodeCodeSpan, NodeHTMLInline:
		parts = append(parts, strconv.Quote(a.Text))
	case NodeLink, NodeImage:
		if a.Link != nil {
			parts = append(parts, "dest="+strconv.Quote(a.Link.Destination))
			if a.Link.Title != "" {
				parts = append(parts, "title="+strconv.Quote(a.Link.Title))
			}
			if a.Link.ReferenceStyle != RefStyleInline {
				parts = append(parts,
					"ref="+a.Link.ReferenceStyle.String(),
					"label="+strconv.Quote(a.Link.ReferenceLabel))
			}
		}
	case NodeAutolink:
		if a.Autolink != nil {
			parts = append(parts, "dest="+strconv.Quote(a.Autolink.Destination))
			if a.Autolink.Email {
				parts = append(parts, "email")
			}
		}
	}

	return parts
}

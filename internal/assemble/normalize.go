package assemble

import (
	"strings"

	"github.com/vmittal27/mkforge/pkg/tree"
)

// normalizeList enforces marker homogeneity and start numbers. Every item of
// a list must share the list's marker style; at the first item that differs,
// the remainder of the list splits into a sibling list carrying that item's
// style. First-seen style wins, never an error. Ordered lists take their
// start number from their first item.
func normalizeList(list *tree.Node, arena *tree.Arena) {
	for {
		attrs := list.Block.List
		if attrs.Ordered && list.FirstChild != nil {
			if item := list.FirstChild.Block.Item; item != nil {
				attrs.StartNumber = item.Number
			}
		}

		var split *tree.Node
		for item := list.FirstChild; item != nil; item = item.Next {
			if item.Kind != tree.NodeListItem || item.Block.Item == nil {
				continue
			}
			if !sameStyle(attrs, item.Block.Item) {
				split = item
				break
			}
		}
		if split == nil {
			return
		}

		next := arena.New(tree.NodeList)
		next.Start = split.Start
		next.End = split.End
		next.Block = tree.NewBlockAttrs().WithList(listStyleOf(split.Block.Item, attrs.Tight))
		for item := split; item != nil; {
			after := item.Next
			tree.RemoveChild(list, item)
			tree.AppendChild(next, item)
			next.End = item.End
			item = after
		}
		if list.LastChild != nil {
			list.End = list.LastChild.End
		}
		tree.InsertAfter(list, next)
		list = next
	}
}

func sameStyle(attrs *tree.ListAttrs, item *tree.ItemAttrs) bool {
	if attrs.Ordered {
		return item.Delimiter == attrs.Delimiter && item.BulletMarker == 0
	}
	return item.BulletMarker == attrs.BulletMarker && item.Delimiter == 0
}

func listStyleOf(item *tree.ItemAttrs, tight bool) *tree.ListAttrs {
	attrs := &tree.ListAttrs{Tight: tight}
	if item.Delimiter != 0 {
		attrs.Ordered = true
		attrs.Delimiter = item.Delimiter
		attrs.StartNumber = item.Number
	} else {
		attrs.BulletMarker = item.BulletMarker
	}
	return attrs
}

// normalizeTable pads or truncates every row to the header's column count and
// stamps each cell with its column alignment. Padded cells are empty and
// carry no source range.
func normalizeTable(table *tree.Node, arena *tree.Arena) {
	aligns := table.Block.Table.Alignments
	for row := table.FirstChild; row != nil; row = row.Next {
		col := 0
		for cell := row.FirstChild; cell != nil; {
			after := cell.Next
			if col >= len(aligns) {
				tree.RemoveChild(row, cell)
			} else {
				cell.Block.Cell.Alignment = aligns[col]
				col++
			}
			cell = after
		}
		for ; col < len(aligns); col++ {
			cell := arena.New(tree.NodeTableCell)
			cell.Block = tree.NewBlockAttrs()
			cell.Block.Cell = &tree.CellAttrs{Alignment: aligns[col]}
			tree.AppendChild(row, cell)
		}
	}
}

// collapseStrong folds directly nested strong emphasis into a single node,
// matching GitHub's legacy tree shape.
func collapseStrong(n *tree.Node) {
	for child := n.FirstChild; child != nil; child = child.Next {
		collapseStrong(child)
	}
	if n.Kind != tree.NodeStrong {
		return
	}
	for n.FirstChild != nil && n.FirstChild == n.LastChild && n.FirstChild.Kind == tree.NodeStrong {
		inner := n.FirstChild
		tree.RemoveChild(n, inner)
		for inner.FirstChild != nil {
			grand := inner.FirstChild
			tree.RemoveChild(inner, grand)
			tree.AppendChild(n, grand)
		}
	}
}

// filteredTags is the fixed GFM denylist of raw HTML tag names.
var filteredTags = []string{
	"title", "textarea", "style", "xmp", "iframe",
	"noembed", "noframes", "script", "plaintext",
}

func applyTagFilter(n *tree.Node) {
	switch n.Kind {
	case tree.NodeHTMLBlock:
		n.Block.Literal = filterTagLiteral(n.Block.Literal)
	case tree.NodeHTMLInline:
		n.Inline.Text = filterTagLiteral(n.Inline.Text)
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		applyTagFilter(child)
	}
}

// filterTagLiteral rewrites the leading < of every denylisted open or close
// tag to &lt;.
func filterTagLiteral(s string) string {
	var sb strings.Builder
	last := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '<' || !atFilteredTag(s, i) {
			continue
		}
		sb.WriteString(s[last:i])
		sb.WriteString("&lt;")
		last = i + 1
	}
	if last == 0 {
		return s
	}
	sb.WriteString(s[last:])
	return sb.String()
}

func atFilteredTag(s string, i int) bool {
	j := i + 1
	if j < len(s) && s[j] == '/' {
		j++
	}
	for _, name := range filteredTags {
		end := j + len(name)
		if end >= len(s) || !strings.EqualFold(s[j:end], name) {
			continue
		}
		switch s[end] {
		case ' ', '\t', '\n', '/', '>':
			return true
		}
	}
	return false
}

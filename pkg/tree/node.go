package tree

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock
	NodeTable
	NodeTableRow
	NodeTableCell

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeStrikethrough
	NodeCodeSpan
	NodeLink
	NodeImage
	NodeAutolink
	NodeSoftBreak
	NodeHardBreak
	NodeHTMLInline
)

var kindNames = [...]string{
	NodeDocument:      "Document",
	NodeParagraph:     "Paragraph",
	NodeHeading:       "Heading",
	NodeList:          "List",
	NodeListItem:      "ListItem",
	NodeBlockquote:    "Blockquote",
	NodeCodeBlock:     "CodeBlock",
	NodeThematicBreak: "ThematicBreak",
	NodeHTMLBlock:     "HTMLBlock",
	NodeTable:         "Table",
	NodeTableRow:      "TableRow",
	NodeTableCell:     "TableCell",
	NodeText:          "Text",
	NodeEmphasis:      "Emphasis",
	NodeStrong:        "Strong",
	NodeStrikethrough: "Strikethrough",
	NodeCodeSpan:      "CodeSpan",
	NodeLink:          "Link",
	NodeImage:         "Image",
	NodeAutolink:      "Autolink",
	NodeSoftBreak:     "SoftBreak",
	NodeHardBreak:     "HardBreak",
	NodeHTMLInline:    "HTMLInline",
}

// String returns the kind name without the Node prefix.
func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Node represents a single node in the Markdown AST.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Source byte range [Start, End) into File.Content.
	// Both are -1 for synthetic nodes with no source extent.
	Start int
	End   int

	// File is a back-reference to the containing Snapshot.
	File *Snapshot

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeParagraph, NodeHeading, NodeList, NodeListItem,
		NodeBlockquote, NodeCodeBlock, NodeThematicBreak, NodeHTMLBlock,
		NodeTable, NodeTableRow, NodeTableCell:
		return true
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	switch n.Kind {
	case NodeText, NodeEmphasis, NodeStrong, NodeStrikethrough, NodeCodeSpan,
		NodeLink, NodeImage, NodeAutolink, NodeSoftBreak, NodeHardBreak,
		NodeHTMLInline:
		return true
	default:
		return false
	}
}

// IsContainer returns true for block nodes whose children are blocks.
func (n *Node) IsContainer() bool {
	switch n.Kind {
	case NodeDocument, NodeBlockquote, NodeList, NodeListItem, NodeTable, NodeTableRow:
		return true
	default:
		return false
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// PlainText returns the resolved textual content of this node and its
// descendants: literal text and code span content concatenated, with line
// breaks rendered as single spaces. Verbatim block literals are included.
func (n *Node) PlainText() string {
	var sb []byte
	//nolint:errcheck // the visitor never fails
	Walk(n, func(c *Node) error {
		switch c.Kind {
		case NodeText, NodeCodeSpan, NodeHTMLInline:
			if c.Inline != nil {
				sb = append(sb, c.Inline.Text...)
			}
		case NodeSoftBreak, NodeHardBreak:
			sb = append(sb, ' ')
		case NodeCodeBlock, NodeHTMLBlock:
			if c.Block != nil {
				sb = append(sb, c.Block.Literal...)
			}
		case NodeAutolink:
			switch {
			case c.Inline == nil:
			case c.Inline.Text != "":
				sb = append(sb, c.Inline.Text...)
			case c.Inline.Autolink != nil:
				sb = append(sb, c.Inline.Autolink.Destination...)
			}
		}
		return nil
	})
	return string(sb)
}

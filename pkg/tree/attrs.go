package tree

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading level (1-6) for NodeHeading.
	HeadingLevel int

	// Setext is true for setext-style headings (underlined with = or -).
	Setext bool

	// Literal holds the verbatim content of NodeCodeBlock and NodeHTMLBlock.
	// It is never inline-parsed.
	Literal string

	// List holds list-specific attributes for NodeList.
	List *ListAttrs

	// Item holds item-specific attributes for NodeListItem.
	Item *ItemAttrs

	// CodeBlock holds fence metadata for NodeCodeBlock.
	CodeBlock *CodeAttrs

	// Table holds column metadata for NodeTable.
	Table *TableAttrs

	// Row holds row metadata for NodeTableRow.
	Row *RowAttrs

	// Cell holds cell metadata for NodeTableCell.
	Cell *CellAttrs
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	// Ordered is true for ordered lists (1., 2., etc.).
	Ordered bool

	// BulletMarker is the bullet character for bullet lists: '-', '+' or '*'.
	BulletMarker byte

	// Delimiter is the delimiter for ordered lists: '.' or ')'.
	Delimiter byte

	// StartNumber is the starting number for ordered lists, taken from the
	// first item.
	StartNumber int

	// Tight is true if the list has no blank lines between or inside items.
	Tight bool
}

// TaskState records the task-list marker of a list item.
type TaskState uint8

const (
	// TaskNone marks a plain list item with no task marker.
	TaskNone TaskState = iota

	// TaskUnchecked marks an open task item ([ ]).
	TaskUnchecked

	// TaskChecked marks a completed task item ([x] or [X]).
	TaskChecked
)

// String returns a human-readable name for the task state.
func (t TaskState) String() string {
	switch t {
	case TaskUnchecked:
		return "unchecked"
	case TaskChecked:
		return "checked"
	default:
		return "none"
	}
}

// ItemAttrs holds attributes for list item nodes.
type ItemAttrs struct {
	// BulletMarker is the bullet character as written for this item.
	BulletMarker byte

	// Delimiter is the ordered-list delimiter as written for this item.
	Delimiter byte

	// Number is the ordinal as written for ordered items.
	Number int

	// Task is the task-list state of this item.
	Task TaskState
}

// CodeAttrs holds fence metadata for code block nodes.
type CodeAttrs struct {
	// Fenced is true for fenced code blocks, false for indented ones.
	Fenced bool

	// FenceChar is the fence character ('`' or '~').
	FenceChar byte

	// FenceLength is the number of fence characters in the opening fence.
	FenceLength int

	// Info is the full info string following the opening fence.
	Info string

	// Language is the first word of the info string. Populated only when
	// the active options surface fence languages.
	Language string
}

// Alignment is a table column alignment.
type Alignment uint8

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns a human-readable name for the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "none"
	}
}

// TableAttrs holds attributes for table nodes.
type TableAttrs struct {
	// Alignments holds one alignment per column, from the delimiter row.
	// Its length is the table's column count.
	Alignments []Alignment
}

// RowAttrs holds attributes for table row nodes.
type RowAttrs struct {
	// Header is true for the header row.
	Header bool
}

// CellAttrs holds attributes for table cell nodes.
type CellAttrs struct {
	// Alignment is the column alignment inherited from the delimiter row.
	Alignment Alignment
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Text holds the resolved content for NodeText, NodeCodeSpan and
	// NodeHTMLInline. Escapes and entity references are already decoded.
	Text string

	// Link holds link attributes for NodeLink and NodeImage.
	Link *LinkAttrs

	// Autolink holds attributes for NodeAutolink.
	Autolink *AutolinkAttrs
}

// ReferenceStyle indicates the syntax style of a link or image reference.
type ReferenceStyle uint8

const (
	// RefStyleInline represents inline links: [text](url) or ![alt](url).
	RefStyleInline ReferenceStyle = iota

	// RefStyleFull represents full reference links: [text][label].
	RefStyleFull

	// RefStyleCollapsed represents collapsed reference links: [label][].
	RefStyleCollapsed

	// RefStyleShortcut represents shortcut reference links: [label].
	RefStyleShortcut
)

// String returns a human-readable name for the reference style.
func (s ReferenceStyle) String() string {
	switch s {
	case RefStyleInline:
		return "inline"
	case RefStyleFull:
		return "full"
	case RefStyleCollapsed:
		return "collapsed"
	case RefStyleShortcut:
		return "shortcut"
	default:
		return "unknown"
	}
}

// LinkAttrs holds attributes for link and image nodes.
type LinkAttrs struct {
	// Destination is the link URL.
	Destination string

	// Title is the optional link title.
	Title string

	// ReferenceLabel is the normalized label for reference-style links.
	// Empty for inline links.
	ReferenceLabel string

	// ReferenceStyle indicates the syntax style used.
	ReferenceStyle ReferenceStyle
}

// AutolinkAttrs holds attributes for autolink nodes.
type AutolinkAttrs struct {
	// Destination is the link target, including any scheme the autolink
	// recognizer added (mailto:, http://).
	Destination string

	// Email is true for email autolinks.
	Email bool
}

// NewBlockAttrs creates a new BlockAttrs with default values.
func NewBlockAttrs() *BlockAttrs {
	return &BlockAttrs{}
}

// NewInlineAttrs creates a new InlineAttrs with default values.
func NewInlineAttrs() *InlineAttrs {
	return &InlineAttrs{}
}

// WithHeadingLevel sets the heading level and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithHeadingLevel(level int) *BlockAttrs {
	a.HeadingLevel = level
	return a
}

// WithList sets list attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithList(attrs *ListAttrs) *BlockAttrs {
	a.List = attrs
	return a
}

// WithItem sets item attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithItem(attrs *ItemAttrs) *BlockAttrs {
	a.Item = attrs
	return a
}

// WithCodeBlock sets fence metadata and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithCodeBlock(attrs *CodeAttrs) *BlockAttrs {
	a.CodeBlock = attrs
	return a
}

// WithLiteral sets the verbatim content and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithLiteral(literal string) *BlockAttrs {
	a.Literal = literal
	return a
}

// WithText sets the text content and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithText(text string) *InlineAttrs {
	a.Text = text
	return a
}

// WithLink sets link attributes and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithLink(attrs *LinkAttrs) *InlineAttrs {
	a.Link = attrs
	return a
}

// WithAutolink sets autolink attributes and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithAutolink(attrs *AutolinkAttrs) *InlineAttrs {
	a.Autolink = attrs
	return a
}

package block

import (
	"bytes"
	"strings"

	"github.com/vmittal27/mkforge/pkg/flavor"
	"github.com/vmittal27/mkforge/pkg/tree"
)

const (
	// maxNesting caps the depth of the open block stack. Markers past the
	// cap read as ordinary text.
	maxNesting = 256

	// codeIndent is the column width that turns a line into indented code.
	codeIndent = 4

	// tabStop is the column interval tabs advance to.
	tabStop = 4
)

// openBlock is one entry of the open block stack.
type openBlock struct {
	node *tree.Node

	// openedLine is the line number the block opened on.
	openedLine int

	// segs accumulates content lines: inline text for paragraphs and
	// headings, literal lines for code and HTML blocks.
	segs []Segment

	// pending holds blank lines inside an indented code block. They join
	// the literal only if more code follows, so trailing blanks never
	// count.
	pending []Segment

	// indent is the content column a list item requires of continuation
	// lines, relative to the enclosing container.
	indent int

	// fenceChar, fenceLen and fenceIndent describe an open fenced code
	// block. fenceChar is zero for indented code.
	fenceChar   byte
	fenceLen    int
	fenceIndent int

	// htmlKind is the HTML block kind: 1, 2, 6 or 7.
	htmlKind int

	// alignments holds the column alignments of an open table.
	alignments []tree.Alignment
}

type scanner struct {
	src   []byte
	opts  flavor.Options
	arena *tree.Arena

	stack []*openBlock
	refs  RefMap
	raws  []Raw

	// current line
	lineNo    int
	lineStart int
	lineEnd   int
	nextLine  int
	pos       int
	col       int

	// matched is the index of the deepest stack entry whose continuation
	// held on the current line.
	matched int

	// lastContentEnd is where the previous line's content ended. Blocks
	// closed by a later line end there.
	lastContentEnd int

	// blankAfter holds, per node, whether the last line the block or a
	// descendant consumed was blank. It drives tight/loose list detection
	// and survives block closing.
	blankAfter map[*tree.Node]bool
}

// marker is a saved scan position for backtracking.
type marker struct {
	pos int
	col int
}

func newScanner(src []byte, opts flavor.Options, arena *tree.Arena) *scanner {
	doc := arena.New(tree.NodeDocument)
	doc.Start = 0
	s := &scanner{
		src:        src,
		opts:       opts,
		arena:      arena,
		refs:       make(RefMap),
		blankAfter: make(map[*tree.Node]bool),
	}
	s.stack = append(s.stack, &openBlock{node: doc})
	return s
}

func (s *scanner) scan() Result {
	doc := s.stack[0].node
	for off := 0; off < len(s.src); off = s.nextLine {
		s.readLine(off)
		s.processLine()
		s.lastContentEnd = s.lineEnd
	}
	for len(s.stack) > 1 {
		s.closeBlock()
	}
	doc.End = s.lastContentEnd
	return Result{Doc: doc, Refs: s.refs, Raws: s.raws}
}

func (s *scanner) readLine(off int) {
	s.lineNo++
	s.lineStart = off
	if idx := bytes.IndexByte(s.src[off:], '\n'); idx >= 0 {
		s.lineEnd = off + idx
		s.nextLine = off + idx + 1
	} else {
		s.lineEnd = len(s.src)
		s.nextLine = len(s.src)
	}
	if s.lineEnd > s.lineStart && s.src[s.lineEnd-1] == '\r' {
		s.lineEnd--
	}
	s.pos = s.lineStart
	s.col = 0
}

// processLine threads one line through the open blocks: continuation
// matching, literal leaves, new block starts and leaf content.
func (s *scanner) processLine() {
	s.matchContinuations()
	blankAfter := s.restBlank()

	handled := false
	if s.matched == len(s.stack)-1 {
		tip := s.tip()
		switch tip.node.Kind {
		case tree.NodeCodeBlock:
			if tip.fenceChar != 0 {
				s.fencedCodeLine(tip)
			} else {
				s.indentedCodeLine(tip)
			}
			handled = true
		case tree.NodeHTMLBlock:
			s.htmlBlockLine(tip)
			handled = true
		case tree.NodeTable:
			if s.interruptsTable() {
				s.closeBlock()
			} else {
				s.tableRowLine(tip)
				handled = true
			}
		}
	}
	if !handled {
		s.openAndFill()
	}
	s.recordBlank(blankAfter)
}

// matchContinuations re-matches the open blocks against the line, consuming
// container markers as it descends.
func (s *scanner) matchContinuations() {
	s.matched = 0
	for i := 1; i < len(s.stack); i++ {
		b := s.stack[i]
		switch b.node.Kind {
		case tree.NodeBlockquote:
			if !s.tryBlockquoteMarker() {
				return
			}
		case tree.NodeList:
			// A list continues while its items do.
		case tree.NodeListItem:
			if s.restBlank() {
				// An item that began with a blank line closes on a
				// second one.
				if b.node.FirstChild == nil {
					return
				}
			} else if s.indentCols() >= b.indent {
				s.consumeIndent(b.indent)
			} else {
				return
			}
		case tree.NodeParagraph:
			if s.restBlank() {
				return
			}
		case tree.NodeCodeBlock:
			if b.fenceChar == 0 {
				if s.indentCols() >= codeIndent {
					s.consumeIndent(codeIndent)
				} else if !s.restBlank() {
					return
				}
			}
		case tree.NodeHTMLBlock:
			if b.htmlKind >= 6 && s.restBlank() {
				return
			}
		case tree.NodeTable:
			if s.restBlank() {
				return
			}
		}
		s.matched = i
	}
}

// openAndFill tries new block starts at the deepest matched container, then
// routes the remaining text to the right leaf. Unmatched blocks stay open
// until something forces them closed, which is what makes lazy paragraph
// continuation work.
func (s *scanner) openAndFill() {
	for {
		if s.restBlank() || s.indentCols() >= codeIndent {
			break
		}
		if s.tryTableLine() {
			return
		}
		if s.tryBlockquoteStart() {
			continue
		}
		if s.tryATXHeading() {
			return
		}
		if s.tryFenceOpen() {
			return
		}
		if s.tryHTMLOpen() {
			return
		}
		if s.trySetextUnderline() {
			return
		}
		if s.tryThematicBreak() {
			return
		}
		if s.tryListStart() {
			continue
		}
		break
	}

	blank := s.restBlank()
	tip := s.tip()

	// An indented chunk continues a paragraph rather than opening code.
	if !blank && s.indentCols() >= codeIndent && tip.node.Kind != tree.NodeParagraph {
		s.openIndentedCode()
		return
	}

	// A text line continues an open paragraph, lazily when containers
	// above it failed to match.
	if !blank && tip.node.Kind == tree.NodeParagraph {
		s.paragraphLine(tip)
		return
	}

	if blank {
		if mb := s.stack[s.matched]; mb.node.LastChild != nil {
			s.blankAfter[mb.node.LastChild] = true
		}
		s.closeUnmatched()
		return
	}

	s.closeUnmatched()
	s.openParagraph()
}

// recordBlank updates the blank-line flags after a line is processed. The
// flag lands on the deepest open block and clears on everything above it.
func (s *scanner) recordBlank(blank bool) {
	tip := s.tip()
	flag := blank
	switch {
	case tip.node.Kind == tree.NodeBlockquote:
		flag = false
	case tip.node.Kind == tree.NodeCodeBlock && tip.fenceChar != 0:
		flag = false
	case tip.node.Kind == tree.NodeListItem && tip.node.FirstChild == nil && tip.openedLine == s.lineNo:
		flag = false
	}
	s.blankAfter[tip.node] = flag
	for i := len(s.stack) - 2; i >= 0; i-- {
		s.blankAfter[s.stack[i].node] = false
	}
}

func (s *scanner) tip() *openBlock {
	return s.stack[len(s.stack)-1]
}

// paragraphTip reports whether the line continues an open paragraph with all
// of its containers matched. Several constructs may not interrupt one.
func (s *scanner) paragraphTip() bool {
	return s.matched == len(s.stack)-1 && s.tip().node.Kind == tree.NodeParagraph
}

// openChild closes the unmatched tail and any open leaf, then opens a block
// of the given kind under the deepest container that accepts it.
func (s *scanner) openChild(kind tree.NodeKind, start int) *openBlock {
	s.closeUnmatched()
	for !canContain(s.tip().node.Kind, kind) {
		s.closeBlock()
	}
	node := s.arena.New(kind)
	node.Start = start
	tree.AppendChild(s.tip().node, node)
	b := &openBlock{node: node, openedLine: s.lineNo}
	s.stack = append(s.stack, b)
	s.matched = len(s.stack) - 1
	return b
}

func canContain(parent, child tree.NodeKind) bool {
	switch parent {
	case tree.NodeDocument, tree.NodeBlockquote, tree.NodeListItem:
		return child != tree.NodeListItem
	case tree.NodeList:
		return child == tree.NodeListItem
	default:
		return false
	}
}

func (s *scanner) closeUnmatched() {
	for len(s.stack)-1 > s.matched {
		s.closeBlock()
	}
}

// closeBlock finalizes the innermost open block.
func (s *scanner) closeBlock() {
	b := s.tip()
	s.stack = s.stack[:len(s.stack)-1]
	if s.matched > len(s.stack)-1 {
		s.matched = len(s.stack) - 1
	}
	if b.node.End < 0 {
		b.node.End = s.lastContentEnd
	}
	switch b.node.Kind {
	case tree.NodeParagraph:
		s.finalizeParagraph(b)
	case tree.NodeHeading:
		s.raws = append(s.raws, Raw{Node: b.node, Segments: b.segs})
	case tree.NodeCodeBlock:
		s.finalizeCode(b)
	case tree.NodeHTMLBlock:
		s.finalizeHTML(b)
	case tree.NodeList:
		s.finalizeList(b)
	}
}

// finalizeParagraph strips leading reference definitions and records the
// remaining lines for inline resolution. A paragraph that held only
// definitions leaves no node behind.
func (s *scanner) finalizeParagraph(b *openBlock) {
	segs := s.extractRefDefs(b.segs)
	if len(segs) == 0 {
		tree.RemoveChild(b.node.Parent, b.node)
		return
	}
	b.node.Start = segs[0].Start
	s.raws = append(s.raws, Raw{Node: b.node, Segments: segs})
}

func (s *scanner) finalizeCode(b *openBlock) {
	if b.fenceChar == 0 && len(b.segs) > 0 {
		b.node.End = b.segs[len(b.segs)-1].End
	}
	var sb strings.Builder
	for _, seg := range b.segs {
		sb.Write(s.src[seg.Start:seg.End])
		sb.WriteByte('\n')
	}
	b.node.Block.Literal = sb.String()
}

func (s *scanner) finalizeHTML(b *openBlock) {
	var sb strings.Builder
	for _, seg := range b.segs {
		sb.Write(s.src[seg.Start:seg.End])
		sb.WriteByte('\n')
	}
	b.node.Block.Literal = sb.String()
}

// finalizeList settles the tight flag: a list is loose when any blank line
// separates items or the blocks inside an item.
func (s *scanner) finalizeList(b *openBlock) {
	tight := true
loop:
	for item := b.node.FirstChild; item != nil; item = item.Next {
		if s.endsBlank(item) && item.Next != nil {
			tight = false
			break
		}
		for child := item.FirstChild; child != nil; child = child.Next {
			if s.endsBlank(child) && (item.Next != nil || child.Next != nil) {
				tight = false
				break loop
			}
		}
	}
	b.node.Block.List.Tight = tight
}

func (s *scanner) endsBlank(n *tree.Node) bool {
	for n != nil {
		if s.blankAfter[n] {
			return true
		}
		if n.Kind == tree.NodeList || n.Kind == tree.NodeListItem {
			n = n.LastChild
			continue
		}
		return false
	}
	return false
}

// openParagraph starts a paragraph with the rest of the line. Inside a list
// item, an enabled task-list marker on the first line is consumed here.
func (s *scanner) openParagraph() {
	s.skipIndent()
	b := s.openChild(tree.NodeParagraph, s.pos)
	seg := Segment{s.pos, s.lineEnd}
	if s.opts.TaskList {
		seg = s.taskMarker(b.node, seg)
	}
	if seg.Len() > 0 {
		b.node.Start = seg.Start
		b.segs = append(b.segs, seg)
	}
	s.pos = s.lineEnd
}

// paragraphLine appends a continuation line with its indentation dropped.
func (s *scanner) paragraphLine(b *openBlock) {
	s.skipIndent()
	b.segs = append(b.segs, Segment{s.pos, s.lineEnd})
	s.pos = s.lineEnd
}

// taskMarker strips a leading task-list marker from the first paragraph line
// of a list item and records the checkbox state on the item.
func (s *scanner) taskMarker(para *tree.Node, seg Segment) Segment {
	item := para.Parent
	if item == nil || item.Kind != tree.NodeListItem || para.Prev != nil {
		return seg
	}
	rest := s.src[seg.Start:seg.End]
	if len(rest) < 3 || rest[0] != '[' || rest[2] != ']' {
		return seg
	}
	var state tree.TaskState
	switch rest[1] {
	case ' ':
		state = tree.TaskUnchecked
	case 'x', 'X':
		state = tree.TaskChecked
	default:
		return seg
	}
	if len(rest) > 3 && rest[3] != ' ' && rest[3] != '\t' {
		return seg
	}
	item.Block.Item.Task = state
	start := seg.Start + 3
	for start < seg.End && (s.src[start] == ' ' || s.src[start] == '\t') {
		start++
	}
	return Segment{start, seg.End}
}

func (s *scanner) mark() marker {
	return marker{s.pos, s.col}
}

func (s *scanner) reset(m marker) {
	s.pos, s.col = m.pos, m.col
}

func (s *scanner) peek() byte {
	if s.pos < s.lineEnd {
		return s.src[s.pos]
	}
	return 0
}

// advance consumes n bytes, expanding tabs into the column count.
func (s *scanner) advance(n int) {
	for i := 0; i < n && s.pos < s.lineEnd; i++ {
		if s.src[s.pos] == '\t' {
			s.col += tabStop - s.col%tabStop
		} else {
			s.col++
		}
		s.pos++
	}
}

// indentCols returns the column width of the whitespace run at the current
// position without consuming it.
func (s *scanner) indentCols() int {
	col := s.col
	for i := s.pos; i < s.lineEnd; i++ {
		switch s.src[i] {
		case ' ':
			col++
		case '\t':
			col += tabStop - col%tabStop
		default:
			return col - s.col
		}
	}
	return col - s.col
}

// consumeIndent consumes up to want columns of whitespace. A tab straddling
// the boundary is consumed whole.
func (s *scanner) consumeIndent(want int) {
	target := s.col + want
	for s.pos < s.lineEnd && s.col < target {
		if c := s.src[s.pos]; c != ' ' && c != '\t' {
			return
		}
		s.advance(1)
	}
}

// skipIndent consumes all leading whitespace.
func (s *scanner) skipIndent() {
	for s.pos < s.lineEnd {
		if c := s.src[s.pos]; c != ' ' && c != '\t' {
			return
		}
		s.advance(1)
	}
}

// restBlank reports whether only whitespace remains on the line.
func (s *scanner) restBlank() bool {
	for i := s.pos; i < s.lineEnd; i++ {
		if c := s.src[i]; c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

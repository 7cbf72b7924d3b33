package block

import (
	"bytes"
	"strings"

	"github.com/vmittal27/mkforge/pkg/tree"
)

// tryBlockquoteMarker consumes a blockquote continuation marker: up to three
// columns of indentation, >, and one optional space.
func (s *scanner) tryBlockquoteMarker() bool {
	if s.indentCols() >= codeIndent {
		return false
	}
	m := s.mark()
	s.skipIndent()
	if s.peek() != '>' {
		s.reset(m)
		return false
	}
	s.advance(1)
	if c := s.peek(); c == ' ' || c == '\t' {
		s.advance(1)
	}
	return true
}

// tryBlockquoteStart opens a blockquote at a > marker.
func (s *scanner) tryBlockquoteStart() bool {
	if len(s.stack) >= maxNesting {
		return false
	}
	m := s.mark()
	s.skipIndent()
	if s.peek() != '>' {
		s.reset(m)
		return false
	}
	start := s.pos
	s.advance(1)
	if c := s.peek(); c == ' ' || c == '\t' {
		s.advance(1)
	}
	s.openChild(tree.NodeBlockquote, start)
	return true
}

// tryATXHeading opens and closes an ATX heading on the current line.
func (s *scanner) tryATXHeading() bool {
	m := s.mark()
	s.skipIndent()
	start := s.pos
	level := 0
	for s.peek() == '#' {
		level++
		s.advance(1)
	}
	if level == 0 || level > 6 {
		s.reset(m)
		return false
	}
	if c := s.peek(); c != 0 && c != ' ' && c != '\t' {
		s.reset(m)
		return false
	}
	b := s.openChild(tree.NodeHeading, start)
	b.node.Block = tree.NewBlockAttrs().WithHeadingLevel(level)
	s.skipIndent()
	content := trimATXClosing(s.src, Segment{s.pos, s.lineEnd})
	if content.Len() > 0 {
		b.segs = append(b.segs, content)
	}
	b.node.End = s.lineEnd
	s.closeBlock()
	s.pos = s.lineEnd
	return true
}

// trimATXClosing drops an optional closing sequence of # characters, which
// must be preceded by whitespace or make up the whole content.
func trimATXClosing(src []byte, seg Segment) Segment {
	end := seg.End
	for end > seg.Start && (src[end-1] == ' ' || src[end-1] == '\t') {
		end--
	}
	run := end
	for run > seg.Start && src[run-1] == '#' {
		run--
	}
	if run < end && (run == seg.Start || src[run-1] == ' ' || src[run-1] == '\t') {
		end = run
		for end > seg.Start && (src[end-1] == ' ' || src[end-1] == '\t') {
			end--
		}
	}
	return Segment{seg.Start, end}
}

// tryFenceOpen opens a fenced code block at a run of three or more backticks
// or tildes. A backtick fence's info string may not contain backticks.
func (s *scanner) tryFenceOpen() bool {
	m := s.mark()
	indent := s.indentCols()
	s.skipIndent()
	c := s.peek()
	if c != '`' && c != '~' {
		s.reset(m)
		return false
	}
	start := s.pos
	count := 0
	for s.peek() == c {
		count++
		s.advance(1)
	}
	if count < 3 {
		s.reset(m)
		return false
	}
	info := bytes.TrimSpace(s.src[s.pos:s.lineEnd])
	if c == '`' && bytes.IndexByte(info, '`') >= 0 {
		s.reset(m)
		return false
	}
	b := s.openChild(tree.NodeCodeBlock, start)
	b.fenceChar = c
	b.fenceLen = count
	b.fenceIndent = indent
	attrs := &tree.CodeAttrs{
		Fenced:      true,
		FenceChar:   c,
		FenceLength: count,
		Info:        Unescape(string(info)),
	}
	if s.opts.LanguageTagged && attrs.Info != "" {
		attrs.Language = firstWord(attrs.Info)
	}
	b.node.Block = tree.NewBlockAttrs().WithCodeBlock(attrs)
	s.pos = s.lineEnd
	return true
}

// fencedCodeLine appends one line to a fenced code block, or closes it when
// the line is a matching closing fence.
func (s *scanner) fencedCodeLine(b *openBlock) {
	m := s.mark()
	if s.indentCols() < codeIndent {
		s.skipIndent()
		if s.peek() == b.fenceChar {
			count := 0
			for s.peek() == b.fenceChar {
				count++
				s.advance(1)
			}
			if count >= b.fenceLen && s.restBlank() {
				b.node.End = s.lineEnd
				s.closeBlock()
				return
			}
		}
	}
	s.reset(m)
	s.consumeIndent(b.fenceIndent)
	b.segs = append(b.segs, Segment{s.pos, s.lineEnd})
	s.pos = s.lineEnd
}

// openIndentedCode starts an indented code block, consuming four columns.
func (s *scanner) openIndentedCode() {
	s.consumeIndent(codeIndent)
	b := s.openChild(tree.NodeCodeBlock, s.pos)
	b.node.Block = tree.NewBlockAttrs().WithCodeBlock(&tree.CodeAttrs{})
	b.segs = append(b.segs, Segment{s.pos, s.lineEnd})
	s.pos = s.lineEnd
}

// indentedCodeLine appends one matched line to an indented code block.
func (s *scanner) indentedCodeLine(b *openBlock) {
	if s.restBlank() {
		s.consumeIndent(codeIndent)
		b.pending = append(b.pending, Segment{s.pos, s.lineEnd})
		return
	}
	b.segs = append(b.segs, b.pending...)
	b.pending = b.pending[:0]
	b.segs = append(b.segs, Segment{s.pos, s.lineEnd})
	s.pos = s.lineEnd
}

// trySetextUnderline converts the open paragraph into a setext heading when
// the line is an underline of = or - characters. A paragraph holding only
// reference definitions yields no heading; the line then reads as whatever
// block it starts on its own.
func (s *scanner) trySetextUnderline() bool {
	if !s.paragraphTip() {
		return false
	}
	m := s.mark()
	s.skipIndent()
	c := s.peek()
	if c != '=' && c != '-' {
		s.reset(m)
		return false
	}
	for s.peek() == c {
		s.advance(1)
	}
	if !s.restBlank() {
		s.reset(m)
		return false
	}
	b := s.tip()
	segs := s.extractRefDefs(b.segs)
	if len(segs) == 0 {
		s.stack = s.stack[:len(s.stack)-1]
		if s.matched > len(s.stack)-1 {
			s.matched = len(s.stack) - 1
		}
		tree.RemoveChild(b.node.Parent, b.node)
		s.reset(m)
		return false
	}
	level := 1
	if c == '-' {
		level = 2
	}
	node := b.node
	node.Kind = tree.NodeHeading
	node.Start = segs[0].Start
	node.End = s.lineEnd
	node.Block = tree.NewBlockAttrs().WithHeadingLevel(level)
	node.Block.Setext = true
	b.segs = segs
	s.closeBlock()
	s.pos = s.lineEnd
	return true
}

// tryThematicBreak opens and closes a thematic break on the current line.
func (s *scanner) tryThematicBreak() bool {
	m := s.mark()
	s.skipIndent()
	start := s.pos
	if !isThematicLine(s.src[s.pos:s.lineEnd]) {
		s.reset(m)
		return false
	}
	b := s.openChild(tree.NodeThematicBreak, start)
	b.node.End = s.lineEnd
	s.closeBlock()
	s.pos = s.lineEnd
	return true
}

// isThematicLine reports whether text is a thematic break: three or more
// matching -, _ or * characters with nothing but whitespace between.
func isThematicLine(text []byte) bool {
	var c byte
	count := 0
	for _, b := range text {
		switch b {
		case ' ', '\t':
		case '-', '_', '*':
			if c == 0 {
				c = b
			} else if b != c {
				return false
			}
			count++
		default:
			return false
		}
	}
	return count >= 3
}

// isATXPrefix reports whether text begins with an ATX heading marker.
func isATXPrefix(text []byte) bool {
	n := 0
	for n < len(text) && text[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return false
	}
	return n == len(text) || text[n] == ' ' || text[n] == '\t'
}

// isFencePrefix reports whether text begins with a code fence opening.
func isFencePrefix(text []byte) bool {
	c := text[0]
	if c != '`' && c != '~' {
		return false
	}
	n := 0
	for n < len(text) && text[n] == c {
		n++
	}
	if n < 3 {
		return false
	}
	return c == '~' || bytes.IndexByte(text[n:], '`') < 0
}

func firstWord(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

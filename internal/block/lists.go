package block

import "github.com/vmittal27/mkforge/pkg/tree"

// listData captures one parsed list marker.
type listData struct {
	ordered    bool
	bullet     byte
	delim      byte
	start      int
	indent     int
	beganBlank bool
	markerPos  int
}

// tryListMarker parses a list marker and its trailing spacing, consuming
// both. The reported indent is the content column continuation lines must
// reach, relative to the enclosing container.
func (s *scanner) tryListMarker() (listData, bool) {
	var d listData
	m := s.mark()
	s.skipIndent()
	d.markerPos = s.pos

	switch c := s.peek(); {
	case c == '-' || c == '+' || c == '*':
		d.bullet = c
		s.advance(1)
	case isDigit(c):
		digits := 0
		n := 0
		for isDigit(s.peek()) {
			digits++
			if digits > 9 {
				s.reset(m)
				return d, false
			}
			n = n*10 + int(s.peek()-'0')
			s.advance(1)
		}
		delim := s.peek()
		if delim != '.' && delim != ')' {
			s.reset(m)
			return d, false
		}
		d.ordered = true
		d.delim = delim
		d.start = n
		s.advance(1)
	default:
		s.reset(m)
		return d, false
	}

	markerEnd := s.col - m.col
	if s.restBlank() {
		// An item may begin with an empty marker line; content then
		// sits one column past the marker.
		d.beganBlank = true
		d.indent = markerEnd + 1
		return d, true
	}
	spaces := s.indentCols()
	switch {
	case spaces == 0:
		s.reset(m)
		return d, false
	case spaces >= 5:
		// The content starts one column in; the rest of the run reads
		// as indented code inside the item.
		s.consumeIndent(1)
		d.indent = markerEnd + 1
	default:
		s.consumeIndent(spaces)
		d.indent = markerEnd + spaces
	}
	return d, true
}

// tryListStart opens a list item, starting a new list when no compatible one
// is open. Only a nonempty bullet item or an ordered item numbered 1 may
// interrupt a paragraph.
func (s *scanner) tryListStart() bool {
	if len(s.stack)+1 >= maxNesting {
		return false
	}
	m := s.mark()
	d, ok := s.tryListMarker()
	if !ok {
		return false
	}
	if s.paragraphTip() && (d.beganBlank || (d.ordered && d.start != 1)) {
		s.reset(m)
		return false
	}

	s.closeUnmatched()
	tip := s.tip()
	if tip.node.Kind != tree.NodeList || !sameList(tip.node.Block.List, d) {
		lb := s.openChild(tree.NodeList, d.markerPos)
		lb.node.Block = tree.NewBlockAttrs().WithList(&tree.ListAttrs{
			Ordered:      d.ordered,
			BulletMarker: d.bullet,
			Delimiter:    d.delim,
			StartNumber:  d.start,
			Tight:        true,
		})
	}
	ib := s.openChild(tree.NodeListItem, d.markerPos)
	ib.node.Block = tree.NewBlockAttrs().WithItem(&tree.ItemAttrs{
		BulletMarker: d.bullet,
		Delimiter:    d.delim,
		Number:       d.start,
	})
	ib.indent = d.indent
	return true
}

// sameList reports whether an open list accepts an item with this marker.
// A different bullet or delimiter starts a sibling list instead.
func sameList(attrs *tree.ListAttrs, d listData) bool {
	if attrs == nil || attrs.Ordered != d.ordered {
		return false
	}
	if d.ordered {
		return attrs.Delimiter == d.delim
	}
	return attrs.BulletMarker == d.bullet
}

// isListMarkerPrefix reports whether text begins with a list marker.
func isListMarkerPrefix(text []byte) bool {
	i := 0
	switch text[0] {
	case '-', '+', '*':
		i = 1
	default:
		for i < len(text) && i < 9 && isDigit(text[i]) {
			i++
		}
		if i == 0 || i >= len(text) || (text[i] != '.' && text[i] != ')') {
			return false
		}
		i++
	}
	return i == len(text) || text[i] == ' ' || text[i] == '\t'
}

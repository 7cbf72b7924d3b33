package block

import (
	"bytes"

	"github.com/vmittal27/mkforge/pkg/tree"
)

// tryTableLine starts a table when tables are enabled, the line continues an
// open paragraph, and it parses as a delimiter row. Checked ahead of the
// native block starts: a row like "- | -" is a delimiter here, not a list.
func (s *scanner) tryTableLine() bool {
	if !s.opts.Table || !s.paragraphTip() {
		return false
	}
	b := s.tip()
	if len(b.segs) == 0 {
		return false
	}
	return s.tryTableStart(b)
}

// tryTableStart converts the open paragraph's last line into a table header
// when the current line is a delimiter row with the same cell count. Earlier
// paragraph lines stay behind as a plain paragraph.
func (s *scanner) tryTableStart(b *openBlock) bool {
	alignments, ok := parseDelimiterRow(s.src, Segment{s.pos, s.lineEnd})
	if !ok {
		return false
	}
	header := b.segs[len(b.segs)-1]
	cells := splitRow(s.src, header)
	if len(cells) != len(alignments) {
		return false
	}

	b.segs = b.segs[:len(b.segs)-1]
	if len(b.segs) == 0 {
		s.stack = s.stack[:len(s.stack)-1]
		if s.matched > len(s.stack)-1 {
			s.matched = len(s.stack) - 1
		}
		tree.RemoveChild(b.node.Parent, b.node)
	} else {
		b.node.End = b.segs[len(b.segs)-1].End
		s.closeBlock()
	}

	tb := s.openChild(tree.NodeTable, header.Start)
	tb.alignments = alignments
	tb.node.Block = tree.NewBlockAttrs()
	tb.node.Block.Table = &tree.TableAttrs{Alignments: alignments}
	s.appendRow(tb, header, cells, true)
	s.pos = s.lineEnd
	return true
}

// tableRowLine appends one body row to an open table.
func (s *scanner) tableRowLine(b *openBlock) {
	s.skipIndent()
	seg := Segment{s.pos, s.lineEnd}
	s.appendRow(b, seg, splitRow(s.src, seg), false)
	b.node.End = s.lineEnd
	s.pos = s.lineEnd
}

func (s *scanner) appendRow(table *openBlock, line Segment, cells []Segment, header bool) {
	row := s.arena.New(tree.NodeTableRow)
	row.Start = line.Start
	row.End = line.End
	row.Block = tree.NewBlockAttrs()
	row.Block.Row = &tree.RowAttrs{Header: header}
	tree.AppendChild(table.node, row)

	for i, cseg := range cells {
		cell := s.arena.New(tree.NodeTableCell)
		cell.Start = cseg.Start
		cell.End = cseg.End
		align := tree.AlignNone
		if i < len(table.alignments) {
			align = table.alignments[i]
		}
		cell.Block = tree.NewBlockAttrs()
		cell.Block.Cell = &tree.CellAttrs{Alignment: align}
		tree.AppendChild(row, cell)
		s.raws = append(s.raws, Raw{Node: cell, Segments: []Segment{cseg}, Cell: true})
	}
}

// interruptsTable reports whether the current line begins a construct that
// terminates an open table.
func (s *scanner) interruptsTable() bool {
	m := s.mark()
	defer s.reset(m)
	if s.indentCols() >= codeIndent {
		return false
	}
	s.skipIndent()
	rest := s.src[s.pos:s.lineEnd]
	if len(rest) == 0 {
		return false
	}
	if rest[0] == '>' {
		return true
	}
	if isThematicLine(rest) || isATXPrefix(rest) || isFencePrefix(rest) || isListMarkerPrefix(rest) {
		return true
	}
	return htmlBlockKind(rest, false) != 0
}

// parseDelimiterRow parses a table delimiter row into per-column alignments.
// Each cell must be a run of dashes with an optional colon at either end,
// and the row must contain at least one pipe.
func parseDelimiterRow(src []byte, seg Segment) ([]tree.Alignment, bool) {
	if bytes.IndexByte(src[seg.Start:seg.End], '|') < 0 {
		return nil, false
	}
	cells := splitRow(src, seg)
	if len(cells) == 0 {
		return nil, false
	}
	alignments := make([]tree.Alignment, 0, len(cells))
	for _, c := range cells {
		text := src[c.Start:c.End]
		if len(text) == 0 {
			return nil, false
		}
		left := text[0] == ':'
		right := len(text) > 1 && text[len(text)-1] == ':'
		body := text
		if left {
			body = body[1:]
		}
		if right {
			body = body[:len(body)-1]
		}
		if len(body) == 0 {
			return nil, false
		}
		for _, ch := range body {
			if ch != '-' {
				return nil, false
			}
		}
		switch {
		case left && right:
			alignments = append(alignments, tree.AlignCenter)
		case left:
			alignments = append(alignments, tree.AlignLeft)
		case right:
			alignments = append(alignments, tree.AlignRight)
		default:
			alignments = append(alignments, tree.AlignNone)
		}
	}
	return alignments, true
}

// splitRow splits a table line into trimmed cell segments. A backslash
// escapes the byte after it, so escaped pipes stay inside their cell. Outer
// pipes do not delimit cells of their own.
func splitRow(src []byte, seg Segment) []Segment {
	start := seg.Start
	for start < seg.End && (src[start] == ' ' || src[start] == '\t') {
		start++
	}
	if start < seg.End && src[start] == '|' {
		start++
	}

	var cells []Segment
	boundaries := 0
	cur := start
	for i := start; i < seg.End; i++ {
		switch src[i] {
		case '\\':
			i++
		case '|':
			cells = append(cells, trimCell(src, cur, i))
			boundaries++
			cur = i + 1
		}
	}
	tail := trimCell(src, cur, seg.End)
	if tail.Len() > 0 || boundaries == 0 {
		cells = append(cells, tail)
	}
	if boundaries == 0 && len(cells) == 1 && cells[0].Len() == 0 {
		return nil
	}
	return cells
}

func trimCell(src []byte, start, end int) Segment {
	for start < end && (src[start] == ' ' || src[start] == '\t') {
		start++
	}
	for end > start && (src[end-1] == ' ' || src[end-1] == '\t') {
		end--
	}
	return Segment{start, end}
}

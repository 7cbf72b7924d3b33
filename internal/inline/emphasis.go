package inline

import (
	"unicode"
	"unicode/utf8"

	"github.com/vmittal27/mkforge/pkg/tree"
)

// delimiter is one run of emphasis characters, doubly linked so pairing can
// consume entries from the middle of the stack.
type delimiter struct {
	node       *tree.Node
	prev, next *delimiter
	ch         byte
	length     int // characters not yet consumed
	orig       int // run length as scanned, for the multiple-of-three rule
	canOpen    bool
	canClose   bool
}

// delimiterRun scans a run of *, _ or ~ and records it as a potential
// delimiter with its flanking classification. The run stays in the tree as
// text until pairing consumes it.
func (p *parser) delimiterRun(c byte) {
	start := p.i
	for p.i < len(p.buf) && p.buf[p.i] == c {
		p.i++
	}
	n := p.i - start
	node := p.appendText(string(p.buf[start:p.i]), start, p.i)

	// Tilde runs longer than two never strike.
	if c == '~' && n > 2 {
		return
	}

	before := p.runeBefore(start)
	after := p.runeAfter(p.i)
	left := !isFlankSpace(after) && (!isFlankPunct(after) || isFlankSpace(before) || isFlankPunct(before))
	right := !isFlankSpace(before) && (!isFlankPunct(before) || isFlankSpace(after) || isFlankPunct(after))

	var canOpen, canClose bool
	if c == '_' {
		canOpen = left && (!right || isFlankPunct(before))
		canClose = right && (!left || isFlankPunct(after))
	} else {
		canOpen, canClose = left, right
	}
	if !canOpen && !canClose {
		return
	}

	d := &delimiter{
		node:     node,
		prev:     p.delims,
		ch:       c,
		length:   n,
		orig:     n,
		canOpen:  canOpen,
		canClose: canClose,
	}
	if d.prev != nil {
		d.prev.next = d
	}
	p.delims = d
}

func (p *parser) runeBefore(i int) rune {
	if i == 0 {
		return '\n'
	}
	r, _ := utf8.DecodeLastRune(p.buf[:i])
	return r
}

func (p *parser) runeAfter(i int) rune {
	if i >= len(p.buf) {
		return '\n'
	}
	r, _ := utf8.DecodeRune(p.buf[i:])
	return r
}

func isFlankSpace(r rune) bool {
	return unicode.IsSpace(r)
}

func isFlankPunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// processEmphasis pairs delimiters above bottom into emphasis, strong and
// strikethrough nodes, then discards the stack down to bottom. Bracket
// resolution calls it with the stack top recorded when the bracket opened;
// the final pass runs with a nil bottom.
func (p *parser) processEmphasis(bottom *delimiter) {
	closer := p.delims
	if closer == bottom {
		return
	}
	for closer != nil && closer.prev != bottom {
		closer = closer.prev
	}

	for closer != nil {
		if !closer.canClose {
			closer = closer.next
			continue
		}
		opener := closer.prev
		for opener != bottom && !delimsMatch(opener, closer) {
			opener = opener.prev
		}
		if opener == bottom {
			next := closer.next
			if !closer.canOpen {
				p.removeDelim(closer)
			}
			closer = next
			continue
		}
		closer = p.pairDelims(opener, closer)
	}

	for p.delims != bottom {
		p.removeDelim(p.delims)
	}
}

func delimsMatch(opener, closer *delimiter) bool {
	if opener.ch != closer.ch || !opener.canOpen {
		return false
	}
	if opener.ch == '~' {
		return opener.length == closer.length
	}
	// A run that could both open and close only pairs when the combined
	// length is not a multiple of three, unless both runs are.
	if (closer.canOpen || opener.canClose) &&
		(opener.orig+closer.orig)%3 == 0 &&
		(opener.orig%3 != 0 || closer.orig%3 != 0) {
		return false
	}
	return true
}

// pairDelims consumes matching delimiter characters from opener and closer,
// wraps the nodes between them, and returns the closer to continue with.
func (p *parser) pairDelims(opener, closer *delimiter) *delimiter {
	parent := opener.node.Parent

	use := 1
	kind := tree.NodeEmphasis
	switch {
	case closer.ch == '~':
		use = closer.length
		kind = tree.NodeStrikethrough
	case opener.length >= 2 && closer.length >= 2:
		use = 2
		kind = tree.NodeStrong
	}

	emph := p.arena.New(kind)
	opener.node.End -= use
	closer.node.Start += use
	emph.Start, emph.End = opener.node.End, closer.node.Start
	opener.length -= use
	closer.length -= use
	t := opener.node.Inline.Text
	opener.node.Inline.Text = t[:len(t)-use]
	t = closer.node.Inline.Text
	closer.node.Inline.Text = t[use:]

	tree.InsertAfter(opener.node, emph)
	for sib := emph.Next; sib != nil && sib != closer.node; {
		next := sib.Next
		tree.AppendChild(emph, sib)
		sib = next
	}

	// Delimiters between the pair can never match anything now.
	for d := closer.prev; d != opener; {
		prev := d.prev
		p.removeDelim(d)
		d = prev
	}

	if opener.length == 0 {
		tree.RemoveChild(parent, opener.node)
		p.removeDelim(opener)
	}
	if closer.length == 0 {
		next := closer.next
		tree.RemoveChild(parent, closer.node)
		p.removeDelim(closer)
		return next
	}
	return closer
}

func (p *parser) removeDelim(d *delimiter) {
	if d.prev != nil {
		d.prev.next = d.next
	}
	if d.next != nil {
		d.next.prev = d.prev
	} else {
		p.delims = d.prev
	}
}

package inline

import (
	"strings"

	"github.com/vmittal27/mkforge/internal/block"
	"github.com/vmittal27/mkforge/pkg/tree"
)

// bracket records an unresolved [ or ![ opener.
type bracket struct {
	node         *tree.Node // the bracket's placeholder text node
	prev         *bracket
	prevDelim    *delimiter // delimiter stack top when the bracket opened
	contentIdx   int        // buffer offset just past the bracket
	image        bool
	active       bool
	bracketAfter bool // a bracket pair closed inside this one
}

func (p *parser) openBracket(image bool) {
	start := p.i
	lit := "["
	p.i++
	if image {
		lit = "!["
		p.i++
	}
	node := p.appendText(lit, start, p.i)
	p.brackets = &bracket{
		node:       node,
		prev:       p.brackets,
		prevDelim:  p.delims,
		contentIdx: p.i,
		image:      image,
		active:     true,
	}
}

func (p *parser) popBracket() {
	p.brackets = p.brackets.prev
}

// closeBracket resolves a ] against the innermost open bracket, trying the
// inline form first and reference forms second. On failure the bracket text
// stays literal.
func (p *parser) closeBracket() {
	closerIdx := p.i
	opener := p.brackets
	if opener == nil {
		p.i++
		p.appendText("]", closerIdx, p.i)
		return
	}
	if !opener.active {
		p.popBracket()
		p.markBracketAfter()
		p.i++
		p.appendText("]", closerIdx, p.i)
		return
	}

	var dest, title, refLabel string
	style := tree.RefStyleInline
	end := 0
	matched := false

	if p.peekAt(closerIdx+1) == '(' {
		if d, t, after, ok := p.scanInlineLink(closerIdx + 1); ok {
			dest, title, end, matched = d, t, after, true
		}
	}
	if !matched {
		dest, title, refLabel, style, end, matched = p.matchReference(opener, closerIdx)
	}
	if !matched {
		p.popBracket()
		p.markBracketAfter()
		p.i++
		p.appendText("]", closerIdx, p.i)
		return
	}

	kind := tree.NodeLink
	if opener.image {
		kind = tree.NodeImage
	}
	link := p.arena.New(kind)
	link.Start = opener.node.Start
	link.End = p.pos[end]
	link.Inline = tree.NewInlineAttrs().WithLink(&tree.LinkAttrs{
		Destination:    dest,
		Title:          title,
		ReferenceLabel: refLabel,
		ReferenceStyle: style,
	})

	// The nodes after the opener become the link content, and the link takes
	// the opener's place.
	for sib := opener.node.Next; sib != nil; {
		next := sib.Next
		tree.AppendChild(link, sib)
		sib = next
	}
	tree.ReplaceChild(p.node, opener.node, link)

	p.processEmphasis(opener.prevDelim)
	p.popBracket()
	if kind == tree.NodeLink {
		// Links do not nest: earlier link openers can no longer match.
		for b := p.brackets; b != nil; b = b.prev {
			if !b.image {
				b.active = false
			}
		}
	}
	p.markBracketAfter()
	p.i = end
}

func (p *parser) markBracketAfter() {
	if p.brackets != nil {
		p.brackets.bracketAfter = true
	}
}

// matchReference resolves the full, collapsed and shortcut reference forms
// against the collected definitions.
func (p *parser) matchReference(opener *bracket, closerIdx int) (dest, title, refLabel string, style tree.ReferenceStyle, end int, ok bool) {
	label := ""
	style = tree.RefStyleShortcut
	end = closerIdx + 1

	if p.peekAt(closerIdx+1) == '[' {
		raw, after, found := scanLinkLabel(p.buf, closerIdx+1)
		switch {
		case found && strings.TrimSpace(raw) != "":
			label = raw
			style = tree.RefStyleFull
			end = after
		case found:
			// [] falls through to the bracketed text.
			style = tree.RefStyleCollapsed
			end = after
		}
		if style == tree.RefStyleFull {
			return p.lookupReference(label, style, end)
		}
	}

	// Collapsed and shortcut forms use the bracketed text itself, which must
	// not contain a completed bracket pair.
	if opener.bracketAfter {
		return "", "", "", style, 0, false
	}
	label = string(p.buf[opener.contentIdx:closerIdx])
	return p.lookupReference(label, style, end)
}

func (p *parser) lookupReference(label string, style tree.ReferenceStyle, end int) (string, string, string, tree.ReferenceStyle, int, bool) {
	normalized := block.NormalizeLabel(label)
	def, found := p.refs.Lookup(normalized)
	if !found {
		return "", "", "", style, 0, false
	}
	return def.Destination, def.Title, normalized, style, end, true
}

// scanInlineLink parses (destination "title") starting at the opening
// parenthesis, returning resolved strings and the offset past the closer.
func (p *parser) scanInlineLink(open int) (string, string, int, bool) {
	i := skipSpnl(p.buf, open+1)
	dest, i, ok := scanLinkDestination(p.buf, i)
	if !ok {
		return "", "", 0, false
	}
	title := ""
	if j := skipSpnl(p.buf, i); j > i {
		if t, k, found := scanLinkTitle(p.buf, j); found {
			title = t
			i = skipSpnl(p.buf, k)
		} else {
			i = j
		}
	}
	if i >= len(p.buf) || p.buf[i] != ')' {
		return "", "", 0, false
	}
	return block.Unescape(dest), block.Unescape(title), i + 1, true
}

// scanLinkDestination reads a destination in either the angle-bracketed or
// the bare form. The bare form stops at whitespace and control bytes and
// requires balanced unescaped parentheses.
func scanLinkDestination(s []byte, i int) (string, int, bool) {
	if i < len(s) && s[i] == '<' {
		start := i + 1
		for j := start; j < len(s); j++ {
			switch s[j] {
			case '>':
				return string(s[start:j]), j + 1, true
			case '<', '\n':
				return "", 0, false
			case '\\':
				j++
			}
		}
		return "", 0, false
	}

	start := i
	depth := 0
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) && block.IsASCIIPunct(s[i+1]) {
			i += 2
			continue
		}
		if c == '(' {
			depth++
			if depth > 32 {
				return "", 0, false
			}
		}
		if c == ')' {
			if depth == 0 {
				break
			}
			depth--
		}
		if c <= ' ' {
			break
		}
		i++
	}
	if depth != 0 {
		return "", 0, false
	}
	return string(s[start:i]), i, true
}

// scanLinkTitle reads a title delimited by double quotes, single quotes or
// parentheses.
func scanLinkTitle(s []byte, i int) (string, int, bool) {
	if i >= len(s) {
		return "", 0, false
	}
	open := s[i]
	closer := open
	switch open {
	case '"', '\'':
	case '(':
		closer = ')'
	default:
		return "", 0, false
	}
	start := i + 1
	for j := start; j < len(s); j++ {
		switch s[j] {
		case closer:
			return string(s[start:j]), j + 1, true
		case open:
			return "", 0, false
		case '\\':
			j++
		}
	}
	return "", 0, false
}

// scanLinkLabel reads a [label] of at most 999 bytes with no unescaped
// nested brackets, returning the raw inner text.
func scanLinkLabel(s []byte, i int) (string, int, bool) {
	if i >= len(s) || s[i] != '[' {
		return "", 0, false
	}
	start := i + 1
	for j := start; j < len(s) && j-start <= 999; j++ {
		switch s[j] {
		case ']':
			return string(s[start:j]), j + 1, true
		case '[':
			return "", 0, false
		case '\\':
			j++
		}
	}
	return "", 0, false
}

// skipSpnl skips spaces and tabs with at most one line ending.
func skipSpnl(s []byte, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i < len(s) && s[i] == '\n' {
		i++
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
	}
	return i
}

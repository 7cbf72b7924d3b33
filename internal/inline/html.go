package inline

import (
	"bytes"

	"github.com/vmittal27/mkforge/internal/block"
	"github.com/vmittal27/mkforge/pkg/tree"
)

// angle handles a < byte: an angle-bracketed autolink, a piece of raw HTML,
// or a literal less-than sign.
func (p *parser) angle() {
	start := p.i

	if end := scanURIAutolink(p.buf, start); end > 0 {
		p.autolinkNode(start, end, string(p.buf[start+1:end-1]), false)
		return
	}
	if end := scanEmailAutolink(p.buf, start); end > 0 {
		addr := string(p.buf[start+1 : end-1])
		p.autolinkNode(start, end, addr, true)
		return
	}
	if end := scanInlineHTML(p.buf, start); end > 0 {
		n := p.arena.New(tree.NodeHTMLInline)
		n.Start, n.End = p.pos[start], p.pos[end]
		n.Inline = tree.NewInlineAttrs().WithText(string(p.buf[start:end]))
		tree.AppendChild(p.node, n)
		p.i = end
		return
	}

	p.i++
	p.appendText("<", start, p.i)
}

func (p *parser) autolinkNode(start, end int, text string, email bool) {
	dest := text
	if email {
		dest = "mailto:" + text
	}
	n := p.arena.New(tree.NodeAutolink)
	n.Start, n.End = p.pos[start], p.pos[end]
	n.Inline = tree.NewInlineAttrs().WithText(text).
		WithAutolink(&tree.AutolinkAttrs{Destination: dest, Email: email})
	tree.AppendChild(p.node, n)
	p.i = end
}

// scanURIAutolink matches <scheme:body>, where the scheme is 2 to 32
// characters and the body has no whitespace, control bytes or angle
// brackets. Returns the offset past the closing angle, or 0.
func scanURIAutolink(s []byte, pos int) int {
	i := pos + 1
	if i >= len(s) || !isAlphaByte(s[i]) {
		return 0
	}
	j := i + 1
	for j < len(s) && j-i < 32 && isSchemeByte(s[j]) {
		j++
	}
	if j-i < 2 || j >= len(s) || s[j] != ':' {
		return 0
	}
	for j++; j < len(s); j++ {
		c := s[j]
		if c == '>' {
			return j + 1
		}
		if c <= ' ' || c == '<' {
			return 0
		}
	}
	return 0
}

// scanEmailAutolink matches <local@domain> with dot-separated alphanumeric
// domain labels.
func scanEmailAutolink(s []byte, pos int) int {
	j := pos + 1
	start := j
	for j < len(s) && isEmailLocalByte(s[j]) {
		j++
	}
	if j == start || j >= len(s) || s[j] != '@' {
		return 0
	}
	j++
	for {
		k := scanDNSLabel(s, j)
		if k == 0 {
			return 0
		}
		j = k
		if j < len(s) && s[j] == '.' {
			j++
			continue
		}
		break
	}
	if j < len(s) && s[j] == '>' {
		return j + 1
	}
	return 0
}

// scanDNSLabel matches one domain label: alphanumerics and interior hyphens,
// at most 63 characters, never ending with a hyphen.
func scanDNSLabel(s []byte, i int) int {
	if i >= len(s) || !isAlnumByte(s[i]) {
		return 0
	}
	last := i
	j := i + 1
	for j < len(s) && j-i < 63 && (isAlnumByte(s[j]) || s[j] == '-') {
		if isAlnumByte(s[j]) {
			last = j
		}
		j++
	}
	return last + 1
}

// scanInlineHTML matches one raw HTML construct: a tag, comment, processing
// instruction, CDATA section or declaration.
func scanInlineHTML(s []byte, pos int) int {
	if n := block.ScanOpenTag(s, pos); n > 0 {
		return n
	}
	if n := block.ScanCloseTag(s, pos); n > 0 {
		return n
	}
	if n := block.ScanComment(s, pos); n > 0 {
		return n
	}
	if n := scanInstruction(s, pos); n > 0 {
		return n
	}
	if n := scanCDATA(s, pos); n > 0 {
		return n
	}
	return scanDeclaration(s, pos)
}

// scanInstruction matches <? ... ?>.
func scanInstruction(s []byte, pos int) int {
	if pos+1 >= len(s) || s[pos] != '<' || s[pos+1] != '?' {
		return 0
	}
	for j := pos + 2; j+1 < len(s); j++ {
		if s[j] == '?' && s[j+1] == '>' {
			return j + 2
		}
	}
	return 0
}

// scanCDATA matches <![CDATA[ ... ]]>.
func scanCDATA(s []byte, pos int) int {
	if !bytes.HasPrefix(s[pos:], []byte("<![CDATA[")) {
		return 0
	}
	for j := pos + 9; j+2 < len(s); j++ {
		if s[j] == ']' && s[j+1] == ']' && s[j+2] == '>' {
			return j + 3
		}
	}
	return 0
}

// scanDeclaration matches <!NAME ... >.
func scanDeclaration(s []byte, pos int) int {
	if pos+2 >= len(s) || s[pos] != '<' || s[pos+1] != '!' || !isAlphaByte(s[pos+2]) {
		return 0
	}
	for j := pos + 3; j < len(s); j++ {
		if s[j] == '>' {
			return j + 1
		}
	}
	return 0
}

func isAlphaByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnumByte(c byte) bool {
	return isAlphaByte(c) || (c >= '0' && c <= '9')
}

func isSchemeByte(c byte) bool {
	return isAlnumByte(c) || c == '+' || c == '.' || c == '-'
}

func isEmailLocalByte(c byte) bool {
	if isAlnumByte(c) {
		return true
	}
	switch c {
	case '.', '!', '#', '$', '%', '&', '\'', '*', '+', '/', '=', '?', '^', '_', '`', '{', '|', '}', '~', '-':
		return true
	}
	return false
}

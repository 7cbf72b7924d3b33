package inline

import (
	"strings"

	"github.com/vmittal27/mkforge/internal/block"
	"github.com/vmittal27/mkforge/pkg/tree"
)

// lineBreak emits a soft break, or a hard break when the line ended with two
// or more spaces. The spaces themselves were dropped by literalText.
func (p *parser) lineBreak() {
	nl := p.i
	kind := tree.NodeSoftBreak
	if nl >= 2 && p.buf[nl-1] == ' ' && p.buf[nl-2] == ' ' {
		kind = tree.NodeHardBreak
	}
	br := p.arena.New(kind)
	br.Start, br.End = p.pos[nl], p.pos[nl+1]
	tree.AppendChild(p.node, br)
	p.i = nl + 1
}

// backslash resolves an escape: a hard break before a line ending, a literal
// character for ASCII punctuation, and a plain backslash otherwise.
func (p *parser) backslash() {
	start := p.i
	p.i++
	if p.i < len(p.buf) {
		switch c := p.buf[p.i]; {
		case c == '\n':
			p.i++
			br := p.arena.New(tree.NodeHardBreak)
			br.Start, br.End = p.pos[start], p.pos[p.i]
			tree.AppendChild(p.node, br)
			return
		case block.IsASCIIPunct(c):
			p.i++
			p.appendText(string(c), start, p.i)
			return
		}
	}
	p.appendText("\\", start, p.i)
}

// entity decodes a character entity, or falls back to a literal ampersand.
func (p *parser) entity() {
	start := p.i
	window := start + 48
	if window > len(p.buf) {
		window = len(p.buf)
	}
	if rep, n := block.DecodeEntity(string(p.buf[start:window])); n > 0 {
		p.i = start + n
		p.appendText(rep, start, p.i)
		return
	}
	p.i++
	p.appendText("&", start, p.i)
}

// codeSpan matches a backtick run against the next run of exactly the same
// length. Content keeps backslashes and entities verbatim; line endings
// become spaces, and one leading and trailing space is dropped when both are
// present around non-space content.
func (p *parser) codeSpan() {
	start := p.i
	open := 0
	for p.i < len(p.buf) && p.buf[p.i] == '`' {
		p.i++
		open++
	}

	for k := p.i; k < len(p.buf); {
		if p.buf[k] != '`' {
			k++
			continue
		}
		run := k
		for k < len(p.buf) && p.buf[k] == '`' {
			k++
		}
		if k-run != open {
			continue
		}

		content := strings.ReplaceAll(string(p.buf[p.i:run]), "\n", " ")
		if len(content) >= 2 && content[0] == ' ' && content[len(content)-1] == ' ' &&
			strings.Trim(content, " ") != "" {
			content = content[1 : len(content)-1]
		}
		n := p.arena.New(tree.NodeCodeSpan)
		n.Start, n.End = p.pos[start], p.pos[k]
		n.Inline = tree.NewInlineAttrs().WithText(content)
		tree.AppendChild(p.node, n)
		p.i = k
		return
	}

	// No closer: the run is literal text.
	p.appendText(string(p.buf[start:p.i]), start, p.i)
}

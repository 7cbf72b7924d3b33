// Package inline resolves the raw content of leaf blocks into inline nodes.
//
// The block phase records paragraph, heading and table cell content as raw
// source segments and never looks inside them. This phase scans each leaf in
// document order and attaches text, emphasis, code span, link, break and raw
// HTML nodes beneath the owning block. Reference lookups are served by the
// definitions the block phase collected, so the phases never interleave.
package inline

import (
	"strings"

	"github.com/vmittal27/mkforge/internal/block"
	"github.com/vmittal27/mkforge/pkg/flavor"
	"github.com/vmittal27/mkforge/pkg/tree"
)

// Process resolves the inline content of every leaf block in res.
func Process(src []byte, res block.Result, opts flavor.Options, arena *tree.Arena) {
	for _, raw := range res.Raws {
		buf, pos := materialize(src, raw)
		p := &parser{
			buf:   buf,
			pos:   pos,
			node:  raw.Node,
			arena: arena,
			opts:  opts,
			refs:  res.Refs,
		}
		p.run()
	}
}

// parser holds the scan state for a single leaf block.
type parser struct {
	buf []byte // materialized leaf content, lines joined with \n
	pos []int  // pos[i] is the source offset of buf[i]; one extra entry marks the end
	i   int

	node  *tree.Node
	arena *tree.Arena
	opts  flavor.Options
	refs  block.RefMap

	delims   *delimiter // top of the delimiter stack
	brackets *bracket   // top of the bracket stack
}

// materialize joins the raw segments of a leaf into a single buffer with a
// parallel source-offset table. Table cells decode escaped pipes here so the
// scan below treats them as plain bytes, even inside code spans. Trailing
// whitespace of the whole leaf carries no meaning and is dropped.
func materialize(src []byte, raw block.Raw) ([]byte, []int) {
	var buf []byte
	var pos []int
	for idx, seg := range raw.Segments {
		if idx > 0 {
			buf = append(buf, '\n')
			pos = append(pos, raw.Segments[idx-1].End)
		}
		for i := seg.Start; i < seg.End; i++ {
			c := src[i]
			if raw.Cell && c == '\\' && i+1 < seg.End && src[i+1] == '|' {
				buf = append(buf, '|')
				pos = append(pos, i)
				i++
				continue
			}
			buf = append(buf, c)
			pos = append(pos, i)
		}
	}
	end := 0
	if n := len(raw.Segments); n > 0 {
		end = raw.Segments[n-1].End
	}
	for len(buf) > 0 {
		if c := buf[len(buf)-1]; c != ' ' && c != '\t' {
			break
		}
		buf = buf[:len(buf)-1]
		end = pos[len(buf)]
		pos = pos[:len(buf)]
	}
	pos = append(pos, end)
	return buf, pos
}

func (p *parser) run() {
	for p.i < len(p.buf) {
		switch c := p.buf[p.i]; {
		case c == '\n':
			p.lineBreak()
		case c == '\\':
			p.backslash()
		case c == '`':
			p.codeSpan()
		case c == '&':
			p.entity()
		case c == '<':
			p.angle()
		case c == '*' || c == '_' || (c == '~' && p.opts.Strikethrough):
			p.delimiterRun(c)
		case c == '[':
			p.openBracket(false)
		case c == '!':
			if p.i+1 < len(p.buf) && p.buf[p.i+1] == '[' {
				p.openBracket(true)
			} else {
				p.i++
				p.appendText("!", p.i-1, p.i)
			}
		case c == ']':
			p.closeBracket()
		default:
			p.literalText()
		}
	}
	p.processEmphasis(nil)
	consolidate(p.node)
	if p.opts.Autolink {
		applyAutolinks(p.node, p.arena)
	}
}

// isSpecial reports whether c starts a construct the scan loop handles.
func isSpecial(c byte, opts flavor.Options) bool {
	switch c {
	case '\n', '\\', '`', '&', '<', '[', ']', '!', '*', '_':
		return true
	case '~':
		return opts.Strikethrough
	}
	return false
}

// literalText consumes a run of bytes with no inline meaning. A run that
// ends at a line break sheds its trailing spaces and tabs; break handling
// decides whether they meant a hard break.
func (p *parser) literalText() {
	start := p.i
	for p.i < len(p.buf) && !isSpecial(p.buf[p.i], p.opts) {
		p.i++
	}
	lit := string(p.buf[start:p.i])
	if p.i < len(p.buf) && p.buf[p.i] == '\n' {
		lit = strings.TrimRight(lit, " \t")
	}
	if lit != "" {
		p.appendText(lit, start, start+len(lit))
	}
}

// appendText adds a text node for buf[from:to) with the given resolved
// literal.
func (p *parser) appendText(lit string, from, to int) *tree.Node {
	n := p.arena.New(tree.NodeText)
	n.Start, n.End = p.pos[from], p.pos[to]
	n.Inline = tree.NewInlineAttrs().WithText(lit)
	tree.AppendChild(p.node, n)
	return n
}

func (p *parser) peekAt(i int) byte {
	if i < 0 || i >= len(p.buf) {
		return 0
	}
	return p.buf[i]
}

// consolidate merges runs of adjacent text nodes left behind by emphasis
// and bracket processing.
func consolidate(n *tree.Node) {
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Kind == tree.NodeText {
			for next := child.Next; next != nil && next.Kind == tree.NodeText; next = child.Next {
				child.Inline.Text += next.Inline.Text
				if next.End > child.End {
					child.End = next.End
				}
				tree.RemoveChild(n, next)
			}
			continue
		}
		consolidate(child)
	}
}

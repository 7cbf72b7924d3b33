package block

import (
	"bytes"
	"strings"

	"github.com/vmittal27/mkforge/pkg/tree"
)

// htmlVerbatimTags introduce kind 1 blocks, which swallow everything up to
// their closing tag, blank lines included.
var htmlVerbatimTags = [...]string{"pre", "script", "style", "textarea"}

// htmlBlockNames are the tag names that open a kind 6 block.
var htmlBlockNames = map[string]bool{
	"address": true, "article": true, "aside": true, "base": true,
	"basefont": true, "blockquote": true, "body": true, "caption": true,
	"center": true, "col": true, "colgroup": true, "dd": true,
	"details": true, "dialog": true, "dir": true, "div": true, "dl": true,
	"dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "frame": true, "frameset": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"head": true, "header": true, "hr": true, "html": true, "iframe": true,
	"legend": true, "li": true, "link": true, "main": true, "menu": true,
	"menuitem": true, "nav": true, "noframes": true, "ol": true,
	"optgroup": true, "option": true, "p": true, "param": true,
	"search": true, "section": true, "summary": true, "table": true,
	"tbody": true, "td": true, "tfoot": true, "th": true, "thead": true,
	"title": true, "tr": true, "track": true, "ul": true,
}

// tryHTMLOpen opens an HTML block at a recognized start condition. Kinds 1
// and 2 may end on their opening line.
func (s *scanner) tryHTMLOpen() bool {
	m := s.mark()
	s.skipIndent()
	if s.peek() != '<' {
		s.reset(m)
		return false
	}
	rest := s.src[s.pos:s.lineEnd]
	kind := htmlBlockKind(rest, s.paragraphTip())
	if kind == 0 {
		s.reset(m)
		return false
	}
	b := s.openChild(tree.NodeHTMLBlock, m.pos)
	b.htmlKind = kind
	b.node.Block = tree.NewBlockAttrs()
	seg := Segment{m.pos, s.lineEnd}
	b.segs = append(b.segs, seg)
	s.pos = s.lineEnd
	if kind <= 2 && htmlBlockEnds(s.src[seg.Start:seg.End], kind) {
		b.node.End = s.lineEnd
		s.closeBlock()
	}
	return true
}

// htmlBlockLine appends one line to an HTML block, closing kinds 1 and 2
// when their end marker appears. Kinds 6 and 7 end on a blank line instead.
func (s *scanner) htmlBlockLine(b *openBlock) {
	seg := Segment{s.pos, s.lineEnd}
	b.segs = append(b.segs, seg)
	s.pos = s.lineEnd
	if b.htmlKind <= 2 && htmlBlockEnds(s.src[seg.Start:seg.End], b.htmlKind) {
		b.node.End = s.lineEnd
		s.closeBlock()
	}
}

// htmlBlockKind classifies an HTML block start: verbatim containers (1),
// comments (2), known block-level tags (6), or a complete tag alone on its
// line (7). Kind 7 may not interrupt a paragraph. Zero means no block.
func htmlBlockKind(rest []byte, inParagraph bool) int {
	if len(rest) < 2 || rest[0] != '<' {
		return 0
	}
	if bytes.HasPrefix(rest, []byte("<!--")) {
		return 2
	}

	tail := rest[1:]
	closing := false
	if tail[0] == '/' {
		closing = true
		tail = tail[1:]
	}
	if n := scanTagName(tail, 0); n > 0 {
		name := strings.ToLower(string(tail[:n]))
		after := tail[n:]
		if !closing && isVerbatimTag(name) {
			if len(after) == 0 || after[0] == ' ' || after[0] == '\t' || after[0] == '>' {
				return 1
			}
		}
		if htmlBlockNames[name] {
			ok := len(after) == 0 || after[0] == ' ' || after[0] == '\t' || after[0] == '>'
			if !ok && !closing && len(after) >= 2 && after[0] == '/' && after[1] == '>' {
				ok = true
			}
			if ok {
				return 6
			}
		}
	}

	if inParagraph {
		return 0
	}
	if n := ScanOpenTag(rest, 0); n > 0 && blankBytes(rest[n:]) {
		nameLen := scanTagName(rest, 1)
		name := strings.ToLower(string(rest[1 : 1+nameLen]))
		if !isVerbatimTag(name) {
			return 7
		}
	}
	if n := ScanCloseTag(rest, 0); n > 0 && blankBytes(rest[n:]) {
		return 7
	}
	return 0
}

// htmlBlockEnds reports whether a kind 1 or 2 end condition appears on the
// line.
func htmlBlockEnds(line []byte, kind int) bool {
	if kind == 2 {
		return bytes.Contains(line, []byte("-->"))
	}
	lower := bytes.ToLower(line)
	for _, tag := range htmlVerbatimTags {
		if bytes.Contains(lower, []byte("</"+tag+">")) {
			return true
		}
	}
	return false
}

func isVerbatimTag(name string) bool {
	for _, tag := range htmlVerbatimTags {
		if name == tag {
			return true
		}
	}
	return false
}

func blankBytes(text []byte) bool {
	for _, c := range text {
		if c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}

// ScanOpenTag scans an HTML open tag at pos and returns the bytes consumed,
// or zero: a tag name, whitespace-separated attributes with optional quoted
// or bare values, an optional /, and the closing >.
func ScanOpenTag(s []byte, pos int) int {
	i := pos
	if i >= len(s) || s[i] != '<' {
		return 0
	}
	i++
	n := scanTagName(s, i)
	if n == 0 {
		return 0
	}
	i += n
	for {
		j := scanTagWS(s, i)
		if j < len(s) && (s[j] == '/' || s[j] == '>') {
			i = j
			break
		}
		if j == i {
			return 0
		}
		i = j
		n = scanAttrName(s, i)
		if n == 0 {
			return 0
		}
		i += n
		j = scanTagWS(s, i)
		if j < len(s) && s[j] == '=' {
			j = scanTagWS(s, j+1)
			vn := scanAttrValue(s, j)
			if vn == 0 {
				return 0
			}
			i = j + vn
		}
	}
	if i < len(s) && s[i] == '/' {
		i++
	}
	if i >= len(s) || s[i] != '>' {
		return 0
	}
	return i + 1 - pos
}

// ScanCloseTag scans an HTML closing tag at pos and returns the bytes
// consumed, or zero.
func ScanCloseTag(s []byte, pos int) int {
	i := pos
	if i+1 >= len(s) || s[i] != '<' || s[i+1] != '/' {
		return 0
	}
	i += 2
	n := scanTagName(s, i)
	if n == 0 {
		return 0
	}
	i = scanTagWS(s, i+n)
	if i >= len(s) || s[i] != '>' {
		return 0
	}
	return i + 1 - pos
}

// ScanComment scans an HTML comment at pos and returns the bytes consumed,
// or zero. The text may not start with > or ->, may not contain --, and may
// not end with a dash.
func ScanComment(s []byte, pos int) int {
	i := pos
	if !bytes.HasPrefix(s[i:], []byte("<!--")) {
		return 0
	}
	i += 4
	text := i
	if i < len(s) && s[i] == '>' {
		return 0
	}
	if i+1 < len(s) && s[i] == '-' && s[i+1] == '>' {
		return 0
	}
	for i < len(s) {
		if s[i] == '-' && i+1 < len(s) && s[i+1] == '-' {
			if i+2 < len(s) && s[i+2] == '>' {
				if i > text && s[i-1] == '-' {
					return 0
				}
				return i + 3 - pos
			}
			return 0
		}
		i++
	}
	return 0
}

func scanTagName(s []byte, pos int) int {
	i := pos
	if i >= len(s) || !isLetter(s[i]) {
		return 0
	}
	i++
	for i < len(s) && (isLetter(s[i]) || isDigit(s[i]) || s[i] == '-') {
		i++
	}
	return i - pos
}

func scanAttrName(s []byte, pos int) int {
	i := pos
	if i >= len(s) {
		return 0
	}
	if c := s[i]; !isLetter(c) && c != '_' && c != ':' {
		return 0
	}
	i++
	for i < len(s) {
		c := s[i]
		if !isLetter(c) && !isDigit(c) && c != '_' && c != '.' && c != ':' && c != '-' {
			break
		}
		i++
	}
	return i - pos
}

func scanAttrValue(s []byte, pos int) int {
	if pos >= len(s) {
		return 0
	}
	if q := s[pos]; q == '"' || q == '\'' {
		for i := pos + 1; i < len(s); i++ {
			if s[i] == q {
				return i + 1 - pos
			}
		}
		return 0
	}
	i := pos
	for i < len(s) && isBareValueByte(s[i]) {
		i++
	}
	return i - pos
}

func isBareValueByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '"', '\'', '=', '<', '>', '`':
		return false
	}
	return true
}

func scanTagWS(s []byte, pos int) int {
	i := pos
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n':
			i++
		default:
			return i
		}
	}
	return i
}

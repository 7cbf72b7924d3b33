package block

import (
	"html"
	"strconv"
	"strings"
	"unicode/utf8"
)

// extractRefDefs removes leading link reference definitions from a closing
// paragraph's lines and registers them. The remaining segments, if any, are
// the paragraph's real content.
func (s *scanner) extractRefDefs(segs []Segment) []Segment {
	if len(segs) == 0 || s.src[segs[0].Start] != '[' {
		return segs
	}

	var sb strings.Builder
	starts := make([]int, len(segs))
	for i, seg := range segs {
		starts[i] = sb.Len()
		sb.Write(s.src[seg.Start:seg.End])
		if i < len(segs)-1 {
			sb.WriteByte('\n')
		}
	}
	text := sb.String()

	pos := 0
	for pos < len(text) && text[pos] == '[' {
		def, label, end, ok := parseRefDef(text, pos)
		if !ok {
			break
		}
		s.refs.Add(label, def)
		pos = end
		if pos < len(text) {
			pos++ // step past the newline onto the next line
		}
	}

	consumed := 0
	for consumed < len(segs) && starts[consumed] < pos {
		consumed++
	}
	return segs[consumed:]
}

// parseRefDef parses one reference definition starting at pos, which must
// point at the opening bracket. It returns the offset of the line end (the
// newline or end of text) that terminates the definition.
func parseRefDef(text string, pos int) (RefDef, string, int, bool) {
	var def RefDef
	i := pos + 1

	labelStart := i
	for i < len(text) {
		c := text[i]
		if c == '\\' && i+1 < len(text) {
			i += 2
			continue
		}
		if c == ']' || c == '[' {
			break
		}
		i++
		if i-labelStart > 999 {
			return def, "", 0, false
		}
	}
	if i >= len(text) || text[i] != ']' {
		return def, "", 0, false
	}
	label := text[labelStart:i]
	if strings.TrimSpace(label) == "" {
		return def, "", 0, false
	}
	i++
	if i >= len(text) || text[i] != ':' {
		return def, "", 0, false
	}
	i++

	// The destination may sit on the next line.
	i = skipLineSpace(text, i)
	if i < len(text) && text[i] == '\n' {
		i = skipLineSpace(text, i+1)
	}
	dest, i, ok := parseRefDest(text, i)
	if !ok {
		return def, "", 0, false
	}
	def.Destination = Unescape(dest)
	afterDest := i

	// An optional title follows, separated by whitespace, possibly on its
	// own line. A title that fails to parse or to end its line may still
	// belong to the next paragraph, so the definition stands without it.
	j := skipLineSpace(text, i)
	if j < len(text) && text[j] == '\n' {
		j = skipLineSpace(text, j+1)
	}
	if j > afterDest {
		if title, j2, ok := parseRefTitle(text, j); ok {
			k := skipLineSpace(text, j2)
			if k >= len(text) || text[k] == '\n' {
				def.Title = Unescape(title)
				return def, label, k, true
			}
		}
	}

	k := skipLineSpace(text, afterDest)
	if k >= len(text) || text[k] == '\n' {
		return def, label, k, true
	}
	return def, "", 0, false
}

// parseRefDest parses a link destination: either <...> with no unescaped
// angle brackets or newlines inside, or a run of nonspace characters with
// balanced parentheses.
func parseRefDest(text string, pos int) (string, int, bool) {
	if pos < len(text) && text[pos] == '<' {
		i := pos + 1
		for i < len(text) {
			switch text[i] {
			case '\\':
				i++
			case '>':
				return text[pos+1 : i], i + 1, true
			case '<', '\n':
				return "", 0, false
			}
			i++
		}
		return "", 0, false
	}

	i := pos
	depth := 0
	for i < len(text) {
		c := text[i]
		if c == '\\' && i+1 < len(text) {
			i += 2
			continue
		}
		if c <= ' ' {
			break
		}
		if c == '(' {
			depth++
		} else if c == ')' {
			if depth == 0 {
				break
			}
			depth--
		}
		i++
	}
	if i == pos || depth != 0 {
		return "", 0, false
	}
	return text[pos:i], i, true
}

// parseRefTitle parses a link title delimited by double quotes, single
// quotes or parentheses. Titles may span lines but not blank lines.
func parseRefTitle(text string, pos int) (string, int, bool) {
	if pos >= len(text) {
		return "", 0, false
	}
	opener := text[pos]
	var closer byte
	switch opener {
	case '"':
		closer = '"'
	case '\'':
		closer = '\''
	case '(':
		closer = ')'
	default:
		return "", 0, false
	}
	i := pos + 1
	for i < len(text) {
		c := text[i]
		if c == '\\' && i+1 < len(text) {
			i += 2
			continue
		}
		if c == closer {
			return text[pos+1 : i], i + 1, true
		}
		if c == '(' && opener == '(' {
			return "", 0, false
		}
		if c == '\n' && i+1 < len(text) && text[i+1] == '\n' {
			return "", 0, false
		}
		i++
	}
	return "", 0, false
}

func skipLineSpace(text string, i int) int {
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return i
}

// Unescape resolves backslash escapes and character entities in text taken
// from info strings, reference definitions and link destinations.
func Unescape(s string) string {
	if !strings.ContainsAny(s, "\\&") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && IsASCIIPunct(s[i+1]) {
			sb.WriteByte(s[i+1])
			i++
			continue
		}
		if c == '&' {
			if rep, n := DecodeEntity(s[i:]); n > 0 {
				sb.WriteString(rep)
				i += n - 1
				continue
			}
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// DecodeEntity decodes one character entity at the start of s, returning the
// replacement and the bytes consumed. Only semicolon-terminated forms count,
// and named entities must be known ones. NUL and out-of-range code points
// become the replacement character.
func DecodeEntity(s string) (string, int) {
	if len(s) < 3 || s[0] != '&' {
		return "", 0
	}
	if s[1] == '#' {
		i := 2
		base := 10
		limit := 7
		if i < len(s) && (s[i] == 'x' || s[i] == 'X') {
			base = 16
			limit = 6
			i++
		}
		start := i
		for i < len(s) && i-start < limit && isBaseDigit(s[i], base) {
			i++
		}
		if i == start || i >= len(s) || s[i] != ';' {
			return "", 0
		}
		n, err := strconv.ParseInt(s[start:i], base, 32)
		if err != nil {
			return "", 0
		}
		r := rune(n)
		if r == 0 || !utf8.ValidRune(r) {
			r = utf8.RuneError
		}
		return string(r), i + 1
	}

	i := 1
	for i < len(s) && i <= 32 && (isLetter(s[i]) || isDigit(s[i])) {
		i++
	}
	if i == 1 || i >= len(s) || s[i] != ';' {
		return "", 0
	}
	candidate := s[:i+1]
	if decoded := html.UnescapeString(candidate); decoded != candidate {
		return decoded, i + 1
	}
	return "", 0
}

// IsASCIIPunct reports whether c is an ASCII punctuation character, the only
// bytes a backslash escapes.
func IsASCIIPunct(c byte) bool {
	switch {
	case c >= '!' && c <= '/':
		return true
	case c >= ':' && c <= '@':
		return true
	case c >= '[' && c <= '`':
		return true
	case c >= '{' && c <= '~':
		return true
	}
	return false
}

func isBaseDigit(c byte, base int) bool {
	if base == 16 {
		return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	}
	return isDigit(c)
}

package inline

import (
	"strings"

	"github.com/vmittal27/mkforge/pkg/tree"
)

// GitHub's extended autolinks turn bare www, http, https and ftp URLs and
// plain email addresses into links without angle brackets. They run as a
// pass over finished text nodes so emphasis and bracket processing never
// see them, and text inside links stays untouched.

type autolinkMatch struct {
	start, end int
	dest       string
	email      bool
}

func applyAutolinks(root *tree.Node, arena *tree.Arena) {
	for child := root.FirstChild; child != nil; child = child.Next {
		switch child.Kind {
		case tree.NodeLink, tree.NodeImage, tree.NodeAutolink:
			// Links do not nest.
		case tree.NodeText:
			child = splitAutolinks(child, arena)
		default:
			applyAutolinks(child, arena)
		}
	}
}

// splitAutolinks carves every autolink candidate out of a text node,
// inserting autolink and remainder text nodes after it. Returns the last
// node produced so the caller can resume iteration.
func splitAutolinks(text *tree.Node, arena *tree.Arena) *tree.Node {
	node := text
	for {
		s := node.Inline.Text
		m, ok := findAutolink(s)
		if !ok {
			return node
		}

		// Source offsets stay exact only when no escape or entity shifted
		// the literal against the source.
		exact := node.End-node.Start == len(s)

		link := arena.New(tree.NodeAutolink)
		link.Inline = tree.NewInlineAttrs().WithText(s[m.start:m.end]).
			WithAutolink(&tree.AutolinkAttrs{Destination: m.dest, Email: m.email})
		if exact {
			link.Start, link.End = node.Start+m.start, node.Start+m.end
		}
		tree.InsertAfter(node, link)

		var rest *tree.Node
		if m.end < len(s) {
			rest = arena.New(tree.NodeText)
			rest.Inline = tree.NewInlineAttrs().WithText(s[m.end:])
			if exact {
				rest.Start, rest.End = node.Start+m.end, node.End
			}
			tree.InsertAfter(link, rest)
		}

		if m.start == 0 {
			tree.RemoveChild(node.Parent, node)
		} else {
			node.Inline.Text = s[:m.start]
			if exact {
				node.End = node.Start + m.start
			}
		}

		if rest == nil {
			return link
		}
		node = rest
	}
}

// findAutolink locates the leftmost autolink candidate in s.
func findAutolink(s string) (autolinkMatch, bool) {
	for k := 0; k < len(s); k++ {
		switch s[k] {
		case 'w':
			if boundaryBefore(s, k) && strings.HasPrefix(s[k:], "www.") {
				if end, ok := scanWebTail(s, k, k, false); ok {
					return autolinkMatch{k, end, "http://" + s[k:end], false}, true
				}
			}
		case 'h', 'f':
			if !boundaryBefore(s, k) {
				continue
			}
			for _, scheme := range []string{"https://", "http://", "ftp://"} {
				if strings.HasPrefix(s[k:], scheme) {
					if end, ok := scanWebTail(s, k, k+len(scheme), true); ok {
						return autolinkMatch{k, end, s[k:end], false}, true
					}
					break
				}
			}
		case '@':
			if m, ok := matchEmail(s, k); ok {
				return m, true
			}
		}
	}
	return autolinkMatch{}, false
}

// boundaryBefore reports whether position k can start an autolink: the text
// start, whitespace, or one of the delimiter characters that may directly
// precede a link.
func boundaryBefore(s string, k int) bool {
	if k == 0 {
		return true
	}
	switch s[k-1] {
	case ' ', '\t', '\n', '*', '_', '~', '(':
		return true
	}
	return false
}

// scanWebTail consumes the domain and path of a web autolink starting at
// start, with the domain beginning at domainStart, and validates the domain
// after trailing punctuation is trimmed.
func scanWebTail(s string, start, domainStart int, allowShort bool) (int, bool) {
	i := domainStart
	for i < len(s) {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '<' {
			break
		}
		i++
	}
	end := trimURLTail(s, start, i)
	if end <= domainStart {
		return 0, false
	}
	domain := s[domainStart:end]
	if cut := strings.IndexAny(domain, "/?#"); cut >= 0 {
		domain = domain[:cut]
	}
	if !validAutolinkDomain(domain, allowShort) {
		return 0, false
	}
	return end, true
}

// trimURLTail strips trailing punctuation, unbalanced closing parentheses
// and trailing entity references from a URL candidate.
func trimURLTail(s string, start, end int) int {
	for end > start {
		c := s[end-1]
		switch {
		case strings.IndexByte("?!.,:*_~;'\"", c) >= 0:
			if c == ';' {
				if amp := strings.LastIndexByte(s[start:end-1], '&'); amp >= 0 {
					name := s[start+amp+1 : end-1]
					if name != "" && isAlnumString(name) {
						end = start + amp
						continue
					}
				}
			}
			end--
		case c == ')':
			if strings.Count(s[start:end], ")") > strings.Count(s[start:end], "(") {
				end--
			} else {
				return end
			}
		default:
			return end
		}
	}
	return end
}

// validAutolinkDomain checks the dot-separated labels of a candidate
// domain. Underscores never appear in the last two labels, and only short
// schemes may omit the dot entirely.
func validAutolinkDomain(domain string, allowShort bool) bool {
	labels := strings.Split(domain, ".")
	if len(labels) < 2 && !allowShort {
		return false
	}
	for idx, label := range labels {
		if label == "" {
			return false
		}
		for j := 0; j < len(label); j++ {
			c := label[j]
			if !isAlnumByte(c) && c != '-' && c != '_' {
				return false
			}
			if c == '_' && idx >= len(labels)-2 {
				return false
			}
		}
	}
	return true
}

// matchEmail recognizes a bare email address around the @ at position at.
func matchEmail(s string, at int) (autolinkMatch, bool) {
	start := at
	for start > 0 && isEmailTextByte(s[start-1]) {
		start--
	}
	if start == at || !boundaryBefore(s, start) {
		return autolinkMatch{}, false
	}

	i := at + 1
	dots := 0
	for i < len(s) && (isAlnumByte(s[i]) || s[i] == '-' || s[i] == '_' || s[i] == '.') {
		if s[i] == '.' {
			dots++
		}
		i++
	}
	for i > at+1 {
		c := s[i-1]
		if c != '.' && c != '-' && c != '_' {
			break
		}
		if c == '.' {
			dots--
		}
		i--
	}
	if i == at+1 || dots == 0 {
		return autolinkMatch{}, false
	}
	addr := s[start:i]
	return autolinkMatch{start, i, "mailto:" + addr, true}, true
}

func isEmailTextByte(c byte) bool {
	return isAlnumByte(c) || c == '.' || c == '+' || c == '-' || c == '_'
}

func isAlnumString(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isAlnumByte(s[i]) {
			return false
		}
	}
	return true
}

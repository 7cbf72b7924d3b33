// Package langdetect resolves the languages of fenced code blocks. Tagged
// fences get their info-string tag canonicalized through enry's alias table;
// untagged fences are classified from their content. Document inspection
// uses it to build language inventories; the parser itself never calls it.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is the fallback when no language can be determined.
const Unknown = "text"

// Canonical returns the canonical fence tag for an info-string language.
// Aliases resolve through enry ("golang" and "go", "js" and "javascript",
// "yml" and "yaml"); tags enry does not know keep their lowercased spelling.
// The empty tag stays empty so callers can fall back to Classify.
func Canonical(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	if lang, ok := enry.GetLanguageByAlias(tag); ok {
		return fenceTag(lang)
	}
	return strings.ToLower(tag)
}

// Classify guesses the language of untagged fence content. It tries the
// shebang line, then structural patterns, then enry's Bayesian classifier,
// and returns Unknown when nothing matches with confidence.
func Classify(content []byte) string {
	text := string(content)
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Unknown
	}

	// A shebang names the interpreter outright.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fenceTag(lang)
	}

	for _, p := range patterns {
		if p.match(text, trimmed) {
			return p.tag
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, fenceCandidates); safe && lang != "" {
		return fenceTag(lang)
	}
	return Unknown
}

// fenceCandidates restricts the classifier to languages that actually show
// up in fenced blocks.
var fenceCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript", "Ruby", "Rust",
	"Java", "C", "C++", "SQL", "JSON", "YAML", "TOML", "HTML", "CSS",
	"Markdown", "Dockerfile",
}

// pattern pairs a fence tag with a cheap structural test over the content.
// Patterns run in order, most distinctive first.
type pattern struct {
	tag   string
	match func(text, trimmed string) bool
}

var patterns = []pattern{
	{"go", func(_, trimmed string) bool {
		return strings.HasPrefix(trimmed, "package ") ||
			strings.Contains(trimmed, "func ")
	}},
	{"python", func(text, _ string) bool {
		if strings.Contains(text, "def ") && strings.Contains(text, "):") {
			return true
		}
		return strings.Contains(text, "__name__") || strings.Contains(text, "__main__")
	}},
	{"html", func(_, trimmed string) bool {
		lower := strings.ToLower(trimmed)
		return strings.Contains(lower, "<!doctype html") ||
			strings.Contains(lower, "<html") ||
			strings.Contains(lower, "<body>")
	}},
	{"json", func(_, trimmed string) bool {
		open := strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
		return open && strings.Contains(trimmed, `"`)
	}},
	{"dockerfile", func(text, trimmed string) bool {
		if strings.HasPrefix(trimmed, "FROM ") {
			return true
		}
		return strings.Contains(text, "WORKDIR ") && strings.Contains(text, "COPY ")
	}},
	{"sql", func(_, trimmed string) bool {
		upper := strings.ToUpper(trimmed)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE TABLE"} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(text, _ string) bool {
		return strings.Contains(text, "fn main()") ||
			strings.Contains(text, "println!") ||
			strings.Contains(text, "let mut ")
	}},
	{"javascript", func(text, _ string) bool {
		return strings.Contains(text, "=>") ||
			strings.Contains(text, "console.log") ||
			strings.Contains(text, "const ")
	}},
	{"yaml", func(text, _ string) bool {
		return yamlKeyLines(text) >= 2
	}},
}

// yamlKeyLines counts lines shaped like YAML mappings or list items,
// skipping lines that look like code.
func yamlKeyLines(text string) int {
	keys := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
		case strings.HasPrefix(line, "- "):
			keys++
		case strings.Contains(line, ": ") && !strings.ContainsAny(line, `({"`):
			keys++
		}
	}
	return keys
}

// fenceTag converts an enry language name to the tag form used on fences.
func fenceTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}

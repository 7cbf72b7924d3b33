package runner

import "testing"

func TestGlobMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"readme.md", "*.md", true},
		{"docs/guide.md", "*.md", true},
		{"docs/guide.md", "docs/*.md", true},
		{"docs/sub/guide.md", "docs/*.md", false},
		{"docs/sub/guide.md", "docs/**", true},
		{"docs", "docs/**", true},
		{"vendor/pkg/doc.md", "vendor/**", true},
		{"a/vendor", "**/vendor", true},
		{"vendor", "**/vendor", true},
		{"a/b/c.md", "**/*.md", true},
		{"a/b/c.txt", "**/*.md", false},
		{"a/build/out.md", "**/build/**", true},
		{"a/builder/out.md", "**/build/**", false},
		{"notes.txt", "*.md", false},
	}

	for _, tt := range tests {
		if got := globMatch(tt.path, tt.pattern); got != tt.want {
			t.Errorf("globMatch(%q, %q) = %v, want %v", tt.path, tt.pattern, got, tt.want)
		}
	}
}

package langdetect_test

import (
	"testing"

	"github.com/vmittal27/mkforge/pkg/langdetect"
)

func TestCanonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  string
		want string
	}{
		{"go", "go"},
		{"golang", "go"},
		{"Go", "go"},
		{"js", "javascript"},
		{"yml", "yaml"},
		{"bash", "bash"},
		{"Rust", "rust"},
		{"objc", "objective-c"},
		{"frobnicate", "frobnicate"},
		{"  go  ", "go"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := langdetect.Canonical(tt.tag); got != tt.want {
			t.Errorf("Canonical(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "shebang bash",
			content:  "#!/bin/bash\necho hello",
			expected: "bash",
		},
		{
			name:     "shebang python",
			content:  "#!/usr/bin/env python3\nprint('hello')",
			expected: "python",
		},
		{
			name:     "go code",
			content:  "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}",
			expected: "go",
		},
		{
			name:     "python code",
			content:  "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()",
			expected: "python",
		},
		{
			name:     "javascript code",
			content:  "const x = () => { return 42; };\nconsole.log(x());",
			expected: "javascript",
		},
		{
			name:     "json object",
			content:  `{"key": "value", "number": 123}`,
			expected: "json",
		},
		{
			name:     "yaml mapping",
			content:  "key: value\nother: 123\nlist:\n  - item1\n  - item2",
			expected: "yaml",
		},
		{
			name:     "rust code",
			content:  "fn main() {\n    println!(\"Hello, world!\");\n}",
			expected: "rust",
		},
		{
			name:     "sql query",
			content:  "SELECT * FROM users WHERE id = 1;",
			expected: "sql",
		},
		{
			name:     "html document",
			content:  "<!DOCTYPE html>\n<html>\n<head><title>Test</title></head>\n</html>",
			expected: "html",
		},
		{
			name:     "dockerfile",
			content:  "FROM golang:1.21\nWORKDIR /app\nCOPY . .\nRUN go build",
			expected: "dockerfile",
		},
		{
			name:     "plain prose falls back",
			content:  "just some text without any code patterns",
			expected: "text",
		},
		{
			name:     "empty content falls back",
			content:  "",
			expected: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := langdetect.Classify([]byte(tt.content)); got != tt.expected {
				t.Errorf("Classify() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestClassifyShebangTakesPrecedence(t *testing.T) {
	t.Parallel()

	// Looks like Python below a bash shebang.
	content := []byte("#!/bin/bash\ndef foo():\n    pass")
	if got := langdetect.Classify(content); got != "bash" {
		t.Errorf("Classify() = %q, want bash from the shebang", got)
	}
}

// Package tree provides the Markdown AST representation for mkforge:
// kind-tagged nodes with block and inline attributes, the per-parse Arena
// that owns them, tree surgery and traversal helpers, and the Snapshot type
// tying a parsed tree back to its source text for position mapping.
package tree

// Snapshot is an immutable view of one parsed Markdown document. It holds the
// decoded content, line metadata, the AST root, and the arena that owns every
// node of the tree. All references into the tree stay valid as long as the
// snapshot is reachable.
type Snapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the decoded UTF-8 content, byte order mark stripped.
	Content []byte

	// Lines contains metadata for each line of Content.
	Lines []LineInfo

	// Root is the AST root node (Document).
	Root *Node

	// Arena owns all nodes reachable from Root.
	Arena *Arena
}

// NewSnapshot creates a Snapshot from content. It builds the line index but
// leaves Root and Arena to the parse pipeline.
func NewSnapshot(path string, content []byte) *Snapshot {
	return &Snapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

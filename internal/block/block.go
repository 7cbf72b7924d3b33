// Package block implements the block-scanning phase of the Markdown engine.
// It partitions source lines into block-level nodes using a container stack
// with per-line continuation matching, lazy paragraph continuation, and the
// CommonMark priority order for new block starts. When the active options
// enable them, it also recognizes GFM pipe tables and task-list markers.
//
// The scanner produces the block structure only: leaf blocks carry their
// unresolved inline content as byte segments into the original source, to be
// resolved by the inline phase.
package block

import (
	"strings"

	"github.com/vmittal27/mkforge/pkg/flavor"
	"github.com/vmittal27/mkforge/pkg/tree"
)

// Segment is a half-open byte range [Start, End) into the source.
type Segment struct {
	Start int
	End   int
}

// Len returns the segment length in bytes.
func (s Segment) Len() int {
	return s.End - s.Start
}

// Raw associates a leaf node with its unresolved inline content, one segment
// per source line with container prefixes and indentation stripped.
type Raw struct {
	// Node is the block (or table cell) awaiting inline resolution.
	Node *tree.Node

	// Segments hold the raw inline content in source order.
	Segments []Segment

	// Cell is true for table cell content, where escaped pipes decode
	// even inside code spans.
	Cell bool
}

// RefDef is one link reference definition.
type RefDef struct {
	Destination string
	Title       string
}

// RefMap maps normalized reference labels to their definitions.
// The first definition seen for a label wins.
type RefMap map[string]RefDef

// NormalizeLabel produces the canonical form of a reference label: interior
// whitespace collapsed, surrounding whitespace trimmed, case folded.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}

// Add records a definition unless the label is empty or already defined.
func (m RefMap) Add(label string, def RefDef) {
	key := NormalizeLabel(label)
	if key == "" {
		return
	}
	if _, exists := m[key]; !exists {
		m[key] = def
	}
}

// Lookup resolves a (not necessarily normalized) label.
func (m RefMap) Lookup(label string) (RefDef, bool) {
	def, ok := m[NormalizeLabel(label)]
	return def, ok
}

// Result is the outcome of the block phase.
type Result struct {
	// Doc is the document root with all block-level structure in place.
	Doc *tree.Node

	// Refs holds every link reference definition in the document.
	Refs RefMap

	// Raws lists the leaves whose inline content awaits resolution,
	// in document order.
	Raws []Raw
}

// Scan runs the block phase over src, allocating nodes from arena.
// Scanning is total: every input produces a document.
func Scan(src []byte, opts flavor.Options, arena *tree.Arena) Result {
	s := newScanner(src, opts, arena)
	return s.scan()
}

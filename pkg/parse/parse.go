// Package parse is the public entry point of the Markdown engine. A Parser
// binds one flavor and turns file content into document snapshots; the block
// and inline phases plus tree finalization run behind assemble.Build.
package parse

import (
	"context"
	"fmt"
	"os"

	"github.com/vmittal27/mkforge/internal/assemble"
	"github.com/vmittal27/mkforge/pkg/flavor"
	"github.com/vmittal27/mkforge/pkg/tree"
)

// Request names one parse: the file to read and the flavor to read it under.
type Request struct {
	Path   string
	Flavor flavor.Flavor
}

// Parser parses Markdown under one bound flavor. The zero value parses plain
// CommonMark. A Parser holds no mutable state and is safe for concurrent use.
type Parser struct {
	flavor flavor.Flavor
}

// New creates a Parser bound to the given flavor.
func New(f flavor.Flavor) *Parser {
	return &Parser{flavor: f}
}

// Flavor returns the bound flavor.
func (p *Parser) Flavor() flavor.Flavor {
	return p.flavor
}

// ParseFile reads the file at path and parses its content.
//
// A failed read returns a *ReadError wrapping the OS cause. Everything else
// behaves as Parse.
func (p *Parser) ParseFile(ctx context.Context, path string) (*tree.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	return p.Parse(ctx, path, raw)
}

// Parse decodes content and builds its document tree.
//
// The method:
//  1. Decodes content to UTF-8 (BOM handling, UTF-16 transcoding, NUL
//     replacement). Undecodable content returns *EncodingError.
//  2. Runs the block scan, inline resolution, and finalization phases in
//     strict order, consulting ctx only between phases.
//  3. Returns the snapshot: decoded content, line index, and the document
//     root with source ranges and snapshot back-references.
//
// After a successful decode parsing is total; no input produces a partial
// tree or a parse error. path is recorded on the snapshot and in errors and
// need not exist on disk.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*tree.Snapshot, error) {
	decoded, err := decode(path, content)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snap, err := assemble.Build(ctx, path, decoded, p.flavor.Options())
	if err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}
	return snap, nil
}

// ParseFile is the request-shaped convenience entry point.
func ParseFile(ctx context.Context, req Request) (*tree.Snapshot, error) {
	return New(req.Flavor).ParseFile(ctx, req.Path)
}

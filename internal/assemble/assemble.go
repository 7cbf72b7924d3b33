// Package assemble drives the parse pipeline: block scan, inline resolution,
// then finalization passes that enforce the structural invariants of the tree
// (list marker homogeneity, table column counts, flavor quirks). It owns the
// arena and produces the finished snapshot.
package assemble

import (
	"context"

	"github.com/vmittal27/mkforge/internal/block"
	"github.com/vmittal27/mkforge/internal/inline"
	"github.com/vmittal27/mkforge/pkg/flavor"
	"github.com/vmittal27/mkforge/pkg/tree"
)

// Build parses decoded content into a snapshot. The phases run in strict
// order and never interleave; ctx is consulted only between them. After a
// successful decode parsing is total, so the only possible error is ctx.Err().
func Build(ctx context.Context, path string, content []byte, opts flavor.Options) (*tree.Snapshot, error) {
	snap := tree.NewSnapshot(path, content)
	arena := tree.NewArena()

	res := block.Scan(content, opts, arena)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inline.Process(content, res, opts, arena)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	finalize(res.Doc, opts, arena)

	snap.Root = res.Doc
	snap.Arena = arena
	tree.SetFile(res.Doc, snap)
	return snap, nil
}

func finalize(doc *tree.Node, opts flavor.Options, arena *tree.Arena) {
	normalizeStructure(doc, arena)
	if opts.Quirks {
		collapseStrong(doc)
	}
	if opts.TagFilter {
		applyTagFilter(doc)
	}
}

func normalizeStructure(n *tree.Node, arena *tree.Arena) {
	for child := n.FirstChild; child != nil; child = child.Next {
		normalizeStructure(child, arena)
	}
	switch n.Kind {
	case tree.NodeList:
		normalizeList(n, arena)
	case tree.NodeTable:
		normalizeTable(n, arena)
	}
}

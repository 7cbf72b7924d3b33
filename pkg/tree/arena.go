package tree

// arenaChunkSize is the number of nodes per arena chunk. Chunks have fixed
// capacity so node pointers stay stable as the arena grows.
const arenaChunkSize = 256

// Arena is the allocation scope for all nodes of one parse. Nodes are handed
// out from contiguous chunks and are never freed individually; the whole arena
// is released when the snapshot that owns it is dropped.
//
// An Arena is not safe for concurrent use. Each parse owns its own.
type Arena struct {
	chunks [][]Node
	count  int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// New allocates a node of the given kind from the arena.
// The node starts with no parent, children, or source range.
func (a *Arena) New(kind NodeKind) *Node {
	if len(a.chunks) == 0 || len(a.chunks[len(a.chunks)-1]) == arenaChunkSize {
		a.chunks = append(a.chunks, make([]Node, 0, arenaChunkSize))
	}

	chunk := &a.chunks[len(a.chunks)-1]
	*chunk = append(*chunk, Node{Kind: kind, Start: -1, End: -1})
	a.count++

	return &(*chunk)[len(*chunk)-1]
}

// Len returns the number of nodes allocated so far.
func (a *Arena) Len() int {
	return a.count
}

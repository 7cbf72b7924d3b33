package tree

// NewNode creates a standalone node of the specified kind, outside any arena.
// The node has no parent, children, or source range. Parse pipelines allocate
// through an Arena instead; NewNode exists for tests and tree surgery.
func NewNode(kind NodeKind) *Node {
	return &Node{
		Kind:  kind,
		Start: -1,
		End:   -1,
	}
}

// NewDocument creates a new document root node.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// detach unlinks child from its current parent, if any.
func detach(child *Node) {
	parent := child.Parent
	if parent == nil {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// AppendChild appends a child node to a parent, detaching it from any
// previous parent first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	detach(child)

	child.Parent = parent
	child.Prev = parent.LastChild

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// PrependChild prepends a child node to a parent.
func PrependChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	detach(child)

	child.Parent = parent
	child.Next = parent.FirstChild

	if parent.FirstChild != nil {
		parent.FirstChild.Prev = child
	} else {
		parent.LastChild = child
	}
	parent.FirstChild = child
}

// InsertBefore inserts newNode before sibling. sibling must have a parent.
func InsertBefore(sibling, newNode *Node) {
	if sibling == nil || newNode == nil || sibling.Parent == nil {
		return
	}
	detach(newNode)

	parent := sibling.Parent
	newNode.Parent = parent
	newNode.Prev = sibling.Prev
	newNode.Next = sibling

	if sibling.Prev != nil {
		sibling.Prev.Next = newNode
	} else {
		parent.FirstChild = newNode
	}
	sibling.Prev = newNode
}

// InsertAfter inserts newNode after sibling. sibling must have a parent.
func InsertAfter(sibling, newNode *Node) {
	if sibling == nil || newNode == nil || sibling.Parent == nil {
		return
	}
	detach(newNode)

	parent := sibling.Parent
	newNode.Parent = parent
	newNode.Prev = sibling
	newNode.Next = sibling.Next

	if sibling.Next != nil {
		sibling.Next.Prev = newNode
	} else {
		parent.LastChild = newNode
	}
	sibling.Next = newNode
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}
	detach(child)
}

// ReplaceChild replaces oldChild with newChild under parent.
func ReplaceChild(parent, oldChild, newChild *Node) {
	if parent == nil || oldChild == nil || newChild == nil || oldChild.Parent != parent {
		return
	}
	detach(newChild)

	newChild.Parent = parent
	newChild.Prev = oldChild.Prev
	newChild.Next = oldChild.Next

	if oldChild.Prev != nil {
		oldChild.Prev.Next = newChild
	} else {
		parent.FirstChild = newChild
	}

	if oldChild.Next != nil {
		oldChild.Next.Prev = newChild
	} else {
		parent.LastChild = newChild
	}

	oldChild.Parent = nil
	oldChild.Prev = nil
	oldChild.Next = nil
}

// SetRange sets the source byte range for a node.
func SetRange(n *Node, start, end int) {
	if n == nil {
		return
	}
	n.Start = start
	n.End = end
}

// SetFile sets the snapshot reference for a node and all its descendants.
func SetFile(node *Node, file *Snapshot) {
	if node == nil {
		return
	}

	//nolint:errcheck // the visitor never fails
	Walk(node, func(child *Node) error {
		child.File = file
		return nil
	})
}

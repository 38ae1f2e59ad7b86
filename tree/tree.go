package tree

import (
	"fmt"
)

// NodeID is a handle for a node within a Tree arena.
type NodeID int32

// NoNode is the handle of a non-existing node. It is the parent of every root.
const NoNode NodeID = -1

type node struct {
	label    string
	parent   NodeID
	children []NodeID
}

// Tree is an arena of nodes. A single arena may hold more than one tree;
// Root is a convenience for the common case of one tree per arena.
//
// Tree is not safe for concurrent mutation.
type Tree struct {
	nodes []node
	root  NodeID
}

// New creates an empty arena.
func New() *Tree {
	return &Tree{
		nodes: make([]node, 0, 32),
		root:  NoNode,
	}
}

// Root returns the designated root node of the arena, or NoNode.
func (t *Tree) Root() NodeID {
	return t.root
}

// SetRoot designates n as the root of the arena.
func (t *Tree) SetRoot(n NodeID) {
	t.root = n
}

// Size returns the number of nodes ever allocated in the arena, including
// nodes which have been detached.
func (t *Tree) Size() int {
	return len(t.nodes)
}

// --- Construction ----------------------------------------------------------

// Create allocates a new parentless node.
func (t *Tree) Create(label string) NodeID {
	t.nodes = append(t.nodes, node{label: label, parent: NoNode})
	n := NodeID(len(t.nodes) - 1)
	if t.root == NoNode {
		t.root = n
	}
	return n
}

// CreateChild allocates a new node and appends it as the last child of parent.
func (t *Tree) CreateChild(parent NodeID, label string) NodeID {
	t.check(parent)
	t.nodes = append(t.nodes, node{label: label, parent: parent})
	n := NodeID(len(t.nodes) - 1)
	t.nodes[parent].children = append(t.nodes[parent].children, n)
	return n
}

// Attach appends child as the last child of parent. If child currently has a
// parent, it is removed from that parent's children first.
//
// Attaching a node beneath itself or beneath one of its descendants panics.
func (t *Tree) Attach(parent, child NodeID) {
	t.check(parent)
	t.check(child)
	if t.isAncestorOrSelf(child, parent) {
		panic(fmt.Sprintf("tree: cannot attach node %d beneath its descendant %d", child, parent))
	}
	t.unlink(child)
	t.nodes[parent].children = append(t.nodes[parent].children, child)
	t.nodes[child].parent = parent
}

// DetachAllChildren removes all children of n and returns them, in order.
// The detached nodes become roots of their own subtrees.
func (t *Tree) DetachAllChildren(n NodeID) []NodeID {
	t.check(n)
	children := t.nodes[n].children
	t.nodes[n].children = nil
	for _, c := range children {
		t.nodes[c].parent = NoNode
	}
	return children
}

// ReplaceChild puts c at position i of n's children. The node previously at
// that position is detached. If c has a parent, it is removed there first.
func (t *Tree) ReplaceChild(n NodeID, i int, c NodeID) {
	t.check(n)
	t.check(c)
	if i < 0 || i >= len(t.nodes[n].children) {
		panic(fmt.Sprintf("tree: child index %d out of range for node %d", i, n))
	}
	old := t.nodes[n].children[i]
	if old == c {
		return
	}
	if t.isAncestorOrSelf(c, n) {
		panic(fmt.Sprintf("tree: cannot place node %d beneath its descendant %d", c, n))
	}
	if p := t.nodes[c].parent; p != NoNode {
		t.unlink(c)
		if p == n { // c was a sibling, indices may have moved
			i = t.indexOf(n, old)
		}
	}
	t.nodes[n].children[i] = c
	t.nodes[old].parent = NoNode
	t.nodes[c].parent = n
}

// unlink removes n from its parent's child list.
func (t *Tree) unlink(n NodeID) {
	p := t.nodes[n].parent
	if p == NoNode {
		return
	}
	siblings := t.nodes[p].children
	for i, s := range siblings {
		if s == n {
			t.nodes[p].children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	t.nodes[n].parent = NoNode
}

func (t *Tree) indexOf(parent, child NodeID) int {
	for i, c := range t.nodes[parent].children {
		if c == child {
			return i
		}
	}
	return -1
}

func (t *Tree) isAncestorOrSelf(a, n NodeID) bool {
	for ; n != NoNode; n = t.nodes[n].parent {
		if n == a {
			return true
		}
	}
	return false
}

func (t *Tree) check(n NodeID) {
	if n < 0 || int(n) >= len(t.nodes) {
		panic(fmt.Sprintf("tree: invalid node handle %d", n))
	}
}

// --- Queries ---------------------------------------------------------------

// Label returns the label of n.
func (t *Tree) Label(n NodeID) string {
	t.check(n)
	return t.nodes[n].label
}

// SetLabel changes the label of n.
func (t *Tree) SetLabel(n NodeID, label string) {
	t.check(n)
	t.nodes[n].label = label
}

// Parent returns the parent of n, or NoNode for a root.
func (t *Tree) Parent(n NodeID) NodeID {
	t.check(n)
	return t.nodes[n].parent
}

// Children returns a copy of the child handles of n.
func (t *Tree) Children(n NodeID) []NodeID {
	t.check(n)
	ch := make([]NodeID, len(t.nodes[n].children))
	copy(ch, t.nodes[n].children)
	return ch
}

// Child returns the i-th child of n.
func (t *Tree) Child(n NodeID, i int) NodeID {
	t.check(n)
	return t.nodes[n].children[i]
}

// ChildCount returns the number of children of n.
func (t *Tree) ChildCount(n NodeID) int {
	t.check(n)
	return len(t.nodes[n].children)
}

// IsLeaf is true for nodes without children, i.e. tokens.
func (t *Tree) IsLeaf(n NodeID) bool {
	return t.ChildCount(n) == 0
}

// IsPreterminal is true for nodes with exactly one child which is a leaf.
func (t *Tree) IsPreterminal(n NodeID) bool {
	t.check(n)
	ch := t.nodes[n].children
	return len(ch) == 1 && len(t.nodes[ch[0]].children) == 0
}

// IsRoot is true for nodes without a parent.
func (t *Tree) IsRoot(n NodeID) bool {
	return t.Parent(n) == NoNode
}

// IsNonterminal is true for nodes which are neither leaves nor preterminals.
func (t *Tree) IsNonterminal(n NodeID) bool {
	return !t.IsLeaf(n) && !t.IsPreterminal(n)
}

package tree

import (
	"github.com/emirpasic/gods/stacks/arraystack"
)

// --- Traversal -------------------------------------------------------------

// Walk visits the subtree at n in pre-order, children left to right. The
// walk is iterative. If visit returns false, the children of the visited
// node are skipped.
func (t *Tree) Walk(n NodeID, visit func(n NodeID, depth int) bool) {
	type frame struct {
		n     NodeID
		depth int
	}
	stack := arraystack.New()
	stack.Push(frame{n, 0})
	for !stack.Empty() {
		v, _ := stack.Pop()
		f := v.(frame)
		if !visit(f.n, f.depth) {
			continue
		}
		ch := t.nodes[f.n].children
		for i := len(ch) - 1; i >= 0; i-- {
			stack.Push(frame{ch[i], f.depth + 1})
		}
	}
}

// Leaves returns the labels of all leaves below n, left to right.
func (t *Tree) Leaves(n NodeID) []string {
	var leaves []string
	t.Walk(n, func(c NodeID, _ int) bool {
		if t.IsLeaf(c) {
			leaves = append(leaves, t.Label(c))
		}
		return true
	})
	return leaves
}

// TokenTag is a token together with the POS-tag which dominates it.
type TokenTag struct {
	Token string
	Tag   string
}

// TokenTags returns the (token, tag) pairs of all preterminals below n,
// in sentence order.
func (t *Tree) TokenTags(n NodeID) []TokenTag {
	var pairs []TokenTag
	t.Walk(n, func(c NodeID, _ int) bool {
		if t.IsPreterminal(c) {
			pairs = append(pairs, TokenTag{
				Token: t.Label(t.nodes[c].children[0]),
				Tag:   t.Label(c),
			})
			return false
		}
		return true
	})
	return pairs
}

// Equal compares the subtree at a in t with the subtree at b in u by labels
// and shape. Node handles are not compared, so the trees may live in
// different arenas.
func Equal(t *Tree, a NodeID, u *Tree, b NodeID) bool {
	type pair struct{ a, b NodeID }
	stack := arraystack.New()
	stack.Push(pair{a, b})
	for !stack.Empty() {
		v, _ := stack.Pop()
		p := v.(pair)
		na, nb := t.nodes[p.a], u.nodes[p.b]
		if na.label != nb.label || len(na.children) != len(nb.children) {
			return false
		}
		for i := range na.children {
			stack.Push(pair{na.children[i], nb.children[i]})
		}
	}
	return true
}

// CopyFrom copies the subtree at n of src into t and returns the handle of
// the copy. The copy is parentless.
func (t *Tree) CopyFrom(src *Tree, n NodeID) NodeID {
	type pair struct{ from, to NodeID }
	root := t.Create(src.Label(n))
	stack := arraystack.New()
	stack.Push(pair{n, root})
	for !stack.Empty() {
		v, _ := stack.Pop()
		p := v.(pair)
		for _, c := range src.nodes[p.from].children {
			stack.Push(pair{c, t.CreateChild(p.to, src.nodes[c].label)})
		}
	}
	return root
}

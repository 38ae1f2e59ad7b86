package tree

import (
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/pcfg"
)

// BracketString renders the subtree at n in treebank bracket notation,
// e.g. "(S (NP (N dog)) (VP (V barks)))". A single leaf renders as its label.
func (t *Tree) BracketString(n NodeID) string {
	var b strings.Builder
	t.bracket(&b, n)
	return b.String()
}

func (t *Tree) bracket(b *strings.Builder, n NodeID) {
	if t.IsLeaf(n) {
		b.WriteString(t.Label(n))
		return
	}
	b.WriteByte('(')
	b.WriteString(t.Label(n))
	for _, c := range t.nodes[n].children {
		b.WriteByte(' ')
		t.bracket(b, c)
	}
	b.WriteByte(')')
}

// Indented renders the subtree at n with one line per node, indenting each
// level by indent.
func (t *Tree) Indented(n NodeID, indent string) string {
	var b strings.Builder
	t.Walk(n, func(c NodeID, depth int) bool {
		b.WriteString(strings.Repeat(indent, depth))
		b.WriteString(t.Label(c))
		b.WriteByte('\n')
		return true
	})
	return b.String()
}

// Simplify undoes the wrappers introduced by normalization below n: every
// synthesized nonterminal (label starting with "_" or containing "&") is
// replaced by its children. Collapsed unary chains cannot be restored.
// Leaves and preterminals are never removed.
func (t *Tree) Simplify(n NodeID) {
	stack := arraystack.New()
	stack.Push(n)
	for !stack.Empty() {
		v, _ := stack.Pop()
		p := v.(NodeID)
		collapsed := false
		var children []NodeID
		for _, c := range t.DetachAllChildren(p) {
			if t.isSynthetic(c) {
				children = append(children, t.DetachAllChildren(c)...)
				collapsed = true
			} else {
				children = append(children, c)
			}
		}
		for _, c := range children {
			t.Attach(p, c)
		}
		if collapsed {
			stack.Push(p)
			continue
		}
		for _, c := range children {
			stack.Push(c)
		}
	}
}

func (t *Tree) isSynthetic(n NodeID) bool {
	if !t.IsNonterminal(n) {
		return false
	}
	l := t.Label(n)
	return strings.HasPrefix(l, pcfg.TermPrefix) || strings.Contains(l, pcfg.BinSeparator)
}

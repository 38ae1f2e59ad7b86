package cnf

import (
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/pcfg"
	"github.com/npillmayer/pcfg/tree"
	"github.com/pkg/errors"
)

// ErrLeafSibling is returned for trees where a token has siblings. Tokens
// must be dominated by a POS-tag of their own.
var ErrLeafSibling = errors.New("token with siblings cannot be normalized")

// Normalize rewrites the subtree at root into Chomsky Normal Form. The tree
// is modified in place; nodes which are cut out stay in the arena as
// detached garbage.
//
// Normalizing a tree which already is in CNF leaves it unchanged.
func Normalize(t *tree.Tree, root tree.NodeID) error {
	worklist := arraystack.New()
	worklist.Push(root)
	for !worklist.Empty() {
		v, _ := worklist.Pop()
		n := v.(tree.NodeID)
		if t.IsLeaf(n) || t.IsPreterminal(n) {
			continue
		}
		children := t.Children(n)
		for _, c := range children {
			if t.IsLeaf(c) {
				tracer().Errorf("token %q has siblings below %q", t.Label(c), t.Label(n))
				return errors.Wrapf(ErrLeafSibling, "token %q below %q", t.Label(c), t.Label(n))
			}
		}
		switch {
		case len(children) == 1:
			if t.IsPreterminal(children[0]) {
				continue // X → POS
			}
			unit(t, n, children[0])
			worklist.Push(n)
		case hasPreterminal(t, children):
			term(t, n, children)
			worklist.Push(n)
		case len(children) == 2:
			worklist.Push(children[1])
			worklist.Push(children[0])
		default:
			bin(t, n, children)
			worklist.Push(n)
		}
	}
	return nil
}

// unit collapses n → c → (grandchildren) into n → (grandchildren).
func unit(t *tree.Tree, n, c tree.NodeID) {
	tracer().Debugf("UNIT %s → %s", t.Label(n), t.Label(c))
	grandchildren := t.DetachAllChildren(c)
	t.DetachAllChildren(n)
	for _, gc := range grandchildren {
		t.Attach(n, gc)
	}
}

// term wraps every preterminal child P of n into a new nonterminal _P.
func term(t *tree.Tree, n tree.NodeID, children []tree.NodeID) {
	for i, c := range children {
		if !t.IsPreterminal(c) {
			continue
		}
		w := t.Create(pcfg.TermPrefix + t.Label(c))
		tracer().Debugf("TERM %s: %s → %s", t.Label(n), t.Label(w), t.Label(c))
		t.ReplaceChild(n, i, w)
		t.Attach(w, c)
	}
}

// bin keeps the first child of n and merges all others below one new
// nonterminal, labeled by the merged labels joined with "&".
func bin(t *tree.Tree, n tree.NodeID, children []tree.NodeID) {
	rest := children[1:]
	labels := make([]string, len(rest))
	for i, c := range rest {
		labels[i] = t.Label(c)
	}
	w := t.Create(strings.Join(labels, pcfg.BinSeparator))
	tracer().Debugf("BIN %s → %s %s", t.Label(n), t.Label(children[0]), t.Label(w))
	for _, c := range rest {
		t.Attach(w, c)
	}
	t.Attach(n, w)
}

func hasPreterminal(t *tree.Tree, children []tree.NodeID) bool {
	for _, c := range children {
		if t.IsPreterminal(c) {
			return true
		}
	}
	return false
}

// IsCNF checks whether every node below root is a token, a preterminal,
// a nonterminal over a single preterminal, or a nonterminal over exactly
// two nonterminals.
func IsCNF(t *tree.Tree, root tree.NodeID) bool {
	ok := true
	t.Walk(root, func(n tree.NodeID, _ int) bool {
		if !ok {
			return false
		}
		switch t.ChildCount(n) {
		case 0:
		case 1:
			c := t.Child(n, 0)
			ok = t.IsLeaf(c) || t.IsPreterminal(c)
		case 2:
			ok = t.IsNonterminal(t.Child(n, 0)) && t.IsNonterminal(t.Child(n, 1))
		default:
			ok = false
		}
		return ok
	})
	return ok
}

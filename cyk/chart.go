package cyk

import (
	"fmt"
	"math"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/pcfg"
	"github.com/npillmayer/pcfg/grammar"
	"github.com/npillmayer/pcfg/tree"
	"github.com/pkg/errors"
)

// Candidate is a possible token at an input position, together with the
// log-probability of choosing it.
type Candidate struct {
	Token   string
	LogProb float64
}

// Entry is the best derivation of a symbol over a span of the input.
// Children are not stored, only the information needed to find them in the
// chart: for tag entries Rule is the lexicon rule emitting the token, for
// nonterminals over a single tag Rule is unary, otherwise Rule is binary and
// Split is the length of the left child's span.
type Entry struct {
	Symbol  string
	LogProb float64
	Span    pcfg.Span
	Rule    grammar.Rule
	Split   uint64
}

// Probability returns exp(LogProb).
func (e Entry) Probability() float64 {
	return math.Exp(e.LogProb)
}

func (e Entry) String() string {
	return fmt.Sprintf("%s%v[%v, %.4g]", e.Symbol, e.Span, e.Rule, e.LogProb)
}

// --- Cells -----------------------------------------------------------------

// cell maps symbols to their best entry, ordered by symbol.
type cell struct {
	entries *treemap.Map // string → *Entry
}

func newCell() *cell {
	return &cell{entries: treemap.NewWith(utils.StringComparator)}
}

func (c *cell) get(sym string) *Entry {
	if e, ok := c.entries.Get(sym); ok {
		return e.(*Entry)
	}
	return nil
}

// offer keeps e if there is no entry for its symbol yet or if e is strictly
// more probable than the current one.
func (c *cell) offer(e *Entry) bool {
	if old := c.get(e.Symbol); old != nil && e.LogProb <= old.LogProb {
		return false
	}
	c.entries.Put(e.Symbol, e)
	return true
}

func (c *cell) size() int {
	return c.entries.Size()
}

func (c *cell) symbols() []string {
	syms := make([]string, 0, c.entries.Size())
	for _, k := range c.entries.Keys() {
		syms = append(syms, k.(string))
	}
	return syms
}

func (c *cell) list() []Entry {
	list := make([]Entry, 0, c.entries.Size())
	for _, v := range c.entries.Values() {
		list = append(list, *v.(*Entry))
	}
	return list
}

// best returns the most probable entry, the first symbol in ascending
// order winning ties.
func (c *cell) best() *Entry {
	var best *Entry
	it := c.entries.Iterator()
	for it.Next() {
		e := it.Value().(*Entry)
		if best == nil || e.LogProb > best.LogProb {
			best = e
		}
	}
	return best
}

// --- Chart -----------------------------------------------------------------

// Chart is the triangular parse table for an input of n positions.
type Chart struct {
	n      int
	tokens [][]Candidate // row 0
	tags   []*cell       // row 1
	spans  [][]*cell     // spans[l-1][s]: nonterminals over l tokens starting at s
}

func newChart(columns [][]Candidate) *Chart {
	n := len(columns)
	ch := &Chart{
		n:      n,
		tokens: columns,
		tags:   make([]*cell, n),
		spans:  make([][]*cell, n),
	}
	for l := 1; l <= n; l++ {
		ch.spans[l-1] = make([]*cell, n-l+1)
	}
	return ch
}

// Len returns the number of input positions.
func (ch *Chart) Len() int {
	return ch.n
}

// Tokens returns the token candidates at position start.
func (ch *Chart) Tokens(start int) []Candidate {
	if start < 0 || start >= ch.n {
		return nil
	}
	return ch.tokens[start]
}

// TagCell returns the tag entries at position start, ordered by tag.
func (ch *Chart) TagCell(start int) []Entry {
	if start < 0 || start >= ch.n || ch.tags[start] == nil {
		return nil
	}
	return ch.tags[start].list()
}

// Cell returns the nonterminal entries over the span of length tokens at
// start, ordered by symbol.
func (ch *Chart) Cell(length, start int) []Entry {
	if c := ch.cell(length, start); c != nil {
		return c.list()
	}
	return nil
}

// Best returns the entry for sym over the span of length tokens at start.
func (ch *Chart) Best(length, start int, sym string) (Entry, bool) {
	if c := ch.cell(length, start); c != nil {
		if e := c.get(sym); e != nil {
			return *e, true
		}
	}
	return Entry{}, false
}

func (ch *Chart) cell(length, start int) *cell {
	if length < 1 || length > ch.n || start < 0 || start+length > ch.n {
		return nil
	}
	return ch.spans[length-1][start]
}

// Tree builds the parse tree of the entry for sym over the span of length
// tokens at start. Each call allocates a fresh arena; trees returned by
// different calls never share nodes.
func (ch *Chart) Tree(length, start int, sym string) (*tree.Tree, tree.NodeID, error) {
	top, ok := ch.Best(length, start, sym)
	if !ok {
		return nil, tree.NoNode, errors.Errorf("no entry for %s over %v", sym, pcfg.MakeSpan(start, length))
	}
	type frame struct {
		e      Entry
		parent tree.NodeID
	}
	t := tree.New()
	stack := []frame{{top, tree.NoNode}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		var n tree.NodeID
		if f.parent == tree.NoNode {
			n = t.Create(f.e.Symbol)
			t.SetRoot(n)
		} else {
			n = t.CreateChild(f.parent, f.e.Symbol)
		}
		if f.e.Rule.IsBinary() {
			l, r := f.e.Span.Split(f.e.Split)
			left, lok := ch.Best(int(l.Len()), int(l.From()), f.e.Rule.Left())
			right, rok := ch.Best(int(r.Len()), int(r.From()), f.e.Rule.Right())
			if !lok || !rok {
				stuck(fmt.Sprintf("chart entry %v refers to missing children", f.e))
				return nil, tree.NoNode, errors.Wrapf(ErrInconsistentGrammar, "dangling backpointer of %v", f.e)
			}
			if left.Span.Extend(right.Span) != f.e.Span {
				stuck(fmt.Sprintf("children of chart entry %v do not cover its span", f.e))
				return nil, tree.NoNode, errors.Wrapf(ErrInconsistentGrammar, "children %v and %v of %v", left.Span, right.Span, f.e)
			}
			stack = append(stack, frame{right, n}, frame{left, n})
			continue
		}
		pos := int(f.e.Span.From())
		tag := ch.tags[pos].get(f.e.Rule.Left())
		if tag == nil {
			stuck(fmt.Sprintf("chart entry %v refers to missing tag", f.e))
			return nil, tree.NoNode, errors.Wrapf(ErrInconsistentGrammar, "dangling backpointer of %v", f.e)
		}
		pt := t.CreateChild(n, tag.Symbol)
		t.CreateChild(pt, tag.Rule.Left())
	}
	return t, t.Root(), nil
}

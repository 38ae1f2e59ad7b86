package cyk

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/pcfg/grammar"
)

// ruleset is an ordered set of rules. Iteration is in ascending rule order.
type ruleset struct {
	set *treeset.Set
}

func newRuleset() ruleset {
	return ruleset{treeset.NewWith(grammar.RuleComparator)}
}

func (rs ruleset) add(rules ...grammar.Rule) {
	for _, r := range rules {
		rs.set.Add(r)
	}
}

func (rs ruleset) contains(r grammar.Rule) bool {
	return rs.set.Contains(r)
}

func (rs ruleset) size() int {
	return rs.set.Size()
}

func (rs ruleset) each(f func(grammar.Rule)) {
	it := rs.set.Iterator()
	for it.Next() {
		f(it.Value().(grammar.Rule))
	}
}

// candidates returns the binary rules whose left child is among leftSyms and
// whose right child is among rightSyms.
func candidates(g *grammar.Grammar, leftSyms, rightSyms []string) ruleset {
	fromLeft := newRuleset()
	for _, sym := range leftSyms {
		fromLeft.add(g.GenerateLeft(sym)...)
	}
	result := newRuleset()
	if fromLeft.size() == 0 {
		return result
	}
	for _, sym := range rightSyms {
		for _, r := range g.GenerateRight(sym) {
			if fromLeft.contains(r) {
				result.add(r)
			}
		}
	}
	return result
}

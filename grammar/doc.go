/*
Package grammar induces probabilistic context-free grammars from treebanks.

Induction runs in three steps. Trees are normalized to Chomsky Normal Form
(see package cnf). An Extractor then collects grammar rules (nonterminal to
nonterminal pair, or nonterminal to POS-tag) and lexicon rules (POS-tag to
token). Finally, maximum-likelihood estimation turns rule counts into
probabilities. Every POS-tag gets one synthetic observation of the unknown
token "<UNK>"; this is the only smoothing applied.

	ind := grammar.NewInducer()
	for _, t := range trees {
		if err := ind.Add(t, t.Root()); err != nil { … }
	}
	g, err := ind.Grammar()

A Grammar is immutable after construction and may be shared between any
number of concurrent parsers. Besides the probability tables it holds
reverse indices which answer "what can generate this symbol (pair)?" for
the chart parser:

	TagsFor(token)          tags emitting a token
	GeneratorsForTag(tag)   nonterminals directly dominating a tag
	GeneratorsFor(l, r)     nonterminals producing the ordered pair (l, r)
	GenerateLeft(sym)       binary rules with sym as left child
	GenerateRight(sym)      binary rules with sym as right child

All index lists are ordered by ascending rule order.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pcfg.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("pcfg.grammar")
}

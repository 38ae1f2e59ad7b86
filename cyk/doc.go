/*
Package cyk implements a Viterbi variant of the CYK chart parsing algorithm
for probabilistic grammars in Chomsky Normal Form.

The chart is triangular. Row 0 holds the input tokens, row 1 the POS-tags
which may emit them, row 2 the nonterminals directly dominating those tags,
and the following rows hold nonterminals over spans of 2…n tokens, built
from pairs of shorter spans. Every cell keeps at most one entry per symbol:
the most probable derivation of that symbol for the cell's span. Pruning
is final; no parse forest and no k-best list is retained.

Candidate rules for a pair of cells are found by intersecting the rules
indexed under the left cell's symbols as left children with the rules
indexed under the right cell's symbols as right children. Candidates are
tried in ascending rule order, split points from left to right; a derivation
replaces an existing one only if it is strictly more probable. Output is
therefore deterministic.

Probabilities are carried as natural logarithms.

	parser := cyk.NewParser(g, cyk.RootSymbol("SENT"))
	result, err := parser.Parse([]string{"le", "chat", "dort"})
	if errors.Is(err, cyk.ErrNoParse) { … }
	fmt.Println(result.Tree.BracketString(result.Root), result.Probability())

Cells of a row are independent of each other and may be computed in
parallel (see option Workers); a row is always complete before the next
row is started. Worker goroutines do not trace; a row is traced by the
goroutine running the parse, once it is complete.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cyk

import (
	"sync"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pcfg.cyk'. Output is serialized, as parsers may
// run on several goroutines while tracers are not safe for concurrent use.
func tracer() tracing.Trace {
	return lockedTrace{tracing.Select("pcfg.cyk")}
}

var traceMx sync.Mutex // guards output of all cyk tracers

type lockedTrace struct {
	tracing.Trace
}

func (t lockedTrace) Debugf(msg string, args ...interface{}) {
	traceMx.Lock()
	defer traceMx.Unlock()
	t.Trace.Debugf(msg, args...)
}

func (t lockedTrace) Infof(msg string, args ...interface{}) {
	traceMx.Lock()
	defer traceMx.Unlock()
	t.Trace.Infof(msg, args...)
}

func (t lockedTrace) Errorf(msg string, args ...interface{}) {
	traceMx.Lock()
	defer traceMx.Unlock()
	t.Trace.Errorf(msg, args...)
}

func (t lockedTrace) P(key string, val interface{}) tracing.Trace {
	traceMx.Lock()
	defer traceMx.Unlock()
	return lockedTrace{t.Trace.P(key, val)}
}

func (t lockedTrace) SetTraceLevel(l tracing.TraceLevel) {
	traceMx.Lock()
	defer traceMx.Unlock()
	t.Trace.SetTraceLevel(l)
}

func (t lockedTrace) GetTraceLevel() tracing.TraceLevel {
	traceMx.Lock()
	defer traceMx.Unlock()
	return t.Trace.GetTraceLevel()
}

// stuck reports a violated invariant. It panics if configuration flag
// panic-on-invariant is set.
func stuck(msg string) bool {
	tracer().Errorf("%s", msg)
	if gconf.GetBool("panic-on-invariant") {
		panic(`CYK-parser hit an inconsistent grammar.

Configuration flag panic-on-invariant is set to true. It is aimed at helping
to debug grammar construction and do a post-mortem of the chart. However, if
this is a production environment and you did not expect this to panic, please
unset panic-on-invariant to its default (false).

` + msg)
	}
	return true
}

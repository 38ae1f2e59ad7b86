package eval

import (
	"fmt"

	"github.com/npillmayer/pcfg/cyk"
	"github.com/npillmayer/pcfg/grammar"
	"github.com/npillmayer/pcfg/oov"
	"github.com/npillmayer/pcfg/tree"
	"github.com/pkg/errors"
)

// Split divides a treebank into the first 80% for training and the last
// 10% for testing. The 10% in between are left unused.
func Split(trees []*tree.Tree) (train, test []*tree.Tree) {
	n := len(trees)
	train = trees[:n*8/10]
	test = trees[n-n/10:]
	return
}

// TagAccuracy counts the positions where gold and parsed agree on both token
// and tag. Functional labels of gold tags are ignored. total is the length
// of the gold mapping.
func TagAccuracy(gold, parsed []tree.TokenTag) (correct, total int) {
	total = len(gold)
	for i, g := range gold {
		if i >= len(parsed) {
			break
		}
		if parsed[i].Token == g.Token && parsed[i].Tag == grammar.StripFunctional(g.Tag) {
			correct++
		}
	}
	return
}

// Report summarizes an evaluation run.
type Report struct {
	Sentences int // sentences evaluated
	Parsed    int // sentences with a parse
	NoParse   int // sentences without a parse
	Tokens    int // tokens of all sentences
	Correct   int // tokens tagged correctly
}

// Accuracy is the ratio of correctly tagged tokens to all tokens, counting
// tokens of unparsable sentences as wrong.
func (r Report) Accuracy() float64 {
	if r.Tokens == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Tokens)
}

func (r Report) String() string {
	return fmt.Sprintf("%d sentences, %d parsed, %d without parse, accuracy %.2f%% (%d/%d tokens)",
		r.Sentences, r.Parsed, r.NoParse, 100*r.Accuracy(), r.Correct, r.Tokens)
}

// Evaluator parses annotated trees and compares the result to the annotation.
type Evaluator struct {
	parser    *cyk.Parser
	corrector *oov.Corrector
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithCorrector lets the evaluator replace unknown tokens by corrections.
func WithCorrector(c *oov.Corrector) Option {
	return func(e *Evaluator) {
		e.corrector = c
	}
}

// NewEvaluator creates an evaluator using parser p.
func NewEvaluator(p *cyk.Parser, opts ...Option) *Evaluator {
	e := &Evaluator{parser: p}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate parses the token sequence of every tree and accumulates a report.
// Sentences without a parse are counted, other errors stop the evaluation.
func (e *Evaluator) Evaluate(trees []*tree.Tree) (Report, error) {
	var r Report
	for i, t := range trees {
		gold := t.TokenTags(t.Root())
		r.Sentences++
		r.Tokens += len(gold)
		tokens := make([]string, len(gold))
		for j, tt := range gold {
			tokens[j] = tt.Token
		}
		result, err := e.parse(tokens)
		if errors.Is(err, cyk.ErrNoParse) {
			tracer().Debugf("sentence #%d has no parse", i)
			r.NoParse++
			continue
		} else if err != nil {
			return r, errors.Wrapf(err, "sentence #%d", i)
		}
		r.Parsed++
		correct, _ := TagAccuracy(gold, restore(result.Tree.TokenTags(result.Root), tokens))
		r.Correct += correct
	}
	tracer().Infof("evaluation: %v", r)
	return r, nil
}

func (e *Evaluator) parse(tokens []string) (*cyk.Result, error) {
	if e.corrector == nil {
		return e.parser.Parse(tokens)
	}
	return e.parser.ParseLattice(e.corrector.Lattice(tokens))
}

// restore puts the original tokens back into a mapping produced from
// corrected input.
func restore(mapping []tree.TokenTag, tokens []string) []tree.TokenTag {
	if len(mapping) != len(tokens) {
		return mapping
	}
	for i := range mapping {
		mapping[i].Token = tokens[i]
	}
	return mapping
}

// Evaluate is a shortcut for NewEvaluator(p).Evaluate(trees).
func Evaluate(p *cyk.Parser, trees []*tree.Tree) (Report, error) {
	return NewEvaluator(p).Evaluate(trees)
}

package grammar

import (
	"github.com/npillmayer/pcfg/cnf"
	"github.com/npillmayer/pcfg/tree"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
)

// Inducer builds a grammar from a sequence of treebank trees.
type Inducer struct {
	x     *Extractor
	count int
}

// NewInducer creates an inducer without any observations.
func NewInducer() *Inducer {
	return &Inducer{x: NewExtractor()}
}

// Add normalizes the tree below root to CNF, in place, and collects its
// rules.
func (ind *Inducer) Add(t *tree.Tree, root tree.NodeID) error {
	if err := cnf.Normalize(t, root); err != nil {
		return err
	}
	if err := ind.x.Extract(t, root); err != nil {
		return err
	}
	ind.count++
	return nil
}

// Grammar estimates rule probabilities from all trees added so far and
// builds the grammar. Every tag receives one observation of <UNK>.
func (ind *Inducer) Grammar() (*Grammar, error) {
	syms := ind.x.Symbols()
	tracing.With(tracer()).Dump("symbols", syms)
	lexicon := WithUnknown(ind.x.LexiconRules(), syms.Tags)
	g, err := New(syms, Estimate(ind.x.GrammarRules()), Estimate(lexicon))
	if err != nil {
		return nil, err
	}
	tracer().Infof("induced grammar from %d trees", ind.count)
	return g, nil
}

// Induce is a shortcut for inducing a grammar from trees, each rooted at
// the root of its arena. The trees are normalized in place.
func Induce(trees []*tree.Tree) (*Grammar, error) {
	ind := NewInducer()
	for i, t := range trees {
		if err := ind.Add(t, t.Root()); err != nil {
			return nil, errors.Wrapf(err, "tree #%d", i)
		}
	}
	return ind.Grammar()
}

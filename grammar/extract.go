package grammar

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/pcfg/cnf"
	"github.com/npillmayer/pcfg/tree"
	"github.com/pkg/errors"
)

// ErrNotCNF is returned when extracting rules from a tree which has not been
// normalized.
var ErrNotCNF = errors.New("tree is not in Chomsky Normal Form")

// Extractor accumulates rules and symbols from normalized trees. Rules are
// kept as a sequence, with one entry per observation.
type Extractor struct {
	grammarRules []Rule
	lexiconRules []Rule
	nonterminals *treeset.Set
	tags         *treeset.Set
	vocabulary   *treeset.Set
}

// NewExtractor creates an empty extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		nonterminals: treeset.NewWith(utils.StringComparator),
		tags:         treeset.NewWith(utils.StringComparator),
		vocabulary:   treeset.NewWith(utils.StringComparator),
	}
}

// Extract collects the rules of the CNF tree below root. Functional labels
// are stripped from nonterminals and POS-tags; tokens are taken verbatim.
func (x *Extractor) Extract(t *tree.Tree, root tree.NodeID) error {
	if !cnf.IsCNF(t, root) {
		return errors.Wrapf(ErrNotCNF, "tree %s", t.BracketString(root))
	}
	t.Walk(root, func(n tree.NodeID, _ int) bool {
		switch {
		case t.IsLeaf(n):
			// a bare token without a tag contributes nothing
		case t.IsPreterminal(n):
			tag := StripFunctional(t.Label(n))
			token := t.Label(t.Child(n, 0))
			x.lexiconRules = append(x.lexiconRules, NewRule(tag, token))
			x.tags.Add(tag)
			x.vocabulary.Add(token)
			return false
		case t.ChildCount(n) == 1:
			lhs := StripFunctional(t.Label(n))
			x.grammarRules = append(x.grammarRules, NewRule(lhs, StripFunctional(t.Label(t.Child(n, 0)))))
			x.nonterminals.Add(lhs)
		default:
			lhs := StripFunctional(t.Label(n))
			l, r := t.Child(n, 0), t.Child(n, 1)
			x.grammarRules = append(x.grammarRules,
				NewRule(lhs, StripFunctional(t.Label(l)), StripFunctional(t.Label(r))))
			x.nonterminals.Add(lhs)
		}
		return true
	})
	return nil
}

// GrammarRules returns all observed grammar rules, one entry per observation.
func (x *Extractor) GrammarRules() []Rule {
	return x.grammarRules
}

// LexiconRules returns all observed lexicon rules, one entry per observation.
func (x *Extractor) LexiconRules() []Rule {
	return x.lexiconRules
}

// Symbols returns the symbol sets collected so far, each in ascending order.
func (x *Extractor) Symbols() Symbols {
	return Symbols{
		Nonterminals: stringValues(x.nonterminals),
		Tags:         stringValues(x.tags),
		Vocabulary:   stringValues(x.vocabulary),
	}
}

func stringValues(set *treeset.Set) []string {
	values := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		values = append(values, v.(string))
	}
	return values
}

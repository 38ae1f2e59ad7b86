package grammar

import (
	"math"
	"strconv"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/pcfg"
	"github.com/pkg/errors"
)

// ErrInvalidProbability flags a rule probability outside of (0, 1].
var ErrInvalidProbability = errors.New("rule probability out of range (0,1]")

// ErrInconsistent flags a rule referring to a symbol of the wrong category.
var ErrInconsistent = errors.New("inconsistent grammar")

// Symbols holds the symbol sets of a grammar.
type Symbols struct {
	Nonterminals []string
	Tags         []string
	Vocabulary   []string
}

// Entry is an element of a reverse index: a generating symbol together with
// the rule and its probability.
type Entry struct {
	Symbol  string  // the generating symbol, i.e. Rule.LHS
	Rule    Rule    // the rule generating the looked-up symbol(s)
	Prob    float64 // rule probability
	LogProb float64 // natural logarithm of Prob
}

type pair [2]string

// Grammar is a PCFG in Chomsky Normal Form. It is immutable after
// construction and safe for concurrent use.
type Grammar struct {
	nonterminals   *treeset.Set
	tags           *treeset.Set
	vocabulary     *treeset.Set
	grammarProbs   *treemap.Map // Rule → float64
	lexiconProbs   *treemap.Map // Rule → float64
	reverseLexicon map[string][]Entry
	reverseUnary   map[string][]Entry
	reverseBinary  map[pair][]Entry
	generateLeft   map[string][]Rule
	generateRight  map[string][]Rule
}

// New creates a grammar from symbol sets and probability tables. Lexicon
// rules map a tag to a token, grammar rules map a nonterminal to a tag or to
// a pair of nonterminals. All reverse indices are built by a single pass over
// each table, in ascending rule order.
func New(syms Symbols, grammarProbs, lexiconProbs map[Rule]float64) (*Grammar, error) {
	g := &Grammar{
		nonterminals:   stringSet(syms.Nonterminals),
		tags:           stringSet(syms.Tags),
		vocabulary:     stringSet(syms.Vocabulary),
		grammarProbs:   treemap.NewWith(RuleComparator),
		lexiconProbs:   treemap.NewWith(RuleComparator),
		reverseLexicon: make(map[string][]Entry),
		reverseUnary:   make(map[string][]Entry),
		reverseBinary:  make(map[pair][]Entry),
		generateLeft:   make(map[string][]Rule),
		generateRight:  make(map[string][]Rule),
	}
	for r, p := range lexiconProbs {
		if err := g.checkLexiconRule(r, p); err != nil {
			return nil, err
		}
		g.lexiconProbs.Put(r, p)
	}
	for r, p := range grammarProbs {
		if err := g.checkGrammarRule(r, p); err != nil {
			return nil, err
		}
		g.grammarProbs.Put(r, p)
	}
	it := g.lexiconProbs.Iterator()
	for it.Next() {
		r, p := it.Key().(Rule), it.Value().(float64)
		token := r.Left()
		g.reverseLexicon[token] = append(g.reverseLexicon[token], makeEntry(r, p))
	}
	it = g.grammarProbs.Iterator()
	for it.Next() {
		r, p := it.Key().(Rule), it.Value().(float64)
		if !r.IsBinary() {
			tag := r.Left()
			g.reverseUnary[tag] = append(g.reverseUnary[tag], makeEntry(r, p))
			continue
		}
		key := pair{r.Left(), r.Right()}
		g.reverseBinary[key] = append(g.reverseBinary[key], makeEntry(r, p))
		g.generateLeft[r.Left()] = append(g.generateLeft[r.Left()], r)
		g.generateRight[r.Right()] = append(g.generateRight[r.Right()], r)
	}
	tracer().Infof("grammar has %d nonterminals, %d tags, %d tokens, %d grammar rules, %d lexicon rules",
		g.nonterminals.Size(), g.tags.Size(), g.vocabulary.Size(), g.grammarProbs.Size(), g.lexiconProbs.Size())
	return g, nil
}

func makeEntry(r Rule, p float64) Entry {
	return Entry{Symbol: r.LHS, Rule: r, Prob: p, LogProb: math.Log(p)}
}

func checkProb(r Rule, p float64) error {
	if !(p > 0 && p <= 1) {
		return errors.Wrapf(ErrInvalidProbability, "%v has probability %g", r, p)
	}
	return nil
}

func (g *Grammar) checkLexiconRule(r Rule, p float64) error {
	if err := checkProb(r, p); err != nil {
		return err
	}
	if r.IsBinary() || !g.tags.Contains(r.LHS) {
		return errors.Wrapf(ErrInconsistent, "lexicon rule %v", r)
	}
	if r.Left() != pcfg.UnknownToken && !g.vocabulary.Contains(r.Left()) {
		return errors.Wrapf(ErrInconsistent, "lexicon rule %v emits token outside vocabulary", r)
	}
	return nil
}

func (g *Grammar) checkGrammarRule(r Rule, p float64) error {
	if err := checkProb(r, p); err != nil {
		return err
	}
	if !g.nonterminals.Contains(r.LHS) {
		return errors.Wrapf(ErrInconsistent, "grammar rule %v: LHS is not a nonterminal", r)
	}
	if r.IsBinary() {
		if !g.nonterminals.Contains(r.Left()) || !g.nonterminals.Contains(r.Right()) {
			return errors.Wrapf(ErrInconsistent, "grammar rule %v: RHS is not a nonterminal pair", r)
		}
	} else if !g.tags.Contains(r.Left()) {
		return errors.Wrapf(ErrInconsistent, "grammar rule %v: RHS is not a tag", r)
	}
	return nil
}

func stringSet(values []string) *treeset.Set {
	set := treeset.NewWith(utils.StringComparator)
	for _, v := range values {
		set.Add(v)
	}
	return set
}

// --- Reverse lookups -------------------------------------------------------

// TagsFor returns the tags which emit token, with their emission
// probabilities. An unknown token yields an empty result.
func (g *Grammar) TagsFor(token string) []Entry {
	return g.reverseLexicon[token]
}

// GeneratorsForTag returns the nonterminals directly dominating tag.
func (g *Grammar) GeneratorsForTag(tag string) []Entry {
	return g.reverseUnary[tag]
}

// GeneratorsFor returns the nonterminals which produce the ordered pair
// (left, right).
func (g *Grammar) GeneratorsFor(left, right string) []Entry {
	return g.reverseBinary[pair{left, right}]
}

// GenerateLeft returns all binary rules with sym as their left child.
func (g *Grammar) GenerateLeft(sym string) []Rule {
	return g.generateLeft[sym]
}

// GenerateRight returns all binary rules with sym as their right child.
func (g *Grammar) GenerateRight(sym string) []Rule {
	return g.generateRight[sym]
}

// Prob returns the probability of a grammar or lexicon rule.
func (g *Grammar) Prob(r Rule) (float64, bool) {
	if p, ok := g.grammarProbs.Get(r); ok {
		return p.(float64), true
	}
	if p, ok := g.lexiconProbs.Get(r); ok {
		return p.(float64), true
	}
	return 0, false
}

// LogProb returns the natural logarithm of the probability of r, or -Inf
// for rules not in the grammar.
func (g *Grammar) LogProb(r Rule) float64 {
	if p, ok := g.Prob(r); ok {
		return math.Log(p)
	}
	return math.Inf(-1)
}

// --- Symbols and rules -----------------------------------------------------

// IsNonterminal is true for symbols occuring as LHS of a grammar rule.
func (g *Grammar) IsNonterminal(sym string) bool {
	return g.nonterminals.Contains(sym)
}

// IsTag is true for POS-tags.
func (g *Grammar) IsTag(sym string) bool {
	return g.tags.Contains(sym)
}

// IsToken is true for tokens of the training vocabulary.
func (g *Grammar) IsToken(sym string) bool {
	return g.vocabulary.Contains(sym)
}

// Nonterminals returns all nonterminals in ascending order.
func (g *Grammar) Nonterminals() []string {
	return stringValues(g.nonterminals)
}

// Tags returns all POS-tags in ascending order.
func (g *Grammar) Tags() []string {
	return stringValues(g.tags)
}

// Vocabulary returns all training tokens in ascending order.
func (g *Grammar) Vocabulary() []string {
	return stringValues(g.vocabulary)
}

// Rules returns all grammar rules in ascending order.
func (g *Grammar) Rules() []Rule {
	return rules(g.grammarProbs)
}

// LexiconRules returns all lexicon rules in ascending order.
func (g *Grammar) LexiconRules() []Rule {
	return rules(g.lexiconProbs)
}

func rules(table *treemap.Map) []Rule {
	rs := make([]Rule, 0, table.Size())
	for _, k := range table.Keys() {
		rs = append(rs, k.(Rule))
	}
	return rs
}

// --- Debugging -------------------------------------------------------------

// Dump traces all rules with their probabilities (debug level).
func (g *Grammar) Dump() {
	tracer().Debugf("--- Grammar rules ---------------------------------")
	dumpTable(g.grammarProbs)
	tracer().Debugf("--- Lexicon rules ---------------------------------")
	dumpTable(g.lexiconProbs)
	tracer().Debugf("---------------------------------------------------")
}

func dumpTable(table *treemap.Map) {
	it := table.Iterator()
	for it.Next() {
		tracer().Debugf("%-40s %.6f", it.Key().(Rule), it.Value().(float64))
	}
}

// Fingerprint returns a stable hash over all rules and their probabilities.
// Grammars induced from the same treebank have the same fingerprint.
func (g *Grammar) Fingerprint() (string, error) {
	var fp struct {
		Grammar []string
		Lexicon []string
	}
	fp.Grammar = tableStrings(g.grammarProbs)
	fp.Lexicon = tableStrings(g.lexiconProbs)
	return structhash.Hash(fp, 1)
}

func tableStrings(table *treemap.Map) []string {
	s := make([]string, 0, table.Size())
	it := table.Iterator()
	for it.Next() {
		p := strconv.FormatFloat(it.Value().(float64), 'g', -1, 64)
		s = append(s, it.Key().(Rule).String()+" "+p)
	}
	return s
}

package cyk

import (
	"fmt"
	"math"

	"github.com/npillmayer/pcfg"
	"github.com/npillmayer/pcfg/grammar"
	"github.com/npillmayer/pcfg/tree"
	"github.com/npillmayer/schuko/gconf"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyInput is returned for input sequences without tokens.
var ErrEmptyInput = errors.New("empty input")

// ErrNoParse is returned if no derivation spans the whole input. It is an
// expected outcome for input not covered by the grammar.
var ErrNoParse = errors.New("no parse")

// ErrInconsistentGrammar is returned if the grammar violates its own
// invariants, e.g. a rule refers to an undeclared nonterminal. It signals a
// bug in grammar construction, not a property of the input.
var ErrInconsistentGrammar = errors.New("inconsistent grammar")

// Parser is a CYK parser for a fixed grammar. A Parser holds no state
// between calls to Parse and may be used concurrently.
type Parser struct {
	g       *grammar.Grammar
	root    string
	workers int
}

// Option configures a parser.
type Option func(p *Parser)

// RootSymbol restricts accepted parses to derivations of sym. Without this
// option the most probable symbol of the top cell is accepted.
func RootSymbol(sym string) Option {
	return func(p *Parser) {
		p.root = sym
	}
}

// Workers sets the number of goroutines computing the cells of a row.
// Values below 1 mean sequential operation.
func Workers(n int) Option {
	return func(p *Parser) {
		p.workers = n
	}
}

// NewParser creates a parser for grammar g. The default number of workers is
// taken from configuration key "cyk-workers".
func NewParser(g *grammar.Grammar, opts ...Option) *Parser {
	p := &Parser{
		g:       g,
		workers: gconf.GetInt("cyk-workers"),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.workers < 1 {
		p.workers = 1
	}
	return p
}

// Grammar returns the grammar of the parser.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.g
}

// Result is the most probable parse of an input.
type Result struct {
	Tree    *tree.Tree
	Root    tree.NodeID
	Symbol  string  // root symbol
	LogProb float64 // log-probability of the parse tree
	Chart   *Chart
}

// Probability returns the probability of the parse tree.
func (r *Result) Probability() float64 {
	return math.Exp(r.LogProb)
}

// Parse finds the most probable parse tree for a sequence of tokens. Tokens
// are looked up verbatim; a token unknown to the grammar gets no tag, which
// usually results in ErrNoParse (see package oov for substitution).
func (p *Parser) Parse(tokens []string) (*Result, error) {
	columns := make([][]Candidate, len(tokens))
	for i, tok := range tokens {
		columns[i] = []Candidate{{Token: tok}}
	}
	return p.ParseLattice(columns)
}

// ParseLattice finds the most probable parse tree for a lattice of token
// candidates, one column per input position. The log-probability of a
// candidate is added to the emission log-probability of its tags.
func (p *Parser) ParseLattice(columns [][]Candidate) (*Result, error) {
	n := len(columns)
	if n == 0 {
		tracer().Errorf("refusing to parse empty input")
		return nil, ErrEmptyInput
	}
	ch := newChart(columns)
	tracer().Debugf("=== CYK over %d positions ===========================", n)
	for s := 0; s < n; s++ {
		ch.tags[s] = p.tagCell(ch, s)
		c, err := p.unaryCell(ch, s)
		if err != nil {
			return nil, err
		}
		ch.spans[0][s] = c
	}
	for s := 0; s < n; s++ {
		if ch.spans[0][s].size() == 0 {
			tracer().Infof("no derivation for position %d (%v)", s, columns[s])
			return nil, errors.Wrapf(ErrNoParse, "no derivation for token %d", s)
		}
	}
	for l := 2; l <= n; l++ {
		if err := p.row(ch, l); err != nil {
			return nil, err
		}
	}
	top := ch.spans[n-1][0]
	var e *Entry
	if p.root != "" {
		e = top.get(p.root)
	} else {
		e = top.best()
	}
	if e == nil {
		tracer().Infof("top cell has no entry for root symbol %q", p.root)
		return nil, ErrNoParse
	}
	t, root, err := ch.Tree(n, 0, e.Symbol)
	if err != nil {
		return nil, err
	}
	tracer().Infof("parsed %d positions as %s, log-probability %.4f", n, e.Symbol, e.LogProb)
	return &Result{
		Tree:    t,
		Root:    root,
		Symbol:  e.Symbol,
		LogProb: e.LogProb,
		Chart:   ch,
	}, nil
}

// row fills all cells for spans of length l. Cells are traced after the
// row is complete, on the calling goroutine.
func (p *Parser) row(ch *Chart, l int) error {
	cells := ch.spans[l-1]
	var err error
	if p.workers == 1 || len(cells) == 1 {
		for s := range cells {
			if cells[s], err = p.binaryCell(ch, l, s); err != nil {
				break
			}
		}
	} else {
		var group errgroup.Group
		group.SetLimit(p.workers)
		for s := range cells {
			s := s
			group.Go(func() error {
				c, err := p.binaryCell(ch, l, s)
				cells[s] = c
				return err
			})
		}
		err = group.Wait()
	}
	if err != nil {
		stuck(err.Error())
		return err
	}
	for s, c := range cells {
		tracer().Debugf("cell %v: %v", pcfg.MakeSpan(s, l), c.symbols())
	}
	return nil
}

// tagCell collects the tags which may emit one of the candidates at
// position s, keeping the most probable emission per tag.
func (p *Parser) tagCell(ch *Chart, s int) *cell {
	c := newCell()
	for _, cand := range ch.tokens[s] {
		for _, tag := range p.g.TagsFor(cand.Token) {
			c.offer(&Entry{
				Symbol:  tag.Symbol,
				LogProb: cand.LogProb + tag.LogProb,
				Span:    pcfg.MakeSpan(s, 1),
				Rule:    tag.Rule,
			})
		}
	}
	tracer().Debugf("tags %v: %v", pcfg.MakeSpan(s, 1), c.symbols())
	return c
}

// unaryCell collects the nonterminals directly dominating a tag at
// position s.
func (p *Parser) unaryCell(ch *Chart, s int) (*cell, error) {
	c := newCell()
	for _, tag := range ch.tags[s].list() {
		for _, gen := range p.g.GeneratorsForTag(tag.Symbol) {
			if !p.g.IsNonterminal(gen.Symbol) && stuck(fmt.Sprintf("rule %v has undeclared LHS", gen.Rule)) {
				return nil, errors.Wrapf(ErrInconsistentGrammar, "rule %v", gen.Rule)
			}
			c.offer(&Entry{
				Symbol:  gen.Symbol,
				LogProb: gen.LogProb + tag.LogProb,
				Span:    pcfg.MakeSpan(s, 1),
				Rule:    gen.Rule,
			})
		}
	}
	return c, nil
}

// binaryCell builds the cell for the span of length l at s from all pairs of
// shorter spans, split points ascending, candidate rules ascending.
// binaryCell may run on a worker goroutine and therefore does not trace.
func (p *Parser) binaryCell(ch *Chart, l, s int) (*cell, error) {
	c := newCell()
	span := pcfg.MakeSpan(s, l)
	for k := 1; k < l; k++ {
		left, right := ch.spans[k-1][s], ch.spans[l-k-1][s+k]
		if left.size() == 0 || right.size() == 0 {
			continue
		}
		var err error
		candidates(p.g, left.symbols(), right.symbols()).each(func(r grammar.Rule) {
			if err != nil {
				return
			}
			if !p.g.IsNonterminal(r.LHS) {
				err = errors.Wrapf(ErrInconsistentGrammar, "rule %v has undeclared LHS", r)
				return
			}
			lp := p.g.LogProb(r) + left.get(r.Left()).LogProb + right.get(r.Right()).LogProb
			c.offer(&Entry{
				Symbol:  r.LHS,
				LogProb: lp,
				Span:    span,
				Rule:    r,
				Split:   uint64(k),
			})
		})
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

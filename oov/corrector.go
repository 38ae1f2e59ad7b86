package oov

import (
	"unicode/utf8"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/hbollon/go-edlib"
	"github.com/npillmayer/pcfg"
	"github.com/npillmayer/pcfg/cyk"
)

// MaxDistance is the default bound for corrections: vocabulary words with a
// distance below it are proposed.
const MaxDistance = 3

// Correction is a vocabulary word proposed for a token.
type Correction struct {
	Word     string
	Distance int
}

// Corrector proposes vocabulary words for unknown tokens.
type Corrector struct {
	vocabulary *treeset.Set
	bound      int
	penalty    float64
}

// Option configures a Corrector.
type Option func(*Corrector)

// Bound sets the exclusive upper bound of the distance of proposed words.
func Bound(d int) Option {
	return func(c *Corrector) {
		if d > 0 {
			c.bound = d
		}
	}
}

// Penalty sets the log-probability subtracted per edit from a correction
// candidate. The default is 0: all corrections are equally likely.
func Penalty(p float64) Option {
	return func(c *Corrector) {
		if p >= 0 {
			c.penalty = p
		}
	}
}

// NewCorrector creates a corrector for a vocabulary, usually taken from
// grammar.Grammar.Vocabulary().
func NewCorrector(vocabulary []string, opts ...Option) *Corrector {
	c := &Corrector{
		vocabulary: treeset.NewWith(utils.StringComparator),
		bound:      MaxDistance,
	}
	for _, w := range vocabulary {
		c.vocabulary.Add(w)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Known is true if token is in the vocabulary.
func (c *Corrector) Known(token string) bool {
	return c.vocabulary.Contains(token)
}

// Corrections returns all vocabulary words closer than the bound to token,
// measured as optimal string alignment distance (adjacent transpositions
// count as one edit, no substring is edited twice),
// ordered by distance, then lexicographically. A known token is returned as
// its own correction with distance 0.
func (c *Corrector) Corrections(token string) []Correction {
	if c.Known(token) {
		return []Correction{{Word: token}}
	}
	found := arraylist.New()
	tlen := utf8.RuneCountInString(token)
	it := c.vocabulary.Iterator()
	for it.Next() {
		w := it.Value().(string)
			if abs(utf8.RuneCountInString(w)-tlen) >= c.bound {
			continue
		}
		if charDiff(token, w) > 2*(c.bound-1) {
			continue
		}
		if d := edlib.OSADamerauLevenshteinDistance(token, w); d < c.bound {
			found.Add(Correction{Word: w, Distance: d})
		}
	}
	found.Sort(compareCorrections)
	corrections := make([]Correction, 0, found.Size())
	found.Each(func(_ int, v interface{}) {
		corrections = append(corrections, v.(Correction))
	})
	tracer().Debugf("corrections for %q: %v", token, corrections)
	return corrections
}

func compareCorrections(a, b interface{}) int {
	ca, cb := a.(Correction), b.(Correction)
	if ca.Distance != cb.Distance {
		return ca.Distance - cb.Distance
	}
	return utils.StringComparator(ca.Word, cb.Word)
}

// Candidates returns the lattice column for token. A known token is its own
// single candidate. An unknown token is replaced by its corrections, or by
// the unknown-word symbol if there are none.
func (c *Corrector) Candidates(token string) []cyk.Candidate {
	corrections := c.Corrections(token)
	if len(corrections) == 0 {
		tracer().Infof("no correction for %q, substituting %s", token, pcfg.UnknownToken)
		return []cyk.Candidate{{Token: pcfg.UnknownToken}}
	}
	column := make([]cyk.Candidate, len(corrections))
	for i, corr := range corrections {
		column[i] = cyk.Candidate{
			Token:   corr.Word,
			LogProb: -c.penalty * float64(corr.Distance),
		}
	}
	return column
}

// Lattice returns one candidate column per token.
func (c *Corrector) Lattice(tokens []string) [][]cyk.Candidate {
	columns := make([][]cyk.Candidate, len(tokens))
	for i, tok := range tokens {
		columns[i] = c.Candidates(tok)
	}
	return columns
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package grammar

import (
	"fmt"
	"strings"

	"github.com/npillmayer/pcfg"
)

// Rule is a production LHS → RHS with one or two right hand side symbols.
// Rules are values: two rules are equal iff LHS and the full RHS are equal,
// so they may be used as map keys directly.
type Rule struct {
	LHS   string
	RHS   [2]string
	arity int8
}

// NewRule creates a rule. It panics for right hand sides of length other
// than 1 or 2.
func NewRule(lhs string, rhs ...string) Rule {
	r := Rule{LHS: lhs, arity: int8(len(rhs))}
	switch len(rhs) {
	case 1:
		r.RHS[0] = rhs[0]
	case 2:
		r.RHS[0], r.RHS[1] = rhs[0], rhs[1]
	default:
		panic(fmt.Sprintf("rule %s with %d RHS symbols is not in CNF", lhs, len(rhs)))
	}
	return r
}

// Arity returns the number of RHS symbols.
func (r Rule) Arity() int {
	return int(r.arity)
}

// IsBinary is true for rules with two RHS symbols.
func (r Rule) IsBinary() bool {
	return r.arity == 2
}

// Left returns the first RHS symbol.
func (r Rule) Left() string {
	return r.RHS[0]
}

// Right returns the second RHS symbol of a binary rule, or "".
func (r Rule) Right() string {
	return r.RHS[1]
}

// Compare orders rules lexicographically by LHS, then RHS symbol by symbol.
// A shorter RHS which is a prefix of a longer one sorts first.
func (r Rule) Compare(other Rule) int {
	if c := strings.Compare(r.LHS, other.LHS); c != 0 {
		return c
	}
	n := r.arity
	if other.arity < n {
		n = other.arity
	}
	for i := int8(0); i < n; i++ {
		if c := strings.Compare(r.RHS[i], other.RHS[i]); c != 0 {
			return c
		}
	}
	switch {
	case r.arity < other.arity:
		return -1
	case r.arity > other.arity:
		return 1
	}
	return 0
}

func (r Rule) String() string {
	if r.arity == 2 {
		return fmt.Sprintf("%s ➞ %s %s", r.LHS, r.RHS[0], r.RHS[1])
	}
	return fmt.Sprintf("%s ➞ %s", r.LHS, r.RHS[0])
}

// RuleComparator orders rules within gods containers.
func RuleComparator(a, b interface{}) int {
	return a.(Rule).Compare(b.(Rule))
}

// StripFunctional removes functional label suffixes from a symbol, so that
// "PP-MOD" and "PP" denote the same grammar symbol. Synthesized labels are
// stripped component-wise: "_NP-SUJ" becomes "_NP", "NP-SUJ&VN" becomes
// "NP&VN". A label starting with "-", like "-LRB-", is left alone.
func StripFunctional(label string) string {
	if !strings.Contains(label, pcfg.FunctionalLabel) {
		return label
	}
	parts := strings.Split(label, pcfg.BinSeparator)
	for i, part := range parts {
		prefix := ""
		if strings.HasPrefix(part, pcfg.TermPrefix) {
			prefix, part = pcfg.TermPrefix, part[len(pcfg.TermPrefix):]
		}
		if j := strings.Index(part, pcfg.FunctionalLabel); j > 0 {
			part = part[:j]
		}
		parts[i] = prefix + part
	}
	return strings.Join(parts, pcfg.BinSeparator)
}

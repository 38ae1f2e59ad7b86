package cyk

import (
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/pcfg"
	"github.com/npillmayer/pcfg/cnf"
	"github.com/npillmayer/pcfg/grammar"
	"github.com/npillmayer/pcfg/tree"
	"github.com/npillmayer/pcfg/treebank"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pkg/errors"
)

const epsilon = 1e-9

func induce(t *testing.T, lines ...string) *grammar.Grammar {
	var trees []*tree.Tree
	for _, l := range lines {
		tr, err := treebank.Parse(l)
		if err != nil {
			t.Fatalf("cannot parse test tree %q: %v", l, err)
		}
		trees = append(trees, tr)
	}
	g, err := grammar.Induce(trees)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

var dogBarks = "(S (NP (N dog)) (VP (V barks)))"

var telescope = []string{
	"(S (NP (DET the) (N man)) (VP (V saw) (NP (DET the) (N dog))))",
	"(S (NP (DET the) (N man)) (VP (V saw) (NP (NP (DET the) (N dog)) (PP (P with) (NP (DET a) (N telescope))))))",
	"(S (NP (DET the) (N dog)) (VP (VP (V saw) (NP (DET a) (N man))) (PP (P with) (NP (DET the) (N telescope)))))",
	"(S (NP (N john)) (VP (V sleeps)))",
}

func TestParseDogBarks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.cyk")
	defer teardown()
	//
	g := induce(t, dogBarks)
	result, err := NewParser(g).Parse([]string{"dog", "barks"})
	if err != nil {
		t.Fatal(err)
	}
	if result.Symbol != "S" || result.Tree.Label(result.Root) != "S" {
		t.Errorf("expected root S, have %s", result.Symbol)
	}
	if b := result.Tree.BracketString(result.Root); b != dogBarks {
		t.Errorf("unexpected parse %s", b)
	}
	expected := 1.0
	for _, r := range []grammar.Rule{
		grammar.NewRule("S", "NP", "VP"),
		grammar.NewRule("NP", "N"),
		grammar.NewRule("VP", "V"),
		grammar.NewRule("N", "dog"),
		grammar.NewRule("V", "barks"),
	} {
		p, ok := g.Prob(r)
		if !ok {
			t.Fatalf("rule %v missing", r)
		}
		expected *= p
	}
	if math.Abs(result.Probability()-expected) > epsilon {
		t.Errorf("expected probability %g, have %g", expected, result.Probability())
	}
	if math.Abs(result.Probability()-0.25) > epsilon {
		t.Errorf("expected probability 0.25, have %g", result.Probability())
	}
}

func TestParseUnknownToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.cyk")
	defer teardown()
	//
	g := induce(t, dogBarks)
	parser := NewParser(g)
	// unseen tokens are not mapped to <UNK> by the parser
	if _, err := parser.Parse([]string{"cat"}); !errors.Is(err, ErrNoParse) {
		t.Errorf("expected ErrNoParse for unseen token, have %v", err)
	}
	if _, err := parser.Parse([]string{"cat", "barks"}); !errors.Is(err, ErrNoParse) {
		t.Errorf("expected ErrNoParse for unseen token, have %v", err)
	}
	// explicit substitution reaches the <UNK> mass
	result, err := parser.Parse([]string{pcfg.UnknownToken, "barks"})
	if err != nil {
		t.Fatalf("expected <UNK> to be parsable, have %v", err)
	}
	if math.Abs(result.Probability()-0.25) > epsilon {
		t.Errorf("expected probability 0.25, have %g", result.Probability())
	}
}

func TestParseEmptyInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.cyk")
	defer teardown()
	//
	g := induce(t, dogBarks)
	if _, err := NewParser(g).Parse(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, have %v", err)
	}
	if _, err := NewParser(g).ParseLattice([][]Candidate{}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, have %v", err)
	}
}

func TestRootSymbol(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.cyk")
	defer teardown()
	//
	g := induce(t, dogBarks)
	result, err := NewParser(g).Parse([]string{"dog"})
	if err != nil {
		t.Fatal(err)
	}
	if result.Symbol != "NP" {
		t.Errorf("expected single token to parse as NP, is %s", result.Symbol)
	}
	if _, err := NewParser(g, RootSymbol("S")).Parse([]string{"dog"}); !errors.Is(err, ErrNoParse) {
		t.Errorf("expected ErrNoParse with root S, have %v", err)
	}
}

func TestParseAmbiguous(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.cyk")
	defer teardown()
	//
	g := induce(t, telescope...)
	tokens := strings.Fields("the man saw the dog with a telescope")
	result, err := NewParser(g, RootSymbol("S")).Parse(tokens)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("parse: %s (p=%g)", result.Tree.BracketString(result.Root), result.Probability())
	leaves := result.Tree.Leaves(result.Root)
	if strings.Join(leaves, " ") != strings.Join(tokens, " ") {
		t.Errorf("parse tree yield %v differs from input", leaves)
	}
	if !cnf.IsCNF(result.Tree, result.Root) {
		t.Errorf("parse tree is not in CNF")
	}
	if result.LogProb >= 0 || math.IsInf(result.LogProb, -1) {
		t.Errorf("unexpected log-probability %g", result.LogProb)
	}
	checkMonotone(t, g, result.Chart)
}

// checkMonotone verifies for every chart cell that the retained entry of a
// symbol is at least as probable as any derivation of that symbol from the
// cells below, and that no derivable symbol is missing. Derivations are
// enumerated through the pair index, independently of the parser's
// left/right intersection.
func checkMonotone(t *testing.T, g *grammar.Grammar, ch *Chart) {
	n := ch.Len()
	check := func(length, start int, sym string, lp float64) {
		e, ok := ch.Best(length, start, sym)
		if !ok {
			t.Errorf("cell (%d,%d) misses derivable symbol %s", length, start, sym)
			return
		}
		if lp > e.LogProb+epsilon {
			t.Errorf("cell (%d,%d) keeps %s with %g, but %g is possible", length, start, sym, e.LogProb, lp)
		}
	}
	for s := 0; s < n; s++ {
		for _, tag := range ch.TagCell(s) {
			for _, gen := range g.GeneratorsForTag(tag.Symbol) {
				check(1, s, gen.Symbol, gen.LogProb+tag.LogProb)
			}
		}
	}
	for l := 2; l <= n; l++ {
		for s := 0; s+l <= n; s++ {
			for k := 1; k < l; k++ {
				for _, le := range ch.Cell(k, s) {
					for _, re := range ch.Cell(l-k, s+k) {
						for _, gen := range g.GeneratorsFor(le.Symbol, re.Symbol) {
							check(l, s, gen.Symbol, gen.LogProb+le.LogProb+re.LogProb)
						}
					}
				}
			}
		}
	}
}

func TestTiesAreDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.cyk")
	defer teardown()
	//
	// S ➞ A B and S ➞ C D derive "a b" with equal probability
	g := induce(t,
		"(S (C (x a)) (D (y b)))",
		"(S (A (x a)) (B (y b)))",
	)
	for _, workers := range []int{1, 4} {
		for i := 0; i < 5; i++ {
			result, err := NewParser(g, Workers(workers)).Parse([]string{"a", "b"})
			if err != nil {
				t.Fatal(err)
			}
			if b := result.Tree.BracketString(result.Root); b != "(S (A (x a)) (B (y b)))" {
				t.Errorf("expected lowest rule S ➞ A B to win the tie, have %s", b)
			}
		}
	}
}

func TestLongInputInLogSpace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.cyk")
	defer teardown()
	//
	// S ➞ S S (1/3), S ➞ N (2/3), N ➞ a (2/3)
	g := induce(t, "(S (S (N a)) (S (N a)))")
	n := 60
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = "a"
	}
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelError)
	result, err := NewParser(g, Workers(3)).Parse(tokens)
	tracer().SetTraceLevel(level)
	if err != nil {
		t.Fatal(err)
	}
	expected := float64(n)*math.Log(2.0/3.0*2.0/3.0) + float64(n-1)*math.Log(1.0/3.0)
	if math.Abs(result.LogProb-expected) > 1e-6 {
		t.Errorf("expected log-probability %g, have %g", expected, result.LogProb)
	}
	if leaves := result.Tree.Leaves(result.Root); len(leaves) != n {
		t.Errorf("expected parse tree over %d tokens, has %d leaves", n, len(leaves))
	}
}

func TestParallelEqualsSequential(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.cyk")
	defer teardown()
	//
	g := induce(t, telescope...)
	tokens := strings.Fields("the dog saw a man with the telescope")
	seq, err := NewParser(g, Workers(1)).Parse(tokens)
	if err != nil {
		t.Fatal(err)
	}
	par, err := NewParser(g, Workers(8)).Parse(tokens)
	if err != nil {
		t.Fatal(err)
	}
	if !tree.Equal(seq.Tree, seq.Root, par.Tree, par.Root) || seq.LogProb != par.LogProb {
		t.Errorf("parallel parse differs: %s vs %s",
			seq.Tree.BracketString(seq.Root), par.Tree.BracketString(par.Root))
	}
}

func TestParallelRowsWithDebugTracing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.cyk")
	defer teardown()
	//
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelDebug)
	defer tracer().SetTraceLevel(level)
	g := induce(t, telescope...)
	tokens := strings.Fields("the man saw the dog with a telescope")
	result, err := NewParser(g, Workers(4), RootSymbol("S")).Parse(tokens)
	if err != nil {
		t.Fatal(err)
	}
	if leaves := result.Tree.Leaves(result.Root); len(leaves) != len(tokens) {
		t.Errorf("expected parse tree over %d tokens, has %d leaves", len(tokens), len(leaves))
	}
}

func TestSharedParserOnGoroutines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.cyk")
	defer teardown()
	//
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelDebug)
	defer tracer().SetTraceLevel(level)
	g := induce(t, telescope...)
	tokens := strings.Fields("the man saw the dog with a telescope")
	parser := NewParser(g, Workers(2))
	expected, err := parser.Parse(tokens)
	if err != nil {
		t.Fatal(err)
	}
	want := expected.Tree.BracketString(expected.Root)
	results := make([]string, 4)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if r, err := parser.Parse(tokens); err == nil {
				results[i] = r.Tree.BracketString(r.Root)
			}
		}(i)
	}
	wg.Wait()
	for i, r := range results {
		if r != want {
			t.Errorf("goroutine %d: expected %s, have %q", i, want, r)
		}
	}
}

func TestParseLattice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.cyk")
	defer teardown()
	//
	g := induce(t, dogBarks)
	columns := [][]Candidate{
		{{Token: "cat"}, {Token: "dog", LogProb: math.Log(0.5)}},
		{{Token: "barks"}},
	}
	result, err := NewParser(g).ParseLattice(columns)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(result.Probability()-0.125) > epsilon {
		t.Errorf("expected probability 0.125, have %g", result.Probability())
	}
	if leaves := result.Tree.Leaves(result.Root); leaves[0] != "dog" {
		t.Errorf("expected candidate dog to be chosen, have %v", leaves)
	}
}

func TestChartTreesAreIndependent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.cyk")
	defer teardown()
	//
	g := induce(t, dogBarks)
	result, err := NewParser(g).Parse([]string{"dog", "barks"})
	if err != nil {
		t.Fatal(err)
	}
	t1, r1, err := result.Chart.Tree(2, 0, "S")
	if err != nil {
		t.Fatal(err)
	}
	t2, r2, _ := result.Chart.Tree(2, 0, "S")
	t1.SetLabel(t1.Child(r1, 0), "XX")
	if t2.Label(t2.Child(r2, 0)) != "NP" {
		t.Errorf("trees built from the chart must not share nodes")
	}
	if _, _, err := result.Chart.Tree(1, 0, "VP"); err == nil {
		t.Errorf("expected error for VP over 'dog'")
	}
	tags := result.Chart.TagCell(0)
	if len(tags) != 1 || tags[0].Symbol != "N" {
		t.Errorf("expected tag cell [N] for dog, have %v", tags)
	}
}

func TestChartTreeChecksChildSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.cyk")
	defer teardown()
	//
	g := induce(t, dogBarks)
	result, err := NewParser(g).Parse([]string{"dog", "barks"})
	if err != nil {
		t.Fatal(err)
	}
	np := result.Chart.cell(1, 0).get("NP")
	np.Span = pcfg.MakeSpan(1, 1) // no longer adjacent to VP
	if _, _, err := result.Chart.Tree(2, 0, "S"); !errors.Is(err, ErrInconsistentGrammar) {
		t.Errorf("expected ErrInconsistentGrammar for misplaced child, have %v", err)
	}
}

func TestConfiguration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.cyk")
	defer teardown()
	//
	gconf.Initialize(testconfig.Conf{
		"cyk-workers":        4,
		"panic-on-invariant": true,
	})
	defer gconf.Initialize(testconfig.Conf{})
	g := induce(t, dogBarks)
	if p := NewParser(g); p.workers != 4 {
		t.Errorf("expected 4 workers from configuration, have %d", p.workers)
	}
	if p := NewParser(g, Workers(2)); p.workers != 2 {
		t.Errorf("expected option to override configuration, have %d workers", p.workers)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected stuck() to panic with panic-on-invariant set")
		}
	}()
	stuck("test invariant")
}

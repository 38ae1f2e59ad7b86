package treebank

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pkg/errors"
)

func TestScan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.treebank")
	defer teardown()
	//
	toks, err := scan("( (SENT (NP-SUJ (DET Le) (NC chat))))")
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 16 {
		t.Errorf("expected 16 tokens, have %d: %v", len(toks), toks)
	}
	if toks[2].typ != Atom || toks[2].lexeme != "SENT" {
		t.Errorf("expected third token to be atom SENT, is %v", toks[2])
	}
}

func TestParseStripsWrapper(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.treebank")
	defer teardown()
	//
	tr, err := Parse("( (SENT (NP-SUJ (DET Le) (NC chat)) (VN (V dort)) (PONCT .)) )")
	if err != nil {
		t.Fatal(err)
	}
	root := tr.Root()
	if tr.Label(root) != "SENT" || !tr.IsRoot(root) {
		t.Errorf("expected root SENT, have %q", tr.Label(root))
	}
	expected := "(SENT (NP-SUJ (DET Le) (NC chat)) (VN (V dort)) (PONCT .))"
	if b := tr.BracketString(root); b != expected {
		t.Errorf("unexpected tree %s", b)
	}
}

func TestParseWithoutWrapper(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.treebank")
	defer teardown()
	//
	tr, err := Parse("(S (NP (N dog)) (VP (V barks)))")
	if err != nil {
		t.Fatal(err)
	}
	if b := tr.BracketString(tr.Root()); b != "(S (NP (N dog)) (VP (V barks)))" {
		t.Errorf("unexpected tree %s", b)
	}
}

func TestParseMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.treebank")
	defer teardown()
	//
	inputs := []string{
		"",
		"(S (NP (N dog))",
		"(S (N dog)))",
		"dog",
		"( (S (N a)) (S (N b)) )",
		"(S (N a)) (S (N b))",
		"()",
	}
	for _, input := range inputs {
		if _, err := Parse(input); !errors.Is(err, ErrMalformed) {
			t.Errorf("expected %q to be malformed, error is %v", input, err)
		}
	}
}

func TestRead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.treebank")
	defer teardown()
	//
	corpus := `( (S (NP (N dog)) (VP (V barks))) )

( (S (NP (N cat)) (VP (V sleeps))) )
`
	trees, err := Read(strings.NewReader(corpus))
	if err != nil {
		t.Fatal(err)
	}
	if len(trees) != 2 {
		t.Fatalf("expected 2 trees, have %d", len(trees))
	}
	if leaves := trees[1].Leaves(trees[1].Root()); leaves[0] != "cat" {
		t.Errorf("expected second sentence to start with 'cat', is %v", leaves)
	}
	_, err = Read(strings.NewReader("(S (N a))\n(S (N b)\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected error for line 2, have %v", err)
	}
}

func TestTokenize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.treebank")
	defer teardown()
	//
	toks := Tokenize("  the dog\tbarks \n")
	if len(toks) != 3 || toks[2] != "barks" {
		t.Errorf("unexpected tokens %v", toks)
	}
}

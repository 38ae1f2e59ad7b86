package eval

import (
	"testing"

	"github.com/npillmayer/pcfg/cyk"
	"github.com/npillmayer/pcfg/grammar"
	"github.com/npillmayer/pcfg/oov"
	"github.com/npillmayer/pcfg/tree"
	"github.com/npillmayer/pcfg/treebank"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var corpus = []string{
	"( (SENT (NP-SUJ (DET le) (NC chat)) (VN (V dort))))",
	"( (SENT (NP-SUJ (DET le) (NC chien)) (VN (V dort))))",
	"( (SENT (NP-SUJ (DET la) (NC souris)) (VN (V mange))))",
	"( (SENT (NP-SUJ (DET le) (NC chat)) (VN (V mange))))",
}

func readCorpus(t *testing.T, lines []string) []*tree.Tree {
	trees := make([]*tree.Tree, len(lines))
	for i, l := range lines {
		tr, err := treebank.Parse(l)
		if err != nil {
			t.Fatal(err)
		}
		trees[i] = tr
	}
	return trees
}

func TestSplit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.eval")
	defer teardown()
	//
	trees := make([]*tree.Tree, 20)
	for i := range trees {
		trees[i] = tree.New()
	}
	train, test := Split(trees)
	if len(train) != 16 || len(test) != 2 {
		t.Errorf("expected 16/2 split, have %d/%d", len(train), len(test))
	}
	if train[0] != trees[0] || test[1] != trees[19] {
		t.Errorf("expected training set at the front and test set at the end")
	}
	train, test = Split(trees[:5])
	if len(train) != 4 || len(test) != 0 {
		t.Errorf("expected 4/0 split for 5 trees, have %d/%d", len(train), len(test))
	}
}

func TestTagAccuracy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.eval")
	defer teardown()
	//
	gold := []tree.TokenTag{
		{Token: "le", Tag: "DET"},
		{Token: "chat", Tag: "NC-X"},
		{Token: "dort", Tag: "V"},
	}
	parsed := []tree.TokenTag{
		{Token: "le", Tag: "DET"},
		{Token: "chat", Tag: "NC"},
		{Token: "dort", Tag: "NC"},
	}
	correct, total := TagAccuracy(gold, parsed)
	if correct != 2 || total != 3 {
		t.Errorf("expected 2 of 3 correct, have %d of %d", correct, total)
	}
	if correct, _ = TagAccuracy(gold, parsed[:1]); correct != 1 {
		t.Errorf("expected short mapping to count 1 correct, have %d", correct)
	}
}

func TestEvaluate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcfg.eval")
	defer teardown()
	//
	train := readCorpus(t, corpus)
	g, err := grammar.Induce(train)
	if err != nil {
		t.Fatal(err)
	}
	test := readCorpus(t, []string{
		"( (SENT (NP-SUJ (DET la) (NC souris)) (VN (V dort))))",
		"( (SENT (NP-SUJ (DET le) (NC chien)) (VN (V mange))))",
		"( (SENT (NP-SUJ (DET le) (NC chiot)) (VN (V dort))))",
	})
	report, err := Evaluate(cyk.NewParser(g, cyk.RootSymbol("SENT")), test)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("report: %v", report)
	if report.Sentences != 3 || report.Parsed != 2 || report.NoParse != 1 {
		t.Errorf("expected 2 parsed and 1 unparsable sentence, have %v", report)
	}
	if report.Tokens != 9 || report.Correct != 6 {
		t.Errorf("expected 6 of 9 tokens correct, have %d of %d", report.Correct, report.Tokens)
	}
	// chiot is corrected to chien or chat
	corrector := oov.NewCorrector(g.Vocabulary())
	report, err = NewEvaluator(cyk.NewParser(g), WithCorrector(corrector)).Evaluate(test)
	if err != nil {
		t.Fatal(err)
	}
	if report.Parsed != 3 || report.Correct != 9 {
		t.Errorf("expected all sentences parsed and tagged with corrections, have %v", report)
	}
	if report.Accuracy() != 1.0 {
		t.Errorf("expected accuracy 1.0, have %g", report.Accuracy())
	}
}

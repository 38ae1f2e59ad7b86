package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/pcfg/cyk"
	"github.com/npillmayer/pcfg/eval"
	"github.com/npillmayer/pcfg/grammar"
	"github.com/npillmayer/pcfg/oov"
	"github.com/npillmayer/pcfg/tree"
	"github.com/npillmayer/pcfg/treebank"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newTrainCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Induce a grammar from a treebank and print statistics",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			trees, err := readTreebank(o)
			if err != nil {
				return err
			}
			g, err := induce(trees)
			if err != nil {
				return err
			}
			fp, err := g.Fingerprint()
			if err != nil {
				return err
			}
			pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
				{"trees", "nonterminals", "tags", "vocabulary", "rules", "lexicon rules"},
				{
					fmt.Sprint(len(trees)),
					fmt.Sprint(len(g.Nonterminals())),
					fmt.Sprint(len(g.Tags())),
					fmt.Sprint(len(g.Vocabulary())),
					fmt.Sprint(len(g.Rules())),
					fmt.Sprint(len(g.LexiconRules())),
				},
			}).Render()
			pterm.Info.Printf("grammar fingerprint %s\n", fp)
			g.Dump() // only visible in debug mode
			return nil
		},
	}
}

func newParseCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse sentence...",
		Short: "Induce a grammar from a treebank and parse sentences",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, err := newSession(o)
			if err != nil {
				return err
			}
			failed := 0
			for _, sentence := range args {
				if err := s.parse(sentence); err != nil {
					pterm.Error.Println(err.Error())
					failed++
				}
			}
			if failed > 0 {
				return errors.Errorf("%d of %d sentences could not be parsed", failed, len(args))
			}
			return nil
		},
	}
}

func newEvalCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "eval",
		Short: "Train on the first 80% of a treebank, measure tagging accuracy on the last 10%",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			trees, err := readTreebank(o)
			if err != nil {
				return err
			}
			train, test := eval.Split(trees)
			if len(test) == 0 {
				return errors.Errorf("treebank of %d trees is too small to split", len(trees))
			}
			// trees are normalized in place during induction, test trees are not touched
			g, err := induce(train)
			if err != nil {
				return err
			}
			var opts []eval.Option
			if o.oov {
				opts = append(opts, eval.WithCorrector(oov.NewCorrector(g.Vocabulary())))
			}
			report, err := eval.NewEvaluator(newParser(o, g), opts...).Evaluate(test)
			if err != nil {
				return err
			}
			pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
				{"sentences", "parsed", "no parse", "tokens", "correct", "accuracy"},
				{
					fmt.Sprint(report.Sentences),
					fmt.Sprint(report.Parsed),
					fmt.Sprint(report.NoParse),
					fmt.Sprint(report.Tokens),
					fmt.Sprint(report.Correct),
					fmt.Sprintf("%.2f%%", 100*report.Accuracy()),
				},
			}).Render()
			return nil
		},
	}
}

func newReplCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Induce a grammar from a treebank and parse sentences interactively",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			s, err := newSession(o)
			if err != nil {
				return err
			}
			return s.REPL()
		},
	}
}

// --- Helpers ---------------------------------------------------------------

func readTreebank(o *options) ([]*tree.Tree, error) {
	if o.treebank == "" {
		return nil, errors.New("no treebank given, use flag --treebank")
	}
	trees, err := treebank.ReadFile(o.treebank)
	if err != nil {
		return nil, err
	}
	pterm.Info.Printf("read %d trees from %s\n", len(trees), o.treebank)
	return trees, nil
}

func induce(trees []*tree.Tree) (*grammar.Grammar, error) {
	g, err := grammar.Induce(trees)
	if err != nil {
		return nil, errors.Wrap(err, "cannot induce grammar")
	}
	tracer().Infof("induced grammar with %d rules", len(g.Rules()))
	return g, nil
}

func newParser(o *options, g *grammar.Grammar) *cyk.Parser {
	var opts []cyk.Option
	if o.root != "" {
		opts = append(opts, cyk.RootSymbol(o.root))
	}
	return cyk.NewParser(g, opts...)
}

// session holds a grammar and parser for parsing several sentences.
type session struct {
	opts      *options
	parser    *cyk.Parser
	corrector *oov.Corrector
	repl      replReader
}

func newSession(o *options) (*session, error) {
	trees, err := readTreebank(o)
	if err != nil {
		return nil, err
	}
	g, err := induce(trees)
	if err != nil {
		return nil, err
	}
	s := &session{opts: o, parser: newParser(o, g)}
	if o.oov {
		s.corrector = oov.NewCorrector(g.Vocabulary())
	}
	return s, nil
}

// parse parses a sentence of space-separated tokens and prints the result.
func (s *session) parse(sentence string) error {
	tokens := treebank.Tokenize(sentence)
	var result *cyk.Result
	var err error
	if s.corrector != nil {
		result, err = s.parser.ParseLattice(s.corrector.Lattice(tokens))
	} else {
		result, err = s.parser.Parse(tokens)
	}
	if err != nil {
		return errors.Wrapf(err, "%q", strings.Join(tokens, " "))
	}
	if s.opts.simplify {
		result.Tree.Simplify(result.Root)
	}
	pterm.Info.Printf("p = %.6g   (log p = %.4f)\n", result.Probability(), result.LogProb)
	pterm.Println("( " + result.Tree.BracketString(result.Root) + ")")
	pterm.DefaultTree.WithRoot(leveledTree(result.Tree, result.Root)).Render()
	return nil
}

// leveledTree converts a parse tree to a pterm tree for display.
func leveledTree(t *tree.Tree, root tree.NodeID) pterm.TreeNode {
	var ll pterm.LeveledList
	t.Walk(root, func(n tree.NodeID, depth int) bool {
		if t.IsPreterminal(n) {
			ll = append(ll, pterm.LeveledListItem{
				Level: depth,
				Text:  t.Label(n) + " " + pterm.LightCyan(t.Label(t.Child(n, 0))),
			})
			return false
		}
		ll = append(ll, pterm.LeveledListItem{Level: depth, Text: t.Label(n)})
		return true
	})
	tracer().Debugf("|ll| = %d", len(ll))
	return pterm.NewTreeFromLeveledList(ll)
}

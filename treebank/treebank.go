package treebank

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/pcfg/tree"
	"github.com/pkg/errors"
)

// ErrMalformed is returned for lines which are not a well-formed bracket tree.
var ErrMalformed = errors.New("malformed bracket tree")

// maxLine bounds the length of a single treebank line.
const maxLine = 1 << 20

// Parse reads a single bracket tree. The returned arena has its root set to
// the top labeled node of the sentence.
func Parse(line string) (*tree.Tree, error) {
	toks, err := scan(line)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, errors.Wrap(ErrMalformed, "empty input")
	}
	t := tree.New()
	var stack []tree.NodeID
	root := tree.NoNode
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch tok.typ {
		case LParen:
			if root != tree.NoNode && len(stack) == 0 {
				return nil, errors.Wrapf(ErrMalformed, "trailing input at column %d", tok.span.From())
			}
			label := ""
			if i+1 < len(toks) && toks[i+1].typ == Atom {
				label = toks[i+1].lexeme
				i++
			}
			var n tree.NodeID
			if len(stack) == 0 {
				n = t.Create(label)
				root = n
			} else {
				if label == "" {
					return nil, errors.Wrapf(ErrMalformed, "missing label at column %d", tok.span.From())
				}
				n = t.CreateChild(stack[len(stack)-1], label)
			}
			stack = append(stack, n)
		case RParen:
			if len(stack) == 0 {
				return nil, errors.Wrapf(ErrMalformed, "unbalanced ')' at column %d", tok.span.From())
			}
			stack = stack[:len(stack)-1]
		case Atom:
			if len(stack) == 0 {
				return nil, errors.Wrapf(ErrMalformed, "token %q outside of brackets", tok.lexeme)
			}
			t.CreateChild(stack[len(stack)-1], tok.lexeme)
		}
	}
	if len(stack) > 0 {
		return nil, errors.Wrapf(ErrMalformed, "%d unclosed bracket(s)", len(stack))
	}
	if t.Label(root) == "" { // strip unlabeled wrapper
		if t.ChildCount(root) != 1 {
			return nil, errors.Wrapf(ErrMalformed, "unlabeled bracket with %d children", t.ChildCount(root))
		}
		child := t.DetachAllChildren(root)[0]
		root = child
	}
	if t.IsLeaf(root) {
		return nil, errors.Wrapf(ErrMalformed, "bracket %q has no children", t.Label(root))
	}
	t.SetRoot(root)
	tracer().Debugf("parsed tree %s", t.BracketString(root))
	return t, nil
}

// Read reads a treebank with one bracket tree per line. Empty lines are
// skipped. Errors carry the line number.
func Read(r io.Reader) ([]*tree.Tree, error) {
	var trees []*tree.Tree
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		t, err := Parse(line)
		if err != nil {
			tracer().Errorf("line %d: %v", lineno, err)
			return trees, errors.Wrapf(err, "line %d", lineno)
		}
		trees = append(trees, t)
	}
	if err := scanner.Err(); err != nil {
		return trees, errors.Wrap(err, "reading treebank")
	}
	tracer().Infof("read %d trees", len(trees))
	return trees, nil
}

// ReadFile reads a treebank file.
func ReadFile(path string) ([]*tree.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening treebank %q", path)
	}
	defer f.Close()
	return Read(f)
}

// Tokenize splits a sentence into whitespace-delimited tokens.
func Tokenize(sentence string) []string {
	return strings.Fields(sentence)
}

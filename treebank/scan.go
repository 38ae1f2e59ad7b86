package treebank

import (
	"sync"

	"github.com/npillmayer/pcfg"
	"github.com/pkg/errors"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token types of the bracket lexer.
const (
	LParen int = iota + 1
	RParen
	Atom
)

var tokenNames = map[int]string{
	LParen: "(",
	RParen: ")",
	Atom:   "ATOM",
}

// token is a lexeme together with its type and column span.
type token struct {
	typ    int
	lexeme string
	span   pcfg.Span
}

func (tok token) String() string {
	if tok.typ == Atom {
		return tok.lexeme
	}
	return tokenNames[tok.typ]
}

var lexerOnce sync.Once // monitors one-time compilation of the DFA
var lexer *lexmachine.Lexer
var lexerErr error

func bracketLexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		lexer = lexmachine.NewLexer()
		lexer.Add([]byte(`\(`), makeToken(LParen))
		lexer.Add([]byte(`\)`), makeToken(RParen))
		lexer.Add([]byte(`[^\(\) \t\n\r]+`), makeToken(Atom))
		lexer.Add([]byte(`( |\t|\n|\r)+`), skip)
		if lexerErr = lexer.Compile(); lexerErr != nil {
			tracer().Errorf("error compiling DFA: %v", lexerErr)
		}
	})
	return lexer, lexerErr
}

// scan splits a line into bracket and atom tokens.
func scan(line string) ([]token, error) {
	lx, err := bracketLexer()
	if err != nil {
		return nil, err
	}
	scanner, err := lx.Scanner([]byte(line))
	if err != nil {
		return nil, err
	}
	var toks []token
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				return toks, errors.Wrapf(ErrMalformed, "unexpected input at column %d", ui.FailTC)
			}
			return toks, err
		}
		t := tok.(*lexmachine.Token)
		toks = append(toks, token{
			typ:    t.Type,
			lexeme: string(t.Lexeme),
			span:   pcfg.Span{uint64(t.StartColumn), uint64(t.EndColumn)},
		})
	}
	return toks, nil
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

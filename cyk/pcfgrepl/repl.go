package main

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
)

// replReader is the part of readline.Instance the REPL needs.
type replReader interface {
	Readline() (string, error)
	Close() error
}

// REPL starts interactive mode. Each input line is parsed as a sentence of
// space-separated tokens. Quit with <ctrl>D or "quit".
func (s *session) REPL() error {
	if s.repl == nil {
		repl, err := readline.New("pcfg> ")
		if err != nil {
			return err
		}
		s.repl = repl
	}
	defer s.repl.Close()
	pterm.Info.Println("Welcome to the PCFG REPL")
	tracer().Infof("Quit with <ctrl>D")
	for {
		line, err := s.repl.Readline()
		if err == io.EOF {
			break
		} else if err != nil { // e.g. readline.ErrInterrupt
			continue
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if line == "quit" {
			break
		}
		if err := s.parse(line); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	println("Good bye!")
	return nil
}

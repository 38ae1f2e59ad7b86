/*
Package pcfgrepl/main provides the command line tool `pcfg`. It induces a
probabilistic grammar from a bracketed treebank and parses sentences with
it, either given as arguments or interactively in a REPL. A treebank may be
split into a training and a test part to measure tagging accuracy.

Configuration is read from a NestedText file `pcfg.nt` at the usual
configuration locations, if present. Command line flags override it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pcfg.cli'
func tracer() tracing.Trace {
	return tracing.Select("pcfg.cli")
}

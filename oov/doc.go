/*
Package oov proposes replacements for tokens which are not in the
vocabulary of a grammar.

A Corrector looks for vocabulary words with an optimal string alignment
distance (restricted Damerau-Levenshtein) below a threshold. If no such word
exists, the token is replaced by the unknown-word symbol. The result is a
column of weighted candidates, ready to be fed into a lattice parse.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package oov

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pcfg.oov'.
func tracer() tracing.Trace {
	return tracing.Select("pcfg.oov")
}

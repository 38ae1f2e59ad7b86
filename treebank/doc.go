/*
Package treebank reads constituency trees in bracket notation.

A treebank file holds one sentence per line, in the convention

	( (SENT (NP (DET Le) (NC chat)) (VN (V dort)) (PONCT .)) )

The outer unlabeled bracket pair is stripped, so the tree returned for the
line above is rooted at SENT. Labels are taken verbatim; functional suffixes
like "-SUJ" are left in place for grammar induction to deal with.

Scanning is done with lexmachine. The lexer recognizes three token types:
opening brackets, closing brackets and atoms (any run of bytes which are
neither brackets nor whitespace).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package treebank

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pcfg.treebank'.
func tracer() tracing.Trace {
	return tracing.Select("pcfg.treebank")
}

/*
Package cnf rewrites treebank trees into Chomsky Normal Form.

After normalization every node of a tree is either a token, a preterminal
(POS-tag over a token), a nonterminal over a single preterminal, or a
nonterminal over exactly two nonterminals. Three rewrites get there:

	UNIT   X → Y → (children)      becomes  X → (children)
	TERM   X → … P …  (P a POS)    becomes  X → … _P … and _P → P
	BIN    X → A B C …             becomes  X → A  B&C…  and  B&C… → B C …

Rewrites happen in place and are driven by an explicit worklist of node
handles, so deeply nested trees do not grow the call stack.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cnf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pcfg.cnf'.
func tracer() tracing.Trace {
	return tracing.Select("pcfg.cnf")
}

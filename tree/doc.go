/*
Package tree implements labeled ordered trees with parent back-references.

All nodes of a tree live in an arena and are addressed by handles of type
NodeID. A parent reference is just another handle, so moving subtrees around
never leaves a dangling pointer. Every operation which moves a node updates
the parent handle of that node as part of the same call.

Nodes fall into three categories, distinguished by shape only:
tokens (no children), preterminals (exactly one child, which is a token) and
nonterminals (everything else).

	t := tree.New()
	s := t.Create("S")
	np := t.CreateChild(s, "NP")
	t.CreateChild(t.CreateChild(np, "N"), "dog")
	fmt.Println(t.BracketString(s))   // (S (NP (N dog)))

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pcfg.tree'.
func tracer() tracing.Trace {
	return tracing.Select("pcfg.tree")
}

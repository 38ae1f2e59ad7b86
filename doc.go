/*
Package pcfg is a toolbox for probabilistic context-free grammars.

It induces a PCFG from a treebank of annotated constituency trees and
recovers the single most probable parse of new sentences with a Viterbi
variant of the CYK algorithm. Package structure is as follows:

■ tree: Package tree implements labeled ordered trees, stored in an arena of node handles.

■ cnf: Package cnf rewrites treebank trees into Chomsky Normal Form.

■ grammar: Package grammar extracts rules from normalized trees, estimates
maximum-likelihood probabilities and builds the reverse-indexed grammar.

■ cyk: Package cyk implements the chart parser.

■ treebank: Package treebank reads bracketed treebank files.

■ oov: Package oov offers optional substitution of out-of-vocabulary tokens.

■ eval: Package eval measures tagging accuracy on held-out trees.

■ cyk/pcfgrepl: Command pcfg trains, parses, evaluates and offers a REPL.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pcfg

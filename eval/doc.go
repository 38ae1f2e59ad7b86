/*
Package eval measures how well an induced grammar tags held-out sentences.

A treebank is split into a training part and a test part. Sentences of the
test part are stripped down to their tokens, parsed, and the POS-tags of the
most probable parse are compared to the tags of the annotated tree.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package eval

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pcfg.eval'.
func tracer() tracing.Trace {
	return tracing.Select("pcfg.eval")
}

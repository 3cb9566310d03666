/*
Package lazy implements restartable lazy sequences.

A Seq does not hold any values. It knows how to start a traversal, which pulls values
on demand from some source: a slice, an iterator function, a collection of package
sets, or a generator for number ranges. Combinators wrap a sequence in a new one:

	evens := lazy.FromLength(1000).Filter(func(n int) bool { return n%2 == 0 })
	squares := lazy.Map(evens, func(n int) int { return n * n })
	first5 := squares.Take(5).Slice()     // [0 4 16 36 64]

No element is computed before it is pulled by a consumer, and each combinator keeps
only a constant amount of state per traversal (Distinct being the exception, as it has
to remember the keys it has seen).

Every traversal starts from scratch: starting a new traversal is free of side effects and
independent of other traversals of the same sequence. A sequence over a mutable source
reflects the state of the source at the time a traversal starts. Clients needing a
frozen copy use Materialize.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package lazy

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'refsets.lazy'.
func tracer() tracing.Trace {
	return tracing.Select("refsets.lazy")
}

/*
Package holes implements a dense array which tolerates logical deletions.

An Array keeps its values in insertion order. Removing a value does not shift the
remainder of the array, but marks the value's slot as a hole. Holes are reclaimed in
a single step, called compaction, which rebuilds the array without holes and re-derives
the positions recorded in the array's value index.

When compaction happens is decided by a compaction mode, chosen at construction time:

	arr, err := holes.New[string](
	    holes.Compaction(holes.Lazy),   // compact after a full iteration
	    holes.HoleThreshold(64),        // … if at least 64 holes have accumulated
	)

The value index comes in two variants: a single-occupancy index, which deduplicates
values (the default), and a multi-occupancy index, which counts repeated values
(option Deduplicate(false)).

Arrays are not safe for concurrent use.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package holes

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'refsets.holes'.
func tracer() tracing.Trace {
	return tracing.Select("refsets.holes")
}

// VerifyCompactionKey is a configuration flag. If set to true, every compaction
// is followed by a check of all invariants of the array, and a violation panics.
const VerifyCompactionKey = "refsets-verify-compaction"

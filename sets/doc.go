/*
Package sets implements ordered collections on top of hole-tracking arrays.

All collections keep their values in insertion order and accept the options of
package holes, i.e. a compaction mode, a hole threshold and the choice between
deduplicating values and counting repeated values:

	q, _ := sets.NewQueueSet[string](holes.Deduplicate(false))
	q.Enqueue("a")
	q.Enqueue("b")
	q.Enqueue("a")
	v, _ := q.Dequeue()   // "a", the oldest occurrence

OrderedSet is a plain ordered set. QueueSet removes from the front (FIFO),
StackSet removes from the back (LIFO).

Collections connect to package lazy in two ways: Seq returns a live view, which
reads the collection at the time of traversal, and Snapshot returns a sequence
over a copy, which is not affected by later modifications.

Collections are not safe for concurrent use.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package sets

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'refsets.sets'.
func tracer() tracing.Trace {
	return tracing.Select("refsets.sets")
}

/*
Package refsets implements ordered collections on top of a dense array which
tolerates logical deletions ("holes"), together with lazy sequences to traverse them.

Removing an element from an array-backed ordered collection usually means shifting
the remainder of the array. Collections of this module instead mark the slot of a
removed element as a hole and reclaim holes later, in a single compaction step.
When compaction happens is a matter of policy and is configured per collection.

Package structure is as follows:

■ holes: Package holes implements the hole-tracking array, its value index and the
compaction policies.

■ lazy: Package lazy implements restartable lazy sequences and combinators on them
(map, filter, take, …), pulling elements on demand.

■ sets: Package sets provides ordered sets, queues and stacks as thin façades over
package holes. Sub-package srepl is an interactive sandbox for experiments.

■ ring: Package ring implements a FIFO ring buffer of packed 24-bit integers.

The base package contains the error type which is used throughout all the other packages.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package refsets

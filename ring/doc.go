/*
Package ring implements a FIFO ring buffer for small unsigned integers.

Values are restricted to 24 bits and stored packed, three bytes per slot. This
makes a Ring a compact store for positions or indices into other data structures,
e.g. for queues of array positions:

	r := ring.New(16)
	r.Push(4711)
	r.Push(42)
	v, _ := r.Pop()    // 4711

A full ring doubles its capacity when a value is pushed; order is preserved
across growth and across wraparound.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package ring

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'refsets.ring'.
func tracer() tracing.Trace {
	return tracing.Select("refsets.ring")
}

/*
Package srepl/main provides an interactive command line tool (S.REPL) for
experiments with the collections of module refsets. Users create named
collections, add and remove values and watch holes being punched and
reclaimed under the various compaction modes.

	srepl> new q queue multi Lazy 2
	srepl> add q a b a c
	srepl> take q
	srepl> show q

Type 'help' for a list of commands, quit with 'quit' or <ctrl>D.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'refsets.srepl'
func tracer() tracing.Trace {
	return tracing.Select("refsets.srepl")
}

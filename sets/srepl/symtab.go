package main

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/refsets/lazy"
	"github.com/npillmayer/refsets/sets"
)

// Kind is the type of a collection bound to a name.
type Kind int8

// Kinds of collections.
const (
	SetKind Kind = iota
	QueueKind
	StackKind
)

func (k Kind) String() string {
	switch k {
	case SetKind:
		return "set"
	case QueueKind:
		return "queue"
	case StackKind:
		return "stack"
	}
	return "?"
}

func kindFromString(s string) (Kind, bool) {
	for _, k := range []Kind{SetKind, QueueKind, StackKind} {
		if k.String() == s {
			return k, true
		}
	}
	return SetKind, false
}

// collection is what all the collections of package sets have in common.
type collection interface {
	Has(string) bool
	Count(string) int
	Len() int
	Remove(string) bool
	RemoveN(string, int) (bool, error)
	Seq() lazy.Seq[string]
	Compact()
	Clear()
	Stats() sets.Stats
	String() string
}

var _ collection = (*sets.OrderedSet[string])(nil)
var _ collection = (*sets.QueueSet[string])(nil)
var _ collection = (*sets.StackSet[string])(nil)

// --- Tags ------------------------------------------------------------------

// Tag binds a name to a collection.
type Tag struct {
	name string
	Kind Kind
	Coll collection
}

// NewTag creates a new tag for a collection.
func NewTag(name string, kind Kind, coll collection) *Tag {
	return &Tag{name: name, Kind: kind, Coll: coll}
}

// Name gets the tag's name.
func (tag *Tag) Name() string {
	return tag.name
}

// String is a debug Stringer for tags.
func (tag *Tag) String() string {
	return fmt.Sprintf("<%s '%s' %v>", tag.Kind, tag.name, tag.Coll)
}

// === Symbol Tables =========================================================

// SymbolTable stores tags by name, ordered by name.
type SymbolTable struct {
	table *treemap.Map
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{table: treemap.NewWithStringComparator()}
}

// ResolveTag checks for a tag in the symbol table.
// Returns a tag or nil.
func (t *SymbolTable) ResolveTag(name string) *Tag {
	if tag, found := t.table.Get(name); found {
		return tag.(*Tag)
	}
	return nil
}

// InsertTag inserts a tag, overwriting an existing tag with the same name.
// Returns the previously stored tag (or nil).
func (t *SymbolTable) InsertTag(tag *Tag) *Tag {
	old := t.ResolveTag(tag.name)
	t.table.Put(tag.name, tag)
	return old
}

// Each calls f for every tag, in order of names.
func (t *SymbolTable) Each(f func(tag *Tag)) {
	t.table.Each(func(_ interface{}, tag interface{}) {
		f(tag.(*Tag))
	})
}

// Size returns the number of tags in the symbol table.
func (t *SymbolTable) Size() int {
	return t.table.Size()
}

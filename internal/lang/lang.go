// Package lang is the external contract spec.md component G describes:
// everything the formatting engine needs from a target language, without
// the core ever branching on which language is active.
package lang

import (
	"io"

	"github.com/udoprog/genco/internal/its"
)

// IndentUnit is either N spaces or a tab (spec.md §6).
type IndentUnit struct {
	Spaces int
	Tab    bool
}

// FourSpaces is the formatter's default indent unit.
var FourSpaces = IndentUnit{Spaces: 4}

// Config is render-scoped formatting configuration (spec.md §6): the
// indent unit and the line ending. Adapters supply defaults via
// DefaultConfig; the CLI and library callers may override either field.
type Config struct {
	Indent     IndentUnit
	LineEnding string
}

// StringPart is one piece of a quoted string to be rendered by
// QuoteString: either literal text or an already-rendered value to
// interpolate.
type StringPart struct {
	Literal bool
	Text    string // raw literal text, valid when Literal
	Value   string // rendered value text, valid when !Literal
}

// Value is a language item placed into the intermediate token stream by
// the evaluator: the payload is opaque to the core (Data holds whatever
// the adapter needs — an import path, a type name, an alias policy) and
// Importable says whether it belongs in the import set.
type Value struct {
	Data       any
	Importable bool
}

// AsItem adapts a Value to its.Item for insertion into an its.Stream.
func (v Value) AsItem() its.Item { return item{v} }

type item struct{ v Value }

func (i item) Importable() bool { return i.v.Importable }

// ValueOf recovers the Value carried by an its.Item produced by AsItem.
func ValueOf(it its.Item) (Value, bool) {
	i, ok := it.(item)
	return i.v, ok
}

// Entry is how a Value is kept inside an ImportSet, alongside the order
// it was first registered in.
type Entry struct {
	Key   string
	Value Value
}

// ImportSet deduplicates importable items by an adapter-chosen key
// (spec.md invariant 5 / Testable Property "Import uniqueness": K
// references to the same item register it exactly once). Iteration
// order is insertion order; adapters re-sort as needed in EmitImports.
type ImportSet struct {
	order   []string
	entries map[string]Entry
}

// NewImportSet creates an empty ImportSet.
func NewImportSet() *ImportSet {
	return &ImportSet{entries: make(map[string]Entry)}
}

// Add registers v under key, returning false if an entry with that key
// already existed (no-op in that case — first registration wins).
func (s *ImportSet) Add(key string, v Value) bool {
	if _, ok := s.entries[key]; ok {
		return false
	}
	s.entries[key] = Entry{Key: key, Value: v}
	s.order = append(s.order, key)
	return true
}

// Entries returns registered entries in first-registration order.
func (s *ImportSet) Entries() []Entry {
	out := make([]Entry, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.entries[k])
	}
	return out
}

// Len reports how many distinct items are registered.
func (s *ImportSet) Len() int { return len(s.order) }

// Language is the per-target-language adapter contract (spec.md §4.G).
type Language interface {
	// QuoteString renders a sequence of literal/interpolated parts as a
	// target-language string literal, escaping and, where the language
	// supports it, embedding interpolation syntax directly.
	QuoteString(parts []StringPart) (string, error)
	// RegisterItem normalizes and deduplicates an import-like value into
	// set. Called once per occurrence; idempotent via ImportSet.Add.
	RegisterItem(v Value, set *ImportSet)
	// RenderItem produces the occurrence form of v (e.g. "HashMap" for a
	// std::collections::HashMap import, honoring alias/prefix policy
	// already decided when it was registered).
	RenderItem(v Value, set *ImportSet) (string, error)
	// EmitImports writes the grouped imports block that the formatter
	// places before the rendered body.
	EmitImports(set *ImportSet, w io.Writer, cfg Config) error
	// DefaultConfig supplies this language's default indent unit and
	// line ending.
	DefaultConfig() Config
}

// FormatError is returned by an adapter when a value cannot be quoted or
// rendered (spec.md §7, error kind 2): an unrepresentable character, or
// an adapter-specific rejection.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string { return "format error: " + e.Reason }

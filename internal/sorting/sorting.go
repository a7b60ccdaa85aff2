// Package sorting implements the comparator-driven ordering engine behind
// the results table and the teacher roster. Sorts are stable and never
// mutate the caller's slice; the same record set may back several views.
package sorting

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is the sort direction of a view.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Valid reports whether the direction is asc or desc.
func (d Direction) Valid() bool {
	return d == Ascending || d == Descending
}

// Invert flips the direction.
func (d Direction) Invert() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// State is the active sort field and direction of a view. It is reset to
// the view's default on mount and never persisted.
type State struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// NewState returns the default state for a view: the given field, ascending.
func NewState(field string) State {
	return State{Field: field, Direction: Ascending}
}

// Toggle applies a header click: selecting the active field flips the
// direction, selecting a new field resets the direction to ascending.
func (s State) Toggle(field string) State {
	if field == s.Field {
		return State{Field: field, Direction: s.Direction.Invert()}
	}
	return NewState(field)
}

// Key is a single record's comparable value for the selected field,
// either textual or numeric.
type Key struct {
	text    string
	number  float64
	numeric bool
}

// Text builds a textual key, compared with locale-aware collation.
func Text(s string) Key {
	return Key{text: s}
}

// Number builds a numeric key, compared by value.
func Number(f float64) Key {
	return Key{number: f, numeric: true}
}

// By returns a new slice with records ordered by the key in the given
// direction. The sort is stable: records with equal keys keep their
// relative input order. The input slice is left untouched.
func By[T any](records []T, dir Direction, key func(T) Key) []T {
	out := slices.Clone(records)
	coll := collate.New(language.English)
	slices.SortStableFunc(out, func(a, b T) int {
		ka, kb := key(a), key(b)
		var c int
		if ka.numeric && kb.numeric {
			c = cmp.Compare(ka.number, kb.number)
		} else {
			c = coll.CompareString(ka.text, kb.text)
		}
		if dir == Descending {
			c = -c
		}
		return c
	})
	return out
}

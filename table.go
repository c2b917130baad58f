// Package walker implements O(1) weighted random index sampling using
// Walker's Alias Method.
//
// A [Table] is built once from a list of index weights, in time linear in
// the number of categories, and then produces weighted random indices in
// constant time per draw. The table is immutable after construction and safe
// to share across any number of concurrently sampling goroutines.
package walker

import (
	"fmt"
	"math/rand/v2"

	"github.com/go-json-experiment/json"
)

// Source is the randomness a [Table] consumes. *rand.Rand from math/rand/v2
// satisfies it.
type Source interface {
	// IntN returns a uniform random int in [0, n). It panics if n <= 0.
	IntN(n int) int
	// Float64 returns a uniform random float64 in [0, 1).
	Float64() float64
}

var _ Source = (*rand.Rand)(nil)

// Table is a precomputed alias table over a fixed categorical distribution.
//
// Each slot i holds an alias index and an acceptance probability. A draw
// picks a slot uniformly, then flips a biased coin to either keep the slot's
// own index or redirect to its alias. The more weight a category has, the
// more slots alias to it.
//
// Build one with [Builder.Build]. The zero Table is empty and cannot be
// sampled.
type Table struct {
	// aliases is the redirect index for each slot.
	aliases []int
	// probs is the probability of redirecting each slot to its alias.
	probs []float64
}

// Len returns the number of categories the table samples over.
func (t *Table) Len() int {
	return len(t.aliases)
}

// Next returns a weighted random index in [0, t.Len()) using the shared
// math/rand/v2 generator. It panics if the table is empty.
//
// For bulk sampling, [Table.NextWith] with a dedicated source avoids
// contention on the shared generator.
func (t *Table) Next() int {
	i := rand.IntN(len(t.probs))
	if rand.Float64() < t.probs[i] {
		return t.aliases[i]
	}
	return i
}

// NextWith returns a weighted random index in [0, t.Len()) using src.
// It panics if the table is empty.
//
// Concurrent calls are safe as long as each goroutine uses its own src.
func (t *Table) NextWith(src Source) int {
	i := src.IntN(len(t.probs))
	if src.Float64() < t.probs[i] {
		return t.aliases[i]
	}
	return i
}

// tableJSON is the serialized form of a [Table].
type tableJSON struct {
	Aliases []int     `json:"aliases"`
	Probs   []float64 `json:"probs"`
}

// MarshalJSON encodes the table's alias and probability arrays.
func (t *Table) MarshalJSON() ([]byte, error) {
	v := tableJSON{Aliases: t.aliases, Probs: t.probs}
	return json.Marshal(&v)
}

// UnmarshalJSON decodes a table previously encoded by [Table.MarshalJSON],
// validating that the arrays are parallel, every alias is a valid index, and
// every probability is in [0, 1].
func (t *Table) UnmarshalJSON(b []byte) error {
	var v tableJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("couldn't decode table: %w", err)
	}
	if len(v.Aliases) != len(v.Probs) {
		return fmt.Errorf("mismatched table arrays: %d aliases, %d probs", len(v.Aliases), len(v.Probs))
	}
	for i, a := range v.Aliases {
		if a < 0 || a >= len(v.Aliases) {
			return fmt.Errorf("alias %d at slot %d out of range", a, i)
		}
		// The negated form also rejects NaN.
		if p := v.Probs[i]; !(p >= 0 && p <= 1) {
			return fmt.Errorf("probability %v at slot %d out of range", p, i)
		}
	}
	t.aliases, t.probs = v.Aliases, v.Probs
	return nil
}

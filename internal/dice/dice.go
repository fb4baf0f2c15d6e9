// Package dice holds the five-die set a turn plays with.
package dice

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

const (
	// Count is the number of dice in a set.
	Count = 5
	// Faces is the number of sides per die.
	Faces = 6
)

// Source is the randomness provider for dice rolls.
// Implementations must be safe for use from a single session goroutine;
// the default source is safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

type mathSource struct{}

func (mathSource) Intn(n int) int { return rand.IntN(n) }

// DefaultSource draws from math/rand/v2's global generator.
func DefaultSource() Source { return mathSource{} }

// Set is the ordered sequence of five dice owned by one turn.
// It is created fresh at the start of every turn and never shared.
type Set struct {
	values [Count]int
	src    Source
}

// New creates a set and rolls all five dice. A nil src falls back to
// DefaultSource.
func New(src Source) *Set {
	if src == nil {
		src = DefaultSource()
	}
	s := &Set{src: src}
	s.RollAll()
	return s
}

// RollAll re-draws every die.
func (s *Set) RollAll() {
	for i := range s.values {
		s.values[i] = s.src.Intn(Faces) + 1
	}
}

// Reroll re-draws the dice at the given 1-based positions.
// Out-of-range indices are ignored; an empty slice rerolls nothing.
func (s *Set) Reroll(indices []int) {
	for _, i := range indices {
		if i < 1 || i > Count {
			continue
		}
		s.values[i-1] = s.src.Intn(Faces) + 1
	}
}

// Values returns a copy of the current die values.
func (s *Set) Values() []int {
	out := make([]int, Count)
	copy(out, s.values[:])
	return out
}

// String renders the set the way the wire protocol expects: "[1, 2, 3, 4, 5]".
func (s *Set) String() string {
	parts := make([]string, Count)
	for i, v := range s.values {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

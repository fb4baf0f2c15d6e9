package domain

import "errors"

var ErrUnknownCategory = errors.New("unknown category")

// Category is one of the 13 scoring slots of a sheet. The labels are part of
// the wire protocol and must match what the prompts advertise.
type Category int

const (
	Ones Category = iota
	Twos
	Threes
	Fours
	Fives
	Sixes
	Brelan
	Carre
	Full
	PetiteSuite
	GrandeSuite
	Yahtzee
	Chance
)

// BonusLabel is the derived upper-section bonus row. It is rendered on the
// sheet but never selectable, so it is not a Category.
const BonusLabel = "Bonus Section Supérieure"

var labels = [...]string{
	Ones:        "1",
	Twos:        "2",
	Threes:      "3",
	Fours:       "4",
	Fives:       "5",
	Sixes:       "6",
	Brelan:      "Brelan",
	Carre:       "Carré",
	Full:        "Full",
	PetiteSuite: "Petite Suite",
	GrandeSuite: "Grande Suite",
	Yahtzee:     "Yahtzee",
	Chance:      "Chance",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(labels) {
		return "?"
	}
	return labels[c]
}

// Categories returns all 13 categories in sheet order.
func Categories() []Category {
	out := make([]Category, len(labels))
	for i := range labels {
		out[i] = Category(i)
	}
	return out
}

// ParseCategory matches a label exactly as offered by the prompts.
// No case normalization happens here.
func ParseCategory(label string) (Category, error) {
	for i, l := range labels {
		if l == label {
			return Category(i), nil
		}
	}
	return 0, ErrUnknownCategory
}

// Upper reports whether c belongs to the upper section (faces 1 through 6).
func (c Category) Upper() bool {
	return c >= Ones && c <= Sixes
}

// Face returns the die face an upper-section category counts, 0 otherwise.
func (c Category) Face() int {
	if !c.Upper() {
		return 0
	}
	return int(c) + 1
}

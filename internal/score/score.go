// Package score implements the scoring rules and the per-player sheet.
package score

import "github.com/ybellec/yahtzee-server/internal/domain"

const (
	fullScore        = 25
	petiteSuiteScore = 30
	grandeSuiteScore = 40
	yahtzeeScore     = 50
)

// Compute returns the score the given dice are worth in the given category.
// Pure and deterministic; the numeric rules are contractual.
func Compute(cat domain.Category, dice []int) int {
	switch cat {
	case domain.Ones, domain.Twos, domain.Threes, domain.Fours, domain.Fives, domain.Sixes:
		return sumOfFace(dice, cat.Face())
	case domain.Brelan:
		return sumIfOfAKind(dice, 3)
	case domain.Carre:
		return sumIfOfAKind(dice, 4)
	case domain.Full:
		return full(dice)
	case domain.PetiteSuite:
		return petiteSuite(dice)
	case domain.GrandeSuite:
		return grandeSuite(dice)
	case domain.Yahtzee:
		return yahtzee(dice)
	case domain.Chance:
		return sum(dice)
	}
	return 0
}

func sum(dice []int) int {
	total := 0
	for _, v := range dice {
		total += v
	}
	return total
}

func sumOfFace(dice []int, face int) int {
	total := 0
	for _, v := range dice {
		if v == face {
			total += v
		}
	}
	return total
}

func counts(dice []int) map[int]int {
	c := make(map[int]int, len(dice))
	for _, v := range dice {
		c[v]++
	}
	return c
}

func sumIfOfAKind(dice []int, n int) int {
	for _, c := range counts(dice) {
		if c >= n {
			return sum(dice)
		}
	}
	return 0
}

// full pays 25 only when exactly two distinct values are present and one of
// them appears exactly three times. Five of a kind is not a full house.
func full(dice []int) int {
	c := counts(dice)
	if len(c) != 2 {
		return 0
	}
	for _, n := range c {
		if n == 3 {
			return fullScore
		}
	}
	return 0
}

var petiteSuites = [][]int{{1, 2, 3, 4}, {2, 3, 4, 5}, {3, 4, 5, 6}}

func petiteSuite(dice []int) int {
	c := counts(dice)
	for _, suite := range petiteSuites {
		ok := true
		for _, v := range suite {
			if c[v] == 0 {
				ok = false
				break
			}
		}
		if ok {
			return petiteSuiteScore
		}
	}
	return 0
}

var grandeSuites = [][]int{{1, 2, 3, 4, 5}, {2, 3, 4, 5, 6}}

func grandeSuite(dice []int) int {
	c := counts(dice)
	for _, suite := range grandeSuites {
		if len(c) != len(suite) {
			continue
		}
		ok := true
		for _, v := range suite {
			if c[v] == 0 {
				ok = false
				break
			}
		}
		if ok {
			return grandeSuiteScore
		}
	}
	return 0
}

func yahtzee(dice []int) int {
	if len(counts(dice)) == 1 {
		return yahtzeeScore
	}
	return 0
}

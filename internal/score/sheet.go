package score

import (
	"strconv"

	"github.com/ybellec/yahtzee-server/internal/domain"
)

const (
	upperBonus          = 35
	upperBonusThreshold = 63
)

// Sheet is one player's scoring record. Each category is write-once; the
// upper-section bonus is granted at most once. Not safe for concurrent use:
// the owning session serializes access.
type Sheet struct {
	scores map[domain.Category]int
	filled map[domain.Category]bool
	bonus  int
}

func NewSheet() *Sheet {
	return &Sheet{
		scores: make(map[domain.Category]int, 13),
		filled: make(map[domain.Category]bool, 13),
	}
}

// Preview computes the theoretical score without touching the sheet.
// Callable even for already-filled categories.
func (s *Sheet) Preview(cat domain.Category, dice []int) int {
	return Compute(cat, dice)
}

// Commit sets the score for cat if it is still unset and returns true.
// A filled category is never overwritten; the call reports false and
// changes nothing. After a successful upper-section commit the bonus rule
// is re-evaluated.
func (s *Sheet) Commit(cat domain.Category, score int) bool {
	if s.filled[cat] {
		return false
	}
	s.scores[cat] = score
	s.filled[cat] = true
	if cat.Upper() {
		s.checkUpperBonus()
	}
	return true
}

func (s *Sheet) checkUpperBonus() {
	if s.bonus != 0 {
		return
	}
	total := 0
	for _, cat := range domain.Categories() {
		if cat.Upper() && s.filled[cat] {
			total += s.scores[cat]
		}
	}
	if total >= upperBonusThreshold {
		s.bonus = upperBonus
	}
}

// Filled reports whether cat has been committed.
func (s *Sheet) Filled(cat domain.Category) bool { return s.filled[cat] }

// Bonus returns the upper-section bonus value (0 or 35).
func (s *Sheet) Bonus() int { return s.bonus }

// Total sums every set entry plus the bonus.
func (s *Sheet) Total() int {
	total := s.bonus
	for cat, v := range s.scores {
		if s.filled[cat] {
			total += v
		}
	}
	return total
}

// Unfilled returns the still-selectable categories in sheet order.
func (s *Sheet) Unfilled() []domain.Category {
	var out []domain.Category
	for _, cat := range domain.Categories() {
		if !s.filled[cat] {
			out = append(out, cat)
		}
	}
	return out
}

// Render draws the three-column sheet: realized score, then the theoretical
// score the supplied dice would yield. The bonus row is never selectable,
// its theoretical column reads N/A.
func (s *Sheet) Render(dice []int) string {
	rows := make([][]string, 0, 14)
	for _, cat := range domain.Categories() {
		realized := "Non réalisée"
		if s.filled[cat] {
			realized = strconv.Itoa(s.scores[cat])
		}
		rows = append(rows, []string{
			cat.String(),
			realized,
			strconv.Itoa(s.Preview(cat, dice)),
		})
	}
	rows = append(rows, []string{domain.BonusLabel, strconv.Itoa(s.bonus), "N/A"})

	t := Table{
		Headers: []string{"Figure", "Score réalisé", "Score théorique"},
		Rows:    rows,
	}
	return t.Render()
}

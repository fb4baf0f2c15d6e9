package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ybellec/yahtzee-server/internal/domain"
)

func TestCommitIsWriteOnce(t *testing.T) {
	s := NewSheet()

	require.True(t, s.Commit(domain.Full, 25))
	assert.Equal(t, 25, s.Total())

	assert.False(t, s.Commit(domain.Full, 0))
	assert.Equal(t, 25, s.Total(), "rejected commit must not change the stored value")
	assert.True(t, s.Filled(domain.Full))
}

func TestUpperBonusGrantedOnceAtThreshold(t *testing.T) {
	s := NewSheet()

	// 3+6+9+12+15 = 45, below the threshold
	require.True(t, s.Commit(domain.Ones, 3))
	require.True(t, s.Commit(domain.Twos, 6))
	require.True(t, s.Commit(domain.Threes, 9))
	require.True(t, s.Commit(domain.Fours, 12))
	require.True(t, s.Commit(domain.Fives, 15))
	assert.Equal(t, 0, s.Bonus())

	// reaching exactly 63 grants 35
	require.True(t, s.Commit(domain.Sixes, 18))
	assert.Equal(t, 35, s.Bonus())
	assert.Equal(t, 63+35, s.Total())

	// further commits never re-grant or change it
	require.True(t, s.Commit(domain.Chance, 20))
	assert.Equal(t, 35, s.Bonus())
	assert.Equal(t, 63+35+20, s.Total())
}

func TestNoBonusBelowThreshold(t *testing.T) {
	s := NewSheet()
	require.True(t, s.Commit(domain.Ones, 1))
	require.True(t, s.Commit(domain.Twos, 2))
	require.True(t, s.Commit(domain.Threes, 3))
	require.True(t, s.Commit(domain.Fours, 4))
	require.True(t, s.Commit(domain.Fives, 5))
	require.True(t, s.Commit(domain.Sixes, 6))
	assert.Equal(t, 0, s.Bonus())
	assert.Equal(t, 21, s.Total())
}

func TestTotalTracksEveryCommit(t *testing.T) {
	s := NewSheet()
	dice := []int{3, 3, 3, 5, 5}

	want := 0
	for _, cat := range domain.Categories() {
		sc := s.Preview(cat, dice)
		require.True(t, s.Commit(cat, sc))
		want += sc
		assert.Equal(t, want+s.Bonus(), s.Total())
	}
}

func TestUnfilledShrinksInOrder(t *testing.T) {
	s := NewSheet()
	assert.Len(t, s.Unfilled(), 13)

	require.True(t, s.Commit(domain.Ones, 2))
	require.True(t, s.Commit(domain.Yahtzee, 0))

	left := s.Unfilled()
	assert.Len(t, left, 11)
	assert.NotContains(t, left, domain.Ones)
	assert.NotContains(t, left, domain.Yahtzee)
	assert.Equal(t, domain.Twos, left[0])
}

func TestRenderShowsSentinelAndBonusRow(t *testing.T) {
	s := NewSheet()
	require.True(t, s.Commit(domain.Full, 25))

	out := s.Render([]int{3, 3, 3, 5, 5})
	assert.Contains(t, out, "Figure")
	assert.Contains(t, out, "Score réalisé")
	assert.Contains(t, out, "Score théorique")
	assert.Contains(t, out, "Non réalisée")
	assert.Contains(t, out, domain.BonusLabel)
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "| Full")
}

func TestTableRender(t *testing.T) {
	tb := Table{
		Headers: []string{"A", "Bee"},
		Rows:    [][]string{{"one", "2"}, {"x", "yy"}},
	}
	out := tb.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "+-----+-----+", lines[0])
	assert.Equal(t, "| A   | Bee |", lines[1])
	assert.Equal(t, "| one | 2   |", lines[3])
}

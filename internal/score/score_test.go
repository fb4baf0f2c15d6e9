package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ybellec/yahtzee-server/internal/domain"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name string
		cat  domain.Category
		dice []int
		want int
	}{
		{"ones counts only ones", domain.Ones, []int{1, 1, 2, 3, 4}, 2},
		{"chance sums everything", domain.Chance, []int{1, 1, 2, 3, 4}, 11},
		{"no brelan on pairs", domain.Brelan, []int{1, 1, 2, 3, 4}, 0},
		{"sixes", domain.Sixes, []int{6, 6, 6, 2, 2}, 18},
		{"fives", domain.Fives, []int{5, 5, 5, 5, 5}, 25},
		{"twos with none", domain.Twos, []int{1, 3, 4, 5, 6}, 0},

		{"brelan sums all five dice", domain.Brelan, []int{6, 6, 6, 2, 2}, 22},
		{"brelan on four of a kind", domain.Brelan, []int{6, 6, 6, 6, 2}, 26},
		{"carre needs four", domain.Carre, []int{6, 6, 6, 2, 2}, 0},
		{"carre sums all five dice", domain.Carre, []int{6, 6, 6, 6, 2}, 26},
		{"carre on five of a kind", domain.Carre, []int{5, 5, 5, 5, 5}, 25},

		{"full house", domain.Full, []int{6, 6, 6, 2, 2}, 25},
		{"four plus one is not full", domain.Full, []int{6, 6, 6, 6, 2}, 0},
		{"five of a kind is not full", domain.Full, []int{5, 5, 5, 5, 5}, 0},

		{"petite suite on 1-4 subset", domain.PetiteSuite, []int{1, 2, 3, 4, 6}, 30},
		{"petite suite on 3-6", domain.PetiteSuite, []int{3, 4, 5, 6, 6}, 30},
		{"no petite suite", domain.PetiteSuite, []int{1, 2, 3, 5, 6}, 0},
		{"grande suite 1-5", domain.GrandeSuite, []int{1, 2, 3, 4, 5}, 40},
		{"grande suite 2-6", domain.GrandeSuite, []int{6, 5, 4, 3, 2}, 40},
		{"petite is not grande", domain.GrandeSuite, []int{1, 2, 3, 4, 6}, 0},

		{"yahtzee", domain.Yahtzee, []int{5, 5, 5, 5, 5}, 50},
		{"no yahtzee", domain.Yahtzee, []int{5, 5, 5, 5, 4}, 0},
		{"chance", domain.Chance, []int{6, 6, 6, 6, 2}, 26},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.cat, tt.dice))
		})
	}
}

func TestComputeIsPure(t *testing.T) {
	dice := []int{3, 3, 3, 5, 5}
	first := Compute(domain.Full, dice)
	for range 10 {
		assert.Equal(t, first, Compute(domain.Full, dice))
	}
	assert.Equal(t, []int{3, 3, 3, 5, 5}, dice)
}

func TestParseCategoryLabels(t *testing.T) {
	for _, cat := range domain.Categories() {
		parsed, err := domain.ParseCategory(cat.String())
		assert.NoError(t, err)
		assert.Equal(t, cat, parsed)
	}
	_, err := domain.ParseCategory("brelan")
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
	_, err = domain.ParseCategory(domain.BonusLabel)
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

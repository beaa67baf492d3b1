package card_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unoduel/server/card"
	"github.com/unoduel/server/card/color"
	"github.com/unoduel/server/consts"
)

func TestCatalogComposition(t *testing.T) {
	colorCounts := map[color.Color]int{}
	valueCounts := map[card.Value]int{}
	for _, id := range card.FreshDeckIDs() {
		c, err := card.ByID(id)
		require.NoError(t, err)
		require.Equal(t, id, c.ID)
		colorCounts[c.Color]++
		valueCounts[c.Value]++
	}

	for _, c := range color.All {
		assert.Equal(t, 25, colorCounts[c])
	}
	assert.Equal(t, 8, colorCounts[color.Wild])

	assert.Equal(t, 4, valueCounts["0"])
	for n := '1'; n <= '9'; n++ {
		assert.Equal(t, 8, valueCounts[card.Value(n)], "value %c", n)
	}
	assert.Equal(t, 8, valueCounts[card.Skip])
	assert.Equal(t, 8, valueCounts[card.Reverse])
	assert.Equal(t, 8, valueCounts[card.DrawTwo])
	assert.Equal(t, 4, valueCounts[card.WildFace])
	assert.Equal(t, 4, valueCounts[card.WildFour])
}

func TestByIDOutOfRange(t *testing.T) {
	for _, id := range []int{-1, card.DeckSize, 9999} {
		_, err := card.ByID(id)
		require.ErrorIs(t, err, consts.ErrOutOfRange)
	}
}

func TestPoints(t *testing.T) {
	scenarios := []struct {
		description string
		card        card.Card
		expected    int
	}{
		{"wild_is_fifty", findCard(t, color.Wild, card.WildFace), 50},
		{"wild_four_is_fifty", findCard(t, color.Wild, card.WildFour), 50},
		{"skip_is_twenty", findCard(t, color.Red, card.Skip), 20},
		{"reverse_is_twenty", findCard(t, color.Blue, card.Reverse), 20},
		{"draw_two_is_twenty", findCard(t, color.Green, card.DrawTwo), 20},
		{"numeral_is_face_value", findCard(t, color.Yellow, "7"), 7},
		{"zero_is_zero", findCard(t, color.Red, "0"), 0},
	}
	for _, scenario := range scenarios {
		t.Run(scenario.description, func(t *testing.T) {
			assert.Equal(t, scenario.expected, scenario.card.Points())
		})
	}
}

func findCard(t *testing.T, c color.Color, v card.Value) card.Card {
	t.Helper()
	for _, id := range card.FreshDeckIDs() {
		cc := card.MustByID(id)
		if cc.Color == c && cc.Value == v {
			return cc
		}
	}
	t.Fatalf("card %s %s not in catalog", c, v)
	return card.Card{}
}

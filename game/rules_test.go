package game_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/unoduel/server/card"
	"github.com/unoduel/server/card/color"
	"github.com/unoduel/server/game"
)

func cardOf(t *testing.T, c color.Color, v card.Value) card.Card {
	t.Helper()
	for _, id := range card.FreshDeckIDs() {
		cc := card.MustByID(id)
		if cc.Color == c && cc.Value == v {
			return cc
		}
	}
	t.Fatalf("no %s %s in catalog", c, v)
	return card.Card{}
}

func TestLegal(t *testing.T) {
	scenarios := []struct {
		description string
		candidate   card.Card
		top         card.Card
		active      color.Color
		pendingDraw int
		expected    bool
	}{
		{
			description: "wild_card_is_always_playable",
			candidate:   cardOf(t, color.Wild, card.WildFace),
			top:         cardOf(t, color.Blue, "7"),
			active:      color.Blue,
			expected:    true,
		},
		{
			description: "wild_draw_four_is_always_playable",
			candidate:   cardOf(t, color.Wild, card.WildFour),
			top:         cardOf(t, color.Blue, "7"),
			active:      color.Blue,
			expected:    true,
		},
		{
			description: "same_color_number",
			candidate:   cardOf(t, color.Blue, "5"),
			top:         cardOf(t, color.Blue, "7"),
			active:      color.Blue,
			expected:    true,
		},
		{
			description: "same_value_different_color",
			candidate:   cardOf(t, color.Red, "7"),
			top:         cardOf(t, color.Blue, "7"),
			active:      color.Blue,
			expected:    true,
		},
		{
			description: "different_color_and_value",
			candidate:   cardOf(t, color.Red, "5"),
			top:         cardOf(t, color.Blue, "7"),
			active:      color.Blue,
			expected:    false,
		},
		{
			description: "active_color_overrides_top_color_after_wild",
			candidate:   cardOf(t, color.Green, "3"),
			top:         cardOf(t, color.Wild, card.WildFace),
			active:      color.Green,
			expected:    true,
		},
		{
			description: "wrong_color_after_wild_choice",
			candidate:   cardOf(t, color.Red, "3"),
			top:         cardOf(t, color.Wild, card.WildFace),
			active:      color.Green,
			expected:    false,
		},
		{
			description: "action_card_matching_active_color",
			candidate:   cardOf(t, color.Blue, card.Reverse),
			top:         cardOf(t, color.Blue, "7"),
			active:      color.Blue,
			expected:    true,
		},
		{
			description: "skip_on_skip_of_other_color",
			candidate:   cardOf(t, color.Red, card.Skip),
			top:         cardOf(t, color.Blue, card.Skip),
			active:      color.Blue,
			expected:    true,
		},
		{
			description: "draw_two_stacks_on_pending_draw_two",
			candidate:   cardOf(t, color.Red, card.DrawTwo),
			top:         cardOf(t, color.Blue, card.DrawTwo),
			active:      color.Blue,
			pendingDraw: 2,
			expected:    true,
		},
		{
			description: "wild_four_stacks_on_pending_draw_two",
			candidate:   cardOf(t, color.Wild, card.WildFour),
			top:         cardOf(t, color.Blue, card.DrawTwo),
			active:      color.Blue,
			pendingDraw: 2,
			expected:    true,
		},
		{
			description: "wild_four_stacks_on_pending_wild_four",
			candidate:   cardOf(t, color.Wild, card.WildFour),
			top:         cardOf(t, color.Wild, card.WildFour),
			active:      color.Green,
			pendingDraw: 4,
			expected:    true,
		},
		{
			description: "draw_two_cannot_answer_pending_wild_four",
			candidate:   cardOf(t, color.Green, card.DrawTwo),
			top:         cardOf(t, color.Wild, card.WildFour),
			active:      color.Green,
			pendingDraw: 4,
			expected:    false,
		},
		{
			description: "matching_numeral_illegal_under_pending_draw",
			candidate:   cardOf(t, color.Blue, "7"),
			top:         cardOf(t, color.Blue, card.DrawTwo),
			active:      color.Blue,
			pendingDraw: 2,
			expected:    false,
		},
		{
			description: "plain_wild_illegal_under_pending_draw",
			candidate:   cardOf(t, color.Wild, card.WildFace),
			top:         cardOf(t, color.Blue, card.DrawTwo),
			active:      color.Blue,
			pendingDraw: 2,
			expected:    false,
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.description, func(t *testing.T) {
			result := game.Legal(scenario.candidate, scenario.top, scenario.active, scenario.pendingDraw)
			require.Equal(t, scenario.expected, result)
		})
	}
}

// Every (candidate, top, active, pending) combination must agree with
// the rule stated over card properties. The input space is small
// enough to sweep outright.
func TestLegalExhaustive(t *testing.T) {
	pendings := []int{0, 2, 4}
	for _, candID := range card.FreshDeckIDs() {
		cand := card.MustByID(candID)
		for _, topID := range card.FreshDeckIDs() {
			top := card.MustByID(topID)
			for _, active := range color.All {
				for _, pending := range pendings {
					expected := false
					if pending > 0 {
						switch {
						case cand.Value == card.WildFour:
							expected = top.Value == card.DrawTwo || top.Value == card.WildFour
						case cand.Value == card.DrawTwo:
							expected = top.Value == card.DrawTwo
						}
					} else {
						expected = cand.IsWild() || cand.Color == active || cand.Value == top.Value
					}
					got := game.Legal(cand, top, active, pending)
					if got != expected {
						t.Fatalf("Legal(%s, %s, %s, %d) = %v, want %v",
							cand.Label(), top.Label(), active, pending, got, expected)
					}
				}
			}
		}
	}
}

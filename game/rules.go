package game

import (
	"github.com/unoduel/server/card"
	"github.com/unoduel/server/card/color"
)

// Legal reports whether candidate may be played on top with the given
// active color and outstanding forced-draw amount.
//
// While a draw obligation is pending only a stacking card is legal: a
// draw2 answers a pending draw2, a wild4 answers a pending draw2 or
// wild4. Otherwise a card is legal if it is wild, matches the active
// color, or matches the top card's value.
func Legal(candidate, top card.Card, active color.Color, pendingDraw int) bool {
	if pendingDraw > 0 {
		switch candidate.Value {
		case card.WildFour:
			return top.Value == card.DrawTwo || top.Value == card.WildFour
		case card.DrawTwo:
			return top.Value == card.DrawTwo
		}
		return false
	}
	if candidate.IsWild() {
		return true
	}
	return candidate.Color == active || candidate.Value == top.Value
}

// LegalIDs filters a hand down to the card ids playable right now.
func (g *Game) LegalIDs(hand Hand) []int {
	top := card.MustByID(g.DiscardTop)
	var ids []int
	for _, id := range hand {
		if Legal(card.MustByID(id), top, g.ActiveColor, g.PendingDraw) {
			ids = append(ids, id)
		}
	}
	return ids
}

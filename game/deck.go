package game

import (
	"math/rand"

	"github.com/unoduel/server/card"
)

// ShuffleIDs permutes ids in place with Fisher-Yates, so every
// permutation is equally likely given a uniform source.
func ShuffleIDs(rng *rand.Rand, ids []int) {
	for i := len(ids) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}

// drawFromDeck pulls up to amount ids off the draw pile, rebuilding
// the pile from the spent discard history when it runs dry. inPlay
// lists ids that are momentarily outside both the deck and any hand
// (a card mid-play) and must not be regathered.
//
// When even a reshuffle cannot cover the request the draw yields
// fewer ids than asked; it never fails.
func drawFromDeck(rng *rand.Rand, g *Game, hands *Hands, amount int, inPlay ...int) []int {
	drawn := make([]int, 0, amount)
	for i := 0; i < amount; i++ {
		if len(g.DeckIDs) == 0 {
			reshuffleDiscards(rng, g, hands, append(drawn, inPlay...))
		}
		if len(g.DeckIDs) == 0 {
			break
		}
		drawn = append(drawn, g.DeckIDs[0])
		g.DeckIDs = g.DeckIDs[1:]
	}
	return drawn
}

// reshuffleDiscards rebuilds the draw pile from every card that is in
// the discard history: the catalog minus both hands, the current
// discard top, and anything in flight. The top card stays down as the
// sole discard.
func reshuffleDiscards(rng *rand.Rand, g *Game, hands *Hands, inPlay []int) {
	used := make(map[int]bool, card.DeckSize)
	used[g.DiscardTop] = true
	for _, hand := range hands {
		for _, id := range hand {
			used[id] = true
		}
	}
	for _, id := range inPlay {
		used[id] = true
	}
	pile := make([]int, 0, card.DeckSize)
	for id := 0; id < card.DeckSize; id++ {
		if !used[id] {
			pile = append(pile, id)
		}
	}
	ShuffleIDs(rng, pile)
	g.DeckIDs = pile
}

// startingDiscard removes the first non-wild, non-action card from the
// deck to open the discard pile, then reshuffles the remainder so the
// skipped-over cards keep a uniform position.
func startingDiscard(rng *rand.Rand, deck []int) (int, []int) {
	for i, id := range deck {
		c := card.MustByID(id)
		if !c.IsWild() && !c.IsAction() {
			rest := append(deck[:i:i], deck[i+1:]...)
			ShuffleIDs(rng, rest)
			return id, rest
		}
	}
	// Unreachable with a full deck; the catalog holds 76 number cards.
	return deck[0], deck[1:]
}

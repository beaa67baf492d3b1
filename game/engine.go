package game

import (
	"math/rand"
	"time"

	"github.com/unoduel/server/card"
	"github.com/unoduel/server/card/color"
	"github.com/unoduel/server/consts"
)

// New creates a game in the waiting state with the host seated, the
// starting hand dealt, and a valid opening discard on the pile. The
// second seat is filled by Join, for a bot or a human alike.
func New(rng *rand.Rand, id, hostID, hostName string, difficulty consts.Difficulty) (*Game, Hands) {
	deck := card.FreshDeckIDs()
	ShuffleIDs(rng, deck)

	hands := Hands{}
	hands[0] = Hand(deck[:consts.StartingHand]).Clone()
	deck = deck[consts.StartingHand:]

	top, deck := startingDiscard(rng, deck)

	now := time.Now().UnixMilli()
	g := &Game{
		ID:         id,
		Status:     consts.StatusWaiting,
		Difficulty: difficulty,
		Players: []Player{{
			Seat:      0,
			UserID:    hostID,
			Name:      hostName,
			Kind:      consts.KindHuman,
			HandSize:  consts.StartingHand,
			Connected: true,
		}},
		TurnIndex:   0,
		Direction:   1,
		DeckIDs:     deck,
		DiscardTop:  top,
		ActiveColor: card.MustByID(top).Color,
		WinnerSeat:  -1,
		CreatedAt:   now,
		LastMoveAt:  now,
	}
	return g, hands
}

// Join fills seat 1 and moves the game to playing.
func Join(g *Game, hands *Hands, userID, name string, kind consts.PlayerKind) error {
	if g.Status != consts.StatusWaiting {
		return consts.ErrGameNotJoinable
	}
	if len(g.Players) >= consts.MaxPlayers {
		return consts.ErrGameFull
	}
	if g.Players[0].UserID == userID {
		return consts.ErrJoinOwnGame
	}
	hands[1] = Hand(g.DeckIDs[:consts.StartingHand]).Clone()
	g.DeckIDs = g.DeckIDs[consts.StartingHand:]
	g.Players = append(g.Players, Player{
		Seat:      1,
		UserID:    userID,
		Name:      name,
		Kind:      kind,
		HandSize:  consts.StartingHand,
		Connected: true,
	})
	g.Status = consts.StatusPlaying
	return nil
}

// PlayResult reports what a committed PlayCard did beyond the state
// mutation itself.
type PlayResult struct {
	Penalty      bool
	PenaltyCards []int
	Won          bool
}

// PlayCard validates and applies one card play by the given identity.
// On any error no state has been mutated.
func PlayCard(rng *rand.Rand, g *Game, hands *Hands, userID string, cardID int, chosen color.Color) (PlayResult, error) {
	seat, err := actingSeat(g, userID)
	if err != nil {
		return PlayResult{}, err
	}
	c, err := card.ByID(cardID)
	if err != nil {
		return PlayResult{}, err
	}
	if !hands[seat].Contains(cardID) {
		return PlayResult{}, consts.ErrCardNotInHand
	}
	top := card.MustByID(g.DiscardTop)
	if !Legal(c, top, g.ActiveColor, g.PendingDraw) {
		return PlayResult{}, consts.ErrIllegalCard
	}
	if c.IsWild() {
		if !chosen.Matchable() {
			return PlayResult{}, consts.ErrMissingColorChoice
		}
	} else if chosen != color.None {
		return PlayResult{}, consts.ErrUnexpectedColorChoice
	}

	player := &g.Players[seat]
	hands[seat] = hands[seat].Remove(cardID)

	// Dropping to one card without a declaration draws the penalty
	// before the play is finalized. An exact finish (zero cards) is
	// never penalized.
	res := PlayResult{}
	if len(hands[seat]) == 1 && !player.DeclaredLastCard {
		res.Penalty = true
		res.PenaltyCards = drawFromDeck(rng, g, hands, consts.UnoPenaltyCards, cardID)
		hands[seat] = append(hands[seat], res.PenaltyCards...)
	}
	player.DeclaredLastCard = false

	g.DiscardTop = cardID
	if c.IsWild() {
		g.ActiveColor = chosen
	} else {
		g.ActiveColor = c.Color
	}

	extraTurn := false
	switch c.Value {
	case card.DrawTwo:
		g.PendingDraw += 2
	case card.WildFour:
		g.PendingDraw += 4
	case card.Skip:
		// Two seats: skipping the next player hands the turn back.
		extraTurn = true
	case card.Reverse:
		g.Direction = -g.Direction
		extraTurn = true
	}

	player.HandSize = len(hands[seat])
	now := time.Now().UnixMilli()
	if player.HandSize == 0 {
		g.Status = consts.StatusFinished
		g.WinnerSeat = seat
		g.FinishedAt = now
		res.Won = true
	} else if !extraTurn {
		g.advance()
	}
	g.MoveCount++
	g.LastMoveAt = now
	return res, nil
}

// DrawResult lists the ids added to the acting hand.
type DrawResult struct {
	Drawn []int
	// Forced is the pending-draw amount that was resolved, zero for a
	// voluntary single draw.
	Forced int
}

// DrawCards resolves the pending draw obligation, or draws one card
// when none is outstanding. The turn always passes afterwards.
func DrawCards(rng *rand.Rand, g *Game, hands *Hands, userID string) (DrawResult, error) {
	seat, err := actingSeat(g, userID)
	if err != nil {
		return DrawResult{}, err
	}
	res := DrawResult{Forced: g.PendingDraw}
	amount := g.PendingDraw
	if amount == 0 {
		amount = 1
	}
	res.Drawn = drawFromDeck(rng, g, hands, amount)
	hands[seat] = append(hands[seat], res.Drawn...)
	g.PendingDraw = 0

	player := &g.Players[seat]
	player.HandSize = len(hands[seat])
	// A stale declaration does not survive a growing hand.
	player.DeclaredLastCard = false

	g.advance()
	g.MoveCount++
	g.LastMoveAt = time.Now().UnixMilli()
	return res, nil
}

// DeclareLastCard records the acting player's one-card warning. Legal
// only while holding exactly two cards.
func DeclareLastCard(g *Game, hands *Hands, userID string) error {
	seat, err := actingSeat(g, userID)
	if err != nil {
		return err
	}
	if len(hands[seat]) != 2 {
		return consts.ErrInvalidDeclaration
	}
	g.Players[seat].DeclaredLastCard = true
	g.LastMoveAt = time.Now().UnixMilli()
	return nil
}

func actingSeat(g *Game, userID string) (int, error) {
	if g.Status != consts.StatusPlaying {
		return 0, consts.ErrGameNotPlaying
	}
	seat, ok := g.Seat(userID)
	if !ok {
		return 0, consts.ErrNotInGame
	}
	if seat != g.TurnIndex {
		return 0, consts.ErrNotYourTurn
	}
	return seat, nil
}

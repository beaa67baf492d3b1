package game

import (
	"github.com/unoduel/server/card/color"
	"github.com/unoduel/server/consts"
)

// Player is one of the two seats of a game. It carries only public
// facts; the seat's cards live in a Hand stored under a separate key.
type Player struct {
	Seat             int               `json:"seat"`
	UserID           string            `json:"userId"`
	Name             string            `json:"name"`
	Kind             consts.PlayerKind `json:"kind"`
	HandSize         int               `json:"handSize"`
	DeclaredLastCard bool              `json:"declared"`
	Connected        bool              `json:"connected"`
}

// Hand is the private set of card ids belonging to one seat. It is
// never embedded in the public Game record.
type Hand []int

// Hands holds both seats' hands for the duration of one engine
// operation. Both are written back together with the game record.
type Hands [consts.MaxPlayers]Hand

func (h Hand) Contains(id int) bool {
	for _, c := range h {
		if c == id {
			return true
		}
	}
	return false
}

// Remove deletes a single copy of id, preserving order.
func (h Hand) Remove(id int) Hand {
	for i, c := range h {
		if c == id {
			return append(h[:i:i], h[i+1:]...)
		}
	}
	return h
}

func (h Hand) Clone() Hand {
	out := make(Hand, len(h))
	copy(out, h)
	return out
}

// Game is the public, persisted record of one two-player match.
type Game struct {
	ID          string            `json:"id"`
	Status      consts.GameStatus `json:"status"`
	Difficulty  consts.Difficulty `json:"difficulty"`
	Players     []Player          `json:"players"`
	TurnIndex   int               `json:"turnIndex"`
	Direction   int               `json:"direction"`
	DeckIDs     []int             `json:"deckIds"`
	DiscardTop  int               `json:"discardTop"`
	ActiveColor color.Color       `json:"activeColor"`
	PendingDraw int               `json:"pendingDraw"`
	MoveCount   int               `json:"moveCount"`
	Version     int64             `json:"version"`
	CreatedAt   int64             `json:"createdAt"`
	LastMoveAt  int64             `json:"lastMoveAt"`
	FinishedAt  int64             `json:"finishedAt"`
	WinnerSeat  int               `json:"winnerSeat"`
}

// Seat resolves an external identity to its seat index.
func (g *Game) Seat(userID string) (int, bool) {
	for i := range g.Players {
		if g.Players[i].UserID == userID {
			return i, true
		}
	}
	return 0, false
}

// Current is the player whose turn it is.
func (g *Game) Current() *Player {
	return &g.Players[g.TurnIndex]
}

func (g *Game) Opponent(seat int) *Player {
	return &g.Players[(seat+1)%consts.MaxPlayers]
}

func (g *Game) advance() {
	g.TurnIndex = (g.TurnIndex + g.Direction + consts.MaxPlayers) % consts.MaxPlayers
}

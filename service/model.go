package service

import (
	"context"
	"time"

	"github.com/unoduel/server/card"
	"github.com/unoduel/server/consts"
	"github.com/unoduel/server/game"
)

// CardView is the wire form of a catalog card.
type CardView struct {
	ID    int    `json:"id"`
	Color string `json:"color"`
	Value string `json:"value"`
}

func cardView(id int) CardView {
	c := card.MustByID(id)
	return CardView{ID: c.ID, Color: c.Color.Name(), Value: string(c.Value)}
}

func cardViews(ids []int) []CardView {
	views := make([]CardView, len(ids))
	for i, id := range ids {
		views[i] = cardView(id)
	}
	return views
}

// PlayerView is the public face of a seat. Hand contents never appear
// here, only the cached size.
type PlayerView struct {
	Name      string            `json:"name"`
	Kind      consts.PlayerKind `json:"kind"`
	HandSize  int               `json:"handSize"`
	Declared  bool              `json:"declared"`
	Connected bool              `json:"connected"`
}

// GameView is the public game state shown to both seats and to room
// spectators.
type GameView struct {
	ID          string            `json:"id"`
	Status      consts.GameStatus `json:"status"`
	Difficulty  consts.Difficulty `json:"difficulty"`
	Players     []PlayerView      `json:"players"`
	TurnIndex   int               `json:"turnIndex"`
	DiscardTop  CardView          `json:"discardTop"`
	ActiveColor string            `json:"activeColor"`
	PendingDraw int               `json:"pendingDraw"`
	DeckSize    int               `json:"deckSize"`
	MoveCount   int               `json:"moveCount"`
	WinnerSeat  int               `json:"winnerSeat"`
}

func publicView(g *game.Game) GameView {
	players := make([]PlayerView, len(g.Players))
	for i, p := range g.Players {
		players[i] = PlayerView{
			Name:      p.Name,
			Kind:      p.Kind,
			HandSize:  p.HandSize,
			Declared:  p.DeclaredLastCard,
			Connected: p.Connected,
		}
	}
	return GameView{
		ID:          g.ID,
		Status:      g.Status,
		Difficulty:  g.Difficulty,
		Players:     players,
		TurnIndex:   g.TurnIndex,
		DiscardTop:  cardView(g.DiscardTop),
		ActiveColor: g.ActiveColor.Name(),
		PendingDraw: g.PendingDraw,
		DeckSize:    len(g.DeckIDs),
		MoveCount:   g.MoveCount,
		WinnerSeat:  g.WinnerSeat,
	}
}

// StateView is one seat's full picture: the public state plus that
// seat's own hand.
type StateView struct {
	Game     GameView   `json:"game"`
	Hand     []CardView `json:"hand"`
	Seat     int        `json:"seat"`
	YourTurn bool       `json:"yourTurn"`
}

// MoveView is returned from the mutating operations, after any bot
// follow-up has run.
type MoveView struct {
	Game           GameView   `json:"game"`
	Hand           []CardView `json:"hand"`
	Drawn          []CardView `json:"drawn,omitempty"`
	PenaltyApplied bool       `json:"penaltyApplied"`
	GameEnded      bool       `json:"gameEnded"`
	YouWon         bool       `json:"youWon"`
}

// Result is the terminal fact sheet handed to the reward collaborator.
// The engine grants nothing itself.
type Result struct {
	GameID       string
	Difficulty   consts.Difficulty
	WinnerSeat   int
	WinnerUserID string
	MoveCount    int
	Duration     time.Duration
	VsBot        bool
}

// RewardSink consumes finished-game results (economy collaborator).
type RewardSink interface {
	GameFinished(ctx context.Context, res Result)
}

// Notifier pushes the public state to room spectators after every
// committed move (the websocket hub in network).
type Notifier interface {
	PublishState(gameID string, view GameView)
}

package service

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/unoduel/server/bot"
	"github.com/unoduel/server/card"
	"github.com/unoduel/server/card/color"
	"github.com/unoduel/server/consts"
	"github.com/unoduel/server/database"
	"github.com/unoduel/server/game"
)

// botTurnLimit bounds the synchronous follow-up loop; skip chains can
// hand the bot several turns in a row but never this many.
const botTurnLimit = 32

// Service runs the read-modify-write cycle of every engine operation
// against the store and drives the bot opponent synchronously when
// the turn lands on it. It retries nothing: a ConcurrencyConflict is
// surfaced to the caller, who owns the reload.
type Service struct {
	store database.Store

	// Rewards and Notifier are optional collaborators.
	Rewards  RewardSink
	Notifier Notifier

	mu   sync.Mutex
	seed *rand.Rand
}

func New(store database.Store, seed int64) *Service {
	return &Service{
		store: store,
		seed:  rand.New(rand.NewSource(seed)),
	}
}

// opRng hands each operation its own random source, derived from the
// injected seed so tests stay reproducible.
func (s *Service) opRng() *rand.Rand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rand.New(rand.NewSource(s.seed.Int63()))
}

// CreateGame deals a fresh game for the host. With vsBot a bot fills
// seat 1 immediately and the game starts; otherwise it waits for a
// second human via JoinGame.
func (s *Service) CreateGame(ctx context.Context, userID, userName string, difficulty consts.Difficulty, vsBot bool) (*StateView, error) {
	if !difficulty.Valid() {
		return nil, consts.ErrDifficultyInvalid
	}
	rng := s.opRng()
	id := "g_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	g, hands := game.New(rng, id, userID, userName, difficulty)
	if vsBot {
		botID := "bot_" + string(difficulty) + "_" + id
		if err := game.Join(g, &hands, botID, bot.Name(rng, difficulty), consts.KindBot); err != nil {
			return nil, err
		}
	}
	if err := s.store.CreateGame(ctx, g, &hands); err != nil {
		return nil, err
	}
	if err := s.store.SetActiveGame(ctx, userID, g.ID); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"game":       g.ID,
		"difficulty": difficulty,
		"vsBot":      vsBot,
	}).Info("game created")
	return s.stateView(ctx, g, &hands, 0)
}

// JoinGame seats a second human in a waiting game and starts it.
func (s *Service) JoinGame(ctx context.Context, userID, userName, gameID string) (*StateView, error) {
	g, hands, err := s.load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if err := game.Join(g, hands, userID, userName, consts.KindHuman); err != nil {
		return nil, err
	}
	if err := s.store.SaveMove(ctx, g, hands); err != nil {
		return nil, err
	}
	if err := s.store.SetActiveGame(ctx, userID, g.ID); err != nil {
		return nil, err
	}
	logrus.WithField("game", g.ID).Info("second seat filled")
	s.publish(g)
	return s.stateView(ctx, g, hands, 1)
}

// PlayCard applies one card play for the caller, commits it, and then
// lets the bot answer if the turn fell to it.
func (s *Service) PlayCard(ctx context.Context, userID, gameID string, cardID int, chosen color.Color) (*MoveView, error) {
	g, hands, err := s.load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	seat, ok := g.Seat(userID)
	if !ok {
		return nil, consts.ErrNotInGame
	}
	rng := s.opRng()
	res, err := game.PlayCard(rng, g, hands, userID, cardID, chosen)
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, g, hands); err != nil {
		return nil, err
	}
	if err := s.botFollowUp(ctx, rng, g, hands); err != nil {
		return nil, err
	}
	view := &MoveView{
		Game:           publicView(g),
		Hand:           cardViews(hands[seat]),
		PenaltyApplied: res.Penalty,
		GameEnded:      g.Status == consts.StatusFinished,
		YouWon:         g.Status == consts.StatusFinished && g.WinnerSeat == seat,
	}
	return view, nil
}

// DrawCard resolves the caller's draw (forced or voluntary), commits,
// and runs the bot's answer.
func (s *Service) DrawCard(ctx context.Context, userID, gameID string) (*MoveView, error) {
	g, hands, err := s.load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	seat, ok := g.Seat(userID)
	if !ok {
		return nil, consts.ErrNotInGame
	}
	rng := s.opRng()
	res, err := game.DrawCards(rng, g, hands, userID)
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, g, hands); err != nil {
		return nil, err
	}
	if err := s.botFollowUp(ctx, rng, g, hands); err != nil {
		return nil, err
	}
	return &MoveView{
		Game:      publicView(g),
		Hand:      cardViews(hands[seat]),
		Drawn:     cardViews(res.Drawn),
		GameEnded: g.Status == consts.StatusFinished,
		YouWon:    g.Status == consts.StatusFinished && g.WinnerSeat == seat,
	}, nil
}

// DeclareLastCard records the caller's one-card warning.
func (s *Service) DeclareLastCard(ctx context.Context, userID, gameID string) (*MoveView, error) {
	g, hands, err := s.load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	seat, ok := g.Seat(userID)
	if !ok {
		return nil, consts.ErrNotInGame
	}
	if err := game.DeclareLastCard(g, hands, userID); err != nil {
		return nil, err
	}
	if err := s.commit(ctx, g, hands); err != nil {
		return nil, err
	}
	return &MoveView{
		Game: publicView(g),
		Hand: cardViews(hands[seat]),
	}, nil
}

// State returns the caller's picture of a game; with an empty id the
// caller's active game is looked up.
func (s *Service) State(ctx context.Context, userID, gameID string) (*StateView, error) {
	if gameID == "" {
		var err error
		gameID, err = s.store.ActiveGame(ctx, userID)
		if err != nil {
			return nil, err
		}
		if gameID == "" {
			return nil, consts.ErrGameNotFound
		}
	}
	g, hands, err := s.load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	seat, ok := g.Seat(userID)
	if !ok {
		return nil, consts.ErrNotInGame
	}
	return s.stateView(ctx, g, hands, seat)
}

// Leave abandons the caller's seat. The record itself is left to the
// store's expiry policy.
func (s *Service) Leave(ctx context.Context, userID, gameID string) error {
	if gameID == "" {
		gameID, _ = s.store.ActiveGame(ctx, userID)
	}
	if err := s.store.ClearActiveGame(ctx, userID); err != nil {
		return err
	}
	if gameID == "" {
		return nil
	}
	g, hands, err := s.load(ctx, gameID)
	if err != nil {
		return nil
	}
	if seat, ok := g.Seat(userID); ok && g.Status == consts.StatusPlaying {
		g.Players[seat].Connected = false
		if err := s.store.SaveMove(ctx, g, hands); err == nil {
			s.publish(g)
		}
	}
	return nil
}

// botFollowUp plays the bot's turns synchronously until the turn is
// back with a human or the game ends. Each bot action is a separate
// committed operation; drawing ends the bot's turn with no follow-up
// play, the same as for a human.
func (s *Service) botFollowUp(ctx context.Context, rng *rand.Rand, g *game.Game, hands *game.Hands) error {
	for turns := 0; turns < botTurnLimit; turns++ {
		if g.Status != consts.StatusPlaying || g.Current().Kind != consts.KindBot {
			return nil
		}
		seat := g.TurnIndex
		actor := g.Current().UserID

		if len(hands[seat]) == 2 && bot.ShouldDeclare(rng, g.Difficulty) {
			if err := game.DeclareLastCard(g, hands, actor); err == nil {
				if err := s.commit(ctx, g, hands); err != nil {
					return err
				}
			}
		}

		if id, ok := bot.ChooseCard(rng, g, hands[seat]); ok {
			chosen := color.None
			if card.MustByID(id).IsWild() {
				chosen = bot.ChooseColor(rng, g.Difficulty, hands[seat])
			}
			if _, err := game.PlayCard(rng, g, hands, actor, id, chosen); err != nil {
				return err
			}
		} else {
			if _, err := game.DrawCards(rng, g, hands, actor); err != nil {
				return err
			}
		}
		if err := s.commit(ctx, g, hands); err != nil {
			return err
		}
	}
	logrus.WithField("game", g.ID).Warn("bot follow-up loop hit its turn limit")
	return nil
}

// commit writes one operation's outcome and handles the terminal
// bookkeeping when that outcome ended the game.
func (s *Service) commit(ctx context.Context, g *game.Game, hands *game.Hands) error {
	if err := s.store.SaveMove(ctx, g, hands); err != nil {
		return err
	}
	s.publish(g)
	if g.Status == consts.StatusFinished {
		s.finish(ctx, g)
	}
	return nil
}

func (s *Service) finish(ctx context.Context, g *game.Game) {
	winner := g.Players[g.WinnerSeat]
	vsBot := false
	for _, p := range g.Players {
		if p.Kind == consts.KindBot {
			vsBot = true
		}
		if p.Kind == consts.KindHuman {
			_ = s.store.ClearActiveGame(ctx, p.UserID)
		}
	}
	logrus.WithFields(logrus.Fields{
		"game":   g.ID,
		"winner": winner.Name,
		"moves":  g.MoveCount,
	}).Info("game finished")
	if s.Rewards != nil {
		s.Rewards.GameFinished(ctx, Result{
			GameID:       g.ID,
			Difficulty:   g.Difficulty,
			WinnerSeat:   g.WinnerSeat,
			WinnerUserID: winner.UserID,
			MoveCount:    g.MoveCount,
			Duration:     time.Duration(g.FinishedAt-g.CreatedAt) * time.Millisecond,
			VsBot:        vsBot,
		})
	}
}

func (s *Service) publish(g *game.Game) {
	if s.Notifier != nil {
		s.Notifier.PublishState(g.ID, publicView(g))
	}
}

func (s *Service) load(ctx context.Context, gameID string) (*game.Game, *game.Hands, error) {
	g, err := s.store.LoadGame(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	hands := &game.Hands{}
	for seat := 0; seat < consts.MaxPlayers; seat++ {
		hand, err := s.store.LoadHand(ctx, gameID, seat)
		if err != nil {
			return nil, nil, err
		}
		hands[seat] = hand
	}
	return g, hands, nil
}

func (s *Service) stateView(ctx context.Context, g *game.Game, hands *game.Hands, seat int) (*StateView, error) {
	return &StateView{
		Game:     publicView(g),
		Hand:     cardViews(hands[seat]),
		Seat:     seat,
		YourTurn: g.Status == consts.StatusPlaying && g.TurnIndex == seat,
	}, nil
}

package database

import (
	"context"
	"sync"

	"github.com/awesome-cap/hashmap"
	"github.com/unoduel/server/consts"
	"github.com/unoduel/server/game"
)

// MemoryStore is a map-backed Store for development and tests. It
// honors the same version-gated write rule as the Redis store but
// ignores expiry.
type MemoryStore struct {
	mu      sync.Mutex
	games   *hashmap.HashMap
	hands   *hashmap.HashMap
	actives *hashmap.HashMap
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games:   hashmap.New(),
		hands:   hashmap.New(),
		actives: hashmap.New(),
	}
}

func (s *MemoryStore) CreateGame(ctx context.Context, g *game.Game, hands *game.Hands) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.Version = 1
	s.games.Set(gameKey(g.ID), cloneGame(g))
	for seat, hand := range hands {
		s.hands.Set(handKey(g.ID, seat), hand.Clone())
	}
	return nil
}

func (s *MemoryStore) LoadGame(ctx context.Context, id string) (*game.Game, error) {
	v, ok := s.games.Get(gameKey(id))
	if !ok {
		return nil, consts.ErrGameNotFound
	}
	return cloneGame(v.(*game.Game)), nil
}

func (s *MemoryStore) LoadHand(ctx context.Context, id string, seat int) (game.Hand, error) {
	v, ok := s.hands.Get(handKey(id, seat))
	if !ok {
		return nil, nil
	}
	return v.(game.Hand).Clone(), nil
}

func (s *MemoryStore) SaveMove(ctx context.Context, g *game.Game, hands *game.Hands) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.games.Get(gameKey(g.ID))
	if !ok {
		return consts.ErrGameNotFound
	}
	if v.(*game.Game).Version != g.Version {
		return consts.ErrConcurrencyConflict
	}
	g.Version++
	s.games.Set(gameKey(g.ID), cloneGame(g))
	for seat, hand := range hands {
		s.hands.Set(handKey(g.ID, seat), hand.Clone())
	}
	return nil
}

func (s *MemoryStore) DeleteGame(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games.Del(gameKey(id))
	for seat := 0; seat < consts.MaxPlayers; seat++ {
		s.hands.Del(handKey(id, seat))
	}
	return nil
}

func (s *MemoryStore) SetActiveGame(ctx context.Context, userID, gameID string) error {
	s.actives.Set(activeKey(userID), gameID)
	return nil
}

func (s *MemoryStore) ActiveGame(ctx context.Context, userID string) (string, error) {
	if v, ok := s.actives.Get(activeKey(userID)); ok {
		return v.(string), nil
	}
	return "", nil
}

func (s *MemoryStore) ClearActiveGame(ctx context.Context, userID string) error {
	s.actives.Del(activeKey(userID))
	return nil
}

func cloneGame(g *game.Game) *game.Game {
	out := *g
	out.Players = append([]game.Player(nil), g.Players...)
	out.DeckIDs = append([]int(nil), g.DeckIDs...)
	return &out
}

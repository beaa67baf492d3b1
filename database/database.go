package database

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/unoduel/server/card/color"
	"github.com/unoduel/server/consts"
	"github.com/unoduel/server/game"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store is the persistence boundary of the engine. The public game
// record and the per-seat hands live under separate keys; SaveMove
// writes them together and enforces the one-writer-per-game rule via
// a version compare, surfacing consts.ErrConcurrencyConflict on a
// lost race.
type Store interface {
	CreateGame(ctx context.Context, g *game.Game, hands *game.Hands) error
	LoadGame(ctx context.Context, id string) (*game.Game, error)
	LoadHand(ctx context.Context, id string, seat int) (game.Hand, error)
	SaveMove(ctx context.Context, g *game.Game, hands *game.Hands) error
	DeleteGame(ctx context.Context, id string) error

	SetActiveGame(ctx context.Context, userID, gameID string) error
	ActiveGame(ctx context.Context, userID string) (string, error)
	ClearActiveGame(ctx context.Context, userID string) error
}

func gameKey(id string) string {
	return "g:" + id
}

func handKey(id string, seat int) string {
	return fmt.Sprintf("gh:%s:%d", id, seat)
}

func activeKey(userID string) string {
	return "uag:" + userID
}

// The hash field layout keeps the original deployment's short names,
// so records stay cheap to store and scan.
func encodeGame(g *game.Game) (map[string]interface{}, error) {
	players, err := json.Marshal(g.Players)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"i":   g.ID,
		"st":  string(g.Status),
		"d":   string(g.Difficulty),
		"ps":  string(players),
		"cp":  g.TurnIndex,
		"dir": g.Direction,
		"dk":  joinIDs(g.DeckIDs),
		"dt":  g.DiscardTop,
		"dc":  g.ActiveColor.Name(),
		"dp":  g.PendingDraw,
		"mc":  g.MoveCount,
		"v":   g.Version,
		"ca":  g.CreatedAt,
		"lm":  g.LastMoveAt,
		"fa":  g.FinishedAt,
		"w":   g.WinnerSeat,
	}, nil
}

func decodeGame(fields map[string]string) (*game.Game, error) {
	if len(fields) == 0 {
		return nil, consts.ErrGameNotFound
	}
	g := &game.Game{
		ID:         fields["i"],
		Status:     consts.GameStatus(fields["st"]),
		Difficulty: consts.Difficulty(fields["d"]),
	}
	if err := json.Unmarshal([]byte(fields["ps"]), &g.Players); err != nil {
		return nil, fmt.Errorf("decode players of game %s: %w", g.ID, err)
	}
	var err error
	if g.DeckIDs, err = splitIDs(fields["dk"]); err != nil {
		return nil, fmt.Errorf("decode deck of game %s: %w", g.ID, err)
	}
	if g.ActiveColor, err = color.ByName(fields["dc"]); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", g.ID, err)
	}
	g.TurnIndex = atoi(fields["cp"])
	g.Direction = atoi(fields["dir"])
	g.DiscardTop = atoi(fields["dt"])
	g.PendingDraw = atoi(fields["dp"])
	g.MoveCount = atoi(fields["mc"])
	g.Version = int64(atoi(fields["v"]))
	g.CreatedAt = atoi64(fields["ca"])
	g.LastMoveAt = atoi64(fields["lm"])
	g.FinishedAt = atoi64(fields["fa"])
	g.WinnerSeat = atoi(fields["w"])
	return g, nil
}

func joinIDs(ids []int) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func splitIDs(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int, len(parts))
	for i, part := range parts {
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atoi64(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

// recordTTL picks the retention window: finished games stay only long
// enough for result reporting.
func recordTTL(g *game.Game) time.Duration {
	if g.Status == consts.StatusFinished {
		return consts.FinishedTTL
	}
	return consts.GameTTL
}

package bot

import (
	"math/rand"
	"sort"

	"github.com/unoduel/server/card"
	"github.com/unoduel/server/card/color"
	"github.com/unoduel/server/consts"
	"github.com/unoduel/server/game"
)

// Weights parameterizes the card scorer for one difficulty tier.
// Tiers differ only in these numbers, never in control flow.
type Weights struct {
	// Jitter is the range of the random base score.
	Jitter float64
	// PointFactor scales a card's point value into its score.
	PointFactor float64

	// Pressure bonuses apply while the opponent holds at most
	// PressureThreshold cards.
	PressureThreshold int
	PressureWild4     float64
	PressureDraw2     float64
	PressureSkip      float64

	// WildReservePenalty discourages spending a wild while at least
	// ReserveMinPlayable playable cards of the hand's most common
	// color remain.
	WildReservePenalty float64
	ReserveMinPlayable int

	// TopN is how deep into the ranking the final pick samples;
	// zero means the whole ranking (uniform for a flat scorer).
	TopN int
	// SecondBestChance occasionally trades the best card for the
	// runner-up, keeping the strongest tier a little less readable.
	SecondBestChance float64

	// ColorSlipChance picks a uniformly random wild color instead of
	// the most-held one.
	ColorSlipChance float64

	// DeclareChance is the probability of calling the one-card
	// warning when about to drop to a single card.
	DeclareChance float64
}

var tiers = map[consts.Difficulty]Weights{
	consts.DifficultyEasy: {
		Jitter:          1,
		ColorSlipChance: 1,
		DeclareChance:   0.3,
	},
	consts.DifficultyMedium: {
		Jitter:             10,
		PointFactor:        0.3,
		PressureThreshold:  3,
		PressureWild4:      100,
		PressureDraw2:      80,
		PressureSkip:       60,
		WildReservePenalty: 30,
		ReserveMinPlayable: 2,
		TopN:               3,
		ColorSlipChance:    0.3,
		DeclareChance:      0.7,
	},
	consts.DifficultyHard: {
		Jitter:             10,
		PointFactor:        0.5,
		PressureThreshold:  3,
		PressureWild4:      100,
		PressureDraw2:      80,
		PressureSkip:       60,
		WildReservePenalty: 30,
		ReserveMinPlayable: 2,
		TopN:               1,
		SecondBestChance:   0.15,
		DeclareChance:      0.95,
	},
}

// TierWeights returns the scoring table for a difficulty, defaulting
// to easy for anything unknown.
func TierWeights(d consts.Difficulty) Weights {
	if w, ok := tiers[d]; ok {
		return w
	}
	return tiers[consts.DifficultyEasy]
}

type scoredCard struct {
	id    int
	score float64
}

// ChooseCard picks a legal card id for the acting seat, or reports
// false when the bot must draw. The choice is a pure function of the
// hand, the public state, the tier, and rng.
func ChooseCard(rng *rand.Rand, g *game.Game, hand game.Hand) (int, bool) {
	legal := g.LegalIDs(hand)
	if len(legal) == 0 {
		return 0, false
	}
	w := TierWeights(g.Difficulty)
	opponentSize := g.Opponent(g.TurnIndex).HandSize
	reserve := playableOfBestColor(g, hand, legal)

	scored := make([]scoredCard, 0, len(legal))
	for _, id := range legal {
		c := card.MustByID(id)
		s := rng.Float64() * w.Jitter
		if opponentSize <= w.PressureThreshold {
			switch c.Value {
			case card.WildFour:
				s += w.PressureWild4
			case card.DrawTwo:
				s += w.PressureDraw2
			case card.Skip, card.Reverse:
				s += w.PressureSkip
			}
		}
		if c.IsWild() && w.ReserveMinPlayable > 0 && reserve >= w.ReserveMinPlayable {
			s -= w.WildReservePenalty
		}
		s += float64(c.Points()) * w.PointFactor
		scored = append(scored, scoredCard{id: id, score: s})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].id < scored[j].id
	})

	n := w.TopN
	if n <= 0 || n > len(scored) {
		n = len(scored)
	}
	pick := scored[rng.Intn(n)]
	if w.SecondBestChance > 0 && len(scored) >= 2 && rng.Float64() < w.SecondBestChance {
		pick = scored[1]
	}
	return pick.id, true
}

// ChooseColor picks the wild color: the color with the most copies in
// the bot's own hand, ties broken by the fixed precedence in
// color.All. A tier's slip chance substitutes a uniform pick.
func ChooseColor(rng *rand.Rand, d consts.Difficulty, hand game.Hand) color.Color {
	w := TierWeights(d)
	if rng.Float64() < w.ColorSlipChance {
		return color.All[rng.Intn(len(color.All))]
	}
	counts := map[color.Color]int{}
	for _, id := range hand {
		c := card.MustByID(id)
		if !c.IsWild() {
			counts[c.Color]++
		}
	}
	best := color.All[0]
	for _, c := range color.All {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}

// ShouldDeclare rolls the tier's declaration probability. Failing to
// declare is a legitimate bot outcome; the usual penalty applies.
func ShouldDeclare(rng *rand.Rand, d consts.Difficulty) bool {
	return rng.Float64() < TierWeights(d).DeclareChance
}

// playableOfBestColor counts legal cards sharing the hand's most
// common non-wild color.
func playableOfBestColor(g *game.Game, hand game.Hand, legal []int) int {
	counts := map[color.Color]int{}
	for _, id := range hand {
		c := card.MustByID(id)
		if !c.IsWild() {
			counts[c.Color]++
		}
	}
	best := color.All[0]
	for _, c := range color.All {
		if counts[c] > counts[best] {
			best = c
		}
	}
	n := 0
	for _, id := range legal {
		if card.MustByID(id).Color == best {
			n++
		}
	}
	return n
}

var names = map[consts.Difficulty][]string{
	consts.DifficultyEasy:   {"Rookie Bot", "Beginner Bot", "Learning Bot", "Newbie Bot"},
	consts.DifficultyMedium: {"Smart Bot", "Clever Bot", "Skilled Bot", "Sharp Bot"},
	consts.DifficultyHard:   {"Expert Bot", "Master Bot", "Pro Bot", "Elite Bot"},
}

// Name picks a display name for a bot seat of the given tier.
func Name(rng *rand.Rand, d consts.Difficulty) string {
	pool, ok := names[d]
	if !ok {
		pool = names[consts.DifficultyEasy]
	}
	return pool[rng.Intn(len(pool))]
}

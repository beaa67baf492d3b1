package card

import (
	"fmt"
	"strconv"

	"github.com/unoduel/server/card/color"
	"github.com/unoduel/server/consts"
)

// Value is the face of a card.
type Value string

const (
	Skip     Value = "skip"
	Reverse  Value = "reverse"
	DrawTwo  Value = "draw2"
	WildFace Value = "wild"
	WildFour Value = "wild4"
)

// Card is an immutable catalog entry. Game state only ever references
// cards by ID; the struct itself is never serialized into a record.
type Card struct {
	ID    int
	Color color.Color
	Value Value
}

// DeckSize is the fixed card universe: 4 colors x (one 0, two each of
// 1-9, two each of skip/reverse/draw2) + 4 wild + 4 wild-draw-4.
const DeckSize = 108

var catalog [DeckSize]Card

func init() {
	id := 0
	add := func(c color.Color, v Value) {
		catalog[id] = Card{ID: id, Color: c, Value: v}
		id++
	}
	for _, c := range color.All {
		add(c, "0")
		for n := 1; n <= 9; n++ {
			v := Value(strconv.Itoa(n))
			add(c, v)
			add(c, v)
		}
		for _, v := range []Value{Skip, Reverse, DrawTwo} {
			add(c, v)
			add(c, v)
		}
	}
	for i := 0; i < 4; i++ {
		add(color.Wild, WildFace)
	}
	for i := 0; i < 4; i++ {
		add(color.Wild, WildFour)
	}
}

// ByID looks a card up by its stable catalog index.
func ByID(id int) (Card, error) {
	if id < 0 || id >= DeckSize {
		return Card{}, consts.ErrOutOfRange
	}
	return catalog[id], nil
}

// MustByID is for ids already validated by the engine.
func MustByID(id int) Card {
	c, err := ByID(id)
	if err != nil {
		panic(err)
	}
	return c
}

// FreshDeckIDs returns the full catalog in canonical unshuffled order.
// Callers shuffle separately.
func FreshDeckIDs() []int {
	ids := make([]int, DeckSize)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

func (c Card) IsWild() bool {
	return c.Color == color.Wild
}

func (c Card) IsAction() bool {
	switch c.Value {
	case Skip, Reverse, DrawTwo:
		return true
	}
	return false
}

// Points is the scoring value used by surrounding reward systems,
// never by rule legality.
func (c Card) Points() int {
	switch c.Value {
	case WildFace, WildFour:
		return 50
	case Skip, Reverse, DrawTwo:
		return 20
	}
	n, _ := strconv.Atoi(string(c.Value))
	return n
}

func (c Card) String() string {
	if c.IsWild() {
		return c.Color.Paintf("(%s)", c.Value)
	}
	return c.Color.Paintf("[%s %s]", c.Color.Name(), c.Value)
}

// Label is the plain, uncolored form used in wire payloads.
func (c Card) Label() string {
	if c.IsWild() {
		return fmt.Sprintf("(%s)", c.Value)
	}
	return fmt.Sprintf("%s-%s", c.Color.Name(), c.Value)
}

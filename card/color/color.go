package color

import (
	"fmt"

	"github.com/fatih/color"
)

// Color is one of the four matchable card colors, Wild for the two
// wild card faces, or None when no choice accompanies a play.
type Color int

const (
	None Color = iota
	Red
	Yellow
	Green
	Blue
	Wild
)

// All lists the matchable colors in their fixed precedence order.
// Bot tie-breaks follow this order, so tests stay deterministic.
var All = []Color{Red, Yellow, Green, Blue}

var names = map[Color]string{
	None:   "",
	Red:    "red",
	Yellow: "yellow",
	Green:  "green",
	Blue:   "blue",
	Wild:   "wild",
}

var paints = map[Color]func(string, ...interface{}) string{
	Red:    color.New(color.FgHiRed).SprintfFunc(),
	Yellow: color.New(color.FgHiYellow).SprintfFunc(),
	Green:  color.New(color.FgHiGreen).SprintfFunc(),
	Blue:   color.New(color.FgHiCyan).SprintfFunc(),
	Wild:   color.New(color.FgHiWhite, color.Bold).SprintfFunc(),
}

func (c Color) Name() string {
	return names[c]
}

func (c Color) String() string {
	return c.Name()
}

// Paint renders text in the color's terminal escape for logs and the
// debug renderer.
func (c Color) Paint(text string) string {
	if fn, ok := paints[c]; ok {
		return fn("%s", text)
	}
	return text
}

func (c Color) Paintf(format string, args ...interface{}) string {
	return c.Paint(fmt.Sprintf(format, args...))
}

// Matchable reports whether the color can be the active color.
func (c Color) Matchable() bool {
	switch c {
	case Red, Yellow, Green, Blue:
		return true
	}
	return false
}

func ByName(name string) (Color, error) {
	for c, n := range names {
		if n == name && n != "" {
			return c, nil
		}
	}
	return None, fmt.Errorf("invalid color '%s'", name)
}

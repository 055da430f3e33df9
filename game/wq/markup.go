package 围碁

import (
	"fmt"
	"strconv"

	"github.com/gorgonia/kifu/game"
)

// MarkupKind tags the variant held by a Markup.
type MarkupKind byte

const (
	NoMarkup MarkupKind = iota
	MoveMark
	StoneMark
	ConflictMark
	TextMark
	TriangleMark
	SquareMark
	CircleMark
	CrossMark
	WhiteTerritoryMark
	BlackTerritoryMark
)

// Markup is what a diagram shows at a point.
//
//	MoveMark            Colour, Number
//	StoneMark           Colour
//	ConflictMark        Colour, Text (the disambiguating letter)
//	TextMark            Text
//	everything else     nothing
type Markup struct {
	Kind   MarkupKind
	Colour game.Colour
	Number int
	Text   string
}

var (
	Triangle       = Markup{Kind: TriangleMark}
	Square         = Markup{Kind: SquareMark}
	Circle         = Markup{Kind: CircleMark}
	Cross          = Markup{Kind: CrossMark}
	WhiteTerritory = Markup{Kind: WhiteTerritoryMark}
	BlackTerritory = Markup{Kind: BlackTerritoryMark}
)

func MoveMarkup(c game.Colour, n int) Markup { return Markup{Kind: MoveMark, Colour: c, Number: n} }

func StoneMarkup(c game.Colour) Markup { return Markup{Kind: StoneMark, Colour: c} }

func ConflictMarkup(c game.Colour, letter string) Markup {
	return Markup{Kind: ConflictMark, Colour: c, Text: letter}
}

func TextMarkup(s string) Markup { return Markup{Kind: TextMark, Text: s} }

// IsZero returns true for the absence of markup.
func (m Markup) IsZero() bool { return m.Kind == NoMarkup }

func (m Markup) String() string {
	switch m.Kind {
	case MoveMark:
		return strconv.Itoa(m.Number)
	case StoneMark:
		return fmt.Sprintf("%s", m.Colour)
	case ConflictMark, TextMark:
		return m.Text
	case TriangleMark:
		return "TR"
	case SquareMark:
		return "SQ"
	case CircleMark:
		return "CR"
	case CrossMark:
		return "MA"
	case WhiteTerritoryMark:
		return "TW"
	case BlackTerritoryMark:
		return "TB"
	}
	return ""
}

// Compare orders markups by their string form, except that two moves order by move number.
func (m Markup) Compare(other Markup) int {
	if m.Kind == MoveMark && other.Kind == MoveMark {
		switch {
		case m.Number < other.Number:
			return -1
		case m.Number > other.Number:
			return 1
		}
		return int(m.Colour) - int(other.Colour)
	}
	a, b := m.String(), other.String()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return int(m.Kind) - int(other.Kind)
}

// Conflict records that Incoming was set on a point already showing Existing.
// Existing stays on the diagram; Incoming is reported beside it ("12 at a").
type Conflict struct {
	game.Point
	Existing, Incoming Markup
}

func (c Conflict) Format(s fmt.State, r rune) { fmt.Fprintf(s, "%v at %v", c.Incoming, c.Existing) }

func (c Conflict) compare(other Conflict) int {
	if r := c.Incoming.Compare(other.Incoming); r != 0 {
		return r
	}
	if r := c.Existing.Compare(other.Existing); r != 0 {
		return r
	}
	switch {
	case c.Point.Less(other.Point):
		return -1
	case other.Point.Less(c.Point):
		return 1
	}
	return 0
}

// conflictLetter returns the n-th disambiguating letter: a..z, then A..Z, then numbers.
func conflictLetter(n int) string {
	switch {
	case n < 26:
		return string(rune('a' + n))
	case n < 52:
		return string(rune('A' + n - 26))
	}
	return strconv.Itoa(n - 51)
}

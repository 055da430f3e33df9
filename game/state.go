package game

import (
	"fmt"

	"github.com/pkg/errors"
)

type Colour int32

const (
	None Colour = iota
	Black
	White
)

// Opponent returns the colour of the other player. None has no opponent.
func (cl Colour) Opponent() Colour {
	switch cl {
	case Black:
		return White
	case White:
		return Black
	}
	return None
}

// IsValid returns true for the two playing colours.
func (cl Colour) IsValid() bool { return cl == Black || cl == White }

// Letter returns the SGF letter of the colour ("B" or "W"). None has no letter.
func (cl Colour) Letter() string {
	switch cl {
	case Black:
		return "B"
	case White:
		return "W"
	}
	return ""
}

func (cl Colour) Format(s fmt.State, c rune) {
	switch c {
	case 'v': // used in debug
		switch cl {
		case None:
			fmt.Fprint(s, "None")
		case Black:
			fmt.Fprint(s, "Black")
		case White:
			fmt.Fprint(s, "White")
		}
	case 's': // used in board games
		switch cl {
		case None:
			fmt.Fprint(s, "·")
		case Black:
			fmt.Fprint(s, "X")
		case White:
			fmt.Fprint(s, "O")
		}
	}
}

// Point represents a (x, y) coordinate on a board.
// Given we're unlikely to actually have a board larger than 52x52,
// a pair of int16 is more than sufficient to represent the coordinates
//
// The Point uses a standard computer cartesian coordinates
//		- (0, 0) represents the top left
//		- (18, 18) represents the bottom right of a 19x19 board
type Point struct {
	X, Y int16
}

// Pass is the sentinel point for a pass move. It is never on a board.
var Pass = Point{-1, -1}

// Pt is a shorthand for constructing a Point.
func Pt(x, y int) Point { return Point{int16(x), int16(y)} }

func (p Point) Add(other Point) Point { return Point{p.X + other.X, p.Y + other.Y} }

func (p Point) Eq(other Point) bool { return p.X == other.X && p.Y == other.Y }

// Less orders points lexicographically, x major and y minor.
func (p Point) Less(other Point) bool {
	if p.X != other.X {
		return p.X < other.X
	}
	return p.Y < other.Y
}

// IsPass returns true when the point represents a pass move.
func (p Point) IsPass() bool { return p == Pass }

// InRange returns true when the point lies on a board of the given size.
func (p Point) InRange(size int) bool {
	return p.X >= 0 && p.Y >= 0 && int(p.X) < size && int(p.Y) < size
}

// String returns the SGF encoding of the point: column letter then row letter.
// A pass encodes as the empty string.
func (p Point) String() string {
	if p.IsPass() {
		return ""
	}
	return string([]byte{coordLetter(p.X), coordLetter(p.Y)})
}

// ParsePoint decodes the two letter SGF encoding. The empty string is a pass.
func ParsePoint(s string) (Point, error) {
	if s == "" {
		return Pass, nil
	}
	if len(s) != 2 {
		return Pass, errors.Errorf("Cannot parse point %q: expected two letters", s)
	}
	x, ok1 := letterCoord(s[0])
	y, ok2 := letterCoord(s[1])
	if !ok1 || !ok2 {
		return Pass, errors.Errorf("Cannot parse point %q: letters must be in a-z or A-Z", s)
	}
	return Point{x, y}, nil
}

func coordLetter(v int16) byte {
	if v < 26 {
		return byte('a' + v)
	}
	return byte('A' + v - 26)
}

func letterCoord(b byte) (int16, bool) {
	switch {
	case b >= 'a' && b <= 'z':
		return int16(b - 'a'), true
	case b >= 'A' && b <= 'Z':
		return int16(b-'A') + 26, true
	}
	return 0, false
}

// MaxBoardSize is the largest size the two letter point encoding supports.
const MaxBoardSize = 52

// PlayerMove is a tuple indicating the colour and the point played.
type PlayerMove struct {
	Colour
	Point
}

// Eq returns true if both are equal
func (p PlayerMove) Eq(other PlayerMove) bool {
	return p.Colour == other.Colour && p.Point == other.Point
}

func (p PlayerMove) Format(s fmt.State, c rune) {
	if p.Point.IsPass() {
		fmt.Fprintf(s, "%v@pass", p.Colour)
		return
	}
	fmt.Fprintf(s, "%v@%v", p.Colour, p.Point)
}

// Zobrist is a type representing a zobrist hash of a position.
type Zobrist uint64

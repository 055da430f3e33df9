package game

import (
	"bytes"
	"fmt"
)

// Symmetry is an element of the 16 element group acting on positions:
// the 8 spatial symmetries of the square times colour inversion.
//
// Each bit is independent. A point is transformed by swapping the axes first,
// then mirroring x, then mirroring y.
type Symmetry uint8

const (
	SwapAxes Symmetry = 1 << iota
	MirrorX
	MirrorY
	InvertColour

	Identity Symmetry = 0

	// SymmetryCount is the number of elements in the group.
	SymmetryCount = 16

	// SpatialCount is the number of symmetries that leave the colours alone.
	SpatialCount = 8
)

// IsSpatial returns true if the symmetry does not invert colours.
func (s Symmetry) IsSpatial() bool { return s&InvertColour == 0 }

// TransformPoint maps a point on a board of the given size. Passes are left alone.
func (s Symmetry) TransformPoint(p Point, size int) Point {
	if p.IsPass() {
		return p
	}
	x, y := p.X, p.Y
	if s&SwapAxes != 0 {
		x, y = y, x
	}
	last := int16(size - 1)
	if s&MirrorX != 0 {
		x = last - x
	}
	if s&MirrorY != 0 {
		y = last - y
	}
	return Point{x, y}
}

// TransformColour swaps black and white when the symmetry inverts colours.
func (s Symmetry) TransformColour(c Colour) Colour {
	if s&InvertColour != 0 {
		return c.Opponent()
	}
	return c
}

// Compose returns the symmetry equivalent to applying s first and then t.
func (s Symmetry) Compose(t Symmetry) Symmetry {
	// moving t's mirrors across s's swap exchanges the mirror axes
	mirrors := s & (MirrorX | MirrorY)
	if t&SwapAxes != 0 {
		mirrors = swapMirrors(mirrors)
	}
	swap := (s ^ t) & SwapAxes
	colour := (s ^ t) & InvertColour
	return swap | colour | (mirrors ^ (t & (MirrorX | MirrorY)))
}

// Inverse returns the symmetry undoing s.
func (s Symmetry) Inverse() Symmetry {
	if s&SwapAxes == 0 {
		return s
	}
	return SwapAxes | (s & InvertColour) | swapMirrors(s&(MirrorX|MirrorY))
}

func swapMirrors(m Symmetry) Symmetry {
	var retVal Symmetry
	if m&MirrorX != 0 {
		retVal |= MirrorY
	}
	if m&MirrorY != 0 {
		retVal |= MirrorX
	}
	return retVal
}

func (s Symmetry) String() string {
	if s == Identity {
		return "identity"
	}
	var buf bytes.Buffer
	for _, n := range []struct {
		bit  Symmetry
		name string
	}{{SwapAxes, "swap"}, {MirrorX, "mirror-x"}, {MirrorY, "mirror-y"}, {InvertColour, "invert"}} {
		if s&n.bit == 0 {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('+')
		}
		buf.WriteString(n.name)
	}
	return buf.String()
}

// Hasher is anything that keeps a hash per symmetry of its position.
type Hasher interface {
	Hash(s Symmetry) Zobrist
}

// SymmetryGroup is the set of spatial symmetries under which a position hashes
// the same as under the identity.
//
// The comparison is by hash only. Two different positions colliding would be
// reported as symmetric; this approximation is accepted.
type SymmetryGroup uint16

// SymmetryGroupOf computes the group of the position held by h.
func SymmetryGroupOf(h Hasher) SymmetryGroup {
	id := h.Hash(Identity)
	var retVal SymmetryGroup
	for i := Symmetry(0); i < SpatialCount; i++ {
		if h.Hash(i) == id {
			retVal |= 1 << i
		}
	}
	return retVal
}

// Contains returns true if s fixes the position.
func (g SymmetryGroup) Contains(s Symmetry) bool { return g&(1<<s) != 0 }

// Len returns the number of elements in the group.
func (g SymmetryGroup) Len() int {
	var n int
	for i := Symmetry(0); i < SymmetryCount; i++ {
		if g.Contains(i) {
			n++
		}
	}
	return n
}

// Symmetries lists the members of the group in ascending order.
func (g SymmetryGroup) Symmetries() []Symmetry {
	retVal := make([]Symmetry, 0, g.Len())
	for i := Symmetry(0); i < SymmetryCount; i++ {
		if g.Contains(i) {
			retVal = append(retVal, i)
		}
	}
	return retVal
}

func (g SymmetryGroup) Format(s fmt.State, c rune) { fmt.Fprintf(s, "%v", g.Symmetries()) }

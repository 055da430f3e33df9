package sgf

import (
	"fmt"
	"sort"

	"github.com/gorgonia/kifu/game"
	"github.com/pkg/errors"
)

// PointSet is a set of points with a bounding box.
//
// The box grows as points are added. Removing a point on its edge only marks the
// box stale; it is recomputed the next time it is asked for.
type PointSet struct {
	points   map[game.Point]struct{}
	min, max game.Point
	stale    bool
}

// NewPointSet creates a set holding the given points.
func NewPointSet(ps ...game.Point) *PointSet {
	retVal := &PointSet{points: make(map[game.Point]struct{}, len(ps))}
	for _, p := range ps {
		retVal.Add(p)
	}
	return retVal
}

// Len returns the number of points in the set.
func (s *PointSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.points)
}

// Has returns true if p is in the set.
func (s *PointSet) Has(p game.Point) bool {
	if s == nil {
		return false
	}
	_, ok := s.points[p]
	return ok
}

// Add adds p to the set. It returns false if p was already there.
func (s *PointSet) Add(p game.Point) bool {
	if s.points == nil {
		s.points = make(map[game.Point]struct{})
	}
	if _, ok := s.points[p]; ok {
		return false
	}
	s.points[p] = struct{}{}
	switch {
	case len(s.points) == 1:
		s.min, s.max, s.stale = p, p, false
	case !s.stale:
		s.min = game.Point{X: min16(s.min.X, p.X), Y: min16(s.min.Y, p.Y)}
		s.max = game.Point{X: max16(s.max.X, p.X), Y: max16(s.max.Y, p.Y)}
	}
	return true
}

// Remove removes p from the set. It returns false if p was not there.
func (s *PointSet) Remove(p game.Point) bool {
	if !s.Has(p) {
		return false
	}
	delete(s.points, p)
	if p.X == s.min.X || p.Y == s.min.Y || p.X == s.max.X || p.Y == s.max.Y {
		s.stale = true
	}
	return true
}

// Bounds returns the corners of the smallest rectangle holding every point.
// ok is false for an empty set.
func (s *PointSet) Bounds() (lo, hi game.Point, ok bool) {
	if s.Len() == 0 {
		return game.Point{}, game.Point{}, false
	}
	if s.stale {
		first := true
		for p := range s.points {
			if first {
				s.min, s.max, first = p, p, false
				continue
			}
			s.min = game.Point{X: min16(s.min.X, p.X), Y: min16(s.min.Y, p.Y)}
			s.max = game.Point{X: max16(s.max.X, p.X), Y: max16(s.max.Y, p.Y)}
		}
		s.stale = false
	}
	return s.min, s.max, true
}

// Points returns the points in ascending order.
func (s *PointSet) Points() []game.Point {
	if s.Len() == 0 {
		return nil
	}
	retVal := make([]game.Point, 0, len(s.points))
	for p := range s.points {
		retVal = append(retVal, p)
	}
	sort.Slice(retVal, func(i, j int) bool { return retVal[i].Less(retVal[j]) })
	return retVal
}

// Union adds every point of other to the set.
func (s *PointSet) Union(other *PointSet) {
	for _, p := range other.Points() {
		s.Add(p)
	}
}

// Equal returns true if both sets hold the same points.
func (s *PointSet) Equal(other *PointSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	if s.Len() == 0 {
		return true
	}
	for p := range s.points {
		if !other.Has(p) {
			return false
		}
	}
	return true
}

func (s *PointSet) Clone() Value { return s.clone() }

func (s *PointSet) clone() *PointSet {
	if s == nil {
		return NewPointSet()
	}
	retVal := &PointSet{points: make(map[game.Point]struct{}, len(s.points)), min: s.min, max: s.max, stale: s.stale}
	for p := range s.points {
		retVal.points[p] = struct{}{}
	}
	return retVal
}

// Rectangles returns the compressed encoding of the set as rectangles, each given
// by its upper left and lower right corners.
//
// Starting at the smallest point not yet covered, the rectangle is grown as far
// as possible along y, then along x, and its points are removed. This repeats
// until every point is covered.
func (s *PointSet) Rectangles() [][2]game.Point {
	left := s.clone()
	var retVal [][2]game.Point
	for _, p := range s.Points() {
		if !left.Has(p) {
			continue
		}
		hi := p
		for left.Has(game.Point{X: hi.X, Y: hi.Y + 1}) {
			hi.Y++
		}
	grow:
		for {
			for y := p.Y; y <= hi.Y; y++ {
				if !left.Has(game.Point{X: hi.X + 1, Y: y}) {
					break grow
				}
			}
			hi.X++
		}
		for x := p.X; x <= hi.X; x++ {
			for y := p.Y; y <= hi.Y; y++ {
				delete(left.points, game.Point{X: x, Y: y})
			}
		}
		retVal = append(retVal, [2]game.Point{p, hi})
	}
	return retVal
}

func (s *PointSet) encode() []string {
	rects := s.Rectangles()
	if len(rects) == 0 {
		return []string{""}
	}
	retVal := make([]string, len(rects))
	for i, r := range rects {
		if r[0] == r[1] {
			retVal[i] = r[0].String()
			continue
		}
		retVal[i] = r[0].String() + ":" + r[1].String()
	}
	return retVal
}

// addEncoded adds a single point or a "ul:lr" rectangle. The empty string adds nothing.
func (s *PointSet) addEncoded(v string) error {
	if v == "" {
		return nil
	}
	a, b, compose := splitCompose(v)
	lo, err := game.ParsePoint(a)
	if err != nil {
		return err
	}
	if !compose {
		s.Add(lo)
		return nil
	}
	hi, err := game.ParsePoint(b)
	if err != nil {
		return err
	}
	if lo.IsPass() || hi.IsPass() {
		return errors.Errorf("Cannot parse rectangle %q: missing corner", v)
	}
	if lo.X > hi.X {
		lo.X, hi.X = hi.X, lo.X
	}
	if lo.Y > hi.Y {
		lo.Y, hi.Y = hi.Y, lo.Y
	}
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			s.Add(game.Point{X: x, Y: y})
		}
	}
	return nil
}

func (s *PointSet) Format(st fmt.State, c rune) { fmt.Fprintf(st, "%v", s.Points()) }

func min16(a, b int16) int16 {
	if a < b {
		return a
	}
	return b
}

func max16(a, b int16) int16 {
	if a > b {
		return a
	}
	return b
}

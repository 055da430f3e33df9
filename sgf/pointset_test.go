package sgf

import (
	"testing"

	"github.com/gorgonia/kifu/game"
	"github.com/stretchr/testify/assert"
)

func TestPointSet_Bounds(t *testing.T) {
	s := NewPointSet()
	_, _, ok := s.Bounds()
	assert.False(t, ok)

	s.Add(game.Pt(1, 1))
	s.Add(game.Pt(3, 4))
	s.Add(game.Pt(2, 2))
	assert.False(t, s.Add(game.Pt(2, 2)))
	lo, hi, ok := s.Bounds()
	assert.True(t, ok)
	assert.Equal(t, game.Pt(1, 1), lo)
	assert.Equal(t, game.Pt(3, 4), hi)

	// removing the corner shrinks the box
	assert.True(t, s.Remove(game.Pt(3, 4)))
	assert.False(t, s.Remove(game.Pt(3, 4)))
	lo, hi, _ = s.Bounds()
	assert.Equal(t, game.Pt(1, 1), lo)
	assert.Equal(t, game.Pt(2, 2), hi)

	// adds after a removal still count
	s.Remove(game.Pt(1, 1))
	s.Add(game.Pt(0, 5))
	lo, hi, _ = s.Bounds()
	assert.Equal(t, game.Pt(0, 2), lo)
	assert.Equal(t, game.Pt(2, 5), hi)
	assert.Equal(t, []game.Point{game.Pt(0, 5), game.Pt(2, 2)}, s.Points())
}

func TestPointSet_Rectangles(t *testing.T) {
	tests := []struct {
		name   string
		points []game.Point
		want   string
	}{
		{"empty", nil, "AB[]"},
		{"single", []game.Point{game.Pt(3, 3)}, "AB[dd]"},
		{
			// aa ba ca
			// ab bb
			"square and a tail",
			[]game.Point{game.Pt(0, 0), game.Pt(0, 1), game.Pt(1, 0), game.Pt(1, 1), game.Pt(2, 0)},
			"AB[aa:bb][ca]",
		},
		{
			// aa ba ca
			// ab
			"corner",
			[]game.Point{game.Pt(0, 0), game.Pt(1, 0), game.Pt(2, 0), game.Pt(0, 1)},
			"AB[aa:ab][ba:ca]",
		},
		{
			"full row",
			[]game.Point{game.Pt(0, 4), game.Pt(1, 4), game.Pt(2, 4), game.Pt(3, 4)},
			"AB[ae:de]",
		},
		{
			"apart",
			[]game.Point{game.Pt(5, 5), game.Pt(0, 0)},
			"AB[aa][ff]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPointSet(tt.points...)
			p := Property{Key: AB, Value: s}
			assert.Equal(t, tt.want, p.String())

			// decoding the encoding gives the same set back
			back, err := ParseValue(AB, p.Value.encode())
			if assert.NoError(t, err) {
				assert.True(t, s.Equal(back.(*PointSet)))
			}
		})
	}
}

func TestPointSet_Union(t *testing.T) {
	a := NewPointSet(game.Pt(0, 0), game.Pt(1, 1))
	b := NewPointSet(game.Pt(1, 1), game.Pt(2, 2))
	c := a.Clone().(*PointSet)
	c.Union(b)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 3, c.Len())
	assert.True(t, c.Has(game.Pt(2, 2)))

	var none *PointSet
	assert.Equal(t, 0, none.Len())
	assert.False(t, none.Has(game.Pt(0, 0)))
	assert.True(t, none.Equal(NewPointSet()))
}

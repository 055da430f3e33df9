package sgf

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gorgonia/kifu/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperty_Write(t *testing.T) {
	tests := []struct {
		prop Property
		want string
	}{
		{Property{B, PointValue(game.Pt(2, 3))}, "B[cd]"},
		{Property{W, PointValue(game.Pass)}, "W[]"},
		{Property{C, Text(`a]b\`)}, `C[a\]b\\]`},
		{Property{KM, Number(6.5)}, "KM[6.5]"},
		{Property{DO, Void{}}, "DO[]"},
		{Property{LB, ValueList{Label{game.Pt(0, 0), "x:y"}, Label{game.Pt(1, 0), "B"}}}, `LB[aa:x\:y][ba:B]`},
		{Property{RE, Result{Winner: game.Black, Reason: Resign}}, "RE[B+R]"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		require.NoError(t, tt.prop.Write(&buf))
		assert.Equal(t, tt.want, buf.String())
	}
}

func TestNewProperty(t *testing.T) {
	p, err := NewProperty("KM", []string{"6.5"})
	assert.NoError(t, err)
	assert.Same(t, KM, p.Key)

	// a bad value comes back as text under an untyped key
	p, err = NewProperty("KM", []string{"oops"})
	assert.Error(t, err)
	assert.Equal(t, "KM", p.Key.Code)
	assert.Equal(t, TypeUnknown, p.Key.Type)
	assert.True(t, p.Key.Inheritable)
	assert.Equal(t, Text("oops"), p.Value)

	p, err = NewProperty("ZZ", []string{"x"})
	assert.NoError(t, err)
	assert.False(t, IsRegistered("ZZ"))
	assert.Equal(t, unknownPriority, p.Key.Priority)
}

func TestPropertySet(t *testing.T) {
	var ps PropertySet
	ps.Set(Property{C, Text("hi")})
	ps.Set(Property{LookupKey("XY"), Text("z")})
	ps.Set(Property{B, PointValue(game.Pt(2, 2))})
	ps.Set(Property{AB, NewPointSet(game.Pt(3, 3))})
	ps.Set(Property{SZ, Number(9)})

	var buf bytes.Buffer
	require.NoError(t, ps.Write(&buf))
	assert.Equal(t, "SZ[9]B[cc]AB[dd]C[hi]XY[z]", buf.String())
	assert.Equal(t, 5, ps.Len())

	// Add merges
	ps.Add(Property{AB, NewPointSet(game.Pt(3, 4))})
	ps.Add(Property{C, Text("there")})
	assert.True(t, NewPointSet(game.Pt(3, 3), game.Pt(3, 4)).Equal(ps.Value(AB).(*PointSet)))
	assert.Equal(t, ValueList{Text("hi"), Text("there")}, ps.Value(C))

	// clones are deep
	clone := ps.Clone()
	clone.Value(AB).(*PointSet).Add(game.Pt(0, 0))
	assert.Equal(t, 2, ps.Value(AB).(*PointSet).Len())
	assert.True(t, clone.Remove(C))
	assert.False(t, clone.Remove(C))
	assert.True(t, ps.Has(C))

	var codes []string
	ps.Each(func(p Property) bool {
		codes = append(codes, p.Key.Code)
		return p.Key != AB
	})
	assert.Equal(t, []string{"SZ", "B", "AB"}, codes)

	if diff := cmp.Diff([]*Key{SZ, B, AB, LookupKey("XY")}, clone.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	ps.Clear()
	assert.Equal(t, 0, ps.Len())
	assert.Nil(t, ps.Value(C))
}

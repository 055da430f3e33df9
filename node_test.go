package kifu

import (
	"testing"

	"github.com/gorgonia/kifu/game"
	wq "github.com/gorgonia/kifu/game/wq"
	"github.com/gorgonia/kifu/sgf"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTree(t *testing.T, size int) *GameTree {
	conf := DefaultConfig()
	conf.Size = size
	tree, err := New(conf)
	require.NoError(t, err)
	return tree
}

func komi(f float32) sgf.Property { return sgf.Property{Key: sgf.KM, Value: sgf.Number(f)} }

func TestNew(t *testing.T) {
	tree := newTestTree(t, 9)
	root := tree.Root()
	assert.True(t, root.IsRoot())
	assert.True(t, root.IsGameRoot())
	assert.Equal(t, sgf.Number(9), root.Get(sgf.SZ))
	assert.Equal(t, 9, root.Board().Size())
	assert.Equal(t, 1, tree.Len())
	assert.False(t, tree.Modified())

	_, err := New(Config{Size: 0})
	assert.Error(t, err)
	_, err = New(Config{Size: game.MaxBoardSize + 1})
	assert.Error(t, err)
}

func TestNode_Setup(t *testing.T) {
	tree := newTestTree(t, 9)
	root := tree.Root()
	require.NoError(t, root.AddStone(game.Pt(0, 0), game.Black))
	require.NoError(t, root.AddStone(game.Pt(0, 1), game.Black))
	require.NoError(t, root.AddStone(game.Pt(1, 1), game.White))

	b := root.Board()
	assert.Equal(t, game.Black, b.At(game.Pt(0, 0)))
	assert.Equal(t, game.Black, b.At(game.Pt(0, 1)))
	assert.Equal(t, game.White, b.At(game.Pt(1, 1)))
	assert.Equal(t, game.None, b.At(game.Pt(1, 0)))
	assert.Equal(t, 3, b.Stones())
	assert.True(t, root.IsSetup())

	// the child sees the stones too
	kid := root.NewChild()
	assert.True(t, kid.Board().Eq(b))
}

func TestNode_AddStone(t *testing.T) {
	tree := newTestTree(t, 9)
	root := tree.Root()
	p := game.Pt(4, 4)
	n := root.NewChild()

	require.NoError(t, n.AddStone(p, game.Black))
	require.NoError(t, n.AddStone(p, game.White))
	_, inAB := n.Local(sgf.AB)
	assert.False(t, inAB, "a point is in at most one setup list")
	aw, _ := n.Local(sgf.AW)
	assert.True(t, aw.(*sgf.PointSet).Has(p))
	assert.Equal(t, game.White, n.Board().At(p))

	// nothing to clear before the node: no AE
	require.NoError(t, n.AddStone(p, game.None))
	assert.False(t, n.IsSetup())
	assert.Equal(t, game.None, n.Board().At(p))

	// a stone to clear: AE
	require.NoError(t, root.AddStone(p, game.Black))
	require.NoError(t, n.AddStone(p, game.None))
	ae, ok := n.Local(sgf.AE)
	require.True(t, ok)
	assert.True(t, ae.(*sgf.PointSet).Has(p))
	assert.Equal(t, game.Black, root.Board().At(p))
	assert.Equal(t, game.None, n.Board().At(p))

	// AddStone does not touch the lists it was given
	require.NoError(t, n.AddStone(game.Pt(0, 0), game.Black))
	before, _ := n.Local(sgf.AB)
	m := n.CreateMemento()
	require.NoError(t, n.AddStone(game.Pt(1, 0), game.Black))
	assert.Equal(t, 1, before.(*sgf.PointSet).Len())
	assert.Equal(t, 1, m.props.Value(sgf.AB).(*sgf.PointSet).Len())

	assert.Error(t, n.AddStone(game.Pt(9, 0), game.Black))
}

func TestNode_InvalidOperations(t *testing.T) {
	tree := newTestTree(t, 9)
	root := tree.Root()
	move := root.NewChild()
	require.NoError(t, move.Move(game.Pt(2, 2)))
	setup := root.NewChild()
	require.NoError(t, setup.AddStone(game.Pt(3, 3), game.White))
	plain := root.NewChild()

	tests := []struct {
		name string
		err  error
	}{
		{"move in root", root.Move(game.Pt(0, 0))},
		{"second move", move.Move(game.Pt(0, 0))},
		{"move in setup node", setup.Play(game.Pt(0, 0), game.Black)},
		{"move without colour", plain.Play(game.Pt(0, 0), game.None)},
		{"setup in move node", move.AddStone(game.Pt(0, 0), game.Black)},
		{"prune root", root.Prune()},
	}
	for _, tt := range tests {
		assert.Equal(t, ErrInvalidOperation, errors.Cause(tt.err), tt.name)
	}
	m, ok := move.PlayedMove()
	require.True(t, ok)
	assert.Equal(t, game.Pt(2, 2), m.Point)
	assert.False(t, plain.IsMove())
}

func TestNode_Inheritance(t *testing.T) {
	tree := newTestTree(t, 19)
	root := tree.Root()
	root.SetProperty(komi(6.5))

	a := root.NewChild()
	grandchild := a.NewChild()
	assert.Equal(t, sgf.Number(6.5), grandchild.Get(sgf.KM))
	_, local := grandchild.Local(sgf.KM)
	assert.False(t, local)
	assert.True(t, a.inherited == root.inherited, "nodes without overrides share their parent's set")

	b := root.NewChild()
	b.SetProperty(komi(0.5))
	bkid := b.NewChild()
	assert.Equal(t, sgf.Number(0.5), bkid.Get(sgf.KM))
	assert.Equal(t, sgf.Number(6.5), grandchild.Get(sgf.KM))
	assert.False(t, b.inherited == root.inherited)
	assert.True(t, bkid.inherited == b.inherited)

	// later changes up the tree reach the descendants
	root.SetProperty(komi(7.5))
	assert.Equal(t, sgf.Number(7.5), grandchild.Get(sgf.KM))
	assert.Equal(t, sgf.Number(0.5), bkid.Get(sgf.KM))

	require.True(t, b.RemoveProperty(sgf.KM))
	assert.Equal(t, sgf.Number(7.5), bkid.Get(sgf.KM))
	assert.False(t, b.RemoveProperty(sgf.KM))

	// non-inheritable properties stay where they are
	a.SetProperty(sgf.Property{Key: sgf.C, Value: sgf.Text("hi")})
	assert.Nil(t, grandchild.Get(sgf.C))
	assert.True(t, a.Contains(sgf.C))
}

func TestNode_MoveNumber(t *testing.T) {
	tree := newTestTree(t, 9)
	root := tree.Root()
	m1 := root.NewChild()
	require.NoError(t, m1.Move(game.Pt(2, 2)))
	m2 := m1.NewChild()
	require.NoError(t, m2.Move(game.Pt(3, 3)))
	comment := m2.NewChild()
	comment.SetProperty(sgf.Property{Key: sgf.C, Value: sgf.Text("no move")})
	v := m1.NewChild()
	require.NoError(t, v.Move(game.Pt(5, 5)))
	vEmpty := m1.NewChild()
	mn := comment.NewChild()
	mn.SetProperty(sgf.Property{Key: sgf.MN, Value: sgf.Number(10)})
	require.NoError(t, mn.Move(game.Pt(6, 6)))
	after := mn.NewChild()
	require.NoError(t, after.Move(game.Pt(7, 7)))

	tests := []struct {
		name string
		n    *Node
		want int
	}{
		{"root", root, 0},
		{"first move", m1, 1},
		{"second move", m2, 2},
		{"no move", comment, 2},
		{"variation move", v, 1},
		{"variation without move", vEmpty, 0},
		{"MN", mn, 10},
		{"after MN", after, 11},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.n.MoveNumber(), tt.name)
	}

	assert.Equal(t, game.Black, m1.Board().At(game.Pt(2, 2)))
	assert.Equal(t, game.White, m2.Board().At(game.Pt(3, 3)))
	assert.Equal(t, game.White, v.Board().At(game.Pt(5, 5)))
	assert.Equal(t, game.None, v.Board().At(game.Pt(3, 3)))
}

func TestNode_ToPlay(t *testing.T) {
	tree := newTestTree(t, 19)
	root := tree.Root()
	assert.Equal(t, game.Black, root.ToPlay())

	root.SetProperty(sgf.Property{Key: sgf.HA, Value: sgf.Number(2)})
	assert.Equal(t, game.White, root.ToPlay())
	first := root.NewChild()
	require.NoError(t, first.Move(game.Pt(3, 3)))
	m, _ := first.PlayedMove()
	assert.Equal(t, game.White, m.Colour)
	assert.Equal(t, game.Black, first.ToPlay())

	pl := first.NewChild()
	pl.SetProperty(sgf.Property{Key: sgf.PL, Value: sgf.Text("W")})
	assert.Equal(t, game.White, pl.ToPlay())
	next := pl.NewChild()
	require.NoError(t, next.Move(game.Pt(4, 4)))
	m, _ = next.PlayedMove()
	assert.Equal(t, game.White, m.Colour)
}

func TestNode_Markup(t *testing.T) {
	tree := newTestTree(t, 9)
	root := tree.Root()
	m1 := root.NewChild()
	require.NoError(t, m1.Move(game.Pt(2, 2)))
	m1.SetProperty(sgf.Property{Key: sgf.TR, Value: sgf.NewPointSet(game.Pt(5, 5))})
	m2 := m1.NewChild()
	require.NoError(t, m2.Move(game.Pt(3, 3)))

	assert.Equal(t, wq.Triangle, m1.Goban().MarkupAt(game.Pt(5, 5)))
	assert.True(t, m2.Goban().MarkupAt(game.Pt(5, 5)).IsZero(), "annotations belong to their node")
	assert.Equal(t, 2, m2.Goban().MarkupAt(game.Pt(3, 3)).Number)
	assert.Equal(t, 1, m2.Goban().MarkupAt(game.Pt(2, 2)).Number)

	// a figure starts a fresh diagram
	fig := m2.NewChild()
	fig.SetDiagram(true)
	require.NoError(t, fig.Move(game.Pt(4, 4)))
	assert.True(t, fig.IsDiagram())
	assert.Equal(t, wq.StoneMarkup(game.Black), fig.Goban().MarkupAt(game.Pt(2, 2)))
	assert.Equal(t, 3, fig.Goban().MarkupAt(game.Pt(4, 4)).Number)
	fig.SetDiagram(false)
	assert.False(t, fig.IsDiagram())
	assert.Equal(t, 1, fig.Goban().MarkupAt(game.Pt(2, 2)).Number)

	root.SetProperty(sgf.Property{Key: sgf.FG, Value: sgf.Void{}})
	assert.False(t, root.IsDiagram())
}

func TestTree_Structure(t *testing.T) {
	tree := newTestTree(t, 9)
	root := tree.Root()
	var changes int
	tree.OnChange(func(*Node) { changes++ })

	m1 := root.NewChild()
	m2 := m1.NewChild()
	v := m1.NewChild()
	require.NoError(t, m1.Move(game.Pt(2, 2)))
	require.NoError(t, m2.Move(game.Pt(3, 3)))
	require.NoError(t, v.Move(game.Pt(4, 4)))
	assert.True(t, tree.Modified())
	assert.Equal(t, 6, changes)
	tree.SetModified(false)

	assert.Equal(t, 4, tree.Len())
	assert.Equal(t, []*Node{m2, v}, tree.Leaves())
	assert.Equal(t, []*Node{root, m1, m2}, tree.MainLine())
	assert.Equal(t, root, tree.NodeAt(0))
	assert.Equal(t, m2, tree.NodeAt(2))
	assert.Nil(t, tree.NodeAt(5))
	assert.Equal(t, 3, root.Depth())
	assert.Equal(t, 1, v.ChildIndex())
	assert.Equal(t, 2, v.Level())
	assert.True(t, m2.IsMainLine())
	assert.False(t, v.IsMainLine())

	require.NoError(t, m2.Prune())
	assert.Equal(t, Pruned, m2.Status())
	assert.True(t, v.IsMainLine())
	assert.Equal(t, 2, v.MoveNumber(), "the variation now continues the line")
	assert.Equal(t, 3, tree.Len())
	assert.Equal(t, 3, root.Depth())
	require.NoError(t, v.Prune())
	assert.Equal(t, 2, root.Depth())
	assert.Equal(t, ErrInvalidOperation, errors.Cause(m2.Prune()))
	assert.True(t, tree.Modified())

	// pruned nodes cannot come back by Add
	assert.Equal(t, ErrInvalidOperation, errors.Cause(root.Add(m2)))
}

func TestNode_Add(t *testing.T) {
	tree := newTestTree(t, 9)
	root := tree.Root()
	a := tree.NewNode()
	b := tree.NewNode()
	require.NoError(t, a.Add(b))
	assert.Equal(t, ErrInvalidOperation, errors.Cause(b.Add(a)), "cycles")
	assert.Equal(t, ErrInvalidOperation, errors.Cause(root.Add(b)), "b already has a parent")

	require.NoError(t, root.Add(a))
	assert.Equal(t, 3, tree.Len())
	assert.Equal(t, 3, root.Depth())
	assert.Equal(t, sgf.Number(9), b.Get(sgf.SZ))

	other := newTestTree(t, 9)
	assert.Equal(t, ErrForeignNode, errors.Cause(root.Add(other.NewNode())))
}

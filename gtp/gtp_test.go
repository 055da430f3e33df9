package gtp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gorgonia/kifu"
	"github.com/gorgonia/kifu/game"
	"github.com/gorgonia/kifu/sgf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, size int) *Engine {
	conf := kifu.DefaultConfig()
	conf.Size = size
	e, err := New(conf, "xx", "1", nil, nil)
	require.NoError(t, err)
	return e
}

func Test_General(t *testing.T) {
	assert := assert.New(t)
	e := newEngine(t, 19)
	var x string

	ch, ret := e.Start()
	ch <- "version"
	x = <-ret
	assert.Equal("= 1\n\n", x)

	ch <- "known_command hello"
	x = <-ret
	assert.Equal("= false\n\n", x)

	ch <- "known_command name"
	x = <-ret
	assert.Equal("= true\n\n", x)

	ch <- "completelyUnheardOfCommand xxx"
	x = <-ret
	assert.Equal("? Unknown command \"completelyunheardofcommand\"\n\n", x)

	ch <- "7 protocol_version"
	x = <-ret
	assert.Equal("= 7 2\n\n", x)

	ch <- "quit"
	x = <-ret
	assert.Equal("= \n\n", x)
	_, open := <-ret
	assert.False(open)
}

func TestVertex(t *testing.T) {
	tests := []struct {
		in   string
		want game.Point
	}{
		{"a1", game.Pt(0, 8)},
		{"j9", game.Pt(8, 0)},
		{"d4", game.Pt(3, 5)},
		{"pass", game.Pass},
	}
	for _, tt := range tests {
		p, err := parseVertex(tt.in, 9)
		if assert.NoError(t, err, tt.in) {
			assert.Equal(t, tt.want, p, tt.in)
			assert.Equal(t, tt.in, strings.ToLower(vertexOf(p, 9)))
		}
	}
	for _, bad := range []string{"i5", "a0", "a10", "z1", "x"} {
		_, err := parseVertex(bad, 9)
		assert.Error(t, err, bad)
	}
	p, err := parseVertex("D4", 9)
	require.NoError(t, err)
	assert.Equal(t, game.Pt(3, 5), p)
}

func TestColour(t *testing.T) {
	tests := []struct {
		in   string
		want game.Colour
	}{
		{"b", game.Black},
		{"B", game.Black},
		{"Black", game.Black},
		{"w", game.White},
		{"WHITE", game.White},
	}
	for _, tt := range tests {
		c, err := parseColour(tt.in)
		if assert.NoError(t, err, tt.in) {
			assert.Equal(t, tt.want, c, tt.in)
		}
	}
	_, err := parseColour("red")
	assert.Error(t, err)
}

const session = `boardsize 9
komi 6.5
play black c7
play white c6
play white b7
play white d7 # one liberty left
play white c8
last_move
showboard
play black c7
undo
undo
last_move
play black e5
quit
play black a1
`

func TestEngine_Run(t *testing.T) {
	e := newEngine(t, 19)
	var out bytes.Buffer
	require.NoError(t, e.Run(strings.NewReader(session), &out))

	replies := strings.Split(strings.TrimSuffix(out.String(), "\n\n"), "\n\n")
	require.Len(t, replies, 15)
	for i, r := range replies {
		assert.True(t, strings.HasPrefix(r, "="), "reply %d: %q", i, r)
	}
	assert.Equal(t, "= White C8", replies[7])
	assert.Equal(t, "= \n⎢ · · · · · · · · · ⎥\n"+
		"⎢ · · O · · · · · · ⎥\n"+
		"⎢ · O · O · · · · · ⎥\n"+
		"⎢ · · O · · · · · · ⎥\n"+
		"⎢ · · · · · · · · · ⎥\n"+
		"⎢ · · · · · · · · · ⎥\n"+
		"⎢ · · · · · · · · · ⎥\n"+
		"⎢ · · · · · · · · · ⎥\n"+
		"⎢ · · · · · · · · · ⎥", replies[8])
	// c7 is a suicide, allowed by the default rules
	assert.Equal(t, "= ", replies[9])
	assert.Equal(t, "= ", replies[10])
	assert.Equal(t, "= White D7", replies[12])

	// the record holds what was played, with the undone moves gone
	tree := e.Tree()
	assert.Equal(t, sgf.Number(6.5), tree.Root().Get(sgf.KM))
	line := tree.MainLine()
	require.Len(t, line, 6)
	assert.Equal(t, 5, line[5].MoveNumber())
	m, _ := line[5].PlayedMove()
	assert.Equal(t, game.PlayerMove{Colour: game.Black, Point: game.Pt(4, 4)}, m)
	assert.Equal(t, game.White, line[4].Board().At(game.Pt(3, 2)))
	assert.Equal(t, game.None, line[4].Board().At(game.Pt(2, 1)))
}

func TestEngine_IllegalMoves(t *testing.T) {
	conf := kifu.DefaultConfig()
	conf.Size = 5
	conf.SelfCapture = false
	e, err := New(conf, "xx", "1", nil, nil)
	require.NoError(t, err)

	ch, ret := e.Start()
	defer close(ch)
	for _, cmd := range []string{"play white a2", "play white b1"} {
		ch <- cmd
		assert.Equal(t, "= \n\n", <-ret, cmd)
	}
	for _, cmd := range []string{"play black a1", "play white a2", "play black z9", "play red a1", "play black"} {
		ch <- cmd
		assert.True(t, strings.HasPrefix(<-ret, "?"), cmd)
	}

	ch <- "undo"
	assert.Equal(t, "= \n\n", <-ret)
	ch <- "undo"
	assert.Equal(t, "= \n\n", <-ret)
	ch <- "undo"
	assert.Equal(t, "? cannot undo\n\n", <-ret)
	assert.True(t, e.Current().IsRoot())
	assert.Equal(t, 1, e.Tree().Len())
}

func TestEngine_ClearBoard(t *testing.T) {
	e := newEngine(t, 9)
	ch, ret := e.Start()
	defer close(ch)
	for _, cmd := range []string{"play black e5", "play white c3", "hash", "clear_board", "hash", "symmetries"} {
		ch <- cmd
		assert.True(t, strings.HasPrefix(<-ret, "="), cmd)
	}
	assert.Equal(t, 1, e.Tree().Len())

	ch <- "undo"
	<-ret
	assert.Equal(t, 3, e.Tree().Len())
	assert.Equal(t, 2, e.Current().MoveNumber())
}

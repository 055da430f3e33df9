package 围碁

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/gorgonia/kifu/game"
	"github.com/stretchr/testify/assert"
)

func TestGoban_MoveNumbers(t *testing.T) {
	g := NewGoban(9)
	g.Move(game.Pt(2, 2), Black)
	g.Move(game.Pt(6, 6), White)
	g.MoveNumbered(game.Pt(2, 6), Black, 10)
	g.Move(game.Pt(6, 2), White)

	assert.Equal(t, MoveMarkup(Black, 1), g.MarkupAt(game.Pt(2, 2)))
	assert.Equal(t, MoveMarkup(White, 2), g.MarkupAt(game.Pt(6, 6)))
	assert.Equal(t, MoveMarkup(Black, 10), g.MarkupAt(game.Pt(2, 6)))
	assert.Equal(t, MoveMarkup(White, 11), g.MarkupAt(game.Pt(6, 2)))
	assert.Equal(t, 11, g.MoveNumber())

	// ignored moves do not advance the counter
	g.Move(game.Pt(2, 2), Black)
	g.Move(game.Pt(9, 9), Black)
	assert.Equal(t, 11, g.MoveNumber())
	t.Logf("\n%v", g)
}

func TestGoban_SetMarkup(t *testing.T) {
	p := game.Pt(3, 3)
	tests := []struct {
		name      string
		existing  Markup
		incoming  Markup
		want      Markup
		conflicts []Conflict
	}{
		{"empty cell", Markup{}, MoveMarkup(Black, 3), MoveMarkup(Black, 3), nil},
		{"clearing", MoveMarkup(Black, 3), Markup{}, Markup{}, nil},
		{"stone then own move", StoneMarkup(White), MoveMarkup(White, 7), MoveMarkup(White, 7), nil},
		{"stone then own stone", StoneMarkup(White), StoneMarkup(White), StoneMarkup(White), nil},
		{"identical move", MoveMarkup(Black, 3), MoveMarkup(Black, 3), MoveMarkup(Black, 3), nil},
		{
			"stone then other colour",
			StoneMarkup(White), MoveMarkup(Black, 12),
			ConflictMarkup(White, "a"),
			[]Conflict{{Point: p, Existing: ConflictMarkup(White, "a"), Incoming: MoveMarkup(Black, 12)}},
		},
		{
			"move then move",
			MoveMarkup(Black, 5), MoveMarkup(Black, 12),
			MoveMarkup(Black, 5),
			[]Conflict{{Point: p, Existing: MoveMarkup(Black, 5), Incoming: MoveMarkup(Black, 12)}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGoban(9)
			g.marks[g.ltoi(p)] = tt.existing
			g.SetMarkup(p, tt.incoming)
			assert.Equal(t, tt.want, g.MarkupAt(p))
			if diff := cmp.Diff(tt.conflicts, g.Conflicts(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("conflicts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGoban_ConflictLetters(t *testing.T) {
	// a ko: stones captured and played again on the same points within one diagram
	g := NewGoban(9)
	g.PutStone(game.Pt(1, 1), White)
	g.PutStone(game.Pt(5, 5), White)

	g.Board.PutStone(game.Pt(1, 1), None)
	g.Board.PutStone(game.Pt(5, 5), None)
	g.Move(game.Pt(1, 1), Black)
	g.Move(game.Pt(5, 5), Black)
	g.Move(game.Pt(1, 1), Black) // occupied, ignored

	assert.Equal(t, ConflictMarkup(White, "a"), g.MarkupAt(game.Pt(1, 1)))
	assert.Equal(t, ConflictMarkup(White, "b"), g.MarkupAt(game.Pt(5, 5)))

	conflicts := g.Conflicts()
	if assert.Len(t, conflicts, 2) {
		assert.Equal(t, "1 at a", fmt.Sprintf("%v", conflicts[0]))
		assert.Equal(t, "2 at b", fmt.Sprintf("%v", conflicts[1]))
	}
}

func TestGoban_ConflictOrder(t *testing.T) {
	g := NewGoban(9)
	for i, n := range []int{12, 3, 40} {
		p := game.Pt(i, 0)
		g.marks[g.ltoi(p)] = MoveMarkup(Black, 1)
		g.SetMarkup(p, MoveMarkup(White, n))
	}
	g.marks[g.ltoi(game.Pt(0, 1))] = MoveMarkup(Black, 1)
	g.SetMarkup(game.Pt(0, 1), TextMarkup("A"))

	var got []string
	for _, c := range g.Conflicts() {
		got = append(got, c.Incoming.String())
	}
	assert.Equal(t, []string{"3", "12", "40", "A"}, got)
}

func TestGoban_ResetMarkup(t *testing.T) {
	g := NewGoban(9)
	g.Move(game.Pt(2, 2), Black)
	g.Move(game.Pt(3, 3), White)
	g.Annotate(game.Pt(4, 4), Triangle)
	g.marks[g.ltoi(game.Pt(2, 2))] = MoveMarkup(Black, 1)
	g.SetMarkup(game.Pt(2, 2), MoveMarkup(White, 9))

	g.ResetMarkup()
	once := g.Clone()
	onceConflicts := g.Conflicts()
	g.ResetMarkup()

	assert.Equal(t, once.marks, g.marks)
	assert.Equal(t, onceConflicts, g.Conflicts())
	assert.Empty(t, g.Conflicts())
	assert.Equal(t, StoneMarkup(Black), g.MarkupAt(game.Pt(2, 2)))
	assert.Equal(t, StoneMarkup(White), g.MarkupAt(game.Pt(3, 3)))
	assert.Equal(t, Markup{}, g.MarkupAt(game.Pt(4, 4)))
}

func TestGoban_Annotations(t *testing.T) {
	g := NewGoban(9)
	g.Move(game.Pt(2, 2), Black)
	g.Annotate(game.Pt(2, 2), Square)
	g.Annotate(game.Pt(0, 0), TextMarkup("A"))
	assert.Equal(t, Square, g.MarkupAt(game.Pt(2, 2)))
	assert.Equal(t, TextMarkup("A"), g.MarkupAt(game.Pt(0, 0)))

	c := g.Clone()
	assert.Equal(t, MoveMarkup(Black, 1), c.MarkupAt(game.Pt(2, 2)))
	assert.Equal(t, Markup{}, c.MarkupAt(game.Pt(0, 0)))
	assert.Equal(t, 1, c.MoveNumber())

	g.Annotate(game.Pt(2, 2), Markup{})
	assert.Equal(t, MoveMarkup(Black, 1), g.MarkupAt(game.Pt(2, 2)))
}

func TestGoban_PutStone(t *testing.T) {
	g := NewGoban(5)
	g.PutStone(game.Pt(1, 1), Black)
	g.PutStone(game.Pt(2, 2), White)
	g.PutStone(game.Pt(2, 2), None)
	assert.Equal(t, StoneMarkup(Black), g.MarkupAt(game.Pt(1, 1)))
	assert.Equal(t, Markup{}, g.MarkupAt(game.Pt(2, 2)))
	assert.Equal(t, 1, g.Stones())
	assert.Equal(t, 0, g.MoveNumber())
}

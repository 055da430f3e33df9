package gtp

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gorgonia/kifu/game"
	"github.com/gorgonia/kifu/sgf"
	"github.com/pkg/errors"
)

type Command interface {
	Do(id int, args []string, e *Engine) (int, string, error)
}

type stdlib func(e *Engine) string

type stdlib2 func(e *Engine, args []string) (string, error)

func (f stdlib) Do(id int, args []string, e *Engine) (int, string, error) {
	str := f(e)
	return id, str, nil
}

func (f stdlib2) Do(id int, args []string, e *Engine) (int, string, error) {
	str, err := f(e, args)
	return id, str, err
}

func protocolVersion(e *Engine) string { return "2" }
func name(e *Engine) string            { return e.name }
func version(e *Engine) string         { return e.version }

func listCommands(e *Engine) string {
	cmds := make([]string, 0, len(e.known))
	for c := range e.known {
		cmds = append(cmds, c)
	}
	sort.Strings(cmds)
	var buf bytes.Buffer
	for i, c := range cmds {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(c)
	}
	return buf.String()
}

func quit(e *Engine) string { e.done = true; return "" }
func showboard(e *Engine) string {
	return strings.TrimSuffix(fmt.Sprintf("\n%s", e.current.Goban()), "\n")
}

func hash(e *Engine) string {
	return fmt.Sprintf("%016x", uint64(e.current.Board().CanonicalHash()))
}

func lastMove(e *Engine) string {
	m, ok := e.current.PlayedMove()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%v %v", m.Colour, vertexOf(m.Point, e.current.Board().Size()))
}

func symmetries(e *Engine) string { return fmt.Sprintf("%v", e.current.Board().SymmetryGroup()) }

func clearBoard(e *Engine, args []string) (string, error) {
	e.checkpoint()
	root := e.tree.Root()
	for _, kid := range root.Children() {
		if err := kid.Prune(); err != nil {
			return "", err
		}
	}
	e.current = root
	return "", nil
}

func undo(e *Engine, args []string) (string, error) { return "", e.rollback() }

func knownCommand(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"known_command\"")
	}
	if _, ok := e.known[args[0]]; ok {
		return "true", nil
	}
	return "false", nil
}

func boardSize(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"boardsize\"")
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse first argument of boardsize")
	}
	if size < 1 || size > maxSize {
		return "", errors.New("unacceptable size")
	}
	if err := e.reset(size); err != nil {
		return "", errors.WithMessage(err, "unacceptable size")
	}
	return "", nil
}

func komi(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"komi\"")
	}

	komi, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse komi argument")
	}
	e.checkpoint()
	e.tree.Games()[0].SetProperty(sgf.Property{Key: sgf.KM, Value: sgf.Number(komi)})
	return "", nil
}

func play(e *Engine, args []string) (string, error) {
	if len(args) < 2 {
		return "", errors.New("Not enough arguments for \"play\"")
	}
	c, err := parseColour(args[0])
	if err != nil {
		return "", err
	}
	size := e.current.Board().Size()
	p, err := parseVertex(args[1], size)
	if err != nil {
		return "", err
	}
	if !p.IsPass() {
		b := e.current.Board().Clone()
		if _, ok := b.Play(p, c); !ok {
			return "", errors.New("illegal move")
		}
	}

	e.checkpoint()
	child := e.current.NewChild()
	if err := child.Play(p, c); err != nil {
		if rerr := e.rollback(); rerr != nil {
			return "", errors.Wrapf(rerr, "rolling back after %v", err)
		}
		return "", err
	}
	e.current = child
	return "", nil
}

func StandardLib() map[string]Command {
	return map[string]Command{
		"protocol_version": stdlib(protocolVersion),
		"name":             stdlib(name),
		"version":          stdlib(version),
		"list_commands":    stdlib(listCommands),
		"quit":             stdlib(quit),
		"showboard":        stdlib(showboard),
		"hash":             stdlib(hash),
		"symmetries":       stdlib(symmetries),
		"last_move":        stdlib(lastMove),

		"known_command": stdlib2(knownCommand),
		"boardsize":     stdlib2(boardSize),
		"clear_board":   stdlib2(clearBoard),
		"komi":          stdlib2(komi),
		"play":          stdlib2(play),
		"undo":          stdlib2(undo),
	}
}

// colour and vertex encoding

const columns = "abcdefghjklmnopqrstuvwxyz" // no i

const maxSize = len(columns)

func parseColour(s string) (game.Colour, error) {
	switch strings.ToLower(s) {
	case "b", "black":
		return game.Black, nil
	case "w", "white":
		return game.White, nil
	}
	return game.None, errors.Errorf("invalid color %q", s)
}

// parseVertex reads a GTP vertex such as d4: a column letter, then the row counted
// from the bottom.
func parseVertex(s string, size int) (game.Point, error) {
	s = strings.ToLower(s)
	if s == "pass" {
		return game.Pass, nil
	}
	if len(s) < 2 {
		return game.Pass, errors.Errorf("invalid vertex %q", s)
	}
	x := bytes.IndexByte([]byte(columns), s[0])
	row, err := strconv.Atoi(s[1:])
	if x < 0 || err != nil {
		return game.Pass, errors.Errorf("invalid vertex %q", s)
	}
	p := game.Pt(x, size-row)
	if !p.InRange(size) {
		return game.Pass, errors.Errorf("invalid vertex %q: off the board", s)
	}
	return p, nil
}

func vertexOf(p game.Point, size int) string {
	if p.IsPass() {
		return "pass"
	}
	return fmt.Sprintf("%c%d", columns[p.X]-'a'+'A', size-int(p.Y))
}

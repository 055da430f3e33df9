package sgf

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/gorgonia/kifu/game"
	"github.com/pkg/errors"
)

// Reason is how a game was decided.
type Reason byte

const (
	Unknown Reason = iota // RE[?]
	Score                 // RE[B+3.5], RE[W+] when the margin is not known
	Resign
	Time
	Forfeit
	Draw
	NoResult // RE[Void]
)

// Result is the parsed value of RE.
type Result struct {
	Winner game.Colour
	Reason Reason
	Margin float32 // only for Score; NaN if the record does not say
}

// ParseResult parses the text of a result. Reasons may be written short (B+R, W+T,
// B+F) or long (B+Resign, W+Time, B+Forfeit); draws as 0 or Draw.
func ParseResult(s string) (Result, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "?":
		return Result{Reason: Unknown}, nil
	case "0", "draw", "jigo":
		return Result{Reason: Draw}, nil
	case "void":
		return Result{Reason: NoResult}, nil
	}

	if len(s) < 2 || s[1] != '+' {
		return Result{}, errors.Errorf("Cannot parse result %q", s)
	}
	var r Result
	switch s[0] {
	case 'B', 'b':
		r.Winner = game.Black
	case 'W', 'w':
		r.Winner = game.White
	default:
		return Result{}, errors.Errorf("Cannot parse result %q: unknown winner", s)
	}

	switch how := s[2:]; strings.ToLower(how) {
	case "":
		r.Reason, r.Margin = Score, math32.NaN()
	case "r", "resign":
		r.Reason = Resign
	case "t", "time":
		r.Reason = Time
	case "f", "forfeit":
		r.Reason = Forfeit
	default:
		n, err := parseNumber(how)
		if err != nil {
			return Result{}, errors.WithMessage(err, "Cannot parse result margin")
		}
		if n < 0 {
			return Result{}, errors.Errorf("Cannot parse result %q: negative margin", s)
		}
		r.Reason, r.Margin = Score, float32(n)
	}
	return r, nil
}

// HasMargin returns true if the result is a win on points with a known margin.
func (r Result) HasMargin() bool { return r.Reason == Score && !math32.IsNaN(r.Margin) }

func (r Result) encode() []string { return []string{r.String()} }
func (r Result) Clone() Value     { return r }

func (r Result) String() string {
	switch r.Reason {
	case Unknown:
		return "?"
	case Draw:
		return "0"
	case NoResult:
		return "Void"
	}
	prefix := r.Winner.Letter() + "+"
	switch r.Reason {
	case Resign:
		return prefix + "R"
	case Time:
		return prefix + "T"
	case Forfeit:
		return prefix + "F"
	}
	if !r.HasMargin() {
		return prefix
	}
	return prefix + Number(r.Margin).String()
}

// Format implements fmt.Formatter. %v spells the result out.
func (r Result) Format(s fmt.State, c rune) {
	if c != 'v' {
		fmt.Fprint(s, r.String())
		return
	}
	switch r.Reason {
	case Unknown:
		fmt.Fprint(s, "unknown")
	case Draw:
		fmt.Fprint(s, "draw")
	case NoResult:
		fmt.Fprint(s, "no result")
	case Resign:
		fmt.Fprintf(s, "%v wins by resignation", r.Winner)
	case Time:
		fmt.Fprintf(s, "%v wins on time", r.Winner)
	case Forfeit:
		fmt.Fprintf(s, "%v wins by forfeit", r.Winner)
	default:
		if r.HasMargin() {
			fmt.Fprintf(s, "%v wins by %v", r.Winner, Number(r.Margin))
			return
		}
		fmt.Fprintf(s, "%v wins", r.Winner)
	}
}

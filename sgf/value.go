package sgf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/gorgonia/kifu/game"
	"github.com/pkg/errors"
)

// Value is the value of a property. encode returns the escaped content of each
// bracketed value the property is written with.
type Value interface {
	encode() []string
	Clone() Value
}

// Void is the empty value of flag properties such as DO or KO.
type Void struct{}

func (Void) encode() []string { return []string{""} }
func (v Void) Clone() Value   { return v }
func (Void) String() string   { return "" }

// PointValue is a single point. Pass moves carry game.Pass.
type PointValue game.Point

func (v PointValue) encode() []string  { return []string{game.Point(v).String()} }
func (v PointValue) Clone() Value      { return v }
func (v PointValue) Point() game.Point { return game.Point(v) }
func (v PointValue) String() string    { return game.Point(v).String() }

// Text is free text: comments, names, untyped values.
type Text string

func (v Text) encode() []string { return []string{escape(string(v))} }
func (v Text) Clone() Value     { return v }
func (v Text) String() string   { return string(v) }

// Number is a real number. Integral properties such as SZ and HA use Int.
type Number float32

func (v Number) encode() []string { return []string{v.String()} }
func (v Number) Clone() Value     { return v }

// Int returns the number truncated towards zero.
func (v Number) Int() int { return int(math32.Trunc(float32(v))) }

// IsInt returns true if the number has no fractional part.
func (v Number) IsInt() bool { return math32.Trunc(float32(v)) == float32(v) }

func (v Number) String() string { return strconv.FormatFloat(float64(v), 'f', -1, 32) }

func parseNumber(s string) (Number, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, errors.Wrapf(err, "Cannot parse number %q", s)
	}
	f32 := float32(f)
	if math32.IsNaN(f32) || math32.IsInf(f32, 0) {
		return 0, errors.Errorf("Cannot parse number %q: not finite", s)
	}
	return Number(f32), nil
}

// Label is a point with text, as used by LB.
type Label struct {
	game.Point
	Text string
}

func (v Label) encode() []string { return []string{v.Point.String() + ":" + escapeCompose(v.Text)} }
func (v Label) Clone() Value     { return v }
func (v Label) String() string   { return fmt.Sprintf("%v:%s", v.Point, v.Text) }

// ValueList is an ordered list of values, used when a key carries several values.
type ValueList []Value

func (v ValueList) encode() []string {
	var retVal []string
	for _, e := range v {
		retVal = append(retVal, e.encode()...)
	}
	return retVal
}

func (v ValueList) Clone() Value {
	retVal := make(ValueList, len(v))
	for i, e := range v {
		retVal[i] = e.Clone()
	}
	return retVal
}

// Labels returns the Label elements of the list.
func (v ValueList) Labels() []Label {
	var retVal []Label
	for _, e := range v {
		if l, ok := e.(Label); ok {
			retVal = append(retVal, l)
		}
	}
	return retVal
}

// ParseValue reads the raw (still escaped) bracketed values of a property as the
// type the key expects.
func ParseValue(k *Key, raws []string) (Value, error) {
	if len(raws) == 0 {
		return nil, errors.Errorf("%v has no value", k)
	}
	switch k.Type {
	case TypeVoid:
		for _, r := range raws {
			if strings.TrimSpace(r) != "" {
				return nil, errors.Errorf("%v takes no value, got %q", k, r)
			}
		}
		return Void{}, nil
	case TypeMove:
		if len(raws) != 1 {
			return nil, errors.Errorf("%v takes one point, got %d values", k, len(raws))
		}
		p, err := game.ParsePoint(strings.TrimSpace(raws[0]))
		if err != nil {
			return nil, errors.WithMessage(err, k.Code)
		}
		return PointValue(p), nil
	case TypePointList:
		ps := NewPointSet()
		for _, r := range raws {
			if err := ps.addEncoded(strings.TrimSpace(r)); err != nil {
				return nil, errors.WithMessage(err, k.Code)
			}
		}
		return ps, nil
	case TypeNumber:
		if len(raws) != 1 {
			return nil, errors.Errorf("%v takes one number, got %d values", k, len(raws))
		}
		n, err := parseNumber(raws[0])
		if err != nil {
			return nil, errors.WithMessage(err, k.Code)
		}
		return n, nil
	case TypeResult:
		if len(raws) != 1 {
			return nil, errors.Errorf("%v takes one result, got %d values", k, len(raws))
		}
		r, err := ParseResult(unescape(raws[0]))
		if err != nil {
			return nil, errors.WithMessage(err, k.Code)
		}
		return r, nil
	case TypeLabelList:
		retVal := make(ValueList, 0, len(raws))
		for _, r := range raws {
			pt, text, ok := splitCompose(r)
			if !ok {
				return nil, errors.Errorf("%v: label %q has no text", k, r)
			}
			p, err := game.ParsePoint(strings.TrimSpace(pt))
			if err != nil || p.IsPass() {
				return nil, errors.Errorf("%v: label %q has no point", k, r)
			}
			retVal = append(retVal, Label{Point: p, Text: unescape(text)})
		}
		return retVal, nil
	case TypeColour:
		if len(raws) != 1 {
			return nil, errors.Errorf("%v takes one colour, got %d values", k, len(raws))
		}
		switch c := strings.TrimSpace(raws[0]); c {
		case "B", "W":
			return Text(c), nil
		default:
			return nil, errors.Errorf("%v: %q is not a colour", k, c)
		}
	case TypeFigure:
		if len(raws) != 1 {
			return nil, errors.Errorf("%v takes one value, got %d values", k, len(raws))
		}
		if raws[0] == "" {
			return Void{}, nil
		}
		return Text(unescape(raws[0])), nil
	}
	return textValue(raws), nil
}

// textValue reads the raw values as text, the fallback for untyped keys.
func textValue(raws []string) Value {
	if len(raws) == 1 {
		return Text(unescape(raws[0]))
	}
	retVal := make(ValueList, len(raws))
	for i, r := range raws {
		retVal[i] = Text(unescape(r))
	}
	return retVal
}

// ColourOf reads a PL style value.
func ColourOf(v Value) game.Colour {
	t, _ := v.(Text)
	switch t {
	case "B":
		return game.Black
	case "W":
		return game.White
	}
	return game.None
}

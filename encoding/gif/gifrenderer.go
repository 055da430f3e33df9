// Package gif renders a line of play as an animated GIF, one frame per node.
package gif

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/gorgonia/kifu"
	"github.com/gorgonia/kifu/sgf"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

var regular *truetype.Font

const (
	dpi             = 144.0
	fontsize        = 12.0
	lineheight      = 1.2
	dummyLongString = `Move 1000: White pass`

	delay     = 100 // hundredths of a second
	lastDelay = 300
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

var globPalette = color.Palette{
	color.Gray{0},
	color.Gray{253},
}

// Encoder draws the diagram of every node it is given into a frame of a GIF.
type Encoder struct {
	H, W int
	font.Drawer

	out *gif.GIF
	io.Writer
	face font.Face

	maxH, maxW  int // maxHeight and maxWidth
	padH, padW  int // padding so everything don't start at the topleft
	initialized bool
}

// NewGifEncoder with height and width
func NewGifEncoder(h, w int) *Encoder {
	return &Encoder{
		H:    -1,
		W:    -1,
		maxH: h,
		maxW: w,
		padH: 10,
		padW: 10,

		Drawer: font.Drawer{
			Src: image.Black,
		},
		out: &gif.GIF{LoopCount: -1},
	}
}

// Len returns the number of frames so far.
func (enc *Encoder) Len() int { return len(enc.out.Image) }

// Encode adds a frame for the node: its diagram, the move played and the comment.
func (enc *Encoder) Encode(n *kifu.Node) error {
	if n == nil {
		return errors.New("Cannot encode a nil node")
	}
	repr := strings.TrimSuffix(fmt.Sprintf("%v", n.Goban()), "\n")
	lines := strings.Split(repr, "\n")

	if !enc.initialized {
		enc.face = truetype.NewFace(regular, &truetype.Options{
			Size:    fontsize,
			DPI:     dpi,
			Hinting: font.HintingFull,
		})
		enc.Drawer.Src = image.Black
		enc.Drawer.Face = enc.face

		maxW := maxInt(font.MeasureString(enc.Face, lines[0]).Ceil(), font.MeasureString(enc.Face, dummyLongString).Ceil())
		dy := int(math.Ceil(fontsize * lineheight * dpi / 72))
		w := maxW + 2*enc.padW
		h := (len(lines)+3)*dy + 2*enc.padH // + 3 for the caption, the comment and the title

		w = minInt(w, enc.maxW)
		h = minInt(h, enc.maxH)

		if w == enc.maxW {
			enc.padW = 0
		}
		if h == enc.maxH {
			enc.padH = 0
		}

		enc.H = h
		enc.W = w
		enc.initialized = true
	}

	im := image.NewPaletted(image.Rect(0, 0, enc.W, enc.H), globPalette)
	draw.Draw(im, im.Bounds(), image.White, image.Point{}, draw.Src)
	dy := int(math.Ceil(fontsize * lineheight * dpi / 72))
	enc.Dst = im

	y := dy
	enc.line(y, title(n))
	y += dy
	for _, s := range lines {
		enc.line(y, s)
		y += dy
	}
	enc.line(y, caption(n))
	y += dy
	if c, ok := n.Get(sgf.C).(sgf.Text); ok {
		enc.line(y, strings.SplitN(string(c), "\n", 2)[0])
	}

	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, delay)
	return nil
}

// EncodeLine adds a frame for each node. The last one stays up longer.
func (enc *Encoder) EncodeLine(nodes []*kifu.Node) error {
	for _, n := range nodes {
		if err := enc.Encode(n); err != nil {
			return err
		}
	}
	if l := len(enc.out.Delay); l > 0 {
		enc.out.Delay[l-1] = lastDelay
	}
	return nil
}

// Flush writes the gif into the writer
func (enc *Encoder) Flush() error {
	if enc.Writer == nil {
		return errors.New("No writer to flush to")
	}
	return errors.WithStack(gif.EncodeAll(enc.Writer, enc.out))
}

func (enc *Encoder) line(y int, s string) {
	enc.Dot = fixed.P(enc.padW, y)
	enc.DrawString(s)
}

func title(n *kifu.Node) string {
	pb, _ := n.Get(sgf.PB).(sgf.Text)
	pw, _ := n.Get(sgf.PW).(sgf.Text)
	if pb == "" && pw == "" {
		return ""
	}
	return fmt.Sprintf("%s (B) - %s (W)", pb, pw)
}

func caption(n *kifu.Node) string {
	m, ok := n.PlayedMove()
	if !ok {
		return fmt.Sprintf("Move %d", n.MoveNumber())
	}
	p := m.Point.String()
	if m.Point.IsPass() {
		p = "pass"
	}
	return fmt.Sprintf("Move %d: %v %s", n.MoveNumber(), m.Colour, p)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

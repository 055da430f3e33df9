package kifu

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"

	"github.com/awalterschulze/gographviz"
	"github.com/gorgonia/kifu/sgf"
)

type dotNode struct {
	*Node
}

func (d dotNode) Move() string {
	m, ok := d.PlayedMove()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%v", m)
}

func (d dotNode) Comment() string {
	if c, ok := d.Local(sgf.C); ok {
		if t, ok := c.(sgf.Text); ok {
			return string(t)
		}
	}
	return ""
}

// ToDot returns the tree in the graphviz dot format, each node labelled with its
// move and move number.
func (t *GameTree) ToDot() string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	if err := g.SetDir(true); err != nil {
		panic(err)
	}
	if err := g.AddAttr("G", "label", strconv.Quote(t.id.String())); err != nil {
		panic(err)
	}

	var buf bytes.Buffer
	t.Walk(func(n *Node) bool {
		buf.Reset()
		if err := tmpl.Execute(&buf, dotNode{n}); err != nil {
			panic(err)
		}
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "box",
			"label":    strconv.Quote(buf.String()),
		}
		if !n.IsMainLine() {
			attrs["style"] = "dashed"
		}
		name := strconv.Itoa(int(n.id))
		if err := g.AddNode("G", name, attrs); err != nil {
			panic(err)
		}
		if p := n.Parent(); p != nil {
			if err := g.AddEdge(strconv.Itoa(int(p.id)), name, true, nil); err != nil {
				panic(err)
			}
		}
		return true
	})
	return g.String()
}

const tmplRaw = `#{{.ID}}{{if .IsMove}} {{.Move}} ({{.MoveNumber}}){{end}}{{with .Comment}}
{{.}}{{end}}`

var tmpl *template.Template

func init() {
	tmpl = template.Must(template.New("name").Parse(tmplRaw))
}

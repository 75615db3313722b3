package graph

import (
	"fmt"
	"io"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/aretw0/strumyk/pkg/domain"
)

// Format is a Graphviz output format.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatDOT, FormatSVG, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("unsupported graphviz format %q (want dot, svg or png)", s)
}

// RankDir is the layout direction.
type RankDir string

const (
	LeftToRight RankDir = "LR"
	TopToBottom RankDir = "TB"
)

// DotConfig controls Graphviz rendering.
type DotConfig struct {
	Font    string
	RankDir RankDir
	Format  Format
}

// DefaultDotConfig renders DOT text left to right in Helvetica.
func DefaultDotConfig() DotConfig {
	return DotConfig{Font: "Helvetica", RankDir: LeftToRight, Format: FormatDOT}
}

type dotWriter struct {
	cfg     DotConfig
	g       *cgraph.Graph
	mapping map[string]*cgraph.Node
}

// RenderDOT lays net out with Graphviz and writes it to out in cfg.Format.
func RenderDOT(out io.Writer, net *domain.Net, overlay *Overlay, cfg DotConfig) error {
	if cfg.Format == "" {
		cfg.Format = FormatDOT
	}
	if cfg.RankDir == "" {
		cfg.RankDir = LeftToRight
	}

	gv := graphviz.New()
	defer func() {
		_ = gv.Close()
	}()
	g, err := gv.Graph()
	if err != nil {
		return fmt.Errorf("failed to create graph: %w", err)
	}
	g.SetRankDir(cgraph.RankDir(cfg.RankDir))

	w := &dotWriter{cfg: cfg, g: g, mapping: make(map[string]*cgraph.Node)}
	fired, marked, offPath := overlay.sets()

	for _, p := range net.Places() {
		node, err := w.node(p.ID, display(p.ID, p.Label), cgraph.CircleShape)
		if err != nil {
			return err
		}
		switch {
		case marked[p.ID]:
			fill(node, "#ffeb3b")
		case offPath[p.ID]:
			fill(node, "#ffebee")
		}
	}

	transitions := net.Transitions()
	for _, t := range transitions {
		label := display(t.ID, t.Label)
		if t.Guarded() {
			label += "\n[" + t.Condition + "]"
		}
		node, err := w.node(t.ID, label, cgraph.BoxShape)
		if err != nil {
			return err
		}
		switch {
		case fired[t.ID]:
			fill(node, "#e1f5fe")
		case offPath[t.ID]:
			fill(node, "#ffebee")
		}
	}

	arc := 0
	for _, t := range transitions {
		for _, p := range t.Input {
			if err := w.edge(arc, p, t.ID); err != nil {
				return err
			}
			arc++
		}
		for _, p := range t.Output {
			if err := w.edge(arc, t.ID, p); err != nil {
				return err
			}
			arc++
		}
	}

	if err := gv.Render(g, graphviz.Format(cfg.Format), out); err != nil {
		return fmt.Errorf("failed to render %s: %w", cfg.Format, err)
	}
	return nil
}

func (w *dotWriter) node(id, label string, shape cgraph.Shape) (*cgraph.Node, error) {
	node, err := w.g.CreateNode(id)
	if err != nil {
		return nil, fmt.Errorf("failed to create node %s: %w", id, err)
	}
	node.SetShape(shape)
	node.SetLabel(label)
	if w.cfg.Font != "" {
		node.SafeSet("fontname", w.cfg.Font, "")
	}
	w.mapping[id] = node
	return node, nil
}

func (w *dotWriter) edge(i int, from, to string) error {
	name := fmt.Sprintf("a%d", i)
	if _, err := w.g.CreateEdge(name, w.mapping[from], w.mapping[to]); err != nil {
		return fmt.Errorf("failed to create arc %s->%s: %w", from, to, err)
	}
	return nil
}

// fill goes through the typed setters: Node.Set ignores attributes the graph never declared.
func fill(node *cgraph.Node, color string) {
	node.SetStyle(cgraph.FilledNodeStyle)
	node.SetFillColor(color)
}

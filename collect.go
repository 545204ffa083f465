package sketch

import "log/slog"

// Collector walks a node tree and synthesizes the strokes of one frame.
//
// Every call to Collect recomputes the frame from scratch; nothing is
// carried over between frames except the state of the random source.
// A Collector must not be used by two render passes at once.
type Collector struct {
	profile *Profile
	src     Source
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithProfile sets the profile used by nodes that inherit none.
func WithProfile(p *Profile) CollectorOption {
	return func(c *Collector) {
		if p.Valid() {
			c.profile = p
		}
	}
}

// NewCollector creates a collector drawing random numbers from src.
func NewCollector(src Source, opts ...CollectorOption) *Collector {
	c := &Collector{profile: DefaultProfile(), src: src}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// collectStats counts what one Collect call visited.
type collectStats struct {
	nodes     int
	polylines int
}

// Collect returns the strokes of every visible outline under root, in
// depth-first order with each node's own outline before its children.
// Each node's transform is composed with its ancestors' before flattening.
func (c *Collector) Collect(root *Node) []Stroke {
	var stats collectStats
	strokes := c.visit(nil, root, Identity(), c.profile, &stats)

	Logger().Debug("sketch: frame collected",
		slog.Int("nodes", stats.nodes),
		slog.Int("polylines", stats.polylines),
		slog.Int("strokes", len(strokes)))
	return strokes
}

func (c *Collector) visit(dst []Stroke, n *Node, parent Matrix, p *Profile, stats *collectStats) []Stroke {
	if n == nil || n.Hidden {
		return dst
	}
	stats.nodes++

	m := parent.Multiply(n.Transform.Matrix())
	if n.Profile.Valid() {
		p = n.Profile
	}

	if n.Outline != nil {
		for _, pl := range Flatten(n.Outline.Path, m) {
			stats.polylines++
			dst = AppendStrokes(dst, pl, p, n.Outline.Color, c.src)
		}
	}

	for _, child := range n.Children {
		dst = c.visit(dst, child, m, p, stats)
	}
	return dst
}

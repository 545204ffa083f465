package sketch

// Selector flips between alternate pre-built sketches of the same thing,
// keeping exactly one of a sibling set visible.
type Selector struct {
	nodes []*Node
}

// NewSelector creates a selector over nodes. The nodes' Hidden flags are
// the selector's only state.
func NewSelector(nodes ...*Node) *Selector {
	return &Selector{nodes: nodes}
}

// Nodes returns the nodes the selector switches between.
func (s *Selector) Nodes() []*Node {
	return s.nodes
}

// Visible returns the first visible node, or nil.
func (s *Selector) Visible() *Node {
	for _, n := range s.nodes {
		if !n.Hidden {
			return n
		}
	}
	return nil
}

// Tick reveals one hidden node chosen uniformly at random and hides the
// previously visible one. It returns the revealed node, or nil without
// changing anything when no node is hidden.
func (s *Selector) Tick(src Source) *Node {
	var candidates []*Node
	for _, n := range s.nodes {
		if n.Hidden {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	i := int(src.Float64() * float64(len(candidates)))
	if i >= len(candidates) {
		i = len(candidates) - 1
	}
	picked := candidates[i]

	for _, n := range s.nodes {
		n.Hidden = true
	}
	picked.Hidden = false
	return picked
}

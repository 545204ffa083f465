package scenefile

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"
	"strconv"

	"github.com/gogpu/sketch"
)

// Scene is a loaded scene file ready to be collected.
type Scene struct {
	// Path is the file the scene was loaded from, if any.
	Path string

	Width      int
	Height     int
	Background sketch.RGBA
	FPS        int
	Interval   int

	// Root holds the node tree, with the Y flip applied when requested.
	Root *sketch.Node

	// Profile is the material of nodes that reference none.
	Profile *sketch.Profile

	// Materials holds every named material, validated.
	Materials map[string]*sketch.Profile

	// Groups are the selectors over each node's alternates.
	Groups []*sketch.Selector
}

// MaterialNames returns the declared material names in sorted order.
func (s *Scene) MaterialNames() []string {
	return slices.Sorted(maps.Keys(s.Materials))
}

type builder struct {
	materials map[string]*sketch.Profile
	groups    []*sketch.Selector
}

func build(f *file) (*Scene, error) {
	s := &Scene{
		Width:    orDefault(f.Width, DefaultWidth),
		Height:   orDefault(f.Height, DefaultHeight),
		FPS:      orDefault(f.FPS, DefaultFPS),
		Interval: orDefault(f.Interval, DefaultInterval),
	}
	if f.Width < 0 || f.Height < 0 || f.FPS < 0 || f.Interval < 0 {
		return nil, fmt.Errorf("%w: negative size, fps or interval", ErrInvalidScene)
	}

	var err error
	if s.Background, err = colorOr(f.Background, sketch.White); err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	b := &builder{materials: make(map[string]*sketch.Profile, len(f.Materials))}
	for name, dto := range f.Materials {
		p, err := dto.profile()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		b.materials[name] = p
	}
	s.Materials = b.materials
	s.Profile = sketch.DefaultProfile()
	if p, ok := b.materials[DefaultMaterialName]; ok {
		s.Profile = p
	}

	s.Root = sketch.NewNode("scene")
	if f.FlipY {
		s.Root.Transform = sketch.Transform{Y: float64(s.Height), ScaleX: 1, ScaleY: -1}
	}
	for i := range f.Nodes {
		n, err := b.node(&f.Nodes[i], s.Profile, fmt.Sprintf("node%d", i))
		if err != nil {
			return nil, err
		}
		s.Root.Add(n)
	}
	s.Groups = b.groups

	if err := attachSilhouettes(s.Root, f); err != nil {
		return nil, err
	}
	return s, nil
}

// node converts one node entry. inherited is the material in effect for
// the entry; fallback names unnamed nodes.
func (b *builder) node(dto *nodeDTO, inherited *sketch.Profile, fallback string) (*sketch.Node, error) {
	name := dto.Name
	if name == "" {
		name = fallback
	}

	n := &sketch.Node{
		Name: name,
		Transform: sketch.Transform{
			X:        dto.X,
			Y:        dto.Y,
			Rotation: dto.Rotation * math.Pi / 180,
			ScaleX:   floatOr(dto.ScaleX, 1),
			ScaleY:   floatOr(dto.ScaleY, 1),
		},
		Hidden: dto.Hidden,
		Sprite: dto.Sprite,
	}

	p := inherited
	if dto.Material != "" {
		var ok bool
		if p, ok = b.materials[dto.Material]; !ok {
			return nil, fmt.Errorf("node %q: %w %q", name, ErrUnknownMaterial, dto.Material)
		}
		n.Profile = p
	}

	if dto.Path != "" {
		c, err := colorOr(dto.Color, p.Color())
		if err != nil {
			return nil, fmt.Errorf("node %q: color: %w", name, err)
		}
		n.Outline = &sketch.Outline{Path: parsePath(name, dto.Path), Color: c}
	}

	for i := range dto.Children {
		child, err := b.node(&dto.Children[i], p, name+"/"+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}

	if len(dto.Alternates) > 0 {
		alts := make([]*sketch.Node, len(dto.Alternates))
		for i := range dto.Alternates {
			alt, err := b.node(&dto.Alternates[i], p, name+"#"+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			alt.Hidden = i != 0
			alts[i] = alt
		}
		n.Add(alts...)
		b.groups = append(b.groups, sketch.NewSelector(alts...))
	}
	return n, nil
}

// parsePath parses path data leniently: what parses before an error is kept.
func parsePath(node, d string) *sketch.Path {
	path, err := sketch.ParsePathData(d)
	if err != nil {
		sketch.Logger().Warn("scenefile: malformed path data",
			slog.String("node", node),
			slog.Int("elements", path.Len()),
			slog.Any("error", err))
	}
	return path
}

func attachSilhouettes(root *sketch.Node, f *file) error {
	if len(f.Silhouettes) == 0 {
		return nil
	}
	overlay, err := colorOr(f.OverlayColor, sketch.Green)
	if err != nil {
		return fmt.Errorf("overlay_color: %w", err)
	}
	scale := floatOr(f.OverlayScale, sketch.DefaultOverlayScale)

	v := sketch.VectorizerFunc(func(name string) (*sketch.Path, error) {
		d, ok := f.Silhouettes[name]
		if !ok {
			return nil, fmt.Errorf("%w for sprite %q", ErrNoSilhouette, name)
		}
		return parsePath(name, d), nil
	})

	err = sketch.AttachOutlines(root, v, sketch.WithOverlayScale(scale), sketch.WithOverlayColor(overlay))
	if errors.Is(err, ErrNoSilhouette) {
		// Sprites without a silhouette are drawn without an overlay.
		sketch.Logger().Warn("scenefile: sprites skipped", slog.Any("error", err))
		return nil
	}
	return err
}

func (m *materialDTO) profile() (*sketch.Profile, error) {
	mat := sketch.DefaultMaterial()
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&mat.LineDensity, m.LineDensity)
	set(&mat.MinSegmentLength, m.MinSegmentLength)
	set(&mat.MaxSegmentLength, m.MaxSegmentLength)
	set(&mat.PixelJitter, m.PixelJitter)
	set(&mat.InteriorOverlapJitter, m.InteriorOverlapJitter)
	set(&mat.EndpointOverlapJitter, m.EndpointOverlapJitter)
	set(&mat.OffsetJitter, m.OffsetJitter)

	var err error
	if mat.Color, err = colorOr(m.Color, mat.Color); err != nil {
		return nil, fmt.Errorf("color: %w", err)
	}
	return sketch.NewProfile(mat)
}

func colorOr(s string, def sketch.RGBA) (sketch.RGBA, error) {
	if s == "" {
		return def, nil
	}
	return sketch.ParseHex(s)
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

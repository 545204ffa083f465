package sketch

import (
	"errors"
	"fmt"
	"log/slog"
)

// DefaultOverlayScale shrinks vectorized outlines to sit on their sprite
// image. It was tuned by eye and is expected to be re-tuned per asset set.
const DefaultOverlayScale = 0.77

// Vectorizer produces a silhouette path for a named sprite image.
// Fidelity of the result is the vectorizer's concern; the path is used as is.
type Vectorizer interface {
	Vectorize(name string) (*Path, error)
}

// VectorizerFunc adapts a function to the Vectorizer interface.
type VectorizerFunc func(name string) (*Path, error)

// Vectorize calls f(name).
func (f VectorizerFunc) Vectorize(name string) (*Path, error) {
	return f(name)
}

// AttachOption configures AttachOutlines.
type AttachOption func(*attachOptions)

type attachOptions struct {
	scale   float64
	color   RGBA
	profile *Profile
}

// WithOverlayScale sets the scale of attached overlays relative to their
// sprite. The default is DefaultOverlayScale.
func WithOverlayScale(s float64) AttachOption {
	return func(o *attachOptions) { o.scale = s }
}

// WithOverlayColor sets the stroke color of attached overlays.
// The default is Green.
func WithOverlayColor(c RGBA) AttachOption {
	return func(o *attachOptions) { o.color = c }
}

// WithOverlayProfile sets the material of attached overlays.
// The default inherits from the sprite.
func WithOverlayProfile(p *Profile) AttachOption {
	return func(o *attachOptions) { o.profile = p }
}

// AttachOutlines vectorizes every sprite under root and attaches the result
// as an overlay child of that sprite.
//
// The tree is walked depth-first with children handled before their parent,
// so overlays added during the walk are never visited themselves. A sprite
// whose vectorization fails or yields an empty path is skipped; all
// vectorizer errors are returned together once the walk is done.
func AttachOutlines(root *Node, v Vectorizer, opts ...AttachOption) error {
	o := attachOptions{scale: DefaultOverlayScale, color: Green}
	for _, opt := range opts {
		opt(&o)
	}

	var errs []error
	attached := attach(root, v, &o, &errs)
	Logger().Info("sketch: outlines attached", slog.Int("overlays", attached), slog.Int("errors", len(errs)))
	return errors.Join(errs...)
}

func attach(n *Node, v Vectorizer, o *attachOptions, errs *[]error) int {
	if n == nil {
		return 0
	}
	attached := 0
	for _, child := range n.Children {
		attached += attach(child, v, o, errs)
	}
	if !n.Sprite {
		return attached
	}

	path, err := v.Vectorize(n.Name)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("sketch: vectorize %q: %w", n.Name, err))
		return attached
	}
	if path.Len() == 0 {
		return attached
	}

	overlay := &Node{
		Name:      n.Name + "/sketch",
		Transform: Transform{ScaleX: o.scale, ScaleY: o.scale},
		Outline:   &Outline{Path: path, Color: o.color},
		Profile:   o.profile,
	}
	n.Children = append(n.Children, overlay)
	return attached + 1
}

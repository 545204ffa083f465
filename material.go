package sketch

import (
	"math"
	"strconv"
)

// Material describes how an outline is sketched. All distances are in
// output units (pixels for the bundled backends).
type Material struct {
	// LineDensity is the spacing between micro-strokes along a segment.
	// Lower numbers are more dense. Must be > 0.
	LineDensity float64

	// MinSegmentLength and MaxSegmentLength bound the random length of each
	// macro-segment. Both must be > 0 and Min <= Max.
	MinSegmentLength float64
	MaxSegmentLength float64

	// PixelJitter is the radius of the disk each micro-stroke endpoint is
	// randomly displaced within.
	PixelJitter float64

	// InteriorOverlapJitter is the largest distance a macro-segment that is
	// not the first on its line may reach back over the previous one.
	InteriorOverlapJitter float64

	// EndpointOverlapJitter is the largest distance a line may overshoot
	// each of its true endpoints.
	EndpointOverlapJitter float64

	// OffsetJitter is the largest perpendicular displacement applied to
	// each macro-segment endpoint, in either direction.
	OffsetJitter float64

	// Color is the default stroke color.
	Color RGBA
}

// DefaultMaterial returns a hand-tuned pencil look.
func DefaultMaterial() Material {
	return Material{
		LineDensity:           3,
		MinSegmentLength:      3,
		MaxSegmentLength:      77,
		PixelJitter:           2,
		InteriorOverlapJitter: 33,
		EndpointOverlapJitter: 9,
		OffsetJitter:          5,
		Color:                 Black,
	}
}

// Validate checks if the material is usable and returns a *ConfigError if
// not. NaN and infinite values are rejected for every field.
func (m Material) Validate() error {
	if err := positive("LineDensity", m.LineDensity); err != nil {
		return err
	}
	if err := positive("MinSegmentLength", m.MinSegmentLength); err != nil {
		return err
	}
	if err := positive("MaxSegmentLength", m.MaxSegmentLength); err != nil {
		return err
	}
	if m.MaxSegmentLength < m.MinSegmentLength {
		return &ConfigError{
			Field:  "MaxSegmentLength",
			Reason: "must be at least MinSegmentLength (" + strconv.FormatFloat(m.MinSegmentLength, 'g', -1, 64) + ")",
		}
	}
	jitters := []struct {
		field string
		v     float64
	}{
		{"PixelJitter", m.PixelJitter},
		{"InteriorOverlapJitter", m.InteriorOverlapJitter},
		{"EndpointOverlapJitter", m.EndpointOverlapJitter},
		{"OffsetJitter", m.OffsetJitter},
	}
	for _, j := range jitters {
		if math.IsNaN(j.v) || math.IsInf(j.v, 0) {
			return &ConfigError{Field: j.field, Reason: "must be finite"}
		}
		if j.v < 0 {
			return &ConfigError{Field: j.field, Reason: "must not be negative"}
		}
	}
	return nil
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ConfigError{Field: field, Reason: "must be finite"}
	}
	if v <= 0 {
		return &ConfigError{Field: field, Reason: "must be positive"}
	}
	return nil
}

// MaterialOption adjusts a Material built by NewMaterial.
type MaterialOption func(*Material)

// NewMaterial returns DefaultMaterial with opts applied in order.
// The result is not validated; pass it to NewProfile.
func NewMaterial(opts ...MaterialOption) Material {
	m := DefaultMaterial()
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithLineDensity sets the micro-stroke spacing.
func WithLineDensity(d float64) MaterialOption {
	return func(m *Material) { m.LineDensity = d }
}

// WithSegmentLength sets the macro-segment length range.
func WithSegmentLength(minLen, maxLen float64) MaterialOption {
	return func(m *Material) {
		m.MinSegmentLength = minLen
		m.MaxSegmentLength = maxLen
	}
}

// WithPixelJitter sets the micro-stroke endpoint jitter radius.
func WithPixelJitter(r float64) MaterialOption {
	return func(m *Material) { m.PixelJitter = r }
}

// WithOverlapJitter sets the interior and endpoint overlap limits.
func WithOverlapJitter(interior, endpoint float64) MaterialOption {
	return func(m *Material) {
		m.InteriorOverlapJitter = interior
		m.EndpointOverlapJitter = endpoint
	}
}

// WithOffsetJitter sets the perpendicular offset limit.
func WithOffsetJitter(d float64) MaterialOption {
	return func(m *Material) { m.OffsetJitter = d }
}

// WithColor sets the default stroke color.
func WithColor(c RGBA) MaterialOption {
	return func(m *Material) { m.Color = c }
}

// Profile is a validated, immutable Material.
// The synthesizer only accepts a Profile, so an invalid configuration can
// never reach a render pass. A Profile not obtained from NewProfile, such as
// new(Profile), is not valid and is replaced by DefaultProfile wherever it
// is used.
type Profile struct {
	m     Material
	valid bool
}

// NewProfile validates m and wraps it in a Profile.
func NewProfile(m Material) (*Profile, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &Profile{m: m, valid: true}, nil
}

// MustProfile is like NewProfile but panics on an invalid material.
// It is intended for package-level defaults built from constants.
func MustProfile(m Material) *Profile {
	p, err := NewProfile(m)
	if err != nil {
		panic(err)
	}
	return p
}

var defaultProfile = MustProfile(DefaultMaterial())

// DefaultProfile returns the shared profile for DefaultMaterial.
func DefaultProfile() *Profile {
	return defaultProfile
}

// Valid reports whether p was built by NewProfile. It is false for nil.
func (p *Profile) Valid() bool {
	return p != nil && p.valid
}

// orDefault returns p, or DefaultProfile when p is not valid.
func (p *Profile) orDefault() *Profile {
	if !p.Valid() {
		return defaultProfile
	}
	return p
}

// Material returns a copy of the validated material.
func (p *Profile) Material() Material {
	return p.m
}

// Color returns the profile's default stroke color.
func (p *Profile) Color() RGBA {
	return p.m.Color
}

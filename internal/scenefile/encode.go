package scenefile

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/sketch"
)

// materialOut is the fully resolved form of a material entry.
type materialOut struct {
	LineDensity           float64 `toml:"line_density"`
	MinSegmentLength      float64 `toml:"min_segment_length"`
	MaxSegmentLength      float64 `toml:"max_segment_length"`
	PixelJitter           float64 `toml:"pixel_jitter"`
	InteriorOverlapJitter float64 `toml:"interior_overlap_jitter"`
	EndpointOverlapJitter float64 `toml:"endpoint_overlap_jitter"`
	OffsetJitter          float64 `toml:"offset_jitter"`
	Color                 string  `toml:"color"`
}

// EncodeMaterials writes materials as a TOML [materials] table that Load
// reads back unchanged.
func EncodeMaterials(w io.Writer, materials map[string]sketch.Material) error {
	out := make(map[string]materialOut, len(materials))
	for name, m := range materials {
		out[name] = materialOut{
			LineDensity:           m.LineDensity,
			MinSegmentLength:      m.MinSegmentLength,
			MaxSegmentLength:      m.MaxSegmentLength,
			PixelJitter:           m.PixelJitter,
			InteriorOverlapJitter: m.InteriorOverlapJitter,
			EndpointOverlapJitter: m.EndpointOverlapJitter,
			OffsetJitter:          m.OffsetJitter,
			Color:                 m.Color.HexString(),
		}
	}
	return toml.NewEncoder(w).Encode(struct {
		Materials map[string]materialOut `toml:"materials"`
	}{out})
}

// ResolvedMaterials returns every material of s, including the default one
// when the file does not declare it.
func (s *Scene) ResolvedMaterials() map[string]sketch.Material {
	out := make(map[string]sketch.Material, len(s.Materials)+1)
	out[DefaultMaterialName] = s.Profile.Material()
	for name, p := range s.Materials {
		out[name] = p.Material()
	}
	return out
}

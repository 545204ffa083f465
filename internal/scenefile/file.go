// Package scenefile loads sketch scenes from TOML and YAML files.
//
// A scene file declares the canvas, named materials, an optional set of
// sprite silhouettes and a tree of nodes:
//
//	width = 320
//	height = 240
//	background = "#fdfcf7"
//
//	[materials.default]
//	offset_jitter = 3
//
//	[[nodes]]
//	name = "box"
//	x = 40
//	y = 40
//	path = "M0 0 H80 V60 H0 Z"
//
// The format is chosen by extension: .toml, .yaml or .yml.
package scenefile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/sketch"
)

// Defaults for fields a scene file leaves out.
const (
	DefaultWidth    = 640
	DefaultHeight   = 480
	DefaultFPS      = 12
	DefaultInterval = 6
)

// DefaultMaterialName names the material used by nodes that reference none.
const DefaultMaterialName = "default"

var (
	// ErrUnsupportedFormat is returned for files whose extension is not
	// .toml, .yaml or .yml.
	ErrUnsupportedFormat = errors.New("scenefile: unsupported format")

	// ErrUnknownMaterial is returned when a node references a material the
	// file does not declare.
	ErrUnknownMaterial = errors.New("scenefile: unknown material")

	// ErrInvalidScene is returned for scene-level values that cannot be
	// rendered, such as a negative canvas size.
	ErrInvalidScene = errors.New("scenefile: invalid scene")

	// ErrNoSilhouette is reported for sprites the file has no silhouette for.
	ErrNoSilhouette = errors.New("scenefile: no silhouette")
)

// Format is a scene file encoding.
type Format string

// Supported formats.
const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// FormatOf returns the format implied by a file name's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// file mirrors the on-disk layout.
type file struct {
	Width        int                    `toml:"width" yaml:"width"`
	Height       int                    `toml:"height" yaml:"height"`
	Background   string                 `toml:"background" yaml:"background"`
	FlipY        bool                   `toml:"flip_y" yaml:"flip_y"`
	OverlayScale *float64               `toml:"overlay_scale" yaml:"overlay_scale"`
	OverlayColor string                 `toml:"overlay_color" yaml:"overlay_color"`
	FPS          int                    `toml:"fps" yaml:"fps"`
	Interval     int                    `toml:"interval" yaml:"interval"`
	Materials    map[string]materialDTO `toml:"materials" yaml:"materials"`
	Silhouettes  map[string]string      `toml:"silhouettes" yaml:"silhouettes"`
	Nodes        []nodeDTO              `toml:"nodes" yaml:"nodes"`
}

// materialDTO holds optional overrides of sketch.DefaultMaterial.
type materialDTO struct {
	LineDensity           *float64 `toml:"line_density" yaml:"line_density"`
	MinSegmentLength      *float64 `toml:"min_segment_length" yaml:"min_segment_length"`
	MaxSegmentLength      *float64 `toml:"max_segment_length" yaml:"max_segment_length"`
	PixelJitter           *float64 `toml:"pixel_jitter" yaml:"pixel_jitter"`
	InteriorOverlapJitter *float64 `toml:"interior_overlap_jitter" yaml:"interior_overlap_jitter"`
	EndpointOverlapJitter *float64 `toml:"endpoint_overlap_jitter" yaml:"endpoint_overlap_jitter"`
	OffsetJitter          *float64 `toml:"offset_jitter" yaml:"offset_jitter"`
	Color                 string   `toml:"color" yaml:"color"`
}

type nodeDTO struct {
	Name       string    `toml:"name" yaml:"name"`
	X          float64   `toml:"x" yaml:"x"`
	Y          float64   `toml:"y" yaml:"y"`
	Rotation   float64   `toml:"rotation" yaml:"rotation"` // degrees
	ScaleX     *float64  `toml:"scale_x" yaml:"scale_x"`
	ScaleY     *float64  `toml:"scale_y" yaml:"scale_y"`
	Material   string    `toml:"material" yaml:"material"`
	Color      string    `toml:"color" yaml:"color"`
	Path       string    `toml:"path" yaml:"path"`
	Hidden     bool      `toml:"hidden" yaml:"hidden"`
	Sprite     bool      `toml:"sprite" yaml:"sprite"`
	Alternates []nodeDTO `toml:"alternates" yaml:"alternates"`
	Children   []nodeDTO `toml:"children" yaml:"children"`
}

// Load reads and builds the scene at path.
func Load(path string) (*Scene, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path

	sketch.Logger().Info("scenefile: scene loaded",
		slog.String("path", path),
		slog.Int("nodes", s.Root.Count()),
		slog.Int("materials", len(s.Materials)),
		slog.Int("groups", len(s.Groups)))
	return s, nil
}

// Decode builds a scene from file contents in the given format.
func Decode(data []byte, format Format) (*Scene, error) {
	var f file
	switch format {
	case TOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("scenefile: decode toml: %w", err)
		}
	case YAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("scenefile: decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return build(&f)
}

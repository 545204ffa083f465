package scenefile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/sketch"
)

const tomlScene = `
width = 320
height = 200
background = "#102030"
fps = 24
interval = 3

[materials.default]
offset_jitter = 1

[materials.fine]
line_density = 1
min_segment_length = 5
max_segment_length = 10
color = "#ff0000"

[[nodes]]
name = "box"
x = 10
y = 20
path = "M0 0 H80 V60 H0 Z"

  [[nodes.children]]
  name = "lid"
  material = "fine"
  rotation = 90
  path = "M0 0 L10 0"

[[nodes]]
name = "blink"
  [[nodes.alternates]]
  path = "M0 0 L5 5"
  [[nodes.alternates]]
  path = "M0 5 L5 0"
  color = "#0000ff"
`

const yamlScene = `
width: 100
height: 50
flip_y: true
materials:
  chalk:
    pixel_jitter: 0.5
    color: "#ffffff"
nodes:
  - name: line
    material: chalk
    scale_x: 2
    path: M0 0 L10 0
`

func writeScene(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	s, err := Load(writeScene(t, "scene.toml", tomlScene))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if s.Width != 320 || s.Height != 200 || s.FPS != 24 || s.Interval != 3 {
		t.Errorf("scene = %dx%d fps %d interval %d", s.Width, s.Height, s.FPS, s.Interval)
	}
	if s.Background != sketch.Hex("#102030") {
		t.Errorf("Background = %+v", s.Background)
	}
	if got := s.Profile.Material().OffsetJitter; got != 1 {
		t.Errorf("default material OffsetJitter = %v, want 1", got)
	}
	if got := s.MaterialNames(); len(got) != 2 || got[0] != "default" || got[1] != "fine" {
		t.Errorf("MaterialNames() = %v", got)
	}

	box := s.Root.Find("box")
	if box == nil || box.Outline == nil {
		t.Fatal("box not loaded")
	}
	if box.Transform.X != 10 || box.Transform.Y != 20 || box.Transform.ScaleX != 1 || box.Transform.ScaleY != 1 {
		t.Errorf("box transform = %+v", box.Transform)
	}
	if box.Outline.Path.Len() != 5 {
		t.Errorf("box path has %d elements, want 5", box.Outline.Path.Len())
	}
	if box.Outline.Color != sketch.Black {
		t.Errorf("box color = %+v, want inherited black", box.Outline.Color)
	}

	lid := s.Root.Find("lid")
	if lid.Profile != s.Materials["fine"] {
		t.Error("lid does not use the fine material")
	}
	if lid.Outline.Color != sketch.Red {
		t.Errorf("lid color = %+v, want material red", lid.Outline.Color)
	}
	if got := lid.Transform.Rotation; got < 1.5707 || got > 1.5709 {
		t.Errorf("lid rotation = %v, want pi/2", got)
	}
}

func TestLoadTOML_Alternates(t *testing.T) {
	s, err := Load(writeScene(t, "scene.toml", tomlScene))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Groups) != 1 {
		t.Fatalf("len(Groups) = %d, want 1", len(s.Groups))
	}
	g := s.Groups[0]
	nodes := g.Nodes()
	if len(nodes) != 2 {
		t.Fatalf("group has %d nodes, want 2", len(nodes))
	}
	if nodes[0].Hidden || !nodes[1].Hidden {
		t.Error("only the first alternate should start visible")
	}
	if nodes[0].Name != "blink#0" || nodes[1].Outline.Color != sketch.Blue {
		t.Errorf("alternates = %q %+v", nodes[0].Name, nodes[1].Outline.Color)
	}
	if g.Tick(sketch.NewSource(1)) != nodes[1] {
		t.Error("Tick() should reveal the only hidden alternate")
	}
}

func TestLoadYAML(t *testing.T) {
	for _, ext := range []string{"scene.yaml", "scene.yml"} {
		t.Run(ext, func(t *testing.T) {
			s, err := Load(writeScene(t, ext, yamlScene))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if s.Root.Transform != (sketch.Transform{Y: 50, ScaleX: 1, ScaleY: -1}) {
				t.Errorf("flip_y root transform = %+v", s.Root.Transform)
			}
			line := s.Root.Find("line")
			if line.Transform.ScaleX != 2 || line.Transform.ScaleY != 1 {
				t.Errorf("line scale = %v,%v", line.Transform.ScaleX, line.Transform.ScaleY)
			}
			if line.Outline.Color != sketch.White {
				t.Errorf("line color = %+v, want chalk white", line.Outline.Color)
			}
			if s.Background != sketch.White || s.FPS != DefaultFPS || s.Interval != DefaultInterval {
				t.Errorf("defaults not applied: %+v", s)
			}
			if s.Profile != sketch.DefaultProfile() {
				t.Error("scene without a default material should use sketch.DefaultProfile")
			}
		})
	}
}

func TestLoad_FlipY(t *testing.T) {
	s, err := Decode([]byte(yamlScene), YAML)
	if err != nil {
		t.Fatal(err)
	}
	pinned := sketch.MustProfile(sketch.Material{LineDensity: 20, MinSegmentLength: 20, MaxSegmentLength: 20})
	line := s.Root.Find("line")
	line.Profile = pinned

	strokes := sketch.NewCollector(sketch.NewSource(1)).Collect(s.Root)
	if len(strokes) != 1 {
		t.Fatalf("len(strokes) = %d, want 1", len(strokes))
	}
	if strokes[0].P0 != sketch.Pt(0, 50) || strokes[0].P1 != sketch.Pt(20, 50) {
		t.Errorf("stroke = %v..%v, want (0,50)..(20,50)", strokes[0].P0, strokes[0].P1)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{"extension", "scene.json", "{}", ErrUnsupportedFormat},
		{"unknown material", "a.toml", "[[nodes]]\nmaterial = \"lead\"\npath = \"M0 0 L1 1\"", ErrUnknownMaterial},
		{"negative size", "a.toml", "width = -1", ErrInvalidScene},
		{"invalid material", "a.yaml", "materials:\n  bad:\n    line_density: 0\n", nil},
		{"bad color", "a.toml", "background = \"#zzz\"", sketch.ErrInvalidHex},
		{"bad toml", "a.toml", "width = = 3", nil},
		{"bad yaml", "a.yaml", "nodes: [", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeScene(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoad_InvalidMaterialIsConfigError(t *testing.T) {
	_, err := Decode([]byte("materials:\n  bad:\n    min_segment_length: 10\n    max_segment_length: 5\n"), YAML)
	var cfg *sketch.ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("Decode() error = %v, want *sketch.ConfigError", err)
	}
	if cfg.Field != "MaxSegmentLength" {
		t.Errorf("Field = %q, want MaxSegmentLength", cfg.Field)
	}
}

func TestLoad_MalformedPathKeepsPrefix(t *testing.T) {
	s, err := Decode([]byte("[[nodes]]\nname = \"n\"\npath = \"M0 0 L10 0 L5\"\n"), TOML)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := s.Root.Find("n").Outline.Path.Len(); got != 2 {
		t.Errorf("recovered path has %d elements, want 2", got)
	}
}

func TestLoad_Silhouettes(t *testing.T) {
	src := `
overlay_scale = 0.5
[silhouettes]
cat = "M0 0 L10 0"

[[nodes]]
name = "cat"
sprite = true

[[nodes]]
name = "ghost"
sprite = true
`
	s, err := Decode([]byte(src), TOML)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	overlay := s.Root.Find("cat/sketch")
	if overlay == nil {
		t.Fatal("cat overlay missing")
	}
	if overlay.Transform.ScaleX != 0.5 || overlay.Outline.Color != sketch.Green {
		t.Errorf("overlay = %+v", overlay)
	}
	if s.Root.Find("ghost/sketch") != nil {
		t.Error("sprite without silhouette got an overlay")
	}
}

func TestEncodeMaterials(t *testing.T) {
	s, err := Decode([]byte(tomlScene), TOML)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeMaterials(&buf, s.ResolvedMaterials()); err != nil {
		t.Fatalf("EncodeMaterials() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"[materials.default]", "[materials.fine]", `color = "#ff0000"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	back, err := Decode(buf.Bytes(), TOML)
	if err != nil {
		t.Fatalf("re-decode error = %v", err)
	}
	if back.Materials["fine"].Material() != s.Materials["fine"].Material() {
		t.Error("fine material changed across encode and decode")
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"a.toml", TOML, false},
		{"A.TOML", TOML, false},
		{"a.yaml", YAML, false},
		{"dir/a.yml", YAML, false},
		{"a.json", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("FormatOf(%q) = %q, %v", tt.path, got, err)
		}
	}
}

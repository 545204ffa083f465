// Package sketch renders vector outlines as hand-drawn pencil strokes.
//
// # Overview
//
// Every frame, each outline in a node tree is flattened into polylines and
// re-drawn as a fresh set of short, overlapping, jittered line segments.
// Redrawing with new random numbers each frame gives the boiling look of
// sketch animation. Nothing is cached between frames.
//
// # Quick Start
//
//	profile, err := sketch.NewProfile(sketch.DefaultMaterial())
//	if err != nil {
//	    // invalid material
//	}
//
//	root := sketch.NewNode("scene")
//	root.Add(&sketch.Node{
//	    Name:      "box",
//	    Transform: sketch.Transform{X: 100, Y: 80, ScaleX: 1, ScaleY: 1},
//	    Outline: &sketch.Outline{
//	        Path:  sketch.BuildPath().Rect(0, 0, 60, 40).Build(),
//	        Color: sketch.Black,
//	    },
//	})
//
//	c := sketch.NewCollector(sketch.NewSource(1), sketch.WithProfile(profile))
//	strokes := c.Collect(root) // hand to a frame.Backend
//
// # Algorithm
//
// A polyline is processed one macro-line (pair of consecutive vertices) at a
// time. The line is extended past both ends by up to EndpointOverlapJitter,
// then cut into macro-segments of random length between MinSegmentLength and
// MaxSegmentLength. Segments after the first reach back over their
// predecessor by up to InteriorOverlapJitter, and both endpoints of every
// segment are pushed sideways by up to OffsetJitter. Each macro-segment is
// finally drawn as micro-strokes LineDensity apart whose endpoints wander
// within PixelJitter.
//
// # Determinism
//
// All randomness comes from the Source passed in. With a seeded source
// (NewSource) the same tree produces the same strokes bit for bit, which is
// what the tests rely on.
//
// # Coordinate System
//
// Points are plain 2D coordinates; transforms compose as
// Translate * Rotate * Scale and children inherit their parent's transform.
// Point.Perp rotates (x, y) to (-y, x).
package sketch

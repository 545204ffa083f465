package sketch

import "iter"

// MacroSegment is one randomized piece of a macro-line, the straight run
// between two consecutive polyline vertices.
type MacroSegment struct {
	// P0 and P1 are the jittered endpoints handed to the micro-stroke emitter.
	P0, P1 Point

	// Line is the index of the macro-line's first vertex in the polyline.
	Line int

	// Offset is the walk position along the extended line at which the
	// segment starts, before overlap is applied.
	Offset float64

	// Length is the segment length drawn for this step, after clamping.
	Length float64

	// Overlap is how far P0 was pulled back toward the line start.
	Overlap float64

	// LineLength is the length of the extended macro-line.
	LineLength float64

	// Terminal is set on a segment that was clamped to end exactly at
	// LineLength.
	Terminal bool
}

// MacroSegments walks every macro-line of pl and yields its randomized
// macro-segments in order.
//
// Each line is first extended at both ends by independent random amounts up
// to EndpointOverlapJitter. It is then walked in steps drawn from
// [MinSegmentLength, MaxSegmentLength]; the final step is clamped so it
// never passes the extended end. Every segment after the first on a line
// reaches back by up to InteriorOverlapJitter, never before the extended
// start, and both endpoints are pushed sideways by independent offsets up
// to OffsetJitter. Zero-length lines yield nothing.
//
// A nil or zero-value profile uses DefaultProfile.
func MacroSegments(pl Polyline, p *Profile, src Source) iter.Seq[MacroSegment] {
	p = p.orDefault()
	m := p.m
	return func(yield func(MacroSegment) bool) {
		for i := 0; i+1 < len(pl); i++ {
			if !walkLine(pl[i], pl[i+1], i, &m, src, yield) {
				return
			}
		}
	}
}

// walkLine emits the macro-segments of one macro-line.
// It reports false if yield asked to stop.
func walkLine(start, end Point, line int, m *Material, src Source, yield func(MacroSegment) bool) bool {
	dir := end.Sub(start).Normalize()
	perp := dir.Perp()

	p0 := start.Sub(dir.Mul(randomValue(src, m.EndpointOverlapJitter)))
	p1 := end.Add(dir.Mul(randomValue(src, m.EndpointOverlapJitter)))
	lineLength := p1.Sub(p0).Length()

	var lengthSoFar float64
	done := false
	for lengthSoFar < lineLength && !done {
		segmentLength := m.MinSegmentLength + randomValue(src, m.MaxSegmentLength-m.MinSegmentLength)
		if segmentLength+lengthSoFar > lineLength {
			segmentLength = lineLength - lengthSoFar
			done = true
		}

		segP0 := p0.Add(dir.Mul(lengthSoFar))
		segP1 := segP0.Add(dir.Mul(segmentLength))

		var overlap float64
		if lengthSoFar != 0 {
			overlap = min(randomValue(src, m.InteriorOverlapJitter), lengthSoFar)
			segP0 = segP0.Sub(dir.Mul(overlap))
		}

		segP0 = segP0.Add(perp.Mul(randomSigned(src, m.OffsetJitter)))
		segP1 = segP1.Add(perp.Mul(randomSigned(src, m.OffsetJitter)))

		seg := MacroSegment{
			P0:         segP0,
			P1:         segP1,
			Line:       line,
			Offset:     lengthSoFar,
			Length:     segmentLength,
			Overlap:    overlap,
			LineLength: lineLength,
			Terminal:   done,
		}
		if !yield(seg) {
			return false
		}

		lengthSoFar += segmentLength
	}
	return true
}

// MicroStrokes walks from p0 toward p1 in steps of LineDensity and yields
// one stroke per step, each endpoint displaced within a disk of radius
// PixelJitter. The walk stops once it has covered the distance from p0 to
// p1, so the last stroke may overshoot p1 by less than one step. A
// zero-length segment yields a single stroke at p0.
//
// A nil or zero-value profile uses DefaultProfile.
func MicroStrokes(p0, p1 Point, p *Profile, src Source) iter.Seq[Stroke] {
	p = p.orDefault()
	m := p.m
	return func(yield func(Stroke) bool) {
		emitMicro(p0, p1, &m, src, yield)
	}
}

func emitMicro(p0, p1 Point, m *Material, src Source, yield func(Stroke) bool) bool {
	dir := p1.Sub(p0).Normalize()
	length := p1.Sub(p0).Length()

	// Positions are computed from p0 on every step rather than accumulated,
	// so long segments do not drift.
	for step := 0; ; step++ {
		traveled := float64(step+1) * m.LineDensity
		a := p0.Add(dir.Mul(float64(step) * m.LineDensity))
		b := p0.Add(dir.Mul(traveled))

		s := Stroke{
			P0:    a.Add(randomOffset(src, m.PixelJitter)),
			P1:    b.Add(randomOffset(src, m.PixelJitter)),
			Color: m.Color,
		}
		if !yield(s) {
			return false
		}
		if traveled >= length {
			return true
		}
	}
}

// Synthesize turns a polyline into a lazily generated sequence of pencil
// strokes colored with the profile's color.
//
// Random numbers are drawn from src in a fixed order, so the same seeded
// source, polyline and profile always produce the same strokes, bit for bit.
// Polylines with fewer than two vertices yield nothing.
//
// A nil or zero-value profile uses DefaultProfile.
func Synthesize(pl Polyline, p *Profile, src Source) iter.Seq[Stroke] {
	p = p.orDefault()
	m := p.m
	return func(yield func(Stroke) bool) {
		for seg := range MacroSegments(pl, p, src) {
			if !emitMicro(seg.P0, seg.P1, &m, src, yield) {
				return
			}
		}
	}
}

// AppendStrokes appends the strokes synthesized for pl to dst, recolored
// with c, and returns the extended slice.
func AppendStrokes(dst []Stroke, pl Polyline, p *Profile, c RGBA, src Source) []Stroke {
	for s := range Synthesize(pl, p, src) {
		s.Color = c
		dst = append(dst, s)
	}
	return dst
}

package sketch

// Stroke is a single straight pencil mark, the atomic output of the
// synthesizer. Both endpoints are always finite for finite input.
type Stroke struct {
	P0, P1 Point
	Color  RGBA
}

// Length returns the distance between the stroke's endpoints.
func (s Stroke) Length() float64 {
	return s.P0.Distance(s.P1)
}

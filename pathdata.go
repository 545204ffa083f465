package sketch

import (
	"errors"
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

// ErrPathData is wrapped by errors returned from ParsePathData.
var ErrPathData = errors.New("sketch: invalid path data")

// ParsePathData parses the SVG path data subset M, L, H, V, C, Q and Z in
// both absolute (upper case) and relative (lower case) forms. Repeated
// coordinate groups repeat the previous command, and extra pairs after a
// move are treated as lines, as in SVG.
//
// On malformed input the elements parsed before the problem are returned
// together with an error wrapping ErrPathData.
func ParsePathData(d string) (*Path, error) {
	p := &pathParser{s: []byte(d), path: NewPath()}
	err := p.parse()
	return p.path, err
}

type pathParser struct {
	s     []byte
	pos   int
	path  *Path
	cur   Point
	start Point
}

func (p *pathParser) parse() error {
	var cmd byte
	for {
		p.skipSeparators()
		if p.pos >= len(p.s) {
			return nil
		}

		c := p.s[p.pos]
		switch {
		case isCommand(c):
			cmd = c
			p.pos++
		case cmd == 0:
			return p.errorf("expected command, found %q", c)
		case cmd == 'Z' || cmd == 'z':
			return p.errorf("unexpected %q after close", c)
		}

		if err := p.command(cmd); err != nil {
			return err
		}
		// Coordinates following a move continue as lines.
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		}
	}
}

func (p *pathParser) command(cmd byte) error {
	rel := cmd >= 'a'
	switch cmd {
	case 'M', 'm':
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.path.MoveTo(pt.X, pt.Y)
		p.cur, p.start = pt, pt
	case 'L', 'l':
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.path.LineTo(pt.X, pt.Y)
		p.cur = pt
	case 'H', 'h':
		x, err := p.number()
		if err != nil {
			return err
		}
		if rel {
			x += p.cur.X
		}
		p.cur = Pt(x, p.cur.Y)
		p.path.LineTo(p.cur.X, p.cur.Y)
	case 'V', 'v':
		y, err := p.number()
		if err != nil {
			return err
		}
		if rel {
			y += p.cur.Y
		}
		p.cur = Pt(p.cur.X, y)
		p.path.LineTo(p.cur.X, p.cur.Y)
	case 'C', 'c':
		pts, err := p.points(3, rel)
		if err != nil {
			return err
		}
		p.path.CubicTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		p.cur = pts[2]
	case 'Q', 'q':
		pts, err := p.points(2, rel)
		if err != nil {
			return err
		}
		p.path.QuadraticTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y)
		p.cur = pts[1]
	case 'Z', 'z':
		p.path.Close()
		p.cur = p.start
	}
	return nil
}

// points reads n coordinate pairs. Relative pairs are all offsets from the
// current point at the start of the command.
func (p *pathParser) points(n int, rel bool) ([]Point, error) {
	pts := make([]Point, n)
	for i := range pts {
		pt, err := p.point(rel)
		if err != nil {
			return nil, err
		}
		pts[i] = pt
	}
	return pts, nil
}

func (p *pathParser) point(rel bool) (Point, error) {
	x, err := p.number()
	if err != nil {
		return Point{}, err
	}
	y, err := p.number()
	if err != nil {
		return Point{}, err
	}
	pt := Pt(x, y)
	if rel {
		pt = pt.Add(p.cur)
	}
	return pt, nil
}

// number scans one floating point literal. A sign or a second decimal point
// ends the previous number, so "1-2" and ".5.5" each hold two numbers.
func (p *pathParser) number() (float64, error) {
	p.skipSeparators()
	v, n := strconv.ParseFloat(p.s[p.pos:])
	if n == 0 {
		return 0, p.errorf("expected number")
	}
	p.pos += n
	return v, nil
}

func (p *pathParser) skipSeparators() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			p.pos++
		default:
			return
		}
	}
}

func (p *pathParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrPathData, p.pos, fmt.Sprintf(format, args...))
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'Q', 'q', 'Z', 'z':
		return true
	}
	return false
}

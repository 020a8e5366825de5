package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"honnef.co/go/curve"
)

// ErrBadPathData reports malformed geometry in an SVG path or points
// attribute.
var ErrBadPathData = errors.New("malformed path data")

// ParsePathData converts an SVG path d attribute into a BezPath of MoveTo,
// CubicTo and ClosePath elements. Every drawing command is lowered to
// cubics: lines become degenerate cubics, quadratics are raised, smooth
// commands reflect the previous control point, and arcs are decomposed into
// quarter-turn cubic approximations.
func ParsePathData(d string) (curve.BezPath, error) {
	p := pathParser{scan: pathScanner{s: d}}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.out, nil
}

type pathParser struct {
	scan pathScanner
	out  curve.BezPath

	pen      curve.Point
	start    curve.Point
	lastCtrl curve.Point // reflection source for smooth commands
	lastCmd  byte        // previous command, lowercased
	began    bool
}

func (p *pathParser) run() error {
	for p.scan.more() {
		cmd, err := p.scan.command()
		if err != nil {
			return err
		}

		lower := cmd | 0x20
		rel := cmd >= 'a'

		if !p.began && lower != 'm' {
			return fmt.Errorf("%w: path must begin with a moveto, got %q", ErrBadPathData, cmd)
		}

		switch lower {
		case 'm':
			pt, err := p.scan.point()
			if err != nil {
				return err
			}
			p.moveTo(p.resolve(pt, rel))
			// Further pairs are implicit linetos.
			for p.scan.hasNumber() {
				pt, err := p.scan.point()
				if err != nil {
					return err
				}
				p.lineTo(p.resolve(pt, rel))
			}
			p.lastCmd = 'l'

		case 'l':
			for first := true; first || p.scan.hasNumber(); first = false {
				pt, err := p.scan.point()
				if err != nil {
					return err
				}
				p.lineTo(p.resolve(pt, rel))
			}
			p.lastCmd = 'l'

		case 'h':
			for first := true; first || p.scan.hasNumber(); first = false {
				x, err := p.scan.number()
				if err != nil {
					return err
				}
				to := curve.Point{X: x, Y: p.pen.Y}
				if rel {
					to.X += p.pen.X
				}
				p.lineTo(to)
			}
			p.lastCmd = 'l'

		case 'v':
			for first := true; first || p.scan.hasNumber(); first = false {
				y, err := p.scan.number()
				if err != nil {
					return err
				}
				to := curve.Point{X: p.pen.X, Y: y}
				if rel {
					to.Y += p.pen.Y
				}
				p.lineTo(to)
			}
			p.lastCmd = 'l'

		case 'c':
			for first := true; first || p.scan.hasNumber(); first = false {
				c1, err := p.scan.point()
				if err != nil {
					return err
				}
				c2, err := p.scan.point()
				if err != nil {
					return err
				}
				to, err := p.scan.point()
				if err != nil {
					return err
				}
				p.cubicTo(p.resolve(c1, rel), p.resolve(c2, rel), p.resolve(to, rel))
			}
			p.lastCmd = 'c'

		case 's':
			for first := true; first || p.scan.hasNumber(); first = false {
				c2, err := p.scan.point()
				if err != nil {
					return err
				}
				to, err := p.scan.point()
				if err != nil {
					return err
				}
				c1 := p.pen
				if p.lastCmd == 'c' {
					c1 = p.reflected()
				}
				p.cubicTo(c1, p.resolve(c2, rel), p.resolve(to, rel))
			}
			p.lastCmd = 'c'

		case 'q':
			for first := true; first || p.scan.hasNumber(); first = false {
				c, err := p.scan.point()
				if err != nil {
					return err
				}
				to, err := p.scan.point()
				if err != nil {
					return err
				}
				p.quadTo(p.resolve(c, rel), p.resolve(to, rel))
			}
			p.lastCmd = 'q'

		case 't':
			for first := true; first || p.scan.hasNumber(); first = false {
				to, err := p.scan.point()
				if err != nil {
					return err
				}
				c := p.pen
				if p.lastCmd == 'q' {
					c = p.reflected()
				}
				p.quadTo(c, p.resolve(to, rel))
			}
			p.lastCmd = 'q'

		case 'a':
			for first := true; first || p.scan.hasNumber(); first = false {
				rx, err := p.scan.number()
				if err != nil {
					return err
				}
				ry, err := p.scan.number()
				if err != nil {
					return err
				}
				rot, err := p.scan.number()
				if err != nil {
					return err
				}
				large, err := p.scan.arcFlag()
				if err != nil {
					return err
				}
				sweep, err := p.scan.arcFlag()
				if err != nil {
					return err
				}
				to, err := p.scan.point()
				if err != nil {
					return err
				}
				p.arcTo(rx, ry, rot, large, sweep, p.resolve(to, rel))
			}
			p.lastCmd = 'a'

		case 'z':
			p.out = append(p.out, curve.ClosePath())
			p.pen = p.start
			p.lastCmd = 'z'

		default:
			return fmt.Errorf("%w: unknown command %q at offset %d", ErrBadPathData, cmd, p.scan.pos-1)
		}
	}
	return nil
}

// resolve shifts a relative coordinate pair by the pen position.
func (p *pathParser) resolve(pt curve.Point, rel bool) curve.Point {
	if rel {
		pt.X += p.pen.X
		pt.Y += p.pen.Y
	}
	return pt
}

// reflected mirrors the previous control point through the pen.
func (p *pathParser) reflected() curve.Point {
	return curve.Point{X: 2*p.pen.X - p.lastCtrl.X, Y: 2*p.pen.Y - p.lastCtrl.Y}
}

func (p *pathParser) moveTo(pt curve.Point) {
	p.out = append(p.out, curve.MoveTo(pt))
	p.pen, p.start = pt, pt
	p.began = true
}

func (p *pathParser) lineTo(to curve.Point) {
	c := curve.PathSegment{Kind: curve.LineKind, P0: p.pen, P1: to}.Cubic()
	p.out = append(p.out, curve.CubicTo(c.P1, c.P2, c.P3))
	p.pen = to
}

func (p *pathParser) cubicTo(c1, c2, to curve.Point) {
	p.out = append(p.out, curve.CubicTo(c1, c2, to))
	p.pen = to
	p.lastCtrl = c2
}

func (p *pathParser) quadTo(c, to curve.Point) {
	raised := curve.QuadBez{P0: p.pen, P1: c, P2: to}.Raise()
	p.out = append(p.out, curve.CubicTo(raised.P1, raised.P2, raised.P3))
	p.pen = to
	p.lastCtrl = c
}

// arcTo lowers one elliptical arc to cubic segments spanning at most a
// quarter turn each. Degenerate arcs draw the chord instead, per the SVG
// error recovery rules.
func (p *pathParser) arcTo(rx, ry, rotDeg float64, large, sweep bool, to curve.Point) {
	rx, ry = math.Abs(rx), math.Abs(ry)
	if p.pen == to {
		return
	}
	if rx == 0 || ry == 0 {
		p.lineTo(to)
		return
	}

	angle := rotDeg * math.Pi / 180

	// Scale the radii up when the chord cannot fit inside the ellipse.
	mid := curve.Point{X: (p.pen.X - to.X) / 2, Y: (p.pen.Y - to.Y) / 2}
	m := mid.Transform(curve.Rotate(-angle))
	radiiScale := (m.X*m.X)/(rx*rx) + (m.Y*m.Y)/(ry*ry)
	if radiiScale > 1 {
		s := math.Sqrt(radiiScale)
		rx *= s
		ry *= s
	}

	// Work where the ellipse is the unit circle centered on the origin.
	unit := curve.Scale(1/rx, 1/ry).Mul(curve.Rotate(-angle))
	p1 := p.pen.Transform(unit)
	p2 := to.Transform(unit)
	delta := p2.Sub(p1)

	d := delta.X*delta.X + delta.Y*delta.Y
	scale := math.Sqrt(math.Max(1/d-0.25, 0))
	if math.IsInf(scale, 0) || math.IsNaN(scale) {
		p.lineTo(to)
		return
	}
	if sweep == large {
		scale = -scale
	}

	center := curve.Point{
		X: (p1.X+p2.X)/2 - delta.Y*scale,
		Y: (p1.Y+p2.Y)/2 + delta.X*scale,
	}
	theta1 := math.Atan2(p1.Y-center.Y, p1.X-center.X)
	theta2 := math.Atan2(p2.Y-center.Y, p2.X-center.X)

	arc := theta2 - theta1
	if arc < 0 && sweep {
		arc += 2 * math.Pi
	} else if arc > 0 && !sweep {
		arc -= 2 * math.Pi
	}

	user := curve.Rotate(angle).Mul(curve.Scale(rx, ry))
	segments := int(math.Ceil(math.Abs(arc) / (math.Pi/2 + 0.001)))
	for i := 0; i < segments; i++ {
		start := theta1 + float64(i)*arc/float64(segments)
		end := theta1 + float64(i+1)*arc/float64(segments)

		t := (8.0 / 6.0) * math.Tan(0.25*(end-start))
		if math.IsInf(t, 0) || math.IsNaN(t) {
			p.lineTo(to)
			return
		}
		sinS, cosS := math.Sincos(start)
		sinE, cosE := math.Sincos(end)

		c1 := curve.Point{X: center.X + cosS - t*sinS, Y: center.Y + sinS + t*cosS}
		target := curve.Point{X: center.X + cosE, Y: center.Y + sinE}
		c2 := curve.Point{X: target.X + t*sinE, Y: target.Y - t*cosE}

		p.out = append(p.out, curve.CubicTo(
			c1.Transform(user), c2.Transform(user), target.Transform(user)))
	}
	p.pen = to
}

// pathScanner tokenizes path data: command letters, numbers and arc flags,
// separated by whitespace or commas.
type pathScanner struct {
	s   string
	pos int
}

func (sc *pathScanner) skipSeparators() {
	for sc.pos < len(sc.s) {
		switch sc.s[sc.pos] {
		case ' ', '\t', '\n', '\r', ',':
			sc.pos++
		default:
			return
		}
	}
}

// more reports whether any token remains.
func (sc *pathScanner) more() bool {
	sc.skipSeparators()
	return sc.pos < len(sc.s)
}

// command consumes the next command letter.
func (sc *pathScanner) command() (byte, error) {
	sc.skipSeparators()
	if sc.pos >= len(sc.s) {
		return 0, fmt.Errorf("%w: missing command at offset %d", ErrBadPathData, sc.pos)
	}
	c := sc.s[sc.pos]
	if (c|0x20) < 'a' || (c|0x20) > 'z' {
		return 0, fmt.Errorf("%w: expected command at offset %d, got %q", ErrBadPathData, sc.pos, c)
	}
	sc.pos++
	return c, nil
}

// hasNumber reports whether the next token starts a number, which continues
// the current command's argument sequence.
func (sc *pathScanner) hasNumber() bool {
	sc.skipSeparators()
	if sc.pos >= len(sc.s) {
		return false
	}
	c := sc.s[sc.pos]
	return c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9')
}

// number consumes one coordinate. A second decimal point or a sign ends the
// number and starts the next one, as SVG path data allows.
func (sc *pathScanner) number() (float64, error) {
	sc.skipSeparators()
	start := sc.pos
	i := sc.pos
	n := len(sc.s)

	if i < n && (sc.s[i] == '+' || sc.s[i] == '-') {
		i++
	}
	digits := false
	for i < n && sc.s[i] >= '0' && sc.s[i] <= '9' {
		i++
		digits = true
	}
	if i < n && sc.s[i] == '.' {
		i++
		for i < n && sc.s[i] >= '0' && sc.s[i] <= '9' {
			i++
			digits = true
		}
	}
	if !digits {
		return 0, fmt.Errorf("%w: expected number at offset %d", ErrBadPathData, start)
	}
	if i < n && (sc.s[i] == 'e' || sc.s[i] == 'E') {
		j := i + 1
		if j < n && (sc.s[j] == '+' || sc.s[j] == '-') {
			j++
		}
		k := j
		for k < n && sc.s[k] >= '0' && sc.s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}

	v, err := strconv.ParseFloat(sc.s[start:i], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q at offset %d", ErrBadPathData, sc.s[start:i], start)
	}
	sc.pos = i
	return v, nil
}

// point consumes an x,y coordinate pair.
func (sc *pathScanner) point() (curve.Point, error) {
	x, err := sc.number()
	if err != nil {
		return curve.Point{}, err
	}
	y, err := sc.number()
	if err != nil {
		return curve.Point{}, err
	}
	return curve.Point{X: x, Y: y}, nil
}

// arcFlag consumes a single 0 or 1, which may be packed against the next
// token without separation.
func (sc *pathScanner) arcFlag() (bool, error) {
	sc.skipSeparators()
	if sc.pos >= len(sc.s) || (sc.s[sc.pos] != '0' && sc.s[sc.pos] != '1') {
		return false, fmt.Errorf("%w: expected arc flag at offset %d", ErrBadPathData, sc.pos)
	}
	flag := sc.s[sc.pos] == '1'
	sc.pos++
	return flag, nil
}

// Package svgpath reads SVG documents into cubic Bezier paths. It
// understands the subset of SVG a line drawing needs: path, polyline and
// polygon elements, group nesting with translate/scale/matrix transforms,
// and the root viewBox. Everything else is skipped without error.
package svgpath

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"honnef.co/go/curve"
)

// Document holds the drawable content of one SVG file.
type Document struct {
	// Width and Height come from the root viewBox, zero when absent.
	Width  float64
	Height float64

	paths []curve.BezPath
}

// Paths returns every parsed path with its group transforms applied, in
// document order.
func (d Document) Paths() []curve.BezPath {
	return d.paths
}

// pathElem and polyElem capture the attributes the walk decodes wholesale.
type pathElem struct {
	D         string `xml:"d,attr"`
	Transform string `xml:"transform,attr"`
}

type polyElem struct {
	Points    string `xml:"points,attr"`
	Transform string `xml:"transform,attr"`
}

// Parse walks the SVG token stream. Unknown elements are ignored; malformed
// XML or malformed geometry attributes fail. A document with zero paths is
// valid.
func Parse(r io.Reader) (Document, error) {
	var doc Document
	dec := xml.NewDecoder(r)
	transforms := []curve.Affine{curve.Identity}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Document{}, fmt.Errorf("decode token: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "svg":
				for _, a := range t.Attr {
					if a.Name.Local == "viewBox" {
						doc.Width, doc.Height = viewBoxSize(a.Value)
					}
				}

			case "g":
				top := transforms[len(transforms)-1]
				for _, a := range t.Attr {
					if a.Name.Local == "transform" {
						top = top.Mul(parseTransform(a.Value))
					}
				}
				transforms = append(transforms, top)

			case "path":
				var raw pathElem
				if err := dec.DecodeElement(&raw, &t); err != nil {
					return Document{}, fmt.Errorf("decode <path>: %w", err)
				}
				d := strings.TrimSpace(raw.D)
				if d == "" {
					continue
				}
				path, err := ParsePathData(d)
				if err != nil {
					return Document{}, fmt.Errorf("parse <path>: %w", err)
				}
				doc.add(path, transforms[len(transforms)-1], raw.Transform)

			case "polyline", "polygon":
				var raw polyElem
				if err := dec.DecodeElement(&raw, &t); err != nil {
					return Document{}, fmt.Errorf("decode <%s>: %w", t.Name.Local, err)
				}
				path, err := parsePoints(raw.Points, t.Name.Local == "polygon")
				if err != nil {
					return Document{}, fmt.Errorf("parse <%s>: %w", t.Name.Local, err)
				}
				doc.add(path, transforms[len(transforms)-1], raw.Transform)
			}

		case xml.EndElement:
			if t.Name.Local == "g" && len(transforms) > 1 {
				transforms = transforms[:len(transforms)-1]
			}
		}
	}
	return doc, nil
}

// add applies the group transform plus the element's own transform and
// stores the path. Empty paths are dropped.
func (d *Document) add(path curve.BezPath, group curve.Affine, ownAttr string) {
	if len(path) == 0 {
		return
	}
	aff := group
	if ownAttr != "" {
		aff = aff.Mul(parseTransform(ownAttr))
	}
	if aff != curve.Identity {
		path = path.Transform(aff)
	}
	d.paths = append(d.paths, path)
}

// parsePoints converts a polyline/polygon points attribute into a path of
// lowered line cubics.
func parsePoints(attr string, closed bool) (curve.BezPath, error) {
	fields := strings.FieldsFunc(attr, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return nil, nil
	}
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("%w: odd coordinate count %d in points", ErrBadPathData, len(fields))
	}

	pts := make([]curve.Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad coordinate %q in points", ErrBadPathData, fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad coordinate %q in points", ErrBadPathData, fields[i+1])
		}
		pts = append(pts, curve.Point{X: x, Y: y})
	}
	if len(pts) < 2 {
		return nil, nil
	}

	path := curve.BezPath{curve.MoveTo(pts[0])}
	cur := pts[0]
	for _, pt := range pts[1:] {
		c := curve.PathSegment{Kind: curve.LineKind, P0: cur, P1: pt}.Cubic()
		path = append(path, curve.CubicTo(c.P1, c.P2, c.P3))
		cur = pt
	}
	if closed {
		path = append(path, curve.ClosePath())
	}
	return path, nil
}

// viewBoxSize extracts width and height from a viewBox attribute, zero on
// any malformation.
func viewBoxSize(attr string) (w, h float64) {
	parts := strings.Fields(attr)
	if len(parts) != 4 {
		return 0, 0
	}
	w, errW := strconv.ParseFloat(parts[2], 64)
	h, errH := strconv.ParseFloat(parts[3], 64)
	if errW != nil || errH != nil {
		return 0, 0
	}
	return w, h
}

// parseTransform evaluates a transform attribute: a list of translate,
// scale and matrix functions applied left to right. Unknown functions and
// malformed arguments evaluate to the identity.
func parseTransform(attr string) curve.Affine {
	aff := curve.Identity
	rest := attr

	for {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			return aff
		}
		closeIdx := strings.IndexByte(rest[open:], ')')
		if closeIdx < 0 {
			return aff
		}
		closeIdx += open

		name := strings.TrimSpace(strings.Trim(rest[:open], " \t\n\r,"))
		args := transformArgs(rest[open+1 : closeIdx])
		rest = rest[closeIdx+1:]

		switch name {
		case "translate":
			switch len(args) {
			case 1:
				aff = aff.Mul(curve.Translate(curve.Vec2{X: args[0]}))
			case 2:
				aff = aff.Mul(curve.Translate(curve.Vec2{X: args[0], Y: args[1]}))
			}
		case "scale":
			switch len(args) {
			case 1:
				aff = aff.Mul(curve.Scale(args[0], args[0]))
			case 2:
				aff = aff.Mul(curve.Scale(args[0], args[1]))
			}
		case "matrix":
			if len(args) == 6 {
				aff = aff.Mul(curve.NewAffine([6]float64{
					args[0], args[1], args[2], args[3], args[4], args[5],
				}))
			}
		}
	}
}

// transformArgs splits a transform function's argument list into floats,
// dropping anything unparseable.
func transformArgs(s string) []float64 {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	args := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil
		}
		args = append(args, v)
	}
	return args
}

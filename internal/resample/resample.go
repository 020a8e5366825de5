// Package resample converts cubic-Bezier vector paths into fixed-size point
// sequences spaced uniformly by arc length. Sample counts are distributed
// across subpaths proportional to their measured lengths, so one call over a
// multi-contour drawing yields exactly the requested number of points.
//
// Degenerate geometry never fails: an input with no usable curves resamples
// to the requested number of points at the origin, which callers can detect
// and treat as a missing drawing.
package resample

import (
	"math"
	"sort"

	"honnef.co/go/curve"

	"github.com/tphakala/go-epicycles/internal/mathutil"
)

// polyline is the flattened form of one subpath: ordered vertices with the
// cumulative arc length at each.
type polyline struct {
	pts    []curve.Point
	cum    []float64
	length float64
}

// segment pairs a cubic with its chord-estimated length.
type segment struct {
	cubic  curve.CubicBez
	length float64
}

// ResamplePath splits path at MoveTo boundaries, lowers every drawing
// element to a cubic, and resamples the result to targetCount points.
func ResamplePath(path curve.BezPath, targetCount int) []curve.Point {
	return Resample(splitCubics(path), targetCount)
}

// Resample distributes targetCount points uniformly by arc length over the
// given subpaths. The result always has exactly targetCount points; inputs
// with no usable geometry produce targetCount points at the origin. A
// targetCount <= 0 produces nil.
func Resample(subpaths [][]curve.CubicBez, targetCount int) []curve.Point {
	if targetCount <= 0 {
		return nil
	}

	kept, totalEstimate := measure(subpaths)
	if len(kept) == 0 || totalEstimate <= 0 {
		return make([]curve.Point, targetCount)
	}

	// Common oversampling step across all segments, floored so a tiny
	// drawing cannot demand an unbounded vertex count.
	ds := math.Max(totalEstimate/(float64(targetCount)*oversampleFactor), mathutil.Epsilon)

	polys := flatten(kept, ds)
	if len(polys) == 0 {
		return make([]curve.Point, targetCount)
	}

	total := 0.0
	for i := range polys {
		total += polys[i].length
	}

	counts := allocate(polys, total, targetCount)

	out := make([]curve.Point, 0, targetCount)
	for i := range polys {
		out = appendSamples(out, &polys[i], counts[i])
	}
	return out
}

// measure estimates every cubic's length, drops degenerate segments and
// empty subpaths, and totals the estimates.
func measure(subpaths [][]curve.CubicBez) ([][]segment, float64) {
	kept := make([][]segment, 0, len(subpaths))
	total := 0.0

	for _, sp := range subpaths {
		segs := make([]segment, 0, len(sp))
		for _, c := range sp {
			l := estimateLength(c, estimateSamples)
			if l > minSegmentEstimate {
				total += l
				segs = append(segs, segment{cubic: c, length: l})
			}
		}
		if len(segs) > 0 {
			kept = append(kept, segs)
		}
	}
	return kept, total
}

// estimateLength sums uniform parameter chords over the cubic.
func estimateLength(c curve.CubicBez, samples int) float64 {
	if samples < 1 {
		return 0
	}

	prev := c.Eval(0)
	total := 0.0
	inv := 1 / float64(samples)
	for i := 1; i <= samples; i++ {
		cur := c.Eval(float64(i) * inv)
		total += cur.Sub(prev).Hypot()
		prev = cur
	}
	return total
}

// flatten turns each subpath into a polyline, sampling every cubic at
// max(2, ceil(length/ds)) parameters and collapsing near-coincident
// vertices. Subpaths that flatten to fewer than two distinct vertices or to
// zero length are dropped.
func flatten(kept [][]segment, ds float64) []polyline {
	polys := make([]polyline, 0, len(kept))

	for _, segs := range kept {
		var poly polyline
		for _, s := range segs {
			k := int(math.Ceil(s.length / ds))
			if k < 2 {
				k = 2
			}
			denom := float64(k - 1)
			for j := 0; j < k; j++ {
				p := s.cubic.Eval(float64(j) / denom)
				if len(poly.pts) == 0 ||
					p.Sub(poly.pts[len(poly.pts)-1]).Hypot2() > dedupEpsilonSq {
					poly.pts = append(poly.pts, p)
				}
			}
		}

		if len(poly.pts) < 2 {
			continue
		}
		poly.cum = make([]float64, len(poly.pts))
		for i := 1; i < len(poly.pts); i++ {
			poly.cum[i] = poly.cum[i-1] + poly.pts[i].Sub(poly.pts[i-1]).Hypot()
		}
		poly.length = poly.cum[len(poly.cum)-1]
		if poly.length > 0 {
			polys = append(polys, poly)
		}
	}
	return polys
}

// allocate splits targetCount across polylines proportional to exact length
// using largest-remainder rounding, then repairs any residual mismatch:
// missing points go to the longest polylines first, surplus points come off
// the shortest first. The returned counts always sum to targetCount.
func allocate(polys []polyline, total float64, targetCount int) []int {
	p := len(polys)
	counts := make([]int, p)

	type remainder struct {
		frac float64
		idx  int
	}
	rem := make([]remainder, p)

	baseSum := 0
	for i := range polys {
		exact := float64(targetCount) * (polys[i].length / total)
		base := int(math.Floor(exact))
		counts[i] = base
		baseSum += base
		rem[i] = remainder{frac: exact - float64(base), idx: i}
	}

	sort.SliceStable(rem, func(a, b int) bool { return rem[a].frac > rem[b].frac })
	leftover := targetCount - baseSum
	for k := 0; k < leftover && k < p; k++ {
		counts[rem[k].idx]++
	}

	final := 0
	for _, c := range counts {
		final += c
	}

	switch {
	case final < targetCount:
		order := lengthOrder(polys, func(a, b float64) bool { return a > b })
		deficit := targetCount - final
		for deficit > 0 {
			for _, idx := range order {
				counts[idx]++
				deficit--
				if deficit == 0 {
					break
				}
			}
		}
	case final > targetCount:
		order := lengthOrder(polys, func(a, b float64) bool { return a < b })
		excess := final - targetCount
		for _, idx := range order {
			if excess == 0 {
				break
			}
			take := min(excess, counts[idx])
			counts[idx] -= take
			excess -= take
		}
	}
	return counts
}

// lengthOrder returns polyline indices sorted by length under less, equal
// lengths keeping index order.
func lengthOrder(polys []polyline, less func(a, b float64) bool) []int {
	order := make([]int, len(polys))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return less(polys[order[a]].length, polys[order[b]].length)
	})
	return order
}

// appendSamples appends count points sampled from the polyline at arc
// lengths s = step/2 + j*step, locating each by binary search over the
// cumulative lengths and interpolating within the bracketing span.
func appendSamples(dst []curve.Point, poly *polyline, count int) []curve.Point {
	if count == 0 {
		return dst
	}

	step := poly.length / float64(count)
	offset := step / 2

	for j := 0; j < count; j++ {
		s := offset + float64(j)*step
		if s >= poly.length {
			s = math.Nextafter(poly.length, 0)
		}

		hi := sort.Search(len(poly.cum), func(i int) bool { return poly.cum[i] > s })
		if hi < 1 {
			hi = 1
		}
		if hi > len(poly.cum)-1 {
			hi = len(poly.cum) - 1
		}
		lo := hi - 1

		span := poly.cum[hi] - poly.cum[lo]
		if span < minSpanLength {
			span = minSpanLength
		}
		t := (s - poly.cum[lo]) / span
		dst = append(dst, poly.pts[lo].Lerp(poly.pts[hi], t))
	}
	return dst
}

// splitCubics walks the path elements, starting a new subpath at every
// MoveTo and lowering lines, quadratics and cubics to cubic segments.
// ClosePath emits the closing line when the pen is away from the subpath
// start.
func splitCubics(path curve.BezPath) [][]curve.CubicBez {
	var subpaths [][]curve.CubicBez
	var cur []curve.CubicBez
	var pen, start curve.Point

	flush := func() {
		if len(cur) > 0 {
			subpaths = append(subpaths, cur)
			cur = nil
		}
	}

	for _, el := range path {
		switch el.Kind {
		case curve.MoveToKind:
			flush()
			pen, start = el.P0, el.P0
		case curve.LineToKind:
			cur = append(cur, curve.PathSegment{
				Kind: curve.LineKind, P0: pen, P1: el.P0,
			}.Cubic())
			pen = el.P0
		case curve.QuadToKind:
			cur = append(cur, curve.PathSegment{
				Kind: curve.QuadKind, P0: pen, P1: el.P0, P2: el.P1,
			}.Cubic())
			pen = el.P1
		case curve.CubicToKind:
			cur = append(cur, curve.CubicBez{P0: pen, P1: el.P0, P2: el.P1, P3: el.P2})
			pen = el.P2
		case curve.ClosePathKind:
			if pen != start {
				cur = append(cur, curve.PathSegment{
					Kind: curve.LineKind, P0: pen, P1: start,
				}.Cubic())
			}
			pen = start
		}
	}
	flush()
	return subpaths
}

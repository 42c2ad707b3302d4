/*
 * backend/chart/pie.go
 *
 * Severity pie geometry. The backend computes slice angles once per
 * snapshot and keeps them for hit-testing; the frontend just draws arcs.
 */

package chart

import (
	"math"

	"github.com/argusdeck/app/backend/aggregate"
	"github.com/argusdeck/app/backend/model"
)

// pieStartAngle puts the first slice boundary at 12 o'clock. Slices proceed
// clockwise in fixed category order.
const pieStartAngle = -math.Pi / 2

// PieSlice is one drawn wedge of the severity breakdown.
type PieSlice struct {
	Severity   model.Severity `json:"severity"`
	StartAngle float64        `json:"startAngle"`
	EndAngle   float64        `json:"endAngle"`
	Count      int            `json:"count"`
}

// Pie holds the slice table for rendering and hit-testing.
type Pie struct {
	Slices []PieSlice `json:"slices"`
	Total  int        `json:"total"`
}

// Empty reports whether there is nothing to draw. The renderer shows a
// distinct empty state instead of a degenerate zero-sweep chart.
func (p Pie) Empty() bool { return p.Total == 0 }

// BuildPie converts severity counts into a slice table. Zero-count
// categories are filtered out; the remaining slices partition
// [-π/2, -π/2+2π) with no gaps or overlaps, in the counts' fixed order.
func BuildPie(counts []aggregate.SeverityCount) Pie {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	if total == 0 {
		return Pie{}
	}

	pie := Pie{Total: total}
	start := pieStartAngle
	for _, c := range counts {
		if c.Count == 0 {
			continue
		}
		sweep := float64(c.Count) / float64(total) * 2 * math.Pi
		pie.Slices = append(pie.Slices, PieSlice{
			Severity:   c.Severity,
			StartAngle: start,
			EndAngle:   start + sweep,
			Count:      c.Count,
		})
		start += sweep
	}
	// Close the ring exactly: floating point drift must not leave a sliver
	// between the last edge and the first.
	pie.Slices[len(pie.Slices)-1].EndAngle = pieStartAngle + 2*math.Pi
	return pie
}

// normalizeAngle maps any angle into [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// HitTest maps a pointer position relative to the chart center onto a slice.
// radius is the drawable radius; points outside it miss. Exactly one slice
// matches any in-band point because the slices partition the full circle.
func (p Pie) HitTest(x, y, radius float64) (PieSlice, bool) {
	if p.Empty() {
		return PieSlice{}, false
	}
	if math.Hypot(x, y) > radius {
		return PieSlice{}, false
	}

	// Shift by π/2 so the 12 o'clock start boundary sits at zero, then
	// compare within [0, 2π).
	click := normalizeAngle(math.Atan2(y, x) + math.Pi/2)
	for _, slice := range p.Slices {
		s := normalizeAngle(slice.StartAngle + math.Pi/2)
		e := normalizeAngle(slice.EndAngle + math.Pi/2)
		if s <= e && click >= s && click < e {
			return slice, true
		}
		// Wrapped interval crossing the zero boundary.
		if s > e && (click >= s || click < e) {
			return slice, true
		}
	}
	// The full circle closes at exactly 2π, which normalizes to 0 and is
	// owned by the first slice.
	return p.Slices[0], true
}

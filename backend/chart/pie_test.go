package chart

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/argusdeck/app/backend/aggregate"
	"github.com/argusdeck/app/backend/model"
)

func fourWayCounts() []aggregate.SeverityCount {
	return []aggregate.SeverityCount{
		{Severity: model.SeverityCritical, Count: 4},
		{Severity: model.SeverityHigh, Count: 3},
		{Severity: model.SeverityMedium, Count: 2},
		{Severity: model.SeverityLow, Count: 1},
	}
}

func TestBuildPiePartition(t *testing.T) {
	pie := BuildPie(fourWayCounts())
	require.False(t, pie.Empty())
	require.Len(t, pie.Slices, 4)

	// Contiguous: each slice starts where the previous ended.
	require.InDelta(t, -math.Pi/2, pie.Slices[0].StartAngle, 1e-12)
	for i := 1; i < len(pie.Slices); i++ {
		require.InDelta(t, pie.Slices[i-1].EndAngle, pie.Slices[i].StartAngle, 1e-12)
	}

	// Sweeps sum to exactly 2π.
	var sweep float64
	for _, s := range pie.Slices {
		require.Greater(t, s.EndAngle, s.StartAngle)
		sweep += s.EndAngle - s.StartAngle
	}
	require.InDelta(t, 2*math.Pi, sweep, 1e-9)

	// The ring closes exactly.
	last := pie.Slices[len(pie.Slices)-1]
	require.Equal(t, -math.Pi/2+2*math.Pi, last.EndAngle)
}

func TestBuildPieFiltersZeroCategories(t *testing.T) {
	counts := []aggregate.SeverityCount{
		{Severity: model.SeverityCritical, Count: 0},
		{Severity: model.SeverityHigh, Count: 5},
		{Severity: model.SeverityMedium, Count: 0},
		{Severity: model.SeverityLow, Count: 0},
	}
	pie := BuildPie(counts)
	require.Len(t, pie.Slices, 1)
	require.Equal(t, model.SeverityHigh, pie.Slices[0].Severity)
}

func TestBuildPieEmpty(t *testing.T) {
	pie := BuildPie([]aggregate.SeverityCount{
		{Severity: model.SeverityCritical, Count: 0},
		{Severity: model.SeverityLow, Count: 0},
	})
	require.True(t, pie.Empty())
	require.Empty(t, pie.Slices)

	_, ok := pie.HitTest(0, 0, 100)
	require.False(t, ok)
}

func TestHitTestOutsideRadius(t *testing.T) {
	pie := BuildPie(fourWayCounts())
	_, ok := pie.HitTest(200, 0, 100)
	require.False(t, ok)
}

func TestHitTestMidpoints(t *testing.T) {
	pie := BuildPie(fourWayCounts())
	const radius = 100.0

	for _, slice := range pie.Slices {
		mid := (slice.StartAngle + slice.EndAngle) / 2
		x := math.Cos(mid) * radius / 2
		y := math.Sin(mid) * radius / 2

		hit, ok := pie.HitTest(x, y, radius)
		require.True(t, ok)
		require.Equal(t, slice.Severity, hit.Severity)
	}
}

func TestHitTestEveryInBandAngleMatchesExactlyOneSlice(t *testing.T) {
	pie := BuildPie(fourWayCounts())
	const radius = 100.0
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		angle := rng.Float64()*2*math.Pi - math.Pi
		dist := rng.Float64() * radius
		x := math.Cos(angle) * dist
		y := math.Sin(angle) * dist

		hit, ok := pie.HitTest(x, y, radius)
		require.True(t, ok, "every in-band point hits a slice")

		matches := 0
		click := normalizeAngle(math.Atan2(y, x) + math.Pi/2)
		for _, s := range pie.Slices {
			start := normalizeAngle(s.StartAngle + math.Pi/2)
			end := normalizeAngle(s.EndAngle + math.Pi/2)
			in := false
			if start <= end {
				in = click >= start && click < end
			} else {
				in = click >= start || click < end
			}
			if in {
				matches++
				require.Equal(t, s.Severity, hit.Severity)
			}
		}
		require.LessOrEqual(t, matches, 1, "intervals never overlap")
	}
}

func TestHitTestSingleSliceFullCircle(t *testing.T) {
	pie := BuildPie([]aggregate.SeverityCount{{Severity: model.SeverityLow, Count: 7}})
	for _, angle := range []float64{0, 1, 2, 3, -1, -2, -3} {
		hit, ok := pie.HitTest(math.Cos(angle)*10, math.Sin(angle)*10, 100)
		require.True(t, ok)
		require.Equal(t, model.SeverityLow, hit.Severity)
	}
}

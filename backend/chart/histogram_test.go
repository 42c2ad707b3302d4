package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/argusdeck/app/backend/aggregate"
	"github.com/argusdeck/app/backend/model"
)

func TestBuildHistogramNoData(t *testing.T) {
	hist := BuildHistogram(nil, 600, 200)
	require.True(t, hist.NoData)
	require.Empty(t, hist.Bars)
}

func TestBuildHistogramStackOrderAndHeights(t *testing.T) {
	buckets := []aggregate.HourBucket{
		{
			Start: time.Date(2024, 3, 9, 11, 0, 0, 0, time.UTC),
			Label: "09 Mar 14:00",
			Low:   2, Medium: 1, High: 1, Critical: 1, // total 5
		},
		{
			Start: time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC),
			Label: "09 Mar 13:00",
			Low:   1, // total 1
		},
	}

	hist := BuildHistogram(buckets, 600, 200)
	require.False(t, hist.NoData)
	require.Equal(t, 5, hist.MaxCount)
	require.Len(t, hist.Bars, 2)

	full := hist.Bars[0]
	require.Len(t, full.Segments, 4)

	// Bottom-to-top: low, medium, high, critical.
	require.Equal(t, model.SeverityLow, full.Segments[0].Severity)
	require.Equal(t, model.SeverityMedium, full.Segments[1].Severity)
	require.Equal(t, model.SeverityHigh, full.Segments[2].Severity)
	require.Equal(t, model.SeverityCritical, full.Segments[3].Severity)

	// Critical sits visually topmost.
	require.InDelta(t, 0, full.Segments[3].Y, 1e-9)

	// Heights are proportional to the shared maximum.
	require.InDelta(t, 2.0/5.0*200, full.Segments[0].Height, 1e-9)
	require.InDelta(t, 1.0/5.0*200, full.Segments[1].Height, 1e-9)

	// Segments tile the bar with no gaps.
	prevTop := 200.0
	for _, seg := range full.Segments {
		require.InDelta(t, prevTop-seg.Height, seg.Y, 1e-9)
		prevTop = seg.Y
	}

	short := hist.Bars[1]
	require.Len(t, short.Segments, 1)
	require.InDelta(t, 1.0/5.0*200, short.Segments[0].Height, 1e-9)
}

func TestBuildHistogramFillsFromRightEdge(t *testing.T) {
	buckets := []aggregate.HourBucket{
		{Label: "newest", Low: 1},
		{Label: "older", Low: 1},
	}
	hist := BuildHistogram(buckets, 600, 200)
	require.Greater(t, hist.Bars[0].X, hist.Bars[1].X,
		"index 0 (newest) takes the rightmost slot; older buckets shift left")
}

func TestBuildHistogramFitsWidth(t *testing.T) {
	buckets := make([]aggregate.HourBucket, 24)
	for i := range buckets {
		buckets[i].Low = 1
	}
	hist := BuildHistogram(buckets, 600, 200)
	for _, bar := range hist.Bars {
		require.GreaterOrEqual(t, bar.X, 0.0)
		require.LessOrEqual(t, bar.X+bar.Width, 600.0)
	}
}

func TestBuildHistogramMaxCountFloor(t *testing.T) {
	// A bucket set whose totals are all zero still lays out without dividing
	// by zero.
	buckets := []aggregate.HourBucket{{Label: "x"}}
	hist := BuildHistogram(buckets, 600, 200)
	require.Equal(t, 1, hist.MaxCount)
	require.Empty(t, hist.Bars[0].Segments)
}

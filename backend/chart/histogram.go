/*
 * backend/chart/histogram.go
 *
 * Stacked hour-histogram geometry. Bars are laid out right-to-left so the
 * newest bucket sits rightmost, stacked low→medium→high→critical so the most
 * severe band is visually topmost.
 */

package chart

import (
	"github.com/argusdeck/app/backend/aggregate"
	"github.com/argusdeck/app/backend/model"
)

// barWidthDivisor and gapFactor derive bar geometry from the label count so
// the series always fits the drawable width.
const (
	barWidthDivisor = 40
	gapFactor       = 5
)

// stackOrder is the bottom-to-top drawing order of a bar's bands.
var stackOrder = []model.Severity{
	model.SeverityLow,
	model.SeverityMedium,
	model.SeverityHigh,
	model.SeverityCritical,
}

// BarSegment is one severity band of a stacked bar, in plot coordinates
// with the origin at the top-left of the plot area.
type BarSegment struct {
	Severity model.Severity `json:"severity"`
	Y        float64        `json:"y"`
	Height   float64        `json:"height"`
}

// Bar is one hour bucket's stacked column.
type Bar struct {
	Label    string       `json:"label"`
	X        float64      `json:"x"`
	Width    float64      `json:"width"`
	Segments []BarSegment `json:"segments"`
}

// Histogram is the computed layout handed to the renderer.
type Histogram struct {
	Bars     []Bar `json:"bars"`
	MaxCount int   `json:"maxCount"`
	// NoData distinguishes an explicit empty state from a zero-height chart.
	NoData bool `json:"noData"`
}

// BuildHistogram lays out buckets (already newest-first) across a plot area
// of the given size. The shared maximum is the largest stacked total across
// all buckets, floored at 1 so heights stay well-defined.
func BuildHistogram(buckets []aggregate.HourBucket, plotWidth, plotHeight float64) Histogram {
	if len(buckets) == 0 {
		return Histogram{NoData: true}
	}

	maxCount := 0
	for _, b := range buckets {
		if t := b.Total(); t > maxCount {
			maxCount = t
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	barWidth := plotWidth / float64(len(buckets)*barWidthDivisor)
	if barWidth < 1 {
		barWidth = 1
	}
	gap := barWidth * gapFactor

	hist := Histogram{MaxCount: maxCount}
	for i, b := range buckets {
		// Index 0 is the newest bucket and takes the rightmost slot;
		// columns fill from the right edge leftwards.
		x := plotWidth - float64(i+1)*(barWidth+gap) + gap

		bar := Bar{Label: b.Label, X: x, Width: barWidth}
		y := plotHeight
		for _, sev := range stackOrder {
			count := severityCount(b, sev)
			if count == 0 {
				continue
			}
			h := float64(count) / float64(maxCount) * plotHeight
			y -= h
			bar.Segments = append(bar.Segments, BarSegment{
				Severity: sev,
				Y:        y,
				Height:   h,
			})
		}
		hist.Bars = append(hist.Bars, bar)
	}
	return hist
}

func severityCount(b aggregate.HourBucket, sev model.Severity) int {
	switch sev {
	case model.SeverityCritical:
		return b.Critical
	case model.SeverityHigh:
		return b.High
	case model.SeverityMedium:
		return b.Medium
	case model.SeverityLow:
		return b.Low
	}
	return 0
}

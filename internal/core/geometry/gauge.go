package geometry

import "math"

// Band is a colour band for a 0-100 risk score.
type Band string

// Gauge bands. Higher scores mean more risk.
const (
	BandLow  Band = "low"
	BandMid  Band = "mid"
	BandHigh Band = "high"
)

// Band thresholds.
const (
	midBandFrom  = 35
	highBandFrom = 65
)

// ClampScore limits score to [0, 100]. NaN maps to 0.
func ClampScore(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(0, math.Min(100, score))
}

// GaugeFill returns the filled fraction of a gauge for score.
func GaugeFill(score float64) float64 {
	return ClampScore(score) / 100
}

// GaugeBand returns the colour band for score: low below 35,
// mid from 35 to 64, high from 65.
func GaugeBand(score float64) Band {
	s := ClampScore(score)
	switch {
	case s < midBandFrom:
		return BandLow
	case s < highBandFrom:
		return BandMid
	default:
		return BandHigh
	}
}

// GaugeDash returns the SVG dash lengths for a semicircular gauge of
// radius r: the filled length and the full arc length.
func GaugeDash(score, r float64) (filled, total float64) {
	total = math.Pi * r
	return GaugeFill(score) * total, total
}

// GaugeTrackPath returns the semicircle path a gauge is drawn along.
func GaugeTrackPath(c Circle) string {
	return ArcPath(c, 180, 180)
}

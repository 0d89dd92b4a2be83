package geometry

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

var unit = Circle{CX: 50, CY: 50, R: 40}

func TestDonutSegments_EmptyAndZero(t *testing.T) {
	assert.Empty(t, DonutSegments(unit, nil))
	assert.Empty(t, DonutSegments(unit, []domain.ChartSlice{}))
	assert.Empty(t, DonutSegments(unit, []domain.ChartSlice{{Label: "a"}, {Label: "b", Value: 0}}))
	assert.Empty(t, DonutSegments(unit, []domain.ChartSlice{{Label: "neg", Value: -5}}))
}

func TestDonutSegments_FractionsAndSpans(t *testing.T) {
	slices := []domain.ChartSlice{
		{Label: "Household", Value: 10000, Color: "#4a8fd4"},
		{Label: "Debt EMI", Value: 600, Color: "#e05a4a"},
		{Label: "Farm Inputs", Value: 3000, Color: "#c87a30"},
		{Label: "Surplus", Value: 1400, Color: "#3a9a64"},
	}

	segments := DonutSegments(unit, slices)
	require.Len(t, segments, 4)

	var fractions, sweeps float64
	for i, s := range segments {
		assert.Equal(t, slices[i].Label, s.Label, "input order is kept")
		assert.Equal(t, slices[i].Color, s.Color)
		fractions += s.Fraction
		sweeps += s.Sweep
	}
	assert.InDelta(t, 1.0, fractions, 1e-9)
	assert.InDelta(t, 360.0, sweeps, 1e-9)

	assert.InDelta(t, StartAngle, segments[0].StartAngle, 1e-9)
	for i := 1; i < len(segments); i++ {
		assert.InDelta(t, segments[i-1].StartAngle+segments[i-1].Sweep, segments[i].StartAngle, 1e-9, "contiguous")
	}
}

func TestDonutSegments_NonFiniteValuesCountAsZero(t *testing.T) {
	segments := DonutSegments(unit, []domain.ChartSlice{
		{Label: "Household", Value: 3000},
		{Label: "Broken", Value: math.Inf(1)},
		{Label: "Missing", Value: math.NaN()},
		{Label: "Inputs", Value: 1000},
	})

	require.Len(t, segments, 4)
	assert.InDelta(t, 0.75, segments[0].Fraction, 1e-9)
	assert.Zero(t, segments[1].Fraction)
	assert.Zero(t, segments[2].Fraction)
	assert.InDelta(t, 0.25, segments[3].Fraction, 1e-9)
	for _, s := range segments {
		assert.NotContains(t, s.Path, "NaN")
	}

	assert.Empty(t, DonutSegments(unit, []domain.ChartSlice{{Label: "only", Value: math.Inf(-1)}}))
}

func TestDonutSegments_LargeArcFlag(t *testing.T) {
	segments := DonutSegments(unit, []domain.ChartSlice{
		{Label: "big", Value: 3},
		{Label: "small", Value: 1},
	})
	require.Len(t, segments, 2)

	assert.Contains(t, segments[0].Path, " 0 1 1 ", "270 degree span sets large-arc")
	assert.Contains(t, segments[1].Path, " 0 0 1 ", "90 degree span does not")
}

func TestDonutSegments_ExactlyHalfIsNotLarge(t *testing.T) {
	segments := DonutSegments(unit, []domain.ChartSlice{{Value: 1}, {Value: 1}})
	require.Len(t, segments, 2)
	assert.Contains(t, segments[0].Path, " 0 0 1 ")
}

func TestDonutSegments_SingleSegmentIsFullCircle(t *testing.T) {
	segments := DonutSegments(unit, []domain.ChartSlice{{Label: "all", Value: 5}, {Label: "none", Value: 0}})
	require.Len(t, segments, 2)

	assert.InDelta(t, 360.0, segments[0].Sweep, 1e-9)
	assert.Equal(t, 2, strings.Count(segments[0].Path, "A "), "full circle uses two arcs")
	assert.Empty(t, segments[1].Path)
	assert.Zero(t, segments[1].Fraction)
}

func TestArcPath_StartsAtTwelveOClock(t *testing.T) {
	path := ArcPath(unit, StartAngle, 90)
	assert.Equal(t, "M 50 10 A 40 40 0 0 1 90 50", path)
}

func TestGaugeFill_ClampsAndIsMonotonic(t *testing.T) {
	assert.Equal(t, GaugeFill(0), GaugeFill(-10))
	assert.Equal(t, GaugeFill(100), GaugeFill(150))
	assert.InDelta(t, 0.42, GaugeFill(42), 1e-9)

	prev := GaugeFill(-20)
	for score := -20.0; score <= 120; score += 0.5 {
		got := GaugeFill(score)
		assert.GreaterOrEqual(t, got, prev)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
		prev = got
	}
}

func TestGaugeBand(t *testing.T) {
	tests := []struct {
		score    float64
		expected Band
	}{
		{-5, BandLow},
		{0, BandLow},
		{34.9, BandLow},
		{35, BandMid},
		{64, BandMid},
		{65, BandHigh},
		{100, BandHigh},
		{250, BandHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GaugeBand(tt.score), "score %v", tt.score)
	}
}

func TestGaugeDash(t *testing.T) {
	filled, total := GaugeDash(50, 36)
	assert.InDelta(t, 113.097, total, 1e-3)
	assert.InDelta(t, total/2, filled, 1e-9)
}

func TestGaugeTrackPath(t *testing.T) {
	assert.Equal(t, "M 14 54 A 36 36 0 0 1 86 54", GaugeTrackPath(Circle{CX: 50, CY: 54, R: 36}))
}

func TestSparklineNormalize(t *testing.T) {
	points, err := SparklineNormalize([]float64{10, 20, 15})

	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, Point{X: 0, Y: 0}, points[0])
	assert.Equal(t, Point{X: 0.5, Y: 1}, points[1])
	assert.Equal(t, Point{X: 1, Y: 0.5}, points[2])
}

func TestSparklineNormalize_FlatSeries(t *testing.T) {
	points, err := SparklineNormalize([]float64{7, 7, 7, 7})

	require.NoError(t, err)
	for _, p := range points {
		assert.Zero(t, p.Y)
		assert.False(t, p.X < 0 || p.X > 1)
	}
}

func TestSparklineNormalize_NonFiniteValuesCountAsZero(t *testing.T) {
	points, err := SparklineNormalize([]float64{10, math.Inf(1), 20, math.NaN()})

	require.NoError(t, err)
	require.Len(t, points, 4)
	for _, p := range points {
		assert.False(t, math.IsNaN(p.Y))
		assert.False(t, p.Y < 0 || p.Y > 1)
	}
	assert.Equal(t, 1.0, points[2].Y)
	assert.Zero(t, points[1].Y)
}

func TestSparklineNormalize_TooShort(t *testing.T) {
	_, err := SparklineNormalize([]float64{1})
	assert.ErrorIs(t, err, domain.ErrSeriesTooShort)

	_, err = SparklineNormalize(nil)
	assert.ErrorIs(t, err, domain.ErrSeriesTooShort)
}

func TestSparklinePath(t *testing.T) {
	points := []Point{{0, 0}, {0.5, 1}, {1, 0.5}}
	assert.Equal(t, "M 0 20 L 50 0 L 100 10", SparklinePath(points, 100, 20))
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, 85.0, ConfidencePercent("high"))
	assert.Equal(t, 55.0, ConfidencePercent("medium"))
	assert.Equal(t, 30.0, ConfidencePercent("low"))
	assert.Equal(t, 30.0, ConfidencePercent(""))

	assert.Equal(t, ConfidenceGood, ConfidenceBandFor(85))
	assert.Equal(t, ConfidenceCaution, ConfidenceBandFor(55))
	assert.Equal(t, ConfidenceRisk, ConfidenceBandFor(30))
	assert.Equal(t, ConfidenceCaution, ConfidenceBandFor(70))
}

func TestIncomeExpenseBars(t *testing.T) {
	bars := IncomeExpenseBars(domain.IncomeVsExpense{Income: 10000, Expenses: 12000, Surplus: -2000})

	require.Len(t, bars, 3)
	assert.Equal(t, 1.0, bars[0].Fraction)
	assert.Equal(t, 1.0, bars[1].Fraction, "overspend clamps to full")
	assert.Zero(t, bars[2].Value, "negative surplus floors at zero")
	assert.Zero(t, bars[2].Fraction)

	inf := IncomeExpenseBars(domain.IncomeVsExpense{Income: math.Inf(1), Expenses: math.Inf(1)})
	for _, b := range inf {
		assert.False(t, math.IsNaN(b.Fraction))
	}

	zero := IncomeExpenseBars(domain.IncomeVsExpense{Expenses: 500})
	for _, b := range zero {
		assert.Zero(t, b.Fraction)
	}
}

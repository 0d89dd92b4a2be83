package geometry

import (
	"fmt"
	"math"
	"strconv"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

// StartAngle is where the first segment begins: 12 o'clock.
const StartAngle = -90.0

// Circle positions a donut or gauge.
type Circle struct {
	CX, CY, R float64
}

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Segment is one rendered slice of a donut.
type Segment struct {
	Label    string
	Color    string
	Path     string
	Fraction float64

	// StartAngle and Sweep are in degrees.
	StartAngle float64
	Sweep      float64
}

// PolarToXY returns the point at angleDeg on c.
func PolarToXY(c Circle, angleDeg float64) Point {
	rad := angleDeg * math.Pi / 180
	return Point{X: c.CX + c.R*math.Cos(rad), Y: c.CY + c.R*math.Sin(rad)}
}

// DonutSegments lays slices out contiguously from StartAngle in input order.
// Negative and non-finite values count as zero. An empty or zero-sum input yields no
// segments; callers render a "no data" state.
func DonutSegments(c Circle, slices []domain.ChartSlice) []Segment {
	var total float64
	for _, s := range slices {
		total += nonNegative(s.Value)
	}
	if total <= 0 {
		return []Segment{}
	}

	segments := make([]Segment, 0, len(slices))
	angle := StartAngle
	for _, s := range slices {
		fraction := nonNegative(s.Value) / total
		sweep := 360 * fraction
		segments = append(segments, Segment{
			Label:      s.Label,
			Color:      s.Color,
			Path:       ArcPath(c, angle, sweep),
			Fraction:   fraction,
			StartAngle: angle,
			Sweep:      sweep,
		})
		angle += sweep
	}
	return segments
}

// ArcPath returns an SVG path for a circular arc of sweep degrees starting
// at startDeg. Sweeps over 180 degrees set the large-arc flag. A full
// circle is drawn as two half arcs, since an arc cannot end where it starts.
func ArcPath(c Circle, startDeg, sweep float64) string {
	if sweep <= 0 {
		return ""
	}

	start := PolarToXY(c, startDeg)
	if sweep >= 360 {
		mid := PolarToXY(c, startDeg+180)
		return fmt.Sprintf("M %s %s A %s %s 0 1 1 %s %s A %s %s 0 1 1 %s %s",
			num(start.X), num(start.Y),
			num(c.R), num(c.R), num(mid.X), num(mid.Y),
			num(c.R), num(c.R), num(start.X), num(start.Y))
	}

	end := PolarToXY(c, startDeg+sweep)
	largeArc := 0
	if sweep > 180 {
		largeArc = 1
	}
	return fmt.Sprintf("M %s %s A %s %s 0 %d 1 %s %s",
		num(start.X), num(start.Y),
		num(c.R), num(c.R), largeArc, num(end.X), num(end.Y))
}

// nonNegative maps negative and non-finite values to zero.
func nonNegative(v float64) float64 {
	return max(finite(v), 0)
}

// finite maps NaN and ±Inf to zero.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// num formats coordinates with three decimals, trimming trailing zeros.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	s = trimDot(s)
	if s == "-0" {
		return "0"
	}
	return s
}

func trimDot(s string) string {
	if s[len(s)-1] == '.' {
		return s[:len(s)-1]
	}
	return s
}

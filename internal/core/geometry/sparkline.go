package geometry

import (
	"fmt"
	"strings"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

// SparklineNormalize maps series into the unit box: x spreads evenly over
// [0, 1] and y is (v - min) / (max - min), with 1 as the denominator for a
// flat series. Non-finite values count as zero. Fewer than two points
// cannot define a line.
func SparklineNormalize(series []float64) ([]Point, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrSeriesTooShort, len(series))
	}

	lo, hi := finite(series[0]), finite(series[0])
	for _, v := range series[1:] {
		lo = min(lo, finite(v))
		hi = max(hi, finite(v))
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	last := float64(len(series) - 1)
	points := make([]Point, len(series))
	for i, v := range series {
		points[i] = Point{X: float64(i) / last, Y: (finite(v) - lo) / span}
	}
	return points, nil
}

// SparklinePath scales unit-box points to a width x height box as an SVG
// polyline path. SVG y grows downward, so y is flipped.
func SparklinePath(points []Point, width, height float64) string {
	var b strings.Builder
	for i, p := range points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s %s %s", cmd, num(p.X*width), num((1-p.Y)*height))
	}
	return b.String()
}

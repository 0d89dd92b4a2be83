// Package meter renders horizontal fill bars for scores and shares.
package meter

import (
	"fmt"
	"math"
	"strings"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/styles"
)

// Bar renders fraction (clamped to [0, 1]) as a bar of width cells.
func Bar(fraction float64, width int) string {
	if width < 1 {
		return ""
	}
	if math.IsNaN(fraction) || fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(math.Round(fraction * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Row renders "label  bar  value" with the bar coloured by band.
func Row(s *styles.Styles, label string, fraction float64, width int, band, value string) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return fmt.Sprintf("%s %s %s",
		s.Normal.Width(16).Render(label),
		s.Band(band).Render(Bar(fraction, width)),
		s.Muted.Render(value),
	)
}

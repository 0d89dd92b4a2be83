package geometry

import (
	"math"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

// ConfidencePercent maps a confidence label to a meter percentage.
func ConfidencePercent(confidence string) float64 {
	switch confidence {
	case "high":
		return 85
	case "medium":
		return 55
	default:
		return 30
	}
}

// ConfidenceBand is the colour band of a confidence meter.
type ConfidenceBand string

// Confidence bands.
const (
	ConfidenceGood    ConfidenceBand = "good"
	ConfidenceCaution ConfidenceBand = "caution"
	ConfidenceRisk    ConfidenceBand = "risk"
)

// ConfidenceBandFor returns the band for a meter percentage.
func ConfidenceBandFor(percent float64) ConfidenceBand {
	switch {
	case percent > 70:
		return ConfidenceGood
	case percent > 40:
		return ConfidenceCaution
	default:
		return ConfidenceRisk
	}
}

// Bar is one horizontal bar with a fill fraction in [0, 1].
type Bar struct {
	Label    string
	Value    float64
	Fraction float64
}

// IncomeExpenseBars scales income, expenses and surplus against income.
// Surplus is floored at zero. A zero income yields empty bars.
func IncomeExpenseBars(ie domain.IncomeVsExpense) []Bar {
	surplus := max(ie.Surplus, 0)
	values := []Bar{
		{Label: "Income", Value: ie.Income},
		{Label: "Expenses", Value: ie.Expenses},
		{Label: "Surplus", Value: surplus},
	}
	for i := range values {
		if ie.Income > 0 {
			values[i].Fraction = clampUnit(values[i].Value / ie.Income)
		}
	}
	return values
}

func clampUnit(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/geometry"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Compute chart geometry",
	Long:  `Compute donut, gauge, and sparkline geometry as SVG path data.`,
}

var chartDonutCmd = &cobra.Command{
	Use:   "donut [label=value...]",
	Short: "Donut segments for a breakdown",
	Long: `Lay out donut segments for label=value pairs. With no arguments the
expense breakdown of a fresh analysis of the saved profile is used.

Example:
  fundwise chart donut Household=6000 Inputs=2500 Loan=1500 --svg expenses.svg`,
	RunE: runChartDonut,
}

var chartGaugeCmd = &cobra.Command{
	Use:   "gauge [score]",
	Short: "Semicircle gauge for a 0-100 score",
	Args:  cobra.ExactArgs(1),
	RunE:  runChartGauge,
}

var chartSparklineCmd = &cobra.Command{
	Use:   "sparkline [value...]",
	Short: "Sparkline path for a series",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChartSparkline,
}

// Flags for chart commands.
var (
	chartSVG    string
	chartWidth  float64
	chartHeight float64
)

// donutCircle is the viewBox geometry used for rendered donuts.
var donutCircle = geometry.Circle{CX: 50, CY: 50, R: 40}

func init() {
	chartDonutCmd.Flags().StringVar(&chartSVG, "svg", "", "Write an SVG file")
	chartSparklineCmd.Flags().Float64Var(&chartWidth, "width", 0, "Path width (default: terminal width)")
	chartSparklineCmd.Flags().Float64Var(&chartHeight, "height", 24, "Path height")

	chartCmd.AddCommand(chartDonutCmd)
	chartCmd.AddCommand(chartGaugeCmd)
	chartCmd.AddCommand(chartSparklineCmd)
	rootCmd.AddCommand(chartCmd)
}

func runChartDonut(cmd *cobra.Command, args []string) error {
	var slices []domain.ChartSlice
	if len(args) > 0 {
		parsed, err := parseSlices(args)
		if err != nil {
			return err
		}
		slices = parsed
	} else {
		if err := requireAnalysis(); err != nil {
			return err
		}
		result, err := analyseProfile(cmd.Context(), domain.ProfileInput{Profile: profileService.Get()})
		if err != nil {
			return err
		}
		slices = result.ProfileSummary.ExpenseBreakdown
	}

	segments := geometry.DonutSegments(donutCircle, slices)
	if len(segments) == 0 {
		cmd.Println("No data to chart.")
		return nil
	}

	for _, s := range segments {
		cmd.Printf("  %-14s %5.1f%%  %s\n", s.Label, s.Fraction*100, s.Path)
	}

	if chartSVG != "" {
		if err := os.WriteFile(chartSVG, []byte(donutSVG(segments)), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", chartSVG, err)
		}
		cmd.Printf("Saved %s\n", chartSVG)
	}
	return nil
}

// parseSlices reads label=value pairs.
func parseSlices(args []string) ([]domain.ChartSlice, error) {
	slices := make([]domain.ChartSlice, 0, len(args))
	for _, arg := range args {
		label, raw, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(label) == "" {
			return nil, fmt.Errorf("%w: expected label=value, got %q", domain.ErrInvalidInput, arg)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, raw)
		}
		slices = append(slices, domain.ChartSlice{Label: strings.TrimSpace(label), Value: v})
	}
	return slices, nil
}

// segmentPalette colours slices that arrive without a colour.
var segmentPalette = []string{"#2d6a4f", "#40916c", "#52b788", "#95d5b2", "#f4a261", "#e76f51", "#264653"}

func donutSVG(segments []geometry.Segment) string {
	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">` + "\n")
	for i, s := range segments {
		color := s.Color
		if color == "" {
			color = segmentPalette[i%len(segmentPalette)]
		}
		fmt.Fprintf(&b, `  <path d="%s" fill="none" stroke="%s" stroke-width="12"><title>%s</title></path>`+"\n",
			s.Path, color, s.Label)
	}
	b.WriteString("</svg>\n")
	return b.String()
}

func runChartGauge(cmd *cobra.Command, args []string) error {
	score, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, args[0])
	}

	c := geometry.Circle{CX: 50, CY: 54, R: 36}
	filled, total := geometry.GaugeDash(score, c.R)

	cmd.Printf("Score: %.0f (%s)\n", geometry.ClampScore(score), geometry.GaugeBand(score))
	cmd.Printf("Fill:  %s %.0f%%\n", textBar(geometry.GaugeFill(score), 20), geometry.GaugeFill(score)*100)
	cmd.Printf("Track: %s\n", geometry.GaugeTrackPath(c))
	cmd.Printf("Dash:  %.2f %.2f\n", filled, total)
	return nil
}

func runChartSparkline(cmd *cobra.Command, args []string) error {
	series := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, a)
		}
		series = append(series, v)
	}

	points, err := geometry.SparklineNormalize(series)
	if errors.Is(err, domain.ErrSeriesTooShort) {
		cmd.Println("Need at least two values to draw a sparkline.")
		return nil
	}
	if err != nil {
		return err
	}

	width := chartWidth
	if width <= 0 {
		width = terminalWidth()
	}
	cmd.Println(geometry.SparklinePath(points, width, chartHeight))
	return nil
}

// terminalWidth returns the stdout width, or 80 when not a terminal.
func terminalWidth() float64 {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return float64(w)
		}
	}
	return 80
}

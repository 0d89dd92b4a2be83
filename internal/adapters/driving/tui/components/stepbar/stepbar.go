// Package stepbar renders wizard progress for the current step.
package stepbar

import (
	"fmt"
	"strings"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/styles"
	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driving"
)

// Bar shows "Step n of m" with one dot per wizard step.
type Bar struct {
	styles *styles.Styles
	nav    driving.NavigationController
}

// New creates a progress bar over the navigation controller.
func New(s *styles.Styles, nav driving.NavigationController) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Bar{styles: s, nav: nav}
}

// View renders progress for step. Steps outside the wizard render their
// title alone.
func (b *Bar) View(step domain.Step) string {
	ordinal, ok := b.nav.OrdinalOf(step)
	if !ok {
		return b.styles.Title.Render(step.Title())
	}

	total := len(domain.WizardOrder)
	dots := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		switch {
		case i == ordinal:
			dots = append(dots, b.styles.Subtitle.Render("●"))
		case i < ordinal:
			dots = append(dots, b.styles.Good.Render("●"))
		default:
			dots = append(dots, b.styles.Muted.Render("○"))
		}
	}

	heading := b.styles.Title.Render(fmt.Sprintf("Step %d of %d: %s", ordinal, total, step.Title()))
	return heading + "  " + strings.Join(dots, " ")
}

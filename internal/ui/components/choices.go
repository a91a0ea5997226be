package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/revquiz/internal/ui/theme"
)

// OptionLabels are the letters shown before answer options.
var OptionLabels = []string{"A", "B", "C", "D"}

// ChoiceList renders the options of a multiple-choice question.
type ChoiceList struct {
	Options []string
	// Cursor is the highlighted option while answering; -1 for none.
	Cursor int
	// Revealed shows the correct option in green and Chosen, if wrong, in red.
	Revealed bool
	Correct  int
	Chosen   int
}

// View renders the options one per line.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		label := fmt.Sprintf("%d", i+1)
		if i < len(OptionLabels) {
			label = OptionLabels[i]
		}
		prefix := "  "
		if !c.Revealed && i == c.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		var style lipgloss.Style
		switch {
		case c.Revealed && i == c.Correct:
			style = theme.Correct
			line += "  ✓"
		case c.Revealed && i == c.Chosen:
			style = theme.Incorrect
			line += "  ✗"
		case c.Revealed:
			style = theme.Dim
		case i == c.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}

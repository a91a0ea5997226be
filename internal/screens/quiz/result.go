package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/revquiz/internal/progress"
	"github.com/abhisek/revquiz/internal/revision"
	"github.com/abhisek/revquiz/internal/router"
	"github.com/abhisek/revquiz/internal/screen"
	"github.com/abhisek/revquiz/internal/screens/revisions"
	"github.com/abhisek/revquiz/internal/session"
	"github.com/abhisek/revquiz/internal/ui/components"
	"github.com/abhisek/revquiz/internal/ui/layout"
	"github.com/abhisek/revquiz/internal/ui/theme"
)

// ResultScreen shows the outcome of a completed session.
type ResultScreen struct {
	deps       *screen.Deps
	sess       *session.Session
	completion progress.Completion
	offset     int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)
var _ screen.EscapeHandler = (*ResultScreen)(nil)

func newResult(deps *screen.Deps, sess *session.Session, c progress.Completion) *ResultScreen {
	return &ResultScreen{deps: deps, sess: sess, completion: c}
}

func (r *ResultScreen) Init() tea.Cmd { return nil }

func (r *ResultScreen) Title() string { return "Result" }

// HandlesEscape sends Esc home rather than back into the finished quiz.
func (r *ResultScreen) HandlesEscape() bool { return true }

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Retry"},
		{Key: "M", Description: "Revision"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Home"},
	}
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return r, nil
	}
	switch kmsg.String() {
	case "r", "R":
		return r, router.Replace(newRestart(r.deps, r.sess))
	case "m", "M":
		return r, router.Replace(revisions.New(r.deps))
	case "enter", "esc", "h", "H":
		return r, router.Home()
	case "up", "k":
		if r.offset > 0 {
			r.offset--
		}
	case "down", "j":
		r.offset++
	}
	return r, nil
}

func (r *ResultScreen) View(width, height int) string {
	res := r.completion.Result
	cw := components.ContentWidth(width)

	scoreStyle := theme.Correct
	if res.Percent() < 50 {
		scoreStyle = theme.Incorrect
	}
	summary := []string{
		theme.Title.Render(res.Mode.Label() + " complete"),
		"",
		scoreStyle.Render(fmt.Sprintf("%d / %d  (%d%%)", res.Score, res.Total(), res.Percent())),
		theme.Body.Render(res.Message()),
		"",
		theme.Dim.Render(fmt.Sprintf("Time %s  ·  Streak %d day(s)", formatDuration(res), r.completion.Streak)),
	}
	if n := len(r.completion.NewMistakes); n > 0 {
		summary = append(summary, theme.Hint.Render(fmt.Sprintf("%d question(s) added to your revision list", n)))
	}
	if r.completion.Err != nil {
		summary = append(summary, theme.Incorrect.Render("Progress could not be saved: "+r.completion.Err.Error()))
	}
	head := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(lipgloss.JoinVertical(lipgloss.Center, summary...))

	review := renderReview(res, cw)
	reviewHeight := max(1, height-lipgloss.Height(head)-2)
	visible, offset := layout.Window(review, r.offset, reviewHeight)
	r.offset = offset

	return components.Centered(head+"\n\n"+visible, width, height)
}

func formatDuration(res *session.Result) string {
	secs := int(res.Duration().Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// renderReview lists every question with the learner's answer.
func renderReview(res *session.Result, cw int) string {
	var b strings.Builder
	for i, q := range res.Questions {
		mark := theme.Correct.Render("✓")
		if !res.Correct[i] {
			mark = theme.Incorrect.Render("✗")
		}
		b.WriteString(mark + " " + lipgloss.NewStyle().Width(cw-2).Foreground(theme.Text).Render(fmt.Sprintf("%d. %s", i+1, q.Text)))
		b.WriteString("\n")
		if !res.Correct[i] {
			given := revision.UnknownAnswerLabel
			if i < len(res.Answers) {
				if text, ok := q.OptionText(res.Answers[i]); ok {
					given = text
				}
			}
			b.WriteString(theme.Incorrect.Render("   Your answer: "+given) + "\n")
		}
		b.WriteString(theme.Correct.Render("   Answer: "+q.CorrectOption()) + "  " + theme.Reference.Render(q.Reference) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

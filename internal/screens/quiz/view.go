package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/revquiz/internal/session"
	"github.com/abhisek/revquiz/internal/ui/components"
	"github.com/abhisek/revquiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return components.Message(
			fmt.Sprintf("Could not start the quiz.\n\n%s\n\nPress Esc to go back.", s.errMsg),
			theme.Incorrect, width, height)
	case s.sess == nil:
		return components.Message(s.loadingText(), theme.Hint, width, height)
	case s.confirmQuit:
		return renderQuitConfirm(width, height)
	}

	cw := components.ContentWidth(width)
	var body string
	if s.sess.Mode() == session.ModeAudioMock {
		body = s.renderAudio(cw)
	} else {
		body = s.renderChoice(cw)
	}
	return components.Centered(s.renderInfo(cw)+"\n\n"+body, width, height)
}

func (s *QuizScreen) loadingText() string {
	switch s.mode {
	case session.ModeChapterQuiz:
		return fmt.Sprintf("Writing questions for chapter %d...", s.chapter)
	case session.ModeAudioMock:
		return "Preparing the audio mock exam..."
	default:
		return "Preparing the mock exam..."
	}
}

// renderInfo renders the progress line above the question.
func (s *QuizScreen) renderInfo(cw int) string {
	q := s.sess.Current()
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Question %d of %d", s.sess.Index()+1, s.sess.Total()))
	right := ""
	if q.Chapter > 0 && s.sess.Mode().IsMock() {
		right = theme.Dim.Render(fmt.Sprintf("chapter %d", q.Chapter))
	}
	gap := max(1, cw-lipgloss.Width(left)-lipgloss.Width(right))
	line := left + strings.Repeat(" ", gap) + right

	bar := components.NewProgressBar("", float64(s.sess.Index())/float64(s.sess.Total()), false, cw)
	return line + "\n" + bar.View()
}

func (s *QuizScreen) renderQuestion(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(s.sess.Current().Text)
}

func (s *QuizScreen) renderChoice(cw int) string {
	q := s.sess.Current()
	answered := s.sess.Phase() == session.PhaseAnswered

	list := components.ChoiceList{
		Options:  q.Options,
		Cursor:   s.sess.Selected(),
		Revealed: answered,
		Correct:  q.CorrectIndex,
		Chosen:   s.sess.Selected(),
	}

	var b strings.Builder
	b.WriteString(s.renderQuestion(cw))
	b.WriteString("\n\n")
	b.WriteString(list.View())

	if answered {
		b.WriteString("\n")
		if s.sess.LastCorrect() {
			b.WriteString(theme.Correct.Render("சரி! Correct."))
		} else {
			b.WriteString(theme.Incorrect.Render("தவறு. The answer is " + q.CorrectOption()))
		}
		if q.Reference != "" {
			b.WriteString("\n" + theme.Reference.Render(q.Reference))
		}
	}
	return b.String()
}

func (s *QuizScreen) renderAudio(cw int) string {
	q := s.sess.Current()

	var b strings.Builder
	status := theme.Dim.Render("🔈 waiting")
	switch {
	case s.speaking:
		status = lipgloss.NewStyle().Foreground(theme.Accent).Render("🔊 reading aloud")
	case s.speechErr != nil:
		status = theme.Dim.Render("🔇 speech unavailable")
	}
	b.WriteString(status)
	b.WriteString("\n\n")
	b.WriteString(s.renderQuestion(cw))
	b.WriteString("\n\n")

	switch s.sess.Phase() {
	case session.PhasePresenting:
		b.WriteString(components.Countdown(s.sess.Remaining(), s.sess.Countdown()))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Say your answer, then press Space to check it."))
	case session.PhaseRevealed:
		answer := theme.HighlightCard.Width(cw).Render(
			theme.Correct.Render(q.CorrectOption()) + "\n" + theme.Reference.Render(q.Reference))
		b.WriteString(answer)
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render("Did you get it right?  ") +
			theme.Correct.Render("[Y] yes") + "  " + theme.Incorrect.Render("[N] no"))
	}
	return b.String()
}

func renderQuitConfirm(width, height int) string {
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Leave this quiz?"),
		theme.Dim.Render("Answers so far will not be saved."),
		"",
		lipgloss.NewStyle().Foreground(theme.Error).Render("[Y] Yes, leave"),
		lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No, keep going"),
	}
	return components.Centered(lipgloss.JoinVertical(lipgloss.Center, lines...), width, height)
}

package quiz

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/revquiz/internal/content"
	"github.com/abhisek/revquiz/internal/progress"
	"github.com/abhisek/revquiz/internal/revision"
	"github.com/abhisek/revquiz/internal/router"
	"github.com/abhisek/revquiz/internal/screen"
	"github.com/abhisek/revquiz/internal/session"
	"github.com/abhisek/revquiz/internal/store"
)

type fakeContent struct {
	questions []session.Question
	err       error
	calls     []string
}

func (f *fakeContent) ChapterContext(context.Context, int) (*content.ChapterContext, error) {
	return nil, errors.New("not used")
}

func (f *fakeContent) ChapterQuestions(_ context.Context, chapter, count int) ([]session.Question, error) {
	f.calls = append(f.calls, fmt.Sprintf("chapter:%d:%d", chapter, count))
	return f.questions, f.err
}

func (f *fakeContent) MockExamQuestions(_ context.Context, count int, style content.Style) ([]session.Question, error) {
	f.calls = append(f.calls, fmt.Sprintf("mock:%d:%s", count, style))
	return f.questions, f.err
}

type quietSpeaker struct{}

func (quietSpeaker) Speak(ctx context.Context, _, _ string) error {
	<-ctx.Done()
	return ctx.Err()
}

func testQuestions() []session.Question {
	return []session.Question{
		{ID: 0, Text: "Who wrote the book?", Options: []string{"John", "Paul", "Peter", "James"}, CorrectIndex: 0, Reference: "1:1", Chapter: 1},
		{ID: 1, Text: "Where was he?", Options: []string{"Crete", "Patmos", "Cyprus", "Malta"}, CorrectIndex: 1, Reference: "1:9", Chapter: 1},
	}
}

func testDeps(t *testing.T, provider content.Provider) *screen.Deps {
	t.Helper()
	return &screen.Deps{
		Content:      provider,
		Progress:     progress.Load(context.Background(), progress.Deps{KV: store.NewMemoryKV()}),
		Speaker:      quietSpeaker{},
		ChapterCount: 20,
		MockCount:    25,
		Countdown:    10,
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// load runs the fetch command and feeds its result back.
func load(t *testing.T, s *QuizScreen) {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func resultOf(t *testing.T, cmd tea.Cmd) *ResultScreen {
	t.Helper()
	require.NotNil(t, cmd, "expected a navigation command")
	msg, ok := cmd().(router.NavMsg)
	require.True(t, ok, "expected a navigation message")
	require.Equal(t, router.OpReplace, msg.Op)
	r, ok := msg.Screen.(*ResultScreen)
	require.True(t, ok, "expected result screen")
	return r
}

func TestChapterQuiz_FullRun(t *testing.T) {
	provider := &fakeContent{questions: testQuestions()}
	deps := testDeps(t, provider)
	s := NewChapter(deps, 1)
	defer s.Close()

	load(t, s)
	assert.Equal(t, []string{"chapter:1:20"}, provider.calls)
	require.NotNil(t, s.Session())
	assert.Equal(t, session.PhaseAwaitingAnswer, s.Session().Phase())

	// Enter without a selection does nothing.
	s.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, session.PhaseAwaitingAnswer, s.Session().Phase())

	s.Update(keyPress('a'))
	assert.Equal(t, session.PhaseAnswered, s.Session().Phase())
	assert.True(t, s.Session().LastCorrect())

	s.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, 1, s.Session().Index())

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 2, s.Session().Selected())
	s.Update(specialKey(tea.KeyEnter))
	assert.False(t, s.Session().LastCorrect())

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	r := resultOf(t, cmd)

	assert.Equal(t, 1, r.completion.Result.Score)
	assert.Equal(t, 1, r.completion.Streak)
	require.Len(t, r.completion.NewMistakes, 1)
	assert.Equal(t, "Cyprus", r.completion.NewMistakes[0].UserAnswer)
	assert.Len(t, deps.Progress.Mistakes(), 1)
}

type countingHistory struct{ sessions []store.SessionEventData }

func (h *countingHistory) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	h.sessions = append(h.sessions, data)
	return nil
}

func TestChapterQuiz_RecordsCompletionOnce(t *testing.T) {
	history := &countingHistory{}
	deps := testDeps(t, &fakeContent{questions: testQuestions()})
	deps.Progress = progress.Load(context.Background(), progress.Deps{KV: store.NewMemoryKV(), History: history})
	s := NewChapter(deps, 1)
	defer s.Close()
	load(t, s)

	s.Update(keyPress('b'))
	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('a'))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	resultOf(t, cmd)

	// Keys that arrive before the navigation message is processed.
	for _, k := range []tea.KeyPressMsg{keyPress('x'), specialKey(tea.KeyEnter), keyPress('a')} {
		_, cmd = s.Update(k)
		assert.Nil(t, cmd)
	}

	assert.Len(t, deps.Progress.Mistakes(), 2)
	assert.Len(t, history.sessions, 1)
	assert.Equal(t, 1, deps.Progress.Streak())
}

func TestAudioMock_RecordsCompletionOnce(t *testing.T) {
	history := &countingHistory{}
	deps := testDeps(t, &fakeContent{questions: testQuestions()})
	deps.Progress = progress.Load(context.Background(), progress.Deps{KV: store.NewMemoryKV(), History: history})
	s := NewMock(deps, content.StyleAudio)
	defer s.Close()
	load(t, s)

	s.Update(keyPress(' '))
	s.Update(keyPress('n'))
	s.Update(keyPress(' '))
	_, cmd := s.Update(keyPress('n'))
	resultOf(t, cmd)

	_, cmd = s.Update(keyPress('y'))
	assert.Nil(t, cmd)
	_, cmd = s.Update(keyPress('n'))
	assert.Nil(t, cmd)

	assert.Len(t, deps.Progress.Mistakes(), 2)
	assert.Len(t, history.sessions, 1)
}

func TestChapterQuiz_FetchErrorGoesBack(t *testing.T) {
	provider := &fakeContent{err: content.ErrFetch}
	s := NewChapter(testDeps(t, provider), 4)
	defer s.Close()

	cmd := s.Init()
	require.NotNil(t, cmd)
	_, cmd = s.Update(cmd())
	assert.Nil(t, s.Session())
	assert.False(t, s.HandlesEscape())

	require.NotNil(t, cmd)
	msg, ok := cmd().(router.NavMsg)
	require.True(t, ok)
	assert.Equal(t, router.OpPop, msg.Op)
	assert.Contains(t, msg.Notice, content.ErrFetch.Error())
}

func TestChapterQuiz_EmptySetGoesBack(t *testing.T) {
	s := NewChapter(testDeps(t, &fakeContent{}), 4)
	defer s.Close()

	cmd := s.Init()
	require.NotNil(t, cmd)
	_, cmd = s.Update(cmd())
	require.NotNil(t, cmd)
	msg := cmd().(router.NavMsg)
	assert.Equal(t, router.OpPop, msg.Op)
	assert.NotEmpty(t, msg.Notice)
}

func TestChapterQuiz_NoProvider(t *testing.T) {
	deps := testDeps(t, nil)
	deps.Content = nil
	cmd := NewChapter(deps, 2).Init()
	require.NotNil(t, cmd)
	msg := cmd().(router.NavMsg)
	assert.Equal(t, router.OpPop, msg.Op)
	assert.Contains(t, msg.Notice, "No LLM provider")
}

func TestQuitConfirm(t *testing.T) {
	deps := testDeps(t, &fakeContent{questions: testQuestions()})
	s := NewChapter(deps, 1)
	load(t, s)

	assert.True(t, s.HandlesEscape())
	s.Update(specialKey(tea.KeyEscape))
	assert.True(t, s.confirmQuit)

	s.Update(keyPress('n'))
	assert.False(t, s.confirmQuit)

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	require.NotNil(t, cmd)
	assert.Equal(t, router.NavMsg{Op: router.OpPop}, cmd())

	s.Close()
	assert.Equal(t, session.PhaseExited, s.Session().Phase())
	assert.Empty(t, deps.Progress.Mistakes(), "an abandoned session records nothing")
}

func TestAudioMock_SelfGraded(t *testing.T) {
	provider := &fakeContent{questions: testQuestions()}
	deps := testDeps(t, provider)
	s := NewMock(deps, content.StyleAudio)
	defer s.Close()

	load(t, s)
	assert.Equal(t, []string{"mock:25:audio"}, provider.calls)
	sess := s.Session()
	require.NotNil(t, sess)
	assert.Equal(t, session.ModeAudioMock, sess.Mode())
	assert.Equal(t, session.PhasePresenting, sess.Phase())
	assert.Equal(t, 10, sess.Remaining())

	// Ticks from another presentation are ignored.
	s.Update(audioEventMsg{Kind: session.EventTick, Token: sess.Token() + 7})
	assert.Equal(t, 10, sess.Remaining())
	s.Update(audioEventMsg{Kind: session.EventTick, Token: sess.Token()})
	assert.Equal(t, 9, sess.Remaining())

	s.Update(audioEventMsg{Kind: session.EventSpeechStarted, Token: sess.Token()})
	assert.True(t, s.speaking)

	s.Update(keyPress(' '))
	assert.Equal(t, session.PhaseRevealed, sess.Phase())

	s.Update(keyPress('n'))
	assert.Equal(t, 1, sess.Index())
	assert.False(t, s.speaking)

	s.Update(keyPress(' '))
	_, cmd := s.Update(keyPress('y'))
	r := resultOf(t, cmd)

	assert.Equal(t, 1, r.completion.Result.Score)
	require.Len(t, r.completion.NewMistakes, 1)
	assert.Equal(t, revision.UnknownAnswerLabel, r.completion.NewMistakes[0].UserAnswer)
	assert.Equal(t, "John", r.completion.NewMistakes[0].CorrectAnswer)
}

func TestStandardMock_UsesStandardStyle(t *testing.T) {
	provider := &fakeContent{questions: testQuestions()}
	s := NewMock(testDeps(t, provider), content.StyleStandard)
	defer s.Close()

	load(t, s)
	assert.Equal(t, []string{"mock:25:standard"}, provider.calls)
	assert.Equal(t, session.ModeStandard, s.Session().Mode())
	assert.Nil(t, s.lifecycle)
}

func TestResult_Retry(t *testing.T) {
	provider := &fakeContent{questions: testQuestions()}
	deps := testDeps(t, provider)
	s := NewChapter(deps, 1)
	load(t, s)

	s.Update(keyPress('a'))
	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('b'))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	r := resultOf(t, cmd)
	s.Close()
	assert.Equal(t, 2, r.completion.Result.Score)

	_, cmd = r.Update(keyPress('r'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.NavMsg)
	require.True(t, ok)
	require.Equal(t, router.OpReplace, msg.Op)
	retry := msg.Screen.(*QuizScreen)
	defer retry.Close()

	assert.Nil(t, retry.Init(), "a restart does not fetch")
	require.NotNil(t, retry.Session())
	assert.Len(t, provider.calls, 1)
	assert.Equal(t, session.PhaseAwaitingAnswer, retry.Session().Phase())
	assert.Equal(t, testQuestions(), retry.Session().Questions())
	assert.NotEqual(t, r.sess.ID(), retry.Session().ID())
}

func TestResult_Navigation(t *testing.T) {
	deps := testDeps(t, &fakeContent{questions: testQuestions()})
	s := NewChapter(deps, 1)
	load(t, s)
	s.Update(keyPress('a'))
	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('b'))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	r := resultOf(t, cmd)
	s.Close()

	_, cmd = r.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, router.NavMsg{Op: router.OpHome}, cmd())

	_, cmd = r.Update(keyPress('m'))
	msg, ok := cmd().(router.NavMsg)
	require.True(t, ok)
	assert.Equal(t, router.OpReplace, msg.Op)

	assert.NotEmpty(t, r.View(100, 40))
}

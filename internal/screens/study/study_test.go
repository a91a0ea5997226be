package study

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/revquiz/internal/content"
	"github.com/abhisek/revquiz/internal/progress"
	"github.com/abhisek/revquiz/internal/router"
	"github.com/abhisek/revquiz/internal/screen"
	"github.com/abhisek/revquiz/internal/session"
	"github.com/abhisek/revquiz/internal/store"
)

type fakeContent struct {
	material *content.ChapterContext
	err      error
}

func (f *fakeContent) ChapterContext(context.Context, int) (*content.ChapterContext, error) {
	return f.material, f.err
}

func (f *fakeContent) ChapterQuestions(context.Context, int, int) ([]session.Question, error) {
	return nil, errors.New("not used")
}

func (f *fakeContent) MockExamQuestions(context.Context, int, content.Style) ([]session.Question, error) {
	return nil, errors.New("not used")
}

func newStudy(t *testing.T, provider *fakeContent) *StudyScreen {
	t.Helper()
	p := progress.Load(context.Background(), progress.Deps{KV: store.NewMemoryKV()})
	return New(&screen.Deps{Content: provider, Progress: p}, 3)
}

func TestStudy_LoadsMaterial(t *testing.T) {
	s := newStudy(t, &fakeContent{material: &content.ChapterContext{
		Chapter:    3,
		Title:      "Sardis",
		Flashcards: []content.Flashcard{{Front: "a"}, {Front: "b"}},
	}})
	defer s.Close()

	cmd := s.Init()
	require.NotNil(t, cmd)
	_, next := s.Update(cmd())
	assert.Nil(t, next)

	s.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	assert.Equal(t, TabFlashcards, s.tab)
	s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	assert.Equal(t, 1, s.card)
	s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	assert.Equal(t, 1, s.card)
}

func TestStudy_FetchErrorGoesBack(t *testing.T) {
	s := newStudy(t, &fakeContent{err: content.ErrFetch})
	defer s.Close()

	cmd := s.Init()
	require.NotNil(t, cmd)
	_, next := s.Update(cmd())
	require.NotNil(t, next)

	msg, ok := next().(router.NavMsg)
	require.True(t, ok)
	assert.Equal(t, router.OpPop, msg.Op)
	assert.Contains(t, msg.Notice, "Could not load chapter 3")
}

func TestStudy_CanceledFetchStaysQuiet(t *testing.T) {
	s := newStudy(t, &fakeContent{err: context.Canceled})
	cmd := s.Init()
	require.NotNil(t, cmd)
	_, next := s.Update(cmd())
	assert.Nil(t, next)
}

func TestStudy_QuizKeyPushesQuiz(t *testing.T) {
	s := newStudy(t, &fakeContent{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	require.NotNil(t, cmd)
	msg := cmd().(router.NavMsg)
	assert.Equal(t, router.OpPush, msg.Op)
	assert.NotNil(t, msg.Screen)
}

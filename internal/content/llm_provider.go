package content

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/revquiz/internal/llm"
	"github.com/abhisek/revquiz/internal/session"
)

// LLMProvider implements Provider on top of an llm.Provider.
type LLMProvider struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
}

// New creates an LLMProvider. A nil logger discards output.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *LLMProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMProvider{provider: provider, config: cfg, logger: logger}
}

type questionSetOutput struct {
	Questions []session.Question `json:"questions"`
}

// ChapterContext fetches study material for a chapter.
func (p *LLMProvider) ChapterContext(ctx context.Context, chapter int) (*ChapterContext, error) {
	if err := checkChapter(chapter); err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, PurposeChapterContext)

	resp, err := p.provider.Generate(ctx, llm.Request{
		System:      contextSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildContextMessage(chapter)}},
		Schema:      ChapterContextSchema,
		MaxTokens:   p.config.ContextMaxTokens,
		Temperature: p.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: chapter %d context: %w", ErrFetch, chapter, err)
	}

	var out ChapterContext
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("%w: parse chapter %d context: %w", ErrFetch, chapter, err)
	}
	out.Chapter = chapter
	if out.KeyVerses == nil {
		out.KeyVerses = []string{}
	}
	if out.Hints == nil {
		out.Hints = []string{}
	}
	if out.Flashcards == nil {
		out.Flashcards = []Flashcard{}
	}
	if out.FullText == nil {
		out.FullText = []Verse{}
	}
	return &out, nil
}

// ChapterQuestions fetches up to count questions covering one chapter.
// Every returned question carries the requested chapter.
func (p *LLMProvider) ChapterQuestions(ctx context.Context, chapter, count int) ([]session.Question, error) {
	if err := checkChapter(chapter); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: question count must be positive, got %d", ErrFetch, count)
	}
	ctx = llm.WithPurpose(ctx, PurposeChapterQuestions)

	raw, err := p.questions(ctx, chapterSystemPrompt, buildChapterQuestionsMessage(chapter, count))
	if err != nil {
		return nil, fmt.Errorf("%w: chapter %d questions: %w", ErrFetch, chapter, err)
	}
	for i := range raw {
		raw[i].Chapter = chapter
	}
	return p.finish(raw, count)
}

// MockExamQuestions fetches up to count questions drawn from the whole book.
func (p *LLMProvider) MockExamQuestions(ctx context.Context, count int, style Style) ([]session.Question, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: question count must be positive, got %d", ErrFetch, count)
	}
	ctx = llm.WithPurpose(ctx, PurposeMockExam)

	raw, err := p.questions(ctx, examSystemPrompt, buildMockExamMessage(count, style))
	if err != nil {
		return nil, fmt.Errorf("%w: mock exam: %w", ErrFetch, err)
	}
	for i := range raw {
		if !ValidChapter(raw[i].Chapter) {
			raw[i].Chapter = 0
		}
	}
	return p.finish(raw, count)
}

func (p *LLMProvider) questions(ctx context.Context, system, msg string) ([]session.Question, error) {
	resp, err := p.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: msg}},
		Schema:      QuestionSetSchema,
		MaxTokens:   p.config.QuestionMaxTokens,
		Temperature: p.config.Temperature,
	})
	if err != nil {
		return nil, err
	}

	var out questionSetOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	return out.Questions, nil
}

// finish drops invalid and duplicate questions, caps the set at count and
// renumbers IDs from zero.
func (p *LLMProvider) finish(raw []session.Question, count int) ([]session.Question, error) {
	seen := make(map[string]bool, len(raw))
	out := make([]session.Question, 0, min(len(raw), count))

	for i := range raw {
		q := raw[i]
		if verr := p.validate(&q); verr != nil {
			p.logger.Warn("dropping generated question",
				zap.Int("index", i),
				zap.String("validator", verr.Validator),
				zap.String("reason", verr.Message))
			continue
		}
		key := normalize(q.Text)
		if seen[key] {
			p.logger.Debug("dropping duplicate question", zap.Int("index", i))
			continue
		}
		seen[key] = true

		q.ID = len(out)
		out = append(out, q)
		if len(out) == count {
			break
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrFetch, ErrEmptyQuestionSet)
	}
	return out, nil
}

func (p *LLMProvider) validate(q *session.Question) *ValidationError {
	for _, v := range p.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}

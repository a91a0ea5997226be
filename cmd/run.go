package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/revquiz/internal/app"
	"github.com/abhisek/revquiz/internal/config"
	"github.com/abhisek/revquiz/internal/content"
	"github.com/abhisek/revquiz/internal/llm"
	"github.com/abhisek/revquiz/internal/progress"
	"github.com/abhisek/revquiz/internal/screen"
	"github.com/abhisek/revquiz/internal/speech"
	"github.com/abhisek/revquiz/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	examDay, _ := cfg.ExamDay() // validated by config.Load
	eventRepo := st.EventRepo()

	deps := &screen.Deps{
		EventRepo:    eventRepo,
		Logger:       log,
		ChapterCount: cfg.Quiz.ChapterCount,
		MockCount:    cfg.Quiz.MockCount,
		Countdown:    cfg.Quiz.Countdown,
		ExamDay:      examDay,
	}

	deps.Progress = progress.Load(ctx, progress.Deps{
		KV:      st.KV(),
		History: eventRepo,
		Logger:  log.Named("progress"),
	})

	provider, err := llm.NewProvider(ctx, cfg.LLMConfig(), eventRepo, log.Named("llm"))
	if err != nil {
		log.Warn("LLM provider not configured", zap.Error(err))
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Study material and quizzes will be unavailable.")
	} else {
		cp, closeCache, err := newContentProvider(ctx, cfg, provider, st, log)
		if err != nil {
			return err
		}
		defer closeCache()
		deps.Content = cp
	}

	speaker, err := speech.Detect(speech.Config{
		Command: cfg.Speech.Command,
		Voice:   cfg.Speech.Voice,
		Rate:    cfg.Speech.Rate,
	}, log.Named("speech"))
	if err != nil {
		return fmt.Errorf("speech: %w", err)
	}
	deps.Speaker = speaker

	log.Info("starting",
		zap.String("version", version),
		zap.String("llm_provider", cfg.LLMConfig().Provider),
		zap.Bool("content", deps.Content != nil),
	)
	return app.Run(deps)
}

// newContentProvider builds the question and study material source. Chapter
// study material is cached in Redis when a URL is configured, otherwise in
// the local database.
func newContentProvider(ctx context.Context, cfg *config.Config, provider llm.Provider, st *store.Store, log *zap.Logger) (content.Provider, func(), error) {
	gen := content.New(provider, content.DefaultConfig(), log.Named("content"))

	if cfg.Cache.RedisURL == "" {
		cache := content.NewKVCache(st.KV(), cfg.Cache.TTL)
		return content.NewCachedProvider(gen, cache, log.Named("cache")), func() {}, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	client, err := content.DialRedis(dialCtx, cfg.Cache.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	log.Info("caching study material in redis")
	cache := content.NewRedisCache(client, cfg.Cache.TTL)
	return content.NewCachedProvider(gen, cache, log.Named("cache")), func() { _ = client.Close() }, nil
}

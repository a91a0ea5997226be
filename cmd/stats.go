package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/revquiz/internal/progress"
	"github.com/abhisek/revquiz/internal/screen"
	"github.com/abhisek/revquiz/internal/session"
	"github.com/abhisek/revquiz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streak, session history and mistake counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		state := progress.Load(ctx, progress.Deps{KV: s.KV()})
		examDay, _ := cfg.ExamDay()
		deps := screen.Deps{ExamDay: examDay}

		fmt.Printf("Streak:       %d day(s)\n", state.Streak())
		if days := deps.DaysToExam(); days >= 0 {
			fmt.Printf("Exam in:      %d day(s) (%s)\n", days, examDay.Format("2006-01-02"))
		}
		if a := state.Analysis(); a != nil {
			fmt.Printf("Mistakes:     %d (weakest chapter %d with %d)\n",
				a.Total, a.WeakestChapter, a.WeakestChapterCount)
		} else {
			fmt.Println("Mistakes:     0")
		}

		sessions, err := s.EventRepo().QuerySessionEvents(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("\nNo sessions completed yet.")
			return nil
		}

		fmt.Println()
		fmt.Println("Sessions by Mode")
		fmt.Println(strings.Repeat("─", 56))
		fmt.Printf("%-18s  %6s  %9s  %8s  %8s\n", "Mode", "Count", "Questions", "Accuracy", "Time")
		fmt.Println(strings.Repeat("─", 56))
		for _, row := range summarizeSessions(sessions) {
			fmt.Printf("%-18s  %6d  %9d  %7.0f%%  %8s\n",
				row.label, row.count, row.total, row.accuracy(), row.duration.Round(time.Second))
		}
		return nil
	},
}

type sessionSummary struct {
	label    string
	count    int
	total    int
	score    int
	duration time.Duration
}

func (s sessionSummary) accuracy() float64 {
	if s.total == 0 {
		return 0
	}
	return float64(s.score) * 100 / float64(s.total)
}

// summarizeSessions aggregates sessions per mode, in order of first appearance.
func summarizeSessions(events []store.SessionEvent) []sessionSummary {
	byMode := make(map[string]*sessionSummary)
	var order []string
	for _, e := range events {
		label := e.Mode
		if m, err := session.ParseMode(e.Mode); err == nil {
			label = m.Label()
		}
		row, ok := byMode[label]
		if !ok {
			row = &sessionSummary{label: label}
			byMode[label] = row
			order = append(order, label)
		}
		row.count++
		row.total += e.Total
		row.score += e.Score
		row.duration += time.Duration(e.DurationSecs) * time.Second
	}

	out := make([]sessionSummary, 0, len(order))
	for _, label := range order {
		out = append(out, *byMode[label])
	}
	return out
}

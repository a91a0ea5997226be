package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/revquiz/internal/progress"
	"github.com/abhisek/revquiz/internal/revision"
)

var revisionCmd = &cobra.Command{
	Use:   "revision",
	Short: "Inspect and manage the mistake log",
}

var revisionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List recorded mistakes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		chapter, _ := cmd.Flags().GetInt("chapter")

		_, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		state := progress.Load(context.Background(), progress.Deps{KV: s.KV()})
		mistakes := filterChapter(revision.Newest(state.Mistakes()), chapter)
		if len(mistakes) == 0 {
			fmt.Println("No mistakes recorded.")
			return nil
		}

		if a := revision.Analyze(mistakes); a != nil && chapter == 0 {
			fmt.Printf("%d mistakes. Weakest chapter: %d (%d)\n\n",
				a.Total, a.WeakestChapter, a.WeakestChapterCount)
		}

		sep := strings.Repeat("─", 60)
		for _, m := range mistakes {
			fmt.Println(sep)
			fmt.Printf("Chapter %d  ·  %s  ·  %s\n", m.Chapter, m.Date.Local().Format("2006-01-02"), m.Reference)
			fmt.Println(m.Question)
			fmt.Printf("  ✗ %s\n", m.UserAnswer)
			fmt.Printf("  ✓ %s\n", m.CorrectAnswer)
		}
		return nil
	},
}

var revisionExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the mistake log as JSON or YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		_, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		state := progress.Load(context.Background(), progress.Deps{KV: s.KV()})

		var w io.Writer = os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}
		return writeMistakes(w, state.Mistakes(), format)
	},
}

var revisionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the mistake log",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm("Clear every recorded mistake?") {
			fmt.Println("Aborted.")
			return nil
		}

		_, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		state := progress.Load(ctx, progress.Deps{KV: s.KV()})
		if err := state.ClearMistakes(ctx); err != nil {
			return fmt.Errorf("clear mistakes: %w", err)
		}
		fmt.Println("Mistake log cleared.")
		return nil
	},
}

type mistakeExport struct {
	Analysis *revision.Analysis       `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Mistakes []revision.MistakeRecord `json:"mistakes" yaml:"mistakes"`
}

// writeMistakes encodes the mistake log with its analysis.
func writeMistakes(w io.Writer, mistakes []revision.MistakeRecord, format string) error {
	if mistakes == nil {
		mistakes = []revision.MistakeRecord{}
	}
	out := mistakeExport{Analysis: revision.Analyze(mistakes), Mistakes: mistakes}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(out)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (want json or yaml)", format)
	}
}

func filterChapter(mistakes []revision.MistakeRecord, chapter int) []revision.MistakeRecord {
	if chapter == 0 {
		return mistakes
	}
	var out []revision.MistakeRecord
	for _, m := range mistakes {
		if m.Chapter == chapter {
			out = append(out, m)
		}
	}
	return out
}

func init() {
	revisionShowCmd.Flags().IntP("chapter", "c", 0, "Only show mistakes from this chapter")
	revisionExportCmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
	revisionExportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
	revisionClearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	revisionCmd.AddCommand(revisionShowCmd)
	revisionCmd.AddCommand(revisionExportCmd)
	revisionCmd.AddCommand(revisionClearCmd)
}

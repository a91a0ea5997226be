package revision

import "sort"

// ChapterCount is the number of mistakes recorded for one chapter.
type ChapterCount struct {
	Chapter int `json:"chapter" yaml:"chapter"`
	Count   int `json:"count" yaml:"count"`
}

// Analysis summarizes the mistake log.
type Analysis struct {
	Total               int            `json:"total" yaml:"total"`
	WeakestChapter      int            `json:"weakestChapter" yaml:"weakest_chapter"`
	WeakestChapterCount int            `json:"weakestChapterCount" yaml:"weakest_chapter_count"`
	ByChapter           []ChapterCount `json:"byChapter" yaml:"by_chapter"`
}

// Analyze groups mistakes by chapter and picks the chapter with the most
// mistakes. On a tie the lowest chapter number wins. It returns nil for an
// empty log.
func Analyze(mistakes []MistakeRecord) *Analysis {
	if len(mistakes) == 0 {
		return nil
	}

	counts := make(map[int]int)
	for _, m := range mistakes {
		counts[m.Chapter]++
	}

	byChapter := make([]ChapterCount, 0, len(counts))
	for ch, n := range counts {
		byChapter = append(byChapter, ChapterCount{Chapter: ch, Count: n})
	}
	sort.Slice(byChapter, func(i, j int) bool {
		return byChapter[i].Chapter < byChapter[j].Chapter
	})

	a := &Analysis{Total: len(mistakes), ByChapter: byChapter}
	for _, c := range byChapter {
		if c.Count > a.WeakestChapterCount {
			a.WeakestChapter = c.Chapter
			a.WeakestChapterCount = c.Count
		}
	}
	return a
}

// Newest returns the records newest first.
func Newest(mistakes []MistakeRecord) []MistakeRecord {
	out := make([]MistakeRecord, len(mistakes))
	for i, m := range mistakes {
		out[len(mistakes)-1-i] = m
	}
	return out
}

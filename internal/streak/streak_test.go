package streak

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/revquiz/internal/store"
)

func date(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return d
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name      string
		today     string
		last      string
		count     int
		wantCount int
	}{
		{"yesterday increments", "2025-06-10", "2025-06-09", 5, 6},
		{"gap resets", "2025-06-10", "2025-06-08", 5, 1},
		{"same day unchanged", "2025-06-10", "2025-06-10", 5, 5},
		{"never played", "2025-06-10", "", 0, 1},
		{"across month boundary", "2025-07-01", "2025-06-30", 2, 3},
		{"across year boundary", "2026-01-01", "2025-12-31", 9, 10},
		{"leap day", "2024-03-01", "2024-02-29", 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var last time.Time
			if tt.last != "" {
				last = date(tt.last)
			}
			// Time of day must not matter.
			today := date(tt.today).Add(23*time.Hour + 59*time.Minute)
			gotCount, gotDay := Update(today, last, tt.count)
			if gotCount != tt.wantCount {
				t.Errorf("count = %d, want %d", gotCount, tt.wantCount)
			}
			if !gotDay.Equal(date(tt.today)) {
				t.Errorf("day = %v, want %s", gotDay, tt.today)
			}
		})
	}
}

func TestUpdate_IdempotentSameDay(t *testing.T) {
	today := date("2025-06-10")
	c, d := Update(today, date("2025-06-09"), 5)
	for i := 0; i < 3; i++ {
		c, d = Update(today.Add(time.Hour), d, c)
	}
	if c != 6 {
		t.Errorf("count after repeated same-day updates = %d, want 6", c)
	}
}

func TestTracker_LoadAndRecord(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()

	tr := LoadTracker(ctx, kv, nil, date("2025-06-10"))
	if tr.Current() != 0 {
		t.Fatalf("fresh streak = %d, want 0", tr.Current())
	}

	for _, day := range []string{"2025-06-10", "2025-06-10", "2025-06-11"} {
		if _, err := tr.Record(ctx, date(day).Add(10*time.Hour)); err != nil {
			t.Fatal(err)
		}
	}
	if tr.Current() != 2 {
		t.Errorf("streak = %d, want 2", tr.Current())
	}

	if v, _, _ := kv.Get(ctx, CountKey); v != "2" {
		t.Errorf("stored count = %q, want 2", v)
	}
	if v, _, _ := kv.Get(ctx, DateKey); v != "2025-06-11" {
		t.Errorf("stored date = %q, want 2025-06-11", v)
	}

	// Reloading the next day keeps the streak alive.
	again := LoadTracker(ctx, kv, nil, date("2025-06-12"))
	if again.Current() != 2 {
		t.Errorf("reloaded streak = %d, want 2", again.Current())
	}
}

func TestTracker_BrokenStreakResetsOnLoad(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	kv.Set(ctx, CountKey, "7")
	kv.Set(ctx, DateKey, "2025-06-01")

	tr := LoadTracker(ctx, kv, nil, date("2025-06-10"))
	if tr.Current() != 0 {
		t.Errorf("broken streak displays %d, want 0", tr.Current())
	}
	if v, _, _ := kv.Get(ctx, CountKey); v != "0" {
		t.Errorf("stored count = %q, want 0", v)
	}

	n, err := tr.Record(ctx, date("2025-06-10"))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("streak after playing = %d, want 1", n)
	}
}

func TestTracker_CorruptValues(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	kv.Set(ctx, CountKey, "many")
	kv.Set(ctx, DateKey, "yesterday-ish")

	tr := LoadTracker(ctx, kv, nil, date("2025-06-10"))
	if tr.Current() != 0 {
		t.Errorf("streak = %d, want 0", tr.Current())
	}
	if n, _ := tr.Record(ctx, date("2025-06-10")); n != 1 {
		t.Errorf("streak after playing = %d, want 1", n)
	}
}

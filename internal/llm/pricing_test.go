package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model  string
		input  float64
		output float64
		known  bool
	}{
		{"gemini-2.5-flash", 0.3, 2.5, true},
		{"google/gemini-2.5-flash", 0.3, 2.5, true},
		{"gemini-2.5-flash-lite-preview-09-2025", 0.1, 0.4, true},
		{"claude-haiku-4-5-20251001", 1, 5, true},
		{"claude-sonnet-4-20250514", 3, 15, true},
		{"claude-sonnet-4-5-20250929", 3, 15, true},
		{"gpt-4o-2024-08-06", 2.5, 10, true},
		{"gpt-4o-mini", 0.15, 0.6, true},
		{"gpt-5-nano", 0.05, 0.4, true},
		{"GPT-4O", 2.5, 10, true},
		{"gpt-4o-audio", 0, 0, false},
		{"mock", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			c := LookupCost(tt.model)
			if !tt.known {
				if c != nil {
					t.Fatalf("expected no price, got %+v", *c)
				}
				return
			}
			if c == nil {
				t.Fatal("expected a price")
			}
			if c.InputPerMTok != tt.input || c.OutputPerMTok != tt.output {
				t.Errorf("got %v/%v, want %v/%v", c.InputPerMTok, c.OutputPerMTok, tt.input, tt.output)
			}
		})
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 0.3, OutputPerMTok: 2.5}
	got := c.Cost(1_000_000, 200_000)
	if math.Abs(got-0.8) > 1e-9 {
		t.Errorf("Cost() = %v, want 0.8", got)
	}
}

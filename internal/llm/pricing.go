package llm

import "strings"

// ModelCost is the price of a model in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// LookupCost returns the price of a model ID, or nil if unknown. Dated
// snapshots and "-latest" aliases resolve to their family, and an
// OpenRouter vendor prefix ("google/") is ignored.
func LookupCost(modelID string) *ModelCost {
	id := strings.ToLower(modelID)
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}

	var best string
	for family := range modelFamilies {
		if !strings.HasPrefix(id, family) || len(family) <= len(best) {
			continue
		}
		// "gpt-4o" must not price "gpt-4o-mini".
		if rest := id[len(family):]; rest != "" && !isVersionSuffix(rest) {
			continue
		}
		best = family
	}
	if best == "" {
		return nil
	}
	c := modelFamilies[best]
	return &c
}

// isVersionSuffix reports whether rest is a snapshot date or alias suffix
// such as "-20251001", "-2024-08-06", "-latest" or "-preview-09-2025".
func isVersionSuffix(rest string) bool {
	if !strings.HasPrefix(rest, "-") {
		return false
	}
	rest = rest[1:]
	switch {
	case rest == "latest", rest == "exp":
		return true
	case strings.HasPrefix(rest, "preview"):
		return true
	}
	return strings.IndexFunc(rest, func(r rune) bool {
		return (r < '0' || r > '9') && r != '-'
	}) < 0
}

// modelFamilies prices the models the content generator is run with.
// Last updated: 2026-02-15.
var modelFamilies = map[string]ModelCost{
	// Gemini
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
	"gemini-3-flash":        {0.5, 3},
	"gemini-3-pro":          {2, 12},
	"gemini-flash":          {0.3, 2.5},
	"gemini-flash-lite":     {0.1, 0.4},

	// Anthropic
	"claude-3-5-haiku":  {0.8, 4},
	"claude-3-7-sonnet": {3, 15},
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-5": {3, 15},
	"claude-opus-4-5":   {5, 25},

	// OpenAI
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},
}

// Package llm talks to hosted language models. Every provider returns JSON
// validated against the caller's schema, and NewProvider wraps the chosen
// backend with timeout, retry and request logging.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one response per call.
type Provider interface {
	// Generate runs req. With req.Schema set the backend's structured output
	// mode is used and Response.Content is JSON that satisfies the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model.
	ModelID() string
}

// Request is a single-turn generation request.
type Request struct {
	System   string
	Messages []Message

	// Schema, when non-nil, constrains the output. Without it Content holds
	// the model's raw text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the backend default.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Callers declare schemas as package-level
// values; compiled validators are cached per *Schema.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "question-set". It doubles as the
	// OpenAI schema name.
	Name        string
	Description string
	Definition  map[string]any
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is a successful generation.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string // model that served the request
	StopReason string // StopEnd or StopMaxTokens
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

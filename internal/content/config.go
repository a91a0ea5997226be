package content

// Config controls the behavior of the LLMProvider.
type Config struct {
	// Validators run on every generated question in order. A question
	// failing any of them is dropped from the set.
	Validators []Validator

	// QuestionMaxTokens is the token budget for question set responses.
	QuestionMaxTokens int

	// ContextMaxTokens is the token budget for chapter study material,
	// which carries the full chapter text.
	ContextMaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DistinctOptionsValidator{},
		},
		QuestionMaxTokens: 8192,
		ContextMaxTokens:  16384,
		Temperature:       0.7,
	}
}

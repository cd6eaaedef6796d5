package coach

// Config holds generation settings.
type Config struct {
	PlanMaxTokens      int
	SentimentMaxTokens int
	MessageMaxTokens   int
	Temperature        float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		PlanMaxTokens:      2048,
		SentimentMaxTokens: 64,
		MessageMaxTokens:   512,
		Temperature:        0.7,
	}
}

package llm

// Config holds the provider model configuration.
type Config struct {
	Model       string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration. A moderate
// temperature keeps the generated reference content varied across batches
// while the JSON MIME type keeps it parseable.
func DefaultConfig() *Config {
	return &Config{
		Model:       "gemini-2.5-flash",
		Temperature: 0.4,
	}
}

// WithModel returns a copy of the config using a specific model.
func (c *Config) WithModel(model string) *Config {
	out := *c
	out.Model = model
	return &out
}

package gen

import (
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Config controls prompt construction and API usage for content
// generation. All fields map to keys in the generator's YAML config file.
type Config struct {
	// APIKey authenticates against the chat completion API. Falls back to
	// the OPENAI_API_KEY environment variable when absent from the file.
	APIKey string `yaml:"api_key"`
	// Model is the completion model identifier.
	Model string `yaml:"default_model"`
	// Temperature is passed through to the completion request.
	Temperature float32 `yaml:"temperature"`
	// MaxTokens caps the per-article token budget.
	MaxTokens int `yaml:"default_max_tokens"`
	// TokensPerMinute scales the budget by the post's estimated reading
	// time: budget = min(readingTime * TokensPerMinute, MaxTokens).
	TokensPerMinute int `yaml:"tokens_per_minute"`
	// SystemPrompt opens every conversation.
	SystemPrompt string `yaml:"system_prompt"`
	// ContentPromptTemplate is the per-post user prompt. It must contain
	// the {title} placeholder and may contain {synopsis}.
	ContentPromptTemplate string `yaml:"content_prompt_template"`
}

// DefaultConfig returns the baseline applied before the file is read.
func DefaultConfig() Config {
	return Config{
		Model:           "gpt-4o",
		Temperature:     0.7,
		MaxTokens:       1500,
		TokensPerMinute: 225,
	}
}

// LoadConfig reads a YAML config file over the defaults. The API key
// falls back to the OPENAI_API_KEY environment variable.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return cfg, nil
}

// Validate checks the config before a run starts.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.APIKey, validation.Required.Error("api key not found in config or environment")),
		validation.Field(&c.Model, validation.Required),
		validation.Field(&c.Temperature, validation.Min(float32(0)), validation.Max(float32(2))),
		validation.Field(&c.MaxTokens, validation.Required, validation.Min(1)),
		validation.Field(&c.TokensPerMinute, validation.Required, validation.Min(1)),
		validation.Field(&c.SystemPrompt, validation.Required),
		validation.Field(&c.ContentPromptTemplate, validation.Required, validation.By(requiresPlaceholder("{title}"))),
	)
}

func requiresPlaceholder(token string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != "" && !strings.Contains(s, token) {
			return validation.NewError(
				"gen.config.prompt_template",
				fmt.Sprintf("content_prompt_template must contain the %s placeholder", token),
			)
		}
		return nil
	}
}

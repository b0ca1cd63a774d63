// internal/workers/ai/generate-proposal/config.go
package generateproposal

import (
	"fmt"
	"time"

	"outreach-campaigns/internal/common/config"
)

type Config struct {
	APIKey      string
	Model       string
	Timeout     time.Duration
	Temperature float32
}

func DefaultConfig() *Config {
	return &Config{
		Model:       "gemini-2.0-flash",
		Timeout:     60 * time.Second,
		Temperature: 0.7,
	}
}

// FromAppConfig maps the genai section of the application config.
func FromAppConfig(app *config.Config) *Config {
	cfg := DefaultConfig()
	if app == nil {
		return cfg
	}
	cfg.APIKey = app.GenAI.APIKey
	if app.GenAI.Model != "" {
		cfg.Model = app.GenAI.Model
	}
	if app.GenAI.Timeout > 0 {
		cfg.Timeout = config.GetDuration(app.GenAI.Timeout)
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("genai api key is required")
	}
	if c.Model == "" {
		return fmt.Errorf("genai model is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

package rendertemplate

import "fmt"

type Config struct {
	TemplateDir string `mapstructure:"template_dir"`
	Extension   string `mapstructure:"extension"`
}

func DefaultConfig() *Config {
	return &Config{
		TemplateDir: "templates",
		Extension:   ".html",
	}
}

func (c *Config) Validate() error {
	if c.TemplateDir == "" {
		return fmt.Errorf("template_dir is required")
	}
	if c.Extension == "" {
		return fmt.Errorf("extension is required")
	}
	return nil
}

package injecttracking

import (
	"fmt"
	"net/url"
)

type Config struct {
	TrackingURL string `mapstructure:"tracking_url"`
}

func (c *Config) Validate() error {
	if c.TrackingURL == "" {
		return fmt.Errorf("tracking_url is required")
	}
	u, err := url.Parse(c.TrackingURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("tracking_url must be an absolute URL, got %q", c.TrackingURL)
	}
	return nil
}

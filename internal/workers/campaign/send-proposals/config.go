// internal/workers/campaign/send-proposals/config.go
package sendproposals

import (
	"fmt"
	"time"

	"outreach-campaigns/internal/common/config"
)

type Config struct {
	SendDelay          time.Duration
	UnsubscribeAddress string
}

func DefaultConfig() *Config {
	return &Config{
		SendDelay:          time.Second,
		UnsubscribeAddress: "unsubscribe@yourdomain.com",
	}
}

func FromAppConfig(app *config.Config) *Config {
	cfg := DefaultConfig()
	if app == nil {
		return cfg
	}
	cfg.SendDelay = config.GetDuration(app.Campaign.SendDelay)
	if app.Campaign.UnsubscribeAddress != "" {
		cfg.UnsubscribeAddress = app.Campaign.UnsubscribeAddress
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.SendDelay < 0 {
		return fmt.Errorf("send delay must not be negative")
	}
	if c.UnsubscribeAddress == "" {
		return fmt.Errorf("unsubscribe address is required")
	}
	return nil
}

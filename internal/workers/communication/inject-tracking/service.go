package injecttracking

import (
	"fmt"
	"html"
	"net/url"
	"strings"
)

// Injector appends an open-tracking pixel to outgoing HTML.
type Injector struct {
	baseURL string
}

func NewInjector(config *Config) *Injector {
	return &Injector{baseURL: strings.TrimRight(config.TrackingURL, "/")}
}

// PixelURL returns the pixel address for messageID.
func (i *Injector) PixelURL(messageID string) string {
	return fmt.Sprintf("%s/pixel/%s", i.baseURL, url.PathEscape(messageID))
}

// AddTracking appends the pixel after the document. Empty input is returned unchanged.
func (i *Injector) AddTracking(body, messageID string) string {
	if body == "" {
		return body
	}
	pixel := fmt.Sprintf(`<img src="%s" width="1" height="1" style="display:none">`, html.EscapeString(i.PixelURL(messageID)))
	return body + pixel
}

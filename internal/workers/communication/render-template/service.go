package rendertemplate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"outreach-campaigns/internal/common/logger"
)

var (
	ErrTemplateNotFound    = errors.New("TEMPLATE_NOT_FOUND")
	ErrInvalidTemplateName = errors.New("INVALID_TEMPLATE_NAME")
)

var placeholderPattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

type templateCacheEntry struct {
	content  string
	loadedAt time.Time
}

// Renderer loads HTML templates from disk once and substitutes {{key}} placeholders.
// Cached templates are never reloaded for the lifetime of the Renderer.
type Renderer struct {
	config *Config
	logger logger.Logger
	cache  map[string]*templateCacheEntry
	mu     sync.RWMutex
}

func NewRenderer(config *Config, log logger.Logger) *Renderer {
	return &Renderer{
		config: config,
		logger: logger.ForComponent(log, "render-template"),
		cache:  make(map[string]*templateCacheEntry),
	}
}

// Render returns template name with every known placeholder replaced.
// Placeholders without a matching key are kept verbatim.
func (r *Renderer) Render(ctx context.Context, name string, data map[string]string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	content, err := r.loadTemplate(name)
	if err != nil {
		return "", err
	}

	var missing []string
	for _, key := range Placeholders(content) {
		if _, ok := data[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		r.logger.Debug("Template placeholders without data", map[string]interface{}{
			"template": name,
			"keys":     missing,
		})
	}

	return Substitute(content, data), nil
}

// Substitute replaces {{key}} occurrences in a single pass, so values that
// themselves contain placeholders are not expanded again.
func Substitute(content string, data map[string]string) string {
	if len(data) == 0 {
		return content
	}
	return placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		key := match[2 : len(match)-2]
		if value, ok := data[key]; ok {
			return value
		}
		return match
	})
}

// Placeholders lists the distinct keys referenced by content, in order of appearance.
func Placeholders(content string) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			keys = append(keys, m[1])
		}
	}
	return keys
}

func (r *Renderer) loadTemplate(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidTemplateName, name)
	}

	r.mu.RLock()
	if entry, ok := r.cache[name]; ok {
		r.mu.RUnlock()
		return entry.content, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.cache[name]; ok {
		return entry.content, nil
	}

	path := filepath.Join(r.config.TemplateDir, name+r.config.Extension)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return "", fmt.Errorf("read template %s: %w", path, err)
	}

	r.cache[name] = &templateCacheEntry{content: string(raw), loadedAt: time.Now()}
	r.logger.Debug("Template loaded", map[string]interface{}{
		"template": name,
		"path":     path,
	})
	return string(raw), nil
}

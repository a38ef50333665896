package template

import (
	"os"
	"sync"

	"github.com/OneChainTech/dynamic-cheatsheet/internal/errors"
)

// Cache loads prompt templates from disk and caches them for the process
// lifetime. Templates are immutable once loaded; edits on disk require a
// restart to take effect. Safe for concurrent use: a race on first load may
// read the file twice but the cache is never corrupted.
type Cache struct {
	mu        sync.RWMutex
	templates map[string]string
}

// NewCache creates an empty template cache.
func NewCache() *Cache {
	return &Cache{
		templates: make(map[string]string),
	}
}

// Load returns the template at path, reading it from disk on first use.
func (c *Cache) Load(path string) (string, error) {
	c.mu.RLock()
	if tmpl, ok := c.templates[path]; ok {
		c.mu.RUnlock()
		return tmpl, nil
	}
	c.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New(errors.CodeTemplateNotFound, "template not found: "+path).
				WithSuggestion("check the curator/generator template paths in cheatsheet.yaml")
		}
		return "", errors.Wrap(errors.CodeTemplateNotFound, "read template: "+path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have loaded it meanwhile; keep the first copy so
	// all callers share the identical cached string.
	if tmpl, ok := c.templates[path]; ok {
		return tmpl, nil
	}
	c.templates[path] = string(data)
	return c.templates[path], nil
}

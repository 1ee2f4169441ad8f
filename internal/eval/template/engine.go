package template

import (
	"fmt"
	"sync"
)

// Engine renders prompt templates with a parse cache
type Engine struct {
	cache map[string]*Template
	mu    sync.RWMutex
}

// NewEngine creates a new template engine
func NewEngine() *Engine {
	return &Engine{
		cache: make(map[string]*Template),
	}
}

// Render parses (or reuses a cached parse of) the template string and
// resolves it with the given variables.
func (e *Engine) Render(templateStr string, vars map[string]string) (string, error) {
	tmpl, err := e.getTemplate(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	return tmpl.Resolve(vars)
}

// getTemplate gets a parsed template from cache or parses it
func (e *Engine) getTemplate(templateStr string) (*Template, error) {
	// Check cache first (read lock)
	e.mu.RLock()
	if tmpl, ok := e.cache[templateStr]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	// Parse the template (write lock)
	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine parsed it
	if tmpl, ok := e.cache[templateStr]; ok {
		return tmpl, nil
	}

	tmpl, err := Parse(templateStr)
	if err != nil {
		return nil, err
	}

	// Cache the template
	e.cache[templateStr] = tmpl

	return tmpl, nil
}

// Validate validates a template string without rendering it
func (e *Engine) Validate(templateStr string) error {
	_, err := Parse(templateStr)
	return err
}

// ClearCache clears the parsed template cache
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]*Template)
}

package template

import (
	"errors"
	"testing"
)

func TestEngineRender(t *testing.T) {
	engine := NewEngine()

	got, err := engine.Render("Hello, {name}!", map[string]string{"name": "Ada"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "Hello, Ada!" {
		t.Errorf("Render() = %q, want %q", got, "Hello, Ada!")
	}

	// Same template string again hits the parse cache and must behave identically
	got, err = engine.Render("Hello, {name}!", map[string]string{"name": "Grace"})
	if err != nil {
		t.Fatalf("cached Render() error = %v", err)
	}
	if got != "Hello, Grace!" {
		t.Errorf("cached Render() = %q, want %q", got, "Hello, Grace!")
	}
}

func TestEngineRenderMalformed(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Render("Unclosed {name", nil)
	if err == nil {
		t.Fatal("Render() with malformed template should return error")
	}
	var malformed *MalformedTemplateError
	if !errors.As(err, &malformed) {
		t.Errorf("Render() error = %T, want *MalformedTemplateError in chain", err)
	}
}

func TestEngineValidate(t *testing.T) {
	engine := NewEngine()

	if err := engine.Validate("ok {name}"); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := engine.Validate("bad {1x}"); err == nil {
		t.Error("Validate() should reject invalid placeholder name")
	}
}

func TestEngineClearCache(t *testing.T) {
	engine := NewEngine()

	if _, err := engine.Render("{a}", map[string]string{"a": "1"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	engine.ClearCache()
	got, err := engine.Render("{a}", map[string]string{"a": "2"})
	if err != nil {
		t.Fatalf("Render() after ClearCache error = %v", err)
	}
	if got != "2" {
		t.Errorf("Render() = %q, want %q", got, "2")
	}
}

package cel

import (
	"testing"
)

func TestEvaluateBool(t *testing.T) {
	evaluator := NewEvaluator()

	vars := map[string]string{
		"topic": "billing",
		"lang":  "en",
	}

	tests := []struct {
		name      string
		condition string
		turns     int
		want      bool
	}{
		{"variable equality", "vars.topic == 'billing'", 0, true},
		{"variable mismatch", "vars.topic == 'technical'", 0, false},
		{"key membership", "'lang' in vars", 0, true},
		{"missing key membership", "'missing' in vars", 0, false},
		{"first round", "turns == 0", 0, true},
		{"later round", "turns > 0", 4, true},
		{"combined", "vars.lang == 'en' && turns < 10", 2, true},
		{"string contains", "vars.topic.contains('bill')", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evaluator.EvaluateBool(tt.condition, vars, tt.turns)
			if err != nil {
				t.Fatalf("EvaluateBool() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EvaluateBool(%q) = %v, want %v", tt.condition, got, tt.want)
			}
		})
	}
}

func TestEvaluateBoolNonBoolean(t *testing.T) {
	evaluator := NewEvaluator()

	_, err := evaluator.EvaluateBool("vars.topic", map[string]string{"topic": "x"}, 0)
	if err == nil {
		t.Error("EvaluateBool() should reject non-boolean conditions")
	}
}

func TestValidateCondition(t *testing.T) {
	evaluator := NewEvaluator()

	if err := evaluator.ValidateCondition("turns == 0"); err != nil {
		t.Errorf("ValidateCondition() error = %v", err)
	}
	if err := evaluator.ValidateCondition("turns =="); err == nil {
		t.Error("ValidateCondition() should reject invalid syntax")
	}
	if err := evaluator.ValidateCondition("unknown_var == 1"); err == nil {
		t.Error("ValidateCondition() should reject undeclared variables")
	}
}

func TestEvaluateBoolCache(t *testing.T) {
	evaluator := NewEvaluator()

	for i := 0; i < 3; i++ {
		got, err := evaluator.EvaluateBool("turns == 1", nil, 1)
		if err != nil {
			t.Fatalf("EvaluateBool() error = %v", err)
		}
		if !got {
			t.Error("EvaluateBool() = false, want true")
		}
	}

	evaluator.ClearCache()
	if _, err := evaluator.EvaluateBool("turns == 1", nil, 1); err != nil {
		t.Fatalf("EvaluateBool() after ClearCache error = %v", err)
	}
}

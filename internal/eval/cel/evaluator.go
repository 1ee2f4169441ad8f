package cel

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/checker/decls"
)

// Evaluator evaluates CEL conditions over chat round inputs
type Evaluator struct {
	env   *cel.Env
	cache map[string]cel.Program
	mu    sync.RWMutex
}

// NewEvaluator creates a new CEL evaluator. Conditions can reference the
// request variables as `vars` and the current transcript length as `turns`.
func NewEvaluator() *Evaluator {
	env, err := cel.NewEnv(
		cel.Declarations(
			decls.NewVar("vars", decls.NewMapType(decls.String, decls.String)),
			decls.NewVar("turns", decls.Int),
		),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create CEL environment: %v", err))
	}

	return &Evaluator{
		env:   env,
		cache: make(map[string]cel.Program),
	}
}

// EvaluateBool evaluates a condition against the request variables and turn
// count. Conditions that do not produce a boolean fail with an error.
func (e *Evaluator) EvaluateBool(condition string, vars map[string]string, turns int) (bool, error) {
	program, err := e.getProgram(condition)
	if err != nil {
		return false, fmt.Errorf("failed to compile condition: %w", err)
	}

	if vars == nil {
		vars = map[string]string{}
	}

	out, _, err := program.Eval(map[string]interface{}{
		"vars":  vars,
		"turns": turns,
	})
	if err != nil {
		return false, fmt.Errorf("evaluation failed: %w", err)
	}

	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("condition did not return a boolean: %s", condition)
	}

	return matched, nil
}

// getProgram gets a compiled program from cache or compiles it
func (e *Evaluator) getProgram(condition string) (cel.Program, error) {
	// Check cache first (read lock)
	e.mu.RLock()
	if program, ok := e.cache[condition]; ok {
		e.mu.RUnlock()
		return program, nil
	}
	e.mu.RUnlock()

	// Compile the condition (write lock)
	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if program, ok := e.cache[condition]; ok {
		return program, nil
	}

	ast, issues := e.env.Compile(condition)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("parse error: %w", issues.Err())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program generation error: %w", err)
	}

	// Cache the program
	e.cache[condition] = program

	return program, nil
}

// ValidateCondition validates a CEL condition without evaluating it
func (e *Evaluator) ValidateCondition(condition string) error {
	_, issues := e.env.Compile(condition)
	if issues != nil && issues.Err() != nil {
		return issues.Err()
	}
	return nil
}

// ClearCache clears the compiled program cache
func (e *Evaluator) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]cel.Program)
}

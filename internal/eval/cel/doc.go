// Package cel provides a CEL (Common Expression Language) evaluator for prompt selection.
//
// CEL is a non-Turing complete expression language that provides fast, safe
// evaluation of the conditions attached to prompt-selection rules. Conditions
// see two inputs: `vars`, the request's variable map, and `turns`, the number
// of turns already recorded in the session transcript.
//
// Example usage:
//
//	evaluator := cel.NewEvaluator()
//
//	vars := map[string]string{
//	    "topic": "billing",
//	}
//
//	matched, err := evaluator.EvaluateBool("vars.topic == 'billing'", vars, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	matched, err = evaluator.EvaluateBool("turns == 0", vars, 0) // first round
//
// Supported operations:
//   - Comparisons: ==, !=, <, <=, >, >=
//   - Boolean logic: &&, ||, !
//   - String operations: contains, startsWith, endsWith, matches
//   - Map access: vars.key, vars["key"], "key" in vars
package cel

// Package template provides a placeholder template engine for rendering LLM prompts.
//
// Templates use {name} placeholders filled from a string map. Placeholder
// names are identifiers (letters, digits, underscore; must not start with a
// digit). Parsing fails on unclosed or invalid placeholders; resolution fails
// when a declared placeholder has no value. Substitution is single-pass, so
// substituted values are never re-expanded.
//
// Example usage:
//
//	engine := template.NewEngine()
//
//	vars := map[string]string{
//	    "name": "Ada",
//	    "age":  "37",
//	}
//
//	result, err := engine.Render("Hello, {name}! You are {age} years old.", vars)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Output: Hello, Ada! You are 37 years old.
//
// Parsed templates can also be used directly when the placeholder set is of
// interest:
//
//	tmpl, err := template.Parse("Summarize {text} in {style} style")
//	tmpl.Placeholders() // ["style", "text"]
//	tmpl.Resolve(vars)
package template

package template

import (
	"fmt"
	"sort"
	"strings"
)

// MalformedTemplateError reports invalid placeholder syntax, detected at parse time.
type MalformedTemplateError struct {
	Pos    int // byte offset of the opening delimiter
	Reason string
}

func (e *MalformedTemplateError) Error() string {
	return fmt.Sprintf("malformed template at offset %d: %s", e.Pos, e.Reason)
}

// MissingVariableError reports a declared placeholder with no value at resolve time.
type MissingVariableError struct {
	Name string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("missing value for placeholder %q", e.Name)
}

// Template is a parsed prompt template. The placeholder set is fixed at parse
// time and the template is immutable afterwards, so a single instance can be
// shared across calls.
type Template struct {
	raw      string
	segments []segment
	names    []string
}

// segment is either a run of literal text or a single placeholder occurrence
type segment struct {
	literal bool
	text    string // literal text, or the placeholder name
}

// Parse scans a template string for {name} placeholders and returns an
// immutable Template. Placeholder names must match [A-Za-z_][A-Za-z0-9_]*.
// An opening brace that is never closed, an empty name, or a name containing
// characters outside that set fails with *MalformedTemplateError. A closing
// brace with no matching opener is treated as literal text.
func Parse(raw string) (*Template, error) {
	t := &Template{raw: raw}

	seen := make(map[string]bool)
	lit := 0

	for i := 0; i < len(raw); {
		if raw[i] != '{' {
			i++
			continue
		}

		// Flush the literal run before this placeholder
		if i > lit {
			t.segments = append(t.segments, segment{literal: true, text: raw[lit:i]})
		}

		j := i + 1
		for j < len(raw) && raw[j] != '}' {
			j++
		}
		if j == len(raw) {
			return nil, &MalformedTemplateError{Pos: i, Reason: "unclosed placeholder"}
		}

		name := raw[i+1 : j]
		if err := checkName(name, i); err != nil {
			return nil, err
		}

		t.segments = append(t.segments, segment{text: name})
		if !seen[name] {
			seen[name] = true
			t.names = append(t.names, name)
		}

		i = j + 1
		lit = i
	}

	if lit < len(raw) {
		t.segments = append(t.segments, segment{literal: true, text: raw[lit:]})
	}

	sort.Strings(t.names)
	return t, nil
}

// checkName validates a placeholder identifier
func checkName(name string, pos int) error {
	if name == "" {
		return &MalformedTemplateError{Pos: pos, Reason: "empty placeholder name"}
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return &MalformedTemplateError{Pos: pos, Reason: fmt.Sprintf("placeholder name %q starts with a digit", name)}
			}
		default:
			return &MalformedTemplateError{Pos: pos, Reason: fmt.Sprintf("invalid character %q in placeholder name", c)}
		}
	}
	return nil
}

// Resolve substitutes every placeholder occurrence with its value from vars.
// Substitution is single-pass: values are inserted verbatim and never
// re-scanned for placeholders, so a value containing braces cannot trigger
// further expansion. A declared placeholder with no entry in vars fails with
// *MissingVariableError; keys in vars that the template never references are
// ignored. Resolve is a pure function of the template and vars.
func (t *Template) Resolve(vars map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(t.raw))

	for _, seg := range t.segments {
		if seg.literal {
			b.WriteString(seg.text)
			continue
		}
		value, ok := vars[seg.text]
		if !ok {
			return "", &MissingVariableError{Name: seg.text}
		}
		b.WriteString(value)
	}

	return b.String(), nil
}

// Placeholders returns the unique placeholder names declared by the template,
// sorted for deterministic output.
func (t *Template) Placeholders() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Raw returns the original template string
func (t *Template) Raw() string {
	return t.raw
}

package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aescanero/dago-node-chat/internal/llm"
)

// Role identifies the speaker of a turn
type Role string

const (
	// RoleUser marks a turn submitted by the caller
	RoleUser Role = "user"

	// RoleAgent marks a turn produced by the model
	RoleAgent Role = "agent"
)

// valid reports whether the role belongs to the closed role set
func (r Role) valid() bool {
	return r == RoleUser || r == RoleAgent
}

// InvalidRoleError reports a role outside the closed {user, agent} set
type InvalidRoleError struct {
	Role Role
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("invalid role %q: must be %q or %q", e.Role, RoleUser, RoleAgent)
}

// InvocationError wraps a failure from the model-invocation capability with
// the round being produced when it failed. The underlying error is exposed
// unchanged through Unwrap.
type InvocationError struct {
	Round int
	Err   error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("model invocation failed on round %d: %v", e.Round, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Turn is one labeled utterance in a conversation
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Transcript is an append-only log of conversation turns. Turns are never
// modified or removed once appended, and their order is the order of
// submission. A transcript belongs to a single conversation and is not safe
// for unsynchronized concurrent use.
type Transcript struct {
	turns []Turn
}

// New creates an empty transcript for a new conversation session
func New() *Transcript {
	return &Transcript{}
}

// Append adds a turn at the end of the transcript. Fails with
// *InvalidRoleError when the role is outside the closed role set.
func (t *Transcript) Append(role Role, text string) error {
	if !role.valid() {
		return &InvalidRoleError{Role: role}
	}
	t.turns = append(t.turns, Turn{Role: role, Text: text})
	return nil
}

// Len returns the number of turns
func (t *Transcript) Len() int {
	return len(t.turns)
}

// Turns returns a copy of the turn sequence in submission order
func (t *Transcript) Turns() []Turn {
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Render produces the full conversation as newline-joined "role: text" lines,
// the payload submitted to the model on the next round. Render does not
// mutate the transcript; rendering the same state twice yields identical
// output.
func (t *Transcript) Render() string {
	return renderTurns(t.turns)
}

// RecordRound runs one conversation round: it submits the rendered history
// plus the new user turn to the invoker and, on success, appends the user
// turn followed by the model's reply as an agent turn, returning the reply.
//
// The turns are appended only after a successful response, so a failed
// invocation leaves the transcript exactly as it was before the call. The
// failure is returned as *InvocationError wrapping the invoker's error
// unchanged.
func (t *Transcript) RecordRound(ctx context.Context, userText string, invoker llm.Invoker) (string, error) {
	prompt := renderTurns(append(t.Turns(), Turn{Role: RoleUser, Text: userText}))

	reply, err := invoker.Invoke(ctx, prompt)
	if err != nil {
		return "", &InvocationError{Round: t.rounds() + 1, Err: err}
	}

	t.turns = append(t.turns, Turn{Role: RoleUser, Text: userText}, Turn{Role: RoleAgent, Text: reply})
	return reply, nil
}

// rounds counts completed rounds, i.e. agent turns recorded so far
func (t *Transcript) rounds() int {
	n := 0
	for _, turn := range t.turns {
		if turn.Role == RoleAgent {
			n++
		}
	}
	return n
}

// renderTurns renders turns as "role: text" lines joined by newlines
func renderTurns(turns []Turn) string {
	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(turn.Role))
		b.WriteString(": ")
		b.WriteString(turn.Text)
	}
	return b.String()
}

// MarshalJSON serializes the transcript as its turn sequence
func (t *Transcript) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.turns)
}

// UnmarshalJSON restores a transcript from a serialized turn sequence,
// rejecting turns whose role is outside the closed role set.
func (t *Transcript) UnmarshalJSON(data []byte) error {
	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return err
	}
	for _, turn := range turns {
		if !turn.Role.valid() {
			return &InvalidRoleError{Role: turn.Role}
		}
	}
	t.turns = turns
	return nil
}

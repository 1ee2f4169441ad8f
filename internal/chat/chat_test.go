package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/aescanero/dago-node-chat/internal/eval/template"
	"github.com/aescanero/dago-node-chat/internal/llm"
	"github.com/aescanero/dago-node-chat/internal/transcript"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// echoInvoker records prompts and replies with a fixed string
type echoInvoker struct {
	prompts []string
	reply   string
	err     error
}

func (e *echoInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	e.prompts = append(e.prompts, prompt)
	if e.err != nil {
		return "", e.err
	}
	return e.reply, nil
}

func TestRoundSingleTemplate(t *testing.T) {
	inv := &echoInvoker{reply: "ok"}
	svc := NewService(inv, zap.NewNop())

	result, err := svc.Round(context.Background(), nil, &RoundRequest{
		Mode:      ModeSingle,
		Template:  "Translate {message} to {lang}",
		Variables: map[string]string{"lang": "French"},
		Message:   "hello",
	})
	require.NoError(t, err)
	require.Equal(t, "ok", result.Reply)
	require.Equal(t, "template", result.PathTaken)
	require.Equal(t, 0, result.Turns)
	require.Equal(t, []string{"Translate hello to French"}, inv.prompts)
}

func TestRoundSingleRawMessage(t *testing.T) {
	inv := &echoInvoker{reply: "hi"}
	svc := NewService(inv, zap.NewNop())

	result, err := svc.Round(context.Background(), nil, &RoundRequest{
		Mode:    ModeSingle,
		Message: "Say hi",
	})
	require.NoError(t, err)
	require.Equal(t, "message", result.PathTaken)
	require.Equal(t, []string{"Say hi"}, inv.prompts)
}

func TestRoundChatAccumulatesHistory(t *testing.T) {
	inv := &echoInvoker{reply: "Paris"}
	svc := NewService(inv, zap.NewNop())
	tr := transcript.New()

	result, err := svc.Round(context.Background(), tr, &RoundRequest{
		Mode:    ModeChat,
		Message: "Capital of France?",
	})
	require.NoError(t, err)
	require.Equal(t, "Paris", result.Reply)
	require.Equal(t, 2, result.Turns)
	require.Equal(t, "user: Capital of France?", inv.prompts[0])

	inv.reply = "About 2 million"
	result, err = svc.Round(context.Background(), tr, &RoundRequest{
		Mode:    ModeChat,
		Message: "Population?",
	})
	require.NoError(t, err)
	require.Equal(t, 4, result.Turns)
	require.Equal(t,
		"user: Capital of France?\nagent: Paris\nuser: Population?",
		inv.prompts[1])
}

func TestRoundRuleSelection(t *testing.T) {
	inv := &echoInvoker{reply: "ok"}
	svc := NewService(inv, zap.NewNop())
	tr := transcript.New()

	req := &RoundRequest{
		Mode: ModeChat,
		Rules: []Rule{
			{Condition: "turns == 0", Template: "You are a {persona}. {message}"},
			{Condition: "turns > 0", Template: "{message}"},
		},
		Variables: map[string]string{"persona": "pirate"},
		Message:   "ahoy",
	}

	result, err := svc.Round(context.Background(), tr, req)
	require.NoError(t, err)
	require.Equal(t, "rule", result.PathTaken)
	require.Equal(t, "You are a pirate. ahoy", result.UserText)

	// Second round: the first rule no longer matches
	req.Message = "where be treasure"
	result, err = svc.Round(context.Background(), tr, req)
	require.NoError(t, err)
	require.Equal(t, "where be treasure", result.UserText)
}

func TestRoundNoRuleMatchFallsBackToMessage(t *testing.T) {
	inv := &echoInvoker{reply: "ok"}
	svc := NewService(inv, zap.NewNop())

	result, err := svc.Round(context.Background(), nil, &RoundRequest{
		Mode:    ModeSingle,
		Rules:   []Rule{{Condition: "turns > 100", Template: "{message}"}},
		Message: "plain",
	})
	require.NoError(t, err)
	require.Equal(t, "message", result.PathTaken)
	require.Equal(t, "plain", result.UserText)
}

func TestRoundMissingVariable(t *testing.T) {
	inv := &echoInvoker{reply: "ok"}
	svc := NewService(inv, zap.NewNop())

	_, err := svc.Round(context.Background(), nil, &RoundRequest{
		Mode:     ModeSingle,
		Template: "Hello {name}",
	})
	require.Error(t, err)

	var missing *template.MissingVariableError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "name", missing.Name)
	require.Empty(t, inv.prompts, "the model must not be invoked when the prompt cannot be built")
}

func TestRoundInvocationFailureLeavesTranscriptUnchanged(t *testing.T) {
	cause := errors.New("boom")
	inv := &echoInvoker{err: cause}
	svc := NewService(inv, zap.NewNop())
	tr := transcript.New()

	_, err := svc.Round(context.Background(), tr, &RoundRequest{
		Mode:    ModeChat,
		Message: "hi",
	})
	require.Error(t, err)

	var invocation *transcript.InvocationError
	require.ErrorAs(t, err, &invocation)
	require.ErrorIs(t, err, cause)
	require.Equal(t, 0, tr.Len())
}

func TestRoundValidation(t *testing.T) {
	svc := NewService(llm.InvokerFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", nil
	}), zap.NewNop())

	_, err := svc.Round(context.Background(), nil, nil)
	require.Error(t, err)

	_, err = svc.Round(context.Background(), nil, &RoundRequest{Mode: ModeSingle})
	require.Error(t, err, "empty request must be rejected")

	_, err = svc.Round(context.Background(), nil, &RoundRequest{Mode: "broadcast", Message: "x"})
	require.Error(t, err)

	_, err = svc.Round(context.Background(), nil, &RoundRequest{Mode: ModeChat, Message: "x"})
	require.Error(t, err, "chat mode without a transcript must be rejected")
}

func TestRoundDetectsMode(t *testing.T) {
	inv := &echoInvoker{reply: "ok"}
	svc := NewService(inv, zap.NewNop())

	// No transcript: single
	result, err := svc.Round(context.Background(), nil, &RoundRequest{Message: "hi"})
	require.NoError(t, err)
	require.Equal(t, string(ModeSingle), result.Mode)

	// Transcript present: chat
	tr := transcript.New()
	result, err = svc.Round(context.Background(), tr, &RoundRequest{Message: "hi"})
	require.NoError(t, err)
	require.Equal(t, string(ModeChat), result.Mode)
	require.Equal(t, 2, tr.Len())
}

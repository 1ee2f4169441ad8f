// Package chat orchestrates prompting rounds against an injected model invoker.
//
// A round takes a request describing what to send (a raw message, a prompt
// template with variables, or CEL-guarded rules picking between templates)
// and how to send it:
//   - Single: zero-shot — the resolved prompt goes out on its own
//   - Chat: multi-turn — the round is recorded on a session transcript and
//     the model sees the full prior history
//
// Example single-turn round:
//
//	svc := chat.NewService(invoker, logger)
//
//	result, err := svc.Round(ctx, nil, &chat.RoundRequest{
//	    Mode:      chat.ModeSingle,
//	    Template:  "Summarize the following in {style} style:\n{message}",
//	    Variables: map[string]string{"style": "formal"},
//	    Message:   articleText,
//	})
//
// Example multi-turn round with rule-selected templates:
//
//	tr := transcript.New()
//	result, err := svc.Round(ctx, tr, &chat.RoundRequest{
//	    Mode: chat.ModeChat,
//	    Rules: []chat.Rule{
//	        {Condition: "turns == 0", Template: "You are a {persona}. {message}"},
//	        {Condition: "turns > 0", Template: "{message}"},
//	    },
//	    Variables: map[string]string{"persona": "travel guide"},
//	    Message:   userInput,
//	})
package chat

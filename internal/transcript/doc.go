// Package transcript maintains conversational state across multi-turn rounds.
//
// A Transcript is an append-only log of {role, text} turns owned by a single
// conversation. Render produces the exact text payload for the next model
// invocation, so every round sees the full prior history. RecordRound is the
// only operation that calls out to the model; it appends the user turn and
// the model's reply only after a successful response, leaving the transcript
// unchanged when the call fails.
//
// Example usage:
//
//	tr := transcript.New()
//
//	reply, err := tr.RecordRound(ctx, "What is the capital of France?", invoker)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// The next round resubmits the full history
//	reply, err = tr.RecordRound(ctx, "And its population?", invoker)
//
//	fmt.Println(tr.Render())
//	// user: What is the capital of France?
//	// agent: Paris
//	// user: And its population?
//	// agent: ...
//
// Transcripts serialize to JSON as their turn sequence, which is how the
// worker persists sessions between stream messages. A transcript is not safe
// for unsynchronized concurrent use; concurrent conversations need one
// transcript each.
package transcript

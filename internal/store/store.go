package store

import (
	"context"
	"errors"

	"github.com/aescanero/dago-node-chat/internal/transcript"
)

// ErrNotFound is returned when no transcript is stored for a session
var ErrNotFound = errors.New("transcript not found")

// TranscriptStore persists serialized session transcripts between rounds
type TranscriptStore interface {
	Save(ctx context.Context, sessionID string, tr *transcript.Transcript) error
	Load(ctx context.Context, sessionID string) (*transcript.Transcript, error)
	Delete(ctx context.Context, sessionID string) error
}

// Package store persists session transcripts between stream messages.
//
// The worker is stateless across messages; a conversation's transcript lives
// in Redis under chat:transcript:<session_id>, serialized as the transcript's
// JSON turn sequence, and expires after the configured TTL of inactivity.
package store

package port

import "context"

// ArtifactStore archives raw problem files and published solutions.
// Archive failures are logged by callers, never fatal to processing.
type ArtifactStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

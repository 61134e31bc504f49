package email

import "context"

// Source yields normalized messages for one processing pass. Implementations
// may return fewer than limit items; an empty result means nothing to
// process, not an error.
type Source interface {
	// Fetch retrieves up to limit messages in provider order
	Fetch(ctx context.Context, limit int) ([]Message, error)
}

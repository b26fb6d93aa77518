package audit

import (
	"context"
)

// Store persists audit events. Implementations must be safe for
// concurrent use.
type Store interface {
	Append(ctx context.Context, event Event) error
	// ListRecent returns the most recent limit events, oldest first. A
	// non-positive limit returns every stored event.
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

package verify

import (
	"context"
	"errors"

	audit "peselgate/pkg/platform/audit"
)

// ErrNotFound is returned by stores when no result exists for a subject
// hash, or when the stored result has expired.
var ErrNotFound = errors.New("verification result not found")

// Store caches verification results by subject hash. Implementations
// enforce their own TTL; an expired entry behaves like a miss.
type Store interface {
	FindResult(ctx context.Context, subjectHash string) (*Result, error)
	SaveResult(ctx context.Context, result *Result) error
}

// AuditPublisher receives compliance events for every verification.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

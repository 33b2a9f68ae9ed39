package ledger

import (
	"context"

	"github.com/google/uuid"
)

// SystemAccountCache is the process-local cache in front of the
// system-name mapping table. It has no TTL; entries live until an explicit
// full invalidation. Concurrent populates of the same key may race
// harmlessly since resolved values are idempotent.
type SystemAccountCache interface {
	Get(name SystemName) (uuid.UUID, bool)
	Set(name SystemName, accountID uuid.UUID)
	InvalidateAll()
	// Len reports the number of cached mappings (for monitoring)
	Len() int
}

// CacheInvalidator fans a full-invalidation signal out to every service
// instance so each process-local cache clears itself after a mapping write.
type CacheInvalidator interface {
	// PublishInvalidateAll notifies all subscribers to drop their caches
	PublishInvalidateAll(ctx context.Context) error
	// Subscribe blocks, invoking the callback for each invalidation signal
	Subscribe(ctx context.Context, callback func()) error
	Close() error
}

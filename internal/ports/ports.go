package ports

import (
	"context"
	"time"

	"github.com/seu-repo/songcast/internal/domain"
)

// SongCatalog resolves a free-text song name to a catalog record. Lookup
// is case-insensitive and a miss returns the catalog's default record,
// never an error.
type SongCatalog interface {
	Lookup(ctx context.Context, name string) domain.Song
	Default(ctx context.Context) domain.Song
}

// Notifier delivers an out-of-band push notification to the configured
// recipient. Callers treat failures as log-and-forget; a Notifier error
// never reaches the user-visible response.
type Notifier interface {
	SendPush(ctx context.Context, title, intent string) error
}

// Cache is a simple key/value store with expiration, used for short-lived
// values like exchanged access tokens.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}

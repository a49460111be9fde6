package storage

import (
	"errors"

	"arttimer/internal/models"
)

// ErrCorruptConfig is returned when the persisted calendar document cannot be
// parsed. It is propagated as-is; nothing is silently defaulted or repaired.
var ErrCorruptConfig = errors.New("storage: corrupt calendar document")

// Provider is the durable home of the calendar document. Mutations rewrite
// the full document; there is no incremental update.
//
// Providers are not safe for concurrent use by multiple goroutines or
// processes; the application enforces a single running instance instead.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Calendar returns the loaded document. The pointer is live: mutations
	// made through it are picked up by Persist.
	Calendar() (*models.Calendar, error)

	// AppendAlert resolves the target session, appends the alert, and
	// persists the full document. Fails with models.ErrSessionNotFound
	// before touching anything when the ref does not resolve.
	AppendAlert(ref models.SessionRef, alert models.Alert) error

	// Persist rewrites the whole backing document from the in-memory state.
	Persist() error

	// Utils
	GetConfigPath() string
}

package ports

import (
	"context"

	"github.com/secureauth/webclient/internal/core/domain"
)

// SessionPersistence stores the token/user pair as a single document so the
// pair survives a restart. Implementations must read and write the pair
// atomically: a reader never observes a token without its user because of a
// half-finished write (a half-set pair in the document itself is possible on
// corruption and is healed by the session store).
type SessionPersistence interface {
	// Load returns the persisted session. ok is false when nothing is stored.
	Load(ctx context.Context) (session domain.Session, ok bool, err error)
	// Save replaces the persisted session with the given pair.
	Save(ctx context.Context, session domain.Session) error
	// Erase removes the persisted session. Erasing an absent session is a no-op.
	Erase(ctx context.Context) error
}

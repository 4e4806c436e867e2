package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Reason codes for destructive operations that need operator confirmation.
const (
	ConfirmResetPool    = "reset_pool"
	ConfirmChangeConfig = "change_config"
	ConfirmClearHistory = "clear_history"
	ConfirmWipeState    = "wipe_state"
)

const confirmationTTL = 2 * time.Minute

// ConfirmationBroker issues single-use continuation tokens for destructive
// operations. The engine hands a token to the presentation layer inside a
// ConfirmationError; the operation proceeds only when the token comes back
// with the matching reason before it expires.
type ConfirmationBroker struct {
	mu      sync.Mutex
	pending map[string]pendingConfirmation
	ttl     time.Duration
}

type pendingConfirmation struct {
	reason    string
	expiresAt time.Time
}

func NewConfirmationBroker() *ConfirmationBroker {
	return &ConfirmationBroker{
		pending: make(map[string]pendingConfirmation),
		ttl:     confirmationTTL,
	}
}

// Request registers a pending confirmation and returns its token.
func (b *ConfirmationBroker) Request(reason string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.purgeExpiredLocked()

	token := uuid.NewString()
	b.pending[token] = pendingConfirmation{
		reason:    reason,
		expiresAt: time.Now().Add(b.ttl),
	}
	return token
}

// Confirm consumes token. It reports true only when the token exists, has
// not expired, and was issued for the same reason. Tokens are single use
// either way.
func (b *ConfirmationBroker) Confirm(token, reason string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.pending[token]
	if !ok {
		return false
	}
	delete(b.pending, token)

	return p.reason == reason && time.Now().Before(p.expiresAt)
}

func (b *ConfirmationBroker) purgeExpiredLocked() {
	now := time.Now()
	for token, p := range b.pending {
		if now.After(p.expiresAt) {
			delete(b.pending, token)
		}
	}
}

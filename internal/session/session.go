package session

import (
	"context" // Context for store operations
	"time"    // Timestamps and TTLs
)

// CookieName is the cookie carrying the opaque session token
const CookieName = "sessionid"

// Record is the server-side state a session token resolves to
type Record struct {
	UserID    uint      `json:"user_id"`    // Authenticated user ID
	CreatedAt time.Time `json:"created_at"` // When the session was established
}

// Store maps opaque tokens to session records. Tokens expire after the
// store's configured TTL; an expired or unknown token resolves to nothing.
type Store interface {
	// Create mints a fresh token bound to userID
	Create(ctx context.Context, userID uint) (string, error)
	// Get resolves a token; returns (nil, nil) when the token is unknown or expired
	Get(ctx context.Context, token string) (*Record, error)
	// Delete invalidates a token; deleting an unknown token is a no-op
	Delete(ctx context.Context, token string) error
}

package models

import "time"

// Session is a server-held login session, based on the 'sessions' table.
// The access token's jti is the session ID, so revoking the row invalidates
// the token on the next request regardless of its JWT expiry.
type Session struct {
	ID         string    `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	IsRevoked  bool      `json:"isRevoked" db:"is_revoked"`
	ExpiresAt  time.Time `json:"expiresAt" db:"expires_at"`
	LastSeenAt time.Time `json:"lastSeenAt" db:"last_seen_at"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

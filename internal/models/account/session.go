package models

import "time"

// Session is one issued bearer token. Sessions are cached in Redis and
// persisted in Postgres; expired rows are purged by the nightly
// maintenance job.
type Session struct {
	Token     string    `json:"token" db:"token"`
	UserID    string    `json:"uid" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
}

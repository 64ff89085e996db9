package models

import "time"

// Admin represents a provisioned administrator account.
// Admins are seeded at startup, never self-registered.
type Admin struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:128;not null"`
	Email     string    `gorm:"size:128;uniqueIndex;not null"`
	CreatedAt time.Time
}

// RevokedToken is a deny-list entry keyed by the literal token string.
// A recorded token must be rejected even while it is still
// cryptographically valid; rows become useless once the token expires
// and are cleaned up by the sweeper.
type RevokedToken struct {
	// JWT payloads here carry only sub/iat/exp, so tokens stay well
	// under this length.
	Token     string    `gorm:"primaryKey;size:512"`
	CreatedAt time.Time `gorm:"index"`
}

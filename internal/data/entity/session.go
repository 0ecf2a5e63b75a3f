package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the registry record for one issued token, keyed by its jti.
type Session struct {
	TokenID   uuid.UUID  `db:"jti"`
	UserID    int64      `db:"user_id"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	IssuedAt  time.Time  `db:"issued_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

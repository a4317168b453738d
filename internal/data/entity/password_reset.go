package entity

import (
	"time"

	"github.com/google/uuid"
)

// PasswordReset is a single-use reset token row. Consumed rows are deleted;
// expired rows stay in the table but never validate.
type PasswordReset struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (p *PasswordReset) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

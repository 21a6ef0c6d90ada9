package models

import "time"

// UserSession stores one refresh token issued at login.
type UserSession struct {
	SessionID    int        `gorm:"primaryKey;column:session_id" json:"session_id"`
	UserID       int        `gorm:"column:user_id" json:"user_id"`
	RefreshToken string     `gorm:"column:refresh_token;unique" json:"-"`
	UserAgent    *string    `gorm:"column:user_agent" json:"user_agent,omitempty"`
	IPAddress    string     `gorm:"column:ip_address" json:"ip_address"`
	ExpiresAt    time.Time  `gorm:"column:expires_at" json:"expires_at"`
	RevokedAt    *time.Time `gorm:"column:revoked_at" json:"revoked_at,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
}

func (UserSession) TableName() string {
	return "user_sessions"
}

// Active reports whether the session can still mint access tokens.
func (s *UserSession) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

package auth

import "time"

// Admin is a dashboard account stored in the admins table.
type Admin struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         string
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
}

// LoginSession records one signed in browser session.
type LoginSession struct {
	ID        string
	AdminID   int64
	ExpiresAt time.Time
	IP        string
	UserAgent string
}

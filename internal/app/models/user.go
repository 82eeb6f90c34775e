package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64      `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	PasswordHash string     `json:"-" db:"password_hash"`
	RoleType     RoleType   `json:"roleType" db:"role_type"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}

// IsRecruiter reports whether the user posts jobs
func (u *User) IsRecruiter() bool {
	return u != nil && u.RoleType == RoleRecruiter
}

// IsCandidate reports whether the user is job seeking
func (u *User) IsCandidate() bool {
	return u != nil && u.RoleType == RoleCandidate
}

// CandidateSummary is a candidate row on the browse page
type CandidateSummary struct {
	User          User `json:"user"`
	DocumentCount int  `json:"documentCount"`
}

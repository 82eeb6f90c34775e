package dto

import (
	"time"

	"github.com/yigit/talentbridge/internal/app/models"
)

// LoginRequest represents the login form
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// RegisterRequest represents the registration form
type RegisterRequest struct {
	Username        string          `form:"username" binding:"required,username"`
	Password        string          `form:"password" binding:"required,password"`
	ConfirmPassword string          `form:"confirm_password" binding:"required,eqfield=Password"`
	RoleType        models.RoleType `form:"role" binding:"required,oneof=CANDIDATE RECRUITER"`
}

// AuthResult is returned by a successful register or login
type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

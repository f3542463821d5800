package domain

import (
	"errors"
	"time"
)

const (
	MinUsernameLen = 3
	MinPasswordLen = 3
)

var ErrUserNotFound = errors.New("user not found")
var ErrUsernameTaken = errors.New("username must be unique")
var ErrUsernameTooShort = errors.New("username must be at least 3 characters long")
var ErrPasswordTooShort = errors.New("password must be at least 3 characters long")
var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrInvalidToken = errors.New("invalid token")
var ErrTooManyAttempts = errors.New("too many failed login attempts")

// User models a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

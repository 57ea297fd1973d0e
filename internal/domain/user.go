package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Common validation errors
var (
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrInvalidUsername     = errors.New("username must be 3-64 letters, digits, '.', '_' or '-'")
	ErrPasswordTooShort    = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrDisplayNameTooLong  = errors.New("display name must be at most 100 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{3,64}$`)

// User is an actor that creates and updates tasks. Its display name is
// what task listings show as creator and updater.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"displayName"`
	Password       string    `json:"-"` // Plaintext, only set during registration
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewUser creates an unsaved user. The display name defaults to the username.
//
// The caller is responsible for hashing the password before storing the user.
func NewUser(username, displayName, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Username:    strings.TrimSpace(username),
		DisplayName: strings.TrimSpace(displayName),
		Password:    password,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if !usernamePattern.MatchString(u.Username) {
		return ErrInvalidUsername
	}
	if len([]rune(u.DisplayName)) > 100 {
		return ErrDisplayNameTooLong
	}

	if u.Password != "" {
		return ValidatePassword(u.Password)
	}
	if u.HashedPassword == "" {
		return ErrEmptyPassword
	}
	return nil
}

// ValidatePassword checks a plaintext password's length in bytes.
func ValidatePassword(password string) error {
	// bcrypt ignores everything past 72 bytes
	switch {
	case password == "":
		return ErrEmptyPassword
	case len(password) < 12:
		return ErrPasswordTooShort
	case len(password) > 72:
		return ErrPasswordTooLong
	}
	return nil
}

// Name returns the name shown to other users.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

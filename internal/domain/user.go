package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// User validation errors
var (
	ErrEmptyUserID   = errors.New("user ID cannot be empty")
	ErrEmptyUserName = errors.New("user name cannot be empty")
)

// User is a participant in study groups. Users are supplied by the identity
// provider and are never created or destroyed by group operations; every
// other entity refers to them by ID.
type User struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	AvatarSeed string    `json:"avatar_seed,omitempty"`
}

// NewUser creates a new User with a fresh ID.
// Returns an error if validation fails.
func NewUser(name, avatarSeed string) (*User, error) {
	user := &User{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(name),
		AvatarSeed: avatarSeed,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyUserName
	}

	return nil
}

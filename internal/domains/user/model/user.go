package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/shared/identifier"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 3
)

// User is an account allowed to mutate the catalog. Users are never updated.
type User struct {
	Key           int64   `json:"-" db:"id"`
	Username      string  `json:"username" db:"username"` // unique
	PasswordHash  string  `json:"-" db:"password_hash"`   // never exposed
	FavoriteGenre *string `json:"favoriteGenre" db:"favorite_genre"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ID returns the stable external identifier.
func (u *User) ID() string {
	return identifier.Encode(u.Key)
}

// GenreOrEmpty returns the favourite genre, or "" when none was set.
func (u *User) GenreOrEmpty() string {
	if u.FavoriteGenre == nil {
		return ""
	}
	return *u.FavoriteGenre
}

// Validate checks the constraints enforced before every write.
func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Username,
			validation.Required.Error("username is required"),
			validation.RuneLength(MinUsernameLength, 0),
		),
		validation.Field(&u.PasswordHash, validation.Required.Error("password is required")),
	)
}

// ValidatePassword checks the plaintext password constraint before hashing.
func ValidatePassword(password string) error {
	return validation.Validate(password,
		validation.Required.Error("password is required"),
		validation.RuneLength(MinPasswordLength, 0),
	)
}

// AddUserRequest - addUser mutation arguments
type AddUserRequest struct {
	Username      string
	FavoriteGenre string
}

// LoginRequest - login mutation arguments
type LoginRequest struct {
	Username string
	Password string
}

// LoginResponse - signed token plus the authenticated user
type LoginResponse struct {
	Token string
	User  *User
}

package auth

import (
	"context"
	"errors"

	"quotes-server/internal/models"
)

var (
	// ErrInvalidCredentials is returned for both an unknown username and a
	// wrong password. The two cases are never distinguished externally.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUserDisabled marks an account whose active flag is off. Surfaced
	// only after the caller's token or password already checked out.
	ErrUserDisabled = errors.New("inactive user")
)

// UserGetter is the slice of the store Authenticate needs.
type UserGetter interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authenticate resolves a username/password pair to the stored account.
// Lookup misses and hash mismatches both come back as ErrInvalidCredentials.
func Authenticate(ctx context.Context, users UserGetter, username, password string) (*models.User, error) {
	user, err := users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

package user

import (
	"context"

	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

// ErrNotFound keeps store-specific lookups consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "user not found")

// ErrUsernameTaken is returned by Create when the username already exists.
var ErrUsernameTaken = dErrors.New(dErrors.CodeValidation, "username already taken")

// Store persists gateway accounts.
type Store interface {
	Create(ctx context.Context, u User) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"stationhub/backend/services/stations-service/internal/models"
	"stationhub/backend/services/stations-service/internal/repository"
)

// UserReader loads users by id.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// IdentityLoader resolves a verified user id to the acting user. Every call reads the
// user store so that deleted or re-roled users take effect immediately.
type IdentityLoader struct {
	users UserReader
}

// NewIdentityLoader builds the loader.
func NewIdentityLoader(users UserReader) *IdentityLoader {
	return &IdentityLoader{users: users}
}

// Load returns the user for userID. A user that no longer exists is reported as
// ErrUnauthenticated so callers cannot tell it apart from a bad credential.
func (l *IdentityLoader) Load(ctx context.Context, userID int64) (*models.User, error) {
	user, err := l.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: unknown user", ErrUnauthenticated)
		}
		return nil, storeUnavailable("load identity", err)
	}
	return user, nil
}

package services

import (
	"context"

	"github.com/thereayou/drop/internal/models"
)

// UserStore то, что нужно регистрации, логину и профилю от хранилища
type UserStore interface {
	SaveUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateLastSeen(ctx context.Context, id string) error
}

// Package users persists storefront accounts. Lookups that find nothing
// return common.ErrorNotFound; a duplicate email on Create returns
// common.ErrEmailTaken.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/storefront/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByResetToken finds the user whose reset token equals token and
	// whose expiry is strictly after now.
	GetByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error
	// ConsumeResetToken atomically replaces the password hash of the user
	// holding a live token and clears the token. At most one caller wins.
	ConsumeResetToken(ctx context.Context, token string, now time.Time, passwordHash string) (*models.User, error)
	UpdatePermissions(ctx context.Context, userID string, permissions []string) (*models.User, error)
}
